package scrub

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ledantec/dbscrub/internal/anonym"
	"github.com/ledantec/dbscrub/internal/descriptor"
	"github.com/ledantec/dbscrub/internal/shared"
	"github.com/ledantec/dbscrub/internal/ssv"
	"github.com/ledantec/dbscrub/internal/store"
)

// Domains migrates every user domain onto anonymized SQL storage and
// rewrites the st_domain rows. Directory-backed domains are converted into
// fresh relational tables; SQL-backed domains have their tables copied under
// the new names and the old ones dropped.
type Domains struct {
	templates      shared.DomainTemplates
	userTemplates  shared.UserTemplates
	groupTemplates shared.GroupTemplates
	serverURL      string
	sync           *descriptor.Synchronizer
	audit          *ssv.Logger
	logger         *log.Logger
}

func (s *Domains) Name() string { return "domains" }

func (s *Domains) Scrub(ctx context.Context, tx *store.Tx) error {
	domains, err := store.Domains(ctx, tx)
	if err != nil {
		return err
	}

	for _, row := range domains {
		// The internal platform domain keeps its identity and its
		// storage; only the server URL it exposes is scrubbed.
		if row.ID == 0 {
			if err := store.UpdateDomainServerURL(ctx, tx, row.ID, s.serverURL); err != nil {
				return err
			}
			continue
		}

		d := anonym.NewDomain(row.ID, s.templates, s.serverURL)

		if strings.HasSuffix(row.Driver, "SQLDriver") {
			err = s.rename(ctx, tx, row, d)
		} else {
			err = s.convert(ctx, tx, row, d)
		}
		if err != nil {
			return err
		}

		if err := s.sync.Sync(row.Descriptor, row.AuthServer, d); err != nil {
			s.logger.Warn("descriptor sync failed", "domain", row.ID, "error", err)
		}

		if err := store.UpdateDomain(ctx, tx, d); err != nil {
			return err
		}
	}
	return nil
}

// convert moves a directory-backed domain onto fresh SQL storage. Users,
// groups and memberships are copied with freshly derived numeric ids; the
// derived ids are written back onto the platform rows so the membership copy
// sees them. The directory itself is left alone.
func (s *Domains) convert(ctx context.Context, tx *store.Tx, row store.Domain, d anonym.Domain) error {
	storage := store.StorageFor(d)
	if err := storage.Create(ctx, tx); err != nil {
		return err
	}

	users, err := store.ActiveDomainUsers(ctx, tx, row.ID)
	if err != nil {
		return err
	}
	for _, u := range users {
		newID := anonym.Encode(u.SpecificID)
		pu, err := anonym.NewUser(newID, row.ID, s.userTemplates)
		if err != nil {
			return err
		}
		if err := storage.InsertUser(ctx, tx, store.DomainUserRow{
			ID:        newID,
			FirstName: pu.FirstName,
			LastName:  pu.LastName,
			Email:     pu.Email,
			Login:     pu.Login,
			Password:  pu.CryptedPassword,
			Company:   pu.Company,
		}); err != nil {
			return err
		}
		if err := store.UpdateUserSpecificID(ctx, tx, u.ID, strconv.Itoa(newID)); err != nil {
			return err
		}
		if err := s.audit.User(newID, pu.FirstName, pu.LastName, pu.Login, pu.PlainPassword, row.ID); err != nil {
			return err
		}
	}

	// The group slice doubles as the pre-migration snapshot: parent
	// references resolve against the specific ids read here, before any
	// rewrite lands in the table.
	groups, err := store.DomainGroups(ctx, tx, row.ID)
	if err != nil {
		return err
	}
	for _, g := range groups {
		newID := anonym.Encode(g.SpecificID)
		pg := anonym.NewGroup(newID, s.groupTemplates)
		if err := storage.InsertGroup(ctx, tx, store.DomainGroupRow{
			ID:     newID,
			Parent: s.resolveParent(g, groups),
			Name:   pg.Name,
		}); err != nil {
			return err
		}
		if err := store.UpdateGroupSpecificID(ctx, tx, g.ID, strconv.Itoa(newID)); err != nil {
			return err
		}
	}

	members, err := store.DomainMemberships(ctx, tx, row.ID)
	if err != nil {
		return err
	}
	for _, m := range members {
		if err := storage.InsertRel(ctx, tx, store.DomainRelRow{
			UserID:  anonym.Encode(m.UserSpecificID),
			GroupID: anonym.Encode(m.GroupSpecificID),
		}); err != nil {
			return err
		}
	}
	return nil
}

// resolveParent maps a group's parent reference to the derived id of the
// parent, looked up in the pre-migration snapshot. Roots and dangling
// references become NULL.
func (s *Domains) resolveParent(g store.Group, snapshot []store.Group) sql.NullInt64 {
	if !g.ParentSpecificID.Valid || g.ParentSpecificID.String == "" {
		return sql.NullInt64{}
	}
	for _, candidate := range snapshot {
		if candidate.SpecificID == g.ParentSpecificID.String {
			return sql.NullInt64{Int64: int64(anonym.Encode(candidate.SpecificID)), Valid: true}
		}
	}
	s.logger.Warn("dangling parent group reference",
		"group", g.ID, "parent", g.ParentSpecificID.String)
	return sql.NullInt64{}
}

// rename copies a SQL-backed domain's tables under the anonymized names,
// scrubbing identities on the way, then drops the old tables. Numeric ids
// are preserved, so the platform rows keep pointing at the right records.
func (s *Domains) rename(ctx context.Context, tx *store.Tx, row store.Domain, d anonym.Domain) error {
	old := store.StorageForDescriptor(row.Descriptor)
	storage := store.StorageFor(d)
	if err := storage.Create(ctx, tx); err != nil {
		return err
	}

	ids, err := old.UserIDs(ctx, tx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		pu, err := anonym.NewUser(id, row.ID, s.userTemplates)
		if err != nil {
			return err
		}
		if err := storage.InsertUser(ctx, tx, store.DomainUserRow{
			ID:        id,
			FirstName: pu.FirstName,
			LastName:  pu.LastName,
			Email:     pu.Email,
			Login:     pu.Login,
			Password:  pu.CryptedPassword,
			Company:   pu.Company,
		}); err != nil {
			return err
		}
		if err := s.audit.User(id, pu.FirstName, pu.LastName, pu.Login, pu.PlainPassword, row.ID); err != nil {
			return err
		}
	}

	groups, err := old.GroupRows(ctx, tx)
	if err != nil {
		return err
	}
	for _, g := range groups {
		pg := anonym.NewGroup(g.ID, s.groupTemplates)
		if err := storage.InsertGroup(ctx, tx, store.DomainGroupRow{
			ID:     g.ID,
			Parent: g.Parent,
			Name:   pg.Name,
		}); err != nil {
			return err
		}
	}

	rels, err := old.RelRows(ctx, tx)
	if err != nil {
		return err
	}
	for _, r := range rels {
		if err := storage.InsertRel(ctx, tx, r); err != nil {
			return err
		}
	}

	return old.Drop(ctx, tx)
}
