package scrub

import (
	"context"

	"github.com/ledantec/dbscrub/internal/anonym"
	"github.com/ledantec/dbscrub/internal/shared"
	"github.com/ledantec/dbscrub/internal/ssv"
	"github.com/ledantec/dbscrub/internal/store"
)

// defaultStorage is the SQL storage of the internal platform domain, which
// the domain migration leaves in place under its original names.
var defaultStorage = store.DomainStorage{
	Users:  "domainsp_user",
	Groups: "domainsp_group",
	Rels:   "domainsp_group_user_rel",
}

// Users rewrites the identity of every platform user, plus the rows of the
// internal domain's own storage. The platform administrator keeps its
// identity so whoever runs the tool can still sign in.
type Users struct {
	templates shared.UserTemplates
	audit     *ssv.Logger
}

func (s *Users) Name() string { return "users" }

func (s *Users) Scrub(ctx context.Context, tx *store.Tx) error {
	users, err := store.Users(ctx, tx)
	if err != nil {
		return err
	}

	for _, row := range users {
		u, err := anonym.NewUser(row.ID, row.DomainID, s.templates)
		if err != nil {
			return err
		}
		if u.IsPlatformAdmin() {
			continue
		}

		if err := store.UpdateUserIdentity(ctx, tx, row.ID, u.FirstName, u.LastName, u.Email); err != nil {
			return err
		}
		if row.State != "DELETED" {
			if err := store.UpdateUserLogin(ctx, tx, row.ID, u.Login); err != nil {
				return err
			}
		}
		if row.State != "REMOVED" {
			if err := s.audit.User(row.ID, u.FirstName, u.LastName, u.Login, u.PlainPassword, row.DomainID); err != nil {
				return err
			}
		}
	}

	ids, err := defaultStorage.UserIDs(ctx, tx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		u, err := anonym.NewUser(id, 0, s.templates)
		if err != nil {
			return err
		}
		if u.IsPlatformAdmin() {
			continue
		}
		if err := defaultStorage.UpdateUser(ctx, tx, store.DomainUserRow{
			ID:        id,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Login:     u.Login,
			Password:  u.CryptedPassword,
			Company:   u.Company,
		}); err != nil {
			return err
		}
	}
	return nil
}
