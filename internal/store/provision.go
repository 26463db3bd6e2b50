package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ledantec/dbscrub/internal/anonym"
	"github.com/ledantec/dbscrub/internal/shared"
)

// DomainStorage names the three SQL tables backing one user domain.
type DomainStorage struct {
	Users  string
	Groups string
	Rels   string
}

// StorageFor returns the storage a domain will own once anonymized, derived
// from its placeholder technical name.
func StorageFor(d anonym.Domain) DomainStorage {
	return DomainStorage{
		Users:  d.UsersTable,
		Groups: d.GroupsTable,
		Rels:   d.RelsTable,
	}
}

// StorageForDescriptor returns the storage currently owned by a SQL-backed
// domain, derived from its descriptor name the same way the platform's own
// SQL driver does.
func StorageForDescriptor(descriptor string) DomainStorage {
	prefix := "domain" + strings.ToLower(strings.TrimPrefix(descriptor, "org.silverpeas.domains.domain"))
	return DomainStorage{
		Users:  prefix + "_user",
		Groups: prefix + "_group",
		Rels:   prefix + "_group_user_rel",
	}
}

// Create provisions the three tables of a domain's SQL storage. It fails
// with shared.ErrStorageConflict when any of them already exists.
func (s DomainStorage) Create(ctx context.Context, tx *Tx) error {
	statements := []string{
		`CREATE TABLE ` + s.Users + ` (
			id integer PRIMARY KEY,
			firstname varchar(100),
			lastname varchar(100) NOT NULL,
			email varchar(200),
			login varchar(50) NOT NULL,
			password varchar(123),
			passwordvalid char(1) NOT NULL DEFAULT 'Y',
			title varchar(100),
			company varchar(100),
			position varchar(100),
			boss varchar(100),
			phone varchar(20),
			homephone varchar(20),
			cellphone varchar(20),
			fax varchar(20),
			address varchar(500)
		)`,
		`CREATE TABLE ` + s.Groups + ` (
			id integer PRIMARY KEY,
			supergroupid integer,
			name varchar(100) NOT NULL,
			description varchar(400)
		)`,
		`CREATE TABLE ` + s.Rels + ` (
			userid integer NOT NULL,
			groupid integer NOT NULL,
			PRIMARY KEY (userid, groupid)
		)`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "already exists") {
				return fmt.Errorf("%w: %s", shared.ErrStorageConflict, err)
			}
			return fmt.Errorf("failed to create domain storage: %w", err)
		}
	}
	return nil
}

// Drop removes the three tables of a domain's SQL storage, relations first.
func (s DomainStorage) Drop(ctx context.Context, tx *Tx) error {
	for _, table := range []string{s.Rels, s.Users, s.Groups} {
		if _, err := tx.Exec(ctx, "DROP TABLE "+table); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}

// DomainUserRow is a row of a per-domain user table.
type DomainUserRow struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	Login     string
	Password  string
	Company   string
}

// DomainGroupRow is a row of a per-domain group table.
type DomainGroupRow struct {
	ID          int
	Parent      sql.NullInt64
	Name        string
	Description sql.NullString
}

// DomainRelRow is a row of a per-domain membership table.
type DomainRelRow struct {
	UserID  int
	GroupID int
}

// InsertUser writes one row into the domain's user table.
func (s DomainStorage) InsertUser(ctx context.Context, tx *Tx, row DomainUserRow) error {
	query := `INSERT INTO ` + s.Users + ` (id, firstname, lastname, email, login, password, company)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.Exec(ctx, query, row.ID, row.FirstName, row.LastName, row.Email, row.Login, row.Password, row.Company); err != nil {
		return fmt.Errorf("failed to insert user %d into %s: %w", row.ID, s.Users, err)
	}
	return nil
}

// InsertGroup writes one row into the domain's group table.
func (s DomainStorage) InsertGroup(ctx context.Context, tx *Tx, row DomainGroupRow) error {
	query := `INSERT INTO ` + s.Groups + ` (id, supergroupid, name, description) VALUES (?, ?, ?, ?)`
	if _, err := tx.Exec(ctx, query, row.ID, row.Parent, row.Name, row.Description); err != nil {
		return fmt.Errorf("failed to insert group %d into %s: %w", row.ID, s.Groups, err)
	}
	return nil
}

// InsertRel writes one membership row into the domain's relation table.
func (s DomainStorage) InsertRel(ctx context.Context, tx *Tx, row DomainRelRow) error {
	query := `INSERT INTO ` + s.Rels + ` (userid, groupid) VALUES (?, ?)`
	if _, err := tx.Exec(ctx, query, row.UserID, row.GroupID); err != nil {
		return fmt.Errorf("failed to insert membership (%d, %d) into %s: %w", row.UserID, row.GroupID, s.Rels, err)
	}
	return nil
}

// UserIDs lists the user ids held in the domain's user table.
func (s DomainStorage) UserIDs(ctx context.Context, tx *Tx) ([]int, error) {
	return s.ids(ctx, tx, "SELECT id FROM "+s.Users+" ORDER BY id"+tx.Dialect().ForUpdate())
}

// GroupIDs lists the group ids held in the domain's group table.
func (s DomainStorage) GroupIDs(ctx context.Context, tx *Tx) ([]int, error) {
	return s.ids(ctx, tx, "SELECT id FROM "+s.Groups+" ORDER BY id"+tx.Dialect().ForUpdate())
}

func (s DomainStorage) ids(ctx context.Context, tx *Tx, query string) ([]int, error) {
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query domain storage ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return ids, nil
}

// UpdateUser rewrites the identity columns of one row of the domain's user
// table, clearing the contact and organizational columns along the way.
func (s DomainStorage) UpdateUser(ctx context.Context, tx *Tx, row DomainUserRow) error {
	query := `UPDATE ` + s.Users + ` SET
		firstname = ?, lastname = ?, email = ?, login = ?, password = ?, passwordvalid = 'Y',
		title = NULL, company = ?, position = NULL, boss = NULL,
		phone = NULL, homephone = NULL, cellphone = NULL, fax = NULL, address = NULL
		WHERE id = ?`
	if _, err := tx.Exec(ctx, query, row.FirstName, row.LastName, row.Email, row.Login, row.Password, row.Company, row.ID); err != nil {
		return fmt.Errorf("failed to update user %d in %s: %w", row.ID, s.Users, err)
	}
	return nil
}

// UpdateGroup rewrites the name of one row of the domain's group table and
// clears its description.
func (s DomainStorage) UpdateGroup(ctx context.Context, tx *Tx, id int, name string) error {
	query := `UPDATE ` + s.Groups + ` SET name = ?, description = NULL WHERE id = ?`
	if _, err := tx.Exec(ctx, query, name, id); err != nil {
		return fmt.Errorf("failed to update group %d in %s: %w", id, s.Groups, err)
	}
	return nil
}

// GroupRows lists the rows of the domain's group table.
func (s DomainStorage) GroupRows(ctx context.Context, tx *Tx) ([]DomainGroupRow, error) {
	query := "SELECT id, supergroupid, name, description FROM " + s.Groups + " ORDER BY id" + tx.Dialect().ForUpdate()
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.Groups, err)
	}
	defer rows.Close()

	var groups []DomainGroupRow
	for rows.Next() {
		var g DomainGroupRow
		if err := rows.Scan(&g.ID, &g.Parent, &g.Name, &g.Description); err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return groups, nil
}

// RelRows lists the membership rows of the domain's relation table.
func (s DomainStorage) RelRows(ctx context.Context, tx *Tx) ([]DomainRelRow, error) {
	query := "SELECT userid, groupid FROM " + s.Rels + " ORDER BY userid, groupid" + tx.Dialect().ForUpdate()
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.Rels, err)
	}
	defer rows.Close()

	var rels []DomainRelRow
	for rows.Next() {
		var r DomainRelRow
		if err := rows.Scan(&r.UserID, &r.GroupID); err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		rels = append(rels, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return rels, nil
}
