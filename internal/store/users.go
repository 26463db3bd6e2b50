package store

import (
	"context"
	"database/sql"
	"fmt"
)

// User is a row of the st_user table, the per-platform mirror of every user
// whatever its domain. SpecificID is the identifier of the user in its
// domain's backing store; it is rewritten during domain migration.
type User struct {
	ID         int
	DomainID   int
	SpecificID string
	FirstName  sql.NullString
	LastName   string
	Email      sql.NullString
	Login      string
	State      string
}

const userColumns = "id, domainid, specificid, firstname, lastname, email, login, state"

func scanUsers(rows *sql.Rows) ([]User, error) {
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.DomainID, &u.SpecificID, &u.FirstName, &u.LastName, &u.Email, &u.Login, &u.State); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return users, nil
}

// Users lists every user row in ascending id order, locking the rows.
func Users(ctx context.Context, tx *Tx) ([]User, error) {
	query := "SELECT " + userColumns + " FROM st_user ORDER BY id" + tx.Dialect().ForUpdate()
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	return scanUsers(rows)
}

// ActiveDomainUsers lists the non-deleted users of one domain in ascending
// id order, locking the rows for migration.
func ActiveDomainUsers(ctx context.Context, tx *Tx, domainID int) ([]User, error) {
	query := "SELECT " + userColumns + ` FROM st_user WHERE domainid = ? AND state <> 'DELETED' ORDER BY id` + tx.Dialect().ForUpdate()
	rows, err := tx.Query(ctx, query, domainID)
	if err != nil {
		return nil, fmt.Errorf("failed to query users of domain %d: %w", domainID, err)
	}
	return scanUsers(rows)
}

// UpdateUserSpecificID writes the freshly derived numeric identifier back
// onto the source row so later migration steps observe the new mapping.
func UpdateUserSpecificID(ctx context.Context, tx *Tx, userID int, specificID string) error {
	if _, err := tx.Exec(ctx, `UPDATE st_user SET specificid = ? WHERE id = ?`, specificID, userID); err != nil {
		return fmt.Errorf("failed to update user %d specific id: %w", userID, err)
	}
	return nil
}

// UpdateUserIdentity rewrites the identity fields of a user row.
func UpdateUserIdentity(ctx context.Context, tx *Tx, userID int, firstName, lastName, email string) error {
	query := `UPDATE st_user SET firstname = ?, lastname = ?, email = ? WHERE id = ?`
	if _, err := tx.Exec(ctx, query, firstName, lastName, email, userID); err != nil {
		return fmt.Errorf("failed to update user %d identity: %w", userID, err)
	}
	return nil
}

// UpdateUserLogin rewrites the login of a user row. Deleted users keep their
// login so the platform's tombstones stay resolvable.
func UpdateUserLogin(ctx context.Context, tx *Tx, userID int, login string) error {
	if _, err := tx.Exec(ctx, `UPDATE st_user SET login = ? WHERE id = ?`, login, userID); err != nil {
		return fmt.Errorf("failed to update user %d login: %w", userID, err)
	}
	return nil
}
