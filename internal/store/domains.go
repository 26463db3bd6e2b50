package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ledantec/dbscrub/internal/anonym"
)

// Domain is a row of the st_domain table.
type Domain struct {
	ID          int
	Name        string
	Description sql.NullString
	Descriptor  string
	AuthServer  string
	Driver      string
	ServerURL   sql.NullString
}

// Domains lists every user domain in ascending id order, locking the rows
// for the rest of the run.
func Domains(ctx context.Context, tx *Tx) ([]Domain, error) {
	query := `
		SELECT id, name, description, propfilename, authenticationserver, classname, silverpeasserverurl
		FROM st_domain
		ORDER BY id` + tx.Dialect().ForUpdate()

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query domains: %w", err)
	}
	defer rows.Close()

	var domains []Domain
	for rows.Next() {
		var d Domain
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Descriptor, &d.AuthServer, &d.Driver, &d.ServerURL); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return domains, nil
}

// UpdateDomain rewrites a domain row with its placeholder values. The
// description is cleared and the driver becomes the SQL driver class.
func UpdateDomain(ctx context.Context, tx *Tx, d anonym.Domain) error {
	query := `
		UPDATE st_domain
		SET name = ?, description = NULL, silverpeasserverurl = ?, classname = ?, authenticationserver = ?, propfilename = ?
		WHERE id = ?`

	if _, err := tx.Exec(ctx, query, d.Name, d.ServerURL, d.Driver, d.AuthServerName, d.Type, d.ID); err != nil {
		return fmt.Errorf("failed to update domain %d: %w", d.ID, err)
	}
	return nil
}

// UpdateDomainServerURL rewrites only the server URL of a domain row. The
// platform domain (id 0) gets this treatment and nothing else.
func UpdateDomainServerURL(ctx context.Context, tx *Tx, id int, serverURL string) error {
	if _, err := tx.Exec(ctx, `UPDATE st_domain SET silverpeasserverurl = ? WHERE id = ?`, serverURL, id); err != nil {
		return fmt.Errorf("failed to update domain %d server url: %w", id, err)
	}
	return nil
}
