package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Group is a row of the st_group table. ParentSpecificID references the
// parent group's SpecificID within the same domain, not its numeric id: for
// directory-backed domains the backing store only knows those opaque
// identifiers.
type Group struct {
	ID               int
	DomainID         int
	SpecificID       string
	ParentSpecificID sql.NullString
	Name             string
	Description      sql.NullString
}

const groupColumns = "id, domainid, specificid, parentspecificid, name, description"

func scanGroups(rows *sql.Rows) ([]Group, error) {
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.DomainID, &g.SpecificID, &g.ParentSpecificID, &g.Name, &g.Description); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return groups, nil
}

// Groups lists every group row in ascending id order, locking the rows.
func Groups(ctx context.Context, tx *Tx) ([]Group, error) {
	query := "SELECT " + groupColumns + " FROM st_group ORDER BY id" + tx.Dialect().ForUpdate()
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	return scanGroups(rows)
}

// DomainGroups lists the groups of one domain in ascending id order. The
// caller keeps the slice as an immutable snapshot for parent resolution, so
// later specificid rewrites cannot influence lookups.
func DomainGroups(ctx context.Context, tx *Tx, domainID int) ([]Group, error) {
	query := "SELECT " + groupColumns + " FROM st_group WHERE domainid = ? ORDER BY id" + tx.Dialect().ForUpdate()
	rows, err := tx.Query(ctx, query, domainID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups of domain %d: %w", domainID, err)
	}
	return scanGroups(rows)
}

// UpdateGroupSpecificID writes the freshly derived numeric identifier back
// onto the source row so membership migration observes the new mapping.
func UpdateGroupSpecificID(ctx context.Context, tx *Tx, groupID int, specificID string) error {
	if _, err := tx.Exec(ctx, `UPDATE st_group SET specificid = ? WHERE id = ?`, specificID, groupID); err != nil {
		return fmt.Errorf("failed to update group %d specific id: %w", groupID, err)
	}
	return nil
}

// UpdateGroupName rewrites the name of a group row and clears its
// description.
func UpdateGroupName(ctx context.Context, tx *Tx, groupID int, name string) error {
	if _, err := tx.Exec(ctx, `UPDATE st_group SET name = ?, description = NULL WHERE id = ?`, name, groupID); err != nil {
		return fmt.Errorf("failed to update group %d name: %w", groupID, err)
	}
	return nil
}
