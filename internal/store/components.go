package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ComponentRow is a row of the st_componentinstance table.
type ComponentRow struct {
	ID        int
	SpaceID   sql.NullInt64
	Component string
	Lang      sql.NullString
}

// Components lists every component instance in ascending id order.
func Components(ctx context.Context, tx *Tx) ([]ComponentRow, error) {
	query := `SELECT id, spaceid, componentname, lang FROM st_componentinstance ORDER BY id` + tx.Dialect().ForUpdate()
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query component instances: %w", err)
	}
	defer rows.Close()

	var components []ComponentRow
	for rows.Next() {
		var c ComponentRow
		if err := rows.Scan(&c.ID, &c.SpaceID, &c.Component, &c.Lang); err != nil {
			return nil, fmt.Errorf("failed to scan component instance: %w", err)
		}
		components = append(components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return components, nil
}

// UpdateComponent rewrites the name and description of a component instance.
func UpdateComponent(ctx context.Context, tx *Tx, id int, name, description string) error {
	if _, err := tx.Exec(ctx, `UPDATE st_componentinstance SET name = ?, description = ? WHERE id = ?`, name, description, id); err != nil {
		return fmt.Errorf("failed to update component instance %d: %w", id, err)
	}
	return nil
}

// ComponentTranslations lists the alternate-language rows of the given
// component instance.
func ComponentTranslations(ctx context.Context, tx *Tx, componentID int) ([]Translation, error) {
	return translations(ctx, tx, `SELECT id, componentid, lang FROM st_componentinstancei18n WHERE componentid = ? ORDER BY id`, componentID)
}

// UpdateComponentTranslation rewrites one alternate-language row of a
// component instance.
func UpdateComponentTranslation(ctx context.Context, tx *Tx, id int, name, description string) error {
	if _, err := tx.Exec(ctx, `UPDATE st_componentinstancei18n SET name = ?, description = ? WHERE id = ?`, name, description, id); err != nil {
		return fmt.Errorf("failed to update component translation %d: %w", id, err)
	}
	return nil
}
