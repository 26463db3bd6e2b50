package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SpaceRow is a row of the st_space table.
type SpaceRow struct {
	ID     int
	Parent sql.NullInt64
	Lang   sql.NullString
}

// Translation is a row of one of the *i18n tables: an alternate-language
// rendition of a named entity.
type Translation struct {
	ID       int
	EntityID int
	Lang     string
}

// SharedSpaces lists every collaborative space except the personal ones, in
// ascending id order. Personal spaces carry no workgroup vocabulary worth
// scrubbing and keep their canonical name.
func SharedSpaces(ctx context.Context, tx *Tx) ([]SpaceRow, error) {
	query := `SELECT id, domainfatherid, lang FROM st_space WHERE name NOT LIKE 'Personal space%' ORDER BY id` + tx.Dialect().ForUpdate()
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query spaces: %w", err)
	}
	defer rows.Close()

	var spaces []SpaceRow
	for rows.Next() {
		var s SpaceRow
		if err := rows.Scan(&s.ID, &s.Parent, &s.Lang); err != nil {
			return nil, fmt.Errorf("failed to scan space: %w", err)
		}
		spaces = append(spaces, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return spaces, nil
}

// UpdateSpace rewrites the name and description of a space row.
func UpdateSpace(ctx context.Context, tx *Tx, id int, name, description string) error {
	if _, err := tx.Exec(ctx, `UPDATE st_space SET name = ?, description = ? WHERE id = ?`, name, description, id); err != nil {
		return fmt.Errorf("failed to update space %d: %w", id, err)
	}
	return nil
}

// SpaceTranslations lists the alternate-language rows of the given space.
func SpaceTranslations(ctx context.Context, tx *Tx, spaceID int) ([]Translation, error) {
	return translations(ctx, tx, `SELECT id, spaceid, lang FROM st_spacei18n WHERE spaceid = ? ORDER BY id`, spaceID)
}

// UpdateSpaceTranslation rewrites one alternate-language row of a space.
func UpdateSpaceTranslation(ctx context.Context, tx *Tx, id int, name, description string) error {
	if _, err := tx.Exec(ctx, `UPDATE st_spacei18n SET name = ?, description = ? WHERE id = ?`, name, description, id); err != nil {
		return fmt.Errorf("failed to update space translation %d: %w", id, err)
	}
	return nil
}

func translations(ctx context.Context, tx *Tx, query string, entityID int) ([]Translation, error) {
	rows, err := tx.Query(ctx, query+tx.Dialect().ForUpdate(), entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query translations: %w", err)
	}
	defer rows.Close()

	var ts []Translation
	for rows.Next() {
		var t Translation
		if err := rows.Scan(&t.ID, &t.EntityID, &t.Lang); err != nil {
			return nil, fmt.Errorf("failed to scan translation: %w", err)
		}
		ts = append(ts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return ts, nil
}
