package store

import (
	"context"
	"database/sql"
	"fmt"
)

// PublicationRow is a row of the sb_publication_publi table joined with its
// optional father node.
type PublicationRow struct {
	ID         int
	InstanceID string
	NodeID     sql.NullInt64
	Lang       sql.NullString
}

// Publications lists every publication with its father node, in ascending id
// order.
func Publications(ctx context.Context, tx *Tx) ([]PublicationRow, error) {
	query := `
		SELECT p.pubid, p.instanceid, f.nodeid, p.lang
		FROM sb_publication_publi p
		LEFT JOIN sb_publication_publifather f ON f.pubid = p.pubid
		ORDER BY p.pubid` + tx.Dialect().ForUpdate()

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query publications: %w", err)
	}
	defer rows.Close()

	var pubs []PublicationRow
	for rows.Next() {
		var p PublicationRow
		if err := rows.Scan(&p.ID, &p.InstanceID, &p.NodeID, &p.Lang); err != nil {
			return nil, fmt.Errorf("failed to scan publication: %w", err)
		}
		pubs = append(pubs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return pubs, nil
}

// UpdatePublication rewrites the name and description of a publication and
// clears its keywords.
func UpdatePublication(ctx context.Context, tx *Tx, id int, name, description string) error {
	query := `UPDATE sb_publication_publi SET pubname = ?, pubdescription = ?, pubkeywords = NULL WHERE pubid = ?`
	if _, err := tx.Exec(ctx, query, name, description, id); err != nil {
		return fmt.Errorf("failed to update publication %d: %w", id, err)
	}
	return nil
}

// PublicationTranslations lists the alternate-language rows of the given
// publication.
func PublicationTranslations(ctx context.Context, tx *Tx, pubID int) ([]Translation, error) {
	return translations(ctx, tx, `SELECT id, pubid, lang FROM sb_publication_publii18n WHERE pubid = ? ORDER BY id`, pubID)
}

// UpdatePublicationTranslation rewrites one alternate-language row of a
// publication, clearing its keywords.
func UpdatePublicationTranslation(ctx context.Context, tx *Tx, id int, name, description string) error {
	query := `UPDATE sb_publication_publii18n SET name = ?, description = ?, keywords = NULL WHERE id = ?`
	if _, err := tx.Exec(ctx, query, name, description, id); err != nil {
		return fmt.Errorf("failed to update publication translation %d: %w", id, err)
	}
	return nil
}
