package store

import (
	"context"
	"database/sql"
	"fmt"
)

// NodeRow is a row of the sb_node_node table, identified by (nodeid,
// instanceid).
type NodeRow struct {
	ID         int
	InstanceID string
	Parent     sql.NullInt64
	Lang       sql.NullString
}

// UserNodes lists the user-created categorization nodes in (instance, node)
// order. The technical roots every component provisions are excluded: node 0
// everywhere, node 1 (trash) except in galleries, and node 2 (unclassified)
// except in blogs and galleries, where those ids hold user content.
func UserNodes(ctx context.Context, tx *Tx) ([]NodeRow, error) {
	query := `
		SELECT nodeid, instanceid, nodefatherid, lang
		FROM sb_node_node
		WHERE nodeid <> 0
		  AND NOT (nodeid = 1 AND instanceid NOT LIKE 'gallery%')
		  AND NOT (nodeid = 2 AND instanceid NOT LIKE 'blog%' AND instanceid NOT LIKE 'gallery%')
		ORDER BY instanceid, nodeid` + tx.Dialect().ForUpdate()

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	var nodes []NodeRow
	for rows.Next() {
		var n NodeRow
		if err := rows.Scan(&n.ID, &n.InstanceID, &n.Parent, &n.Lang); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return nodes, nil
}

// UpdateNode rewrites the name and description of a node row.
func UpdateNode(ctx context.Context, tx *Tx, id int, instanceID, name, description string) error {
	query := `UPDATE sb_node_node SET nodename = ?, nodedescription = ? WHERE nodeid = ? AND instanceid = ?`
	if _, err := tx.Exec(ctx, query, name, description, id, instanceID); err != nil {
		return fmt.Errorf("failed to update node %d of %s: %w", id, instanceID, err)
	}
	return nil
}

// NodeTranslations lists the alternate-language rows of the given node.
func NodeTranslations(ctx context.Context, tx *Tx, nodeID int) ([]Translation, error) {
	return translations(ctx, tx, `SELECT id, nodeid, lang FROM sb_node_nodei18n WHERE nodeid = ? ORDER BY id`, nodeID)
}

// UpdateNodeTranslation rewrites one alternate-language row of a node.
func UpdateNodeTranslation(ctx context.Context, tx *Tx, id int, name, description string) error {
	if _, err := tx.Exec(ctx, `UPDATE sb_node_nodei18n SET nodename = ?, nodedescription = ? WHERE id = ?`, name, description, id); err != nil {
		return fmt.Errorf("failed to update node translation %d: %w", id, err)
	}
	return nil
}

// DeleteOrphanNodeTranslations removes alternate-language rows whose node is
// gone. Component uninstalls leave those behind and they would otherwise keep
// their original wording.
func DeleteOrphanNodeTranslations(ctx context.Context, tx *Tx) (int64, error) {
	res, err := tx.Exec(ctx, `DELETE FROM sb_node_nodei18n WHERE nodeid NOT IN (SELECT nodeid FROM sb_node_node)`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphan node translations: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
