package store

import (
	"context"
	"fmt"
)

// Membership is a group membership scoped to one domain, expressed through
// the specific identifiers of its two endpoints. After user and group
// migration those identifiers carry the freshly derived numeric values.
type Membership struct {
	UserSpecificID  string
	GroupSpecificID string
}

// DomainMemberships lists the membership rows whose user and group both
// belong to the given domain. Rows pointing outside the domain are not part
// of its migration, and deleted users are left out so the migrated relation
// table only references migrated users.
func DomainMemberships(ctx context.Context, tx *Tx, domainID int) ([]Membership, error) {
	query := `
		SELECT u.specificid, g.specificid
		FROM st_group_user_rel r
		JOIN st_user u ON u.id = r.userid
		JOIN st_group g ON g.id = r.groupid
		WHERE u.domainid = ? AND g.domainid = ? AND u.state <> 'DELETED'
		ORDER BY u.id, g.id`

	rows, err := tx.Query(ctx, query, domainID, domainID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships of domain %d: %w", domainID, err)
	}
	defer rows.Close()

	var memberships []Membership
	for rows.Next() {
		var m Membership
		if err := rows.Scan(&m.UserSpecificID, &m.GroupSpecificID); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return memberships, nil
}
