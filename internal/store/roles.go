package store

import (
	"context"
	"fmt"
)

// ACE is one access control entry of a component instance: a role granted to
// a user or to a group. Exactly one of UserID and GroupID is set.
type ACE struct {
	InstanceID int
	UserID     int
	GroupID    int
	Role       string
}

// UserACEs lists the roles granted to users, ordered by instance then user.
func UserACEs(ctx context.Context, tx *Tx) ([]ACE, error) {
	query := `
		SELECT r.instanceid, u.userid, r.rolename
		FROM st_userrole r
		JOIN st_userrole_user_rel u ON u.userroleid = r.id
		ORDER BY r.instanceid, u.userid, r.rolename`
	return aces(ctx, tx, query, false)
}

// GroupACEs lists the roles granted to groups, ordered by instance then
// group.
func GroupACEs(ctx context.Context, tx *Tx) ([]ACE, error) {
	query := `
		SELECT r.instanceid, g.groupid, r.rolename
		FROM st_userrole r
		JOIN st_userrole_group_rel g ON g.userroleid = r.id
		ORDER BY r.instanceid, g.groupid, r.rolename`
	return aces(ctx, tx, query, true)
}

func aces(ctx context.Context, tx *Tx, query string, group bool) ([]ACE, error) {
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query access control entries: %w", err)
	}
	defer rows.Close()

	var entries []ACE
	for rows.Next() {
		var e ACE
		var grantee int
		if err := rows.Scan(&e.InstanceID, &grantee, &e.Role); err != nil {
			return nil, fmt.Errorf("failed to scan access control entry: %w", err)
		}
		if group {
			e.GroupID = grantee
		} else {
			e.UserID = grantee
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return entries, nil
}
