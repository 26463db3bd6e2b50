package anonym

import "github.com/ledantec/dbscrub/internal/shared"

// Group holds the placeholder values for a scrubbed user group. The
// description is always cleared, so only the name is carried.
type Group struct {
	ID   int
	Name string
}

// NewGroup builds the placeholder values for the group with the given id.
func NewGroup(id int, tpl shared.GroupTemplates) Group {
	return Group{
		ID:   id,
		Name: entityName(tpl.Name, "Group", id),
	}
}
