package anonym

import (
	"fmt"

	"github.com/ledantec/dbscrub/internal/shared"
)

// Space holds the placeholder values for a scrubbed collaborative space. The
// string ID ("WA<n>") is the platform's external space identifier, recorded
// in the audit file; the database row keeps its numeric id.
type Space struct {
	RowID       int
	ID          string
	ParentID    string
	Name        string
	Description string
}

// NewSpace builds the placeholder values for the space with the given id.
// parent is nil for root spaces.
func NewSpace(id int, parent *int, locale string, tpl shared.LocalizedTemplates) Space {
	parentID := ""
	if parent != nil {
		parentID = fmt.Sprintf("WA%d", *parent)
	}
	return Space{
		RowID:       id,
		ID:          fmt.Sprintf("WA%d", id),
		ParentID:    parentID,
		Name:        entityName(tpl.Name[locale], "Space", id),
		Description: tpl.Description[locale],
	}
}
