package anonym

import (
	"fmt"

	"github.com/ledantec/dbscrub/internal/shared"
)

// AppInst holds the placeholder values for a scrubbed component instance.
// When no template prefix is configured the component name itself prefixes
// the placeholder, so a "kmelia" instance falls back to "kmelia <id>".
type AppInst struct {
	App         string
	RowID       int
	ID          string
	SpaceID     string
	Name        string
	Description string
}

// NewAppInst builds the placeholder values for an instance of the given
// component. space is nil for orphan instances.
func NewAppInst(app string, id int, space *int, locale string, tpl shared.LocalizedTemplates) AppInst {
	spaceID := ""
	if space != nil {
		spaceID = fmt.Sprintf("WA%d", *space)
	}
	return AppInst{
		App:         app,
		RowID:       id,
		ID:          fmt.Sprintf("%s%d", app, id),
		SpaceID:     spaceID,
		Name:        entityName(tpl.Name[locale], app, id),
		Description: tpl.Description[locale],
	}
}
