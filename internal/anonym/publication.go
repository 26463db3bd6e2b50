package anonym

import "github.com/ledantec/dbscrub/internal/shared"

// Publication holds the placeholder values for a scrubbed publication. The
// keywords are always cleared: free-text keywords cannot be templated without
// leaking the original vocabulary.
type Publication struct {
	ID          int
	InstanceID  string
	NodeID      int
	Name        string
	Description string
}

// NewPublication builds the placeholder values for the publication with the
// given id. nodeID is NoParent for publications outside any node.
func NewPublication(id int, instanceID string, nodeID int, locale string, tpl shared.LocalizedTemplates) Publication {
	return Publication{
		ID:          id,
		InstanceID:  instanceID,
		NodeID:      nodeID,
		Name:        entityName(tpl.Name[locale], "Publication", id),
		Description: tpl.Description[locale],
	}
}
