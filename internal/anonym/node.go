package anonym

import (
	"strings"

	"github.com/ledantec/dbscrub/internal/shared"
)

// NoParent marks a node without a father node.
const NoParent = -1

// Node holds the placeholder values for a scrubbed categorization node.
// A node is a labelled container of contributions: a folder in an EDM, an
// album in a media library, a category in a blog. The kind, and with it the
// template used, is derived from the owning component instance id.
type Node struct {
	ID          int
	InstanceID  string
	Parent      int
	Kind        string
	Name        string
	Description string
}

// NewNode builds the placeholder values for the node with the given id inside
// the given component instance.
func NewNode(id int, instanceID string, parent int, locale string, tpl shared.TemplatesConfig) Node {
	kind, templates := nodeTemplates(instanceID, tpl)
	return Node{
		ID:          id,
		InstanceID:  instanceID,
		Parent:      parent,
		Kind:        kind,
		Name:        entityName(templates.Name[locale], kind, id),
		Description: templates.Description[locale],
	}
}

// nodeTemplates selects the template set matching the component owning the
// node. Instance ids are "<component><counter>", e.g. "kmelia42".
func nodeTemplates(instanceID string, tpl shared.TemplatesConfig) (string, shared.LocalizedTemplates) {
	switch strings.TrimRight(instanceID, "0123456789") {
	case "kmelia", "kmax", "toolbox":
		return "Folder", tpl.Folder
	case "gallery":
		return "Album", tpl.Album
	default:
		return "Category", tpl.Category
	}
}
