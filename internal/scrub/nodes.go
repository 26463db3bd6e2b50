package scrub

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/ledantec/dbscrub/internal/anonym"
	"github.com/ledantec/dbscrub/internal/shared"
	"github.com/ledantec/dbscrub/internal/ssv"
	"github.com/ledantec/dbscrub/internal/store"
)

// Nodes renames the user-created categorization nodes and their
// translations. The placeholder vocabulary follows the owning component:
// folders for document libraries, albums for galleries, categories
// elsewhere.
type Nodes struct {
	templates shared.TemplatesConfig
	audit     *ssv.Logger
	logger    *log.Logger
}

func (s *Nodes) Name() string { return "nodes" }

func (s *Nodes) Scrub(ctx context.Context, tx *store.Tx) error {
	nodes, err := store.UserNodes(ctx, tx)
	if err != nil {
		return err
	}

	for _, row := range nodes {
		parent := anonym.NoParent
		if row.Parent.Valid {
			parent = int(row.Parent.Int64)
		}

		n := anonym.NewNode(row.ID, row.InstanceID, parent, locale(row.Lang), s.templates)
		if err := store.UpdateNode(ctx, tx, n.ID, n.InstanceID, n.Name, n.Description); err != nil {
			return err
		}

		translations, err := store.NodeTranslations(ctx, tx, row.ID)
		if err != nil {
			return err
		}
		for _, t := range translations {
			tr := anonym.NewNode(row.ID, row.InstanceID, parent, t.Lang, s.templates)
			if err := store.UpdateNodeTranslation(ctx, tx, t.ID, tr.Name, tr.Description); err != nil {
				return err
			}
		}

		if err := s.audit.Node(n.ID, n.InstanceID, n.Parent, n.Name); err != nil {
			return err
		}
	}

	deleted, err := store.DeleteOrphanNodeTranslations(ctx, tx)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("deleted orphan node translations", "count", deleted)
	}
	return nil
}
