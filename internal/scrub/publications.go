package scrub

import (
	"context"
	"strconv"

	"github.com/ledantec/dbscrub/internal/anonym"
	"github.com/ledantec/dbscrub/internal/shared"
	"github.com/ledantec/dbscrub/internal/ssv"
	"github.com/ledantec/dbscrub/internal/store"
)

// Publications renames every publication and its translations. Keywords are
// free text and are cleared rather than templated.
type Publications struct {
	templates shared.LocalizedTemplates
	audit     *ssv.Logger
}

func (s *Publications) Name() string { return "publications" }

func (s *Publications) Scrub(ctx context.Context, tx *store.Tx) error {
	publications, err := store.Publications(ctx, tx)
	if err != nil {
		return err
	}

	for _, row := range publications {
		nodeID := anonym.NoParent
		if row.NodeID.Valid {
			nodeID = int(row.NodeID.Int64)
		}

		p := anonym.NewPublication(row.ID, row.InstanceID, nodeID, locale(row.Lang), s.templates)
		if err := store.UpdatePublication(ctx, tx, p.ID, p.Name, p.Description); err != nil {
			return err
		}

		translations, err := store.PublicationTranslations(ctx, tx, row.ID)
		if err != nil {
			return err
		}
		for _, t := range translations {
			tr := anonym.NewPublication(row.ID, row.InstanceID, nodeID, t.Lang, s.templates)
			if err := store.UpdatePublicationTranslation(ctx, tx, t.ID, tr.Name, tr.Description); err != nil {
				return err
			}
		}

		node := ""
		if row.NodeID.Valid {
			node = strconv.FormatInt(row.NodeID.Int64, 10)
		}
		if err := s.audit.Publication(p.ID, p.InstanceID, node, p.Name); err != nil {
			return err
		}
	}
	return nil
}
