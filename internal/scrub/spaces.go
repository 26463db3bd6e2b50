package scrub

import (
	"context"

	"github.com/ledantec/dbscrub/internal/anonym"
	"github.com/ledantec/dbscrub/internal/shared"
	"github.com/ledantec/dbscrub/internal/ssv"
	"github.com/ledantec/dbscrub/internal/store"
)

// Spaces renames every shared collaborative space and its translations.
// Personal spaces keep their canonical name.
type Spaces struct {
	templates shared.LocalizedTemplates
	audit     *ssv.Logger
}

func (s *Spaces) Name() string { return "spaces" }

func (s *Spaces) Scrub(ctx context.Context, tx *store.Tx) error {
	spaces, err := store.SharedSpaces(ctx, tx)
	if err != nil {
		return err
	}

	for _, row := range spaces {
		var parent *int
		if row.Parent.Valid && row.Parent.Int64 > 0 {
			p := int(row.Parent.Int64)
			parent = &p
		}

		sp := anonym.NewSpace(row.ID, parent, locale(row.Lang), s.templates)
		if err := store.UpdateSpace(ctx, tx, sp.RowID, sp.Name, sp.Description); err != nil {
			return err
		}

		translations, err := store.SpaceTranslations(ctx, tx, row.ID)
		if err != nil {
			return err
		}
		for _, t := range translations {
			tr := anonym.NewSpace(row.ID, parent, t.Lang, s.templates)
			if err := store.UpdateSpaceTranslation(ctx, tx, t.ID, tr.Name, tr.Description); err != nil {
				return err
			}
		}

		if err := s.audit.Space(sp.ID, sp.ParentID, sp.Name); err != nil {
			return err
		}
	}
	return nil
}
