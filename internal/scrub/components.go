package scrub

import (
	"context"

	"github.com/ledantec/dbscrub/internal/anonym"
	"github.com/ledantec/dbscrub/internal/shared"
	"github.com/ledantec/dbscrub/internal/ssv"
	"github.com/ledantec/dbscrub/internal/store"
)

// Components renames every component instance and its translations.
type Components struct {
	templates shared.LocalizedTemplates
	audit     *ssv.Logger
}

func (s *Components) Name() string { return "component instances" }

func (s *Components) Scrub(ctx context.Context, tx *store.Tx) error {
	components, err := store.Components(ctx, tx)
	if err != nil {
		return err
	}

	for _, row := range components {
		var space *int
		if row.SpaceID.Valid {
			sp := int(row.SpaceID.Int64)
			space = &sp
		}

		inst := anonym.NewAppInst(row.Component, row.ID, space, locale(row.Lang), s.templates)
		if err := store.UpdateComponent(ctx, tx, inst.RowID, inst.Name, inst.Description); err != nil {
			return err
		}

		translations, err := store.ComponentTranslations(ctx, tx, row.ID)
		if err != nil {
			return err
		}
		for _, t := range translations {
			tr := anonym.NewAppInst(row.Component, row.ID, space, t.Lang, s.templates)
			if err := store.UpdateComponentTranslation(ctx, tx, t.ID, tr.Name, tr.Description); err != nil {
				return err
			}
		}

		if err := s.audit.Component(inst.ID, inst.SpaceID, inst.Name); err != nil {
			return err
		}
	}
	return nil
}
