package scrub

import (
	"context"

	"github.com/ledantec/dbscrub/internal/anonym"
	"github.com/ledantec/dbscrub/internal/shared"
	"github.com/ledantec/dbscrub/internal/store"
)

// Groups renames every platform group, plus the rows of the internal
// domain's own group table. Descriptions are cleared wholesale.
type Groups struct {
	templates shared.GroupTemplates
}

func (s *Groups) Name() string { return "groups" }

func (s *Groups) Scrub(ctx context.Context, tx *store.Tx) error {
	groups, err := store.Groups(ctx, tx)
	if err != nil {
		return err
	}
	for _, row := range groups {
		g := anonym.NewGroup(row.ID, s.templates)
		if err := store.UpdateGroupName(ctx, tx, row.ID, g.Name); err != nil {
			return err
		}
	}

	ids, err := defaultStorage.GroupIDs(ctx, tx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		g := anonym.NewGroup(id, s.templates)
		if err := defaultStorage.UpdateGroup(ctx, tx, id, g.Name); err != nil {
			return err
		}
	}
	return nil
}
