package scrub

import (
	"context"

	"github.com/ledantec/dbscrub/internal/ssv"
	"github.com/ledantec/dbscrub/internal/store"
)

// Authorizations records the platform's access control entries in the audit
// files. The entries themselves carry no personal data; the records let an
// operator check that rights survived the run untouched.
type Authorizations struct {
	audit *ssv.Logger
}

func (s *Authorizations) Name() string { return "access rights" }

func (s *Authorizations) Scrub(ctx context.Context, tx *store.Tx) error {
	userACEs, err := store.UserACEs(ctx, tx)
	if err != nil {
		return err
	}
	for _, e := range userACEs {
		if err := s.audit.UserACE(e.InstanceID, e.UserID, e.Role); err != nil {
			return err
		}
	}

	groupACEs, err := store.GroupACEs(ctx, tx)
	if err != nil {
		return err
	}
	for _, e := range groupACEs {
		if err := s.audit.GroupACE(e.InstanceID, e.GroupID, e.Role); err != nil {
			return err
		}
	}
	return nil
}
