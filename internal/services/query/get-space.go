package query

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// GetSpace fetches a single space by id. Public-read spaces are
// readable by any authenticated caller; everything else is
// permission-gated against the row's owner.
func (uc *UseCase) GetSpace(ctx context.Context, caller authz.Principal, id midentifier.ID) (*mmodel.Space, error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "query.get_space")
	defer span.End()

	s, err := uc.SpaceRepo.Find(ctx, id)
	if err != nil {
		mlog.NewLoggerFromContext(ctx).Errorf("getting space %s: %v", id, err)
		return nil, err
	}

	if !s.PublicRead {
		if err := authz.Gate(caller, authz.VerbGet, authz.ResourceSpace, &s.OwnerID); err != nil {
			return nil, err
		}
	}

	return s, nil
}
