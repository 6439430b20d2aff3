package query

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// GetMemory fetches a single memory by id, gated against the owner of
// its containing space.
func (uc *UseCase) GetMemory(ctx context.Context, caller authz.Principal, id midentifier.ID) (*mmodel.Memory, error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "query.get_memory")
	defer span.End()

	m, err := uc.MemoryRepo.Find(ctx, id)
	if err != nil {
		mlog.NewLoggerFromContext(ctx).Errorf("getting memory %s: %v", id, err)
		return nil, err
	}

	sp, err := uc.SpaceRepo.Find(ctx, m.SpaceID)
	if err != nil {
		return nil, err
	}

	if !sp.PublicRead {
		if err := authz.Gate(caller, authz.VerbGet, authz.ResourceMemory, &sp.OwnerID); err != nil {
			return nil, err
		}
	}

	return m, nil
}
