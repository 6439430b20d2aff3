package command

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// DeleteMemory removes a memory row. The embedding vector is removed by
// the same statement, since it lives in a column of the same row. The
// blob originalContentRef points at is also removed, best-effort: a
// failure there is logged, not returned, since the row is already gone
// by that point.
func (uc *UseCase) DeleteMemory(ctx context.Context, caller authz.Principal, id midentifier.ID) error {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.delete_memory")
	defer span.End()

	m, err := uc.MemoryRepo.Find(ctx, id)
	if err != nil {
		return err
	}

	sp, err := uc.SpaceRepo.Find(ctx, m.SpaceID)
	if err != nil {
		return err
	}

	if err := authz.Gate(caller, authz.VerbDelete, authz.ResourceMemory, &sp.OwnerID); err != nil {
		return err
	}

	if err := uc.MemoryRepo.Delete(ctx, id); err != nil {
		logger.Errorf("deleting memory %s: %v", id, err)
		return err
	}

	if uc.ObjectStore != nil {
		if err := uc.ObjectStore.Remove(ctx, uc.ContentBucket, m.OriginalContentRef); err != nil {
			logger.Errorf("removing blob %s for deleted memory %s: %v", m.OriginalContentRef, id, err)
		}
	}

	return nil
}
