package command

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// DeleteSpace removes a space and, transitively via the database's
// cascade, every memory it contains.
func (uc *UseCase) DeleteSpace(ctx context.Context, caller authz.Principal, id midentifier.ID) error {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.delete_space")
	defer span.End()

	existing, err := uc.SpaceRepo.Find(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.Gate(caller, authz.VerbDelete, authz.ResourceSpace, &existing.OwnerID); err != nil {
		return err
	}

	if err := uc.SpaceRepo.Delete(ctx, id); err != nil {
		logger.Errorf("deleting space %s: %v", id, err)
		return err
	}

	return nil
}
