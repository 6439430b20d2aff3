package command

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// DeleteApiKey revokes an API key permanently and evicts its auth cache
// entry.
func (uc *UseCase) DeleteApiKey(ctx context.Context, caller authz.Principal, id midentifier.ID) error {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.delete_apikey")
	defer span.End()

	existing, err := uc.ApiKeyRepo.Find(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.Gate(caller, authz.VerbDelete, authz.ResourceAPIKey, &existing.UserID); err != nil {
		return err
	}

	uc.evictAPIKeyCache(ctx, id)

	if err := uc.ApiKeyRepo.Delete(ctx, id); err != nil {
		logger.Errorf("deleting api key %s: %v", id, err)
		return err
	}

	return nil
}
