package command

import (
	"context"
	"time"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// UpdateApiKey updates an API key's status and/or labels, then evicts
// the auth cache entry so the change takes effect on the next request
// rather than waiting out the cache TTL.
func (uc *UseCase) UpdateApiKey(ctx context.Context, caller authz.Principal, id midentifier.ID, in *mmodel.UpdateApiKeyInput) (*mmodel.ApiKey, error) {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.update_apikey")
	defer span.End()

	existing, err := uc.ApiKeyRepo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Gate(caller, authz.VerbUpdate, authz.ResourceAPIKey, &existing.UserID); err != nil {
		return nil, err
	}

	labels, err := in.LabelUpdate.Resolve(existing.Labels)
	if err != nil {
		return nil, err
	}

	existing.Labels = labels

	if in.Status != nil {
		existing.Status = *in.Status
	}

	existing.UpdatedAt = mmodel.NewMillisTime(time.Now())
	existing.UpdatedByID = caller.ID

	updated, err := uc.ApiKeyRepo.Update(ctx, id, existing)
	if err != nil {
		logger.Errorf("updating api key %s: %v", id, err)
		return nil, err
	}

	uc.evictAPIKeyCache(ctx, id)

	return updated, nil
}

// evictAPIKeyCache drops the auth-cache entry for id's current hash.
// Failure to evict is logged, never returned: the cache TTL bounds
// staleness even if this best-effort step fails.
func (uc *UseCase) evictAPIKeyCache(ctx context.Context, id midentifier.ID) {
	if uc.CacheRepo == nil {
		return
	}

	hash, err := uc.ApiKeyRepo.FindHashByID(ctx, id)
	if err != nil {
		mlog.NewLoggerFromContext(ctx).Warnf("could not evict auth cache for api key %s: %v", id, err)
		return
	}

	if err := uc.CacheRepo.Del(ctx, "apikey:"+hash); err != nil {
		mlog.NewLoggerFromContext(ctx).Warnf("evicting auth cache for api key %s: %v", id, err)
	}
}
