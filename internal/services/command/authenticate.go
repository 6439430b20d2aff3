package command

import (
	"context"
	"encoding/json"
	"time"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

const apiKeyCacheTTL = 5 * time.Minute

// Authenticate implements the x-api-key authentication interceptor's
// core logic: hash the raw secret, look up the ApiKey (via a
// Redis cache-aside, falling back to Postgres on a miss), verify it is
// ACTIVE and unexpired, resolve the owning user, and fire off a
// best-effort async lastUsedAt update that never fails the call.
func (uc *UseCase) Authenticate(ctx context.Context, rawSecret string) (authz.Principal, error) {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.authenticate")
	defer span.End()

	hashed := hashAPIKeySecret(rawSecret)

	key, err := uc.findAPIKeyByHash(ctx, hashed)
	if err != nil {
		return authz.Principal{}, err
	}

	if key.Status != mmodel.ApiKeyStatusActive {
		return authz.Principal{}, constant.UnauthenticatedError{Message: "api key is not active"}
	}

	if key.ExpiresAt != nil && key.ExpiresAt.Time().Before(time.Now()) {
		return authz.Principal{}, constant.UnauthenticatedError{Message: "api key has expired"}
	}

	u, err := uc.UserRepo.Find(ctx, key.UserID)
	if err != nil {
		return authz.Principal{}, constant.UnauthenticatedError{Message: "api key owner does not exist"}
	}

	role := mmodel.RoleUser
	if u.HasRole(mmodel.RoleRoot) {
		role = mmodel.RoleRoot
	}

	go func() {
		if err := uc.ApiKeyRepo.TouchLastUsed(context.Background(), key.ID); err != nil {
			logger.Warnf("failed to update lastUsedAt for api key %s: %v", key.ID, err)
		}
	}()

	return authz.Principal{ID: u.ID, Role: role}, nil
}

func (uc *UseCase) findAPIKeyByHash(ctx context.Context, hashed string) (*mmodel.ApiKey, error) {
	cacheKey := "apikey:" + hashed

	if uc.CacheRepo != nil {
		if cached, ok, err := uc.CacheRepo.Get(ctx, cacheKey); err == nil && ok {
			var key mmodel.ApiKey
			if err := json.Unmarshal([]byte(cached), &key); err == nil {
				return &key, nil
			}
		}
	}

	key, err := uc.ApiKeyRepo.FindByHash(ctx, hashed)
	if err != nil {
		if _, ok := err.(constant.EntityNotFoundError); ok {
			return nil, constant.UnauthenticatedError{Message: "invalid api key"}
		}

		return nil, err
	}

	if uc.CacheRepo != nil {
		if encoded, err := json.Marshal(key); err == nil {
			_ = uc.CacheRepo.Set(ctx, cacheKey, string(encoded), apiKeyCacheTTL)
		}
	}

	return key, nil
}
