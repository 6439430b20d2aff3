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

// CreateApiKey issues a new API key. The raw secret is returned exactly
// once, embedded in the CreatedApiKey response.
func (uc *UseCase) CreateApiKey(ctx context.Context, caller authz.Principal, in *mmodel.CreateApiKeyInput) (*mmodel.CreatedApiKey, error) {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.create_apikey")
	defer span.End()

	ownerID, err := authz.EffectiveOwner(caller, authz.ResourceAPIKey, in.OwnerID)
	if err != nil {
		return nil, err
	}

	rawSecret, hashedKey, prefix, err := generateAPIKeySecret()
	if err != nil {
		logger.Errorf("generating api key secret: %v", err)
		return nil, err
	}

	now := mmodel.NewMillisTime(time.Now())

	key := &mmodel.ApiKey{
		ID:          midentifier.New(),
		UserID:      ownerID,
		KeyPrefix:   prefix,
		Status:      mmodel.ApiKeyStatusActive,
		Labels:      in.Labels,
		ExpiresAt:   in.ExpiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedByID: caller.ID,
		UpdatedByID: caller.ID,
	}

	created, err := uc.ApiKeyRepo.Create(ctx, key, hashedKey)
	if err != nil {
		logger.Errorf("creating api key: %v", err)
		return nil, err
	}

	return &mmodel.CreatedApiKey{ApiKey: *created, RawSecret: rawSecret}, nil
}
