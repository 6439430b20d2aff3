package query

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// GetApiKey fetches a single API key by id, permission-gated against the owning user. The raw
// secret is never retrievable after creation.
func (uc *UseCase) GetApiKey(ctx context.Context, caller authz.Principal, id midentifier.ID) (*mmodel.ApiKey, error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "query.get_apikey")
	defer span.End()

	k, err := uc.ApiKeyRepo.Find(ctx, id)
	if err != nil {
		mlog.NewLoggerFromContext(ctx).Errorf("getting api key %s: %v", id, err)
		return nil, err
	}

	if err := authz.Gate(caller, authz.VerbGet, authz.ResourceAPIKey, &k.UserID); err != nil {
		return nil, err
	}

	return k, nil
}
