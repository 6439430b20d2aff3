package command

import (
	"context"
	"fmt"
	"time"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// CreateEmbedder registers a new embedder connection. The
// (endpointURL, apiPath, modelIdentifier) triple must be unique across
// all embedders.
func (uc *UseCase) CreateEmbedder(ctx context.Context, caller authz.Principal, in *mmodel.CreateEmbedderInput) (*mmodel.Embedder, error) {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.create_embedder")
	defer span.End()

	ownerID, err := authz.EffectiveOwner(caller, authz.ResourceEmbedder, in.OwnerID)
	if err != nil {
		return nil, err
	}

	// ParseProviderType is total: anything outside the closed provider
	// set, including an explicit "UNSPECIFIED", normalizes to
	// ProviderUnspecified and is refused here.
	providerType := mmodel.ParseProviderType(string(in.ProviderType))
	if providerType == mmodel.ProviderUnspecified {
		return nil, constant.ValidationError{Field: "providerType", Message: "providerType must be one of OPENAI, VLLM, TEI"}
	}

	existing, err := uc.EmbedderRepo.FindByConnection(ctx, in.EndpointURL, in.APIPath, in.ModelIdentifier)
	if err != nil {
		if _, ok := err.(constant.EntityNotFoundError); !ok {
			logger.Errorf("checking embedder connection uniqueness: %v", err)
			return nil, constant.InternalError{Message: "failed to check embedder connection", Err: err}
		}
	}

	if existing != nil {
		return nil, constant.EntityConflictError{EntityType: "Embedder", Message: fmt.Sprintf("%s: endpoint %q, path %q, model %q", constant.ErrEmbedderConnTaken.Error(), in.EndpointURL, in.APIPath, in.ModelIdentifier)}
	}

	now := mmodel.NewMillisTime(time.Now())

	e := &mmodel.Embedder{
		ID:                  midentifier.New(),
		DisplayName:         in.DisplayName,
		Description:         in.Description,
		ProviderType:        providerType,
		EndpointURL:         in.EndpointURL,
		APIPath:             in.APIPath,
		ModelIdentifier:     in.ModelIdentifier,
		Dimensionality:      in.Dimensionality,
		MaxSequenceLength:   in.MaxSequenceLength,
		SupportedModalities: in.SupportedModalities,
		Labels:              in.Labels,
		Version:             1,
		MonitoringEndpoint:  in.MonitoringEndpoint,
		OwnerID:             ownerID,
		CreatedAt:           now,
		UpdatedAt:           now,
		CreatedByID:         caller.ID,
		UpdatedByID:         caller.ID,
	}

	created, err := uc.EmbedderRepo.Create(ctx, e, in.Credentials)
	if err != nil {
		logger.Errorf("creating embedder: %v", err)
		return nil, err
	}

	return created, nil
}
