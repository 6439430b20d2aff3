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

// UpdateEmbedder updates an embedder's mutable fields. ProviderType and
// Dimensionality are immutable once created and are intentionally
// absent from mmodel.UpdateEmbedderInput. Every successful update bumps
// Version.
func (uc *UseCase) UpdateEmbedder(ctx context.Context, caller authz.Principal, id midentifier.ID, in *mmodel.UpdateEmbedderInput) (*mmodel.Embedder, error) {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.update_embedder")
	defer span.End()

	existing, err := uc.EmbedderRepo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Gate(caller, authz.VerbUpdate, authz.ResourceEmbedder, &existing.OwnerID); err != nil {
		return nil, err
	}

	labels, err := in.LabelUpdate.Resolve(existing.Labels)
	if err != nil {
		return nil, err
	}

	existing.Labels = labels

	if in.DisplayName != nil {
		existing.DisplayName = *in.DisplayName
	}

	if in.Description != nil {
		existing.Description = *in.Description
	}

	if in.MaxSequenceLength != nil {
		existing.MaxSequenceLength = in.MaxSequenceLength
	}

	if in.MonitoringEndpoint != nil {
		existing.MonitoringEndpoint = *in.MonitoringEndpoint
	}

	existing.Version++
	existing.UpdatedAt = mmodel.NewMillisTime(time.Now())
	existing.UpdatedByID = caller.ID

	updated, err := uc.EmbedderRepo.Update(ctx, id, existing, in.Credentials)
	if err != nil {
		logger.Errorf("updating embedder %s: %v", id, err)
		return nil, err
	}

	return updated, nil
}
