package command

import (
	"context"
	"fmt"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// AdvanceMemoryProcessingStatus moves a memory's processing status
// forward, called by the embedding worker's completion callback rather
// than by an end user. Illegal transitions (anything outside
// PENDING->PROCESSING->COMPLETED|FAILED) are rejected.
func (uc *UseCase) AdvanceMemoryProcessingStatus(ctx context.Context, id midentifier.ID, next mmodel.ProcessingStatus, vector []float32) (*mmodel.Memory, error) {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.advance_memory_processing_status")
	defer span.End()

	m, err := uc.MemoryRepo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !m.ProcessingStatus.CanTransitionTo(next) {
		return nil, constant.FailedPreconditionError{Message: fmt.Sprintf("cannot transition memory %s from %s to %s", id, m.ProcessingStatus, next)}
	}

	if next == mmodel.ProcessingCompleted && len(vector) > 0 {
		// The stored vector's dimensionality must equal the bound
		// embedder's, resolved through the memory's space.
		sp, err := uc.SpaceRepo.Find(ctx, m.SpaceID)
		if err != nil {
			return nil, err
		}

		emb, err := uc.EmbedderRepo.Find(ctx, sp.EmbedderID)
		if err != nil {
			return nil, err
		}

		if len(vector) != emb.Dimensionality {
			return nil, constant.ValidationError{Field: "vector", Message: fmt.Sprintf("vector has %d dimensions, embedder %s expects %d", len(vector), emb.ID, emb.Dimensionality)}
		}

		if err := uc.MemoryRepo.UpdateVector(ctx, id, vector); err != nil {
			logger.Errorf("updating vector for memory %s: %v", id, err)
			return nil, err
		}
	}

	updated, err := uc.MemoryRepo.UpdateProcessingStatus(ctx, id, next)
	if err != nil {
		logger.Errorf("updating processing status for memory %s: %v", id, err)
		return nil, err
	}

	return updated, nil
}
