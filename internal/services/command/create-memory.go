package command

import (
	"context"
	"time"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/adapters/queue"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// CreateMemory registers a memory whose content is already uploaded to
// the object store under OriginalContentRef, and publishes an
// embedding.requested event so an external worker can compute its
// vector. The memory starts PENDING.
func (uc *UseCase) CreateMemory(ctx context.Context, caller authz.Principal, in *mmodel.CreateMemoryInput) (*mmodel.Memory, error) {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.create_memory")
	defer span.End()

	sp, err := uc.SpaceRepo.Find(ctx, in.SpaceID)
	if err != nil {
		if _, ok := err.(constant.EntityNotFoundError); ok {
			return nil, constant.FailedPreconditionError{Message: constant.ErrUnknownSpace.Error()}
		}

		return nil, err
	}

	if err := authz.Gate(caller, authz.VerbCreate, authz.ResourceMemory, &sp.OwnerID); err != nil {
		return nil, err
	}

	if uc.ObjectStore != nil {
		if err := uc.ObjectStore.Stat(ctx, uc.ContentBucket, in.OriginalContentRef); err != nil {
			return nil, constant.FailedPreconditionError{Message: "originalContentRef does not reference an uploaded object"}
		}
	}

	now := mmodel.NewMillisTime(time.Now())

	m := &mmodel.Memory{
		ID:                 midentifier.New(),
		SpaceID:            in.SpaceID,
		OriginalContentRef: in.OriginalContentRef,
		ContentType:        in.ContentType,
		Metadata:           in.Metadata,
		ProcessingStatus:   mmodel.ProcessingPending,
		CreatedAt:          now,
		UpdatedAt:          now,
		CreatedByID:        caller.ID,
		UpdatedByID:        caller.ID,
	}

	created, err := uc.MemoryRepo.Create(ctx, m)
	if err != nil {
		logger.Errorf("creating memory: %v", err)
		return nil, err
	}

	if uc.QueueRepo != nil {
		if err := uc.QueueRepo.PublishEmbeddingRequested(ctx, queue.EmbeddingRequested{MemoryID: created.ID, SpaceID: created.SpaceID}); err != nil {
			logger.Warnf("failed to publish embedding.requested for memory %s: %v", created.ID, err)
		}
	}

	return created, nil
}
