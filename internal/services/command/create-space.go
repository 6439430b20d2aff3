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

// CreateSpace creates a new space bound to an embedder. Space names must
// be unique per owner; the referenced embedder must exist. If the
// request omits embedderId, uc.DefaultEmbedderID is used instead.
func (uc *UseCase) CreateSpace(ctx context.Context, caller authz.Principal, in *mmodel.CreateSpaceInput) (*mmodel.Space, error) {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.create_space")
	defer span.End()

	ownerID, err := authz.EffectiveOwner(caller, authz.ResourceSpace, in.OwnerID)
	if err != nil {
		return nil, err
	}

	embedderID := in.EmbedderID
	if embedderID == nil {
		embedderID = uc.DefaultEmbedderID
	}

	if embedderID == nil {
		return nil, constant.ValidationError{Field: "embedderId", Message: "embedderId is required: no server-side default embedder is configured"}
	}

	if _, err := uc.EmbedderRepo.Find(ctx, *embedderID); err != nil {
		if _, ok := err.(constant.EntityNotFoundError); ok {
			return nil, constant.FailedPreconditionError{Message: constant.ErrUnknownEmbedder.Error()}
		}

		return nil, err
	}

	existing, err := uc.SpaceRepo.FindByOwnerAndName(ctx, ownerID, in.Name)
	if err != nil {
		if _, ok := err.(constant.EntityNotFoundError); !ok {
			logger.Errorf("checking space name uniqueness: %v", err)
			return nil, constant.InternalError{Message: "failed to check space name", Err: err}
		}
	}

	if existing != nil {
		return nil, constant.EntityConflictError{EntityType: "Space", Message: fmt.Sprintf("%s: %q", constant.ErrSpaceNameTaken.Error(), in.Name)}
	}

	now := mmodel.NewMillisTime(time.Now())

	s := &mmodel.Space{
		ID:          midentifier.New(),
		Name:        in.Name,
		OwnerID:     ownerID,
		EmbedderID:  *embedderID,
		Labels:      in.Labels,
		PublicRead:  in.PublicRead,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedByID: caller.ID,
		UpdatedByID: caller.ID,
	}

	created, err := uc.SpaceRepo.Create(ctx, s)
	if err != nil {
		logger.Errorf("creating space: %v", err)
		return nil, err
	}

	return created, nil
}
