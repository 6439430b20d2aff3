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

// UpdateSpace updates a space's name, public-read flag, and/or labels.
// EmbedderID is immutable once the space may have memories embedded
// against it.
func (uc *UseCase) UpdateSpace(ctx context.Context, caller authz.Principal, id midentifier.ID, in *mmodel.UpdateSpaceInput) (*mmodel.Space, error) {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.update_space")
	defer span.End()

	existing, err := uc.SpaceRepo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Gate(caller, authz.VerbUpdate, authz.ResourceSpace, &existing.OwnerID); err != nil {
		return nil, err
	}

	labels, err := in.LabelUpdate.Resolve(existing.Labels)
	if err != nil {
		return nil, err
	}

	existing.Labels = labels

	if in.Name != nil && *in.Name != existing.Name {
		conflict, err := uc.SpaceRepo.FindByOwnerAndName(ctx, existing.OwnerID, *in.Name)
		if err != nil {
			if _, ok := err.(constant.EntityNotFoundError); !ok {
				return nil, constant.InternalError{Message: "failed to check space name", Err: err}
			}
		}

		if conflict != nil {
			return nil, constant.EntityConflictError{EntityType: "Space", Message: fmt.Sprintf("%s: %q", constant.ErrSpaceNameTaken.Error(), *in.Name)}
		}

		existing.Name = *in.Name
	}

	if in.PublicRead != nil {
		existing.PublicRead = *in.PublicRead
	}

	existing.UpdatedAt = mmodel.NewMillisTime(time.Now())
	existing.UpdatedByID = caller.ID

	updated, err := uc.SpaceRepo.Update(ctx, id, existing)
	if err != nil {
		logger.Errorf("updating space %s: %v", id, err)
		return nil, err
	}

	return updated, nil
}
