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

// UpdateUserInput is the request shape for updating a user's own
// profile fields. Username and Roles are immutable through this path.
type UpdateUserInput struct {
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
}

// UpdateUser updates the mutable profile fields of an existing user.
func (uc *UseCase) UpdateUser(ctx context.Context, caller authz.Principal, id midentifier.ID, in *UpdateUserInput) (*mmodel.User, error) {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.update_user")
	defer span.End()

	existing, err := uc.UserRepo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Gate(caller, authz.VerbUpdate, authz.ResourceUser, &existing.ID); err != nil {
		return nil, err
	}

	if in.Email != nil {
		existing.Email = in.Email
	}

	if in.DisplayName != nil {
		existing.DisplayName = *in.DisplayName
	}

	existing.UpdatedAt = mmodel.NewMillisTime(time.Now())

	updated, err := uc.UserRepo.Update(ctx, id, existing)
	if err != nil {
		logger.Errorf("updating user %s: %v", id, err)
		return nil, err
	}

	return updated, nil
}
