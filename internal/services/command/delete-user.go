package command

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// DeleteUser removes a user. The reserved root user can never be
// deleted.
func (uc *UseCase) DeleteUser(ctx context.Context, caller authz.Principal, id midentifier.ID) error {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.delete_user")
	defer span.End()

	existing, err := uc.UserRepo.Find(ctx, id)
	if err != nil {
		return err
	}

	if existing.Username == mmodel.ReservedRootUsername {
		return constant.PermissionError{Message: "the root user cannot be deleted"}
	}

	if err := authz.Gate(caller, authz.VerbDelete, authz.ResourceUser, &existing.ID); err != nil {
		return err
	}

	if err := uc.UserRepo.Delete(ctx, id); err != nil {
		logger.Errorf("deleting user %s: %v", id, err)
		return err
	}

	return nil
}
