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

// CreateUser creates a new non-root user. Only a ROOT caller may create
// users directly.
func (uc *UseCase) CreateUser(ctx context.Context, caller authz.Principal, in *mmodel.CreateUserInput) (*mmodel.User, error) {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.create_user")
	defer span.End()

	if err := authz.RequireRoot(caller); err != nil {
		return nil, err
	}

	if in.Username == mmodel.ReservedRootUsername {
		return nil, constant.ValidationError{Field: "username", Message: "username \"root\" is reserved"}
	}

	existing, err := uc.UserRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		if _, ok := err.(constant.EntityNotFoundError); !ok {
			logger.Errorf("checking username uniqueness: %v", err)
			return nil, constant.InternalError{Message: "failed to check username", Err: err}
		}
	}

	if existing != nil {
		return nil, constant.EntityConflictError{EntityType: "User", Message: fmt.Sprintf("username %q already in use", in.Username)}
	}

	now := mmodel.NewMillisTime(time.Now())

	u := &mmodel.User{
		ID:          midentifier.New(),
		Username:    in.Username,
		Email:       in.Email,
		DisplayName: in.DisplayName,
		Roles:       []mmodel.Role{mmodel.RoleUser},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := uc.UserRepo.Create(ctx, u)
	if err != nil {
		logger.Errorf("creating user: %v", err)
		return nil, err
	}

	return created, nil
}
