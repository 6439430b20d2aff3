package query

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// GetUser fetches a single user by id.
func (uc *UseCase) GetUser(ctx context.Context, caller authz.Principal, id midentifier.ID) (*mmodel.User, error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "query.get_user")
	defer span.End()

	u, err := uc.UserRepo.Find(ctx, id)
	if err != nil {
		mlog.NewLoggerFromContext(ctx).Errorf("getting user %s: %v", id, err)
		return nil, err
	}

	if err := authz.Gate(caller, authz.VerbGet, authz.ResourceUser, &u.ID); err != nil {
		return nil, err
	}

	return u, nil
}

// GetUserByEmail looks up a user by email — the alternative lookup the
// REST surface offers via the "?email=" query parameter on
// GET /v1/users/{id}.
func (uc *UseCase) GetUserByEmail(ctx context.Context, caller authz.Principal, email string) (*mmodel.User, error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "query.get_user_by_email")
	defer span.End()

	u, err := uc.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		mlog.NewLoggerFromContext(ctx).Errorf("getting user by email %q: %v", email, err)
		return nil, err
	}

	if err := authz.Gate(caller, authz.VerbGet, authz.ResourceUser, &u.ID); err != nil {
		return nil, err
	}

	return u, nil
}
