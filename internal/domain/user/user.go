// Package user defines the persistence contract for the User aggregate:
// a narrow Repository interface the command/query services depend on,
// implemented by the postgres adapter.
package user

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

// Repository provides an interface for operations on User rows.
type Repository interface {
	Create(ctx context.Context, u *mmodel.User) (*mmodel.User, error)
	Find(ctx context.Context, id midentifier.ID) (*mmodel.User, error)
	FindByUsername(ctx context.Context, username string) (*mmodel.User, error)
	// FindByEmail looks up a user by email, used by the REST surface's
	// "?email=" alternative lookup on GET /v1/users/{id}.
	FindByEmail(ctx context.Context, email string) (*mmodel.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]*mmodel.User, error)
	Update(ctx context.Context, id midentifier.ID, u *mmodel.User) (*mmodel.User, error)
	Delete(ctx context.Context, id midentifier.ID) error
}
