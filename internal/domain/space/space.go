// Package space defines the persistence contract for the Space
// aggregate.
package space

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

// Repository provides an interface for operations on Space rows.
type Repository interface {
	Create(ctx context.Context, s *mmodel.Space) (*mmodel.Space, error)
	Find(ctx context.Context, id midentifier.ID) (*mmodel.Space, error)
	// FindByOwnerAndName looks up a space by (ownerID, name), used to
	// enforce the per-owner name-uniqueness invariant.
	FindByOwnerAndName(ctx context.Context, ownerID midentifier.ID, name string) (*mmodel.Space, error)
	FindAll(ctx context.Context, filter mmodel.SpaceListFilter, sortBy mmodel.SortField, sortOrder mmodel.SortOrder, limit, offset int) ([]*mmodel.Space, error)
	Update(ctx context.Context, id midentifier.ID, s *mmodel.Space) (*mmodel.Space, error)
	Delete(ctx context.Context, id midentifier.ID) error
}
