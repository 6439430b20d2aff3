// Package apikey defines the persistence contract for the ApiKey
// aggregate.
package apikey

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

// Repository provides an interface for operations on ApiKey rows. The raw
// secret is never stored; HashedKey is the sha256 hex digest callers hash
// incoming x-api-key headers against.
type Repository interface {
	Create(ctx context.Context, k *mmodel.ApiKey, hashedKey string) (*mmodel.ApiKey, error)
	Find(ctx context.Context, id midentifier.ID) (*mmodel.ApiKey, error)
	FindByHash(ctx context.Context, hashedKey string) (*mmodel.ApiKey, error)
	FindAllByOwner(ctx context.Context, ownerID *midentifier.ID, limit, offset int) ([]*mmodel.ApiKey, error)
	Update(ctx context.Context, id midentifier.ID, k *mmodel.ApiKey) (*mmodel.ApiKey, error)
	Delete(ctx context.Context, id midentifier.ID) error
	TouchLastUsed(ctx context.Context, id midentifier.ID) error
	// FindHashByID returns the stored hash for id, used only to evict the
	// auth cache entry keyed by hash when a key is updated or deleted.
	FindHashByID(ctx context.Context, id midentifier.ID) (string, error)
}
