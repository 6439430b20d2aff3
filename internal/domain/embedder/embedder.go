// Package embedder defines the persistence contract for the Embedder
// aggregate.
package embedder

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

// Repository provides an interface for operations on Embedder rows.
type Repository interface {
	Create(ctx context.Context, e *mmodel.Embedder, credentials string) (*mmodel.Embedder, error)
	Find(ctx context.Context, id midentifier.ID) (*mmodel.Embedder, error)
	// FindByConnection looks up an embedder by its (endpointURL, apiPath,
	// modelIdentifier) triple, used to enforce the connection-uniqueness
	// invariant.
	FindByConnection(ctx context.Context, endpointURL, apiPath, modelIdentifier string) (*mmodel.Embedder, error)
	FindAll(ctx context.Context, filter mmodel.EmbedderListFilter, limit, offset int) ([]*mmodel.Embedder, error)
	Update(ctx context.Context, id midentifier.ID, e *mmodel.Embedder, credentials *string) (*mmodel.Embedder, error)
	Delete(ctx context.Context, id midentifier.ID) error
}
