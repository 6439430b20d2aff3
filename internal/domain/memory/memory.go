// Package memory defines the persistence contract for the Memory
// aggregate.
package memory

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

// Repository provides an interface for operations on Memory rows. The
// embedding vector column itself is written by UpdateVector, delegated
// to the pgvector extension to interpret.
type Repository interface {
	Create(ctx context.Context, m *mmodel.Memory) (*mmodel.Memory, error)
	Find(ctx context.Context, id midentifier.ID) (*mmodel.Memory, error)
	FindAll(ctx context.Context, filter mmodel.MemoryListFilter, limit, offset int) ([]*mmodel.Memory, error)
	UpdateProcessingStatus(ctx context.Context, id midentifier.ID, status mmodel.ProcessingStatus) (*mmodel.Memory, error)
	UpdateVector(ctx context.Context, id midentifier.ID, vector []float32) error
	Delete(ctx context.Context, id midentifier.ID) error
}
