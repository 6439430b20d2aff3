// Package command implements every mutating operation on the core's
// five aggregates (User, ApiKey, Embedder, Space, Memory) plus
// system-init.
package command

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/adapters/cache"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/adapters/queue"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/domain/apikey"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/domain/embedder"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/domain/memory"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/domain/space"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/domain/user"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mobjectstore"
)

// Transactor begins a single transaction that every repository call made
// with the ctx fn receives joins, so multiple aggregate writes commit or
// roll back together. Implemented by the Postgres adapter
// (internal/adapters/postgres/tx).
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UseCase aggregates every repository and external collaborator the
// mutating operations depend on.
type UseCase struct {
	UserRepo     user.Repository
	ApiKeyRepo   apikey.Repository
	EmbedderRepo embedder.Repository
	SpaceRepo    space.Repository
	MemoryRepo   memory.Repository

	CacheRepo     cache.Repository
	QueueRepo     queue.ProducerRepository
	ObjectStore   mobjectstore.Store
	ContentBucket string

	Transactor Transactor

	// DefaultEmbedderID is the server-configured embedder CreateSpace
	// falls back to when a request omits embedderId.
	DefaultEmbedderID *midentifier.ID
}
