// Package query implements every read-only operation on the core's five
// aggregates, including paginated listing.
package query

import (
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/domain/apikey"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/domain/embedder"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/domain/memory"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/domain/space"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/domain/user"
)

// UseCase aggregates every repository the read-only operations depend
// on.
type UseCase struct {
	UserRepo     user.Repository
	ApiKeyRepo   apikey.Repository
	EmbedderRepo embedder.Repository
	SpaceRepo    space.Repository
	MemoryRepo   memory.Repository
}

// defaultPageSize bounds how many rows a single page returns when the
// caller doesn't ask for a specific token-encoded page size.
const defaultPageSize = 50
