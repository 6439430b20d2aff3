package query

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// GetEmbedder fetches a single embedder by id, permission-gated against the row's owner. The
// write-only credentials field is never populated on the returned row.
func (uc *UseCase) GetEmbedder(ctx context.Context, caller authz.Principal, id midentifier.ID) (*mmodel.Embedder, error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "query.get_embedder")
	defer span.End()

	e, err := uc.EmbedderRepo.Find(ctx, id)
	if err != nil {
		mlog.NewLoggerFromContext(ctx).Errorf("getting embedder %s: %v", id, err)
		return nil, err
	}

	if err := authz.Gate(caller, authz.VerbGet, authz.ResourceEmbedder, &e.OwnerID); err != nil {
		return nil, err
	}

	return e, nil
}
