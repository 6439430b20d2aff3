package command

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// DeleteEmbedder removes an embedder. Deletion is refused while any
// space still references it, enforced as a FailedPreconditionError by
// the repository's foreign-key constraint translation.
func (uc *UseCase) DeleteEmbedder(ctx context.Context, caller authz.Principal, id midentifier.ID) error {
	logger := mlog.NewLoggerFromContext(ctx)
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.delete_embedder")
	defer span.End()

	existing, err := uc.EmbedderRepo.Find(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.Gate(caller, authz.VerbDelete, authz.ResourceEmbedder, &existing.OwnerID); err != nil {
		return err
	}

	if err := uc.EmbedderRepo.Delete(ctx, id); err != nil {
		logger.Errorf("deleting embedder %s: %v", id, err)
		return err
	}

	return nil
}
