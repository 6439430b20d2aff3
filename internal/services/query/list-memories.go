package query

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// ListMemoriesInput is the request shape for listing memories within a
// single space.
type ListMemoriesInput struct {
	SpaceID midentifier.ID
	Status  *mmodel.ProcessingStatus
	// MaxResults caps the page size; zero means the server default.
	MaxResults int
	Token      string
}

// ListMemories lists memories within a space, gated against the space's
// owner and honoring a continuation token.
func (uc *UseCase) ListMemories(ctx context.Context, caller authz.Principal, in ListMemoriesInput) (*mmodel.Page[*mmodel.Memory], error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "query.list_memories")
	defer span.End()

	sp, err := uc.SpaceRepo.Find(ctx, in.SpaceID)
	if err != nil {
		return nil, err
	}

	if !sp.PublicRead {
		if err := authz.Gate(caller, authz.VerbList, authz.ResourceMemory, &sp.OwnerID); err != nil {
			return nil, err
		}
	}

	status := ""
	if in.Status != nil {
		status = string(*in.Status)
	}

	filterParams := map[string]string{
		"status":     status,
		"maxResults": maxResultsParam(in.MaxResults),
	}

	tok, err := resolvePage(caller, in.Token, filterParams, "", "")
	if err != nil {
		return nil, err
	}

	var statusFilter *mmodel.ProcessingStatus
	if s := tok.FilterParams["status"]; s != "" {
		parsed := mmodel.ParseProcessingStatus(s)
		statusFilter = &parsed
	}

	filter := mmodel.MemoryListFilter{SpaceID: in.SpaceID, Status: statusFilter}

	pageSize := pageSizeFrom(tok)

	rows, err := uc.MemoryRepo.FindAll(ctx, filter, pageSize+1, tok.Start)
	if err != nil {
		mlog.NewLoggerFromContext(ctx).Errorf("listing memories for space %s: %v", in.SpaceID, err)
		return nil, err
	}

	items := rows
	if len(items) > pageSize {
		items = items[:pageSize]
	}

	next, err := nextToken(tok, len(rows), pageSize)
	if err != nil {
		return nil, err
	}

	return &mmodel.Page[*mmodel.Memory]{Items: items, NextToken: next}, nil
}
