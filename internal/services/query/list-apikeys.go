package query

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// ListApiKeysInput is the request shape for listing API keys.
type ListApiKeysInput struct {
	OwnerID string
	// MaxResults caps the page size; zero means the server default.
	MaxResults int
	Token      string
}

// ListApiKeys lists API keys visible to caller, applying the LIST
// permission filter and honoring a continuation token.
func (uc *UseCase) ListApiKeys(ctx context.Context, caller authz.Principal, in ListApiKeysInput) (*mmodel.Page[*mmodel.ApiKey], error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "query.list_apikeys")
	defer span.End()

	filterParams := map[string]string{
		"ownerId":    in.OwnerID,
		"maxResults": maxResultsParam(in.MaxResults),
	}

	tok, err := resolvePage(caller, in.Token, filterParams, "", "")
	if err != nil {
		return nil, err
	}

	scopeOwner, err := authz.ListScope(caller, authz.ResourceAPIKey)
	if err != nil {
		return nil, err
	}

	ownerID, err := parseOwnerFilter(scopeOwner, tok.FilterParams["ownerId"])
	if err != nil {
		return nil, err
	}

	pageSize := pageSizeFrom(tok)

	rows, err := uc.ApiKeyRepo.FindAllByOwner(ctx, ownerID, pageSize+1, tok.Start)
	if err != nil {
		mlog.NewLoggerFromContext(ctx).Errorf("listing api keys: %v", err)
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

	return &mmodel.Page[*mmodel.ApiKey]{Items: items, NextToken: next}, nil
}
