package query

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// ListEmbeddersInput is the request shape for listing embedders.
type ListEmbeddersInput struct {
	OwnerID        string
	ProviderType   mmodel.ProviderType
	LabelSelectors mmodel.Labels
	// MaxResults caps the page size; zero means the server default.
	MaxResults int
	Token      string
}

// ListEmbedders lists embedders visible to caller, applying the LIST
// permission filter and honoring a continuation token.
func (uc *UseCase) ListEmbedders(ctx context.Context, caller authz.Principal, in ListEmbeddersInput) (*mmodel.Page[*mmodel.Embedder], error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "query.list_embedders")
	defer span.End()

	labelParam, err := encodeLabelSelectors(in.LabelSelectors)
	if err != nil {
		return nil, err
	}

	filterParams := map[string]string{
		"ownerId":        in.OwnerID,
		"providerType":   string(in.ProviderType),
		"labelSelectors": labelParam,
		"maxResults":     maxResultsParam(in.MaxResults),
	}

	tok, err := resolvePage(caller, in.Token, filterParams, "", "")
	if err != nil {
		return nil, err
	}

	scopeOwner, err := authz.ListScope(caller, authz.ResourceEmbedder)
	if err != nil {
		return nil, err
	}

	ownerID, err := parseOwnerFilter(scopeOwner, tok.FilterParams["ownerId"])
	if err != nil {
		return nil, err
	}

	selectors, err := decodeLabelSelectors(tok.FilterParams["labelSelectors"])
	if err != nil {
		return nil, err
	}

	var providerType *mmodel.ProviderType
	if p := tok.FilterParams["providerType"]; p != "" {
		parsed := mmodel.ParseProviderType(p)
		providerType = &parsed
	}

	filter := mmodel.EmbedderListFilter{
		OwnerID:        ownerID,
		ProviderType:   providerType,
		LabelSelectors: selectors,
	}

	pageSize := pageSizeFrom(tok)

	rows, err := uc.EmbedderRepo.FindAll(ctx, filter, pageSize+1, tok.Start)
	if err != nil {
		mlog.NewLoggerFromContext(ctx).Errorf("listing embedders: %v", err)
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

	return &mmodel.Page[*mmodel.Embedder]{Items: items, NextToken: next}, nil
}
