package query

import (
	"context"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// ListSpacesInput is the request shape for listing spaces. Token, when
// non-empty, carries a previously-issued pagination token and the
// remaining fields are ignored in favor of what the token encodes.
type ListSpacesInput struct {
	OwnerID        string
	NameFilter     string
	LabelSelectors mmodel.Labels
	SortBy         mmodel.SortField
	SortOrder      mmodel.SortOrder
	// MaxResults caps the page size; zero means the server default.
	MaxResults int
	Token      string
}

// ListSpaces lists spaces visible to caller, applying the LIST
// permission filter and honoring a continuation token.
func (uc *UseCase) ListSpaces(ctx context.Context, caller authz.Principal, in ListSpacesInput) (*mmodel.Page[*mmodel.Space], error) {
	tracer := motel.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "query.list_spaces")
	defer span.End()

	labelParam, err := encodeLabelSelectors(in.LabelSelectors)
	if err != nil {
		return nil, err
	}

	filterParams := map[string]string{
		"ownerId":        in.OwnerID,
		"nameFilter":     in.NameFilter,
		"labelSelectors": labelParam,
		"maxResults":     maxResultsParam(in.MaxResults),
	}

	tok, err := resolvePage(caller, in.Token, filterParams, string(in.SortBy), string(in.SortOrder))
	if err != nil {
		return nil, err
	}

	scopeOwner, err := authz.ListScope(caller, authz.ResourceSpace)
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

	filter := mmodel.SpaceListFilter{
		OwnerID:        ownerID,
		LabelSelectors: selectors,
		NameFilter:     tok.FilterParams["nameFilter"],
	}

	sortBy := mmodel.ParseSortField(tok.SortBy)
	sortOrder := mmodel.ParseSortOrder(tok.SortOrder)
	pageSize := pageSizeFrom(tok)

	rows, err := uc.SpaceRepo.FindAll(ctx, filter, sortBy, sortOrder, pageSize+1, tok.Start)
	if err != nil {
		mlog.NewLoggerFromContext(ctx).Errorf("listing spaces: %v", err)
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

	return &mmodel.Page[*mmodel.Space]{Items: items, NextToken: next}, nil
}
