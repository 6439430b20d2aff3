package query

import (
	"encoding/json"
	"strconv"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mpagination"
)

// encodeLabelSelectors folds a label-selector map into a single
// FilterParams entry so it rides inside the opaque token alongside the
// other scalar filters.
func encodeLabelSelectors(selectors mmodel.Labels) (string, error) {
	if len(selectors) == 0 {
		return "", nil
	}

	raw, err := json.Marshal(selectors)
	if err != nil {
		return "", constant.InternalError{Message: "failed to encode label selectors", Err: err}
	}

	return string(raw), nil
}

func decodeLabelSelectors(encoded string) (mmodel.Labels, error) {
	if encoded == "" {
		return nil, nil
	}

	var selectors mmodel.Labels
	if err := json.Unmarshal([]byte(encoded), &selectors); err != nil {
		return nil, constant.ValidationError{Field: "labelSelectors", Message: "malformed label selectors"}
	}

	return selectors, nil
}

// resolvePage implements the "ignore per-call filters once a token is
// presented" contract: an empty token string builds a fresh
// token from the caller's filter params and binds it to the requestor;
// a non-empty token string is decoded, requestor-verified, and returned
// as-is so its embedded FilterParams/SortBy/SortOrder win over whatever
// the client passed alongside it on the follow-up call.
func resolvePage(caller authz.Principal, rawToken string, freshFilterParams map[string]string, sortBy, sortOrder string) (mpagination.Token, error) {
	if rawToken == "" {
		tok := mpagination.Token{FilterParams: freshFilterParams, SortBy: sortBy, SortOrder: sortOrder}
		return mpagination.BindRequestor(tok, caller.ID), nil
	}

	tok, err := mpagination.Decode(rawToken)
	if err != nil {
		return mpagination.Token{}, err
	}

	if err := mpagination.VerifyRequestor(tok, caller.ID); err != nil {
		return mpagination.Token{}, err
	}

	return mpagination.BindRequestor(tok, caller.ID), nil
}

// nextToken builds the continuation token for the page after tok. The
// repo was asked for pageSize+1 rows to detect whether more exist, so a
// fetchedCount at or below pageSize means this page was the last one.
func nextToken(tok mpagination.Token, fetchedCount, pageSize int) (*string, error) {
	if fetchedCount <= pageSize {
		return nil, nil
	}

	next := tok
	next.Start = tok.Start + pageSize

	encoded, err := mpagination.Encode(next)
	if err != nil {
		return nil, err
	}

	return &encoded, nil
}

// pageSizeFrom reads the page size the client asked for on the first
// call out of the token's filter params, clamped to [1, defaultPageSize].
// An absent or unparseable value means the default.
func pageSizeFrom(tok mpagination.Token) int {
	raw := tok.FilterParams["maxResults"]
	if raw == "" {
		return defaultPageSize
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return defaultPageSize
	}

	if n > defaultPageSize {
		return defaultPageSize
	}

	return n
}

// maxResultsParam renders a caller-supplied page size for embedding into
// the token's filter params; zero (unset) encodes as absent.
func maxResultsParam(maxResults int) string {
	if maxResults <= 0 {
		return ""
	}

	return strconv.Itoa(maxResults)
}

// parseOwnerFilter resolves the effective ownerId filter for a list
// call: the token/request-supplied value constrained by (never widened
// by) the caller's own ListScope.
func parseOwnerFilter(scopeOwner *midentifier.ID, requested string) (*midentifier.ID, error) {
	if scopeOwner != nil {
		return scopeOwner, nil
	}

	if requested == "" {
		return nil, nil
	}

	id, err := midentifier.FromHex(requested)
	if err != nil {
		return nil, constant.ValidationError{Field: "ownerId", Message: "malformed ownerId"}
	}

	return &id, nil
}
