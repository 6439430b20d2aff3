// Package mpagination implements the opaque pagination-token protocol
// used by every list endpoint: a base64 string encoding the
// filter parameters the client supplied, the current offset, the sort
// order, and the id of the caller the token was issued to, so a token
// cannot be replayed by a different caller.
package mpagination

import (
	"encoding/base64"
	"encoding/json"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
)

// Token is the decoded shape of a pagination continuation token.
type Token struct {
	// FilterParams carries exactly the filter parameters the client
	// supplied on the first call (e.g. "ownerId", "nameFilter",
	// "labelSelectors" as a JSON sub-blob) so a follow-up call with a
	// token ignores any per-call filters and reuses these instead.
	FilterParams map[string]string `json:"filterParams,omitempty"`
	Start        int               `json:"start"`
	RequestorID  string            `json:"requestorId"`
	SortBy       string            `json:"sortBy,omitempty"`
	SortOrder    string            `json:"sortOrder,omitempty"`
}

// Default returns the first-page token: no filters, offset zero, no
// requestor bound yet. Used whenever the client presents an empty or
// absent token string.
func Default() Token {
	return Token{Start: 0}
}

// Encode serializes a token to the opaque base64 wire form.
func Encode(t Token) (string, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return "", constant.InternalError{Message: "failed to encode pagination token", Err: err}
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode parses the opaque wire form back into a Token. An empty string
// decodes to Default(). A string that isn't valid base64 returns a
// ValidationError carrying ErrMalformedToken's text; valid base64 that
// isn't a valid serialized token returns one carrying
// ErrMalformedTokenContent's text.
func Decode(encoded string) (Token, error) {
	if encoded == "" {
		return Default(), nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Token{}, constant.ValidationError{Field: "token", Message: constant.ErrMalformedToken.Error()}
	}

	var t Token
	if err := json.Unmarshal(raw, &t); err != nil {
		return Token{}, constant.ValidationError{Field: "token", Message: constant.ErrMalformedTokenContent.Error()}
	}

	return t, nil
}

// BindRequestor stamps the authenticated caller's id into a freshly
// decoded first-page token (Start == 0, RequestorID == "") so that
// subsequent pages carry the binding. It is a no-op once RequestorID is
// already set (a follow-up page keeps its original binding).
func BindRequestor(t Token, callerID midentifier.ID) Token {
	if t.RequestorID == "" {
		t.RequestorID = callerID.String()
	}

	return t
}

// VerifyRequestor enforces the requestor-binding contract: a token
// carrying no requestor id is allowed (first page); a token carrying a
// malformed requestor id is rejected with a ValidationError carrying
// ErrInvalidRequestorID's text; a token whose requestor id doesn't match
// the authenticated caller is rejected with a PermissionError carrying
// ErrTokenRequestorMismatch's text.
func VerifyRequestor(t Token, callerID midentifier.ID) error {
	if t.RequestorID == "" {
		return nil
	}

	id, err := midentifier.FromHex(t.RequestorID)
	if err != nil {
		return constant.ValidationError{Field: "token.requestorId", Message: constant.ErrInvalidRequestorID.Error()}
	}

	if id != callerID {
		return constant.PermissionError{Message: constant.ErrTokenRequestorMismatch.Error()}
	}

	return nil
}
