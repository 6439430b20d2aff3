package mmodel

// Page is the response envelope every list endpoint returns: items plus
// an opaque continuation token when more rows remain.
type Page[T any] struct {
	Items     []T     `json:"items"`
	NextToken *string `json:"nextToken,omitempty"`
}
