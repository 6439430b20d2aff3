package mmodel

import "github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"

// Space is a named, owner-scoped container of memories bound to one
// embedder.
type Space struct {
	ID          midentifier.ID `json:"spaceId"`
	Name        string         `json:"name"`
	OwnerID     midentifier.ID `json:"ownerId"`
	EmbedderID  midentifier.ID `json:"embedderId"`
	Labels      Labels         `json:"labels,omitempty"`
	PublicRead  bool           `json:"publicRead"`
	CreatedAt   MillisTime     `json:"createdAt"`
	UpdatedAt   MillisTime     `json:"updatedAt"`
	CreatedByID midentifier.ID `json:"createdById"`
	UpdatedByID midentifier.ID `json:"updatedById"`
}

// CreateSpaceInput is the request shape for creating a space.
type CreateSpaceInput struct {
	OwnerID    *midentifier.ID `json:"ownerId,omitempty"`
	Name       string          `json:"name" validate:"required,max=256"`
	EmbedderID *midentifier.ID `json:"embedderId,omitempty"`
	Labels     Labels          `json:"labels,omitempty"`
	PublicRead bool            `json:"publicRead"`
}

// UpdateSpaceInput is the request shape for updating a space. Name and
// PublicRead may change; EmbedderID is immutable once memories may have
// been embedded against it.
type UpdateSpaceInput struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,max=256"`
	PublicRead *bool   `json:"publicRead,omitempty"`
	LabelUpdate
}

// SortField is one of the closed set of fields a space list may be
// ordered by.
type SortField string

const (
	SortByCreatedTime SortField = "created_time"
	SortByName        SortField = "name"
	SortByUpdatedTime SortField = "updated_time"
)

// ParseSortField is a total converter; unrecognized input defaults to
// SortByCreatedTime, the natural insertion order.
func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortByName:
		return SortByName
	case SortByUpdatedTime:
		return SortByUpdatedTime
	default:
		return SortByCreatedTime
	}
}

// SortOrder is ascending or descending.
type SortOrder string

const (
	SortAscending  SortOrder = "ASCENDING"
	SortDescending SortOrder = "DESCENDING"
)

// ParseSortOrder is a total converter; unrecognized input defaults to
// ascending.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == SortDescending {
		return SortDescending
	}

	return SortAscending
}

// SpaceListFilter is the set of optional filters a space list call
// accepts, independent of pagination/sort.
type SpaceListFilter struct {
	OwnerID        *midentifier.ID
	LabelSelectors Labels
	// NameFilter supports glob-style matching ('*' as wildcard).
	NameFilter string
}
