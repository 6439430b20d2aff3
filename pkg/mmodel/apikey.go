package mmodel

import "github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"

// ApiKeyStatus is the closed set of ApiKey lifecycle states.
type ApiKeyStatus string

const (
	ApiKeyStatusUnspecified ApiKeyStatus = "UNSPECIFIED"
	ApiKeyStatusActive      ApiKeyStatus = "ACTIVE"
	ApiKeyStatusInactive    ApiKeyStatus = "INACTIVE"
)

// ParseApiKeyStatus is a total converter; unrecognized input maps to
// ApiKeyStatusUnspecified.
func ParseApiKeyStatus(s string) ApiKeyStatus {
	switch ApiKeyStatus(s) {
	case ApiKeyStatusActive:
		return ApiKeyStatusActive
	case ApiKeyStatusInactive:
		return ApiKeyStatusInactive
	default:
		return ApiKeyStatusUnspecified
	}
}

// ApiKey is an authentication credential owned by a user. The full
// secret never appears here — only the display prefix.
type ApiKey struct {
	ID          midentifier.ID `json:"apiKeyId"`
	UserID      midentifier.ID `json:"userId"`
	KeyPrefix   string         `json:"keyPrefix"`
	Status      ApiKeyStatus   `json:"status"`
	Labels      Labels         `json:"labels,omitempty"`
	ExpiresAt   *MillisTime    `json:"expiresAt,omitempty"`
	LastUsedAt  *MillisTime    `json:"lastUsedAt,omitempty"`
	CreatedAt   MillisTime     `json:"createdAt"`
	UpdatedAt   MillisTime     `json:"updatedAt"`
	CreatedByID midentifier.ID `json:"createdById"`
	UpdatedByID midentifier.ID `json:"updatedById"`
}

// CreateApiKeyInput is the request shape for creating an API key.
type CreateApiKeyInput struct {
	// OwnerID is the declared owner; if empty, defaults to the caller.
	OwnerID   *midentifier.ID `json:"ownerId,omitempty"`
	Labels    Labels          `json:"labels,omitempty"`
	ExpiresAt *MillisTime     `json:"expiresAt,omitempty"`
}

// UpdateApiKeyInput is the request shape for updating an API key.
// Mutable fields are Status and the label-update strategy only.
type UpdateApiKeyInput struct {
	Status *ApiKeyStatus `json:"status,omitempty"`
	LabelUpdate
}

// CreatedApiKey is returned exactly once, at creation, and carries the
// raw secret alongside the persisted ApiKey record.
type CreatedApiKey struct {
	ApiKey
	RawSecret string `json:"key"`
}
