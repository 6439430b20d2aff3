package mmodel

import "github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"

// ProviderType is the closed set of remote embedding endpoint kinds.
type ProviderType string

const (
	ProviderUnspecified ProviderType = "UNSPECIFIED"
	ProviderOpenAI      ProviderType = "OPENAI"
	ProviderVLLM        ProviderType = "VLLM"
	ProviderTEI         ProviderType = "TEI"
)

// ParseProviderType is a total converter; unrecognized input maps to
// ProviderUnspecified.
func ParseProviderType(s string) ProviderType {
	switch ProviderType(s) {
	case ProviderOpenAI:
		return ProviderOpenAI
	case ProviderVLLM:
		return ProviderVLLM
	case ProviderTEI:
		return ProviderTEI
	default:
		return ProviderUnspecified
	}
}

// Modality is one member of the closed set of content kinds an embedder
// can accept.
type Modality string

const (
	ModalityUnspecified Modality = "UNSPECIFIED"
	ModalityText        Modality = "TEXT"
	ModalityImage       Modality = "IMAGE"
	ModalityAudio       Modality = "AUDIO"
	ModalityVideo       Modality = "VIDEO"
)

// ParseModality is a total converter; unrecognized input maps to
// ModalityUnspecified.
func ParseModality(s string) Modality {
	switch Modality(s) {
	case ModalityText:
		return ModalityText
	case ModalityImage:
		return ModalityImage
	case ModalityAudio:
		return ModalityAudio
	case ModalityVideo:
		return ModalityVideo
	default:
		return ModalityUnspecified
	}
}

// Embedder is a configured connection to a remote embedding endpoint.
type Embedder struct {
	ID                  midentifier.ID `json:"embedderId"`
	DisplayName         string         `json:"displayName"`
	Description         string         `json:"description,omitempty"`
	ProviderType        ProviderType   `json:"providerType"`
	EndpointURL         string         `json:"endpointUrl"`
	APIPath             string         `json:"apiPath"`
	ModelIdentifier     string         `json:"modelIdentifier"`
	Dimensionality      int            `json:"dimensionality"`
	MaxSequenceLength   *int           `json:"maxSequenceLength,omitempty"`
	SupportedModalities []Modality     `json:"supportedModalities,omitempty"`
	Labels              Labels         `json:"labels,omitempty"`
	Version             int64          `json:"version"`
	MonitoringEndpoint  string         `json:"monitoringEndpoint,omitempty"`
	OwnerID             midentifier.ID `json:"ownerId"`
	CreatedAt           MillisTime     `json:"createdAt"`
	UpdatedAt           MillisTime     `json:"updatedAt"`
	CreatedByID         midentifier.ID `json:"createdById"`
	UpdatedByID         midentifier.ID `json:"updatedById"`
}

// CreateEmbedderInput is the request shape for creating an embedder.
// Credentials are write-only: accepted here, never echoed back.
type CreateEmbedderInput struct {
	OwnerID             *midentifier.ID `json:"ownerId,omitempty"`
	DisplayName         string          `json:"displayName" validate:"required,max=256"`
	Description         string          `json:"description" validate:"max=2000"`
	ProviderType        ProviderType    `json:"providerType" validate:"required,oneof=OPENAI VLLM TEI"`
	EndpointURL         string          `json:"endpointUrl" validate:"required,max=1024"`
	APIPath             string          `json:"apiPath" validate:"max=512"`
	ModelIdentifier     string          `json:"modelIdentifier" validate:"required,max=256"`
	Dimensionality      int             `json:"dimensionality" validate:"required,gt=0"`
	MaxSequenceLength   *int            `json:"maxSequenceLength,omitempty" validate:"omitempty,gt=0"`
	SupportedModalities []Modality      `json:"supportedModalities,omitempty"`
	Credentials         string          `json:"credentials,omitempty"`
	Labels              Labels          `json:"labels,omitempty"`
	MonitoringEndpoint  string          `json:"monitoringEndpoint,omitempty"`
}

// UpdateEmbedderInput is the request shape for updating an embedder.
// ProviderType and Dimensionality are immutable after create: they are
// absent from this type, and the REST adapter rejects update bodies
// that carry either key rather than silently dropping them.
type UpdateEmbedderInput struct {
	DisplayName        *string `json:"displayName,omitempty" validate:"omitempty,max=256"`
	Description        *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	MaxSequenceLength  *int    `json:"maxSequenceLength,omitempty" validate:"omitempty,gt=0"`
	Credentials        *string `json:"credentials,omitempty"`
	MonitoringEndpoint *string `json:"monitoringEndpoint,omitempty"`
	LabelUpdate
}

// EmbedderListFilter is the set of optional filters a list call accepts.
type EmbedderListFilter struct {
	OwnerID        *midentifier.ID
	ProviderType   *ProviderType
	LabelSelectors Labels
}
