package mmodel

import "github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"

// ProcessingStatus is the closed set of states a memory's embedding
// computation moves through.
type ProcessingStatus string

const (
	ProcessingUnspecified ProcessingStatus = "UNSPECIFIED"
	ProcessingPending     ProcessingStatus = "PENDING"
	ProcessingInProgress  ProcessingStatus = "PROCESSING"
	ProcessingCompleted   ProcessingStatus = "COMPLETED"
	ProcessingFailed      ProcessingStatus = "FAILED"
)

// ParseProcessingStatus is a total converter; unrecognized input maps to
// ProcessingUnspecified.
func ParseProcessingStatus(s string) ProcessingStatus {
	switch ProcessingStatus(s) {
	case ProcessingPending:
		return ProcessingPending
	case ProcessingInProgress:
		return ProcessingInProgress
	case ProcessingCompleted:
		return ProcessingCompleted
	case ProcessingFailed:
		return ProcessingFailed
	default:
		return ProcessingUnspecified
	}
}

// CanTransitionTo reports whether moving from s to next is a legal step
// in the PENDING -> PROCESSING -> COMPLETED|FAILED state machine.
func (s ProcessingStatus) CanTransitionTo(next ProcessingStatus) bool {
	switch s {
	case ProcessingPending:
		return next == ProcessingInProgress
	case ProcessingInProgress:
		return next == ProcessingCompleted || next == ProcessingFailed
	default:
		return false
	}
}

// Memory is a stored content item plus its embedding vector. The vector
// itself lives in the vector-extension column, not in this shape.
type Memory struct {
	ID                 midentifier.ID         `json:"memoryId"`
	SpaceID            midentifier.ID         `json:"spaceId"`
	OriginalContentRef string                 `json:"originalContentRef"`
	ContentType        string                 `json:"contentType"`
	Metadata           map[string]any         `json:"metadata,omitempty"`
	ProcessingStatus   ProcessingStatus       `json:"processingStatus"`
	CreatedAt          MillisTime             `json:"createdAt"`
	UpdatedAt          MillisTime             `json:"updatedAt"`
	CreatedByID        midentifier.ID         `json:"createdById"`
	UpdatedByID        midentifier.ID         `json:"updatedById"`
}

// CreateMemoryInput is the request shape for creating a memory. The blob
// itself is already uploaded to the object store under
// OriginalContentRef by the time this call is made.
type CreateMemoryInput struct {
	SpaceID            midentifier.ID `json:"spaceId" validate:"required"`
	OriginalContentRef string         `json:"originalContentRef" validate:"required,max=1024"`
	ContentType        string         `json:"contentType" validate:"required,max=256"`
	Metadata           map[string]any `json:"metadata,omitempty"`
}

// MemoryListFilter is the set of optional filters a memory list call
// accepts within one space.
type MemoryListFilter struct {
	SpaceID midentifier.ID
	Status  *ProcessingStatus
}
