package service

import (
	"context"
	"time"
)

// Moderation event types.
const (
	EventVerificationRequested = "company.verification.requested"
	EventVerificationDecided   = "company.verification.decided"
	EventVerificationRemoved   = "company.verification.removed"
	EventProductSubmitted      = "product.approval.requested"
	EventProductDecided        = "product.approval.decided"
	EventProductApprovalRemove = "product.approval.removed"
	EventProductDeleted        = "product.deleted"
)

// ModerationEvent records a moderation state change for downstream consumers.
type ModerationEvent struct {
	EventID    string    `json:"event_id"`
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	Type       string    `json:"type"`
	SubjectID  string    `json:"subject_id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	PublishModerationEvent(ctx context.Context, event *ModerationEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
