package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "nutrilens/internal/delivery/context"
	"nutrilens/internal/domain/service"

	"github.com/google/uuid"
)

const (
	workflowVerification = "verification"
	workflowProduct      = "product"
)

// decisionRecorder counts applied moderation transitions and announces them to subscribers.
type decisionRecorder struct {
	publisher service.EventPublisher
	metrics   service.MetricsRecorder
}

// record never fails the caller: the transition is already persisted.
func (r *decisionRecorder) record(ctx context.Context, logger *slog.Logger, workflow, eventType string, subjectID, actorID uuid.UUID, action string) {
	r.metrics.IncrModerationDecision(workflow, action)

	event := &service.ModerationEvent{
		EventID:    uuid.NewString(),
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		SubjectID:  subjectID.String(),
		ActorID:    actorID.String(),
		Action:     action,
		OccurredAt: time.Now().UTC(),
	}
	if err := r.publisher.PublishModerationEvent(ctx, event); err != nil {
		r.metrics.IncrCollaboratorFailure(service.CollaboratorPublisher)
		logger.Error("Failed to publish moderation event",
			slog.String("event_type", eventType),
			slog.String("subject_id", event.SubjectID),
			slog.Any("error", err),
		)
	}
}
