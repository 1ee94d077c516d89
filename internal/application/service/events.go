package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	MediaEventTypeOrphaned   = "media.orphaned"
	MessageEventTypeReceived = "message.received"
)

// MediaOrphanedEvent reports a hosted image that no record references but
// that could not be deleted inline.
type MediaOrphanedEvent struct {
	EventType  string    `json:"event_type"`
	Handle     string    `json:"handle"`
	Resource   string    `json:"resource"`
	ResourceID uuid.UUID `json:"resource_id"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

type MessageReceivedEvent struct {
	EventType  string    `json:"event_type"`
	MessageID  uuid.UUID `json:"message_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishMediaOrphaned(ctx context.Context, e MediaOrphanedEvent) error
	PublishMessageReceived(ctx context.Context, e MessageReceivedEvent) error
}
