package shared

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a business-significant state change recorded by one bounded
// context and consumed by handlers in others. Events are immutable; the
// payload carries every denormalized field subscribers need so that handling
// an event never forces a query back into the publishing context.
type DomainEvent interface {
	// EventName is the symbolic, dot-separated name, e.g. "catalog.product.created".
	EventName() string

	// OccurredOn is the creation timestamp of the event.
	OccurredOn() time.Time

	// AggregateID is the DomainId of the aggregate the event describes.
	AggregateID() string

	// EventPayload returns the serializable event-specific payload.
	EventPayload() any
}

// EventEnvelope is the wire form of a published event. It is the only
// artifact that crosses the process boundary (outbox table, worker, optional
// stream forwarding), so its JSON shape must stay stable for safe re-delivery
// after a crash.
type EventEnvelope struct {
	EventID     string          `json:"event_id"`
	Name        string          `json:"name"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// NewEventEnvelope seals a domain event into its wire form, assigning the
// unique event id that idempotent consumers deduplicate on.
func NewEventEnvelope(event DomainEvent) (EventEnvelope, error) {
	if err := ValidateEvent(event); err != nil {
		return EventEnvelope{}, err
	}
	payload, err := json.Marshal(event.EventPayload())
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("marshal payload of %s: %w", event.EventName(), err)
	}
	return EventEnvelope{
		EventID:     uuid.New().String(),
		Name:        event.EventName(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredOn(),
		Payload:     payload,
	}, nil
}

// DecodePayload unmarshals the envelope payload into a typed payload struct.
func (e EventEnvelope) DecodePayload(dst any) error {
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Name, err)
	}
	return nil
}

// ValidateEvent rejects structurally broken events before publication.
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if event.AggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}
	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}
	return nil
}
