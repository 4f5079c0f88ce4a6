package po

import (
	"time"

	"podmarket/domain/shared"
)

// OutboxEventPO Outbox event persistence object
// Implements transactional outbox pattern for durable deferred dispatch:
// the envelope is written once at publish time and re-read verbatim by the
// worker, so a crash between the two never loses an event.
type OutboxEventPO struct {
	ID            string     `gorm:"primaryKey;size:64"`
	AggregateID   string     `gorm:"size:64;index;not null"`
	EventType     string     `gorm:"size:100;index;not null"`                // e.g., "catalog.product.created"
	Payload       string     `gorm:"type:json;not null"`                     // JSON serialized event payload
	Status        string     `gorm:"size:20;default:PENDING;not null;index"` // PENDING, PROCESSING, PUBLISHED, FAILED
	RetryCount    int        `gorm:"default:0;not null"`
	NextAttemptAt *time.Time `gorm:"index"` // nil means dispatch immediately
	OccurredAt    time.Time  `gorm:"not null"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

// EventStatus Outbox event status enum
type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusFailed     EventStatus = "FAILED"
)

// FromEnvelope Convert an event envelope into an outbox row. The envelope's
// own id becomes the row key, keeping publish idempotent under retries.
func FromEnvelope(env shared.EventEnvelope) *OutboxEventPO {
	return &OutboxEventPO{
		ID:          env.EventID,
		AggregateID: env.AggregateID,
		EventType:   env.Name,
		Payload:     string(env.Payload),
		Status:      string(EventStatusPending),
		RetryCount:  0,
		OccurredAt:  env.OccurredAt,
	}
}

// ToEnvelope Rebuild the wire envelope for dispatch. The payload is stored
// as written, so re-delivered envelopes are byte-identical to the original.
func (po *OutboxEventPO) ToEnvelope() shared.EventEnvelope {
	return shared.EventEnvelope{
		EventID:     po.ID,
		Name:        po.EventType,
		AggregateID: po.AggregateID,
		OccurredAt:  po.OccurredAt,
		Payload:     []byte(po.Payload),
	}
}
