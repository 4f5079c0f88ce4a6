package mysql

import (
	"context"
	"fmt"
	"time"

	"podmarket/domain/shared"
	"podmarket/infrastructure/persistence"
	"podmarket/infrastructure/persistence/mysql/po"
	"podmarket/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// OutboxRepository MySQL/GORM implementation of the durable event queue
// Implements transactional outbox pattern: Enqueue writes the envelope to a
// table, the worker re-reads it and dispatches. Delivery is at-least-once;
// handlers deduplicate on the envelope's event id.
type OutboxRepository struct {
	db *gorm.DB
}

// NewOutboxRepository Create outbox repository
func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *OutboxRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Enqueue Persist the envelope for deferred dispatch.
// The row key is the envelope's event id, so a retried publish of the same
// envelope cannot produce two rows.
func (r *OutboxRepository) Enqueue(ctx context.Context, env shared.EventEnvelope) error {
	outboxPO := po.FromEnvelope(env)

	if err := r.getDB(ctx).Create(outboxPO).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to enqueue event to outbox: %w", err)
	}

	return nil
}

// GetPendingEvents Get due pending events for processing.
// Rows with a future next_attempt_at are still backing off and are skipped.
func (r *OutboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*po.OutboxEventPO, error) {
	var events []*po.OutboxEventPO

	err := r.getDB(ctx).
		Where("status = ? AND (next_attempt_at IS NULL OR next_attempt_at <= ?)",
			string(po.EventStatusPending), time.Now()).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pending events: %w", err)
	}

	return events, nil
}

// MarkEventProcessing Mark event as being processed
// The conditional update doubles as a claim, preventing two workers from
// dispatching the same row.
func (r *OutboxRepository) MarkEventProcessing(ctx context.Context, eventID string) error {
	result := r.getDB(ctx).Model(&po.OutboxEventPO{}).
		Where("id = ? AND status = ?", eventID, string(po.EventStatusPending)).
		Updates(map[string]interface{}{
			"status":     string(po.EventStatusProcessing),
			"updated_at": gorm.Expr("NOW()"),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("event not found or already being processed: %s", eventID)
	}

	return nil
}

// RequeueStalled Return stale PROCESSING rows to PENDING.
// A worker that crashes between claiming a row and marking the outcome leaves
// the claim behind; nothing else ever touches PROCESSING rows, so any claim
// older than olderThan is an orphan. Re-dispatch is safe because handlers
// deduplicate on the envelope's event id.
func (r *OutboxRepository) RequeueStalled(ctx context.Context, olderThan time.Duration) (int64, error) {
	result := r.getDB(ctx).Model(&po.OutboxEventPO{}).
		Where("status = ? AND updated_at < ?",
			string(po.EventStatusProcessing), time.Now().Add(-olderThan)).
		Updates(map[string]interface{}{
			"status":     string(po.EventStatusPending),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to requeue stalled events: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// MarkEventPublished Mark event as successfully dispatched
func (r *OutboxRepository) MarkEventPublished(ctx context.Context, eventID string) error {
	result := r.getDB(ctx).Model(&po.OutboxEventPO{}).
		Where("id = ?", eventID).
		Updates(map[string]interface{}{
			"status":     string(po.EventStatusPublished),
			"updated_at": gorm.Expr("NOW()"),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("event not found: %s", eventID)
	}

	return nil
}

// MarkEventFailed Mark a dispatch attempt as failed.
// Below maxRetries the row goes back to PENDING with an exponential-backoff
// next_attempt_at; at maxRetries it becomes FAILED, the dead-letter state an
// operator has to resolve by hand.
func (r *OutboxRepository) MarkEventFailed(ctx context.Context, eventID string, maxRetries int) error {
	db := r.getDB(ctx)

	var event po.OutboxEventPO
	if err := db.First(&event, "id = ?", eventID).Error; err != nil {
		return fmt.Errorf("failed to find event: %w", err)
	}

	newRetryCount := event.RetryCount + 1
	values := map[string]interface{}{
		"retry_count": newRetryCount,
		"updated_at":  gorm.Expr("NOW()"),
	}
	if newRetryCount < maxRetries {
		values["status"] = string(po.EventStatusPending)
		backoff := retry.ExponentialBackoffWithJitter(newRetryCount, retry.DefaultConfig)
		values["next_attempt_at"] = time.Now().Add(backoff)
	} else {
		values["status"] = string(po.EventStatusFailed)
	}

	result := db.Model(&po.OutboxEventPO{}).
		Where("id = ?", eventID).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// Compile-time interface implementation check
var _ shared.EventQueue = (*OutboxRepository)(nil)
