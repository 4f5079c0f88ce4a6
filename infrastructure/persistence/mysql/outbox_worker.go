package mysql

import (
	"context"
	"fmt"
	"time"

	"podmarket/domain/shared"
	"podmarket/infrastructure/persistence/mysql/po"
	"podmarket/infrastructure/persistence/retry"
	"podmarket/pkg/logger"

	"go.uber.org/zap"
)

// DefaultStallTimeout PROCESSING 状态超过该时长视为 worker 崩溃遗留，
// 由轮询回收重新入队。
const DefaultStallTimeout = 5 * time.Minute

// EventDispatcher runs the deferred handlers registered for an envelope's
// event name. Satisfied by *shared.EventBus.
type EventDispatcher interface {
	DispatchDeferred(ctx context.Context, env shared.EventEnvelope) error
}

// OutboxForwarder optionally mirrors dispatched envelopes to an external
// stream for other systems to consume. Dispatch success does not depend on
// it; forward failures are logged and dropped.
type OutboxForwarder interface {
	Forward(ctx context.Context, env shared.EventEnvelope) error
}

// WorkerConfig Outbox worker tuning.
// Retry covers the worker's own DB round-trips (scan, status marking);
// MaxRetries counts dispatch attempts per event before dead-lettering.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxRetries   int
	StallTimeout time.Duration
	Retry        retry.Config
}

type OutboxWorker struct {
	repository   *OutboxRepository
	dispatcher   EventDispatcher
	forwarder    OutboxForwarder
	pollInterval time.Duration
	batchSize    int
	maxRetries   int
	stallTimeout time.Duration
	retryConfig  retry.Config
}

func NewOutboxWorker(
	repository *OutboxRepository,
	dispatcher EventDispatcher,
	forwarder OutboxForwarder,
	cfg WorkerConfig,
) (*OutboxWorker, error) {
	if repository == nil {
		return nil, fmt.Errorf("outbox repository is required")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("event dispatcher is required")
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive")
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive")
	}
	if cfg.MaxRetries <= 0 {
		return nil, fmt.Errorf("max retries must be positive")
	}
	if cfg.StallTimeout <= 0 {
		cfg.StallTimeout = DefaultStallTimeout
	}

	return &OutboxWorker{
		repository:   repository,
		dispatcher:   dispatcher,
		forwarder:    forwarder,
		pollInterval: cfg.PollInterval,
		batchSize:    cfg.BatchSize,
		maxRetries:   cfg.MaxRetries,
		stallTimeout: cfg.StallTimeout,
		retryConfig:  cfg.Retry,
	}, nil
}
func (w *OutboxWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.requeueStalled(ctx)
			if err := w.ProcessBatch(ctx); err != nil {
				logger.Error("Outbox batch processing failed", zap.Error(err))
			}
		}
	}
}

// requeueStalled 回收崩溃 worker 遗留的 PROCESSING 行。
// 重投是安全的：处理器靠幂等账本跳过已经生效的投递。
func (w *OutboxWorker) requeueStalled(ctx context.Context) {
	count, err := w.repository.RequeueStalled(ctx, w.stallTimeout)
	if err != nil {
		logger.Warn("Failed to requeue stalled outbox events", zap.Error(err))
		return
	}
	if count > 0 {
		logger.Info("Requeued stalled outbox events",
			zap.Int64("count", count),
			zap.Duration("stall_timeout", w.stallTimeout),
		)
	}
}

// ProcessBatch 取一批到期的 PENDING 事件并逐条分发。
// 任一处理器失败都算整条失败，事件带退避回到 PENDING；
// 已经成功过的处理器靠幂等账本在重投时跳过。
// 扫描和发布标记这两类自身的 DB 操作走瞬态重试（死锁、锁等待超时）。
func (w *OutboxWorker) ProcessBatch(ctx context.Context) error {
	var events []*po.OutboxEventPO
	err := retry.ExecuteWithRetry(ctx, w.retryConfig, func(ctx context.Context) error {
		var err error
		events, err = w.repository.GetPendingEvents(ctx, w.batchSize)
		return err
	})
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	for _, event := range events {
		env := event.ToEnvelope()
		log := logger.WithEvent(event.ID, env.Name)

		if err := w.repository.MarkEventProcessing(ctx, event.ID); err != nil {
			log.Warn("Skip outbox event due to lock contention", zap.Error(err))
			continue
		}

		if err := w.dispatcher.DispatchDeferred(ctx, env); err != nil {
			log.Warn("Deferred dispatch failed, scheduling retry",
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			if failErr := w.repository.MarkEventFailed(ctx, event.ID, w.maxRetries); failErr != nil {
				log.Error("Failed to mark outbox event as failed", zap.Error(failErr))
			}
			continue
		}

		if w.forwarder != nil {
			if err := w.forwarder.Forward(ctx, env); err != nil {
				log.Warn("Failed to forward event to external stream", zap.Error(err))
			}
		}

		// 标记失败会造成一次多余重投，靠账本兜底，这里尽力重试即可。
		err := retry.ExecuteWithRetry(ctx, w.retryConfig, func(ctx context.Context) error {
			return w.repository.MarkEventPublished(ctx, event.ID)
		})
		if err != nil {
			log.Error("Failed to mark outbox event as published", zap.Error(err))
		}
	}

	return nil
}
