// Package audit provides the synchronous audit-trail event handler.
package audit

import (
	"context"

	"podmarket/domain/shared"
	"podmarket/pkg/logger"

	"go.uber.org/zap"
)

// LogHandler writes one structured log line per published event. It runs
// synchronously: the line is emitted before Publish returns, so the audit
// trail is ordered exactly like the writes that produced it. Logging cannot
// meaningfully fail, which is what makes sync registration safe here.
type LogHandler struct{}

func NewLogHandler() *LogHandler { return &LogHandler{} }

func (h *LogHandler) Name() string { return "audit.log" }

func (h *LogHandler) Handle(ctx context.Context, env shared.EventEnvelope) error {
	logger.WithEvent(env.EventID, env.Name).Info("Domain event published",
		zap.String("aggregate_id", env.AggregateID),
		zap.Time("occurred_at", env.OccurredAt),
	)
	return nil
}

var _ shared.EventHandler = (*LogHandler)(nil)
