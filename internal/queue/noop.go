package queue

import (
	"context"

	"github.com/wrapsell/wrapsell-ledger/internal/types"
	"go.uber.org/zap"
)

// NoopQueueManager drops events. It is used when publishing is disabled.
type NoopQueueManager struct {
	logger *zap.Logger
}

func NewNoopQueueManager(logger *zap.Logger) *NoopQueueManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoopQueueManager{logger: logger}
}

func (n *NoopQueueManager) Start() error { return nil }

func (n *NoopQueueManager) PushLedgerEvent(_ context.Context, ev *types.LedgerEvent) error {
	n.logger.Debug("queue disabled, dropping ledger event",
		zap.String("event_id", ev.ID),
		zap.String("type", ev.Type.String()),
	)
	return nil
}

func (n *NoopQueueManager) Stop() error { return nil }
