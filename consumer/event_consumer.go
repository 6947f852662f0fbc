package consumer

import (
	"context"

	"github.com/wrapsell/wrapsell-ledger/internal/types"
)

// EventConsumer is the downstream sink of committed ledger events.
type EventConsumer interface {
	Start() error
	PushLedgerEvent(ctx context.Context, ev *types.LedgerEvent) error
	Stop() error
}
