package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
	"github.com/wrapsell/wrapsell-ledger/internal/observability/metrics"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
)

const eventPublishTimeout = 30 * time.Second

// change is the outcome of a ledger operation applied to a cloned state.
type change struct {
	unit  *ledger.CollateralUnit
	pool  *ledger.PoolLedger
	event *types.LedgerEvent
	tx    *model.TransactionDocument
}

// commit runs apply against a clone of the ledger and swaps the clone in once
// the touched documents are persisted. On any error the ledger is untouched.
func (s *Service) commit(
	ctx context.Context, operation string, apply func(state *ledger.State) (*change, error),
) (err error) {
	startTime := time.Now()
	defer func() {
		metrics.RecordLedgerOperation(time.Since(startTime), operation, err != nil)
		if err != nil {
			metrics.IncLedgerOperationFailure(operation, failureReason(err))
		}
	}()

	c, err := s.applyLocked(ctx, apply)
	if err != nil {
		return err
	}

	s.publish(ctx, c.event)
	return nil
}

func (s *Service) applyLocked(
	ctx context.Context, apply func(state *ledger.State) (*change, error),
) (*change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	c, err := apply(next)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}
	s.state = next
	if c.event != nil {
		s.lastSequence++
		c.event.Sequence = s.lastSequence
	}
	s.recordHistory(ctx, c)
	return c, nil
}

func (s *Service) persist(ctx context.Context, c *change) error {
	if c.unit != nil {
		if err := s.db.SaveCollateralUnit(ctx, model.FromUnitSnapshot(c.unit.Snapshot())); err != nil {
			return fmt.Errorf("failed to persist collateral unit %s: %w", c.unit.ID(), err)
		}
	}
	if c.pool != nil {
		if err := s.db.SavePoolLedger(ctx, model.FromPoolSnapshot(c.pool.Snapshot())); err != nil {
			return fmt.Errorf("failed to persist pool ledger %s: %w", c.pool.ID(), err)
		}
	}
	return nil
}

// recordHistory stores the event and transaction of a committed change.
// Failures are logged, the ledger change stands.
func (s *Service) recordHistory(ctx context.Context, c *change) {
	if c.event != nil {
		if err := s.db.SaveLedgerEvent(ctx, model.FromLedgerEvent(c.event)); err != nil {
			log.Ctx(ctx).Error().Err(err).
				Str("event_id", c.event.ID).
				Str("type", c.event.Type.String()).
				Msg("Failed to save ledger event")
		}
	}
	if c.tx != nil {
		if err := s.db.SaveTransaction(ctx, c.tx); err != nil {
			log.Ctx(ctx).Error().Err(err).
				Str("transaction_id", c.tx.ID).
				Msg("Failed to save transaction record")
		}
	}
}

func (s *Service) publish(ctx context.Context, event *types.LedgerEvent) {
	if event == nil || s.consumer == nil {
		return
	}

	// the request may already be finished, publishing must not inherit its cancellation
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventPublishTimeout)
	defer cancel()

	if err := s.consumer.PushLedgerEvent(pubCtx, event); err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("event_id", event.ID).
			Str("type", event.Type.String()).
			Msg("Failed to publish ledger event")
	}
}

func (s *Service) newEvent(typ types.EventType) *types.LedgerEvent {
	return &types.LedgerEvent{
		ID:        uuid.NewString(),
		Type:      typ,
		Timestamp: s.now().Unix(),
	}
}

func (s *Service) GetEvents(
	ctx context.Context, filter model.LedgerEventFilter, paginationToken string,
) ([]*types.LedgerEvent, string, error) {
	result, err := s.db.FindLedgerEvents(ctx, filter, paginationToken)
	if err != nil {
		return nil, "", dbError(err)
	}

	events := make([]*types.LedgerEvent, 0, len(result.Data))
	for _, doc := range result.Data {
		events = append(events, doc.ToLedgerEvent())
	}
	return events, result.PaginationToken, nil
}

func failureReason(err error) string {
	return types.FromLedgerError(err).ErrorCode.String()
}
