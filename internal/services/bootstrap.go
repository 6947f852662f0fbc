package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
)

const (
	bootstrapRetryInterval = 2 * time.Second
	bootstrapMaxRetries    = 5
)

// Bootstrap rebuilds the in-memory ledger from storage. Units are restored
// before pools so that pool members resolve. A document that fails the ledger
// invariants aborts the bootstrap.
func (s *Service) Bootstrap(ctx context.Context) error {
	log := log.Ctx(ctx)

	loaded, err := retry.DoWithData(
		func() (*loadedLedger, error) {
			return s.loadState(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(bootstrapMaxRetries),
		retry.Delay(bootstrapRetryInterval),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			// corrupt documents will not fix themselves
			return !isRestoreError(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Msgf("Failed to load ledger, attempt %d/%d", n+1, bootstrapMaxRetries)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to bootstrap ledger: %w", err)
	}

	s.mu.Lock()
	s.state = loaded.state
	s.lastSequence = loaded.lastSequence
	s.mu.Unlock()

	log.Info().
		Int("units", len(loaded.state.Units())).
		Int("pools", len(loaded.state.Pools())).
		Int64("last_event_sequence", loaded.lastSequence).
		Msg("Successfully bootstrapped ledger")
	return nil
}

type restoreError struct {
	err error
}

func (e *restoreError) Error() string { return e.err.Error() }
func (e *restoreError) Unwrap() error { return e.err }

func isRestoreError(err error) bool {
	var target *restoreError
	return errors.As(err, &target)
}

type loadedLedger struct {
	state        *ledger.State
	lastSequence int64
}

func (s *Service) loadState(ctx context.Context) (*loadedLedger, error) {
	unitDocs, err := s.db.GetCollateralUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load collateral units: %w", err)
	}
	poolDocs, err := s.db.GetPoolLedgers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pool ledgers: %w", err)
	}
	lastSequence, err := s.db.GetLastLedgerEventSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load last event sequence: %w", err)
	}

	state := ledger.NewState()
	for _, doc := range unitDocs {
		snap, err := doc.ToSnapshot()
		if err != nil {
			return nil, &restoreError{err: err}
		}
		if err := state.RestoreUnit(snap); err != nil {
			return nil, &restoreError{err: err}
		}
	}
	for _, doc := range poolDocs {
		snap, err := doc.ToSnapshot()
		if err != nil {
			return nil, &restoreError{err: err}
		}
		if err := state.RestorePool(snap); err != nil {
			return nil, &restoreError{err: err}
		}
	}

	return &loadedLedger{state: state, lastSequence: lastSequence}, nil
}
