package services

import (
	"context"
	"sync"
	"time"

	"github.com/wrapsell/wrapsell-ledger/consumer"
	"github.com/wrapsell/wrapsell-ledger/internal/clients/priceclient"
	"github.com/wrapsell/wrapsell-ledger/internal/config"
	"github.com/wrapsell/wrapsell-ledger/internal/db"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
)

// Service owns the ledger state. State changing calls are serialized, run
// against a clone and committed only once persisted.
type Service struct {
	cfg      *config.Config
	db       db.DbInterface
	consumer consumer.EventConsumer
	// prices is nil when card price lookups are not configured
	prices priceclient.PriceInterface

	mu    sync.RWMutex
	state *ledger.State
	// lastSequence is the sequence of the newest committed event
	lastSequence int64

	now func() time.Time
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	consumer consumer.EventConsumer,
	prices priceclient.PriceInterface,
) *Service {
	return &Service{
		cfg:      cfg,
		db:       db,
		consumer: consumer,
		prices:   prices,
		state:    ledger.NewState(),
		now:      time.Now,
	}
}

// Start loads the persisted ledger and starts background work.
func (s *Service) Start(ctx context.Context) error {
	if err := s.Bootstrap(ctx); err != nil {
		return err
	}
	s.StartStatsPoller(ctx)
	return nil
}

// Ping reports whether the storage backend is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
