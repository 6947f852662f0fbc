package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
	"github.com/wrapsell/wrapsell-ledger/internal/observability/metrics"
	"github.com/wrapsell/wrapsell-ledger/internal/utils/poller"
)

// StartStatsPoller starts the stats polling service
func (s *Service) StartStatsPoller(ctx context.Context) {
	statsPoller := poller.NewPoller(
		s.cfg.Poller.StatsPollingInterval,
		metrics.InstrumentPoller("pool_stats", s.calculateAndUpdateStats),
	)
	go statsPoller.Start(ctx)
}

type poolStats struct {
	id      string
	info    ledger.PoolInfo
	members int
}

// calculateAndUpdateStats snapshots the read model of every pool, exports it
// as gauges and stores it in the pool stats collection
func (s *Service) calculateAndUpdateStats(ctx context.Context) error {
	log := log.Ctx(ctx)

	s.mu.RLock()
	pools := s.state.Pools()
	stats := make([]poolStats, 0, len(pools))
	for _, p := range pools {
		info, err := p.GetPoolInfo()
		if err != nil {
			log.Warn().
				Err(err).
				Str("pool_id", p.ID()).
				Msg("Skipping pool with unrepresentable stats")
			continue
		}
		stats = append(stats, poolStats{id: p.ID(), info: info, members: p.MemberCount()})
	}
	s.mu.RUnlock()

	// If no pools exist, skip processing and wait for next poll
	if len(stats) == 0 {
		log.Debug().Msg("No pools found - skipping stats update")
		return nil
	}

	for _, st := range stats {
		metrics.RecordPoolStats(
			st.id,
			st.info.PoolValue,
			st.info.StablecoinSupply,
			st.info.CollateralizationRatio,
			ledger.IsInfiniteRatio(st.info.CollateralizationRatio),
			st.members,
		)

		if err := s.db.UpsertPoolStats(ctx, &model.PoolStatsDocument{
			ID:                     st.id,
			PoolValue:              st.info.PoolValue.String(),
			StablecoinSupply:       st.info.StablecoinSupply.String(),
			CollateralizationRatio: st.info.CollateralizationRatio.String(),
			MemberCount:            st.members,
		}); err != nil {
			log.Error().
				Err(err).
				Str("pool_id", st.id).
				Msg("Failed to upsert pool stats")
			return fmt.Errorf("failed to upsert pool stats for %s: %w", st.id, err)
		}
	}

	log.Debug().
		Int("pool_count", len(stats)).
		Msg("Updated pool stats")

	return nil
}

func (s *Service) GetPoolStats(ctx context.Context, poolID string) (*model.PoolStatsDocument, error) {
	stats, err := s.db.GetPoolStats(ctx, poolID)
	if err != nil {
		return nil, dbError(err)
	}
	return stats, nil
}
