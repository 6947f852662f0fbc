package poller

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type Poller struct {
	interval   time.Duration
	quit       chan struct{}
	pollMethod func(ctx context.Context) error
}

func NewPoller(interval time.Duration, pollMethod func(ctx context.Context) error) *Poller {
	return &Poller{
		interval:   interval,
		quit:       make(chan struct{}),
		pollMethod: pollMethod,
	}
}

// Start runs the poll method on every tick until ctx is done or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Ctx(ctx).Info().Msgf("Starting poller with interval %s", p.interval)

	for {
		select {
		case <-ticker.C:
			log.Ctx(ctx).Debug().Msg("Executing poll method")
			if err := p.pollMethod(ctx); err != nil {
				log.Ctx(ctx).Error().Err(err).Msg("Error polling")
			} else {
				log.Ctx(ctx).Debug().Msg("Poll method executed successfully")
			}
		case <-ctx.Done():
			log.Ctx(ctx).Info().Msg("Poller stopped due to context cancellation")
			return
		case <-p.quit:
			log.Ctx(ctx).Info().Msg("Poller stopped")
			return
		}
	}
}

func (p *Poller) Stop() {
	close(p.quit)
}
