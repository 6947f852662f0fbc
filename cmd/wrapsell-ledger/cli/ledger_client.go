package cli

import (
	"errors"

	"github.com/wrapsell/wrapsell-ledger/internal/clients/ledgerclient"
	"github.com/wrapsell/wrapsell-ledger/internal/config"
	"github.com/wrapsell/wrapsell-ledger/internal/observability/metrics"
)

func newLedgerClient(cfg *config.Config) (ledgerclient.LedgerInterface, error) {
	if cfg.LedgerClient == nil {
		return nil, errors.New("ledger-client section is missing in config")
	}
	// client commands do not serve metrics but still record them
	metrics.Init(0)
	return ledgerclient.NewLedgerClientWithMetrics(ledgerclient.NewClient(cfg.LedgerClient)), nil
}
