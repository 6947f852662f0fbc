package priceclient

import (
	"context"
	"time"

	"github.com/wrapsell/wrapsell-ledger/internal/observability/metrics"
)

type priceClientWithMetrics struct {
	client PriceInterface
}

func NewPriceClientWithMetrics(client PriceInterface) *priceClientWithMetrics {
	return &priceClientWithMetrics{client: client}
}

func (p *priceClientWithMetrics) GetCardPrice(ctx context.Context, query CardQuery) (*CardPrice, error) {
	startTime := time.Now()
	price, err := p.client.GetCardPrice(ctx, query)
	metrics.RecordPriceClientLatency(time.Since(startTime), "GetCardPrice", err != nil)

	return price, err
}
