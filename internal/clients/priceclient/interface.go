package priceclient

import "context"

// PriceInterface looks up the market prices of a single trading card.
type PriceInterface interface {
	GetCardPrice(ctx context.Context, query CardQuery) (*CardPrice, error)
}
