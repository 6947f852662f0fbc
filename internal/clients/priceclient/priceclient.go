package priceclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"github.com/wrapsell/wrapsell-ledger/internal/clients/client"
	"github.com/wrapsell/wrapsell-ledger/internal/config"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
)

const cardPageTemplatePath = "/game/{edition}/{card}"

// Client scrapes card prices from pricecharting.com style card pages.
type Client struct {
	httpClient *http.Client
	cfg        *config.PriceClientConfig
	baseURL    string
}

func NewClient(cfg *config.PriceClientConfig) *Client {
	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

func (c *Client) GetBaseURL() string {
	return c.baseURL
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *Client) GetCardPrice(ctx context.Context, query CardQuery) (*CardPrice, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	path := query.Path()
	opts := &client.HttpClientOptions{
		Path:         path,
		TemplatePath: cardPageTemplatePath,
		Headers: map[string]string{
			"Accept":     "text/html",
			"User-Agent": c.cfg.UserAgent,
		},
	}

	page, err := retry.DoWithData(
		func() ([]byte, error) {
			_, body, err := client.SendRawRequest[struct{}](ctx, c, http.MethodGet, opts, nil)
			return body, err
		},
		retry.Context(ctx),
		retry.Attempts(c.cfg.MaxRetryTimes),
		retry.Delay(c.cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var apiErr *types.Error
			if errors.As(err, &apiErr) {
				return apiErr.StatusCode >= http.StatusInternalServerError ||
					apiErr.StatusCode == http.StatusTooManyRequests
			}
			return true
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", c.cfg.MaxRetryTimes).
				Str("path", path).
				Err(err).
				Msg("card price request failed, retrying")
		}),
	)
	if err != nil {
		var apiErr *types.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrCardNotFound, path)
		}
		return nil, fmt.Errorf("card price request %s: %w", path, err)
	}

	prices, err := parsePriceTable(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &CardPrice{
		Edition: query.Edition,
		Name:    query.Name,
		Number:  query.Number,
		URL:     c.baseURL + path,
		Prices:  prices,
	}, nil
}
