package ledgerclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"github.com/wrapsell/wrapsell-ledger/internal/api"
	"github.com/wrapsell/wrapsell-ledger/internal/clients/client"
	"github.com/wrapsell/wrapsell-ledger/internal/config"
	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
	"github.com/wrapsell/wrapsell-ledger/internal/services"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
)

type Client struct {
	httpClient *http.Client
	cfg        *config.LedgerClientConfig
	baseURL    string
}

func NewClient(cfg *config.LedgerClientConfig) *Client {
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

type empty struct{}

func (c *Client) Health(ctx context.Context) error {
	_, err := get[api.MessageResponse](ctx, c, "/example/health", "/example/health")
	return err
}

func (c *Client) CreateUnit(ctx context.Context, params ledger.UnitParams) (*services.UnitView, error) {
	req := &api.CreateUnitRequest{
		ID:        params.ID,
		Name:      params.Name,
		Symbol:    params.Symbol,
		CardID:    params.CardID,
		CardName:  params.CardName,
		Edition:   params.Edition,
		UnitPrice: params.UnitPrice.String(),
	}
	return post[api.CreateUnitRequest, services.UnitView](ctx, c, "/v1/units", "/v1/units", req)
}

func (c *Client) ListUnits(ctx context.Context) ([]*services.UnitView, error) {
	resp, err := get[[]*services.UnitView](ctx, c, "/v1/units", "/v1/units")
	if err != nil {
		return nil, err
	}
	return *resp, nil
}

func (c *Client) GetCollateralInfo(ctx context.Context, unitID string) (ledger.CollateralInfo, error) {
	resp, err := get[ledger.CollateralInfo](ctx, c,
		"/v1/units/"+url.PathEscape(unitID)+"/collateral", "/v1/units/{id}/collateral")
	if err != nil {
		return ledger.CollateralInfo{}, err
	}
	return *resp, nil
}

func (c *Client) DepositCards(
	ctx context.Context, unitID string, caller ledger.Account, count uint64, payment sdkmath.Int,
) (sdkmath.Int, error) {
	req := &api.DepositRequest{Caller: caller.String(), Count: count, Payment: payment.String()}
	resp, err := post[api.DepositRequest, api.DepositResponse](ctx, c,
		"/v1/units/"+url.PathEscape(unitID)+"/deposits", "/v1/units/{id}/deposits", req)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return resp.Minted, nil
}

func (c *Client) UnitBalanceOf(ctx context.Context, unitID string, account ledger.Account) (sdkmath.Int, error) {
	resp, err := get[api.BalanceResponse](ctx, c,
		"/v1/units/"+url.PathEscape(unitID)+"/balances/"+account.String(),
		"/v1/units/{id}/balances/{account}")
	if err != nil {
		return sdkmath.Int{}, err
	}
	return resp.Balance, nil
}

func (c *Client) TransferUnitTokens(
	ctx context.Context, unitID string, caller, to ledger.Account, amount sdkmath.Int,
) error {
	req := &api.TransferRequest{Caller: caller.String(), To: to.String(), Amount: amount.String()}
	_, err := post[api.TransferRequest, empty](ctx, c,
		"/v1/units/"+url.PathEscape(unitID)+"/transfers", "/v1/units/{id}/transfers", req)
	return err
}

func (c *Client) CreatePool(ctx context.Context, params ledger.PoolParams) (*services.PoolView, error) {
	req := &api.CreatePoolRequest{
		ID:          params.ID,
		Owner:       params.Owner.String(),
		Name:        params.Name,
		Symbol:      params.Symbol,
		TcgType:     params.TcgType,
		Edition:     params.Edition,
		Description: params.Description,
	}
	return post[api.CreatePoolRequest, services.PoolView](ctx, c, "/v1/pools", "/v1/pools", req)
}

func (c *Client) ListPools(ctx context.Context) ([]*services.PoolView, error) {
	resp, err := get[[]*services.PoolView](ctx, c, "/v1/pools", "/v1/pools")
	if err != nil {
		return nil, err
	}
	return *resp, nil
}

func (c *Client) GetPoolInfo(ctx context.Context, poolID string) (ledger.PoolInfo, error) {
	resp, err := get[ledger.PoolInfo](ctx, c, "/v1/pools/"+url.PathEscape(poolID), "/v1/pools/{id}")
	if err != nil {
		return ledger.PoolInfo{}, err
	}
	return *resp, nil
}

func (c *Client) AddWrapSell(
	ctx context.Context, poolID string, caller ledger.Account, unitID string, weight sdkmath.LegacyDec,
) error {
	w := weight.String()
	return c.addMember(ctx, poolID, &api.AddMemberRequest{Caller: caller.String(), UnitID: unitID, Weight: &w})
}

func (c *Client) AddPool(ctx context.Context, poolID string, caller ledger.Account, unitID string) error {
	return c.addMember(ctx, poolID, &api.AddMemberRequest{Caller: caller.String(), UnitID: unitID})
}

func (c *Client) addMember(ctx context.Context, poolID string, req *api.AddMemberRequest) error {
	_, err := post[api.AddMemberRequest, services.PoolView](ctx, c,
		"/v1/pools/"+url.PathEscape(poolID)+"/members", "/v1/pools/{id}/members", req)
	return err
}

func (c *Client) GetTotalCollateralValue(ctx context.Context, poolID string) (sdkmath.Int, error) {
	resp, err := get[api.CollateralValueResponse](ctx, c,
		"/v1/pools/"+url.PathEscape(poolID)+"/collateral-value", "/v1/pools/{id}/collateral-value")
	if err != nil {
		return sdkmath.Int{}, err
	}
	return resp.PoolValue, nil
}

func (c *Client) GetCurrentCollateralizationRatio(ctx context.Context, poolID string) (sdkmath.Int, error) {
	resp, err := get[api.CollateralizationRatioResponse](ctx, c,
		"/v1/pools/"+url.PathEscape(poolID)+"/collateralization-ratio",
		"/v1/pools/{id}/collateralization-ratio")
	if err != nil {
		return sdkmath.Int{}, err
	}
	return resp.Ratio, nil
}

func (c *Client) Mint(ctx context.Context, poolID string, caller ledger.Account, amount sdkmath.Int) error {
	req := &api.MintRequest{Caller: caller.String(), Amount: amount.String()}
	_, err := post[api.MintRequest, ledger.PoolInfo](ctx, c,
		"/v1/pools/"+url.PathEscape(poolID)+"/mint", "/v1/pools/{id}/mint", req)
	return err
}

func (c *Client) PoolBalanceOf(ctx context.Context, poolID string, account ledger.Account) (sdkmath.Int, error) {
	resp, err := get[api.BalanceResponse](ctx, c,
		"/v1/pools/"+url.PathEscape(poolID)+"/balances/"+account.String(),
		"/v1/pools/{id}/balances/{account}")
	if err != nil {
		return sdkmath.Int{}, err
	}
	return resp.Balance, nil
}

func (c *Client) TransferStablecoins(
	ctx context.Context, poolID string, caller, to ledger.Account, amount sdkmath.Int,
) error {
	req := &api.TransferRequest{Caller: caller.String(), To: to.String(), Amount: amount.String()}
	_, err := post[api.TransferRequest, empty](ctx, c,
		"/v1/pools/"+url.PathEscape(poolID)+"/transfers", "/v1/pools/{id}/transfers", req)
	return err
}

func (c *Client) GetEvents(
	ctx context.Context, filter model.LedgerEventFilter, paginationKey string,
) ([]*types.LedgerEvent, string, error) {
	q := url.Values{}
	if filter.Type != "" {
		q.Set("type", filter.Type.String())
	}
	if filter.UnitID != "" {
		q.Set("unit_id", filter.UnitID)
	}
	if filter.PoolID != "" {
		q.Set("pool_id", filter.PoolID)
	}
	if paginationKey != "" {
		q.Set("pagination_key", paginationKey)
	}
	path := "/v1/events"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := get[api.PaginatedResponse[*types.LedgerEvent]](ctx, c, path, "/v1/events")
	if err != nil {
		return nil, "", err
	}
	return resp.Data, resp.Pagination.NextKey, nil
}

func get[R any](ctx context.Context, c *Client, path, templatePath string) (*R, error) {
	opts := &client.HttpClientOptions{Path: path, TemplatePath: templatePath}
	return callWithRetry(ctx, c.cfg, true, func() (*R, error) {
		return client.SendRequest[empty, R](ctx, c, http.MethodGet, opts, nil)
	})
}

func post[I any, R any](
	ctx context.Context, c *Client, path, templatePath string, input *I,
) (*R, error) {
	opts := &client.HttpClientOptions{Path: path, TemplatePath: templatePath}
	return callWithRetry(ctx, c.cfg, false, func() (*R, error) {
		return client.SendRequest[I, R](ctx, c, http.MethodPost, opts, input)
	})
}

// callWithRetry retries server errors. Transport failures are retried only
// for idempotent calls since a lost response may hide a committed write.
func callWithRetry[R any](
	ctx context.Context, cfg *config.LedgerClientConfig, idempotent bool, call retry.RetryableFuncWithData[*R],
) (*R, error) {
	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var apiErr *types.Error
			if errors.As(err, &apiErr) {
				return apiErr.StatusCode >= http.StatusInternalServerError
			}
			return idempotent
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("ledger request failed, retrying")
		}),
	)
	if err != nil {
		return nil, toLedgerError(err)
	}
	return result, nil
}

// messageSentinels share an error code with other failures and are told
// apart by the message the server returned.
var messageSentinels = []error{
	ledger.ErrUnitNotFound,
	ledger.ErrPoolNotFound,
	ledger.ErrInvalidAmount,
	ledger.ErrInvalidWeight,
	ledger.ErrInvalidAccount,
	ledger.ErrInsufficientBalance,
	ledger.ErrAmountOverflow,
}

// toLedgerError wraps the ledger sentinel matching the API error so callers
// can use errors.Is as they would against the ledger itself.
func toLedgerError(err error) error {
	var apiErr *types.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	if sentinel := types.ToLedgerError(apiErr.ErrorCode); sentinel != nil {
		return fmt.Errorf("%w: %w", sentinel, apiErr)
	}
	if apiErr.ErrorCode == types.NotFound || apiErr.ErrorCode == types.ValidationError {
		for _, sentinel := range messageSentinels {
			if strings.Contains(apiErr.Error(), sentinel.Error()) {
				return fmt.Errorf("%w: %w", sentinel, apiErr)
			}
		}
	}
	return apiErr
}
