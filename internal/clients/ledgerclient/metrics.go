package ledgerclient

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
	"github.com/wrapsell/wrapsell-ledger/internal/observability/metrics"
	"github.com/wrapsell/wrapsell-ledger/internal/services"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
)

type ledgerClientWithMetrics struct {
	client LedgerInterface
}

func NewLedgerClientWithMetrics(client LedgerInterface) *ledgerClientWithMetrics {
	return &ledgerClientWithMetrics{client: client}
}

// auxiliary type for methods returning only an error
type zero struct{}

func (l *ledgerClientWithMetrics) Health(ctx context.Context) error {
	_, err := runLedgerClientMethodWithMetrics("Health", func() (zero, error) {
		return zero{}, l.client.Health(ctx)
	})
	return err
}

func (l *ledgerClientWithMetrics) CreateUnit(ctx context.Context, params ledger.UnitParams) (*services.UnitView, error) {
	return runLedgerClientMethodWithMetrics("CreateUnit", func() (*services.UnitView, error) {
		return l.client.CreateUnit(ctx, params)
	})
}

func (l *ledgerClientWithMetrics) ListUnits(ctx context.Context) ([]*services.UnitView, error) {
	return runLedgerClientMethodWithMetrics("ListUnits", func() ([]*services.UnitView, error) {
		return l.client.ListUnits(ctx)
	})
}

func (l *ledgerClientWithMetrics) GetCollateralInfo(ctx context.Context, unitID string) (ledger.CollateralInfo, error) {
	return runLedgerClientMethodWithMetrics("GetCollateralInfo", func() (ledger.CollateralInfo, error) {
		return l.client.GetCollateralInfo(ctx, unitID)
	})
}

func (l *ledgerClientWithMetrics) DepositCards(
	ctx context.Context, unitID string, caller ledger.Account, count uint64, payment sdkmath.Int,
) (sdkmath.Int, error) {
	return runLedgerClientMethodWithMetrics("DepositCards", func() (sdkmath.Int, error) {
		return l.client.DepositCards(ctx, unitID, caller, count, payment)
	})
}

func (l *ledgerClientWithMetrics) UnitBalanceOf(
	ctx context.Context, unitID string, account ledger.Account,
) (sdkmath.Int, error) {
	return runLedgerClientMethodWithMetrics("UnitBalanceOf", func() (sdkmath.Int, error) {
		return l.client.UnitBalanceOf(ctx, unitID, account)
	})
}

func (l *ledgerClientWithMetrics) TransferUnitTokens(
	ctx context.Context, unitID string, caller, to ledger.Account, amount sdkmath.Int,
) error {
	_, err := runLedgerClientMethodWithMetrics("TransferUnitTokens", func() (zero, error) {
		return zero{}, l.client.TransferUnitTokens(ctx, unitID, caller, to, amount)
	})
	return err
}

func (l *ledgerClientWithMetrics) CreatePool(ctx context.Context, params ledger.PoolParams) (*services.PoolView, error) {
	return runLedgerClientMethodWithMetrics("CreatePool", func() (*services.PoolView, error) {
		return l.client.CreatePool(ctx, params)
	})
}

func (l *ledgerClientWithMetrics) ListPools(ctx context.Context) ([]*services.PoolView, error) {
	return runLedgerClientMethodWithMetrics("ListPools", func() ([]*services.PoolView, error) {
		return l.client.ListPools(ctx)
	})
}

func (l *ledgerClientWithMetrics) GetPoolInfo(ctx context.Context, poolID string) (ledger.PoolInfo, error) {
	return runLedgerClientMethodWithMetrics("GetPoolInfo", func() (ledger.PoolInfo, error) {
		return l.client.GetPoolInfo(ctx, poolID)
	})
}

func (l *ledgerClientWithMetrics) AddWrapSell(
	ctx context.Context, poolID string, caller ledger.Account, unitID string, weight sdkmath.LegacyDec,
) error {
	_, err := runLedgerClientMethodWithMetrics("AddWrapSell", func() (zero, error) {
		return zero{}, l.client.AddWrapSell(ctx, poolID, caller, unitID, weight)
	})
	return err
}

func (l *ledgerClientWithMetrics) AddPool(ctx context.Context, poolID string, caller ledger.Account, unitID string) error {
	_, err := runLedgerClientMethodWithMetrics("AddPool", func() (zero, error) {
		return zero{}, l.client.AddPool(ctx, poolID, caller, unitID)
	})
	return err
}

func (l *ledgerClientWithMetrics) GetTotalCollateralValue(ctx context.Context, poolID string) (sdkmath.Int, error) {
	return runLedgerClientMethodWithMetrics("GetTotalCollateralValue", func() (sdkmath.Int, error) {
		return l.client.GetTotalCollateralValue(ctx, poolID)
	})
}

func (l *ledgerClientWithMetrics) GetCurrentCollateralizationRatio(ctx context.Context, poolID string) (sdkmath.Int, error) {
	return runLedgerClientMethodWithMetrics("GetCurrentCollateralizationRatio", func() (sdkmath.Int, error) {
		return l.client.GetCurrentCollateralizationRatio(ctx, poolID)
	})
}

func (l *ledgerClientWithMetrics) Mint(ctx context.Context, poolID string, caller ledger.Account, amount sdkmath.Int) error {
	_, err := runLedgerClientMethodWithMetrics("Mint", func() (zero, error) {
		return zero{}, l.client.Mint(ctx, poolID, caller, amount)
	})
	return err
}

func (l *ledgerClientWithMetrics) PoolBalanceOf(
	ctx context.Context, poolID string, account ledger.Account,
) (sdkmath.Int, error) {
	return runLedgerClientMethodWithMetrics("PoolBalanceOf", func() (sdkmath.Int, error) {
		return l.client.PoolBalanceOf(ctx, poolID, account)
	})
}

func (l *ledgerClientWithMetrics) TransferStablecoins(
	ctx context.Context, poolID string, caller, to ledger.Account, amount sdkmath.Int,
) error {
	_, err := runLedgerClientMethodWithMetrics("TransferStablecoins", func() (zero, error) {
		return zero{}, l.client.TransferStablecoins(ctx, poolID, caller, to, amount)
	})
	return err
}

func (l *ledgerClientWithMetrics) GetEvents(
	ctx context.Context, filter model.LedgerEventFilter, paginationKey string,
) ([]*types.LedgerEvent, string, error) {
	type page struct {
		events []*types.LedgerEvent
		next   string
	}
	p, err := runLedgerClientMethodWithMetrics("GetEvents", func() (page, error) {
		events, next, err := l.client.GetEvents(ctx, filter, paginationKey)
		return page{events: events, next: next}, err
	})
	return p.events, p.next, err
}

func runLedgerClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	result, err := f()
	duration := time.Since(startTime)

	metrics.RecordLedgerClientLatency(duration, method, err != nil)

	return result, err
}
