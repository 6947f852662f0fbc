package ledgerclient

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
	"github.com/wrapsell/wrapsell-ledger/internal/services"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
)

// LedgerInterface is the typed client of a running ledger API. Ledger
// failures are returned wrapping the matching ledger sentinel error.
//
//go:generate mockery --name=LedgerInterface --output=../../../tests/mocks/ledgerclientmocks --outpkg=ledgerclientmocks --filename=LedgerInterface.go
type LedgerInterface interface {
	Health(ctx context.Context) error

	CreateUnit(ctx context.Context, params ledger.UnitParams) (*services.UnitView, error)
	ListUnits(ctx context.Context) ([]*services.UnitView, error)
	GetCollateralInfo(ctx context.Context, unitID string) (ledger.CollateralInfo, error)
	DepositCards(
		ctx context.Context, unitID string, caller ledger.Account, count uint64, payment sdkmath.Int,
	) (sdkmath.Int, error)
	UnitBalanceOf(ctx context.Context, unitID string, account ledger.Account) (sdkmath.Int, error)
	TransferUnitTokens(ctx context.Context, unitID string, caller, to ledger.Account, amount sdkmath.Int) error

	CreatePool(ctx context.Context, params ledger.PoolParams) (*services.PoolView, error)
	ListPools(ctx context.Context) ([]*services.PoolView, error)
	GetPoolInfo(ctx context.Context, poolID string) (ledger.PoolInfo, error)
	AddWrapSell(ctx context.Context, poolID string, caller ledger.Account, unitID string, weight sdkmath.LegacyDec) error
	AddPool(ctx context.Context, poolID string, caller ledger.Account, unitID string) error
	GetTotalCollateralValue(ctx context.Context, poolID string) (sdkmath.Int, error)
	GetCurrentCollateralizationRatio(ctx context.Context, poolID string) (sdkmath.Int, error)
	Mint(ctx context.Context, poolID string, caller ledger.Account, amount sdkmath.Int) error
	PoolBalanceOf(ctx context.Context, poolID string, account ledger.Account) (sdkmath.Int, error)
	TransferStablecoins(ctx context.Context, poolID string, caller, to ledger.Account, amount sdkmath.Int) error

	GetEvents(
		ctx context.Context, filter model.LedgerEventFilter, paginationKey string,
	) ([]*types.LedgerEvent, string, error)
}
