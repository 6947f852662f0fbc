package db

import (
	"context"

	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
)

// DbResultMap is one page of a paginated query.
type DbResultMap[T any] struct {
	Data            []T    `json:"data"`
	PaginationToken string `json:"paginationToken"`
}

// CardFilter narrows card listings. Zero fields match everything.
type CardFilter struct {
	UserWallet string
	InPool     *bool
}

type DbInterface interface {
	Ping(ctx context.Context) error

	// SaveCollateralUnit inserts or replaces a unit, keeping its original creation time.
	SaveCollateralUnit(ctx context.Context, doc *model.CollateralUnitDocument) error
	// GetCollateralUnits returns every unit in creation order.
	GetCollateralUnits(ctx context.Context) ([]*model.CollateralUnitDocument, error)
	SavePoolLedger(ctx context.Context, doc *model.PoolLedgerDocument) error
	GetPoolLedgers(ctx context.Context) ([]*model.PoolLedgerDocument, error)

	SaveLedgerEvent(ctx context.Context, doc *model.LedgerEventDocument) error
	FindLedgerEvents(
		ctx context.Context, filter model.LedgerEventFilter, paginationToken string,
	) (*DbResultMap[*model.LedgerEventDocument], error)
	GetLastLedgerEventSequence(ctx context.Context) (int64, error)

	UpsertPoolStats(ctx context.Context, doc *model.PoolStatsDocument) error
	GetPoolStats(ctx context.Context, poolID string) (*model.PoolStatsDocument, error)

	SaveUser(ctx context.Context, doc *model.UserDocument) error
	GetUsers(ctx context.Context) ([]*model.UserDocument, error)
	GetUserByWallet(ctx context.Context, walletAddress string) (*model.UserDocument, error)

	SaveCard(ctx context.Context, doc *model.CardDocument) error
	GetCards(ctx context.Context, filter CardFilter) ([]*model.CardDocument, error)
	UpdateCard(ctx context.Context, id string, update *model.CardUpdate) (*model.CardDocument, error)
	DeleteCard(ctx context.Context, id string) error

	SaveTransaction(ctx context.Context, doc *model.TransactionDocument) error
	// GetTransactions lists transactions newest first; an empty wallet lists all of them.
	GetTransactions(ctx context.Context, userWallet string) ([]*model.TransactionDocument, error)
	UpdateTransaction(
		ctx context.Context, id string, update *model.TransactionUpdate,
	) (*model.TransactionDocument, error)
	DeleteTransaction(ctx context.Context, id string) error
}
