package db

import (
	"context"
	"time"

	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"github.com/wrapsell/wrapsell-ledger/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) SaveCollateralUnit(ctx context.Context, doc *model.CollateralUnitDocument) error {
	return d.run("SaveCollateralUnit", func() error {
		return d.db.SaveCollateralUnit(ctx, doc)
	})
}

func (d *DbWithMetrics) GetCollateralUnits(ctx context.Context) (result []*model.CollateralUnitDocument, err error) {
	//nolint:errcheck
	d.run("GetCollateralUnits", func() error {
		result, err = d.db.GetCollateralUnits(ctx)
		return err
	})

	return
}

func (d *DbWithMetrics) SavePoolLedger(ctx context.Context, doc *model.PoolLedgerDocument) error {
	return d.run("SavePoolLedger", func() error {
		return d.db.SavePoolLedger(ctx, doc)
	})
}

func (d *DbWithMetrics) GetPoolLedgers(ctx context.Context) (result []*model.PoolLedgerDocument, err error) {
	//nolint:errcheck
	d.run("GetPoolLedgers", func() error {
		result, err = d.db.GetPoolLedgers(ctx)
		return err
	})

	return
}

func (d *DbWithMetrics) SaveLedgerEvent(ctx context.Context, doc *model.LedgerEventDocument) error {
	return d.run("SaveLedgerEvent", func() error {
		return d.db.SaveLedgerEvent(ctx, doc)
	})
}

func (d *DbWithMetrics) FindLedgerEvents(
	ctx context.Context, filter model.LedgerEventFilter, paginationToken string,
) (result *DbResultMap[*model.LedgerEventDocument], err error) {
	//nolint:errcheck
	d.run("FindLedgerEvents", func() error {
		result, err = d.db.FindLedgerEvents(ctx, filter, paginationToken)
		return err
	})

	return
}

func (d *DbWithMetrics) GetLastLedgerEventSequence(ctx context.Context) (result int64, err error) {
	//nolint:errcheck
	d.run("GetLastLedgerEventSequence", func() error {
		result, err = d.db.GetLastLedgerEventSequence(ctx)
		return err
	})

	return
}

func (d *DbWithMetrics) UpsertPoolStats(ctx context.Context, doc *model.PoolStatsDocument) error {
	return d.run("UpsertPoolStats", func() error {
		return d.db.UpsertPoolStats(ctx, doc)
	})
}

func (d *DbWithMetrics) GetPoolStats(ctx context.Context, poolID string) (result *model.PoolStatsDocument, err error) {
	//nolint:errcheck
	d.run("GetPoolStats", func() error {
		result, err = d.db.GetPoolStats(ctx, poolID)
		return err
	})

	return
}

func (d *DbWithMetrics) SaveUser(ctx context.Context, doc *model.UserDocument) error {
	return d.run("SaveUser", func() error {
		return d.db.SaveUser(ctx, doc)
	})
}

func (d *DbWithMetrics) GetUsers(ctx context.Context) (result []*model.UserDocument, err error) {
	//nolint:errcheck
	d.run("GetUsers", func() error {
		result, err = d.db.GetUsers(ctx)
		return err
	})

	return
}

func (d *DbWithMetrics) GetUserByWallet(ctx context.Context, walletAddress string) (result *model.UserDocument, err error) {
	//nolint:errcheck
	d.run("GetUserByWallet", func() error {
		result, err = d.db.GetUserByWallet(ctx, walletAddress)
		return err
	})

	return
}

func (d *DbWithMetrics) SaveCard(ctx context.Context, doc *model.CardDocument) error {
	return d.run("SaveCard", func() error {
		return d.db.SaveCard(ctx, doc)
	})
}

func (d *DbWithMetrics) GetCards(ctx context.Context, filter CardFilter) (result []*model.CardDocument, err error) {
	//nolint:errcheck
	d.run("GetCards", func() error {
		result, err = d.db.GetCards(ctx, filter)
		return err
	})

	return
}

func (d *DbWithMetrics) UpdateCard(
	ctx context.Context, id string, update *model.CardUpdate,
) (result *model.CardDocument, err error) {
	//nolint:errcheck
	d.run("UpdateCard", func() error {
		result, err = d.db.UpdateCard(ctx, id, update)
		return err
	})

	return
}

func (d *DbWithMetrics) DeleteCard(ctx context.Context, id string) error {
	return d.run("DeleteCard", func() error {
		return d.db.DeleteCard(ctx, id)
	})
}

func (d *DbWithMetrics) SaveTransaction(ctx context.Context, doc *model.TransactionDocument) error {
	return d.run("SaveTransaction", func() error {
		return d.db.SaveTransaction(ctx, doc)
	})
}

func (d *DbWithMetrics) GetTransactions(ctx context.Context, userWallet string) (result []*model.TransactionDocument, err error) {
	//nolint:errcheck
	d.run("GetTransactions", func() error {
		result, err = d.db.GetTransactions(ctx, userWallet)
		return err
	})

	return
}

func (d *DbWithMetrics) UpdateTransaction(
	ctx context.Context, id string, update *model.TransactionUpdate,
) (result *model.TransactionDocument, err error) {
	//nolint:errcheck
	d.run("UpdateTransaction", func() error {
		result, err = d.db.UpdateTransaction(ctx, id, update)
		return err
	})

	return
}

func (d *DbWithMetrics) DeleteTransaction(ctx context.Context, id string) error {
	return d.run("DeleteTransaction", func() error {
		return d.db.DeleteTransaction(ctx, id)
	})
}

func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
