//go:build integration

package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrapsell/wrapsell-ledger/internal/db"
	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
	"github.com/wrapsell/wrapsell-ledger/pkg"
	"github.com/wrapsell/wrapsell-ledger/testutil"
)

func TestLedgerDocuments(t *testing.T) {
	ctx := context.Background()

	unit := &model.CollateralUnitDocument{
		ID:           "unit-" + testutil.RandomAccount().String(),
		CardID:       7,
		CardName:     "Blastoise",
		UnitPrice:    "1000000000000000000",
		TotalUnits:   0,
		TokensIssued: "0",
		Balances:     map[string]string{},
	}
	require.NoError(t, testDB.SaveCollateralUnit(ctx, unit))

	account := testutil.RandomAccount().String()
	unit.TotalUnits = 3
	unit.TokensIssued = "3000000000000000000"
	unit.Balances = map[string]string{account: "3000000000000000000"}
	require.NoError(t, testDB.SaveCollateralUnit(ctx, unit))

	units, err := testDB.GetCollateralUnits(ctx)
	require.NoError(t, err)

	var found *model.CollateralUnitDocument
	for _, u := range units {
		if u.ID == unit.ID {
			found = u
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, uint64(3), found.TotalUnits)
	assert.Equal(t, "3000000000000000000", found.Balances[account])
	assert.NotZero(t, found.CreatedAt)

	pool := &model.PoolLedgerDocument{
		ID:               "pool-" + testutil.RandomAccount().String(),
		Owner:            account,
		Members:          []model.PoolMemberDocument{{UnitID: unit.ID, Weight: "0.500000000000000000"}},
		StablecoinSupply: "0",
		Balances:         map[string]string{},
	}
	require.NoError(t, testDB.SavePoolLedger(ctx, pool))

	pools, err := testDB.GetPoolLedgers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, pools)
	assert.Equal(t, pool.Members, pools[len(pools)-1].Members)
}

func TestLedgerEventsPagination(t *testing.T) {
	ctx := context.Background()
	poolID := "events-" + testutil.RandomAccount().String()

	for ts := int64(1); ts <= 7; ts++ {
		event := testutil.RandomLedgerEvent(types.EventStablecoinMinted, ts)
		event.PoolID = poolID
		require.NoError(t, testDB.SaveLedgerEvent(ctx, event))
	}

	var timestamps []int64
	token := ""
	for {
		page, err := testDB.FindLedgerEvents(ctx, model.LedgerEventFilter{PoolID: poolID}, token)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(page.Data), testPageSize)
		for _, e := range page.Data {
			timestamps = append(timestamps, e.Timestamp)
		}
		if page.PaginationToken == "" {
			break
		}
		token = page.PaginationToken
	}
	assert.Equal(t, []int64{7, 6, 5, 4, 3, 2, 1}, timestamps)

	_, err := testDB.FindLedgerEvents(ctx, model.LedgerEventFilter{}, "%%%")
	assert.True(t, db.IsInvalidPaginationTokenError(err))
}

func TestPoolStats(t *testing.T) {
	ctx := context.Background()
	poolID := "stats-" + testutil.RandomAccount().String()

	_, err := testDB.GetPoolStats(ctx, poolID)
	assert.True(t, db.IsNotFoundError(err))

	require.NoError(t, testDB.UpsertPoolStats(ctx, &model.PoolStatsDocument{
		ID:                     poolID,
		PoolValue:              "100",
		StablecoinSupply:       "50",
		CollateralizationRatio: "200",
		MemberCount:            1,
	}))
	require.NoError(t, testDB.UpsertPoolStats(ctx, &model.PoolStatsDocument{
		ID:                     poolID,
		PoolValue:              "100",
		StablecoinSupply:       "100",
		CollateralizationRatio: "100",
		MemberCount:            1,
	}))

	stats, err := testDB.GetPoolStats(ctx, poolID)
	require.NoError(t, err)
	assert.Equal(t, "100", stats.CollateralizationRatio)
	assert.NotZero(t, stats.LastUpdated)
}

func TestRestResources(t *testing.T) {
	ctx := context.Background()

	user := testutil.RandomUser()
	require.NoError(t, testDB.SaveUser(ctx, user))
	assert.True(t, db.IsDuplicateKeyError(testDB.SaveUser(ctx, user)))

	card := testutil.RandomCard(user.WalletAddress)
	require.NoError(t, testDB.SaveCard(ctx, card))

	updated, err := testDB.UpdateCard(ctx, card.ID, &model.CardUpdate{Name: pkg.Ptr("Mewtwo")})
	require.NoError(t, err)
	assert.Equal(t, "Mewtwo", updated.Name)

	cards, err := testDB.GetCards(ctx, db.CardFilter{UserWallet: user.WalletAddress})
	require.NoError(t, err)
	require.Len(t, cards, 1)

	require.NoError(t, testDB.DeleteCard(ctx, card.ID))
	assert.True(t, db.IsNotFoundError(testDB.DeleteCard(ctx, card.ID)))

	tx := testutil.RandomTransaction(user.WalletAddress)
	require.NoError(t, testDB.SaveTransaction(ctx, tx))
	txs, err := testDB.GetTransactions(ctx, user.WalletAddress)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, tx.TransactionDate, txs[0].TransactionDate.UTC())

	_, err = testDB.UpdateTransaction(ctx, "missing", &model.TransactionUpdate{Amount: pkg.Ptr(1.0)})
	assert.True(t, db.IsNotFoundError(err))
}
