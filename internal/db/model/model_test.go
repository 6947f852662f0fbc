package model_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
	"github.com/wrapsell/wrapsell-ledger/pkg"
)

const (
	owner = ledger.Account("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	user1 = ledger.Account("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
)

func TestPoolDocument(t *testing.T) {
	state := ledger.NewState()
	unit, err := state.CreateUnit(ledger.UnitParams{
		ID:        "charizard",
		CardID:    4,
		CardName:  "Charizard",
		Edition:   "Base Set",
		UnitPrice: sdkmath.NewInt(1_000_000_000_000_000_000),
	})
	require.NoError(t, err)
	_, err = unit.DepositCards(user1, 5, sdkmath.NewInt(5_000_000_000_000_000_000))
	require.NoError(t, err)

	pool, err := state.CreatePool(ledger.PoolParams{ID: "pokemon", Owner: owner})
	require.NoError(t, err)
	require.NoError(t, pool.AddWrapSell(owner, unit, sdkmath.LegacyNewDecWithPrec(5, 1)))
	require.NoError(t, pool.Mint(owner, sdkmath.NewInt(1_000)))

	t.Run("stores amounts as decimal strings", func(t *testing.T) {
		unitDoc := model.FromUnitSnapshot(unit.Snapshot())
		assert.Equal(t, "5000000000000000000", unitDoc.TokensIssued)
		assert.Equal(t, "5000000000000000000", unitDoc.Balances[user1.String()])

		poolDoc := model.FromPoolSnapshot(pool.Snapshot())
		assert.Equal(t, "1000", poolDoc.StablecoinSupply)
		require.Len(t, poolDoc.Members, 1)
		assert.Equal(t, "0.500000000000000000", poolDoc.Members[0].Weight)
	})

	t.Run("restores into a fresh state", func(t *testing.T) {
		unitSnap, err := model.FromUnitSnapshot(unit.Snapshot()).ToSnapshot()
		require.NoError(t, err)
		poolSnap, err := model.FromPoolSnapshot(pool.Snapshot()).ToSnapshot()
		require.NoError(t, err)

		restored := ledger.NewState()
		require.NoError(t, restored.RestoreUnit(unitSnap))
		require.NoError(t, restored.RestorePool(poolSnap))

		restoredPool, err := restored.Pool("pokemon")
		require.NoError(t, err)
		want, err := pool.GetPoolInfo()
		require.NoError(t, err)
		got, err := restoredPool.GetPoolInfo()
		require.NoError(t, err)
		assert.True(t, want.PoolValue.Equal(got.PoolValue))
		assert.True(t, want.StablecoinSupply.Equal(got.StablecoinSupply))
		assert.True(t, want.CollateralizationRatio.Equal(got.CollateralizationRatio))
		assert.Equal(t, want.MemberCount, got.MemberCount)
	})

	t.Run("rejects malformed amounts", func(t *testing.T) {
		doc := model.FromUnitSnapshot(unit.Snapshot())
		doc.UnitPrice = "1e18"
		_, err := doc.ToSnapshot()
		assert.Error(t, err)

		poolDoc := model.FromPoolSnapshot(pool.Snapshot())
		poolDoc.Members[0].Weight = "half"
		_, err = poolDoc.ToSnapshot()
		assert.Error(t, err)
	})
}

func TestEventPaginationToken(t *testing.T) {
	doc := &model.LedgerEventDocument{ID: "b", Sequence: 42, Timestamp: 100}
	token, err := model.BuildEventPaginationToken(doc)
	require.NoError(t, err)

	decoded, err := model.DecodeEventPaginationToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), decoded.Sequence)

	// ordering ignores timestamps and ids, events of one second keep commit order
	assert.True(t, decoded.After(&model.LedgerEventDocument{ID: "z", Sequence: 41, Timestamp: 100}))
	assert.True(t, decoded.After(&model.LedgerEventDocument{ID: "a", Sequence: 1, Timestamp: 200}))
	assert.False(t, decoded.After(&model.LedgerEventDocument{ID: "a", Sequence: 43, Timestamp: 100}))
	assert.False(t, decoded.After(doc))

	_, err = model.DecodeEventPaginationToken("not base64!")
	assert.Error(t, err)
}

func TestCardUpdate(t *testing.T) {
	card := &model.CardDocument{ID: "1", Name: "Pikachu", MarketValue: 10}
	update := &model.CardUpdate{InPool: pkg.Ptr(true), MarketValue: pkg.Ptr(12.5)}

	update.Apply(card)
	assert.True(t, card.InPool)
	assert.Equal(t, 12.5, card.MarketValue)
	assert.Equal(t, "Pikachu", card.Name)
	assert.Len(t, update.ToBson(), 2)
}
