package ledger

import (
	"math/big"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrapsell/wrapsell-ledger/pkg/units"
)

func populatedState(t *testing.T) *State {
	t.Helper()

	state := NewState()
	charizard, err := state.CreateUnit(UnitParams{ID: "charizard", CardID: 1, CardName: "Charizard", UnitPrice: units.MustParseEther("0.1")})
	require.NoError(t, err)
	_, err = state.CreateUnit(UnitParams{ID: "pikachu", CardID: 2, CardName: "Pikachu", UnitPrice: units.MustParseEther("0.05")})
	require.NoError(t, err)
	pool, err := state.CreatePool(PoolParams{ID: "tcgs", Name: "TCG Stablecoin", Symbol: "TCGS", Owner: owner})
	require.NoError(t, err)

	_, err = charizard.DepositCards(user1, 3, units.MustParseEther("0.3"))
	require.NoError(t, err)
	require.NoError(t, pool.AddPool(owner, charizard))
	require.NoError(t, pool.Mint(owner, units.MustParseEther("0.2")))

	return state
}

func TestStateRegistry(t *testing.T) {
	state := populatedState(t)

	_, err := state.CreateUnit(UnitParams{ID: "charizard", UnitPrice: sdkmath.OneInt()})
	require.ErrorIs(t, err, ErrAlreadyExists)
	_, err = state.CreatePool(PoolParams{ID: "tcgs", Owner: owner})
	require.ErrorIs(t, err, ErrAlreadyExists)

	_, err = state.Unit("missing")
	require.ErrorIs(t, err, ErrUnitNotFound)
	_, err = state.Pool("missing")
	require.ErrorIs(t, err, ErrPoolNotFound)

	unitIDs := make([]string, 0)
	for _, u := range state.Units() {
		unitIDs = append(unitIDs, u.ID())
	}
	assert.Equal(t, []string{"charizard", "pikachu"}, unitIDs)
	require.Len(t, state.Pools(), 1)
}

func TestStateClone(t *testing.T) {
	state := populatedState(t)
	clone := state.Clone()

	// mutate the clone only
	unit, err := clone.Unit("charizard")
	require.NoError(t, err)
	_, err = unit.DepositCards(user2, 2, units.MustParseEther("0.2"))
	require.NoError(t, err)
	pool, err := clone.Pool("tcgs")
	require.NoError(t, err)
	require.NoError(t, pool.Mint(owner, units.MustParseEther("0.3")))

	// clone pool sees the clone unit
	assert.Equal(t, units.MustParseEther("0.5"), totalValue(t, pool))

	original, err := state.Pool("tcgs")
	require.NoError(t, err)
	assert.Equal(t, units.MustParseEther("0.3"), totalValue(t, original))
	assert.Equal(t, units.MustParseEther("0.2"), original.StablecoinSupply())
	originalUnit, err := state.Unit("charizard")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), originalUnit.TotalUnits())
	assert.True(t, originalUnit.BalanceOf(user2).IsZero())
}

func TestSnapshotRestore(t *testing.T) {
	state := populatedState(t)

	restored := NewState()
	for _, u := range state.Units() {
		require.NoError(t, restored.RestoreUnit(u.Snapshot()))
	}
	for _, p := range state.Pools() {
		require.NoError(t, restored.RestorePool(p.Snapshot()))
	}

	pool, err := restored.Pool("tcgs")
	require.NoError(t, err)
	original, err := state.Pool("tcgs")
	require.NoError(t, err)
	assert.Equal(t, poolInfo(t, original), poolInfo(t, pool))
	assert.Equal(t, original.Members(), pool.Members())
	assert.Equal(t, original.BalanceOf(owner), pool.BalanceOf(owner))

	t.Run("pool before units", func(t *testing.T) {
		err := NewState().RestorePool(original.Snapshot())
		require.ErrorIs(t, err, ErrUnitNotFound)
	})
	t.Run("tokens above collateral", func(t *testing.T) {
		unit, err := state.Unit("charizard")
		require.NoError(t, err)
		snap := unit.Snapshot()
		snap.TotalUnits = 1
		require.Error(t, NewState().RestoreUnit(snap))
	})
	t.Run("balances not matching supply", func(t *testing.T) {
		s := NewState()
		unit, err := state.Unit("charizard")
		require.NoError(t, err)
		require.NoError(t, s.RestoreUnit(unit.Snapshot()))

		snap := original.Snapshot()
		snap.Balances = map[Account]sdkmath.Int{}
		require.Error(t, s.RestorePool(snap))
	})
	t.Run("duplicate", func(t *testing.T) {
		unit, err := state.Unit("charizard")
		require.NoError(t, err)
		require.ErrorIs(t, restored.RestoreUnit(unit.Snapshot()), ErrAlreadyExists)
	})
}

func TestParseAccount(t *testing.T) {
	account, err := ParseAccount("0xF39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	require.NoError(t, err)
	assert.Equal(t, owner, account)

	_, err = ParseAccount("owner")
	require.ErrorIs(t, err, ErrInvalidAccount)
}

func TestStateDepositCards(t *testing.T) {
	state := NewState()
	half := sdkmath.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 255))
	for _, id := range []string{"alpha", "beta"} {
		_, err := state.CreateUnit(UnitParams{ID: id, UnitPrice: half})
		require.NoError(t, err)
	}
	pool, err := state.CreatePool(PoolParams{ID: "whale", Owner: owner})
	require.NoError(t, err)
	for _, unit := range state.Units() {
		require.NoError(t, pool.AddPool(owner, unit))
	}

	_, minted, err := state.DepositCards("alpha", user1, 1, half)
	require.NoError(t, err)
	assert.Equal(t, half, minted)

	t.Run("deposit overflowing a pool is rolled back", func(t *testing.T) {
		_, _, err := state.DepositCards("beta", user2, 1, half)
		require.ErrorIs(t, err, ErrAmountOverflow)

		beta, err := state.Unit("beta")
		require.NoError(t, err)
		assert.Zero(t, beta.TotalUnits())
		assert.True(t, beta.GetCollateralInfo().TokensIssued.IsZero())
		assert.True(t, beta.BalanceOf(user2).IsZero())
		assert.Equal(t, half, totalValue(t, pool))
	})
	t.Run("unknown unit", func(t *testing.T) {
		_, _, err := state.DepositCards("gamma", user1, 1, half)
		require.ErrorIs(t, err, ErrUnitNotFound)
	})
}

func TestRestoreRejectsOverflowingAmounts(t *testing.T) {
	half := sdkmath.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 255))

	err := NewState().RestoreUnit(UnitSnapshot{
		ID:           "alpha",
		UnitPrice:    half,
		TotalUnits:   2,
		TokensIssued: sdkmath.ZeroInt(),
	})
	require.ErrorIs(t, err, ErrAmountOverflow)

	err = NewState().RestoreUnit(UnitSnapshot{
		ID:           "alpha",
		UnitPrice:    half,
		TotalUnits:   1,
		TokensIssued: half,
		Balances:     map[Account]sdkmath.Int{user1: half, user2: half},
	})
	require.ErrorIs(t, err, ErrAmountOverflow)
}
