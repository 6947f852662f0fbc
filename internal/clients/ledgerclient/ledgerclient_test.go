package ledgerclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wrapsell/wrapsell-ledger/internal/api"
	"github.com/wrapsell/wrapsell-ledger/internal/config"
	"github.com/wrapsell/wrapsell-ledger/internal/db"
	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
	"github.com/wrapsell/wrapsell-ledger/internal/observability/metrics"
	"github.com/wrapsell/wrapsell-ledger/internal/services"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
	"github.com/wrapsell/wrapsell-ledger/pkg/units"
	"github.com/wrapsell/wrapsell-ledger/tests/mocks"
)

const (
	owner = ledger.Account("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	user1 = ledger.Account("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	user2 = ledger.Account("0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc")
)

func testClientConfig(baseURL string) *config.LedgerClientConfig {
	return &config.LedgerClientConfig{
		BaseURL:       baseURL,
		Timeout:       5 * time.Second,
		MaxRetryTimes: 3,
		RetryInterval: 10 * time.Millisecond,
	}
}

func newLedgerServer(t *testing.T) *httptest.Server {
	metrics.Init(0)

	eventConsumer := mocks.NewEventConsumer(t)
	eventConsumer.On("PushLedgerEvent", mock.Anything, mock.Anything).Return(nil).Maybe()

	cfg := &config.Config{Poller: config.PollerConfig{StatsPollingInterval: time.Minute}}
	service := services.NewService(cfg, db.NewMemory(100), eventConsumer, nil)
	server := httptest.NewServer(api.New(&config.ServerConfig{
		Host:               "127.0.0.1",
		Port:               5000,
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		IdleTimeout:        time.Second,
		RateLimitPerSecond: 1000,
		RateLimitBurst:     1000,
	}, service).Handler())
	t.Cleanup(server.Close)
	return server
}

// TestTwoCardScenario replays the two card walkthrough: two units priced at
// 1 and 2 ETH, one pool counting both, minting up to the collateral value.
func TestTwoCardScenario(t *testing.T) {
	ctx := context.Background()
	server := newLedgerServer(t)
	c := NewLedgerClientWithMetrics(NewClient(testClientConfig(server.URL)))

	require.NoError(t, c.Health(ctx))

	_, err := c.CreateUnit(ctx, ledger.UnitParams{
		ID: "pikachu", Name: "WrapSell Pikachu", Symbol: "wPIKA", CardID: 25,
		UnitPrice: units.MustParseEther("1"),
	})
	require.NoError(t, err)
	_, err = c.CreateUnit(ctx, ledger.UnitParams{
		ID: "charizard", Name: "WrapSell Charizard", Symbol: "wCHAR", CardID: 4,
		UnitPrice: units.MustParseEther("2"),
	})
	require.NoError(t, err)

	minted, err := c.DepositCards(ctx, "pikachu", user1, 3, units.MustParseEther("3"))
	require.NoError(t, err)
	assert.True(t, minted.Equal(units.MustParseEther("3")))
	_, err = c.DepositCards(ctx, "charizard", user1, 1, units.MustParseEther("2"))
	require.NoError(t, err)

	_, err = c.DepositCards(ctx, "charizard", user1, 1, units.MustParseEther("1"))
	assert.ErrorIs(t, err, ledger.ErrInsufficientPayment)

	_, err = c.CreatePool(ctx, ledger.PoolParams{ID: "pokemon", Name: "Pokemon Pool", Owner: owner})
	require.NoError(t, err)
	require.NoError(t, c.AddPool(ctx, "pokemon", owner, "pikachu"))
	require.NoError(t, c.AddWrapSell(ctx, "pokemon", owner, "charizard", sdkmath.LegacyNewDecWithPrec(5, 1)))

	err = c.AddPool(ctx, "pokemon", owner, "pikachu")
	assert.ErrorIs(t, err, ledger.ErrDuplicateMember)
	err = c.AddPool(ctx, "pokemon", user1, "pikachu")
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)
	err = c.AddPool(ctx, "pokemon", owner, "mewtwo")
	assert.ErrorIs(t, err, ledger.ErrUnitNotFound)

	// 3 ETH + half of 2 ETH
	value, err := c.GetTotalCollateralValue(ctx, "pokemon")
	require.NoError(t, err)
	assert.True(t, value.Equal(units.MustParseEther("4")))

	ratio, err := c.GetCurrentCollateralizationRatio(ctx, "pokemon")
	require.NoError(t, err)
	assert.True(t, ledger.IsInfiniteRatio(ratio))

	err = c.Mint(ctx, "pokemon", owner, units.MustParseEther("5"))
	assert.ErrorIs(t, err, ledger.ErrUndercollateralized)
	require.NoError(t, c.Mint(ctx, "pokemon", owner, units.MustParseEther("2")))

	info, err := c.GetPoolInfo(ctx, "pokemon")
	require.NoError(t, err)
	assert.True(t, info.CollateralizationRatio.Equal(sdkmath.NewInt(200)))
	assert.Equal(t, 2, info.MemberCount)

	require.NoError(t, c.TransferStablecoins(ctx, "pokemon", owner, user2, units.MustParseEther("0.5")))
	balance, err := c.PoolBalanceOf(ctx, "pokemon", user2)
	require.NoError(t, err)
	assert.True(t, balance.Equal(units.MustParseEther("0.5")))

	require.NoError(t, c.TransferUnitTokens(ctx, "pikachu", user1, user2, units.MustParseEther("1")))
	balance, err = c.UnitBalanceOf(ctx, "pikachu", user1)
	require.NoError(t, err)
	assert.True(t, balance.Equal(units.MustParseEther("2")))

	err = c.TransferUnitTokens(ctx, "pikachu", user2, user1, units.MustParseEther("5"))
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	collateral, err := c.GetCollateralInfo(ctx, "charizard")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), collateral.TotalUnits)

	_, err = c.GetPoolInfo(ctx, "missing")
	assert.ErrorIs(t, err, ledger.ErrPoolNotFound)

	unitList, err := c.ListUnits(ctx)
	require.NoError(t, err)
	assert.Len(t, unitList, 2)
	pools, err := c.ListPools(ctx)
	require.NoError(t, err)
	require.Len(t, pools, 1)
	assert.Len(t, pools[0].Members, 2)

	events, next, err := c.GetEvents(ctx, model.LedgerEventFilter{PoolID: "pokemon"}, "")
	require.NoError(t, err)
	assert.Empty(t, next)
	// pool created, two members, one mint, one transfer
	require.Len(t, events, 5)
	counts := map[types.EventType]int{}
	for _, e := range events {
		counts[e.Type]++
	}
	assert.Equal(t, 2, counts[types.EventMemberAdded])
	assert.Equal(t, 1, counts[types.EventStablecoinMinted])
}

func TestRetriesServerErrors(t *testing.T) {
	metrics.Init(0)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pool_value":"5","stablecoin_supply":"1","collateralization_ratio":"500","member_count":1}`))
	}))
	defer server.Close()

	c := NewClient(testClientConfig(server.URL))
	info, err := c.GetPoolInfo(context.Background(), "pokemon")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.True(t, info.CollateralizationRatio.Equal(sdkmath.NewInt(500)))
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	metrics.Init(0)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errorCode":"FORBIDDEN","message":"caller is not the owner"}`))
	}))
	defer server.Close()

	c := NewClient(testClientConfig(server.URL))
	err := c.Mint(context.Background(), "pokemon", user1, sdkmath.NewInt(1))
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())

	var apiErr *types.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestGivesUpAfterMaxRetries(t *testing.T) {
	metrics.Init(0)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(testClientConfig(server.URL))
	_, err := c.ListPools(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}
