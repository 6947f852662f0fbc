package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wrapsell/wrapsell-ledger/internal/config"
	"github.com/wrapsell/wrapsell-ledger/internal/db"
	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
	"github.com/wrapsell/wrapsell-ledger/internal/observability/metrics"
	"github.com/wrapsell/wrapsell-ledger/internal/services"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
	"github.com/wrapsell/wrapsell-ledger/tests/mocks"
)

const (
	owner = "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"
	user1 = "0x70997970c51812dc3a010c7d01b50e0d17dc79c8"
	user2 = "0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc"

	oneEther = "1000000000000000000"
)

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:               "127.0.0.1",
		Port:               5000,
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		IdleTimeout:        time.Second,
		AllowedOrigins:     []string{"http://localhost:3000"},
		RateLimitPerSecond: 1000,
		RateLimitBurst:     1000,
	}
}

func newTestHandler(t *testing.T, serverCfg *config.ServerConfig) http.Handler {
	metrics.Init(0)

	eventConsumer := mocks.NewEventConsumer(t)
	eventConsumer.On("PushLedgerEvent", mock.Anything, mock.Anything).Return(nil).Maybe()

	cfg := &config.Config{Poller: config.PollerConfig{StatsPollingInterval: time.Minute}}
	service := services.NewService(cfg, db.NewMemory(100), eventConsumer, nil)
	return New(serverCfg, service).Handler()
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code types.ErrorCode) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	assert.Equal(t, code.String(), decode[ErrorResponse](t, rec).ErrorCode)
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	rec := doRequest(t, h, http.MethodGet, "/example/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"System is running"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestTraceIDPropagated(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	req := httptest.NewRequest(http.MethodGet, "/example/health", nil)
	req.Header.Set(traceIDHeader, "trace-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "trace-123", rec.Header().Get(traceIDHeader))
}

func TestBodyErrors(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	rec := doRequest(t, h, http.MethodPost, "/v1/units", "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON body", decode[ErrorResponse](t, rec).Message)

	rec = doRequest(t, h, http.MethodPost, "/v1/units", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Request body is required", decode[ErrorResponse](t, rec).Message)
}

func TestLedgerRoutes(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	rec := doRequest(t, h, http.MethodPost, "/v1/units", CreateUnitRequest{
		ID: "charizard", Name: "WrapSell Charizard", Symbol: "wCHAR", CardID: 4, UnitPrice: oneEther,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, h, http.MethodPost, "/v1/units", CreateUnitRequest{ID: "charizard", UnitPrice: oneEther})
	requireError(t, rec, http.StatusConflict, types.Conflict)

	rec = doRequest(t, h, http.MethodPost, "/v1/units", CreateUnitRequest{ID: "cheap", UnitPrice: "1.5"})
	requireError(t, rec, http.StatusBadRequest, types.ValidationError)

	t.Run("deposits", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/v1/units/charizard/deposits", DepositRequest{
			Caller: user1, Count: 2, Payment: oneEther,
		})
		requireError(t, rec, http.StatusPaymentRequired, types.PaymentRequired)

		rec = doRequest(t, h, http.MethodPost, "/v1/units/charizard/deposits", DepositRequest{
			Caller: user1, Count: 2, Payment: "2000000000000000000",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "2000000000000000000", decode[DepositResponse](t, rec).Minted.String())

		rec = doRequest(t, h, http.MethodPost, "/v1/units/missing/deposits", DepositRequest{
			Caller: user1, Count: 1, Payment: oneEther,
		})
		requireError(t, rec, http.StatusNotFound, types.NotFound)

		rec = doRequest(t, h, http.MethodPost, "/v1/units/charizard/deposits", DepositRequest{
			Caller: "not-an-address", Count: 1, Payment: oneEther,
		})
		requireError(t, rec, http.StatusBadRequest, types.ValidationError)

		rec = doRequest(t, h, http.MethodGet, "/v1/units/charizard/collateral", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		info := decode[ledger.CollateralInfo](t, rec)
		assert.Equal(t, uint64(2), info.TotalUnits)
		assert.Equal(t, "2000000000000000000", info.TotalValue.String())
		assert.Equal(t, "2000000000000000000", info.TokensIssued.String())
	})

	t.Run("pools", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/v1/pools", CreatePoolRequest{
			ID: "pokemon", Owner: owner, Name: "Pokemon Pool", Symbol: "PKMN",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = doRequest(t, h, http.MethodGet, "/v1/pools/pokemon/collateralization-ratio", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decode[CollateralizationRatioResponse](t, rec).Infinite)

		rec = doRequest(t, h, http.MethodPost, "/v1/pools/pokemon/members", AddMemberRequest{
			Caller: user1, UnitID: "charizard",
		})
		requireError(t, rec, http.StatusForbidden, types.Forbidden)

		weight := "0.5"
		rec = doRequest(t, h, http.MethodPost, "/v1/pools/pokemon/members", AddMemberRequest{
			Caller: owner, UnitID: "charizard", Weight: &weight,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = doRequest(t, h, http.MethodPost, "/v1/pools/pokemon/members", AddMemberRequest{
			Caller: owner, UnitID: "charizard",
		})
		requireError(t, rec, http.StatusConflict, types.DuplicateMember)

		rec = doRequest(t, h, http.MethodGet, "/v1/pools/pokemon/collateral-value", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, oneEther, decode[CollateralValueResponse](t, rec).PoolValue.String())
	})

	t.Run("mint", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/v1/pools/pokemon/mint", MintRequest{
			Caller: owner, Amount: "1000000000000000001",
		})
		requireError(t, rec, http.StatusConflict, types.Undercollateralized)

		rec = doRequest(t, h, http.MethodPost, "/v1/pools/pokemon/mint", MintRequest{
			Caller: owner, Amount: "500000000000000000",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		info := decode[ledger.PoolInfo](t, rec)
		assert.Equal(t, "200", info.CollateralizationRatio.String())
		assert.Equal(t, 1, info.MemberCount)

		rec = doRequest(t, h, http.MethodGet, "/v1/pools/pokemon", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "500000000000000000", decode[ledger.PoolInfo](t, rec).StablecoinSupply.String())
	})

	t.Run("transfers", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/v1/pools/pokemon/transfers", TransferRequest{
			Caller: owner, To: user2, Amount: "100000000000000000",
		})
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

		rec = doRequest(t, h, http.MethodPost, "/v1/pools/pokemon/transfers", TransferRequest{
			Caller: user2, To: owner, Amount: oneEther,
		})
		requireError(t, rec, http.StatusBadRequest, types.ValidationError)

		rec = doRequest(t, h, http.MethodGet, "/v1/pools/pokemon/balances/"+user2, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "100000000000000000", decode[BalanceResponse](t, rec).Balance.String())

		rec = doRequest(t, h, http.MethodPost, "/v1/units/charizard/transfers", TransferRequest{
			Caller: user1, To: user2, Amount: oneEther,
		})
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

		rec = doRequest(t, h, http.MethodGet, "/v1/units/charizard/balances/0x"+strings.ToUpper(user1[2:]), nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, oneEther, decode[BalanceResponse](t, rec).Balance.String())
	})

	t.Run("events", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/v1/events?type=STABLECOIN_MINTED", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		page := decode[PaginatedResponse[*types.LedgerEvent]](t, rec)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "pokemon", page.Data[0].PoolID)
		assert.Empty(t, page.Pagination.NextKey)

		rec = doRequest(t, h, http.MethodGet, "/v1/events?type=BURNED", nil)
		requireError(t, rec, http.StatusBadRequest, types.ValidationError)

		rec = doRequest(t, h, http.MethodGet, "/v1/events?pagination_key=garbage", nil)
		requireError(t, rec, http.StatusBadRequest, types.BadRequest)
	})

	t.Run("listings", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/v1/units", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]services.UnitView](t, rec), 1)

		rec = doRequest(t, h, http.MethodGet, "/v1/pools", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		pools := decode[[]services.PoolView](t, rec)
		require.Len(t, pools, 1)
		assert.Equal(t, owner, pools[0].Owner)
		require.Len(t, pools[0].Members, 1)
		assert.Equal(t, "charizard", pools[0].Members[0].UnitID)
	})
}

func TestRecordRoutes(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	rec := doRequest(t, h, http.MethodPost, "/users", model.UserDocument{WalletAddress: user1, WalletType: "metamask"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, h, http.MethodPost, "/users", model.UserDocument{WalletAddress: user1, WalletType: "metamask"})
	requireError(t, rec, http.StatusConflict, types.Conflict)

	rec = doRequest(t, h, http.MethodGet, "/users/"+user1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "metamask", decode[model.UserDocument](t, rec).WalletType)

	rec = doRequest(t, h, http.MethodGet, "/users/"+user2, nil)
	requireError(t, rec, http.StatusNotFound, types.NotFound)

	rec = doRequest(t, h, http.MethodPost, "/cards", model.CardDocument{
		Name: "Charizard", CardID: "4", UserWallet: user1, InPool: true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	card := decode[model.CardDocument](t, rec)
	require.NotEmpty(t, card.ID)

	rec = doRequest(t, h, http.MethodPost, "/cards", model.CardDocument{CardID: "5"})
	requireError(t, rec, http.StatusBadRequest, types.ValidationError)

	rec = doRequest(t, h, http.MethodGet, "/cards/pool", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.CardDocument](t, rec), 1)

	rec = doRequest(t, h, http.MethodPut, "/cards/"+card.ID, map[string]any{"in_pool": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.False(t, decode[model.CardDocument](t, rec).InPool)

	rec = doRequest(t, h, http.MethodGet, "/cards/user/"+user1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.CardDocument](t, rec), 1)

	rec = doRequest(t, h, http.MethodDelete, "/cards/"+card.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, h, http.MethodDelete, "/cards/"+card.ID, nil)
	requireError(t, rec, http.StatusNotFound, types.NotFound)

	rec = doRequest(t, h, http.MethodPost, "/add_card", AddCardRequest{
		EditionName: "Pokemon Base Set", CardName: "Charizard", CardNumber: "4",
	})
	requireError(t, rec, http.StatusServiceUnavailable, types.ServiceUnavailable)

	rec = doRequest(t, h, http.MethodPost, "/transactions", model.TransactionDocument{
		UserWallet: user1, TransactionType: "purchase", Amount: 12.5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tx := decode[model.TransactionDocument](t, rec)

	rec = doRequest(t, h, http.MethodPost, "/transactions", model.TransactionDocument{TransactionType: "refund"})
	requireError(t, rec, http.StatusBadRequest, types.ValidationError)

	rec = doRequest(t, h, http.MethodPut, "/transactions/"+tx.ID, map[string]any{"commission": 0.25})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 0.25, decode[model.TransactionDocument](t, rec).Commission)

	rec = doRequest(t, h, http.MethodGet, "/transactions/user/"+user1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.TransactionDocument](t, rec), 1)

	rec = doRequest(t, h, http.MethodDelete, "/transactions/"+tx.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/transactions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]model.TransactionDocument](t, rec))
}

func TestRateLimit(t *testing.T) {
	cfg := testServerConfig()
	cfg.RateLimitPerSecond = 1
	cfg.RateLimitBurst = 1
	h := newTestHandler(t, cfg)

	rec := doRequest(t, h, http.MethodGet, "/example/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/example/health", nil)
	requireError(t, rec, http.StatusTooManyRequests, types.TooManyRequests)
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	assert.True(t, rl.allow("10.0.0.1", time.Now()))
	assert.False(t, rl.allow("10.0.0.1", time.Now()))

	rl.Cleanup(0)
	assert.Empty(t, rl.limiters)
	assert.True(t, rl.allow("10.0.0.1", time.Now()))
}

func TestCors(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	req := httptest.NewRequest(http.MethodOptions, "/v1/units", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/example/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
