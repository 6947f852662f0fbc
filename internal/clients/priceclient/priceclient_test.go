package priceclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrapsell/wrapsell-ledger/internal/config"
	"github.com/wrapsell/wrapsell-ledger/internal/observability/metrics"
)

const charizardPage = `<html><body>
<h1 id="product_name">Charizard #4</h1>
<table id="price_data" class="info_box">
  <thead><tr><th>Ungraded</th><th>Grade 7</th><th>Grade 8</th></tr></thead>
  <tbody>
    <tr>
      <td id="used_price"><span class="price js-price">$1,250.00</span></td>
      <td id="complete_price"><span class="price js-price">$2,100.50</span></td>
      <td id="new_price"><span class="price js-price">-</span></td>
      <td id="graded_price"><span class="price js-price">$4,800.00</span></td>
      <td id="manual_only_price"><span class="price js-price">$310,000.00</span></td>
    </tr>
    <tr><td id="used_price"><span class="price">$1.00</span></td></tr>
  </tbody>
</table>
</body></html>`

func testConfig(baseURL string) *config.PriceClientConfig {
	return &config.PriceClientConfig{
		BaseURL:       baseURL,
		UserAgent:     "wrapsell-test",
		Timeout:       5 * time.Second,
		MaxRetryTimes: 3,
		RetryInterval: 10 * time.Millisecond,
	}
}

func TestCardQuery(t *testing.T) {
	q := CardQuery{Edition: "Pokemon Base Set", Name: "Charizard", Number: "4"}
	require.NoError(t, q.Validate())
	assert.Equal(t, "/game/pokemon-base-set/charizard-4", q.Path())

	q = CardQuery{Edition: "Pokemon  Ultra Prism ", Name: "Frost Rotom", Number: "41"}
	assert.Equal(t, "/game/pokemon-ultra-prism/frost-rotom-41", q.Path())

	for _, invalid := range []CardQuery{
		{Name: "Charizard", Number: "4"},
		{Edition: "Pokemon Base Set", Number: "4"},
		{Edition: "Pokemon Base Set", Name: "Charizard", Number: " "},
	} {
		assert.ErrorIs(t, invalid.Validate(), ErrInvalidQuery)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in    string
		price float64
		ok    bool
	}{
		{"$1,250.00", 1250, true},
		{" $3.99\n", 3.99, true},
		{"12", 12, true},
		{"-", 0, false},
		{"", 0, false},
		{"N/A", 0, false},
	}
	for _, tt := range tests {
		price, ok := parsePrice(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.InDelta(t, tt.price, price, 1e-9, tt.in)
	}
}

func TestGetCardPrice(t *testing.T) {
	metrics.Init(0)

	var userAgent atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("/game/pokemon-base-set/charizard-4", func(w http.ResponseWriter, r *http.Request) {
		userAgent.Store(r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(charizardPage))
	})
	mux.HandleFunc("/game/pokemon-base-set/search-page-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>Did you mean</p></body></html>`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c := NewPriceClientWithMetrics(NewClient(testConfig(server.URL + "/")))
	ctx := context.Background()

	t.Run("reads the first price row", func(t *testing.T) {
		price, err := c.GetCardPrice(ctx, CardQuery{Edition: "Pokemon Base Set", Name: "Charizard", Number: "4"})
		require.NoError(t, err)

		assert.Equal(t, server.URL+"/game/pokemon-base-set/charizard-4", price.URL)
		assert.Equal(t, map[Grade]float64{
			GradeUngraded: 1250,
			Grade7:        2100.5,
			Grade9:        4800,
			GradePSA10:    310000,
		}, price.Prices)
		ungraded, ok := price.Ungraded()
		assert.True(t, ok)
		assert.InDelta(t, 1250.0, ungraded, 1e-9)
		assert.Equal(t, "wrapsell-test", userAgent.Load())
	})
	t.Run("unknown card", func(t *testing.T) {
		_, err := c.GetCardPrice(ctx, CardQuery{Edition: "Pokemon Base Set", Name: "Missingno", Number: "0"})
		require.ErrorIs(t, err, ErrCardNotFound)
	})
	t.Run("page without price table", func(t *testing.T) {
		_, err := c.GetCardPrice(ctx, CardQuery{Edition: "Pokemon Base Set", Name: "Search Page", Number: "1"})
		require.ErrorIs(t, err, ErrCardNotFound)
	})
	t.Run("invalid query is not sent", func(t *testing.T) {
		_, err := c.GetCardPrice(ctx, CardQuery{Name: "Charizard"})
		require.ErrorIs(t, err, ErrInvalidQuery)
	})
}

func TestGetCardPriceRetries(t *testing.T) {
	metrics.Init(0)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(charizardPage))
	}))
	t.Cleanup(server.Close)

	c := NewClient(testConfig(server.URL))
	price, err := c.GetCardPrice(context.Background(), CardQuery{Edition: "Pokemon Base Set", Name: "Charizard", Number: "4"})
	require.NoError(t, err)
	assert.Contains(t, price.Prices, GradeUngraded)
	assert.Equal(t, int32(3), calls.Load())

	t.Run("gives up after max retries", func(t *testing.T) {
		var failures atomic.Int32
		down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			failures.Add(1)
			http.Error(w, strings.Repeat("x", 10), http.StatusBadGateway)
		}))
		t.Cleanup(down.Close)

		_, err := NewClient(testConfig(down.URL)).GetCardPrice(context.Background(),
			CardQuery{Edition: "Pokemon Base Set", Name: "Charizard", Number: "4"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCardNotFound)
		assert.Equal(t, int32(3), failures.Load())
	})
}
