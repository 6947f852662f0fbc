package metrics

import (
	"fmt"
	"math"
	"math/big"
	"net/http"
	"strconv"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var weiPerEther = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

var (
	once                           sync.Once
	metricsRouter                  *chi.Mux
	ledgerClientLatency            *prometheus.HistogramVec
	priceClientLatency             *prometheus.HistogramVec
	queueSendErrorCounter          prometheus.Counter
	clientRequestDurationHistogram *prometheus.HistogramVec
	httpRequestDurationHistogram   *prometheus.HistogramVec
	pollerDurationHistogram        *prometheus.HistogramVec
	ledgerOperationDuration        *prometheus.HistogramVec
	ledgerOperationFailureCounter  *prometheus.CounterVec
	poolCollateralValueGauge       *prometheus.GaugeVec
	poolStablecoinSupplyGauge      *prometheus.GaugeVec
	poolCollateralizationGauge     *prometheus.GaugeVec
	poolMemberCountGauge           *prometheus.GaugeVec
	dbLatency                      *prometheus.HistogramVec
)

// Init initializes the metrics package. A zero port registers the metrics
// without starting the HTTP server.
func Init(metricsPort int) {
	once.Do(func() {
		if metricsPort != 0 {
			initMetricsRouter(metricsPort)
		}
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	// client requests are the ones sending to other service
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of incoming API request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "route", "status"},
	)

	ledgerClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_client_latency_seconds",
			Help:    "Histogram of ledger client call durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	priceClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "price_client_latency_seconds",
			Help:    "Histogram of card price lookup durations in seconds, retries included.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	ledgerOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Ledger operation duration in seconds, including persistence.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"operation", "status"},
	)

	ledgerOperationFailureCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_operation_failure_count",
			Help: "Number of rejected ledger operations split by reason",
		},
		[]string{"operation", "reason"},
	)

	poolCollateralValueGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pool_collateral_value_ether",
			Help: "Weighted collateral value of a pool in ether",
		},
		[]string{"pool"},
	)

	poolStablecoinSupplyGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pool_stablecoin_supply_ether",
			Help: "Minted stablecoin supply of a pool in ether",
		},
		[]string{"pool"},
	)

	poolCollateralizationGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pool_collateralization_ratio_percent",
			Help: "Collateralization ratio of a pool in percent, +Inf while nothing is minted",
		},
		[]string{"pool"},
	)

	poolMemberCountGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pool_member_count",
			Help: "Number of collateral units registered in a pool",
		},
		[]string{"pool"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	prometheus.MustRegister(
		ledgerClientLatency,
		priceClientLatency,
		queueSendErrorCounter,
		clientRequestDurationHistogram,
		httpRequestDurationHistogram,
		pollerDurationHistogram,
		ledgerOperationDuration,
		ledgerOperationFailureCounter,
		poolCollateralValueGauge,
		poolStablecoinSupplyGauge,
		poolCollateralizationGauge,
		poolMemberCountGauge,
		dbLatency,
	)
}

func RecordLedgerClientLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	ledgerClientLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordPriceClientLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	priceClientLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	dbLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordLedgerOperation(d time.Duration, operation string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	ledgerOperationDuration.WithLabelValues(operation, status.String()).Observe(d.Seconds())
}

func IncLedgerOperationFailure(operation, reason string) {
	ledgerOperationFailureCounter.WithLabelValues(operation, reason).Inc()
}

func RecordHttpRequestDuration(d time.Duration, method, route string, statusCode int) {
	httpRequestDurationHistogram.WithLabelValues(method, route, strconv.Itoa(statusCode)).Observe(d.Seconds())
}

// RecordPoolStats exports the pool read model. infiniteRatio marks a pool with zero supply.
func RecordPoolStats(poolID string, value, supply, ratio sdkmath.Int, infiniteRatio bool, members int) {
	poolCollateralValueGauge.WithLabelValues(poolID).Set(weiToEther(value))
	poolStablecoinSupplyGauge.WithLabelValues(poolID).Set(weiToEther(supply))
	if infiniteRatio {
		poolCollateralizationGauge.WithLabelValues(poolID).Set(math.Inf(1))
	} else {
		ratioF, _ := new(big.Float).SetInt(ratio.BigInt()).Float64()
		poolCollateralizationGauge.WithLabelValues(poolID).Set(ratioF)
	}
	poolMemberCountGauge.WithLabelValues(poolID).Set(float64(members))
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}

func weiToEther(wei sdkmath.Int) float64 {
	if wei.IsNil() {
		return 0
	}
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(wei.BigInt()), weiPerEther).Float64()
	return f
}
