//go:build e2e

package e2etest

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"github.com/wrapsell/wrapsell-ledger/e2etest/container"
	"github.com/wrapsell/wrapsell-ledger/internal/api"
	"github.com/wrapsell/wrapsell-ledger/internal/clients/ledgerclient"
	"github.com/wrapsell/wrapsell-ledger/internal/config"
	"github.com/wrapsell/wrapsell-ledger/internal/db"
	"github.com/wrapsell/wrapsell-ledger/internal/observability/metrics"
	"github.com/wrapsell/wrapsell-ledger/internal/queue"
	"github.com/wrapsell/wrapsell-ledger/internal/services"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
	"go.uber.org/zap"
)

var (
	eventuallyWaitTimeOut = 40 * time.Second
	eventuallyPollTime    = 500 * time.Millisecond
)

type TestManager struct {
	Config   *config.Config
	manager  *container.Manager
	DbClient db.DbInterface
	Queue    *queue.QueueManager
	// Events receives every ledger event published to the exchange
	Events <-chan amqp.Delivery
}

// Ledger is one running server instance backed by the manager's containers.
type Ledger struct {
	Service *services.Service
	Server  *httptest.Server
	Client  ledgerclient.LedgerInterface
}

// StartManager starts MongoDB and RabbitMQ containers and binds a test
// queue to the ledger exchange
func StartManager(t *testing.T) *TestManager {
	metrics.Init(0)

	manager, err := container.NewManager(t)
	require.NoError(t, err)

	dbCfg, err := manager.RunMongo(t)
	require.NoError(t, err)
	queueCfg, err := manager.RunRabbitMQ(t)
	require.NoError(t, err)

	cfg := DefaultLedgerConfig()
	cfg.Db = *dbCfg
	cfg.Queue = *queueCfg
	require.NoError(t, cfg.Validate())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbClient, closeDb, err := db.Open(ctx, cfg.Db)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = closeDb(context.Background())
	})

	queueManager, err := queue.NewQueueManager(&cfg.Queue, zap.NewNop())
	require.NoError(t, err)
	// Start declares the exchange the test queue binds to
	require.NoError(t, queueManager.Start())
	t.Cleanup(func() {
		_ = queueManager.Stop()
	})

	return &TestManager{
		Config:   cfg,
		manager:  manager,
		DbClient: db.NewDbWithMetrics(dbClient),
		Queue:    queueManager,
		Events:   bindEventQueue(t, &cfg.Queue),
	}
}

// StartLedger boots a server over the shared storage, loading whatever a
// previous instance persisted.
func (tm *TestManager) StartLedger(t *testing.T) *Ledger {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	service := services.NewService(tm.Config, tm.DbClient, tm.Queue, nil)
	require.NoError(t, service.Start(ctx))

	server := httptest.NewServer(api.New(&tm.Config.Server, service).Handler())
	t.Cleanup(server.Close)

	clientCfg := *tm.Config.LedgerClient
	clientCfg.BaseURL = server.URL

	return &Ledger{
		Service: service,
		Server:  server,
		Client:  ledgerclient.NewLedgerClientWithMetrics(ledgerclient.NewClient(&clientCfg)),
	}
}

func DefaultLedgerConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:               "127.0.0.1",
			Port:               5000,
			WriteTimeout:       5 * time.Second,
			ReadTimeout:        5 * time.Second,
			IdleTimeout:        10 * time.Second,
			RateLimitPerSecond: 1000,
			RateLimitBurst:     1000,
		},
		Poller: config.PollerConfig{
			StatsPollingInterval: time.Second,
		},
		Metrics: config.MetricsConfig{
			Host: "127.0.0.1",
			Port: 0,
		},
		LedgerClient: &config.LedgerClientConfig{
			BaseURL:       "http://127.0.0.1:5000",
			Timeout:       5 * time.Second,
			MaxRetryTimes: 3,
			RetryInterval: 100 * time.Millisecond,
		},
	}
}

// bindEventQueue declares an exclusive queue receiving every routing key of
// the ledger exchange.
func bindEventQueue(t *testing.T, cfg *config.QueueConfig) <-chan amqp.Delivery {
	conn, err := amqp.Dial(queue.AmqpURL(cfg))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	ch, err := conn.Channel()
	require.NoError(t, err)

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, "#", cfg.Exchange, false, nil))

	deliveries, err := ch.Consume(q.Name, "e2e", true, true, false, false, nil)
	require.NoError(t, err)

	return deliveries
}

// WaitForEvents collects published events until n have arrived.
func (tm *TestManager) WaitForEvents(t *testing.T, n int) []*types.LedgerEvent {
	events := make([]*types.LedgerEvent, 0, n)
	timeout := time.After(eventuallyWaitTimeOut)
	for len(events) < n {
		select {
		case d := <-tm.Events:
			var ev types.LedgerEvent
			require.NoError(t, json.Unmarshal(d.Body, &ev))
			require.Equal(t, ev.Type.String(), d.RoutingKey)
			events = append(events, &ev)
		case <-timeout:
			t.Fatalf("received %d of %d ledger events", len(events), n)
		}
	}
	return events
}
