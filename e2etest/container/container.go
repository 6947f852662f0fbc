package container

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wrapsell/wrapsell-ledger/internal/config"
	"github.com/wrapsell/wrapsell-ledger/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	mongoUsername = "user"
	mongoPassword = "password"
	mongoDbName   = "wrapsell-e2e"

	queueUser     = "user"
	queuePassword = "password"
)

// Manager is a wrapper around all Docker instances, and the Docker API.
// It provides utilities to run and interact with all Docker containers used within e2e testing.
type Manager struct {
	cfg       ImageConfig
	pool      *dockertest.Pool
	resources map[string]*dockertest.Resource
}

// NewManager creates a new Manager instance and initializes
// all Docker specific utilities. Returns an error if initialization fails.
func NewManager(t *testing.T) (*Manager, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, err
	}
	pool.MaxWait = 2 * time.Minute

	m := &Manager{
		cfg:       NewImageConfig(),
		pool:      pool,
		resources: make(map[string]*dockertest.Resource),
	}
	t.Cleanup(func() {
		m.ClearResources(t)
	})

	return m, nil
}

func (m *Manager) run(t *testing.T, name string, opts *dockertest.RunOptions) (*dockertest.Resource, error) {
	opts.Name = testutil.RandomContainerName("wrapsell-e2e-" + name)

	resource, err := m.pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, err
	}
	m.resources[name] = resource
	return resource, nil
}

// RunMongo starts a MongoDB container and waits until it accepts connections.
func (m *Manager) RunMongo(t *testing.T) (*config.DbConfig, error) {
	resource, err := m.run(t, "mongo", &dockertest.RunOptions{
		Repository: m.cfg.MongoRepository,
		Tag:        m.cfg.MongoVersion,
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=" + mongoUsername,
			"MONGO_INITDB_ROOT_PASSWORD=" + mongoPassword,
			"MONGO_INITDB_DATABASE=" + mongoDbName,
		},
	})
	if err != nil {
		return nil, err
	}

	cfg := &config.DbConfig{
		Driver:             config.DbDriverMongo,
		Username:           mongoUsername,
		Password:           mongoPassword,
		DbName:             mongoDbName,
		Address:            fmt.Sprintf("mongodb://localhost:%s/", resource.GetPort("27017/tcp")),
		MaxPaginationLimit: 100,
	}

	err = m.pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().
			ApplyURI(cfg.Address).
			SetAuth(options.Credential{Username: cfg.Username, Password: cfg.Password}))
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Disconnect(ctx)
		}()
		return client.Ping(ctx, readpref.Primary())
	})
	if err != nil {
		return nil, fmt.Errorf("mongo did not become ready: %w", err)
	}

	return cfg, nil
}

// RunRabbitMQ starts a RabbitMQ broker and waits until it accepts connections.
func (m *Manager) RunRabbitMQ(t *testing.T) (*config.QueueConfig, error) {
	resource, err := m.run(t, "rabbitmq", &dockertest.RunOptions{
		Repository: m.cfg.RabbitMQRepository,
		Tag:        m.cfg.RabbitMQVersion,
		Env: []string{
			"RABBITMQ_DEFAULT_USER=" + queueUser,
			"RABBITMQ_DEFAULT_PASS=" + queuePassword,
		},
	})
	if err != nil {
		return nil, err
	}

	cfg := &config.QueueConfig{
		Enabled:       true,
		QueueUser:     queueUser,
		QueuePassword: queuePassword,
		Url:           "localhost:" + resource.GetPort("5672/tcp"),
		Exchange:      "wrapsell.ledger.e2e",
		MaxRetryTimes: 3,
		RetryInterval: 100 * time.Millisecond,
	}

	err = m.pool.Retry(func() error {
		conn, err := amqp.Dial(fmt.Sprintf("amqp://%s:%s@%s/", queueUser, queuePassword, cfg.Url))
		if err != nil {
			return err
		}
		return conn.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("rabbitmq did not become ready: %w", err)
	}

	return cfg, nil
}

// ClearResources removes all outstanding Docker resources created by the Manager.
func (m *Manager) ClearResources(t *testing.T) {
	for name, resource := range m.resources {
		if err := m.pool.Purge(resource); err != nil {
			t.Logf("failed to purge %s container: %v", name, err)
		}
	}
}
