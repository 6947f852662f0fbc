package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wrapsell/wrapsell-ledger/internal/config"
	"github.com/wrapsell/wrapsell-ledger/internal/observability/metrics"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
	"go.uber.org/zap"
)

const exchangeKind = "topic"

// QueueManager publishes ledger events to a RabbitMQ topic exchange, using
// the event type as routing key.
type QueueManager struct {
	cfg    *config.QueueConfig
	logger *zap.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewQueueManager(cfg *config.QueueConfig, logger *zap.Logger) (*QueueManager, error) {
	if cfg == nil {
		return nil, errors.New("nil queue config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueueManager{cfg: cfg, logger: logger}, nil
}

// Start connects and declares the exchange.
func (qm *QueueManager) Start() error {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	_, err := qm.channelLocked()
	return err
}

func (qm *QueueManager) PushLedgerEvent(ctx context.Context, ev *types.LedgerEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Type:         ev.Type.String(),
		Timestamp:    time.Unix(ev.Timestamp, 0),
		Body:         body,
	}

	err = retry.Do(
		func() error {
			return qm.publish(ctx, ev.Type.String(), msg)
		},
		retry.Context(ctx),
		retry.Attempts(qm.cfg.MaxRetryTimes),
		retry.Delay(qm.cfg.RetryInterval),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			qm.logger.Warn("failed to publish ledger event, retrying",
				zap.String("event_id", ev.ID),
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		metrics.RecordQueueSendError()
		qm.logger.Error("failed to publish ledger event",
			zap.String("event_id", ev.ID),
			zap.String("type", ev.Type.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (qm *QueueManager) publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	ch, err := qm.channelLocked()
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx, qm.cfg.Exchange, routingKey, false, false, msg)
}

// channelLocked returns an open channel, reconnecting when the broker dropped
// the previous one. qm.mu must be held.
func (qm *QueueManager) channelLocked() (*amqp.Channel, error) {
	if qm.ch != nil && !qm.ch.IsClosed() {
		return qm.ch, nil
	}

	if qm.conn == nil || qm.conn.IsClosed() {
		conn, err := amqp.Dial(AmqpURL(qm.cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to queue: %w", err)
		}
		qm.conn = conn
	}

	ch, err := qm.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open queue channel: %w", err)
	}
	if err := ch.ExchangeDeclare(qm.cfg.Exchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", qm.cfg.Exchange, err)
	}
	qm.ch = ch

	qm.logger.Info("connected to queue", zap.String("exchange", qm.cfg.Exchange))
	return ch, nil
}

// Stop gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Stop() error {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	qm.logger.Info("shutting down queue manager")

	var errs []error
	if qm.ch != nil && !qm.ch.IsClosed() {
		errs = append(errs, qm.ch.Close())
	}
	if qm.conn != nil && !qm.conn.IsClosed() {
		errs = append(errs, qm.conn.Close())
	}
	qm.ch, qm.conn = nil, nil

	return errors.Join(errs...)
}

// AmqpURL builds the broker url from the configured host and credentials.
func AmqpURL(cfg *config.QueueConfig) string {
	u := &url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(cfg.QueueUser, cfg.QueuePassword),
		Host:   cfg.Url,
	}
	return u.String()
}
