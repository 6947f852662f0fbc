package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/wrapsell/wrapsell-ledger/internal/config"
	"github.com/wrapsell/wrapsell-ledger/internal/queue"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
)

// Prints every ledger event published by a running server, optionally
// narrowed to one event type.
func main() {
	cfgPath := flag.String("config", "config/config-local.yml", "ledger config file")
	eventType := flag.String("type", "", "only show events of this type")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	routingKey := "#"
	if *eventType != "" {
		if !types.EventType(*eventType).IsValid() {
			log.Fatal().Str("type", *eventType).Msg("unknown event type")
		}
		routingKey = *eventType
	}

	cfg, err := config.New(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if !cfg.Queue.Enabled {
		log.Fatal().Msg("queue is disabled in config, the server publishes nothing")
	}

	conn, err := amqp.Dial(queue.AmqpURL(&cfg.Queue))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to queue")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open channel")
	}
	if err := ch.ExchangeDeclare(cfg.Queue.Exchange, "topic", true, false, false, false, nil); err != nil {
		log.Fatal().Err(err).Msg("failed to declare exchange")
	}
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to declare queue")
	}
	if err := ch.QueueBind(q.Name, routingKey, cfg.Queue.Exchange, false, nil); err != nil {
		log.Fatal().Err(err).Msg("failed to bind queue")
	}
	deliveries, err := ch.Consume(q.Name, "watch-ledger-events", true, true, false, false, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("exchange", cfg.Queue.Exchange).Str("routing_key", routingKey).Msg("watching ledger events")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			return
		case d, ok := <-deliveries:
			if !ok {
				log.Error().Msg("delivery channel closed")
				return
			}
			var ev types.LedgerEvent
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				log.Error().Err(err).Str("message_id", d.MessageId).Msg("undecodable event")
				continue
			}
			log.Info().
				Str("id", ev.ID).
				Str("type", ev.Type.String()).
				Str("unit", ev.UnitID).
				Str("pool", ev.PoolID).
				Str("account", ev.Account).
				Str("to", ev.To).
				Uint64("count", ev.Count).
				Str("amount", ev.Amount).
				Str("weight", ev.Weight).
				Msg("ledger event")
		}
	}
}
