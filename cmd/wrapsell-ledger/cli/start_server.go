package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wrapsell/wrapsell-ledger/consumer"
	"github.com/wrapsell/wrapsell-ledger/internal/api"
	"github.com/wrapsell/wrapsell-ledger/internal/clients/priceclient"
	"github.com/wrapsell/wrapsell-ledger/internal/db"
	"github.com/wrapsell/wrapsell-ledger/internal/observability/metrics"
	"github.com/wrapsell/wrapsell-ledger/internal/observability/tracing"
	"github.com/wrapsell/wrapsell-ledger/internal/queue"
	"github.com/wrapsell/wrapsell-ledger/internal/services"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the WrapSell ledger API server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// initialize metrics with the metrics port from config
	metrics.Init(cfg.Metrics.GetMetricsPort())

	dbClient, closeDb, err := db.Open(ctx, cfg.Db)
	if err != nil {
		log.Error().Err(err).Msg("error while creating db client")
		return err
	}
	defer func() {
		if err := closeDb(context.WithoutCancel(ctx)); err != nil {
			log.Error().Err(err).Msg("error while closing db client")
		}
	}()

	// Create a basic zap logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Error().Err(err).Msg("error while creating zap logger")
		return err
	}
	defer func() {
		// syncing stderr fails on some platforms, nothing to act on
		_ = zapLogger.Sync()
	}()

	var eventConsumer consumer.EventConsumer
	if cfg.Queue.Enabled {
		eventConsumer, err = queue.NewQueueManager(&cfg.Queue, zapLogger)
		if err != nil {
			log.Error().Err(err).Msg("failed to initialize event consumer")
			return err
		}
	} else {
		eventConsumer = queue.NewNoopQueueManager(zapLogger)
	}
	if err := eventConsumer.Start(); err != nil {
		log.Error().Err(err).Msg("failed to start event consumer")
		return err
	}
	defer func() {
		if err := eventConsumer.Stop(); err != nil {
			log.Error().Err(err).Msg("error while stopping event consumer")
		}
	}()

	var prices priceclient.PriceInterface
	if cfg.PriceClient != nil {
		prices = priceclient.NewPriceClientWithMetrics(priceclient.NewClient(cfg.PriceClient))
	}

	service := services.NewService(cfg, db.NewDbWithMetrics(dbClient), eventConsumer, prices)
	if err := service.Start(ctx); err != nil {
		log.Error().Err(err).Msg("error while starting service")
		return err
	}

	server := api.New(&cfg.Server, service)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
