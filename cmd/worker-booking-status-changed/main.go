package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"moveit/internal/app"
	statushandler "moveit/internal/handlers/kafka-consumer/booking_status_changed"
	"moveit/internal/handlers/rest/healthcheck_head"
	"moveit/internal/pkg/config"
	"moveit/internal/pkg/dotenv"
	"moveit/internal/pkg/kafka"
	"moveit/internal/pkg/postgres"
	"moveit/internal/pkg/redis"
	"moveit/pkg/logger"
	"moveit/pkg/logger/zap_adapter"
)

func main() {
	loadedEnv, err := dotenv.Load()
	if err != nil {
		stdlog.Fatalf("failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(cfg.Log.Level, logger.NewField("app", "moveit-status-worker"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting booking status worker", logger.NewField("env_files", loadedEnv))

	err = run(context.Background(), appLogger, cfg)
	if err != nil {
		mainLog.Error("application failed",
			logger.NewField("error", err),
		)
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, log logger.Logger, cfg *config.Config) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	// смена статуса публикуется подписчикам доступности так же, как из HTTP сервиса
	redisClient, err := redis.NewClient(ctx, log, &cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() {
		err := redisClient.Close()
		if err != nil {
			runLog.Error("failed to close redis client",
				logger.NewField("error", err),
			)
		}
	}()

	businessApp, err := app.InitializeStatusWorkerApp(log, pool, pgxv5.DefaultCtxGetter, redisClient, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Kafka.PortHealthcheck),
		Handler: initHealthcheckRouter(&isShuttingDown, pool.Ping),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	healthServerErr := make(chan error, 1)
	go func() {
		defer close(healthServerErr)

		runLog.With(
			logger.NewField("port", cfg.Kafka.PortHealthcheck),
		).Info("Server starting")
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			healthServerErr <- err
		}
	}()

	kafkaHandler := statushandler.New(log, businessApp.BookingService, cfg.Kafka.Handlers.BookingStatusChanged.ProcessTimeout)

	consumer, err := kafka.NewConsumer(ctx, log, &cfg.Kafka, kafkaHandler)
	if err != nil {
		return fmt.Errorf("kafka consumer: %w", err)
	}

	consumerErr := make(chan error, 1)
	go func() {
		defer close(consumerErr)

		runLog.With(
			logger.NewField("brokers", kafka.Brokers(cfg.Kafka.Brokers)),
			logger.NewField("topic", cfg.Kafka.Topic),
			logger.NewField("group", cfg.Kafka.ConsumerGroup),
		).Info("Kafka consumer starting")

		if err := consumer.Start(ongoingCtx); err != nil {
			if errors.Is(err, context.Canceled) {
				runLog.Info("Kafka consumer stopped gracefully")
			} else {
				consumerErr <- err
			}
		}
	}()

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-consumerErr:
		return fmt.Errorf("consumer: %w", err)
	case err := <-healthServerErr:
		return fmt.Errorf("healthcheck server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("Draining Kafka messages")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	err = healthServer.Shutdown(shutdownCtx)
	if err != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	stopOngoingGracefully()

	if err := consumer.Close(); err != nil {
		runLog.With(logger.NewField("error", err)).Error("Failed to close Kafka consumer")
	}

	runLog.Info("Worker stopped")
	return nil
}

func initHealthcheckRouter(isShuttingDown *atomic.Bool, checks ...healthcheck_head.Check) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, checks...))
	return mux
}
