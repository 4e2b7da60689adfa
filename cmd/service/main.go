package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	application "moveit/internal/app"
	"moveit/internal/handlers/rest/booking_get"
	"moveit/internal/handlers/rest/booking_post"
	"moveit/internal/handlers/rest/booking_status_put"
	"moveit/internal/handlers/rest/bookings_get"
	"moveit/internal/handlers/rest/driver_get"
	"moveit/internal/handlers/rest/driver_post"
	"moveit/internal/handlers/rest/driver_put"
	"moveit/internal/handlers/rest/drivers_get"
	"moveit/internal/handlers/rest/healthcheck_head"
	"moveit/internal/handlers/rest/ping_get"
	"moveit/internal/handlers/rest/slots_get"
	"moveit/internal/handlers/rest/slots_stream_get"
	"moveit/internal/pkg/config"
	"moveit/internal/pkg/dotenv"
	"moveit/internal/pkg/grpcserver"
	metrics_system "moveit/internal/pkg/metrics"
	"moveit/internal/pkg/middlewares/auth"
	"moveit/internal/pkg/middlewares/graceful_shutdown"
	"moveit/internal/pkg/middlewares/metrics"
	"moveit/internal/pkg/middlewares/rate_limiter"
	"moveit/internal/pkg/middlewares/timeout"
	"moveit/internal/pkg/migrations"
	"moveit/internal/pkg/postgres"
	"moveit/internal/pkg/redis"
	"moveit/pkg/logger"
	"moveit/pkg/logger/zap_adapter"
	"moveit/pkg/token_bucket"
)

func main() {
	port := flag.String("port", "", "HTTP port, overrides PORT")
	flag.Parse()

	loadedEnv, err := dotenv.Load()
	if err != nil {
		stdlog.Fatalf("failed to load .env file: %v", err)
	}

	if *port != "" {
		if err := os.Setenv("PORT", *port); err != nil {
			stdlog.Fatalf("failed to apply -port flag: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(cfg.Log.Level, logger.NewField("app", "moveit"))
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

	mainLog.Info("starting moveit application", logger.NewField("env_files", loadedEnv))

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
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

	if cfg.Migrations.Auto {
		if err := migrations.Up(ctx, log, pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

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

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, redisClient, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ctx)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg, readinessChecks(pool, redisClient)),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	// основной http сервер

	// grpc health сервер
	healthServer := grpcserver.NewHealthServer(log)
	healthServerErr := make(chan error, 1)
	go func() {
		defer close(healthServerErr)
		runLog.Info("grpc health server starting",
			logger.NewField("port", cfg.GRPC.HealthPort),
		)
		if err := healthServer.ListenAndServe(cfg.GRPC.HealthPort); err != nil {
			healthServerErr <- err
		}
	}()
	healthServer.SetServing(true)
	// grpc health сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-healthServerErr:
		return fmt.Errorf("grpc health server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)
	healthServer.SetServing(false)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)

	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	// hijacked websocket соединения Shutdown не ждет, их закрывает отмена ongoingCtx
	stopOngoingGracefully()
	healthServer.Shutdown(shutdownCtx)
	businessApp.BackgroundWorkers.Wait()

	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

func readinessChecks(pool *pgxpool.Pool, redisClient *goredis.Client) []healthcheck_head.Check {
	return []healthcheck_head.Check{
		pool.Ping,
		func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	}
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	cfg *config.Config,
	checks []healthcheck_head.Check,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.Server.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(
		log,
		cfg.Server.RateLimiterQPS,
		token_bucket.New(cfg.Server.RateLimiterBurst, float64(cfg.Server.RateLimiterQPS)),
		cfg.Server.RateLimiterTrustForwarded,
	))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, checks...)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	router.Handle("/drivers", drivers_get.New(log, app.ServiceDriver)).Methods("GET")
	router.Handle("/drivers/{id}", driver_get.New(log, app.ServiceDriver)).Methods("GET")
	router.Handle("/drivers/{id}/slots", slots_get.New(log, app.ServiceAvailability)).Methods("GET")
	router.Handle("/drivers/{id}/slots/stream",
		slots_stream_get.New(log, app.ServiceAvailability, cfg.Server.CORSAllowedOrigins),
	).Methods("GET")

	protected := router.NewRoute().Subrouter()
	protected.Use(auth.Middleware(log, []byte(cfg.Auth.JWTSecret)))

	protected.Handle("/driver", driver_post.New(log, app.ServiceDriver)).Methods("POST")
	protected.Handle("/driver", driver_put.New(log, app.ServiceDriver)).Methods("PUT")

	protected.Handle("/bookings", booking_post.New(log, app.ServiceBooking)).Methods("POST")
	protected.Handle("/bookings", bookings_get.New(log, app.ServiceBooking)).Methods("GET")
	protected.Handle("/bookings/{id}", booking_get.New(log, app.ServiceBooking)).Methods("GET")
	protected.Handle("/bookings/{id}/status", booking_status_put.New(log, app.ServiceBooking)).Methods("PUT")

	return corsHandler(cfg.Server.CORSAllowedOrigins).Handler(router)
}

// corsHandler - пустой список origin разрешает любой источник.
func corsHandler(allowedOrigins []string) *cors.Cors {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         600,
	})
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
