package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"moveit/internal/pkg/config"
	"moveit/pkg/logger"
	retrierconfig "moveit/pkg/retrier"
	"moveit/pkg/retrier/backoff_adapter"
)

const applicationName = "moveit"

// Коммит брони держит блокировку строки водителя, поэтому пул небольшой,
// но с запасом на открытые стримы доступности, которые читают брони.
const (
	maxConns          = 16
	minConns          = 4
	maxConnLifetime   = time.Hour
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = 30 * time.Second
)

const (
	initialInterval = 2 * time.Second
	maxInterval     = 15 * time.Second
	maxElapsedTime  = 2 * time.Minute
	randomization   = 0.5
	multiplier      = 2
)

func NewConnPool(ctx context.Context, log logger.Logger, cfg *config.Database) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolCfg.MaxConns = maxConns
	poolCfg.MinConns = minConns
	poolCfg.MaxConnLifetime = maxConnLifetime
	poolCfg.MaxConnIdleTime = maxConnIdleTime
	poolCfg.HealthCheckPeriod = healthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connection pool: %w", err)
	}

	dbLog := log.With(
		logger.NewField("component", "postgres"),
		logger.NewField("host", cfg.Host),
		logger.NewField("db", cfg.DBName),
	)

	if err := ping(ctx, dbLog, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database connection: %w", err)
	}

	return pool, nil
}

// DSN собирает URL подключения, пароль и имя пользователя экранируются.
func DSN(cfg *config.Database) string {
	query := url.Values{}
	query.Set("sslmode", cfg.SSLMode)
	query.Set("application_name", applicationName)

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.DBName,
		RawQuery: query.Encode(),
	}
	return u.String()
}

func ping(ctx context.Context, log logger.Logger, pool *pgxpool.Pool) error {
	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		Notify: func(err error, next time.Duration) {
			log.Warn("database is not ready, retrying",
				logger.NewField("error", err),
				logger.NewField("retry_in", next),
			)
		},
	})

	start := time.Now()
	err := retrier.ExecuteWithContext(ctx, pool.Ping)
	if err != nil {
		log.Error("database connection failed after retries",
			logger.NewField("error", err),
			logger.NewField("elapsed", time.Since(start)),
		)
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established",
		logger.NewField("elapsed", time.Since(start)),
	)
	return nil
}
