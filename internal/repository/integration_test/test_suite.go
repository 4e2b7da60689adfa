package integration_test

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"moveit/internal/pkg/config"
	"moveit/internal/pkg/migrations"
	"moveit/internal/pkg/postgres"
	"moveit/pkg/logger/zap_adapter"
	"moveit/pkg/querier"
)

var (
	poolInstance    *pgxpool.Pool
	querierInstance *querier.Querier
	querierOnce     sync.Once
)

func setup() {
	querierOnce.Do(func() {
		// godotenv.Load(.env.test) не вызываем, переменные приходят из окружения
		cfg := &config.Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		}

		ctx := context.Background()

		zapLogger, err := zap_adapter.NewZapAdapter("warn")
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer func() {
			if err := zapLogger.Sync(); err != nil {
				log.Printf("failed to sync logger: %v", err)
			}
		}()

		connPool, err := postgres.NewConnPool(ctx, zapLogger, cfg)
		if err != nil {
			panic(err)
		}

		if err := migrations.Up(ctx, zapLogger, connPool); err != nil {
			panic(err)
		}

		poolInstance = connPool
		querierInstance = querier.New(connPool, pgxv5.DefaultCtxGetter)
	})
}

func GetQuerier() *querier.Querier {
	setup()
	return querierInstance
}

// GetPool нужен тестам, которым требуется менеджер транзакций.
func GetPool() *pgxpool.Pool {
	setup()
	return poolInstance
}

func SetupDB(t *testing.T, setupSql string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if setupSql == "" {
		GetQuerier()
		return
	}

	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE bookings, drivers CASCADE;
	`)
	require.NoError(t, err)
}
