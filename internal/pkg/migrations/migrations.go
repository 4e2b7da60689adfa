package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"moveit/pkg/logger"
)

const dir = "sql"

//go:embed sql/*.sql
var embedded embed.FS

// Up накатывает встроенные миграции поверх пула pgx.
func Up(ctx context.Context, log logger.Logger, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close migrations connection", logger.NewField("error", err))
		}
	}()

	migrationsFS, err := fs.Sub(embedded, dir)
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrationsFS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, res := range results {
		log.With(
			logger.NewField("version", res.Source.Version),
			logger.NewField("path", res.Source.Path),
			logger.NewField("duration", res.Duration.String()),
		).Info("migration applied")
	}
	return nil
}
