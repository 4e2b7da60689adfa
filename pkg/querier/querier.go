package querier

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier выполняет запросы в транзакции из контекста, если она есть,
// иначе напрямую в пуле.
type Querier struct {
	pool   *pgxpool.Pool
	getter *pgxv5.CtxGetter
}

func New(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *Querier {
	return &Querier{
		pool:   pool,
		getter: getter,
	}
}

func (q *Querier) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	defer observe(opExec, time.Now())
	return q.get(ctx).Exec(ctx, sql, args...)
}

func (q *Querier) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	defer observe(opQuery, time.Now())
	return q.get(ctx).Query(ctx, sql, args...)
}

func (q *Querier) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	defer observe(opQueryRow, time.Now())
	return q.get(ctx).QueryRow(ctx, sql, args...)
}

func (q *Querier) get(ctx context.Context) pgxv5.Tr {
	return q.getter.DefaultTrOrDB(ctx, q.pool)
}
