package tx

import (
	"context"
	"errors"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/mvcc-serialization-failure-handling.html
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type Option func(m *Manager)

// WithRetrier включает повтор транзакции целиком при конфликте сериализации.
// Ретраер должен повторять только ошибки, для которых IsRetryable == true.
func WithRetrier(r retrier) Option {
	return func(m *Manager) {
		m.retrier = r
	}
}

// Manager инкапсулирует логику управления транзакциями.
type Manager struct {
	internal *manager.Manager
	retrier  retrier
}

// New создаёт новый менеджер транзакций.
func New(db pgxv5.Transactional, opts ...Option) *Manager {
	m := &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в serializable-транзакции. fn может быть вызвана повторно,
// поэтому не должна иметь побочных эффектов вне базы.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.execWithIsoLevel(ctx, pgx.Serializable, fn)
}

// DoReadCommitted - для операций, которым достаточно блокировок строк.
func (m *Manager) DoReadCommitted(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.execWithIsoLevel(ctx, pgx.ReadCommitted, fn)
}

func (m *Manager) execWithIsoLevel(
	ctx context.Context,
	level pgx.TxIsoLevel,
	fn func(ctx context.Context) error,
) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: level}),
	)

	if m.retrier == nil {
		return m.internal.DoWithSettings(ctx, txSettings, fn)
	}

	return m.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return m.internal.DoWithSettings(ctx, txSettings, fn)
	})
}

// IsRetryable - транзакцию можно безопасно повторить с начала.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}
	return false
}
