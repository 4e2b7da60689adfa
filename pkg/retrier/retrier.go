package retrier

import (
	"context"
	"time"
)

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type ShouldRetryFunc func(error) bool

// NotifyFunc вызывается перед каждым повтором с ошибкой попытки и паузой до следующей.
type NotifyFunc func(err error, next time.Duration)

type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Randomization   float64
	Multiplier      float64

	// MaxRetries ограничивает число повторов, 0 - без ограничения (только MaxElapsedTime).
	MaxRetries uint64

	// Если nil - ретраятся все ошибки, если не nil - только те где функция вернула true
	ShouldRetry ShouldRetryFunc

	Notify NotifyFunc
}
