//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=booking_expiry_test
package booking_expiry

import (
	"context"
	"time"

	"moveit/pkg/logger"
)

type taskLogger interface {
	Info(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	CancelExpiredPending(ctx context.Context, grace time.Duration) (int64, error)
}
