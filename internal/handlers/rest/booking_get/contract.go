//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=booking_get_test
package booking_get

import (
	"context"

	"github.com/google/uuid"
	"moveit/internal/entities"
	"moveit/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	GetBooking(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.Booking, error)
}
