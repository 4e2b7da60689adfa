//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=booking_test
package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"moveit/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, bookingModify entities.BookingModify) (*entities.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	LockDriverSchedule(ctx context.Context, driverID string) error
	ListByDriverAndDate(ctx context.Context, driverID, date string) ([]entities.Booking, error)
	ListByDriver(ctx context.Context, driverID string) ([]entities.Booking, error)
	ListByClient(ctx context.Context, clientID string) ([]entities.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BookingStatus) (*entities.Booking, error)
	CancelPendingEndedBefore(ctx context.Context, before time.Time) ([]entities.Booking, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier доставляет изменения броней подписчикам доступности.
// Ошибки доставки обрабатывает сама реализация.
type Notifier interface {
	BookingChanged(ctx context.Context, change entities.BookingChange)
}
