//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=availability_test
package availability

import (
	"context"

	"moveit/internal/entities"
)

type Repository interface {
	ListByDriverAndDate(ctx context.Context, driverID, date string) ([]entities.Booking, error)
}

type DriverService interface {
	GetDriver(ctx context.Context, id string) (*entities.Driver, error)
}

// Subscriber сообщает об изменениях броней водителя на дату.
// Канал закрывается при отмене ctx.
type Subscriber interface {
	Subscribe(ctx context.Context, driverID, date string) (<-chan struct{}, error)
}
