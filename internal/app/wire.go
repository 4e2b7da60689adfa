//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"moveit/internal/gateway/redis/bookingchanges"
	"moveit/internal/handlers/kafka-consumer/booking_status_changed"
	"moveit/internal/handlers/tasks/booking_expiry"
	"moveit/internal/pkg/config"
	bookingRepo "moveit/internal/repository/booking"
	driverRepo "moveit/internal/repository/driver"
	availabilityService "moveit/internal/service/availability"
	bookingService "moveit/internal/service/booking"
	driverService "moveit/internal/service/driver"
	"moveit/pkg/logger"
	"moveit/pkg/tx"
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redisClient *redis.Client,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideSchedule,
		provideBookingChanges,

		provideDriverRepository,
		provideBookingRepository,

		provideServiceDriver,
		provideServiceBooking,
		provideServiceAvailability,

		provideBookingExpiryTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceDriver), new(*driverService.Driver)),
		wire.Bind(new(ServiceBooking), new(*bookingService.Booking)),
		wire.Bind(new(ServiceAvailability), new(*availabilityService.Availability)),

		wire.Bind(new(driverService.Repository), new(*driverRepo.Repository)),
		wire.Bind(new(bookingService.Repository), new(*bookingRepo.Repository)),
		wire.Bind(new(availabilityService.Repository), new(*bookingRepo.Repository)),
		wire.Bind(new(availabilityService.DriverService), new(*driverService.Driver)),

		wire.Bind(new(bookingService.TxManager), new(*tx.Manager)),
		wire.Bind(new(bookingService.Notifier), new(*bookingchanges.Gateway)),
		wire.Bind(new(availabilityService.Subscriber), new(*bookingchanges.Gateway)),

		wire.Bind(new(booking_expiry.Service), new(*bookingService.Booking)),
	)
	return &Application{}, nil
}

// InitializeStatusWorkerApp для Kafka воркера (cmd/worker-booking-status-changed)
func InitializeStatusWorkerApp(
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redisClient *redis.Client,
	cfg *config.Config,
) (*StatusWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideSchedule,
		provideBookingChanges,

		provideBookingRepository,
		provideServiceBooking,

		wire.Bind(new(bookingService.Repository), new(*bookingRepo.Repository)),
		wire.Bind(new(bookingService.TxManager), new(*tx.Manager)),
		wire.Bind(new(bookingService.Notifier), new(*bookingchanges.Gateway)),
		wire.Bind(new(booking_status_changed.Service), new(*bookingService.Booking)),

		wire.Struct(new(StatusWorkerApp), "*"),
	)
	return nil, nil
}
