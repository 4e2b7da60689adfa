package app

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"moveit/internal/gateway/redis/bookingchanges"
	"moveit/internal/handlers/tasks/booking_expiry"
	"moveit/internal/pkg/config"
	"moveit/internal/pkg/schedule"
	bookingRepo "moveit/internal/repository/booking"
	driverRepo "moveit/internal/repository/driver"
	availabilityService "moveit/internal/service/availability"
	bookingService "moveit/internal/service/booking"
	driverService "moveit/internal/service/driver"
	"moveit/pkg/background"
	"moveit/pkg/logger"
	"moveit/pkg/querier"
	retrierconfig "moveit/pkg/retrier"
	"moveit/pkg/retrier/backoff_adapter"
	"moveit/pkg/tx"
)

const (
	txRetryInitialInterval = 10 * time.Millisecond
	txRetryMaxInterval     = 200 * time.Millisecond
	txRetryMaxElapsedTime  = 2 * time.Second
	txRetryMaxRetries      = 5
)

// provideTxManager - коммит брони идет в serializable транзакции, проигравшая
// в конфликте сериализации транзакция повторяется и видит уже занятый слот.
func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	retryConfig := retrierconfig.Config{
		InitialInterval: txRetryInitialInterval,
		MaxInterval:     txRetryMaxInterval,
		MaxElapsedTime:  txRetryMaxElapsedTime,
		Randomization:   0.5,
		Multiplier:      2,
		MaxRetries:      txRetryMaxRetries,
		ShouldRetry:     tx.IsRetryable,
	}

	return tx.New(pool, tx.WithRetrier(backoff_adapter.New(retryConfig)))
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideSchedule(cfg *config.Config) (*schedule.Schedule, error) {
	scheduleConfig := schedule.Default()
	scheduleConfig.Location = cfg.Schedule.Location

	if err := scheduleConfig.Validate(); err != nil {
		return nil, err
	}
	return schedule.New(scheduleConfig), nil
}

func provideBookingChanges(client *redis.Client, log logger.Logger) *bookingchanges.Gateway {
	return bookingchanges.New(client, log)
}

func provideDriverRepository(querier *querier.Querier) *driverRepo.Repository {
	return driverRepo.New(querier)
}

func provideBookingRepository(querier *querier.Querier) *bookingRepo.Repository {
	return bookingRepo.New(querier)
}

func provideServiceDriver(repository driverService.Repository) *driverService.Driver {
	return driverService.New(repository)
}

func provideServiceBooking(
	repository bookingService.Repository,
	txManager bookingService.TxManager,
	notifier bookingService.Notifier,
	sched *schedule.Schedule,
) *bookingService.Booking {
	return bookingService.New(repository, txManager, notifier, sched)
}

func provideServiceAvailability(
	repository availabilityService.Repository,
	drivers availabilityService.DriverService,
	subscriber availabilityService.Subscriber,
	sched *schedule.Schedule,
) *availabilityService.Availability {
	return availabilityService.New(repository, drivers, subscriber, sched)
}

func provideBookingExpiryTask(
	log logger.Logger,
	service booking_expiry.Service,
	cfg *config.Config,
) *booking_expiry.BookingExpiry {
	return booking_expiry.New(log, service, cfg.Tasks.BookingExpiryInterval, cfg.Tasks.BookingExpiryGrace)
}

func provideTaskList(
	bookingExpiryTask *booking_expiry.BookingExpiry,
) []background.Task {
	return []background.Task{
		bookingExpiryTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks...)
}
