package booking_expiry

import (
	"context"
	"time"

	"moveit/pkg/logger"
)

// BookingExpiry периодически отменяет pending-брони, окно которых
// закончилось больше grace назад. Отмена освобождает слоты и рассылает
// изменения подписчикам доступности.
type BookingExpiry struct {
	log      taskLogger
	service  Service
	interval time.Duration
	grace    time.Duration
}

func New(log taskLogger, service Service, interval, grace time.Duration) *BookingExpiry {
	return &BookingExpiry{
		log:      log,
		service:  service,
		interval: interval,
		grace:    grace,
	}
}

func (b *BookingExpiry) TTL() time.Duration {
	return b.interval
}

func (b *BookingExpiry) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, b.interval)
	defer cancel()

	cancelled, err := b.service.CancelExpiredPending(ctxWithTimeout, b.grace)

	if cancelled > 0 {
		b.log.With(
			logger.NewField("cancelled_bookings", cancelled),
			logger.NewField("grace", b.grace.String()),
		).Info("booking expiry")
	}

	return err
}

func (b *BookingExpiry) Info() string {
	return "booking expiry"
}
