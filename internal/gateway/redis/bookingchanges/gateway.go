package bookingchanges

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"moveit/internal/entities"
	"moveit/pkg/logger"
	retrierconfig "moveit/pkg/retrier"
	"moveit/pkg/retrier/backoff_adapter"
)

const (
	serviceName    = "redis"
	channelPrefix  = "bookings"
	publishTimeout = 2 * time.Second
)

const (
	initialInterval = 50 * time.Millisecond
	maxInterval     = 500 * time.Millisecond
	maxElapsedTime  = time.Second
	randomization   = 0.5
	multiplier      = 2.0
	maxRetries      = 3
)

// Gateway публикует изменения броней в Redis pub/sub и подписывается на них.
// Канал на пару водитель+дата: bookings:{driverID}:{date}.
type Gateway struct {
	client  client
	retrier retrier
	log     gatewayLogger
}

func New(client client, log gatewayLogger) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		MaxRetries:      maxRetries,
		ShouldRetry:     isRetryable,
	}

	return &Gateway{
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
		log:     log,
	}
}

func ChannelName(driverID, date string) string {
	return fmt.Sprintf("%s:%s:%s", channelPrefix, driverID, date)
}

// BookingChanged публикует изменение. Бронь уже зафиксирована, поэтому
// ошибка публикации только логируется: подписчики догонят состояние
// при следующем изменении или переподключении.
func (g *Gateway) BookingChanged(ctx context.Context, change entities.BookingChange) {
	payload, err := json.Marshal(change)
	if err != nil {
		g.log.Warn("failed to encode booking change", logger.NewField("error", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	channel := ChannelName(change.DriverID, change.Date)
	err = g.executeWithMetrics(ctx, "Publish", func(ctx context.Context) error {
		return g.client.Publish(ctx, channel, payload).Err()
	})
	if err != nil {
		g.log.Warn("failed to publish booking change",
			logger.NewField("channel", channel),
			logger.NewField("booking_id", change.BookingID.String()),
			logger.NewField("error", err),
		)
		return
	}

	g.log.Debug("booking change published",
		logger.NewField("channel", channel),
		logger.NewField("status", change.Status.String()),
	)
}

// Subscribe возвращает канал уведомлений об изменениях броней водителя на
// дату. Подписка подтверждена к моменту возврата. Уведомления схлопываются:
// пока читатель занят, копится не больше одного. Канал закрывается и
// подписка освобождается при отмене ctx.
func (g *Gateway) Subscribe(ctx context.Context, driverID, date string) (<-chan struct{}, error) {
	channel := ChannelName(driverID, date)
	pubsub := g.client.Subscribe(ctx, channel)

	_, err := pubsub.Receive(ctx)
	if err != nil {
		closeErr := pubsub.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("subscribe %s: %w (failed to close: %v)", channel, err, closeErr)
		}
		return nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}

	ActiveSubscriptions.Inc()
	out := make(chan struct{}, 1)
	go func() {
		defer ActiveSubscriptions.Dec()
		defer close(out)
		defer func() {
			err := pubsub.Close()
			if err != nil {
				g.log.Warn("failed to close subscription",
					logger.NewField("channel", channel),
					logger.NewField("error", err),
				)
			}
		}()

		forward(ctx, pubsub.Channel(), out)
	}()

	return out, nil
}

// forward переносит сообщения из in в out без блокировки: если в out уже
// лежит уведомление, новое с ним сливается.
func forward(ctx context.Context, in <-chan *redis.Message, out chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-in:
			if !ok {
				return
			}
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (g *Gateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	result := "ok"
	if err != nil {
		result = "error"
	}
	GatewayRequestDuration.WithLabelValues(serviceName, method, result).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(serviceName, method, result).Inc()
	}

	return err
}
