//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=bookingchanges_test
package bookingchanges

import (
	"context"

	"github.com/redis/go-redis/v9"
	"moveit/pkg/logger"
)

type client interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type gatewayLogger interface {
	Warn(msg string, fields ...logger.Field)
	Debug(msg string, fields ...logger.Field)
}
