//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_get_test
package driver_get

import (
	"context"

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
	GetDriver(ctx context.Context, id string) (*entities.Driver, error)
}
