//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_post_test
package driver_post

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
	CreateDriver(ctx context.Context, actor entities.Actor, driverModify entities.DriverModify) (*entities.Driver, error)
}
