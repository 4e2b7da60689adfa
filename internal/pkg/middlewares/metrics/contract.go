package metrics

import "moveit/pkg/logger"

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
