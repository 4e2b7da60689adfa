package auth

import "moveit/pkg/logger"

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
}
