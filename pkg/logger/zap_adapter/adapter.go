package zap_adapter

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moveit/pkg/logger"
)

type ZapAdapter struct {
	logger *zap.Logger
}

// NewZapAdapter собирает JSON-логгер. Пустой level означает info.
func NewZapAdapter(level string, fields ...logger.Field) (*ZapAdapter, error) {
	config := zap.NewProductionConfig()

	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Encoding = "json"
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}

	zapLogger, err := config.Build(
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.Fields(convertFields(fields)...),
	)
	if err != nil {
		return nil, err
	}
	return &ZapAdapter{logger: zapLogger}, nil
}

func (z *ZapAdapter) Debug(msg string, fields ...logger.Field) {
	z.logger.Debug(msg, convertFields(fields)...)
}

func (z *ZapAdapter) Info(msg string, fields ...logger.Field) {
	z.logger.Info(msg, convertFields(fields)...)
}

func (z *ZapAdapter) Warn(msg string, fields ...logger.Field) {
	z.logger.Warn(msg, convertFields(fields)...)
}

func (z *ZapAdapter) Error(msg string, fields ...logger.Field) {
	z.logger.Error(msg, convertFields(fields)...)
}

func (z *ZapAdapter) With(fields ...logger.Field) logger.Logger {
	return &ZapAdapter{
		logger: z.logger.With(convertFields(fields)...),
	}
}

func (z *ZapAdapter) Sync() error {
	return z.logger.Sync()
}

func convertFields(fields []logger.Field) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			zapFields = append(zapFields, zap.NamedError(f.Key, err))
			continue
		}
		zapFields = append(zapFields, zap.Any(f.Key, f.Value))
	}
	return zapFields
}
