package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a logger for the given service environment.
// "production" and "staging" log JSON at info level, "test" discards everything.
func New(environment string) (*zap.Logger, error) {
	var config zap.Config

	switch strings.ToLower(environment) {
	case "test":
		return zap.NewNop(), nil
	case "production", "staging":
		config = zap.NewProductionConfig()
	default:
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.EncoderConfig.CallerKey = "caller"
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	log, err := config.Build(zap.AddCaller())
	if err != nil {
		return nil, err
	}

	return log.With(zap.String("environment", strings.ToLower(environment))), nil
}
