package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// New builds a JSON logger. Development adds caller info, stack traces on warn and debug as the default level.
func New(env, level, service string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(env) {
	case EnvDevelopment, "local":
		cfg = zap.NewDevelopmentConfig()
	case EnvProduction, "":
		cfg = zap.NewProductionConfig()
		cfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("invalid log env %q", env)
	}
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	if strings.TrimSpace(level) != "" {
		var lvl zapcore.Level
		if err := lvl.Set(level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	if service != "" {
		l = l.With(zap.String("service", service))
	}
	return l, nil
}
