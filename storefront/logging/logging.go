// Package logging builds the zap logger shared by the storefront binaries and
// adapts it for the Temporal SDK.
package logging

import (
	"fmt"

	"go.temporal.io/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"moms-kitchen/storefront/config"
)

// New builds a logger from cfg. An empty cfg.File logs to stderr.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if cfg.File != "" {
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// temporalLogger satisfies the Temporal SDK logger with zap's key/value API.
type temporalLogger struct {
	s *zap.SugaredLogger
}

// NewTemporalLogger wraps l for client.Options.Logger and worker logging.
func NewTemporalLogger(l *zap.Logger) log.Logger {
	return &temporalLogger{s: l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (t *temporalLogger) Debug(msg string, keyvals ...interface{}) { t.s.Debugw(msg, keyvals...) }
func (t *temporalLogger) Info(msg string, keyvals ...interface{})  { t.s.Infow(msg, keyvals...) }
func (t *temporalLogger) Warn(msg string, keyvals ...interface{})  { t.s.Warnw(msg, keyvals...) }
func (t *temporalLogger) Error(msg string, keyvals ...interface{}) { t.s.Errorw(msg, keyvals...) }

// With implements log.WithLogger.
func (t *temporalLogger) With(keyvals ...interface{}) log.Logger {
	return &temporalLogger{s: t.s.With(keyvals...)}
}
