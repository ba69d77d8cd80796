// Package logger holds the process wide structured logger.
//
// Call New once at startup and OnExit before the process ends. Packages
// log through Sugar, which is a no-op logger until New is called.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface the rest of the module depends on.
type Logger = *zap.SugaredLogger

var (
	// Sugar is the shared logger.
	Sugar Logger = zap.NewNop().Sugar()

	base *zap.Logger
)

// New replaces Sugar with a logger at the given level.
//
// Recognised levels are DEBUG, INFO, WARN and ERROR. NOOP disables logging
// entirely and TEST produces development output suitable for go test -v.
// Anything else falls back to INFO.
func New(level string) {
	var (
		l   *zap.Logger
		err error
	)

	switch strings.ToUpper(level) {
	case "NOOP":
		l = zap.NewNop()
	case "TEST":
		l, err = zap.NewDevelopment(zap.AddStacktrace(zapcore.PanicLevel))
	default:
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
		l, err = cfg.Build()
	}
	if err != nil {
		l = zap.NewNop()
	}

	base = l
	Sugar = l.Sugar()
}

// OnExit flushes any buffered log entries.
func OnExit() {
	if base != nil {
		_ = base.Sync()
	}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
