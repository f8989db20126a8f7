package logger

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global   = zap.NewNop()
	globalMu sync.RWMutex
)

// Init builds the process logger at the given level ("debug", "info",
// "warn", "error") and installs it as the global one.
func Init(level string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	Set(l)
	return l, nil
}

func ParseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

func Set(l *zap.Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = l
}

func L() *zap.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

func S() *zap.SugaredLogger {
	return L().Sugar()
}

// Named returns a sugared child logger, e.g. logger.Named("ws").
func Named(name string) *zap.SugaredLogger {
	return L().Named(name).Sugar()
}

func Sync() {
	_ = L().Sync()
}
