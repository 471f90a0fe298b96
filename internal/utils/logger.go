package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Zlog is the shared application logger. It defaults to a no-op logger so
// packages can log before InitLogger runs (and so tests stay quiet).
var Zlog = zap.NewNop()

func InitLogger(level, environment string) error {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Zlog = logger
	return nil
}
