// Package applog provides a singleton structured logger for the runtime
// layer, built on Uber's zap.
package applog

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once     sync.Once
	instance *zap.SugaredLogger
)

// Get returns the process-wide SugaredLogger, building it on first use
// with production defaults and ISO8601 timestamps.
func Get() *zap.SugaredLogger {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		log, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		instance = log.Sugar()
	})
	return instance
}
