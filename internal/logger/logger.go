package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the engine-wide logger. Call Init before using it.
var Log *zap.Logger

// Init sets up the global logger. Safe to call more than once;
// later calls keep the existing logger.
func Init() {
	if Log != nil {
		return
	}

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	var err error
	Log, err = config.Build()
	if err != nil {
		// Fall back to a no-op logger rather than crashing the engine
		Log = zap.NewNop()
	}
}
