package obslog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger = zap.NewNop()

// L returns the process-wide logger. It is a no-op until InitFromEnv runs,
// so library code may log unconditionally.
func L() *zap.Logger {
	return globalLogger
}

// InitFromEnv builds the global zap logger from LOG_LEVEL and LOG_FORMAT
// (console or json, console by default).
func InitFromEnv() error {
	level := parseLevel(getenvDefault("LOG_LEVEL", "info"))

	var enc zapcore.Encoder
	switch strings.ToLower(strings.TrimSpace(getenvDefault("LOG_FORMAT", "console"))) {
	case "json":
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	default:
		cfg := zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), level)
	globalLogger = zap.New(core)
	return nil
}

func Sync() {
	_ = globalLogger.Sync()
}

func parseLevel(v string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
