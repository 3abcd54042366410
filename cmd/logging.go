package cmd

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// parseLogLevel maps a level name onto a zap level, defaulting to info for
// anything unrecognized.
func parseLogLevel(name string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "FATAL", "CRITICAL":
		return zapcore.FatalLevel
	case "PANIC":
		return zapcore.PanicLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "WARNING", "WARN":
		return zapcore.WarnLevel
	case "INFO":
		return zapcore.InfoLevel
	case "DEBUG":
		return zapcore.DebugLevel
	}

	return zapcore.InfoLevel
}
