// pkg/logger/logger.go

package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// L returns the globally initialized logger, or nil if uninitialized.
func L() *zap.Logger {
	return log
}

// NewFallbackLogger builds a console-only logger for when no log file is writable.
func NewFallbackLogger() *zap.Logger {
	cfg := DefaultConsoleEncoderConfig()

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.AddSync(os.Stdout),
		ParseLogLevel(os.Getenv("LOG_LEVEL")),
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitializeWithFallback sets up the global logger: console output teed with a
// JSON log file when a writable path exists, console only otherwise.
func InitializeWithFallback() {
	path, err := FindWritableLogPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "No writable log path found. Logging to console only.")
		log = NewFallbackLogger()
		zap.ReplaceGlobals(log)
		return
	}

	cfg := DefaultConsoleEncoderConfig()
	jsonCfg := zap.NewProductionEncoderConfig()
	jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	writer, err := GetLogFileWriter(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Could not write to log file, falling back to stdout:", err)
		writer = zapcore.AddSync(os.Stdout)
	}

	level := ParseLogLevel(os.Getenv("LOG_LEVEL"))
	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stdout), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), writer, level),
	)

	log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	zap.ReplaceGlobals(log)
	log.Debug("Logger initialized", zap.String("log_path", path))
}

// Sync flushes buffered log entries. Safe to call on an uninitialized logger.
func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}

// DefaultConsoleEncoderConfig returns the human-readable console encoder settings.
func DefaultConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

// ParseLogLevel maps a LOG_LEVEL env value onto a zap level, defaulting to Info.
func ParseLogLevel(level string) zapcore.Level {
	switch level {
	case "TRACE", "DEBUG":
		return zapcore.DebugLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "FATAL":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
