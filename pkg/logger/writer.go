// pkg/logger/writer.go

package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap/zapcore"
)

// PlatformLogPaths returns candidate log paths in order of priority.
func PlatformLogPaths() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			filepath.Join(os.Getenv("HOME"), ".local", "state", "hostprep", "hostprep.log"),
			"/tmp/hostprep/hostprep.log",
		}
	case "linux":
		return []string{
			"/var/log/hostprep/hostprep.log", // best if writable (root or CI)
			filepath.Join(os.Getenv("HOME"), ".local", "state", "hostprep", "hostprep.log"),
			"/tmp/hostprep/hostprep.log",
		}
	default:
		return []string{"./hostprep.log"}
	}
}

// GetLogFileWriter tries to create a file writer at the specified path.
func GetLogFileWriter(path string) (zapcore.WriteSyncer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return zapcore.AddSync(os.Stdout), fmt.Errorf("log directory error: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return zapcore.AddSync(os.Stdout), fmt.Errorf("failed to open log file: %w", err)
	}

	return zapcore.AddSync(file), nil
}

// FindWritableLogPath returns the first usable log path for this platform.
func FindWritableLogPath() (string, error) {
	for _, path := range PlatformLogPaths() {
		if _, err := GetLogFileWriter(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no writable log path found")
}
