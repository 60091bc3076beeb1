// Package logging sets up the diagnostic log for malcolmweb.
//
// Silent failures (a failed optimize call, a dropped channel write) are
// reported here and nowhere else, so the log file is the only place to look
// when the UI stays quiet.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/diogo/malcolmweb/internal/config"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Init configures the package logger from the user configuration. The log is
// written to a rotating file under the config directory; verbose mode mirrors
// it to stderr as well.
func Init(cfg config.Config) error {
	file := cfg.Log.File
	if file == "" {
		dir, err := config.EnsureConfigDir()
		if err != nil {
			return err
		}
		file = filepath.Join(dir, "malcolmweb.log")
	}

	rotator := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}

	var sink io.Writer = rotator
	if cfg.Verbose {
		sink = io.MultiWriter(rotator, os.Stderr)
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)}
	logger = slog.New(slog.NewJSONHandler(sink, opts))
	return nil
}

// SetLogger replaces the package logger. Intended for tests.
func SetLogger(l *slog.Logger) {
	logger = l
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}
