// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/diogo/agentchat/internal/config"
)

const defaultLogFile = "agentchat.log"

const (
	maxLogSizeMB  = 5
	maxLogBackups = 5
	maxLogAgeDays = 14
)

// Init configures slog to write structured logs to a rotating file. Extra
// writers (for example stderr when serving) receive the same records.
// The returned closer flushes and closes the log file.
func Init(cfg config.LogConfig, extra ...io.Writer) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(cfg.Level)
	handlerOptions := &slog.HandlerOptions{Level: level}

	logPath := strings.TrimSpace(cfg.File)
	if logPath == "" {
		logPath = DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
		logger := slog.New(newHandler(cfg.Format, io.MultiWriter(append([]io.Writer{io.Discard}, extra...)...), handlerOptions))
		slog.SetDefault(logger)
		return logger, nopCloser{}, err
	}

	writer := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}

	var out io.Writer = writer
	if len(extra) > 0 {
		out = io.MultiWriter(append([]io.Writer{writer}, extra...)...)
	}

	logger := slog.New(newHandler(cfg.Format, out, handlerOptions))
	slog.SetDefault(logger)
	return logger, writer, nil
}

// DefaultLogPath returns <config dir>/logs/agentchat.log
func DefaultLogPath() string {
	dir, err := config.GetConfigDir()
	if err != nil || strings.TrimSpace(dir) == "" {
		return filepath.Join(".agentchat", "logs", defaultLogFile)
	}
	return filepath.Join(dir, "logs", defaultLogFile)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		return slog.NewTextHandler(out, opts)
	default:
		return slog.NewJSONHandler(out, opts)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
