// Package logging builds the structured loggers used by the service
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/amirphl/Sahel-Estates/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logs owns the application logger and the optional access log writer
type Logs struct {
	Logger *slog.Logger
	// Access receives fiber access log lines; nil when access logging is disabled
	Access io.Writer

	closers []io.Closer
}

// New builds the application logger from configuration and makes it the slog default
func New(cfg config.LoggingConfig) *Logs {
	logs := &Logs{}

	var out io.Writer
	switch cfg.Output {
	case "file":
		out = logs.rotating(cfg, cfg.FilePath)
	case "both":
		out = io.MultiWriter(os.Stdout, logs.rotating(cfg, cfg.FilePath))
	default:
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	logs.Logger = slog.New(handler)
	slog.SetDefault(logs.Logger)

	if cfg.EnableAccessLog {
		if cfg.AccessLogPath != "" {
			logs.Access = logs.rotating(cfg, cfg.AccessLogPath)
		} else {
			logs.Access = os.Stdout
		}
	}

	return logs
}

func (l *Logs) rotating(cfg config.LoggingConfig, path string) io.Writer {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	l.closers = append(l.closers, w)
	return w
}

// Close flushes and closes rotating files
func (l *Logs) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ParseLevel maps a configured level name to a slog level, defaulting to info
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

// Discard returns a logger that drops everything, for tests and tools
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
