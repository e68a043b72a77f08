package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Sinks selects where log records go. Console is used only when no other
// sink is configured.
type Sinks struct {
	// LogFile is the path of a size-rotated log file. Empty disables it.
	LogFile string
	// GraylogAddress is a host:port GELF UDP endpoint. Empty disables it.
	GraylogAddress string
	// Console defaults to os.Stdout.
	Console io.Writer
	// Context adds dynamic attributes to every record.
	Context ContextProvider
}

// SlogManager manages slog-based logging over the configured sinks.
type SlogManager struct {
	logger  *slog.Logger
	closers []io.Closer
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func handlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}
}

// Setup initializes the logging system. A Graylog endpoint that cannot be
// reached is reported but does not disable the other sinks.
func (m *SlogManager) Setup(level string, sinks Sinks) error {
	opts := handlerOptions(parseLevel(level))

	var (
		handlers []slog.Handler
		errs     []error
	)

	if sinks.LogFile != "" {
		w := &lumberjack.Logger{
			Filename:   sinks.LogFile,
			MaxSize:    32, // MB
			MaxBackups: 3,
			Compress:   true,
		}
		m.closers = append(m.closers, w)
		handlers = append(handlers, slog.NewTextHandler(w, opts))
	}

	if sinks.GraylogAddress != "" {
		w, err := gelf.NewWriter(sinks.GraylogAddress)
		if err != nil {
			errs = append(errs, fmt.Errorf("connecting to graylog: %w", err))
		} else {
			m.closers = append(m.closers, w)
			handlers = append(handlers, slog.NewJSONHandler(w, opts))
		}
	}

	if len(handlers) == 0 {
		console := sinks.Console
		if console == nil {
			console = os.Stdout
		}
		handlers = append(handlers, slog.NewTextHandler(console, opts))
	}

	var h slog.Handler = NewMultiHandler(handlers...)
	if sinks.Context != nil {
		h = NewContextHandler(h, sinks.Context)
	}

	m.logger = slog.New(h)
	m.logger.Info("Logging initialized", "level", level, "sinks", len(handlers))
	return errors.Join(errs...)
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		// Return a default logger if Setup hasn't been called
		return slog.Default()
	}
	return m.logger
}

// Close releases the file and network sinks.
func (m *SlogManager) Close() error {
	var errs []error
	for _, c := range m.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	m.closers = nil
	return errors.Join(errs...)
}
