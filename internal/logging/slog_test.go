package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_NoSinks_WritesToConsole(t *testing.T) {
	var console bytes.Buffer
	m := NewSlogManager()

	require.NoError(t, m.Setup("info", Sinks{Console: &console}))
	m.Logger().Info("hello console")

	assert.Contains(t, console.String(), "Logging initialized")
	assert.Contains(t, console.String(), "hello console")
}

func TestSetup_FileOnly_NoConsole(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "measure.log")
	m := NewSlogManager()

	require.NoError(t, m.Setup("info", Sinks{LogFile: path, Console: &console}))
	m.Logger().Info("hello file")
	require.NoError(t, m.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
	assert.Empty(t, console.String(), "console is only used without other sinks")
}

func TestSetup_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	require.NoError(t, m.Setup("debug", Sinks{Console: &buf}))

	m.Logger().Debug("debug msg")
	m.Logger().Info("info msg")

	output := buf.String()
	assert.Contains(t, output, "debug msg")
	assert.Contains(t, output, "info msg")
}

func TestSetup_InfoLevel_FiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	require.NoError(t, m.Setup("info", Sinks{Console: &buf}))

	m.Logger().Debug("debug msg")

	assert.NotContains(t, buf.String(), "debug msg")
}

func TestSetup_TimestampsAreUTC(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	require.NoError(t, m.Setup("info", Sinks{Console: &buf}))

	m.Logger().Info("stamped")

	assert.Regexp(t, `time=\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z`, buf.String())
}

func TestSetup_GraylogFailureKeepsConsole(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()

	err := m.Setup("info", Sinks{GraylogAddress: "no-port", Console: &buf})
	m.Logger().Info("still logging")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "graylog")
	assert.Contains(t, buf.String(), "still logging")
}

func TestSetup_GraylogUDP(t *testing.T) {
	var console bytes.Buffer
	m := NewSlogManager()

	// UDP needs no listener to dial
	require.NoError(t, m.Setup("info", Sinks{GraylogAddress: "127.0.0.1:12201", Console: &console}))
	m.Logger().Info("to graylog")

	assert.Empty(t, console.String())
	assert.NoError(t, m.Close())
}

func TestSetup_ContextProvider(t *testing.T) {
	var buf bytes.Buffer
	state := "WORKING"
	m := NewSlogManager()
	require.NoError(t, m.Setup("info", Sinks{
		Console: &buf,
		Context: func() []slog.Attr { return []slog.Attr{slog.String("state", state)} },
	}))

	m.Logger().Info("first")
	state = "INIT"
	m.Logger().Info("second")

	out := buf.String()
	assert.Contains(t, out, "msg=first state=WORKING")
	assert.Contains(t, out, "msg=second state=INIT")
}

func TestSetup_ReplacesLogger(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	m := NewSlogManager()

	require.NoError(t, m.Setup("info", Sinks{Console: &buf1}))
	first := m.Logger()
	require.NoError(t, m.Setup("info", Sinks{Console: &buf2}))

	assert.NotSame(t, first, m.Logger())
	m.Logger().Info("second only")
	assert.NotContains(t, buf1.String(), "second only")
	assert.Contains(t, buf2.String(), "second only")
}

func TestLogger_DefaultBeforeSetup(t *testing.T) {
	m := NewSlogManager()
	assert.Equal(t, slog.Default(), m.Logger())
}

func TestClose_WithoutSinks(t *testing.T) {
	m := NewSlogManager()
	assert.NoError(t, m.Close())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestMultiHandler_FansOut(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	h2 := slog.NewTextHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelInfo})

	multi := NewMultiHandler(h1, h2)
	logger := slog.New(multi)
	logger.Info("fanned out")

	assert.Contains(t, buf1.String(), "fanned out")
	assert.Contains(t, buf2.String(), "fanned out")
}

func TestMultiHandler_FiltersNilHandlers(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, nil)

	multi := NewMultiHandler(nil, h, nil)
	require.Len(t, multi.handlers, 1)

	logger := slog.New(multi)
	logger.Info("works")
	assert.Contains(t, buf.String(), "works")
}

func TestMultiHandler_Enabled(t *testing.T) {
	infoHandler := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo})
	debugHandler := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})

	infoOnly := NewMultiHandler(infoHandler)
	assert.False(t, infoOnly.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, infoOnly.Enabled(context.Background(), slog.LevelInfo))

	both := NewMultiHandler(infoHandler, debugHandler)
	assert.True(t, both.Enabled(context.Background(), slog.LevelDebug))
}

func TestMultiHandler_Empty(t *testing.T) {
	multi := NewMultiHandler()
	assert.False(t, multi.Enabled(context.Background(), slog.LevelInfo))
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	multi := NewMultiHandler(h)

	logger := slog.New(multi.WithAttrs([]slog.Attr{slog.String("component", "surface")}))
	logger.Info("with attrs")

	assert.Contains(t, buf.String(), "component=surface")
}

func TestMultiHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	multi := NewMultiHandler(h)

	logger := slog.New(multi.WithGroup("grp"))
	logger.Info("grouped", "key", "val")

	assert.Contains(t, buf.String(), "grp.key=val")
}

func TestMultiHandler_WithGroupEmpty(t *testing.T) {
	multi := NewMultiHandler(slog.NewTextHandler(&bytes.Buffer{}, nil))

	assert.Equal(t, multi, multi.WithGroup(""), "empty group name should return same handler")
}

// errorHandler is a slog.Handler that always returns an error from Handle.
type errorHandler struct {
	slog.Handler
}

func (h *errorHandler) Handle(_ context.Context, _ slog.Record) error {
	return errors.New("handler error")
}

func (h *errorHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func TestMultiHandler_HandleError(t *testing.T) {
	var buf bytes.Buffer
	spy := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	multi := NewMultiHandler(&errorHandler{}, spy)

	err := multi.Handle(context.Background(), slog.NewRecord(timeZero, slog.LevelInfo, "should reach spy", 0))

	assert.EqualError(t, err, "handler error")
	assert.Contains(t, buf.String(), "should reach spy")
}
