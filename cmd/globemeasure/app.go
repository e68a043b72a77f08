package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/globemeasure/measure/internal/config"
	"github.com/globemeasure/measure/internal/influx"
	"github.com/globemeasure/measure/internal/logging"
	"github.com/globemeasure/measure/internal/measure"
	"github.com/globemeasure/measure/internal/scene"
	"github.com/globemeasure/measure/pkg/core"
)

// app holds the process-wide collaborators shared by all subcommands.
type app struct {
	configDir string

	out     io.Writer
	slog    *logging.SlogManager
	console *logging.ZerologAdapter
	logger  measure.Logger
	influx  *influx.Manager

	// set by replay so log records carry the active measurement
	active func() (name string, state string)
}

func (a *app) setup(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	if err := config.Load(a.configDir); err != nil {
		fmt.Fprintf(stderr, "warning: %v, using defaults\n", err)
	}

	level := viper.GetString("logLevel")
	a.console = logging.NewConsoleAdapter(stderr, level)

	sinks := logging.Sinks{Console: stderr, Context: a.logContext}
	if viper.GetBool("logToFile") {
		logsDir := viper.GetString("logsDir")
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			return fmt.Errorf("creating logs directory: %w", err)
		}
		sinks.LogFile = logging.LogFilePath(logsDir, "globemeasure", time.Now())
	}
	if viper.GetBool("graylog.enabled") {
		sinks.GraylogAddress = viper.GetString("graylog.address")
	}

	a.slog = logging.NewSlogManager()
	if err := a.slog.Setup(level, sinks); err != nil {
		a.console.Error("Logging setup incomplete", "error", err)
	}
	a.logger = a.slog.Logger()

	if viper.GetBool("influx.enabled") {
		logsDir := viper.GetString("logsDir")
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			return fmt.Errorf("creating logs directory: %w", err)
		}
		m := influx.NewManager(a.console.Logger(), filepath.Join(logsDir, "influx_backup.lp.gz"))
		if err := m.Connect(cmd.Context(), config.GetInfluxConfig()); err != nil {
			return fmt.Errorf("connecting to influx: %w", err)
		}
		a.influx = m
	}
	return nil
}

func (a *app) close() error {
	var errs []error
	if a.influx != nil {
		errs = append(errs, a.influx.Close())
	}
	if a.slog != nil {
		errs = append(errs, a.slog.Close())
	}
	return errors.Join(errs...)
}

func (a *app) logContext() []slog.Attr {
	if a.active == nil {
		return nil
	}
	name, state := a.active()
	if name == "" {
		return nil
	}
	return []slog.Attr{slog.String("measurement", name), slog.String("state", state)}
}

// measureOptions combines the configured options with the process logger
// and the metrics observer.
func (a *app) measureOptions() ([]measure.Option, error) {
	opts, err := config.MeasureOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, measure.WithLogger(a.logger))
	if a.influx != nil {
		opts = append(opts, measure.WithRecomputeObserver(a.influx.Observe))
	}
	return opts, nil
}

// newViewer builds a reference scene framing points over the configured
// terrain.
func (a *app) newViewer(points []core.GeodeticPoint) (*scene.Viewer, error) {
	tc := config.GetTerrainConfig()
	terrain, err := scene.NewTerrain(tc.Kind, tc.Height, tc.Amplitude, tc.Wavelength)
	if err != nil {
		return nil, err
	}
	vc := config.GetViewportConfig()
	cam := scene.FitCamera(points, vc.Width, vc.Height, terrain)
	a.logger.Debug("Scene ready",
		"terrain", tc.Kind,
		"metersPerPixel", cam.MetersPerPixel(),
		"points", len(points),
	)
	return scene.NewViewer(cam, a.logger), nil
}
