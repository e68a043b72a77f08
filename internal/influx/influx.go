package influx

import (
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/rs/zerolog"

	"github.com/globemeasure/measure/internal/config"
	"github.com/globemeasure/measure/internal/measure"
)

// PerformanceBucket receives one point per measurement recomputation.
const PerformanceBucket = "measure_performance"

// MeasurementName is the line protocol measurement for recomputations.
const MeasurementName = "recompute"

// DefaultBucketNames are the buckets ensured on connect.
var DefaultBucketNames = []string{PerformanceBucket}

// Manager handles InfluxDB connections and writes. When the server cannot
// be reached, points are appended to a gzip line protocol backup instead.
type Manager struct {
	Client       influxdb2.Client
	Writers      map[string]influxdb2_api.WriteAPI
	BackupWriter *gzip.Writer
	IsValid      bool
	BucketNames  []string
	Logger       zerolog.Logger
	BackupPath   string

	mu         sync.Mutex
	backupFile *os.File
	settings   config.InfluxConfig
}

// NewManager creates a new InfluxDB manager.
func NewManager(log zerolog.Logger, backupPath string) *Manager {
	return &Manager{
		Writers:     make(map[string]influxdb2_api.WriteAPI),
		IsValid:     false,
		BucketNames: DefaultBucketNames,
		Logger:      log,
		BackupPath:  backupPath,
	}
}

// Connect establishes a connection to InfluxDB, falling back to the backup
// file when the server does not answer a ping.
func (m *Manager) Connect(ctx context.Context, settings config.InfluxConfig) error {
	if !settings.Enabled {
		return errors.New("influx.enabled is false")
	}
	m.settings = settings

	m.Client = influxdb2.NewClientWithOptions(
		fmt.Sprintf("%s://%s:%s", settings.Protocol, settings.Host, settings.Port),
		settings.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000),
	)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	running, err := m.Client.Ping(pingCtx)
	cancel()

	if err != nil || !running {
		m.IsValid = false
		if m.BackupWriter == nil {
			m.Logger.Info().Str("backupPath", m.BackupPath).
				Msg("Failed to initialize InfluxDB client, writing to backup file")

			file, err := os.OpenFile(m.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				return fmt.Errorf("error creating backup file: %w", err)
			}
			m.backupFile = file
			m.BackupWriter = gzip.NewWriter(file)
		}
		m.Logger.Warn().Msg("InfluxDB client failed to initialize, using backup writer")
		return nil
	}

	m.IsValid = true
	if err := m.setupOrganizationAndBuckets(ctx); err != nil {
		return err
	}
	m.CreateWriters()
	m.Logger.Info().Msg("InfluxDB client initialized")
	return nil
}

func (m *Manager) setupOrganizationAndBuckets(ctx context.Context) error {
	orgName := m.settings.Org

	_, err := m.Client.OrganizationsAPI().FindOrganizationByName(ctx, orgName)
	if err != nil {
		m.Logger.Info().Str("org", orgName).Msg("Organization not found, creating")
		if _, err = m.Client.OrganizationsAPI().CreateOrganizationWithName(ctx, orgName); err != nil {
			m.Logger.Error().Err(err).Str("org", orgName).Msg("Error creating organization")
			return err
		}
	}

	influxOrg, err := m.Client.OrganizationsAPI().FindOrganizationByName(ctx, orgName)
	if err != nil {
		m.Logger.Error().Err(err).Str("org", orgName).Msg("Error getting organization")
		return err
	}

	// 30 day retention
	for _, bucket := range m.BucketNames {
		if _, err = m.Client.BucketsAPI().FindBucketByName(ctx, bucket); err == nil {
			continue
		}
		m.Logger.Info().Str("bucket", bucket).Msg("Bucket not found, creating")

		rule := domain.RetentionRuleTypeExpire
		_, err = m.Client.BucketsAPI().CreateBucketWithName(ctx, influxOrg, bucket, domain.RetentionRule{
			Type:         &rule,
			EverySeconds: 60 * 60 * 24 * 30,
		})
		if err != nil {
			m.Logger.Error().Err(err).Str("bucket", bucket).Msg("Error creating bucket")
			return err
		}
	}

	return nil
}

// CreateWriters creates write APIs for all configured buckets.
func (m *Manager) CreateWriters() {
	for _, bucket := range m.BucketNames {
		w := m.Client.WriteAPI(m.settings.Org, bucket)
		m.Writers[bucket] = w

		go func(bucketName string, errorsCh <-chan error) {
			for writeErr := range errorsCh {
				m.Logger.Error().Err(writeErr).Str("bucket", bucketName).
					Msg("Error sending data to InfluxDB")
			}
		}(bucket, w.Errors())
	}

	m.Logger.Debug().Int("buckets", len(m.BucketNames)).Msg("InfluxDB writers initialized")
}

// WritePoint writes a point to InfluxDB or the backup file.
func (m *Manager) WritePoint(bucket string, point *influxdb2_write.Point) error {
	if m.IsValid {
		w, ok := m.Writers[bucket]
		if !ok {
			return fmt.Errorf("influxDB bucket '%s' not registered", bucket)
		}
		w.WritePoint(point)
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BackupWriter == nil {
		return errors.New("influxDB client not initialized and backup writer not available")
	}

	lineProtocol := influxdb2_write.PointToLineProtocol(point, time.Nanosecond)
	if _, err := m.BackupWriter.Write([]byte(lineProtocol + "\n")); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
	}
	return nil
}

// Observe records a recomputation. It matches the measure recompute observer
// signature so it can be passed to measure.WithRecomputeObserver.
func (m *Manager) Observe(r measure.Recomputation) {
	if err := m.WritePoint(PerformanceBucket, RecomputationPoint(r, time.Now())); err != nil {
		m.Logger.Error().Err(err).Str("strategy", r.Strategy).Msg("Failed to record recomputation")
	}
}

// Close flushes pending writes and releases the client and backup file.
func (m *Manager) Close() error {
	var errs []error
	for _, w := range m.Writers {
		w.Flush()
	}
	if m.Client != nil {
		m.Client.Close()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BackupWriter != nil {
		if err := m.BackupWriter.Close(); err != nil {
			errs = append(errs, err)
		}
		m.BackupWriter = nil
	}
	if m.backupFile != nil {
		if err := m.backupFile.Close(); err != nil {
			errs = append(errs, err)
		}
		m.backupFile = nil
	}
	return errors.Join(errs...)
}

// RecomputationPoint converts a recomputation into a line protocol point.
func RecomputationPoint(r measure.Recomputation, at time.Time) *influxdb2_write.Point {
	return influxdb2.NewPoint(
		MeasurementName,
		map[string]string{
			"strategy": r.Strategy,
			"quantity": r.Result.Quantity.String(),
			"surface":  fmt.Sprintf("%t", r.Surface),
		},
		map[string]interface{}{
			"value":       r.Result.Value,
			"points":      r.Points,
			"duration_ms": float64(r.Duration.Microseconds()) / 1000,
			"samples":     r.Stats.Samples,
			"misses":      r.Stats.Misses,
			"elements":    r.Stats.Elements,
			"skipped":     r.Stats.Skipped,
			"cached":      r.Stats.Cached,
		},
		at,
	)
}

// ReadBackup returns the line protocol records stored in a gzip backup.
// Concatenated gzip members from repeated sessions are read in order.
func ReadBackup(r io.Reader) ([]string, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening backup: %w", err)
	}
	defer zr.Close()

	var lines []string
	sc := bufio.NewScanner(zr)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return lines, fmt.Errorf("reading backup: %w", err)
	}
	return lines, nil
}
