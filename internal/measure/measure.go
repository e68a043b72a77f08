// Package measure implements the measurement lifecycle shared by every
// measurement kind. A Measure drives the drawing tool, recomputes its
// result from scratch on every point change and keeps its labels in sync.
//
// All methods run on the caller's goroutine and the drawing tool is expected
// to deliver its callbacks synchronously on the same goroutine. A Measure is
// not safe for concurrent use.
package measure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/globemeasure/measure/internal/geo"
	"github.com/globemeasure/measure/internal/surface"
	"github.com/globemeasure/measure/pkg/core"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	// ErrMissingViewer is returned when a measurement is built without a
	// rendering context.
	ErrMissingViewer = errors.New("measure: viewer is required")
	// ErrMissingCollaborator is returned when the viewer lacks a scene or
	// drawing tool.
	ErrMissingCollaborator = errors.New("measure: missing collaborator")
)

// State is the lifecycle state of a Measure.
type State int

const (
	StateInit State = iota
	StateWorking
	StateDestroy
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateWorking:
		return "WORKING"
	case StateDestroy:
		return "DESTROY"
	default:
		return "UNKNOWN"
	}
}

// StartOption adjusts a single drawing session.
type StartOption func(*DrawConfig)

// DynamicStyle overrides the preview style for one session.
func DynamicStyle(s core.ShapeStyle) StartOption {
	return func(c *DrawConfig) { c.DynamicStyle = s }
}

// FinalStyle overrides the finished shape style for one session.
func FinalStyle(s core.ShapeStyle) StartOption {
	return func(c *DrawConfig) { c.FinalStyle = s }
}

// Measure is the lifecycle state machine of one measurement tool.
type Measure struct {
	cfg      Config
	strategy Strategy
	scene    Scene
	drawer   Drawer
	labels   LabelCollection
	tooltip  Tooltip
	logger   Logger

	state   State
	session uint64
	points  core.PointSequence
	result  core.MeasurementResult
	handles []LabelHandle

	recomputed metric.Int64Counter
	missed     metric.Int64Counter
	attrs      metric.MeasurementOption
}

// New attaches a measurement with the given strategy to viewer.
func New(viewer Viewer, strategy Strategy, cfg Config) (*Measure, error) {
	if viewer == nil {
		return nil, ErrMissingViewer
	}
	if strategy == nil {
		return nil, fmt.Errorf("%w: strategy", ErrMissingCollaborator)
	}
	scene := viewer.Scene()
	if scene == nil {
		return nil, fmt.Errorf("%w: scene", ErrMissingCollaborator)
	}
	drawer := viewer.Drawer()
	if drawer == nil {
		return nil, fmt.Errorf("%w: drawer", ErrMissingCollaborator)
	}
	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}
	if cfg.FormatLength == nil {
		cfg.FormatLength = FormatLength
	}
	if cfg.FormatArea == nil {
		cfg.FormatArea = FormatArea
	}

	m := &Measure{
		cfg:      cfg,
		strategy: strategy,
		scene:    scene,
		drawer:   drawer,
		logger:   cfg.Logger,
		attrs:    metric.WithAttributes(attribute.String("strategy", strategy.Name())),
	}

	mt := meter()
	var err error
	m.recomputed, err = mt.Int64Counter(
		"measure.recomputed",
		metric.WithDescription("Total measurement recomputations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating recomputed counter: %w", err)
	}
	m.missed, err = mt.Int64Counter(
		"measure.samples.missed",
		metric.WithDescription("Terrain picks or projections that found nothing"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating missed counter: %w", err)
	}

	m.labels = scene.AddLabelCollection()
	if m.labels == nil {
		return nil, fmt.Errorf("%w: label collection", ErrMissingCollaborator)
	}
	if cfg.TooltipEnabled {
		if tp, ok := viewer.(TooltipProvider); ok {
			m.tooltip = tp.NewTooltip()
		}
	}
	return m, nil
}

// State returns the current lifecycle state.
func (m *Measure) State() State {
	return m.state
}

// Destroyed reports whether Destroy has been called.
func (m *Measure) Destroyed() bool {
	return m.state == StateDestroy
}

// Result returns the last computed result.
func (m *Measure) Result() core.MeasurementResult {
	return m.result
}

// Points returns a copy of the current point sequence.
func (m *Measure) Points() core.PointSequence {
	return m.points.Clone()
}

// Strategy returns the measurement strategy.
func (m *Measure) Strategy() Strategy {
	return m.strategy
}

// Start begins a new drawing session. It is ignored unless the measurement
// is idle.
func (m *Measure) Start(opts ...StartOption) {
	if m.state != StateInit {
		m.logger.Debug("start ignored", "strategy", m.strategy.Name(), "state", m.state.String())
		return
	}

	m.session++
	session := m.session
	m.state = StateWorking
	m.points = nil
	m.result = core.MeasurementResult{Quantity: m.strategy.Quantity()}

	dc := DrawConfig{
		Shape:        m.strategy.Shape(),
		DynamicStyle: m.cfg.DynamicStyle,
		FinalStyle:   m.cfg.FinalStyle,
		OnPointsChange: func(points core.PointSequence) {
			m.onPointsChange(session, points)
		},
		OnEnd: func(points core.PointSequence) {
			m.onDrawEnd(session, points)
		},
	}
	for _, opt := range opts {
		opt(&dc)
	}

	if m.tooltip != nil {
		m.tooltip.Show(m.cfg.Locale.DrawHint)
	}
	m.logger.Debug("measurement started", "strategy", m.strategy.Name(), "shape", string(dc.Shape))
	m.drawer.Start(dc)
}

// End clears the current measurement and returns to idle. It is idempotent
// and does nothing once the measurement is destroyed.
func (m *Measure) End() {
	if m.state == StateDestroy {
		return
	}
	// stale callbacks from the finished session are dropped
	m.session++
	m.drawer.Reset()
	m.labels.RemoveAll()
	m.handles = nil
	m.points = nil
	m.result = core.MeasurementResult{Quantity: m.strategy.Quantity()}
	if m.tooltip != nil {
		m.tooltip.Hide()
	}
	if m.state != StateInit {
		m.logger.Debug("measurement ended", "strategy", m.strategy.Name())
	}
	m.state = StateInit
}

// Destroy ends the measurement and releases the tooltip and the label
// collection. It is terminal: every later call is a no-op.
func (m *Measure) Destroy() {
	if m.state == StateDestroy {
		return
	}
	m.End()
	if m.tooltip != nil {
		m.tooltip.Destroy()
		m.tooltip = nil
	}
	m.scene.RemoveLabelCollection(m.labels)
	m.state = StateDestroy
	m.logger.Debug("measurement destroyed", "strategy", m.strategy.Name())
}

func (m *Measure) onPointsChange(session uint64, points core.PointSequence) {
	if m.state != StateWorking || session != m.session {
		return
	}
	m.points = points.Clone()
	m.recompute()
}

func (m *Measure) onDrawEnd(session uint64, points core.PointSequence) {
	if m.state != StateWorking || session != m.session {
		return
	}
	if points != nil {
		m.points = points.Clone()
	}
	m.recompute()
	if m.tooltip != nil {
		m.tooltip.Hide()
	}
	m.logger.Info("measurement finished", "strategy", m.strategy.Name(), "value", m.result.Value)
}

func (m *Measure) recompute() {
	start := time.Now()

	q := m.strategy.Quantity()
	result := core.MeasurementResult{Quantity: q}
	if len(m.points) >= 2 {
		result.Value = m.strategy.Compute(m.points)
		result.DisplayText = m.format(result.Value)
	}
	m.result = result

	stats := m.strategyStats()
	ctx := context.Background()
	m.recomputed.Add(ctx, 1, m.attrs)
	if stats.Misses > 0 {
		m.missed.Add(ctx, int64(stats.Misses), m.attrs)
	}
	m.logger.Debug("recomputed", "strategy", m.strategy.Name(), "points", len(m.points),
		"samples", stats.Samples, "cached", stats.Cached, "skipped", stats.Skipped)

	m.updateLabels()

	if m.cfg.OnChange != nil {
		m.cfg.OnChange(result)
	}
	if m.cfg.OnRecompute != nil {
		_, isSurface := m.strategy.(statsReporter)
		m.cfg.OnRecompute(Recomputation{
			Strategy: m.strategy.Name(),
			Surface:  isSurface,
			Points:   len(m.points),
			Result:   result,
			Duration: time.Since(start),
			Stats:    stats,
		})
	}
}

func (m *Measure) strategyStats() surface.Stats {
	if r, ok := m.strategy.(statsReporter); ok && len(m.points) >= 2 {
		return r.Stats()
	}
	return surface.Stats{}
}

func (m *Measure) format(value float64) string {
	if m.strategy.Quantity() == core.QuantityArea {
		return m.cfg.FormatArea(value, m.cfg.Unit)
	}
	return m.cfg.FormatLength(value, m.cfg.Unit)
}

// updateLabels replaces every label with ones derived from the current
// points. A length gets one total label on its last vertex. An area gets a
// total label at its centroid and a running perimeter label per vertex.
func (m *Measure) updateLabels() {
	for _, h := range m.handles {
		m.labels.Remove(h)
	}
	m.handles = m.handles[:0]

	if len(m.points) < 2 {
		return
	}
	style := m.cfg.LabelStyle

	if m.strategy.Quantity() == core.QuantityLength {
		last := m.points[len(m.points)-1]
		m.addLabel(m.cfg.Locale.Total+": "+m.result.DisplayText, last, style)
		return
	}

	points := geo.FromWorldAll(m.points)
	var perimeter float64
	for i, p := range m.points {
		if i == 0 {
			m.addLabel(m.cfg.Locale.Start, p, style)
			continue
		}
		perimeter += geo.SlantDistance(points[i-1], points[i])
		m.addLabel(m.cfg.FormatLength(perimeter, m.cfg.Unit), p, style)
	}
	if len(m.points) < 3 {
		return
	}
	center := geo.Centroid(points)
	var height float64
	for _, p := range points {
		height += p.Height
	}
	center.Height = height / float64(len(points))
	m.addLabel(m.cfg.Locale.Area+": "+m.result.DisplayText, geo.ToWorld(center), style)
}

func (m *Measure) addLabel(text string, anchor core.WorldPoint, style core.LabelStyle) {
	m.handles = append(m.handles, m.labels.Add(text, anchor, style))
}
