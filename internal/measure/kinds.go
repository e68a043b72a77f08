package measure

import "github.com/globemeasure/measure/pkg/core"

// DistanceMeasure measures the length of a polyline.
type DistanceMeasure struct {
	*Measure
}

// NewDistanceMeasure creates a flat distance measurement.
func NewDistanceMeasure(viewer Viewer, opts ...Option) (*DistanceMeasure, error) {
	m, err := New(viewer, FlatDistance(), NewConfig(opts...))
	if err != nil {
		return nil, err
	}
	return &DistanceMeasure{Measure: m}, nil
}

// NewDistanceSurfaceMeasure creates a terrain-following distance measurement.
func NewDistanceSurfaceMeasure(viewer Viewer, opts ...Option) (*DistanceMeasure, error) {
	cfg := NewConfig(opts...)
	s, err := SurfaceDistance(viewer, cfg)
	if err != nil {
		return nil, err
	}
	m, err := New(viewer, s, cfg)
	if err != nil {
		return nil, err
	}
	return &DistanceMeasure{Measure: m}, nil
}

// GetDistance measures from a to b without touching the drawing state.
func (m *DistanceMeasure) GetDistance(a, b core.WorldPoint) float64 {
	return m.strategy.Compute(core.PointSequence{a, b})
}

// AreaMeasure measures the area of a polygon.
type AreaMeasure struct {
	*Measure
}

// NewAreaMeasure creates a flat area measurement.
func NewAreaMeasure(viewer Viewer, opts ...Option) (*AreaMeasure, error) {
	m, err := New(viewer, FlatArea(), NewConfig(opts...))
	if err != nil {
		return nil, err
	}
	return &AreaMeasure{Measure: m}, nil
}

// NewAreaSurfaceMeasure creates a terrain-draped area measurement.
func NewAreaSurfaceMeasure(viewer Viewer, opts ...Option) (*AreaMeasure, error) {
	cfg := NewConfig(opts...)
	s, err := SurfaceArea(viewer, cfg)
	if err != nil {
		return nil, err
	}
	m, err := New(viewer, s, cfg)
	if err != nil {
		return nil, err
	}
	return &AreaMeasure{Measure: m}, nil
}

// GetArea measures the polygon without touching the drawing state.
func (m *AreaMeasure) GetArea(points core.PointSequence) float64 {
	return m.strategy.Compute(points)
}
