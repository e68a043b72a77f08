package measure

import (
	"github.com/globemeasure/measure/internal/cache"
	"github.com/globemeasure/measure/internal/geo"
	"github.com/globemeasure/measure/internal/surface"
	"github.com/globemeasure/measure/pkg/core"
)

// Strategy computes the measured quantity from a point sequence. It is the
// only thing that differs between measurement kinds.
type Strategy interface {
	Name() string
	Shape() core.ShapeKind
	Quantity() core.Quantity
	Compute(points core.PointSequence) float64
}

// statsReporter is implemented by strategies that sample the terrain.
type statsReporter interface {
	Stats() surface.Stats
}

type flatDistance struct{}

// FlatDistance sums the slant distance between consecutive vertices using
// the heights carried by the points themselves.
func FlatDistance() Strategy { return flatDistance{} }

func (flatDistance) Name() string            { return "distance" }
func (flatDistance) Shape() core.ShapeKind   { return core.ShapePolyline }
func (flatDistance) Quantity() core.Quantity { return core.QuantityLength }

func (flatDistance) Compute(points core.PointSequence) float64 {
	if len(points) < 2 {
		return 0
	}
	return geo.PathLength(geo.FromWorldAll(points))
}

type flatArea struct{}

// FlatArea returns the ellipsoidal area of the implicitly closed polygon.
func FlatArea() Strategy { return flatArea{} }

func (flatArea) Name() string            { return "area" }
func (flatArea) Shape() core.ShapeKind   { return core.ShapePolygon }
func (flatArea) Quantity() core.Quantity { return core.QuantityArea }

func (flatArea) Compute(points core.PointSequence) float64 {
	if len(points) < 3 {
		return 0
	}
	return geo.PolygonArea(geo.FromWorldAll(points))
}

type surfaceDistance struct {
	engine *surface.DistanceEngine
}

// SurfaceDistance follows the rendered terrain along every segment.
func SurfaceDistance(viewer Viewer, cfg Config) (Strategy, error) {
	if viewer == nil {
		return nil, ErrMissingViewer
	}
	engine, err := surface.NewDistanceEngine(viewer, viewer, surface.DistanceConfig{
		SampleCount:   cfg.DistanceSamples,
		PixelInterval: cfg.PixelInterval,
		CacheSize:     cache.DefaultPickCacheSize,
	})
	if err != nil {
		return nil, err
	}
	return &surfaceDistance{engine: engine}, nil
}

func (*surfaceDistance) Name() string            { return "surface-distance" }
func (*surfaceDistance) Shape() core.ShapeKind   { return core.ShapePolyline }
func (*surfaceDistance) Quantity() core.Quantity { return core.QuantityLength }

func (s *surfaceDistance) Compute(points core.PointSequence) float64 {
	return s.engine.PathDistance(points)
}

func (s *surfaceDistance) Stats() surface.Stats { return s.engine.Stats() }

type surfaceArea struct {
	engine *surface.AreaEngine
}

// SurfaceArea drapes the polygon over the rendered terrain.
func SurfaceArea(viewer Viewer, cfg Config) (Strategy, error) {
	if viewer == nil {
		return nil, ErrMissingViewer
	}
	engine, err := surface.NewAreaEngine(viewer, viewer, surface.AreaConfig{
		SplitNum:  cfg.SplitNum,
		CacheSize: cache.DefaultPickCacheSize,
	})
	if err != nil {
		return nil, err
	}
	return &surfaceArea{engine: engine}, nil
}

func (*surfaceArea) Name() string            { return "surface-area" }
func (*surfaceArea) Shape() core.ShapeKind   { return core.ShapePolygon }
func (*surfaceArea) Quantity() core.Quantity { return core.QuantityArea }

func (s *surfaceArea) Compute(points core.PointSequence) float64 {
	return s.engine.Area(points)
}

func (s *surfaceArea) Stats() surface.Stats { return s.engine.Stats() }
