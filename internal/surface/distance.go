package surface

import (
	"github.com/globemeasure/measure/internal/cache"
	"github.com/globemeasure/measure/internal/geo"
	"github.com/globemeasure/measure/internal/viewport"
	"github.com/globemeasure/measure/pkg/core"
)

// DistanceConfig tunes the terrain sampling of DistanceEngine.
type DistanceConfig struct {
	// SampleCount is the number of interior samples per segment.
	SampleCount int
	// PixelInterval, when positive, replaces SampleCount with one sample
	// every PixelInterval pixels of the projected segment.
	PixelInterval float64
	// CacheSize bounds the per-frame pick cache.
	CacheSize int
}

// DefaultDistanceConfig returns the defaults used when no config is given.
func DefaultDistanceConfig() DistanceConfig {
	return DistanceConfig{
		SampleCount: viewport.DefaultSampleCount,
		CacheSize:   cache.DefaultPickCacheSize,
	}
}

// DistanceEngine approximates the terrain-following length between world
// points as a polyline through sampled terrain intersections.
type DistanceEngine struct {
	projector Projector
	picker    Picker
	cfg       DistanceConfig
	picks     *cache.PickCache
	stats     Stats
}

// NewDistanceEngine creates a DistanceEngine.
func NewDistanceEngine(projector Projector, picker Picker, cfg DistanceConfig) (*DistanceEngine, error) {
	if projector == nil || picker == nil {
		return nil, ErrMissingCollaborator
	}
	picks, err := cache.NewPickCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &DistanceEngine{
		projector: projector,
		picker:    picker,
		cfg:       cfg,
		picks:     picks,
	}, nil
}

// Distance returns the sampled surface distance from start to end in meters.
func (e *DistanceEngine) Distance(start, end core.WorldPoint) float64 {
	e.beginFrame()
	return e.segment(start, end)
}

// PathDistance returns the sampled surface length of a polyline. All
// segments are evaluated against the same frame.
func (e *DistanceEngine) PathDistance(points core.PointSequence) float64 {
	e.beginFrame()
	var total float64
	for i := 1; i < len(points); i++ {
		total += e.segment(points[i-1], points[i])
	}
	return total
}

// Stats reports the sampling work of the last Distance or PathDistance call.
func (e *DistanceEngine) Stats() Stats {
	st := e.stats
	st.Cached = e.picks.Hits()
	return st
}

func (e *DistanceEngine) beginFrame() {
	e.picks.Reset()
	e.stats = Stats{}
}

func (e *DistanceEngine) sample(p0, p1 core.ViewportPoint) []core.ViewportPoint {
	if e.cfg.PixelInterval > 0 {
		return viewport.SampleByInterval(p0, p1, e.cfg.PixelInterval)
	}
	return viewport.Sample(p0, p1, e.cfg.SampleCount)
}

func (e *DistanceEngine) segment(start, end core.WorldPoint) float64 {
	p0, ok0 := e.projector.Project(start)
	p1, ok1 := e.projector.Project(end)
	if !ok0 || !ok1 {
		e.stats.Misses++
		e.stats.Skipped++
		return 0
	}

	var (
		total  float64
		prev   core.GeodeticPoint
		prevOK bool
	)
	for i, p := range e.sample(p0, p1) {
		w, ok := e.picks.Pick(p, e.picker.Pick)
		e.stats.Samples++
		if !ok {
			e.stats.Misses++
		}

		var g core.GeodeticPoint
		if ok {
			g = geo.FromWorld(w)
		}
		if i > 0 {
			e.stats.Elements++
			if ok && prevOK {
				total += geo.SlantDistance(prev, g)
			} else {
				e.stats.Skipped++
			}
		}
		prev, prevOK = g, ok
	}
	return total
}
