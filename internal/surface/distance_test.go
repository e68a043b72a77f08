package surface

import (
	"math"
	"testing"

	"github.com/globemeasure/measure/internal/geo"
	"github.com/globemeasure/measure/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDistanceEngine(t *testing.T, v *plateCarreeView, samples int) *DistanceEngine {
	t.Helper()
	cfg := DefaultDistanceConfig()
	cfg.SampleCount = samples
	e, err := NewDistanceEngine(v, v, cfg)
	require.NoError(t, err)
	return e
}

func TestNewDistanceEngine_MissingCollaborator(t *testing.T) {
	v := newView(flatTerrain(0))

	_, err := NewDistanceEngine(nil, v, DefaultDistanceConfig())
	assert.ErrorIs(t, err, ErrMissingCollaborator)

	_, err = NewDistanceEngine(v, nil, DefaultDistanceConfig())
	assert.ErrorIs(t, err, ErrMissingCollaborator)
}

func TestDistance_FlatTerrainMatchesGeodesic(t *testing.T) {
	a := world(10, 0, 250)
	b := world(10, 1000/metersPerDegLat, 250)
	want := geo.GeodesicDistance(geo.FromWorld(a), geo.FromWorld(b))

	for _, n := range []int{0, 1, 10, 100} {
		e := newDistanceEngine(t, newView(flatTerrain(250)), n)
		assert.InDelta(t, want, e.Distance(a, b), 0.01, "samples=%d", n)
	}
}

func TestDistance_FlatTerrainDiagonal(t *testing.T) {
	a := world(10, 0.001, 0)
	b := world(10.006, 0.005, 0)
	want := geo.GeodesicDistance(geo.FromWorld(a), geo.FromWorld(b))

	e := newDistanceEngine(t, newView(flatTerrain(0)), 50)
	assert.InDelta(t, want, e.Distance(a, b), want*1e-5)
}

func TestDistance_HillsNonDecreasingWithNestedSamples(t *testing.T) {
	hills := func(lon, lat float64) (float64, bool) {
		northing := lat * metersPerDegLat
		return 50 * math.Sin(2*math.Pi*northing/200), true
	}
	a := world(10, 0, 0)
	b := world(10, 1000/metersPerDegLat, 0)
	flat := geo.GeodesicDistance(geo.FromWorld(a), geo.FromWorld(b))

	prev := 0.0
	// 1, 2, 4, ... 128 intervals: every sample set contains the previous one
	for _, n := range []int{0, 1, 3, 7, 15, 31, 63, 127} {
		e := newDistanceEngine(t, newView(hills), n)
		d := e.Distance(a, b)
		assert.GreaterOrEqual(t, d, prev-1e-6, "samples=%d", n)
		prev = d
	}
	assert.Greater(t, prev, flat*1.3)
}

func TestDistance_PickMissesUndercount(t *testing.T) {
	half := 500 / metersPerDegLat
	holes := func(lon, lat float64) (float64, bool) {
		return 0, lat <= half
	}
	a := world(10, 0, 0)
	b := world(10, 1000/metersPerDegLat, 0)

	e := newDistanceEngine(t, newView(holes), 99)
	d := e.Distance(a, b)

	assert.Greater(t, d, 400.0)
	assert.Less(t, d, 510.0)
	st := e.Stats()
	assert.Equal(t, 101, st.Samples)
	assert.Equal(t, 100, st.Elements)
	assert.Greater(t, st.Misses, 0)
	assert.Greater(t, st.Skipped, 0)
}

func TestDistance_NoTerrainIsZero(t *testing.T) {
	none := func(lon, lat float64) (float64, bool) { return 0, false }
	e := newDistanceEngine(t, newView(none), 10)

	assert.Equal(t, 0.0, e.Distance(world(0, 0, 0), world(0.01, 0, 0)))
}

func TestDistance_ProjectionMissIsZero(t *testing.T) {
	v := newView(flatTerrain(0))
	v.projectFails = true
	e := newDistanceEngine(t, v, 10)

	assert.Equal(t, 0.0, e.Distance(world(0, 0, 0), world(0.01, 0, 0)))
	assert.Equal(t, 1, e.Stats().Skipped)
	assert.Equal(t, 0, v.picks)
}

func TestDistance_SamePoint(t *testing.T) {
	e := newDistanceEngine(t, newView(flatTerrain(0)), 10)
	p := world(3, 4, 0)

	assert.Equal(t, 0.0, e.Distance(p, p))
}

func TestPathDistance_SumsSegmentsAndSharesPicks(t *testing.T) {
	v := newView(flatTerrain(0))
	e := newDistanceEngine(t, v, 3)
	step := 1000 / metersPerDegLat
	path := core.PointSequence{
		world(10, 0, 0),
		world(10, step, 0),
		world(10, 2*step, 0),
	}

	d := e.PathDistance(path)

	assert.InDelta(t, 2000.0, d, 0.05)
	assert.Equal(t, 10, e.Stats().Samples)
	// the shared vertex is picked once
	assert.Equal(t, 9, v.picks)
}

func TestPathDistance_ShortSequence(t *testing.T) {
	e := newDistanceEngine(t, newView(flatTerrain(0)), 3)

	assert.Equal(t, 0.0, e.PathDistance(nil))
	assert.Equal(t, 0.0, e.PathDistance(core.PointSequence{world(0, 0, 0)}))
}

func TestDistance_PixelInterval(t *testing.T) {
	v := newView(flatTerrain(0))
	cfg := DefaultDistanceConfig()
	cfg.PixelInterval = 10
	e, err := NewDistanceEngine(v, v, cfg)
	require.NoError(t, err)

	// 0.00095 degrees at 1e5 px/deg is 95 px: 10 intervals
	e.Distance(world(0, 0, 0), world(0.00095, 0, 0))

	assert.Equal(t, 11, e.Stats().Samples)
}
