package measure

import (
	"testing"

	"github.com/globemeasure/measure/internal/geo"
	"github.com/globemeasure/measure/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDistance_MeridianKilometer(t *testing.T) {
	m, _ := newDistance(t)

	d := m.GetDistance(world(20, 10, 300), world(20, 10+1000/110604.0, 300))

	assert.InDelta(t, 1000.0, d, 1)
}

func TestGetDistance_IndependentOfDrawingState(t *testing.T) {
	m, v := newDistance(t)
	m.Start()
	v.drawer.emit(world(0, 0, 0), world(0, 0.05, 0))
	before := m.Result()

	m.GetDistance(world(1, 1, 0), world(2, 2, 0))

	assert.Equal(t, before, m.Result())
	assert.Len(t, m.Points(), 2)
}

func TestGetDistance_HeightDifference(t *testing.T) {
	m, _ := newDistance(t)

	d := m.GetDistance(world(0, 0, 0), world(0, 0, 100))

	assert.InDelta(t, 100.0, d, 1e-6)
}

func TestGetArea_FewerThanThreePoints(t *testing.T) {
	m, _ := newArea(t)
	sq := kilometerSquare()

	assert.Equal(t, 0.0, m.GetArea(nil))
	assert.Equal(t, 0.0, m.GetArea(sq[:1]))
	assert.Equal(t, 0.0, m.GetArea(sq[:2]))
}

func TestGetArea_KilometerSquare(t *testing.T) {
	m, _ := newArea(t)

	assert.InDelta(t, 1e6, m.GetArea(kilometerSquare()), 1e4)
}

func TestSurfaceDistance_FlatMatchesFlatStrategy(t *testing.T) {
	v := newFakeViewer()
	m, err := NewDistanceSurfaceMeasure(v, WithDistanceSamples(20))
	require.NoError(t, err)
	a, b := world(0, 0, 0), world(0.004, 0.003, 0)

	want := geo.GeodesicDistance(geo.FromWorld(a), geo.FromWorld(b))

	assert.Equal(t, "surface-distance", m.Strategy().Name())
	assert.InDelta(t, want, m.GetDistance(a, b), want*1e-4)
}

func TestSurfaceArea_FlatMatchesFlatStrategy(t *testing.T) {
	v := newFakeViewer()
	m, err := NewAreaSurfaceMeasure(v, WithSplitNum(4))
	require.NoError(t, err)
	flat := FlatArea().Compute(kilometerSquare())

	assert.Equal(t, "surface-area", m.Strategy().Name())
	assert.InDelta(t, flat, m.GetArea(kilometerSquare()), flat*1e-3)
	assert.Equal(t, 0.0, m.GetArea(kilometerSquare()[:2]))
}

func TestSurfaceArea_RecomputationReportsStats(t *testing.T) {
	var got []Recomputation
	v := newFakeViewer()
	m, err := NewAreaSurfaceMeasure(v, WithSplitNum(2), WithRecomputeObserver(func(r Recomputation) {
		got = append(got, r)
	}))
	require.NoError(t, err)
	m.Start()

	v.drawer.emit(kilometerSquare()...)

	require.Len(t, got, 1)
	assert.True(t, got[0].Surface)
	assert.Equal(t, 4, got[0].Stats.Pieces)
	assert.Greater(t, got[0].Stats.Samples, 0)
	assert.Equal(t, 0, got[0].Stats.Misses)
}

func TestSurfaceDistance_ProjectionMissesYieldZero(t *testing.T) {
	m, err := NewDistanceSurfaceMeasure(&bareViewer{scene: &fakeScene{}, drawer: &fakeDrawer{}})
	require.NoError(t, err)

	assert.Equal(t, 0.0, m.GetDistance(world(0, 0, 0), world(0.01, 0, 0)))
}

func TestStrategies_ShapeAndQuantity(t *testing.T) {
	v := newFakeViewer()
	sd, err := SurfaceDistance(v, NewConfig())
	require.NoError(t, err)
	sa, err := SurfaceArea(v, NewConfig())
	require.NoError(t, err)

	tests := []struct {
		s     Strategy
		shape core.ShapeKind
		q     core.Quantity
	}{
		{FlatDistance(), core.ShapePolyline, core.QuantityLength},
		{FlatArea(), core.ShapePolygon, core.QuantityArea},
		{sd, core.ShapePolyline, core.QuantityLength},
		{sa, core.ShapePolygon, core.QuantityArea},
	}
	for _, tt := range tests {
		t.Run(tt.s.Name(), func(t *testing.T) {
			assert.Equal(t, tt.shape, tt.s.Shape())
			assert.Equal(t, tt.q, tt.s.Quantity())
		})
	}
}
