package scene

import (
	"testing"

	"github.com/globemeasure/measure/internal/geo"
	"github.com/globemeasure/measure/internal/measure"
	"github.com/globemeasure/measure/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	metersPerDegLat = 110574.2727
	metersPerDegLon = 111319.4908
)

func kilometerSquare() []core.GeodeticPoint {
	dLon := 1000 / metersPerDegLon
	dLat := 1000 / metersPerDegLat
	return []core.GeodeticPoint{
		{Longitude: 0, Latitude: 0},
		{Longitude: dLon, Latitude: 0},
		{Longitude: dLon, Latitude: dLat},
		{Longitude: 0, Latitude: dLat},
	}
}

func framedViewer(terrain Terrain) *Viewer {
	return NewViewer(FitCamera(kilometerSquare(), 800, 600, terrain), nil)
}

func TestViewer_SurfaceAreaOnFlatTerrain(t *testing.T) {
	v := framedViewer(Flat{})
	flat, err := measure.NewAreaMeasure(v)
	require.NoError(t, err)
	draped, err := measure.NewAreaSurfaceMeasure(v)
	require.NoError(t, err)

	square := geo.ToWorldAll(kilometerSquare())
	want := flat.GetArea(square)

	assert.InDelta(t, 1e6, want, 1e4)
	assert.InDelta(t, want, draped.GetArea(square), want*1e-3)
}

func TestViewer_SurfaceAreaOnHills(t *testing.T) {
	v := framedViewer(Hills{Amplitude: 40, Wavelength: 400})
	flat, err := measure.NewAreaMeasure(v)
	require.NoError(t, err)
	draped, err := measure.NewAreaSurfaceMeasure(v, measure.WithSplitNum(20))
	require.NoError(t, err)

	square := geo.ToWorldAll(kilometerSquare())

	assert.Greater(t, draped.GetArea(square), flat.GetArea(square))
}

func TestViewer_SurfaceDistanceOnHills(t *testing.T) {
	v := framedViewer(Hills{Amplitude: 40, Wavelength: 400})
	flat, err := measure.NewDistanceMeasure(v)
	require.NoError(t, err)
	draped, err := measure.NewDistanceSurfaceMeasure(v, measure.WithDistanceSamples(200))
	require.NoError(t, err)

	sq := geo.ToWorldAll(kilometerSquare())
	a, b := sq[0], sq[2]

	assert.Greater(t, draped.GetDistance(a, b), flat.GetDistance(a, b))
}

func TestViewer_DrawAreaEndToEnd(t *testing.T) {
	v := framedViewer(Flat{})
	m, err := measure.NewAreaMeasure(v)
	require.NoError(t, err)
	d := v.ScriptDrawer()

	m.Start()
	for _, p := range geo.ToWorldAll(kilometerSquare()) {
		require.NoError(t, d.AddPoint(p))
	}
	require.NoError(t, d.Finish())

	assert.InDelta(t, 1e6, m.Result().Value, 1e4)
	assert.Equal(t, "1 km²", m.Result().DisplayText)
	assert.Len(t, v.Labels().Labels(), 5)
	require.Len(t, v.Tooltips(), 1)
	assert.False(t, v.Tooltips()[0].Visible())

	m.Destroy()
	assert.Empty(t, v.Labels().Collections())
	assert.True(t, v.Tooltips()[0].Destroyed())
	assert.False(t, d.Active())
}

func TestViewer_EndStopsDrawing(t *testing.T) {
	v := framedViewer(Flat{})
	m, err := measure.NewDistanceMeasure(v)
	require.NoError(t, err)
	d := v.ScriptDrawer()

	m.Start()
	require.NoError(t, d.AddPoint(geo.ToWorld(kilometerSquare()[0])))
	m.End()

	assert.ErrorIs(t, d.AddPoint(geo.ToWorld(kilometerSquare()[1])), ErrNotDrawing)
	assert.Empty(t, v.Labels().Labels())
}
