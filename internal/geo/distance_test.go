package geo

import (
	"testing"

	"github.com/globemeasure/measure/pkg/core"
	"github.com/stretchr/testify/assert"
)

// meters per degree of latitude / longitude on the equator
const (
	metersPerDegLat = 110574.2727
	metersPerDegLon = 111319.4908
)

func TestGeodesicDistance_MeridianKilometer(t *testing.T) {
	a := core.GeodeticPoint{Longitude: 10, Latitude: 0}
	b := core.GeodeticPoint{Longitude: 10, Latitude: 1000 / metersPerDegLat}

	assert.InDelta(t, 1000.0, GeodesicDistance(a, b), 0.01)
}

func TestGeodesicDistance_EquatorKilometer(t *testing.T) {
	a := core.GeodeticPoint{Longitude: 0, Latitude: 0}
	b := core.GeodeticPoint{Longitude: 1000 / metersPerDegLon, Latitude: 0}

	assert.InDelta(t, 1000.0, GeodesicDistance(a, b), 0.01)
}

func TestGeodesicDistance_FlindersPeakToBuninyong(t *testing.T) {
	a := core.GeodeticPoint{Longitude: 144.42486789, Latitude: -37.95103342}
	b := core.GeodeticPoint{Longitude: 143.92649553, Latitude: -37.65282114}

	assert.InDelta(t, 54972.271, GeodesicDistance(a, b), 0.01)
}

func TestGeodesicDistance_Symmetric(t *testing.T) {
	a := core.GeodeticPoint{Longitude: 2.35, Latitude: 48.85}
	b := core.GeodeticPoint{Longitude: -0.12, Latitude: 51.5}

	assert.InDelta(t, GeodesicDistance(a, b), GeodesicDistance(b, a), 1e-6)
}

func TestGeodesicDistance_SamePoint(t *testing.T) {
	p := core.GeodeticPoint{Longitude: 7.5, Latitude: 46.2, Height: 1200}

	assert.Equal(t, 0.0, GeodesicDistance(p, p))
}

func TestGeodesicDistance_NearlyAntipodal(t *testing.T) {
	a := core.GeodeticPoint{Longitude: 0, Latitude: 0}
	b := core.GeodeticPoint{Longitude: 180, Latitude: 0}

	d := GeodesicDistance(a, b)
	assert.Greater(t, d, 1.99e7)
	assert.Less(t, d, 2.01e7)
}

func TestSlantDistance_IgnoresNothing(t *testing.T) {
	a := core.GeodeticPoint{Longitude: 10, Latitude: 0, Height: 0}
	b := core.GeodeticPoint{Longitude: 10, Latitude: 1000 / metersPerDegLat, Height: 0}

	assert.InDelta(t, GeodesicDistance(a, b), SlantDistance(a, b), 1e-9)
}

func TestSlantDistance_VerticalOnly(t *testing.T) {
	a := core.GeodeticPoint{Longitude: 10, Latitude: 45, Height: 100}
	b := core.GeodeticPoint{Longitude: 10, Latitude: 45, Height: 350}

	assert.Equal(t, 0.0, GeodesicDistance(a, b))
	assert.InDelta(t, 250.0, SlantDistance(a, b), 1e-9)
}

func TestSlantDistance_NeverShorterThanGeodesic(t *testing.T) {
	base := core.GeodeticPoint{Longitude: 6.86, Latitude: 45.83}
	for _, dh := range []float64{0, 1, 10, 500, 4800} {
		for _, dd := range []float64{0, 1e-4, 1e-2, 0.5} {
			other := core.GeodeticPoint{Longitude: base.Longitude + dd, Latitude: base.Latitude, Height: dh}
			g := GeodesicDistance(base, other)
			s := SlantDistance(base, other)
			assert.GreaterOrEqual(t, s, g)
			if dh == 0 {
				assert.InDelta(t, g, s, 1e-9)
			} else {
				assert.Greater(t, s, g)
			}
		}
	}
}

func TestPathLength(t *testing.T) {
	step := 1000 / metersPerDegLat
	points := []core.GeodeticPoint{
		{Latitude: 0},
		{Latitude: step},
		{Latitude: 2 * step},
	}

	assert.InDelta(t, 2000.0, PathLength(points), 0.05)
	assert.Equal(t, 0.0, PathLength(points[:1]))
	assert.Equal(t, 0.0, PathLength(nil))
}
