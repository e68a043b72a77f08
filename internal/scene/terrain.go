package scene

import (
	"fmt"
	"math"

	"github.com/globemeasure/measure/internal/geo"
)

// Terrain reports the rendered terrain height at a position. It returns
// false where no terrain tile is loaded.
type Terrain interface {
	HeightAt(longitude, latitude float64) (float64, bool)
}

// Flat is terrain at a constant height above the ellipsoid.
type Flat struct {
	Height float64
}

func (f Flat) HeightAt(float64, float64) (float64, bool) {
	return f.Height, true
}

// Hills is an egg-crate surface: Base + Amplitude·sin(kx)·sin(ky) over Web
// Mercator meters, with k = 2π / Wavelength.
type Hills struct {
	Base       float64
	Amplitude  float64
	Wavelength float64
}

func (h Hills) HeightAt(longitude, latitude float64) (float64, bool) {
	if h.Wavelength <= 0 {
		return h.Base, true
	}
	x, y := geo.MercatorFromLonLat(longitude, latitude)
	k := 2 * math.Pi / h.Wavelength
	return h.Base + h.Amplitude*math.Sin(k*x)*math.Sin(k*y), true
}

// Box is a longitude/latitude rectangle.
type Box struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

func (b Box) contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon && lat >= b.MinLat && lat <= b.MaxLat
}

// Holes removes the boxes from the wrapped terrain, as if their tiles were
// not loaded.
type Holes struct {
	Terrain
	Boxes []Box
}

func (h Holes) HeightAt(longitude, latitude float64) (float64, bool) {
	for _, b := range h.Boxes {
		if b.contains(longitude, latitude) {
			return 0, false
		}
	}
	return h.Terrain.HeightAt(longitude, latitude)
}

// NewTerrain builds a terrain model from its config name.
func NewTerrain(kind string, height, amplitude, wavelength float64) (Terrain, error) {
	switch kind {
	case "", "flat":
		return Flat{Height: height}, nil
	case "hills":
		return Hills{Base: height, Amplitude: amplitude, Wavelength: wavelength}, nil
	default:
		return nil, fmt.Errorf("unknown terrain kind: %s", kind)
	}
}
