package surface

import (
	"github.com/globemeasure/measure/internal/geo"
	"github.com/globemeasure/measure/pkg/core"
)

const (
	metersPerDegLat = 110574.2727
	metersPerDegLon = 111319.4908
)

// heightFunc returns the terrain height at a position, or false for a hole.
type heightFunc func(lon, lat float64) (float64, bool)

func flatTerrain(h float64) heightFunc {
	return func(lon, lat float64) (float64, bool) { return h, true }
}

// plateCarreeView is a north-up camera mapping degrees linearly to pixels.
type plateCarreeView struct {
	pixelsPerDegree float64
	height          heightFunc
	projectFails    bool
	picks           int
}

func newView(height heightFunc) *plateCarreeView {
	return &plateCarreeView{pixelsPerDegree: 1e5, height: height}
}

func (v *plateCarreeView) Project(w core.WorldPoint) (core.ViewportPoint, bool) {
	if v.projectFails {
		return core.ViewportPoint{}, false
	}
	g := geo.FromWorld(w)
	return core.ViewportPoint{
		X: g.Longitude * v.pixelsPerDegree,
		Y: -g.Latitude * v.pixelsPerDegree,
	}, true
}

func (v *plateCarreeView) Pick(p core.ViewportPoint) (core.WorldPoint, bool) {
	v.picks++
	lon := p.X / v.pixelsPerDegree
	lat := -p.Y / v.pixelsPerDegree
	h, ok := v.height(lon, lat)
	if !ok {
		return core.WorldPoint{}, false
	}
	return geo.ToWorld(core.GeodeticPoint{Longitude: lon, Latitude: lat, Height: h}), true
}

func world(lon, lat, h float64) core.WorldPoint {
	return geo.ToWorld(core.GeodeticPoint{Longitude: lon, Latitude: lat, Height: h})
}
