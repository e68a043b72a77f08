package scene

import (
	"math"

	"github.com/globemeasure/measure/internal/geo"
	"github.com/globemeasure/measure/pkg/core"
)

// maxMercatorLatitude bounds the square Web Mercator world.
const maxMercatorLatitude = 85.05112878

// Camera looks straight down on the globe through a Web Mercator
// (EPSG:3857) projection. Pixel (0, 0) is the top-left corner.
type Camera struct {
	centerX, centerY float64 // EPSG:3857 meters
	metersPerPixel   float64
	width, height    float64
	terrain          Terrain
}

// NewCamera centers a camera of the given pixel size on a position.
func NewCamera(center core.GeodeticPoint, metersPerPixel float64, width, height int, terrain Terrain) *Camera {
	x, y := geo.MercatorFromLonLat(center.Longitude, center.Latitude)
	if terrain == nil {
		terrain = Flat{}
	}
	return &Camera{
		centerX:        x,
		centerY:        y,
		metersPerPixel: metersPerPixel,
		width:          float64(width),
		height:         float64(height),
		terrain:        terrain,
	}
}

// FitCamera returns a camera that frames every point with a 10% margin.
func FitCamera(points []core.GeodeticPoint, width, height int, terrain Terrain) *Camera {
	if len(points) == 0 {
		return NewCamera(core.GeodeticPoint{}, 1, width, height, terrain)
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		x, y := geo.MercatorFromLonLat(p.Longitude, clampLatitude(p.Latitude))
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	mpp := math.Max((maxX-minX)/float64(width), (maxY-minY)/float64(height)) * 1.2
	if mpp <= 0 {
		mpp = 1
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	lon, lat := geo.LonLatFromMercator(cx, cy)
	return NewCamera(core.GeodeticPoint{Longitude: lon, Latitude: lat}, mpp, width, height, terrain)
}

// MetersPerPixel returns the ground resolution at the projection's scale.
func (c *Camera) MetersPerPixel() float64 {
	return c.metersPerPixel
}

// Project maps a world point to a pixel. It reports false outside the
// viewport.
func (c *Camera) Project(w core.WorldPoint) (core.ViewportPoint, bool) {
	g := geo.FromWorld(w)
	if math.Abs(g.Latitude) > maxMercatorLatitude {
		return core.ViewportPoint{}, false
	}
	x, y := geo.MercatorFromLonLat(g.Longitude, g.Latitude)
	p := core.ViewportPoint{
		X: (x-c.centerX)/c.metersPerPixel + c.width/2,
		Y: (c.centerY-y)/c.metersPerPixel + c.height/2,
	}
	if !c.inside(p) {
		return core.ViewportPoint{}, false
	}
	return p, true
}

// Pick returns the terrain point under a pixel.
func (c *Camera) Pick(p core.ViewportPoint) (core.WorldPoint, bool) {
	if !c.inside(p) {
		return core.WorldPoint{}, false
	}
	x := c.centerX + (p.X-c.width/2)*c.metersPerPixel
	y := c.centerY - (p.Y-c.height/2)*c.metersPerPixel
	lon, lat := geo.LonLatFromMercator(x, y)
	h, ok := c.terrain.HeightAt(lon, lat)
	if !ok {
		return core.WorldPoint{}, false
	}
	return geo.ToWorld(core.GeodeticPoint{Longitude: lon, Latitude: lat, Height: h}), true
}

func (c *Camera) inside(p core.ViewportPoint) bool {
	return p.X >= 0 && p.X <= c.width && p.Y >= 0 && p.Y <= c.height
}

func clampLatitude(lat float64) float64 {
	return math.Max(-maxMercatorLatitude, math.Min(maxMercatorLatitude, lat))
}
