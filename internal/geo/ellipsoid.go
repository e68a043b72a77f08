package geo

import (
	"math"

	"github.com/globemeasure/measure/pkg/core"
)

// WGS84 defining parameters.
const (
	SemiMajorAxis = 6378137.0
	Flattening    = 1 / 298.257223563
)

var (
	semiMinorAxis = SemiMajorAxis * (1 - Flattening)
	eccSq         = Flattening * (2 - Flattening)
)

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

// primeVerticalRadius is N(φ), the radius of curvature in the prime vertical.
func primeVerticalRadius(sinLat float64) float64 {
	return SemiMajorAxis / math.Sqrt(1-eccSq*sinLat*sinLat)
}

// ToWorld converts a geodetic position to earth-centered world coordinates.
func ToWorld(p core.GeodeticPoint) core.WorldPoint {
	lon, lat := toRad(p.Longitude), toRad(p.Latitude)
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)

	n := primeVerticalRadius(sinLat)
	return core.WorldPoint{
		X: (n + p.Height) * cosLat * cosLon,
		Y: (n + p.Height) * cosLat * sinLon,
		Z: (n*(1-eccSq) + p.Height) * sinLat,
	}
}

// FromWorld converts an earth-centered world position to geodetic
// coordinates. The origin maps to the zero GeodeticPoint.
func FromWorld(w core.WorldPoint) core.GeodeticPoint {
	if w.X == 0 && w.Y == 0 && w.Z == 0 {
		return core.GeodeticPoint{}
	}

	lon := math.Atan2(w.Y, w.X)
	r := math.Hypot(w.X, w.Y)
	lat := math.Atan2(w.Z, r*(1-eccSq))

	var h float64
	for i := 0; i < 8; i++ {
		sinLat, cosLat := math.Sincos(lat)
		n := primeVerticalRadius(sinLat)
		if math.Abs(cosLat) > 1e-10 {
			h = r/cosLat - n
		} else {
			h = math.Abs(w.Z) - semiMinorAxis
		}
		next := math.Atan2(w.Z, r*(1-eccSq*n/(n+h)))
		if math.Abs(next-lat) < 1e-14 {
			lat = next
			break
		}
		lat = next
	}

	return core.GeodeticPoint{
		Longitude: toDeg(lon),
		Latitude:  toDeg(lat),
		Height:    h,
	}
}

// FromWorldAll converts every point of seq.
func FromWorldAll(seq core.PointSequence) []core.GeodeticPoint {
	out := make([]core.GeodeticPoint, len(seq))
	for i, w := range seq {
		out[i] = FromWorld(w)
	}
	return out
}

// ToWorldAll converts every geodetic point to world coordinates.
func ToWorldAll(points []core.GeodeticPoint) core.PointSequence {
	out := make(core.PointSequence, len(points))
	for i, p := range points {
		out[i] = ToWorld(p)
	}
	return out
}
