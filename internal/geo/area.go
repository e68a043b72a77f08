package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/globemeasure/measure/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// ErrInvalidRing is returned for rings with fewer than 3 points or rings that
// are not simple (bowties, spikes, collinear runs).
var ErrInvalidRing = errors.New("invalid polygon ring")

var (
	eccentricity = math.Sqrt(eccSq)
	qPole        = authalicQ(1)
	// AuthalicRadius is the radius of the sphere with the same surface area
	// as the WGS84 ellipsoid.
	AuthalicRadius = SemiMajorAxis * math.Sqrt(qPole/2)
)

// authalicQ evaluates q(φ) for sin(φ) = sinLat.
func authalicQ(sinLat float64) float64 {
	es := eccentricity * sinLat
	return (1 - eccSq) * (sinLat/(1-es*es) - 1/(2*eccentricity)*math.Log((1-es)/(1+es)))
}

// EqualAreaXY maps a geodetic position onto a cylindrical equal-area
// projection of the authalic sphere. Planar areas measured in this space
// equal ellipsoidal surface areas.
func EqualAreaXY(lon, lat float64) geom.XY {
	sinBeta := authalicQ(math.Sin(toRad(lat))) / qPole
	return geom.XY{
		X: AuthalicRadius * toRad(lon),
		Y: AuthalicRadius * sinBeta,
	}
}

// UnwrapLongitudes shifts longitudes so consecutive vertices never jump by
// more than 180 degrees, keeping rings that cross the antimeridian intact.
func UnwrapLongitudes(points []core.GeodeticPoint) []core.GeodeticPoint {
	out := make([]core.GeodeticPoint, len(points))
	copy(out, points)
	for i := 1; i < len(out); i++ {
		d := out[i].Longitude - out[i-1].Longitude
		for d > 180 {
			out[i].Longitude -= 360
			d -= 360
		}
		for d < -180 {
			out[i].Longitude += 360
			d += 360
		}
	}
	return out
}

// Polygon builds a validated simplefeatures polygon from the points'
// longitude and latitude, mapped through project. The ring is closed
// implicitly.
func Polygon(points []core.GeodeticPoint, project func(lon, lat float64) geom.XY) (geom.Polygon, error) {
	if len(points) < 3 {
		return geom.Polygon{}, fmt.Errorf("%w: %d points", ErrInvalidRing, len(points))
	}
	flat := make([]float64, 0, (len(points)+1)*2)
	for _, p := range points {
		xy := project(p.Longitude, p.Latitude)
		flat = append(flat, xy.X, xy.Y)
	}
	first, last := points[0], points[len(points)-1]
	if first.Longitude != last.Longitude || first.Latitude != last.Latitude {
		flat = append(flat, flat[0], flat[1])
	}
	ring, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("%w: %v", ErrInvalidRing, err)
	}
	poly, err := geom.NewPolygon([]geom.LineString{ring})
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("%w: %v", ErrInvalidRing, err)
	}
	return poly, nil
}

// LonLatXY is the identity projection used for rings in geographic space.
func LonLatXY(lon, lat float64) geom.XY {
	return geom.XY{X: lon, Y: lat}
}

// PolygonArea returns the ellipsoidal area in square meters enclosed by the
// implicitly closed ring of points. Fewer than 3 points, or a ring that
// crosses itself, yield 0.
func PolygonArea(points []core.GeodeticPoint) float64 {
	poly, err := Polygon(UnwrapLongitudes(points), EqualAreaXY)
	if err != nil {
		return 0
	}
	area := poly.Area()
	if math.IsNaN(area) || area < 0 {
		return 0
	}
	return area
}

// Centroid returns the area centroid of the polygon in geographic space, or
// the vertex average when the polygon is degenerate or self-intersecting.
// Height is averaged.
func Centroid(points []core.GeodeticPoint) core.GeodeticPoint {
	if len(points) == 0 {
		return core.GeodeticPoint{}
	}
	unwrapped := UnwrapLongitudes(points)

	var mean core.GeodeticPoint
	for _, p := range unwrapped {
		mean.Longitude += p.Longitude
		mean.Latitude += p.Latitude
		mean.Height += p.Height
	}
	n := float64(len(unwrapped))
	mean.Longitude = normalizeLongitude(mean.Longitude / n)
	mean.Latitude /= n
	mean.Height /= n

	poly, err := Polygon(unwrapped, LonLatXY)
	if err != nil || poly.Area() == 0 {
		return mean
	}
	coords, ok := poly.Centroid().Coordinates()
	if !ok {
		return mean
	}
	return core.GeodeticPoint{
		Longitude: normalizeLongitude(coords.X),
		Latitude:  coords.Y,
		Height:    mean.Height,
	}
}

func normalizeLongitude(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}
