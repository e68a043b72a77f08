package geo

import (
	"math"

	"github.com/globemeasure/measure/pkg/core"
)

const (
	vincentyTolerance = 1e-12
	vincentyMaxIter   = 200
)

// GeodesicDistance returns the length in meters of the shortest path on the
// WGS84 ellipsoid between a and b. Heights are ignored.
//
// It solves the inverse problem with Vincenty's iteration and falls back to a
// great-circle distance on the mean sphere for nearly antipodal points where
// the iteration does not converge.
func GeodesicDistance(a, b core.GeodeticPoint) float64 {
	l := toRad(b.Longitude - a.Longitude)
	u1 := math.Atan((1 - Flattening) * math.Tan(toRad(a.Latitude)))
	u2 := math.Atan((1 - Flattening) * math.Tan(toRad(b.Latitude)))
	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	var (
		sinSigma, cosSigma, sigma float64
		cos2Alpha, cos2SigmaM     float64
		converged                 bool
	)

	lambda := l
	for i := 0; i < vincentyMaxIter; i++ {
		sinLambda, cosLambda := math.Sincos(lambda)
		sinSigma = math.Hypot(cosU2*sinLambda, cosU1*sinU2-sinU1*cosU2*cosLambda)
		if sinSigma == 0 {
			return 0
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cos2Alpha = 1 - sinAlpha*sinAlpha
		if cos2Alpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cos2Alpha
		} else {
			// equatorial line
			cos2SigmaM = 0
		}
		c := Flattening / 16 * cos2Alpha * (4 + Flattening*(4-3*cos2Alpha))
		prev := lambda
		lambda = l + (1-c)*Flattening*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		if math.Abs(lambda-prev) < vincentyTolerance {
			converged = true
			break
		}
	}

	if !converged {
		return greatCircleDistance(a, b)
	}

	uSq := cos2Alpha * (SemiMajorAxis*SemiMajorAxis - semiMinorAxis*semiMinorAxis) / (semiMinorAxis * semiMinorAxis)
	bigA := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	bigB := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := bigB * sinSigma * (cos2SigmaM + bigB/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		bigB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	return semiMinorAxis * bigA * (sigma - deltaSigma)
}

// greatCircleDistance is the haversine distance on the WGS84 mean sphere.
func greatCircleDistance(a, b core.GeodeticPoint) float64 {
	const meanRadius = (2*SemiMajorAxis + 6356752.314245) / 3
	lat1, lat2 := toRad(a.Latitude), toRad(b.Latitude)
	dLat := lat2 - lat1
	dLon := toRad(b.Longitude - a.Longitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * meanRadius * math.Asin(math.Min(1, math.Sqrt(h)))
}

// SlantDistance combines the geodesic surface distance with the height
// difference: sqrt(surface² + Δh²).
func SlantDistance(a, b core.GeodeticPoint) float64 {
	return math.Hypot(GeodesicDistance(a, b), b.Height-a.Height)
}

// PathLength sums the slant distance over consecutive points.
func PathLength(points []core.GeodeticPoint) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += SlantDistance(points[i-1], points[i])
	}
	return total
}
