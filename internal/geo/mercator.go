package geo

import "github.com/wroge/wgs84"

// Web Mercator transforms. The repository is built once; each Func is
// stateless and safe to reuse.
var (
	epsg         = wgs84.EPSG()
	toMercator   = epsg.Transform(4326, 3857)
	fromMercator = epsg.Transform(3857, 4326)
)

// MercatorFromLonLat projects a longitude/latitude in degrees to EPSG:3857
// meters.
func MercatorFromLonLat(longitude, latitude float64) (x, y float64) {
	x, y, _ = toMercator(longitude, latitude, 0)
	return x, y
}

// LonLatFromMercator is the inverse of MercatorFromLonLat.
func LonLatFromMercator(x, y float64) (longitude, latitude float64) {
	longitude, latitude, _ = fromMercator(x, y, 0)
	return longitude, latitude
}
