package geo

import (
	"errors"
	"strconv"
	"strings"

	"github.com/globemeasure/measure/pkg/core"
)

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// GeodeticFromString parses a string in the format "long,lat" or
// "long,lat,height" into a GeodeticPoint. Extra components are ignored.
func GeodeticFromString(coords string) (core.GeodeticPoint, error) {
	coordsSplit := strings.Split(coords, ",")
	if len(coordsSplit) < 2 {
		return core.GeodeticPoint{}, ErrInvalidCoordinates
	}
	long, err := strconv.ParseFloat(strings.TrimSpace(coordsSplit[0]), 64)
	if err != nil {
		return core.GeodeticPoint{}, ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(coordsSplit[1]), 64)
	if err != nil {
		return core.GeodeticPoint{}, ErrInvalidCoordinates
	}
	var height float64
	if len(coordsSplit) > 2 {
		height, err = strconv.ParseFloat(strings.TrimSpace(coordsSplit[2]), 64)
		if err != nil {
			return core.GeodeticPoint{}, ErrInvalidCoordinates
		}
	}
	if lat < -90 || lat > 90 {
		return core.GeodeticPoint{}, ErrInvalidCoordinates
	}
	return core.GeodeticPoint{Longitude: long, Latitude: lat, Height: height}, nil
}
