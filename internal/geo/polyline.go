package geo

import (
	"encoding/json"
	"fmt"

	"github.com/globemeasure/measure/pkg/core"
)

// ParsePolyline parses a JSON array of coordinates into geodetic points.
// Input format: "[[lon1,lat1],[lon2,lat2,h2],...]"
func ParsePolyline(input string) ([]core.GeodeticPoint, error) {
	return parseCoordinates(input, 2, "polyline")
}

// ParseRing parses a JSON array of polygon vertices. The ring may be given
// open or closed; a closing vertex equal to the first is dropped.
func ParseRing(input string) ([]core.GeodeticPoint, error) {
	points, err := parseCoordinates(input, 3, "ring")
	if err != nil {
		return nil, err
	}
	if len(points) > 3 && points[0] == points[len(points)-1] {
		points = points[:len(points)-1]
	}
	return points, nil
}

func parseCoordinates(input string, minPoints int, what string) ([]core.GeodeticPoint, error) {
	var coords [][]float64
	if err := json.Unmarshal([]byte(input), &coords); err != nil {
		return nil, fmt.Errorf("failed to parse %s JSON: %w", what, err)
	}

	if len(coords) < minPoints {
		return nil, fmt.Errorf("%s must have at least %d points, got %d", what, minPoints, len(coords))
	}

	points := make([]core.GeodeticPoint, len(coords))
	for i, coord := range coords {
		if len(coord) < 2 {
			return nil, fmt.Errorf("coordinate %d has insufficient values", i)
		}
		points[i] = core.GeodeticPoint{Longitude: coord[0], Latitude: coord[1]}
		if len(coord) > 2 {
			points[i].Height = coord[2]
		}
	}

	return points, nil
}
