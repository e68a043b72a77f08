// pkg/core/types.go
package core

// WorldPoint is a Cartesian position in the rendering engine's world frame
// (earth-centered, earth-fixed, meters).
type WorldPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// GeodeticPoint is a position relative to the WGS84 ellipsoid.
type GeodeticPoint struct {
	Longitude float64 `json:"longitude"` // degrees
	Latitude  float64 `json:"latitude"`  // degrees
	Height    float64 `json:"height"`    // meters above the ellipsoid
}

// ViewportPoint is a pixel coordinate in the current camera projection.
// It is only meaningful for the frame it was computed in.
type ViewportPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointSequence is the ordered vertex list emitted by the drawing tool.
type PointSequence []WorldPoint

// Clone returns a copy that does not share storage with s.
func (s PointSequence) Clone() PointSequence {
	if s == nil {
		return nil
	}
	out := make(PointSequence, len(s))
	copy(out, s)
	return out
}

// ShapeKind selects the shape the drawing tool produces.
type ShapeKind string

const (
	ShapePoint     ShapeKind = "point"
	ShapePolyline  ShapeKind = "polyline"
	ShapePolygon   ShapeKind = "polygon"
	ShapeCircle    ShapeKind = "circle"
	ShapeRectangle ShapeKind = "rectangle"
)

// Quantity is what a measurement value represents.
type Quantity int

const (
	QuantityLength Quantity = iota // meters
	QuantityArea                   // square meters
)

func (q Quantity) String() string {
	switch q {
	case QuantityLength:
		return "length"
	case QuantityArea:
		return "area"
	default:
		return "unknown"
	}
}

// MeasurementResult is recomputed wholesale on every point sequence change.
type MeasurementResult struct {
	Quantity    Quantity
	Value       float64 // meters or square meters
	DisplayText string
}
