package core

// Color is an RGBA color with 0-255 channels.
type Color struct {
	R, G, B, A uint8
}

// NearFarScalar scales a label between two camera distances.
type NearFarScalar struct {
	Near      float64
	NearValue float64
	Far       float64
	FarValue  float64
}

// LabelStyle describes how measurement labels are rendered.
type LabelStyle struct {
	Font            string
	FillColor       Color
	OutlineColor    Color
	OutlineWidth    float64
	BackgroundColor Color
	ShowBackground  bool
	Padding         float64
	Scale           float64
	ScaleByDistance *NearFarScalar
}

// ShapeStyle describes the preview and final shape of the drawing tool.
type ShapeStyle struct {
	Width          float64
	Color          Color
	OutlineColor   Color
	ClampToTerrain bool
}

// Unit is the display unit system for formatted results.
type Unit string

const (
	UnitKilometers Unit = "kilometers"
	UnitMeters     Unit = "meters"
	UnitMiles      Unit = "miles"
)

// ParseUnit maps a config string to a Unit, falling back to kilometers.
func ParseUnit(s string) Unit {
	switch Unit(s) {
	case UnitMeters, UnitMiles, UnitKilometers:
		return Unit(s)
	case "m":
		return UnitMeters
	case "mi":
		return UnitMiles
	default:
		return UnitKilometers
	}
}
