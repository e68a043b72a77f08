package measure

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/globemeasure/measure/pkg/core"
)

const metersPerMile = 1609.344

// FormatLength renders a length in meters in the given unit.
func FormatLength(meters float64, unit core.Unit) string {
	switch unit {
	case core.UnitMeters:
		return number(meters, 2) + " m"
	case core.UnitMiles:
		return number(meters/metersPerMile, 2) + " mi"
	default:
		return number(meters/1000, 2) + " km"
	}
}

// FormatArea renders an area in square meters in the squared unit.
func FormatArea(squareMeters float64, unit core.Unit) string {
	switch unit {
	case core.UnitMeters:
		return number(squareMeters, 2) + " m²"
	case core.UnitMiles:
		return number(squareMeters/(metersPerMile*metersPerMile), 2) + " mi²"
	default:
		return number(squareMeters/1e6, 2) + " km²"
	}
}

// number rounds to the given decimals and adds thousands separators.
func number(v float64, decimals int) string {
	scale := math.Pow(10, float64(decimals))
	return humanize.CommafWithDigits(math.Round(v*scale)/scale, decimals)
}
