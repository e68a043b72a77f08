// Package viewport resamples straight pixel segments of the current frame.
//
// Samples are spaced evenly along the straight pixel line between two
// endpoints, not along the terrain arc the line covers. Accuracy of any
// terrain-following measurement built on top therefore scales with the sample
// count: more samples cost more terrain picks per frame.
package viewport

import (
	"math"

	"github.com/globemeasure/measure/pkg/core"
)

// DefaultSampleCount is the number of interior samples used when none is
// configured.
const DefaultSampleCount = 50

// Sample returns count+2 points from p0 to p1 inclusive, at equal fractions
// of the segment. A count <= 0 yields just the endpoints.
func Sample(p0, p1 core.ViewportPoint, count int) []core.ViewportPoint {
	if count <= 0 {
		return []core.ViewportPoint{p0, p1}
	}

	out := make([]core.ViewportPoint, 0, count+2)
	out = append(out, p0)
	steps := float64(count + 1)
	for i := 1; i <= count; i++ {
		t := float64(i) / steps
		out = append(out, Lerp(p0, p1, t))
	}
	return append(out, p1)
}

// SampleByInterval derives the interior sample count from the pixel length
// of the segment: one sample every interval pixels. A non-positive interval
// yields just the endpoints.
func SampleByInterval(p0, p1 core.ViewportPoint, interval float64) []core.ViewportPoint {
	if interval <= 0 {
		return []core.ViewportPoint{p0, p1}
	}
	n := int(math.Ceil(Distance(p0, p1)/interval)) - 1
	return Sample(p0, p1, n)
}

// Distance is the Euclidean pixel distance between two points.
func Distance(p0, p1 core.ViewportPoint) float64 {
	return math.Hypot(p1.X-p0.X, p1.Y-p0.Y)
}

// Lerp interpolates between p0 (t=0) and p1 (t=1).
func Lerp(p0, p1 core.ViewportPoint, t float64) core.ViewportPoint {
	return core.ViewportPoint{
		X: p0.X + (p1.X-p0.X)*t,
		Y: p0.Y + (p1.Y-p0.Y)*t,
	}
}
