// Package surface approximates terrain-draped lengths and areas.
//
// Both engines lift geometry onto the rendered terrain by projecting world
// points into the current viewport and picking the terrain beneath the
// resulting pixels. The results are polyline and triangle approximations of
// the draped geometry: they converge to the true terrain quantity as the
// sample density grows but are never exact. A pick that finds no terrain
// drops the affected segment or triangle, so sparse terrain undercounts.
package surface

import (
	"errors"

	"github.com/globemeasure/measure/pkg/core"
)

// ErrMissingCollaborator is returned when an engine is built without a
// projector or picker.
var ErrMissingCollaborator = errors.New("surface: projector and picker are required")

// Projector maps a world point into the current viewport. It reports false
// when the point is behind the camera or off-screen.
type Projector interface {
	Project(core.WorldPoint) (core.ViewportPoint, bool)
}

// Picker intersects the camera ray through a pixel with the rendered
// terrain. It reports false when the ray hits no terrain.
type Picker interface {
	Pick(core.ViewportPoint) (core.WorldPoint, bool)
}

// Stats describes the sampling work of the last computation.
type Stats struct {
	Samples  int // terrain picks requested
	Misses   int // picks or projections that found nothing
	Elements int // segments or triangles evaluated
	Skipped  int // segments, triangles or pieces that contributed 0
	Pieces   int // non-empty clipped grid pieces (area only)
	Cached   int // picks served by the per-frame cache
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Samples += other.Samples
	s.Misses += other.Misses
	s.Elements += other.Elements
	s.Skipped += other.Skipped
	s.Pieces += other.Pieces
	s.Cached += other.Cached
}
