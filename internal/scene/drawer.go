package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/globemeasure/measure/internal/geo"
	"github.com/globemeasure/measure/internal/measure"
	"github.com/globemeasure/measure/pkg/core"
)

// circleSegments is the number of vertices of a drawn circle.
const circleSegments = 64

// ErrNotDrawing is returned when a vertex is edited without an active
// drawing session.
var ErrNotDrawing = errors.New("no active drawing session")

// ScriptDrawer is a drawing tool driven by explicit calls instead of mouse
// input. It emits OnPointsChange synchronously on every edit.
type ScriptDrawer struct {
	cfg    *measure.DrawConfig
	points core.PointSequence
}

func (d *ScriptDrawer) Start(cfg measure.DrawConfig) {
	d.cfg = &cfg
	d.points = nil
}

// Reset abandons the session. Later edits return ErrNotDrawing.
func (d *ScriptDrawer) Reset() {
	d.cfg = nil
	d.points = nil
}

// Active reports whether a session is in progress.
func (d *ScriptDrawer) Active() bool {
	return d.cfg != nil
}

// Shape returns the shape of the current session.
func (d *ScriptDrawer) Shape() core.ShapeKind {
	if d.cfg == nil {
		return ""
	}
	return d.cfg.Shape
}

// AddPoint appends a vertex. A point shape finishes on its first vertex;
// circles and rectangles take two defining vertices.
func (d *ScriptDrawer) AddPoint(p core.WorldPoint) error {
	if d.cfg == nil {
		return ErrNotDrawing
	}
	switch d.cfg.Shape {
	case core.ShapeCircle, core.ShapeRectangle:
		if len(d.points) == 2 {
			return fmt.Errorf("%s takes two points", d.cfg.Shape)
		}
	}
	d.points = append(d.points, p)
	d.emit()
	if d.cfg.Shape == core.ShapePoint {
		return d.Finish()
	}
	return nil
}

// MovePoint replaces the vertex at index i.
func (d *ScriptDrawer) MovePoint(i int, p core.WorldPoint) error {
	if d.cfg == nil {
		return ErrNotDrawing
	}
	if i < 0 || i >= len(d.points) {
		return fmt.Errorf("point index %d out of range [0, %d)", i, len(d.points))
	}
	d.points[i] = p
	d.emit()
	return nil
}

// Finish ends the session and hands the final shape to OnEnd.
func (d *ScriptDrawer) Finish() error {
	if d.cfg == nil {
		return ErrNotDrawing
	}
	cfg := d.cfg
	final := d.shape()
	d.cfg = nil
	d.points = nil
	if cfg.OnEnd != nil {
		cfg.OnEnd(final)
	}
	return nil
}

func (d *ScriptDrawer) emit() {
	if d.cfg.OnPointsChange != nil {
		d.cfg.OnPointsChange(d.shape())
	}
}

// shape expands the defining vertices into the emitted point sequence.
func (d *ScriptDrawer) shape() core.PointSequence {
	if len(d.points) < 2 {
		return d.points.Clone()
	}
	switch d.cfg.Shape {
	case core.ShapeRectangle:
		return rectangle(d.points[0], d.points[1])
	case core.ShapeCircle:
		return circle(d.points[0], d.points[1])
	default:
		return d.points.Clone()
	}
}

func rectangle(a, b core.WorldPoint) core.PointSequence {
	ga, gb := geo.FromWorld(a), geo.FromWorld(b)
	h := (ga.Height + gb.Height) / 2
	return geo.ToWorldAll([]core.GeodeticPoint{
		{Longitude: ga.Longitude, Latitude: ga.Latitude, Height: h},
		{Longitude: gb.Longitude, Latitude: ga.Latitude, Height: h},
		{Longitude: gb.Longitude, Latitude: gb.Latitude, Height: h},
		{Longitude: ga.Longitude, Latitude: gb.Latitude, Height: h},
	})
}

// circle approximates the circle through edge around center in Web
// Mercator space.
func circle(center, edge core.WorldPoint) core.PointSequence {
	gc, ge := geo.FromWorld(center), geo.FromWorld(edge)
	cx, cy := geo.MercatorFromLonLat(gc.Longitude, gc.Latitude)
	ex, ey := geo.MercatorFromLonLat(ge.Longitude, ge.Latitude)
	r := math.Hypot(ex-cx, ey-cy)

	points := make([]core.GeodeticPoint, circleSegments)
	for i := range points {
		theta := 2 * math.Pi * float64(i) / circleSegments
		lon, lat := geo.LonLatFromMercator(cx+r*math.Cos(theta), cy+r*math.Sin(theta))
		points[i] = core.GeodeticPoint{Longitude: lon, Latitude: lat, Height: gc.Height}
	}
	return geo.ToWorldAll(points)
}
