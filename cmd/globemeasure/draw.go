package main

import (
	"fmt"
	"io"

	"github.com/globemeasure/measure/internal/geo"
	"github.com/globemeasure/measure/internal/measure"
	"github.com/globemeasure/measure/internal/scene"
	"github.com/globemeasure/measure/pkg/core"
)

// draw runs one full drawing session: start, one vertex per point, finish.
func draw(v *scene.Viewer, m *measure.Measure, points []core.GeodeticPoint) (core.MeasurementResult, error) {
	m.Start()
	d := v.ScriptDrawer()
	for i, p := range geo.ToWorldAll(points) {
		if err := d.AddPoint(p); err != nil {
			return core.MeasurementResult{}, fmt.Errorf("adding point %d: %w", i, err)
		}
	}
	if err := d.Finish(); err != nil {
		return core.MeasurementResult{}, fmt.Errorf("finishing drawing: %w", err)
	}
	return m.Result(), nil
}

func printLabels(w io.Writer, v *scene.Viewer) {
	for _, l := range v.Labels().Labels() {
		p := geo.FromWorld(l.Anchor)
		fmt.Fprintf(w, "  %-24s @ %.6f,%.6f,%.1f\n", l.Text, p.Longitude, p.Latitude, p.Height)
	}
}
