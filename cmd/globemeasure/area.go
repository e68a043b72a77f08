package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/simplify"
	"github.com/spf13/cobra"

	"github.com/globemeasure/measure/internal/geo"
	"github.com/globemeasure/measure/internal/measure"
	"github.com/globemeasure/measure/pkg/core"
)

// polygon is one outer ring to measure.
type polygon struct {
	name string
	ring []core.GeodeticPoint
}

func newAreaCmd(a *app) *cobra.Command {
	var (
		file      string
		surface   bool
		labels    bool
		tolerance float64
	)

	cmd := &cobra.Command{
		Use:   "area [ring JSON]",
		Short: "Measure the area of polygons",
		Long: `Measure the area of a polygon given as a JSON ring
([[lon,lat],[lon,lat],...]) or of every polygon in a GeoJSON file.

Only outer rings are measured. With --surface the area is draped over the
configured terrain.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var polygons []polygon
			switch {
			case file != "":
				data, err := readInput(cmd, file)
				if err != nil {
					return err
				}
				if polygons, err = readPolygons(data, tolerance); err != nil {
					return err
				}
			case len(args) == 1:
				ring, err := geo.ParseRing(args[0])
				if err != nil {
					return err
				}
				polygons = []polygon{{name: "ring", ring: ring}}
			default:
				return fmt.Errorf("either a ring or --file is required")
			}

			opts, err := a.measureOptions()
			if err != nil {
				return err
			}
			for _, p := range polygons {
				if err := a.measureArea(p, surface, labels, opts); err != nil {
					return fmt.Errorf("%s: %w", p.name, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "GeoJSON file (- for stdin)")
	cmd.Flags().BoolVar(&surface, "surface", false, "drape the polygon over the terrain surface")
	cmd.Flags().BoolVar(&labels, "labels", false, "print the placed labels")
	cmd.Flags().Float64Var(&tolerance, "simplify", 0, "Douglas-Peucker tolerance in degrees applied to GeoJSON rings")
	return cmd
}

func (a *app) measureArea(p polygon, surface, labels bool, opts []measure.Option) error {
	v, err := a.newViewer(p.ring)
	if err != nil {
		return err
	}
	var am *measure.AreaMeasure
	if surface {
		am, err = measure.NewAreaSurfaceMeasure(v, opts...)
	} else {
		am, err = measure.NewAreaMeasure(v, opts...)
	}
	if err != nil {
		return err
	}
	defer am.Destroy()

	res, err := draw(v, am.Measure, p.ring)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s %s: %s (%.1f m²)\n", p.name, am.Strategy().Name(), res.DisplayText, res.Value)
	if labels {
		printLabels(a.out, v)
	}
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// readPolygons extracts the outer rings of every Polygon and MultiPolygon in
// a FeatureCollection, Feature or bare geometry.
func readPolygons(data []byte, tolerance float64) ([]polygon, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parsing GeoJSON: %w", err)
	}

	var features []*geojson.Feature
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parsing GeoJSON: %w", err)
		}
		features = fc.Features
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("parsing GeoJSON: %w", err)
		}
		features = []*geojson.Feature{f}
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("parsing GeoJSON: %w", err)
		}
		features = []*geojson.Feature{geojson.NewFeature(g.Geometry())}
	}

	var out []polygon
	for i, f := range features {
		name := f.Properties.MustString("name", fmt.Sprintf("feature %d", i+1))
		var polys []orb.Polygon
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			polys = []orb.Polygon{g}
		case orb.MultiPolygon:
			polys = g
		default:
			continue
		}
		for j, poly := range polys {
			if len(poly) == 0 {
				continue
			}
			ring := poly[0]
			if tolerance > 0 {
				if r, ok := simplify.DouglasPeucker(tolerance).Simplify(ring.Clone()).(orb.Ring); ok {
					ring = r
				}
			}
			pn := name
			if len(polys) > 1 {
				pn = fmt.Sprintf("%s[%d]", name, j)
			}
			points := ringPoints(ring)
			if len(points) < 3 {
				return nil, fmt.Errorf("%s: ring must have at least 3 points, got %d", pn, len(points))
			}
			out = append(out, polygon{name: pn, ring: points})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no polygons found")
	}
	return out, nil
}

// ringPoints converts a GeoJSON ring, dropping the closing vertex.
func ringPoints(ring orb.Ring) []core.GeodeticPoint {
	if len(ring) > 1 && ring.Closed() {
		ring = ring[:len(ring)-1]
	}
	points := make([]core.GeodeticPoint, len(ring))
	for i, p := range ring {
		points[i] = core.GeodeticPoint{Longitude: p.Lon(), Latitude: p.Lat()}
	}
	return points
}
