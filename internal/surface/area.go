package surface

import (
	"math"

	"github.com/globemeasure/measure/internal/cache"
	"github.com/globemeasure/measure/internal/geo"
	"github.com/globemeasure/measure/pkg/core"
	"github.com/mmp/earcut-go"
	geom "github.com/peterstace/simplefeatures/geom"
)

// DefaultSplitNum is the grid subdivision used when none is configured.
const DefaultSplitNum = 10

// AreaConfig tunes the grid used by AreaEngine.
type AreaConfig struct {
	// SplitNum divides the polygon's bounding box into SplitNum x SplitNum
	// cells.
	SplitNum int
	// CacheSize bounds the per-frame pick cache.
	CacheSize int
}

// DefaultAreaConfig returns the defaults used when no config is given.
func DefaultAreaConfig() AreaConfig {
	return AreaConfig{
		SplitNum:  DefaultSplitNum,
		CacheSize: cache.DefaultPickCacheSize,
	}
}

// AreaEngine approximates the terrain-draped area of a polygon.
//
// The polygon's geographic footprint is cut by a regular grid over its
// bounding box. Every clipped piece is triangulated, each triangle vertex is
// lifted onto the terrain by projecting and picking, and the triangle's area
// is taken from its three slant edge lengths with Heron's formula. On flat
// terrain the slant lengths equal the chord lengths between lifted vertices,
// so the sum converges on the flat ellipsoidal area as SplitNum grows: finer
// cells keep each triangle closer to the curved surface.
//
// Footprints whose ring crosses itself have no well-defined interior; they
// yield 0 and count as skipped.
type AreaEngine struct {
	projector Projector
	picker    Picker
	cfg       AreaConfig
	picks     *cache.PickCache
	stats     Stats
}

// NewAreaEngine creates an AreaEngine.
func NewAreaEngine(projector Projector, picker Picker, cfg AreaConfig) (*AreaEngine, error) {
	if projector == nil || picker == nil {
		return nil, ErrMissingCollaborator
	}
	if cfg.SplitNum <= 0 {
		cfg.SplitNum = DefaultSplitNum
	}
	picks, err := cache.NewPickCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &AreaEngine{
		projector: projector,
		picker:    picker,
		cfg:       cfg,
		picks:     picks,
	}, nil
}

// Stats reports the sampling work of the last Area call.
func (e *AreaEngine) Stats() Stats {
	st := e.stats
	st.Cached = e.picks.Hits()
	return st
}

// Area returns the sampled surface area in square meters of the implicitly
// closed polygon. Fewer than 3 points, a self-intersecting ring or a
// degenerate footprint yield 0.
func (e *AreaEngine) Area(positions core.PointSequence) float64 {
	e.picks.Reset()
	e.stats = Stats{}

	if len(positions) < 3 {
		return 0
	}

	points := geo.UnwrapLongitudes(geo.FromWorldAll(positions))
	poly, err := geo.Polygon(points, geo.LonLatXY)
	if err != nil {
		e.stats.Skipped++
		return 0
	}
	if geo.PolygonArea(points) == 0 {
		return 0
	}
	footprint := poly.AsGeometry()

	var liftHeight float64
	for _, p := range points {
		liftHeight += p.Height
	}
	liftHeight /= float64(len(points))

	minX, minY, maxX, maxY := bounds(points)
	n := e.cfg.SplitNum
	dx := (maxX - minX) / float64(n)
	dy := (maxY - minY) / float64(n)

	var total float64
	for i := 0; i < n; i++ {
		x0, x1 := minX+float64(i)*dx, minX+float64(i+1)*dx
		if i == n-1 {
			x1 = maxX
		}
		for j := 0; j < n; j++ {
			y0, y1 := minY+float64(j)*dy, minY+float64(j+1)*dy
			if j == n-1 {
				y1 = maxY
			}
			cell, err := rectangle(x0, y0, x1, y1)
			if err != nil {
				e.stats.Skipped++
				continue
			}
			clipped, err := geom.Intersection(footprint, cell)
			if err != nil {
				e.stats.Skipped++
				continue
			}
			for _, piece := range polygonsOf(clipped) {
				total += e.pieceArea(piece, liftHeight)
			}
		}
	}
	return math.Max(total, 0)
}

func (e *AreaEngine) pieceArea(piece geom.Polygon, liftHeight float64) float64 {
	tris := triangulate(piece)
	if len(tris) == 0 {
		return 0
	}
	e.stats.Pieces++

	var area float64
	for _, tri := range tris {
		e.stats.Elements++
		var (
			lifted [3]core.GeodeticPoint
			missed bool
		)
		for k, xy := range tri {
			g, ok := e.lift(xy, liftHeight)
			if !ok {
				missed = true
				break
			}
			lifted[k] = g
		}
		if missed {
			e.stats.Skipped++
			continue
		}
		area += heron(
			geo.SlantDistance(lifted[0], lifted[1]),
			geo.SlantDistance(lifted[1], lifted[2]),
			geo.SlantDistance(lifted[2], lifted[0]),
		)
	}
	return area
}

// lift places a footprint vertex on the rendered terrain.
func (e *AreaEngine) lift(xy geom.XY, height float64) (core.GeodeticPoint, bool) {
	w := geo.ToWorld(core.GeodeticPoint{Longitude: xy.X, Latitude: xy.Y, Height: height})
	p, ok := e.projector.Project(w)
	if !ok {
		e.stats.Misses++
		return core.GeodeticPoint{}, false
	}
	e.stats.Samples++
	hit, ok := e.picks.Pick(p, e.picker.Pick)
	if !ok {
		e.stats.Misses++
		return core.GeodeticPoint{}, false
	}
	return geo.FromWorld(hit), true
}

func bounds(points []core.GeodeticPoint) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.Longitude)
		maxX = math.Max(maxX, p.Longitude)
		minY = math.Min(minY, p.Latitude)
		maxY = math.Max(maxY, p.Latitude)
	}
	return minX, minY, maxX, maxY
}

func rectangle(x0, y0, x1, y1 float64) (geom.Geometry, error) {
	seq := geom.NewSequence([]float64{
		x0, y0,
		x1, y0,
		x1, y1,
		x0, y1,
		x0, y0,
	}, geom.DimXY)
	ring, err := geom.NewLineString(seq)
	if err != nil {
		return geom.Geometry{}, err
	}
	poly, err := geom.NewPolygon([]geom.LineString{ring})
	if err != nil {
		return geom.Geometry{}, err
	}
	return poly.AsGeometry(), nil
}

// polygonsOf flattens the polygonal parts of a clipping result.
func polygonsOf(g geom.Geometry) []geom.Polygon {
	if g.IsEmpty() {
		return nil
	}
	switch g.Type() {
	case geom.TypePolygon:
		p, ok := g.AsPolygon()
		if !ok {
			return nil
		}
		return []geom.Polygon{p}
	case geom.TypeMultiPolygon:
		mp, ok := g.AsMultiPolygon()
		if !ok {
			return nil
		}
		out := make([]geom.Polygon, 0, mp.NumPolygons())
		for i := 0; i < mp.NumPolygons(); i++ {
			out = append(out, mp.PolygonN(i))
		}
		return out
	case geom.TypeGeometryCollection:
		gc, ok := g.AsGeometryCollection()
		if !ok {
			return nil
		}
		var out []geom.Polygon
		for i := 0; i < gc.NumGeometries(); i++ {
			out = append(out, polygonsOf(gc.GeometryN(i))...)
		}
		return out
	default:
		// points and lines along cell borders carry no area
		return nil
	}
}

// triangulate splits a polygon (with holes) into triangles.
func triangulate(p geom.Polygon) [][3]geom.XY {
	outer := ringVertices(p.ExteriorRing())
	if len(outer) < 3 {
		return nil
	}
	rings := [][]earcut.Vertex{outer}
	for i := 0; i < p.NumInteriorRings(); i++ {
		if hole := ringVertices(p.InteriorRingN(i)); len(hole) >= 3 {
			rings = append(rings, hole)
		}
	}

	var out [][3]geom.XY
	for _, tri := range earcut.Triangulate(earcut.Polygon{Rings: rings}) {
		var t [3]geom.XY
		for k, v := range tri.Vertices {
			t[k] = geom.XY{X: v.P[0], Y: v.P[1]}
		}
		out = append(out, t)
	}
	return out
}

// ringVertices returns the ring's vertices without the closing duplicate.
func ringVertices(ls geom.LineString) []earcut.Vertex {
	seq := ls.Coordinates()
	n := seq.Length()
	if n > 1 && seq.GetXY(0) == seq.GetXY(n-1) {
		n--
	}
	verts := make([]earcut.Vertex, n)
	for i := 0; i < n; i++ {
		xy := seq.GetXY(i)
		verts[i].P = [2]float64{xy.X, xy.Y}
	}
	return verts
}

// heron returns the area of a triangle with side lengths a, b, c using
// Kahan's numerically stable arrangement. Impossible triangles yield 0.
func heron(a, b, c float64) float64 {
	if a < b {
		a, b = b, a
	}
	if b < c {
		b, c = c, b
	}
	if a < b {
		a, b = b, a
	}
	p := (a + (b + c)) * (c - (a - b)) * (c + (a - b)) * (a + (b - c))
	if p <= 0 {
		return 0
	}
	return math.Sqrt(p) / 4
}
