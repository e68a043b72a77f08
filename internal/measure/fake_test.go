package measure

import (
	"github.com/globemeasure/measure/internal/geo"
	"github.com/globemeasure/measure/pkg/core"
)

const (
	metersPerDegLat = 110574.2727
	metersPerDegLon = 111319.4908
)

type fakeLabel struct {
	text   string
	anchor core.WorldPoint
}

type fakeLabels struct {
	next   LabelHandle
	labels map[LabelHandle]fakeLabel
	adds   int
}

func (l *fakeLabels) Add(text string, anchor core.WorldPoint, style core.LabelStyle) LabelHandle {
	l.next++
	l.adds++
	l.labels[l.next] = fakeLabel{text: text, anchor: anchor}
	return l.next
}

func (l *fakeLabels) Remove(h LabelHandle) { delete(l.labels, h) }
func (l *fakeLabels) RemoveAll()           { clear(l.labels) }

// texts returns the label texts in insertion order.
func (l *fakeLabels) texts() []string {
	var out []string
	for h := LabelHandle(1); h <= l.next; h++ {
		if lb, ok := l.labels[h]; ok {
			out = append(out, lb.text)
		}
	}
	return out
}

type fakeScene struct {
	collections []*fakeLabels
	removed     int
}

func (s *fakeScene) AddLabelCollection() LabelCollection {
	c := &fakeLabels{labels: make(map[LabelHandle]fakeLabel)}
	s.collections = append(s.collections, c)
	return c
}

func (s *fakeScene) RemoveLabelCollection(LabelCollection) { s.removed++ }

type fakeDrawer struct {
	starts int
	resets int
	cfg    DrawConfig
}

func (d *fakeDrawer) Start(cfg DrawConfig) {
	d.starts++
	d.cfg = cfg
}

func (d *fakeDrawer) Reset() { d.resets++ }

func (d *fakeDrawer) emit(points ...core.WorldPoint) {
	d.cfg.OnPointsChange(core.PointSequence(points))
}

type fakeTooltip struct {
	text      string
	visible   bool
	destroyed bool
}

func (t *fakeTooltip) Show(text string) {
	t.text = text
	t.visible = true
}
func (t *fakeTooltip) Hide()    { t.visible = false }
func (t *fakeTooltip) Destroy() { t.destroyed = true }

// fakeViewer looks straight down on flat terrain at height zero, one degree
// per 1e5 pixels.
type fakeViewer struct {
	scene    *fakeScene
	drawer   *fakeDrawer
	tooltips []*fakeTooltip
}

func newFakeViewer() *fakeViewer {
	return &fakeViewer{scene: &fakeScene{}, drawer: &fakeDrawer{}}
}

func (v *fakeViewer) Scene() Scene   { return v.scene }
func (v *fakeViewer) Drawer() Drawer { return v.drawer }

func (v *fakeViewer) NewTooltip() Tooltip {
	t := &fakeTooltip{}
	v.tooltips = append(v.tooltips, t)
	return t
}

func (v *fakeViewer) Project(w core.WorldPoint) (core.ViewportPoint, bool) {
	g := geo.FromWorld(w)
	return core.ViewportPoint{X: g.Longitude * 1e5, Y: -g.Latitude * 1e5}, true
}

func (v *fakeViewer) Pick(p core.ViewportPoint) (core.WorldPoint, bool) {
	return geo.ToWorld(core.GeodeticPoint{Longitude: p.X / 1e5, Latitude: -p.Y / 1e5}), true
}

func (v *fakeViewer) labels() *fakeLabels {
	return v.scene.collections[len(v.scene.collections)-1]
}

// bareViewer has no tooltip capability.
type bareViewer struct {
	scene  Scene
	drawer Drawer
}

func (v *bareViewer) Scene() Scene   { return v.scene }
func (v *bareViewer) Drawer() Drawer { return v.drawer }
func (v *bareViewer) Project(core.WorldPoint) (core.ViewportPoint, bool) {
	return core.ViewportPoint{}, false
}
func (v *bareViewer) Pick(core.ViewportPoint) (core.WorldPoint, bool) {
	return core.WorldPoint{}, false
}

func world(lon, lat, h float64) core.WorldPoint {
	return geo.ToWorld(core.GeodeticPoint{Longitude: lon, Latitude: lat, Height: h})
}

func kilometerSquare() core.PointSequence {
	dLon := 1000 / metersPerDegLon
	dLat := 1000 / metersPerDegLat
	return core.PointSequence{
		world(0, 0, 0),
		world(dLon, 0, 0),
		world(dLon, dLat, 0),
		world(0, dLat, 0),
	}
}
