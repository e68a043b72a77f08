// Package scene provides in-memory stand-ins for the rendering engine: a
// top-down camera over a terrain model, label collections, a scripted
// drawing tool and a logging tooltip. Together they form a measure.Viewer.
package scene

import (
	"github.com/globemeasure/measure/internal/measure"
	"github.com/globemeasure/measure/pkg/core"
)

// Viewer wires a camera, a scene and a drawing tool together.
type Viewer struct {
	camera   *Camera
	scene    *Scene
	drawer   *ScriptDrawer
	logger   measure.Logger
	tooltips []*LogTooltip
}

// NewViewer creates a viewer looking through camera. A nil logger discards
// tooltip output.
func NewViewer(camera *Camera, logger measure.Logger) *Viewer {
	if logger == nil {
		logger = discard{}
	}
	return &Viewer{
		camera: camera,
		scene:  &Scene{},
		drawer: &ScriptDrawer{},
		logger: logger,
	}
}

func (v *Viewer) Project(w core.WorldPoint) (core.ViewportPoint, bool) {
	return v.camera.Project(w)
}

func (v *Viewer) Pick(p core.ViewportPoint) (core.WorldPoint, bool) {
	return v.camera.Pick(p)
}

func (v *Viewer) Scene() measure.Scene   { return v.scene }
func (v *Viewer) Drawer() measure.Drawer { return v.drawer }

func (v *Viewer) NewTooltip() measure.Tooltip {
	t := &LogTooltip{logger: v.logger}
	v.tooltips = append(v.tooltips, t)
	return t
}

// Camera returns the viewer's camera.
func (v *Viewer) Camera() *Camera { return v.camera }

// Labels returns the concrete scene for inspection.
func (v *Viewer) Labels() *Scene { return v.scene }

// ScriptDrawer returns the concrete drawing tool for scripting.
func (v *Viewer) ScriptDrawer() *ScriptDrawer { return v.drawer }

// Tooltips returns every tooltip handed out.
func (v *Viewer) Tooltips() []*LogTooltip { return v.tooltips }

type discard struct{}

func (discard) Debug(string, ...any) {}
func (discard) Info(string, ...any)  {}
func (discard) Error(string, ...any) {}
