package measure

import (
	"github.com/globemeasure/measure/internal/surface"
	"github.com/globemeasure/measure/pkg/core"
)

// Viewer is the rendering context a measurement attaches to. It projects
// and picks against the current camera and hands out the scene and the
// drawing tool.
type Viewer interface {
	surface.Projector
	surface.Picker
	Scene() Scene
	Drawer() Drawer
}

// TooltipProvider is implemented by viewers that can show a mouse tooltip.
type TooltipProvider interface {
	NewTooltip() Tooltip
}

// Scene holds the primitive collections rendered by the viewer.
type Scene interface {
	AddLabelCollection() LabelCollection
	RemoveLabelCollection(LabelCollection)
}

// LabelHandle identifies a label within its collection.
type LabelHandle uint64

// LabelCollection renders world-anchored text.
type LabelCollection interface {
	Add(text string, anchor core.WorldPoint, style core.LabelStyle) LabelHandle
	Remove(LabelHandle)
	RemoveAll()
}

// Tooltip is the floating text that follows the mouse.
type Tooltip interface {
	Show(text string)
	Hide()
	Destroy()
}

// DrawConfig starts a drawing session. OnPointsChange must be invoked
// synchronously on every vertex add or move while the session is active.
type DrawConfig struct {
	Shape          core.ShapeKind
	OnPointsChange func(core.PointSequence)
	DynamicStyle   core.ShapeStyle
	FinalStyle     core.ShapeStyle
	OnEnd          func(core.PointSequence)
}

// Drawer is the interactive point drawing tool.
type Drawer interface {
	Start(DrawConfig)
	Reset()
}
