package scene

import "github.com/globemeasure/measure/internal/measure"

// LogTooltip writes tooltip changes to a logger instead of the screen.
type LogTooltip struct {
	logger    measure.Logger
	text      string
	visible   bool
	destroyed bool
}

func (t *LogTooltip) Show(text string) {
	if t.destroyed {
		return
	}
	t.text = text
	t.visible = true
	t.logger.Debug("tooltip shown", "text", text)
}

func (t *LogTooltip) Hide() {
	if t.destroyed || !t.visible {
		return
	}
	t.visible = false
	t.logger.Debug("tooltip hidden")
}

func (t *LogTooltip) Destroy() {
	t.visible = false
	t.destroyed = true
}

// Text returns the last shown text.
func (t *LogTooltip) Text() string { return t.text }

// Visible reports whether the tooltip is shown.
func (t *LogTooltip) Visible() bool { return t.visible }

// Destroyed reports whether Destroy was called.
func (t *LogTooltip) Destroyed() bool { return t.destroyed }
