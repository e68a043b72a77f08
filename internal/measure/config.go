package measure

import (
	"time"

	"github.com/globemeasure/measure/internal/surface"
	"github.com/globemeasure/measure/pkg/core"
)

// Locale holds the user-visible strings of the measurement labels.
type Locale struct {
	Start    string
	Total    string
	Area     string
	DrawHint string
}

// Recomputation describes one recomputation of a measurement result.
type Recomputation struct {
	Strategy string
	Surface  bool
	Points   int
	Result   core.MeasurementResult
	Duration time.Duration
	Stats    surface.Stats
}

// Config is built once per measurement and never mutated afterwards.
type Config struct {
	Unit         core.Unit
	LabelStyle   core.LabelStyle
	DynamicStyle core.ShapeStyle
	FinalStyle   core.ShapeStyle
	Locale       Locale

	FormatLength func(meters float64, unit core.Unit) string
	FormatArea   func(squareMeters float64, unit core.Unit) string

	TooltipEnabled bool

	// Surface sampling.
	DistanceSamples int
	PixelInterval   float64
	SplitNum        int

	OnChange    func(core.MeasurementResult)
	OnRecompute func(Recomputation)
	Logger      Logger
}

// Option overlays a field onto the default Config.
type Option func(*Config)

// DefaultLabelStyle is the label style used when none is configured.
func DefaultLabelStyle() core.LabelStyle {
	return core.LabelStyle{
		Font:            "16px sans-serif",
		FillColor:       core.Color{R: 255, G: 255, B: 255, A: 255},
		OutlineColor:    core.Color{A: 255},
		OutlineWidth:    2,
		BackgroundColor: core.Color{R: 42, G: 42, B: 42, A: 204},
		ShowBackground:  true,
		Padding:         7,
		Scale:           1,
		ScaleByDistance: &core.NearFarScalar{Near: 1.5e2, NearValue: 1, Far: 8e6, FarValue: 0.5},
	}
}

// DefaultLocale returns the english label strings.
func DefaultLocale() Locale {
	return Locale{
		Start:    "start",
		Total:    "total",
		Area:     "area",
		DrawHint: "left click to add a point, right click to finish",
	}
}

// NewConfig returns the defaults with every option applied in order.
func NewConfig(opts ...Option) Config {
	cfg := Config{
		Unit:       core.UnitKilometers,
		LabelStyle: DefaultLabelStyle(),
		DynamicStyle: core.ShapeStyle{
			Width:        2,
			Color:        core.Color{R: 255, G: 255, B: 0, A: 153},
			OutlineColor: core.Color{R: 255, G: 255, B: 0, A: 255},
		},
		FinalStyle: core.ShapeStyle{
			Width:        2,
			Color:        core.Color{R: 255, G: 255, B: 0, A: 102},
			OutlineColor: core.Color{R: 255, G: 255, B: 0, A: 255},
		},
		Locale:          DefaultLocale(),
		FormatLength:    FormatLength,
		FormatArea:      FormatArea,
		TooltipEnabled:  true,
		DistanceSamples: 50,
		SplitNum:        surface.DefaultSplitNum,
		Logger:          nopLogger{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}
	if cfg.FormatLength == nil {
		cfg.FormatLength = FormatLength
	}
	if cfg.FormatArea == nil {
		cfg.FormatArea = FormatArea
	}
	return cfg
}

// WithUnit sets the display unit.
func WithUnit(u core.Unit) Option {
	return func(c *Config) { c.Unit = u }
}

// WithLabelStyle replaces the label style.
func WithLabelStyle(s core.LabelStyle) Option {
	return func(c *Config) { c.LabelStyle = s }
}

// WithShapeStyles replaces the drawing preview and final styles.
func WithShapeStyles(dynamic, final core.ShapeStyle) Option {
	return func(c *Config) {
		c.DynamicStyle = dynamic
		c.FinalStyle = final
	}
}

// WithLocale replaces the label strings. Empty fields keep their default.
func WithLocale(l Locale) Option {
	return func(c *Config) {
		if l.Start != "" {
			c.Locale.Start = l.Start
		}
		if l.Total != "" {
			c.Locale.Total = l.Total
		}
		if l.Area != "" {
			c.Locale.Area = l.Area
		}
		if l.DrawHint != "" {
			c.Locale.DrawHint = l.DrawHint
		}
	}
}

// WithFormatters replaces the length and area formatters. A nil formatter
// keeps the default.
func WithFormatters(length func(float64, core.Unit) string, area func(float64, core.Unit) string) Option {
	return func(c *Config) {
		if length != nil {
			c.FormatLength = length
		}
		if area != nil {
			c.FormatArea = area
		}
	}
}

// WithTooltip enables or disables the mouse tooltip.
func WithTooltip(enabled bool) Option {
	return func(c *Config) { c.TooltipEnabled = enabled }
}

// WithDistanceSamples sets the interior samples per segment for surface
// distance.
func WithDistanceSamples(n int) Option {
	return func(c *Config) { c.DistanceSamples = n }
}

// WithPixelInterval samples surface distance every px pixels instead of a
// fixed count. Zero disables it.
func WithPixelInterval(px float64) Option {
	return func(c *Config) { c.PixelInterval = px }
}

// WithSplitNum sets the grid subdivision for surface area.
func WithSplitNum(n int) Option {
	return func(c *Config) { c.SplitNum = n }
}

// WithOnChange registers a callback invoked after every recomputation.
func WithOnChange(fn func(core.MeasurementResult)) Option {
	return func(c *Config) { c.OnChange = fn }
}

// WithRecomputeObserver registers a callback receiving timing and sampling
// details of every recomputation.
func WithRecomputeObserver(fn func(Recomputation)) Option {
	return func(c *Config) { c.OnRecompute = fn }
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(c *Config) { c.Logger = l }
}
