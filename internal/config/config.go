package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/globemeasure/measure/internal/measure"
	"github.com/globemeasure/measure/pkg/core"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "globemeasure.cfg.json"

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./measurelogs")
	viper.SetDefault("logToFile", false)
	viper.SetDefault("units", string(core.UnitKilometers))

	viper.SetDefault("tooltip.enabled", true)

	viper.SetDefault("surface.distanceSamples", 50)
	viper.SetDefault("surface.pixelInterval", 0.0)
	viper.SetDefault("surface.splitNum", 10)

	viper.SetDefault("label.font", "16px sans-serif")
	viper.SetDefault("label.fillColor", "#ffffffff")
	viper.SetDefault("label.outlineColor", "#000000ff")
	viper.SetDefault("label.backgroundColor", "#2a2a2acc")
	viper.SetDefault("label.padding", 7.0)
	viper.SetDefault("label.scaleNear", 1.5e2)
	viper.SetDefault("label.scaleNearValue", 1.0)
	viper.SetDefault("label.scaleFar", 8e6)
	viper.SetDefault("label.scaleFarValue", 0.5)

	viper.SetDefault("locale.start", "start")
	viper.SetDefault("locale.total", "total")
	viper.SetDefault("locale.area", "area")
	viper.SetDefault("locale.drawHint", "left click to add a point, right click to finish")

	viper.SetDefault("viewport.width", 1920)
	viper.SetDefault("viewport.height", 1080)

	viper.SetDefault("terrain.kind", "flat")
	viper.SetDefault("terrain.height", 0.0)
	viper.SetDefault("terrain.amplitude", 50.0)
	viper.SetDefault("terrain.wavelength", 500.0)

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "globemeasure")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat returns a float config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}

// MeasureOptions maps the measurement keys onto measure options.
func MeasureOptions() ([]measure.Option, error) {
	style := measure.DefaultLabelStyle()
	style.Font = GetString("label.font")
	style.Padding = GetFloat("label.padding")

	var err error
	if style.FillColor, err = ParseColor(GetString("label.fillColor")); err != nil {
		return nil, fmt.Errorf("label.fillColor: %w", err)
	}
	if style.OutlineColor, err = ParseColor(GetString("label.outlineColor")); err != nil {
		return nil, fmt.Errorf("label.outlineColor: %w", err)
	}
	if style.BackgroundColor, err = ParseColor(GetString("label.backgroundColor")); err != nil {
		return nil, fmt.Errorf("label.backgroundColor: %w", err)
	}
	style.ScaleByDistance = &core.NearFarScalar{
		Near:      GetFloat("label.scaleNear"),
		NearValue: GetFloat("label.scaleNearValue"),
		Far:       GetFloat("label.scaleFar"),
		FarValue:  GetFloat("label.scaleFarValue"),
	}

	return []measure.Option{
		measure.WithUnit(core.ParseUnit(GetString("units"))),
		measure.WithTooltip(GetBool("tooltip.enabled")),
		measure.WithDistanceSamples(GetInt("surface.distanceSamples")),
		measure.WithPixelInterval(GetFloat("surface.pixelInterval")),
		measure.WithSplitNum(GetInt("surface.splitNum")),
		measure.WithLabelStyle(style),
		measure.WithLocale(measure.Locale{
			Start:    GetString("locale.start"),
			Total:    GetString("locale.total"),
			Area:     GetString("locale.area"),
			DrawHint: GetString("locale.drawHint"),
		}),
	}, nil
}

// ParseColor parses #rrggbb or #rrggbbaa.
func ParseColor(s string) (core.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return core.Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return core.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return core.Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// TerrainConfig selects the terrain model of the reference scene.
type TerrainConfig struct {
	Kind       string  `json:"kind" mapstructure:"kind"`
	Height     float64 `json:"height" mapstructure:"height"`
	Amplitude  float64 `json:"amplitude" mapstructure:"amplitude"`
	Wavelength float64 `json:"wavelength" mapstructure:"wavelength"`
}

// ViewportConfig is the pixel size of the reference camera.
type ViewportConfig struct {
	Width  int `json:"width" mapstructure:"width"`
	Height int `json:"height" mapstructure:"height"`
}

// InfluxConfig holds the performance sink settings.
type InfluxConfig struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Protocol string `json:"protocol" mapstructure:"protocol"`
	Token    string `json:"token" mapstructure:"token"`
	Org      string `json:"org" mapstructure:"org"`
}

// GetTerrainConfig returns the terrain settings.
func GetTerrainConfig() TerrainConfig {
	return TerrainConfig{
		Kind:       GetString("terrain.kind"),
		Height:     GetFloat("terrain.height"),
		Amplitude:  GetFloat("terrain.amplitude"),
		Wavelength: GetFloat("terrain.wavelength"),
	}
}

// GetViewportConfig returns the viewport settings.
func GetViewportConfig() ViewportConfig {
	return ViewportConfig{
		Width:  GetInt("viewport.width"),
		Height: GetInt("viewport.height"),
	}
}

// GetInfluxConfig returns the InfluxDB settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:  GetBool("influx.enabled"),
		Host:     GetString("influx.host"),
		Port:     GetString("influx.port"),
		Protocol: GetString("influx.protocol"),
		Token:    GetString("influx.token"),
		Org:      GetString("influx.org"),
	}
}
