// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Render   RenderConfig   `yaml:"render"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	MSAA       int  `yaml:"msaa"`
}

// RenderConfig holds molecular rendering settings.
type RenderConfig struct {
	Representation string  `yaml:"representation"` // lines, spheres, trace, tube, cartoon
	ColorMode      string  `yaml:"color_mode"`     // uniform, element, chain, ss, rainbow
	Gradient       string  `yaml:"gradient"`       // rainbow, heat, bluered
	Radius         float32 `yaml:"radius"`
	SphereRadius   float32 `yaml:"sphere_radius"`
	SplineDetail   int     `yaml:"spline_detail"`
	ArcDetail      int     `yaml:"arc_detail"`
	Strict         bool    `yaml:"strict"` // fail on chains with no backbone trace
	Background     string  `yaml:"background"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			MSAA:       4,
		},
		Render: RenderConfig{
			Representation: "cartoon",
			ColorMode:      "ss",
			Gradient:       "rainbow",
			Radius:         0.3,
			SphereRadius:   1.5,
			SplineDetail:   8,
			ArcDetail:      8,
			Strict:         false,
			Background:     "#333333",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
