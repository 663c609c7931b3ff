// Package config handles bake tool configuration loading and management.
package config

// Config holds all settings for a border extension run.
type Config struct {
	Texture Texture `yaml:"texture"`
	Mask    Mask    `yaml:"mask"`
	Output  Output  `yaml:"output"`
	Logging Logging `yaml:"logging"`
}

// Texture holds the bake target settings the extender derives its
// resolvability limits from.
type Texture struct {
	// Resolution is the bake texture edge length in pixels, per tile.
	Resolution int `yaml:"resolution"`
	// UDIM places each island in the UDIM tile its UV bounds fall into
	// instead of a single 0-1 tile.
	UDIM bool `yaml:"udim"`
}

// Mask holds the island ownership mask settings.
type Mask struct {
	// DilateIterations bounds how far claimed mask cells grow into
	// unclaimed neighbors before extension runs.
	DilateIterations int `yaml:"dilate_iterations"`
}

// Output holds optional diagnostic output paths.
type Output struct {
	MaskPNG string `yaml:"mask_png"` // island ownership mask as PNG
	SVG     string `yaml:"svg"`      // islands and borders as SVG
}

// Logging holds logging settings.
type Logging struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Texture: Texture{
			Resolution: 1024,
			UDIM:       false,
		},
		Mask: Mask{
			DilateIterations: 10,
		},
		Output: Output{
			MaskPNG: "",
			SVG:     "",
		},
		Logging: Logging{
			Level:   "info",
			LogFile: "",
		},
	}
}
