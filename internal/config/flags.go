package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagResolution = flag.Int("resolution", 0, "Bake texture resolution per tile")
	flagDilate     = flag.Int("dilate", -1, "Mask dilation iterations")
	flagUDIM       = flag.Bool("udim", false, "Assign islands to UDIM tiles")
	flagMaskPNG    = flag.String("mask-png", "", "Write island ownership mask to PNG file")
	flagSVG        = flag.String("svg", "", "Write island/border diagnostics to SVG file")
)

// ParseFlags parses the given command-line arguments into the shared flag
// set. Call this early in main(), after stripping the subcommand.
func ParseFlags(args []string) error {
	return flag.CommandLine.Parse(args)
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagResolution > 0 {
		cfg.Texture.Resolution = *flagResolution
	}
	if *flagDilate >= 0 {
		cfg.Mask.DilateIterations = *flagDilate
	}
	if *flagUDIM {
		cfg.Texture.UDIM = true
	}
	if *flagMaskPNG != "" {
		cfg.Output.MaskPNG = *flagMaskPNG
	}
	if *flagSVG != "" {
		cfg.Output.SVG = *flagSVG
	}
}
