package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagSteps     = flag.Int("steps", 0, "Number of fixed steps to run")
	flagDt        = flag.Float64("dt", 0, "Fixed time step in seconds")
	flagTelemetry = flag.String("telemetry", "", "Telemetry websocket listen address")
	flagShape     = flag.String("shape", "", "Hull shape: box, panel or wedge")
	flagSave      = flag.Bool("save-config", false, "Write the effective config to the user config directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSteps > 0 {
		cfg.Simulation.Steps = *flagSteps
	}
	if *flagDt > 0 {
		cfg.Simulation.FixedTimeStep = float32(*flagDt)
	}
	if *flagTelemetry != "" {
		cfg.Telemetry.Addr = *flagTelemetry
	}
	if *flagShape != "" {
		cfg.Hull.Shape = *flagShape
	}
}
