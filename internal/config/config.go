package config

// Config collects the runtime settings. They come from flags only; nothing
// is persisted between runs.
type Config struct {
	// Device is the input device name; empty means the platform default.
	Device string
	// Burst starts the visualizer in burst mode instead of linear.
	Burst bool

	ParticleCount int
	FFTSize       int
	SampleRate    int

	WindowWidth  int
	WindowHeight int

	LogLevel string
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		ParticleCount: 500,
		FFTSize:       256,
		SampleRate:    44100,
		WindowWidth:   960,
		WindowHeight:  720,
		LogLevel:      "info",
	}
}
