package cli

import (
	"fmt"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// Config holds settings read from the environment. Command-line flags
// default to these values, so a flag overrides the environment, which in turn
// overrides the target profile.
type Config struct {
	// Out is the output directory of build.
	Out string `env:"PIXELFORGE_OUT" envDefault:"dist"`
	// Target is the default target profile.
	Target string `env:"PIXELFORGE_TARGET" envDefault:"web"`
	// Workers bounds concurrent rendering; zero means one per CPU.
	Workers int `env:"PIXELFORGE_WORKERS" envDefault:"0"`
	// Verbose enables debug logging.
	Verbose bool `env:"PIXELFORGE_VERBOSE"`
	// Addr is the listen address of serve.
	Addr string `env:"PIXELFORGE_ADDR" envDefault:"127.0.0.1:8080"`
}

// LoadConfig reads the configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Workers < 0 {
		return Config{}, fmt.Errorf("parse env: PIXELFORGE_WORKERS must not be negative")
	}
	return cfg, nil
}

// workers resolves the worker count.
func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}
