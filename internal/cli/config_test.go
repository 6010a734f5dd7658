package cli

import (
	"runtime"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Out != "dist" || cfg.Target != "web" || cfg.Addr != "127.0.0.1:8080" {
		t.Errorf("LoadConfig() = %+v", cfg)
	}
	if cfg.workers() != runtime.GOMAXPROCS(0) {
		t.Errorf("workers() = %d, want GOMAXPROCS", cfg.workers())
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PIXELFORGE_OUT", "build/out")
	t.Setenv("PIXELFORGE_TARGET", "p8")
	t.Setenv("PIXELFORGE_WORKERS", "3")
	t.Setenv("PIXELFORGE_VERBOSE", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Out != "build/out" || cfg.Target != "p8" || !cfg.Verbose {
		t.Errorf("LoadConfig() = %+v", cfg)
	}
	if cfg.workers() != 3 {
		t.Errorf("workers() = %d, want 3", cfg.workers())
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]string{
		"not a number": "many",
		"negative":     "-1",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("PIXELFORGE_WORKERS", value)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("LoadConfig() with PIXELFORGE_WORKERS=%q should fail", value)
			}
		})
	}
}
