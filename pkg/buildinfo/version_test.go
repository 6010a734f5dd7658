package buildinfo

import (
	"strings"
	"testing"
)

func TestAtlasVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	tests := map[string]string{"v1.2.3": "1.2.3", "dev": "dev", "0.4.0": "0.4.0"}
	for in, want := range tests {
		Version = in
		if got := AtlasVersion(); got != want {
			t.Errorf("AtlasVersion() with Version=%q = %q, want %q", in, got, want)
		}
	}
}

func TestString(t *testing.T) {
	s := String()
	for _, want := range []string{"version: ", "commit: ", "built: "} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
