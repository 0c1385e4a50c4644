//nolint:testpackage // Exercises the unexported goos/goarch mapping directly
package domain

import (
	"errors"
	"testing"
)

func TestPlatformFor(t *testing.T) {
	tests := []struct {
		goos   string
		goarch string
		want   string
	}{
		{"linux", "amd64", "x86_64-linux"},
		{"linux", "arm64", "aarch64-linux"},
		{"darwin", "amd64", "x86_64-darwin"},
		{"darwin", "arm64", "aarch64-darwin"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			p, err := platformFor(tt.goos, tt.goarch)
			if err != nil {
				t.Fatalf("platformFor(%s, %s) error = %v", tt.goos, tt.goarch, err)
			}
			if p.String() != tt.want {
				t.Errorf("platformFor(%s, %s) = %s, want %s", tt.goos, tt.goarch, p, tt.want)
			}
		})
	}
}

func TestPlatformFor_Unknown(t *testing.T) {
	if _, err := platformFor("plan9", "amd64"); !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("error = %v, want ErrUnknownPlatform", err)
	}
	if _, err := platformFor("linux", "riscv64"); !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("error = %v, want ErrUnknownPlatform", err)
	}
}

func TestCurrentPlatform(t *testing.T) {
	// The test host is always one of the supported GOOS/GOARCH pairs in CI.
	p, err := CurrentPlatform()
	if err != nil {
		t.Skipf("host platform not mapped: %v", err)
	}
	if p.String() == "" {
		t.Error("CurrentPlatform() returned empty identifier")
	}
}
