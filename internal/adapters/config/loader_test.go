package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"go.trai.ch/shed/internal/adapters/config"
	"go.trai.ch/shed/internal/core/domain"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "shed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return dir
}

func TestLoad_RustManifest(t *testing.T) {
	dir := writeManifest(t, `
version: "1"
snapshot: github:NixOS/nixpkgs/nixos-25.05
platforms:
  x86_64-linux:
    packages:
      - rustc
      - rust-analyzer
      - cargo
`)

	loader := &config.FileConfigLoader{Filename: "shed.yaml"}
	d, err := loader.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if d.Snapshot != "github:NixOS/nixpkgs/nixos-25.05" {
		t.Errorf("Snapshot = %q", d.Snapshot)
	}

	env, err := d.Resolve(domain.NewPlatform("x86_64-linux"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := []string{"rustc", "rust-analyzer", "cargo"}
	if got := env.PackageNames(); !slices.Equal(got, want) {
		t.Errorf("PackageNames() = %v, want %v", got, want)
	}
}

func TestLoad_DefaultSnapshot(t *testing.T) {
	dir := writeManifest(t, `
platforms:
  x86_64-linux:
    packages: [rustc]
`)

	loader := &config.FileConfigLoader{}
	d, err := loader.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.Snapshot != domain.DefaultSnapshot {
		t.Errorf("Snapshot = %q, want default %q", d.Snapshot, domain.DefaultSnapshot)
	}
}

func TestLoad_DuplicatePackagesDeduplicated(t *testing.T) {
	dir := writeManifest(t, `
platforms:
  x86_64-linux:
    packages: [rustc, cargo, rustc]
`)

	loader := &config.FileConfigLoader{}
	d, err := loader.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	env, _ := d.Resolve(domain.NewPlatform("x86_64-linux"))
	want := []string{"rustc", "cargo"}
	if got := env.PackageNames(); !slices.Equal(got, want) {
		t.Errorf("PackageNames() = %v, want %v", got, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		wantErr  error
	}{
		{
			name:     "no platforms",
			manifest: `version: "1"`,
			wantErr:  domain.ErrNoPlatformsDefined,
		},
		{
			name: "bad snapshot",
			manifest: `
snapshot: "nixpkgs"
platforms:
  x86_64-linux:
    packages: [rustc]
`,
			wantErr: domain.ErrInvalidSnapshotRef,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeManifest(t, tt.manifest)
			loader := &config.FileConfigLoader{}
			_, err := loader.Load(dir)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	dir := writeManifest(t, `
version: "9"
platforms:
  x86_64-linux:
    packages: [rustc]
`)

	loader := &config.FileConfigLoader{}
	if _, err := loader.Load(dir); err == nil {
		t.Error("Load() expected error for unsupported version")
	}
}

func TestLoad_EmptyPackageList(t *testing.T) {
	dir := writeManifest(t, `
platforms:
  x86_64-linux:
    packages: []
`)

	loader := &config.FileConfigLoader{}
	if _, err := loader.Load(dir); err == nil {
		t.Error("Load() expected error for empty package list")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	loader := &config.FileConfigLoader{}
	if _, err := loader.Load(t.TempDir()); err == nil {
		t.Error("Load() expected error for missing manifest")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := writeManifest(t, `
platforms:
  x86_64-linux:
    packages: [rustc]
env:
  RUST_BACKTRACE: "1"
`)

	loader := &config.FileConfigLoader{}
	d, err := loader.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.Overrides["RUST_BACKTRACE"] != "1" {
		t.Errorf("Overrides = %v, want RUST_BACKTRACE=1", d.Overrides)
	}
}
