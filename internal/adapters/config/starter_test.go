package config_test

import (
	"errors"
	"testing"

	"go.trai.ch/shed/internal/adapters/config"
	"go.trai.ch/shed/internal/core/domain"
)

func TestWriteStarterManifest(t *testing.T) {
	dir := t.TempDir()

	path, err := config.WriteStarterManifest(dir)
	if err != nil {
		t.Fatalf("WriteStarterManifest failed: %v", err)
	}

	// The starter manifest must load and declare the Rust toolchain for
	// x86_64-linux in declaration order.
	d, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load starter manifest: %v", err)
	}
	if d.Snapshot != domain.DefaultSnapshot {
		t.Errorf("unexpected snapshot: %q", d.Snapshot)
	}

	env, err := d.Resolve(domain.NewPlatform("x86_64-linux"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []string{"rustc", "rust-analyzer", "cargo"}
	got := env.PackageNames()
	if len(got) != len(want) {
		t.Fatalf("expected %d packages, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	// aarch64-darwin is not declared by the starter manifest.
	if _, err := d.Resolve(domain.NewPlatform("aarch64-darwin")); !errors.Is(err, domain.ErrUnsupportedPlatform) {
		t.Errorf("expected ErrUnsupportedPlatform, got %v", err)
	}
}

func TestWriteStarterManifest_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()

	if _, err := config.WriteStarterManifest(dir); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if _, err := config.WriteStarterManifest(dir); err == nil {
		t.Fatal("expected error on second write, got nil")
	}
}
