package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/shed/internal/core/domain"
)

func TestResolvedPackage_InfoFor(t *testing.T) {
	pkg := domain.ResolvedPackage{
		Name:    domain.NewInternedString("rustc"),
		Version: domain.NewInternedString("1.84.0"),
		Platforms: map[string]domain.PackageInfo{
			"x86_64-linux": {
				AttrPath: domain.NewInternedString("rustc"),
				Rev:      domain.NewInternedString("abc123"),
			},
		},
	}

	info, err := pkg.InfoFor(domain.NewPlatform("x86_64-linux"))
	if err != nil {
		t.Fatalf("InfoFor() error = %v", err)
	}
	if info.Rev.String() != "abc123" {
		t.Errorf("Rev = %s, want abc123", info.Rev)
	}

	_, err = pkg.InfoFor(domain.NewPlatform("aarch64-darwin"))
	if !errors.Is(err, domain.ErrUnsupportedPlatform) {
		t.Errorf("InfoFor() error = %v, want ErrUnsupportedPlatform", err)
	}
}

func TestLockfile_PinAndLookup(t *testing.T) {
	lock := domain.NewLockfile("github:NixOS/nixpkgs/nixos-25.05")
	if lock.Version != domain.LockfileVersion {
		t.Errorf("Version = %d, want %d", lock.Version, domain.LockfileVersion)
	}

	lock.Pin(domain.ResolvedPackage{
		Name:    domain.NewInternedString("cargo"),
		Version: domain.NewInternedString("1.84.0"),
	})

	pkg, ok := lock.Lookup("cargo")
	if !ok {
		t.Fatal("Lookup(cargo) = false, want true")
	}
	if pkg.Version.String() != "1.84.0" {
		t.Errorf("Version = %s, want 1.84.0", pkg.Version)
	}

	if _, ok := lock.Lookup("rustc"); ok {
		t.Error("Lookup(rustc) = true, want false")
	}
}
