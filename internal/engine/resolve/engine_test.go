package resolve_test

import (
	"context"
	"errors"
	"testing"

	"go.trai.ch/shed/internal/adapters/telemetry"
	"go.trai.ch/shed/internal/core/domain"
	"go.trai.ch/shed/internal/core/ports/mocks"
	"go.trai.ch/shed/internal/engine/resolve"
	"go.uber.org/mock/gomock"
)

const testSnapshot = "github:NixOS/nixpkgs/nixos-25.05"

func testEnvironment() domain.Environment {
	return domain.NewEnvironment(
		domain.NewPlatform("x86_64-linux"),
		[]domain.PackageReference{
			domain.NewPackageReference("rustc"),
			domain.NewPackageReference("rust-analyzer"),
			domain.NewPackageReference("cargo"),
		},
	)
}

func pinnedPackage(name, rev string) domain.ResolvedPackage {
	return domain.ResolvedPackage{
		Name:    domain.NewInternedString(name),
		Version: domain.NewInternedString("1.84.0"),
		Platforms: map[string]domain.PackageInfo{
			"x86_64-linux": {
				AttrPath: domain.NewInternedString(name),
				Rev:      domain.NewInternedString(rev),
			},
		},
	}
}

func newTestEngine(t *testing.T, ctrl *gomock.Controller) (*resolve.Engine, *mocks.MockSnapshotResolver, *mocks.MockPackageManager) {
	t.Helper()

	resolver := mocks.NewMockSnapshotResolver(ctrl)
	manager := mocks.NewMockPackageManager(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	engine := resolve.NewEngine(resolver, manager, telemetry.NewNoOp(), logger)
	return engine, resolver, manager
}

func TestEngine_Resolve_PreservesDeclarationOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, resolver, _ := newTestEngine(t, ctrl)
	env := testEnvironment()

	resolver.EXPECT().
		Resolve(gomock.Any(), testSnapshot, gomock.Any(), env.Platform).
		DoAndReturn(func(_ context.Context, _ string, ref domain.PackageReference, _ domain.Platform) (domain.ResolvedPackage, error) {
			return pinnedPackage(ref.String(), "abc123"), nil
		}).
		Times(3)

	packages, err := engine.Resolve(context.Background(), testSnapshot, env, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	want := []string{"rustc", "rust-analyzer", "cargo"}
	if len(packages) != len(want) {
		t.Fatalf("expected %d packages, got %d", len(want), len(packages))
	}
	for i, name := range want {
		if packages[i].Name.String() != name {
			t.Errorf("position %d: expected %q, got %q", i, name, packages[i].Name.String())
		}
	}
}

func TestEngine_Resolve_UnresolvedPackage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, resolver, _ := newTestEngine(t, ctrl)
	env := testEnvironment()

	resolver.EXPECT().
		Resolve(gomock.Any(), testSnapshot, gomock.Any(), env.Platform).
		DoAndReturn(func(_ context.Context, _ string, ref domain.PackageReference, _ domain.Platform) (domain.ResolvedPackage, error) {
			if ref.String() == "rust-analyzer" {
				return domain.ResolvedPackage{}, domain.ErrUnresolvedPackage
			}
			return pinnedPackage(ref.String(), "abc123"), nil
		}).
		AnyTimes()

	_, err := engine.Resolve(context.Background(), testSnapshot, env, nil)
	if !errors.Is(err, domain.ErrUnresolvedPackage) {
		t.Fatalf("expected ErrUnresolvedPackage, got %v", err)
	}
}

func TestEngine_Resolve_ReusesLockfilePins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, resolver, _ := newTestEngine(t, ctrl)
	env := testEnvironment()

	lock := domain.NewLockfile(testSnapshot)
	lock.Pin(pinnedPackage("rustc", "locked"))
	lock.Pin(pinnedPackage("cargo", "locked"))

	// Only rust-analyzer is missing from the lockfile.
	resolver.EXPECT().
		Resolve(gomock.Any(), testSnapshot, domain.NewPackageReference("rust-analyzer"), env.Platform).
		Return(pinnedPackage("rust-analyzer", "fresh"), nil)

	packages, err := engine.Resolve(context.Background(), testSnapshot, env, lock)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	info, err := packages[0].InfoFor(env.Platform)
	if err != nil {
		t.Fatalf("InfoFor failed: %v", err)
	}
	if info.Rev.String() != "locked" {
		t.Errorf("expected rustc pin from lockfile, got rev %q", info.Rev.String())
	}
}

func TestEngine_Resolve_IgnoresStaleLockfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, resolver, _ := newTestEngine(t, ctrl)
	env := testEnvironment()

	// Pins resolved against a different snapshot must not be reused.
	lock := domain.NewLockfile("github:NixOS/nixpkgs/nixos-24.11")
	lock.Pin(pinnedPackage("rustc", "stale"))
	lock.Pin(pinnedPackage("rust-analyzer", "stale"))
	lock.Pin(pinnedPackage("cargo", "stale"))

	resolver.EXPECT().
		Resolve(gomock.Any(), testSnapshot, gomock.Any(), env.Platform).
		DoAndReturn(func(_ context.Context, _ string, ref domain.PackageReference, _ domain.Platform) (domain.ResolvedPackage, error) {
			return pinnedPackage(ref.String(), "fresh"), nil
		}).
		Times(3)

	packages, err := engine.Resolve(context.Background(), testSnapshot, env, lock)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	info, err := packages[0].InfoFor(env.Platform)
	if err != nil {
		t.Fatalf("InfoFor failed: %v", err)
	}
	if info.Rev.String() != "fresh" {
		t.Errorf("expected fresh pin, got rev %q", info.Rev.String())
	}
}

func TestEngine_Install(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, _, manager := newTestEngine(t, ctrl)
	platform := domain.NewPlatform("x86_64-linux")

	packages := []domain.ResolvedPackage{
		pinnedPackage("rustc", "abc123"),
		pinnedPackage("cargo", "abc123"),
	}

	manager.EXPECT().
		Install(gomock.Any(), "rustc", "abc123", platform).
		Return("/nix/store/aaa-rustc-1.84.0", nil)
	manager.EXPECT().
		Install(gomock.Any(), "cargo", "abc123", platform).
		Return("/nix/store/bbb-cargo-1.84.0", nil)

	installed, err := engine.Install(context.Background(), packages, platform)
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	info, err := installed[0].InfoFor(platform)
	if err != nil {
		t.Fatalf("InfoFor failed: %v", err)
	}
	if info.StorePath.String() != "/nix/store/aaa-rustc-1.84.0" {
		t.Errorf("unexpected store path: %q", info.StorePath.String())
	}
}

func TestEngine_Install_SkipsMaterializedPackages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, _, manager := newTestEngine(t, ctrl)
	platform := domain.NewPlatform("x86_64-linux")

	pkg := pinnedPackage("rustc", "abc123")
	info := pkg.Platforms["x86_64-linux"]
	info.StorePath = domain.NewInternedString("/nix/store/aaa-rustc-1.84.0")
	pkg.Platforms["x86_64-linux"] = info

	manager.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	installed, err := engine.Install(context.Background(), []domain.ResolvedPackage{pkg}, platform)
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	got, err := installed[0].InfoFor(platform)
	if err != nil {
		t.Fatalf("InfoFor failed: %v", err)
	}
	if got.StorePath.String() != "/nix/store/aaa-rustc-1.84.0" {
		t.Errorf("store path changed: %q", got.StorePath.String())
	}
}

func TestEngine_Install_UnsupportedPlatform(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, _, manager := newTestEngine(t, ctrl)
	manager.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	packages := []domain.ResolvedPackage{pinnedPackage("rustc", "abc123")}

	_, err := engine.Install(context.Background(), packages, domain.NewPlatform("aarch64-darwin"))
	if !errors.Is(err, domain.ErrUnsupportedPlatform) {
		t.Fatalf("expected ErrUnsupportedPlatform, got %v", err)
	}
}
