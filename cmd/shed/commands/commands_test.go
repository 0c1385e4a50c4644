package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.trai.ch/shed/cmd/shed/commands"
	"go.trai.ch/shed/internal/adapters/telemetry"
	"go.trai.ch/shed/internal/app"
	"go.trai.ch/shed/internal/core/domain"
	"go.trai.ch/shed/internal/core/ports/mocks"
	"go.trai.ch/shed/internal/engine/resolve"
	"go.uber.org/mock/gomock"
)

const testSnapshot = "github:NixOS/nixpkgs/nixos-25.05"

type cliFixture struct {
	cli        *commands.CLI
	out        *bytes.Buffer
	loader     *mocks.MockConfigLoader
	resolver   *mocks.MockSnapshotResolver
	manager    *mocks.MockPackageManager
	envFactory *mocks.MockEnvironmentFactory
	executor   *mocks.MockExecutor
	verifier   *mocks.MockVerifier
}

func newCLIFixture(t *testing.T, ctrl *gomock.Controller) *cliFixture {
	t.Helper()

	f := &cliFixture{
		out:        &bytes.Buffer{},
		loader:     mocks.NewMockConfigLoader(ctrl),
		resolver:   mocks.NewMockSnapshotResolver(ctrl),
		manager:    mocks.NewMockPackageManager(ctrl),
		envFactory: mocks.NewMockEnvironmentFactory(ctrl),
		executor:   mocks.NewMockExecutor(ctrl),
		verifier:   mocks.NewMockVerifier(ctrl),
	}

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	engine := resolve.NewEngine(f.resolver, f.manager, telemetry.NewNoOp(), logger)
	a := app.New(f.loader, engine, f.envFactory, f.executor, f.verifier, logger)
	app.WithPlatform(domain.NewPlatform("x86_64-linux"))(a)

	f.cli = commands.New(a)
	f.cli.SetOutput(f.out)
	return f
}

func starterDescriptor() *domain.Descriptor {
	d := domain.NewDescriptor(testSnapshot)
	d.AddEnvironment(domain.NewEnvironment(
		domain.NewPlatform("x86_64-linux"),
		[]domain.PackageReference{
			domain.NewPackageReference("rustc"),
			domain.NewPackageReference("rust-analyzer"),
			domain.NewPackageReference("cargo"),
		},
	))
	return d
}

func TestPlatforms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCLIFixture(t, ctrl)
	f.loader.EXPECT().Load(".").Return(starterDescriptor(), nil)

	f.cli.SetArgs([]string{"platforms"})
	if err := f.cli.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(f.out.String(), "x86_64-linux") {
		t.Errorf("expected platform in output, got %q", f.out.String())
	}
}

func TestResolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	f := newCLIFixture(t, ctrl)

	f.loader.EXPECT().Load(dir).Return(starterDescriptor(), nil)
	f.resolver.EXPECT().
		Resolve(gomock.Any(), testSnapshot, gomock.Any(), domain.NewPlatform("x86_64-linux")).
		DoAndReturn(func(_ context.Context, _ string, ref domain.PackageReference, _ domain.Platform) (domain.ResolvedPackage, error) {
			return domain.ResolvedPackage{
				Name:    ref.Name,
				Version: domain.NewInternedString("1.84.0"),
				Platforms: map[string]domain.PackageInfo{
					"x86_64-linux": {AttrPath: ref.Name, Rev: domain.NewInternedString("abc123")},
				},
			}, nil
		}).
		Times(3)
	f.manager.EXPECT().
		Install(gomock.Any(), gomock.Any(), "abc123", gomock.Any()).
		Return("/nix/store/aaa-pkg", nil).
		Times(3)
	f.verifier.EXPECT().VerifyStorePaths(gomock.Any()).Return("", true, nil)

	f.cli.SetArgs([]string{"resolve", "-C", dir})
	if err := f.cli.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	output := f.out.String()
	for _, name := range []string{"rustc", "rust-analyzer", "cargo"} {
		if !strings.Contains(output, name) {
			t.Errorf("expected %q in output, got %q", name, output)
		}
	}
}

func TestShell_RunsCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	f := newCLIFixture(t, ctrl)

	f.loader.EXPECT().Load(dir).Return(starterDescriptor(), nil)
	f.resolver.EXPECT().
		Resolve(gomock.Any(), testSnapshot, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, ref domain.PackageReference, _ domain.Platform) (domain.ResolvedPackage, error) {
			return domain.ResolvedPackage{
				Name: ref.Name,
				Platforms: map[string]domain.PackageInfo{
					"x86_64-linux": {AttrPath: ref.Name, Rev: domain.NewInternedString("abc123")},
				},
			}, nil
		}).
		Times(3)
	f.manager.EXPECT().
		Install(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("/nix/store/aaa-pkg", nil).
		Times(3)
	f.verifier.EXPECT().VerifyStorePaths(gomock.Any()).Return("", true, nil)
	f.envFactory.EXPECT().
		Materialize(gomock.Any(), testSnapshot, gomock.Any()).
		Return([]string{"PATH=/nix/store/aaa-pkg/bin"}, nil)
	f.executor.EXPECT().
		RunCommand(gomock.Any(), []string{"cargo", "build"}, gomock.Any(), gomock.Any()).
		Return(nil)

	f.cli.SetArgs([]string{"shell", "-C", dir, "--", "cargo", "build"})
	if err := f.cli.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
}

func TestInit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	f := newCLIFixture(t, ctrl)

	f.cli.SetArgs([]string{"init", "-C", dir})
	if err := f.cli.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "shed.yaml")); err != nil {
		t.Errorf("expected manifest to exist: %v", err)
	}
}

func TestVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCLIFixture(t, ctrl)

	f.cli.SetArgs([]string{"version"})
	if err := f.cli.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(f.out.String(), "shed version") {
		t.Errorf("unexpected version output: %q", f.out.String())
	}
}

func TestRoot_Help(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newCLIFixture(t, ctrl)

	f.cli.SetArgs([]string{"--help"})
	if err := f.cli.Execute(context.Background()); err != nil {
		t.Errorf("expected no error for help, got: %v", err)
	}
}
