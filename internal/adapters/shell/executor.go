// Package shell provides the shell session executor adapter.
package shell

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/shed/internal/core/ports"
	"go.trai.ch/zerr"
)

// defaultShell is used when the user's SHELL variable is unset.
const defaultShell = "/bin/sh"

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger

	// shellPath overrides SHELL lookup, used by tests.
	shellPath string
}

// NewExecutor creates a new shell Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// RunShell starts an interactive shell with the environment layered over the
// host environment. The session inherits the caller's stdio; RunShell blocks
// until the shell exits.
func (e *Executor) RunShell(ctx context.Context, env []string, overrides map[string]string) error {
	cmdEnv := resolveEnvironment(os.Environ(), env, overrides)

	shellPath := e.shellPath
	if shellPath == "" {
		shellPath = userShell()
	}

	e.logger.Info("entering shell session")

	//nolint:gosec // the shell is the user's own login shell
	cmd := exec.CommandContext(ctx, shellPath)
	cmd.Env = cmdEnv
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return wrapRunError(err, "shell session failed")
	}
	return nil
}

// RunCommand runs a single command inside the environment.
// Output streams to the caller's stdio.
func (e *Executor) RunCommand(ctx context.Context, argv []string, env []string, overrides map[string]string) error {
	if len(argv) == 0 {
		return nil
	}

	name := argv[0]
	args := argv[1:]
	cmdEnv := resolveEnvironment(os.Environ(), env, overrides)

	// Resolve the executable using the merged PATH so packages from the
	// environment win over host binaries.
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command

	// Preserve the original command name as invoked.
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}

	cmd.Env = cmdEnv
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return zerr.With(wrapRunError(err, "command failed"), "command", name)
	}
	return nil
}

func wrapRunError(err error, msg string) error {
	var exitCode int
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else {
		exitCode = -1
	}
	return zerr.With(zerr.Wrap(err, msg), "exit_code", exitCode)
}

// userShell returns the user's preferred shell, falling back to /bin/sh.
func userShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return defaultShell
}

// resolveEnvironment merges environments with the following priority (low to high):
// 1. base (host environment)
// 2. env (materialized environment; PATH is prepended to the host PATH)
// 3. overrides (manifest-declared variables)
func resolveEnvironment(base, env []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(base)+len(env)+len(overrides))

	for _, entry := range base {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	for _, entry := range env {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				envMap[k] = v + string(os.PathListSeparator) + sysPath
			} else {
				envMap[k] = v
			}
		} else {
			envMap[k] = v
		}
	}

	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of the given environment.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}

var _ ports.Executor = (*Executor)(nil)
