// Package runner executes external toolchain processes.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
)

// CommandRunner is an interface for executing commands and getting the
// output and exit code, so callers can be tested without real toolchains.
type CommandRunner interface {
	// Run executes the command and returns its combined output.
	Run(ctx context.Context, args ...string) (string, error)
	// RunStreaming executes the command with stdout/stderr wired through to
	// the parent process and returns the child's exit code.
	RunStreaming(ctx context.Context, args ...string) (int, error)
}

type DefaultCommandRunner struct {
	Logger zerolog.Logger
}

var _ CommandRunner = &DefaultCommandRunner{}

func (d *DefaultCommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	d.Logger.Debug().Strs("command", args).Msg("Running command")
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	out, err := cmd.CombinedOutput()
	d.Logger.Debug().Str("output", string(out)).Msg("Command finished")
	if ctx.Err() == context.DeadlineExceeded {
		return string(out), fmt.Errorf("command %s timed out: %w", args[0], ctx.Err())
	}
	return string(out), err
}

func (d *DefaultCommandRunner) RunStreaming(ctx context.Context, args ...string) (int, error) {
	d.Logger.Debug().Strs("command", args).Msg("Running command (streaming)")
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// A non-zero exit is the framework reporting test failures, not a
		// failure of this process.
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// LookupExecutable resolves name via PATH, then tries the fallback locations
// in order. The returned path is absolute when a fallback matched.
func LookupExecutable(name string, fallbacks []string) (string, error) {
	candidates := append([]string{name}, fallbacks...)
	for _, candidate := range candidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("executable %s not found in PATH or fallback locations", name)
}

// FakeCommandRunner is a CommandRunner for tests.
type FakeCommandRunner struct {
	Output   string
	ErrStr   string
	ExitCode int

	// Calls records every argument list in order.
	Calls [][]string
}

var _ CommandRunner = &FakeCommandRunner{}

func (f *FakeCommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	f.Calls = append(f.Calls, args)
	if f.ErrStr != "" {
		return f.Output, errors.New(f.ErrStr)
	}
	return f.Output, nil
}

func (f *FakeCommandRunner) RunStreaming(ctx context.Context, args ...string) (int, error) {
	f.Calls = append(f.Calls, args)
	if f.ErrStr != "" {
		return -1, errors.New(f.ErrStr)
	}
	return f.ExitCode, nil
}
