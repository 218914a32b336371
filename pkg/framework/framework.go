// Package framework builds the invocation of the external simulation
// framework runner. The runner owns test discovery, compile ordering,
// simulation execution and result reporting; this package only resolves the
// executable and assembles its command line.
package framework

import (
	"os"
	"strconv"

	"hdlrun/pkg/runner"
)

// RunnerEnv overrides the runner executable location.
const RunnerEnv = "HDLRUN_RUNNER"

// DefaultRunnerName is looked up on PATH when no override is given.
const DefaultRunnerName = "vunit-runner"

// runnerFallbackPaths are conventional install locations tried after PATH.
var runnerFallbackPaths = []string{
	"/usr/local/bin/vunit-runner",
	"/opt/vunit/bin/vunit-runner",
}

// DefaultPattern matches every testbench; it is left off the command line so
// the runner applies its own default.
const DefaultPattern = "**"

// Invocation describes one framework run.
type Invocation struct {
	// Parallelism is the number of simulations run concurrently.
	Parallelism int
	// Pattern selects testbenches; DefaultPattern is not forwarded.
	Pattern string
	// GUI opens the simulator GUI instead of running in batch mode.
	GUI bool
	// CompileOnly stops after compilation.
	CompileOnly bool
	// Clean removes previous build artifacts first.
	Clean bool
	// Debug raises the runner's own log level.
	Debug bool
	// XUnitXML is where the runner writes its xUnit report, if anywhere.
	XUnitXML string
	// ExtraArgs are forwarded verbatim after the assembled flags.
	ExtraArgs []string
}

// Args assembles the runner command line for the given project file.
func (inv Invocation) Args(projectFile string) []string {
	parallelism := inv.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	args := []string{"--project", projectFile, "-p", strconv.Itoa(parallelism)}
	if inv.Pattern != "" && inv.Pattern != DefaultPattern {
		args = append(args, inv.Pattern)
	}
	if inv.GUI {
		args = append(args, "--gui")
	}
	if inv.CompileOnly {
		args = append(args, "--compile")
	}
	if inv.Clean {
		args = append(args, "--clean")
	}
	if inv.Debug {
		args = append(args, "--log-level=debug")
	}
	if inv.XUnitXML != "" {
		args = append(args, "--xunit-xml", inv.XUnitXML)
	}
	args = append(args, inv.ExtraArgs...)
	return args
}

// ResolveRunner locates the framework runner executable: the explicit
// override first, then HDLRUN_RUNNER, then PATH and the conventional install
// locations.
func ResolveRunner(override string) (string, error) {
	if override != "" {
		return runner.LookupExecutable(override, nil)
	}
	if fromEnv := os.Getenv(RunnerEnv); fromEnv != "" {
		return runner.LookupExecutable(fromEnv, nil)
	}
	return runner.LookupExecutable(DefaultRunnerName, runnerFallbackPaths)
}
