// Package simulator resolves the simulator backend and assembles the compile
// and simulation options the framework passes to it.
package simulator

import (
	"os"
	"os/exec"
	"strings"
)

// Backend identifies a simulator toolchain.
type Backend string

const (
	ModelSim Backend = "modelsim"
	Questa   Backend = "questa"
	NVC      Backend = "nvc"
	// None means no backend was found; the framework runner performs its own
	// final validation, so this is not an error here.
	None Backend = "none"
)

// Environment variables honored by the framework and mirrored here.
const (
	SimulatorEnv    = "VUNIT_SIMULATOR"
	ModelsimPathEnv = "VUNIT_MODELSIM_PATH"
)

// Detect picks the simulator backend: VUNIT_SIMULATOR when set, else a set
// VUNIT_MODELSIM_PATH implies ModelSim/Questa, else the first of vsim and nvc
// found on PATH.
func Detect() Backend {
	return detect(os.Getenv, exec.LookPath)
}

func detect(getenv func(string) string, lookPath func(string) (string, error)) Backend {
	switch strings.ToLower(getenv(SimulatorEnv)) {
	case "modelsim":
		return ModelSim
	case "questa":
		return Questa
	case "nvc":
		return NVC
	}

	if getenv(ModelsimPathEnv) != "" {
		return ModelSim
	}
	if _, err := lookPath("vsim"); err == nil {
		return ModelSim
	}
	if _, err := lookPath("nvc"); err == nil {
		return NVC
	}
	return None
}

// IsQuestaBase reports whether the configured simulator install is a Questa
// base edition, which wants its own optimization and statistics flags.
func IsQuestaBase() bool {
	return isQuestaBase(os.Getenv)
}

func isQuestaBase(getenv func(string) string) bool {
	return strings.Contains(getenv(ModelsimPathEnv), "questa_base")
}
