// Package vendorlib resolves vendor simulation support material: the Xilinx
// glbl module and the library flags the simulators need when a design uses
// vendor device primitives.
package vendorlib

import (
	"os"
	"path/filepath"
)

// XilinxVivadoEnv points at the Vivado install root, e.g.
// /opt/xilinx/vivado/2023.2 or C:/Xilinx/Vivado/2023.2.
const XilinxVivadoEnv = "XILINX_VIVADO"

// glblRelPath is where Vivado ships glbl.v inside an install.
const glblRelPath = "data/verilog/src/glbl.v"

// glblFallbackPaths are conventional Vivado install locations, tried in order
// when XILINX_VIVADO is unset or stale.
var glblFallbackPaths = []string{
	"C:/Xilinx/Vivado/2023.2/data/verilog/src/glbl.v",
	"C:/Xilinx/Vivado/2023.1/data/verilog/src/glbl.v",
	"C:/Xilinx/Vivado/2024.1/data/verilog/src/glbl.v",
	"/opt/xilinx/vivado/2023.2/data/verilog/src/glbl.v",
	"/opt/xilinx/vivado/2023.1/data/verilog/src/glbl.v",
	"/opt/xilinx/vivado/2024.1/data/verilog/src/glbl.v",
	// NVC ships a VHDL-flavored copy under vhdl/src.
	"/opt/xilinx/vivado/data/vhdl/src/glbl.v",
}

// FindXilinxGlbl locates the Xilinx glbl.v support file. The XILINX_VIVADO
// environment variable is tried first, then the fixed list of conventional
// install paths. The boolean is false when no candidate exists on disk.
func FindXilinxGlbl() (string, bool) {
	return findXilinxGlbl(os.Getenv, fileExists)
}

func findXilinxGlbl(getenv func(string) string, exists func(string) bool) (string, bool) {
	var candidates []string
	if vivado := getenv(XilinxVivadoEnv); vivado != "" {
		candidates = append(candidates, filepath.Join(vivado, filepath.FromSlash(glblRelPath)))
	}
	candidates = append(candidates, glblFallbackPaths...)

	for _, path := range candidates {
		if exists(path) {
			return path, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// XilinxNVCLibraries are the analysis library names NVC must search for
// Xilinx primitives ("-L" is emitted per entry by the caller).
func XilinxNVCLibraries() []string {
	return []string{"unisim", "unimacro", "unifast"}
}

// IntelNVCLibraries is the Intel/Altera equivalent for NVC.
func IntelNVCLibraries() []string {
	return []string{"altera_mf"}
}

// XilinxVsimFlags are the ModelSim/QuestaSim simulation flags for designs
// using Xilinx primitives. The bare "glbl" entry elaborates the global-signal
// helper module alongside the testbench top.
func XilinxVsimFlags() []string {
	return []string{"-L unisims_ver", "-L unimacro_ver", "-L xpm", "-L secureip", "glbl"}
}

// IntelVsimFlags is the Intel/Altera equivalent for ModelSim/QuestaSim.
func IntelVsimFlags() []string {
	return []string{"-L altera_mf_ver", "-L altera_lnsim_ver", "-L lpm_ver"}
}
