package simulator

import (
	"strconv"

	"hdlrun/pkg/project"
	"hdlrun/pkg/vendorlib"
)

// SimulationTimeoutGeneric is the top-level generic every testbench reads to
// bound its own run time.
const SimulationTimeoutGeneric = "SIMULATION_TIMEOUT_IN_MS"

// Options are the knobs that influence compile and simulation flags.
type Options struct {
	// TimeoutMS bounds each testbench run, in milliseconds of simulated time.
	TimeoutMS float64
	// UseXilinxLibs enables the Xilinx vendor library search paths and the
	// glbl helper module.
	UseXilinxLibs bool
	// UseIntelAlteraLibs enables the Intel/Altera vendor library search paths.
	UseIntelAlteraLibs bool
	// QuestaBase adds the Questa base edition tuning and statistics flags.
	QuestaBase bool
	// WaveInitFile is sourced by the GUI to restore the waveform view.
	WaveInitFile string
}

// ConfigureCompile sets the compile options on the project: relaxed analysis
// for NVC plus the vendor library search paths each enabled vendor needs.
func ConfigureCompile(p *project.Project, opts Options) {
	p.SetCompileOption("nvc.a_flags", []string{"--relaxed"})

	var globalFlags []string
	if opts.UseXilinxLibs {
		for _, lib := range vendorlib.XilinxNVCLibraries() {
			globalFlags = append(globalFlags, "-L", lib)
		}
	}
	if opts.UseIntelAlteraLibs {
		for _, lib := range vendorlib.IntelNVCLibraries() {
			globalFlags = append(globalFlags, "-L", lib)
		}
	}
	if len(globalFlags) > 0 {
		p.SetCompileOption("nvc.global_flags", globalFlags)
	}
}

// ConfigureSim sets the simulation options: the timeout generic, the
// ModelSim/QuestaSim flag list with vendor and Questa-base additions,
// suppressed IEEE warnings, and the GUI waveform init file.
func ConfigureSim(p *project.Project, opts Options) {
	p.SetGeneric(SimulationTimeoutGeneric, strconv.FormatFloat(opts.TimeoutMS, 'f', -1, 64))

	vsimFlags := []string{"-t 1ps", "-voptargs=+acc"}
	if opts.UseIntelAlteraLibs {
		vsimFlags = append(vsimFlags, vendorlib.IntelVsimFlags()...)
	}
	if opts.UseXilinxLibs {
		vsimFlags = append(vsimFlags, vendorlib.XilinxVsimFlags()...)
	}
	if opts.QuestaBase {
		vsimFlags = append(vsimFlags, "-qbase_tune", "-printsimstats", "-simstats")
	}
	p.SetSimOption("modelsim.vsim_flags", vsimFlags)

	p.SetSimOption("disable_ieee_warnings", true)

	if opts.WaveInitFile != "" {
		p.SetSimOption("modelsim.init_file.gui", opts.WaveInitFile)
	}
}
