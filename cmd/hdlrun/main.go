package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"hdlrun/pkg/config"
	"hdlrun/pkg/discover"
	"hdlrun/pkg/framework"
	"hdlrun/pkg/logger"
	"hdlrun/pkg/project"
	"hdlrun/pkg/runner"
	"hdlrun/pkg/simulator"
	"hdlrun/pkg/vendorlib"
)

// DefaultLibrary is the framework library all discovered sources land in.
const DefaultLibrary = "vunit_library"

// waveInitFileName is sourced by the ModelSim GUI to restore the wave view.
const waveInitFileName = "find_wave_file.do"

var cfg = config.Default()

var exitCode int

var rootCmd = &cobra.Command{
	Use:   "hdlrun [flags] [test pattern] [-- runner args...]",
	Short: "Run the project's HDL testbenches through the simulation framework",
	Long: `hdlrun discovers the VHDL/Verilog sources under the project path, builds a
simulation-project description, configures compiler and simulator options for
the selected backend (ModelSim/QuestaSim, NVC) and vendor libraries (Xilinx,
Intel/Altera), and hands control to the external framework runner. Arguments
after -- are forwarded to the runner verbatim.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&cfg.Path, "path", cfg.Path, "Project root scanned for HDL sources")
	flags.Float64Var(&cfg.TimeoutMS, "timeout-ms", cfg.TimeoutMS, "Simulated-time budget per testbench in milliseconds")
	flags.IntVarP(&cfg.Parallelism, "parallel", "p", cfg.Parallelism, "Number of simulations run concurrently")
	flags.BoolVar(&cfg.GUI, "gui", cfg.GUI, "Open the simulator GUI instead of running in batch mode")
	flags.BoolVar(&cfg.CompileOnly, "compile", cfg.CompileOnly, "Compile the sources without running simulations")
	flags.BoolVar(&cfg.Clean, "clean", cfg.Clean, "Remove previous build artifacts before compiling")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging, here and in the runner")
	flags.BoolVar(&cfg.UseXilinxLibs, "xilinx-libs", cfg.UseXilinxLibs, "Enable Xilinx vendor simulation libraries and the glbl module")
	flags.BoolVar(&cfg.UseIntelAlteraLibs, "intel-altera-libs", cfg.UseIntelAlteraLibs, "Enable Intel/Altera vendor simulation libraries")
	flags.BoolVar(&cfg.Verilog, "verilog", cfg.Verilog, "Also pick up .v sources")
	flags.StringSliceVar(&cfg.Excluded, "exclude", cfg.Excluded, "Exact filenames to drop from discovery (repeatable)")
	flags.StringVar(&cfg.XUnitXML, "xunit-xml", cfg.XUnitXML, "Write an xUnit XML report to this path")
	flags.StringVar(&cfg.OutputPath, "output-path", cfg.OutputPath, "Directory for the project description and build artifacts")
	flags.StringVar(&cfg.Runner, "runner", cfg.Runner, "Framework runner executable (default: $"+framework.RunnerEnv+", then PATH)")
}

func main() {
	// Best effort: a missing .env is the normal case.
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func run(cmd *cobra.Command, args []string) error {
	if err := loadConfigFile(cmd); err != nil {
		return err
	}

	log := logger.New(cfg.Debug).With().
		Str("run_id", uuid.NewString()[:8]).
		Logger()

	pattern, extraArgs, err := splitArgs(cmd, args)
	if err != nil {
		return err
	}
	if pattern != "" {
		cfg.Pattern = pattern
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	p, err := buildProject(log)
	if err != nil {
		return err
	}

	projectFile := filepath.Join(cfg.OutputPath, "project.json")
	if err := p.WriteFile(projectFile); err != nil {
		return err
	}
	log.Debug().Str("path", projectFile).Msg("Wrote project description")

	runnerPath, err := framework.ResolveRunner(cfg.Runner)
	if err != nil {
		return fmt.Errorf("resolve framework runner: %w", err)
	}

	inv := framework.Invocation{
		Parallelism: cfg.Parallelism,
		Pattern:     cfg.Pattern,
		GUI:         cfg.GUI,
		CompileOnly: cfg.CompileOnly,
		Clean:       cfg.Clean,
		Debug:       cfg.Debug,
		XUnitXML:    cfg.XUnitXML,
		ExtraArgs:   extraArgs,
	}
	runnerArgs := append([]string{runnerPath}, inv.Args(projectFile)...)

	cr := &runner.DefaultCommandRunner{Logger: log}

	backend := simulator.Detect()
	log.Debug().Str("backend", string(backend)).Msg("Simulator backend resolved")
	if backend != simulator.None {
		simulator.WarnIfUnsupported(cmd.Context(), log, cr, backend)
	}

	code, err := executeRunner(cmd.Context(), cr, runnerArgs)
	if err != nil {
		return fmt.Errorf("run framework: %w", err)
	}

	printSummary(code)
	exitCode = code
	return nil
}

// loadConfigFile overlays hdlrun.yaml from the project root, then re-applies
// any flags the user set explicitly so the command line always wins.
func loadConfigFile(cmd *cobra.Command) error {
	fileCfg, err := config.Load(cfg.Path)
	if err != nil {
		return err
	}

	flagCfg := cfg
	cfg = fileCfg
	flags := cmd.Flags()
	if flags.Changed("path") {
		cfg.Path = flagCfg.Path
	}
	if flags.Changed("timeout-ms") {
		cfg.TimeoutMS = flagCfg.TimeoutMS
	}
	if flags.Changed("parallel") {
		cfg.Parallelism = flagCfg.Parallelism
	}
	if flags.Changed("gui") {
		cfg.GUI = flagCfg.GUI
	}
	if flags.Changed("compile") {
		cfg.CompileOnly = flagCfg.CompileOnly
	}
	if flags.Changed("clean") {
		cfg.Clean = flagCfg.Clean
	}
	if flags.Changed("debug") {
		cfg.Debug = flagCfg.Debug
	}
	if flags.Changed("xilinx-libs") {
		cfg.UseXilinxLibs = flagCfg.UseXilinxLibs
	}
	if flags.Changed("intel-altera-libs") {
		cfg.UseIntelAlteraLibs = flagCfg.UseIntelAlteraLibs
	}
	if flags.Changed("verilog") {
		cfg.Verilog = flagCfg.Verilog
	}
	if flags.Changed("exclude") {
		cfg.Excluded = flagCfg.Excluded
	}
	if flags.Changed("xunit-xml") {
		cfg.XUnitXML = flagCfg.XUnitXML
	}
	if flags.Changed("output-path") {
		cfg.OutputPath = flagCfg.OutputPath
	}
	if flags.Changed("runner") {
		cfg.Runner = flagCfg.Runner
	}
	return nil
}

// splitArgs separates the optional test pattern from args forwarded to the
// runner after --.
func splitArgs(cmd *cobra.Command, args []string) (string, []string, error) {
	positional := args
	var extra []string
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		positional, extra = args[:dash], args[dash:]
	}
	if len(positional) > 1 {
		return "", nil, fmt.Errorf("at most one test pattern argument, got %d", len(positional))
	}
	if len(positional) == 1 {
		return positional[0], extra, nil
	}
	return "", extra, nil
}

// buildProject discovers the HDL sources and assembles the simulation-project
// description with the compile and simulation options for the run.
func buildProject(log zerolog.Logger) (*project.Project, error) {
	extensions := append([]string{}, discover.DefaultExtensions...)
	if cfg.Verilog {
		extensions = append(extensions, discover.VerilogExtensions...)
	}

	files, err := discover.Files(cfg.Path, discover.Options{
		Extensions: extensions,
		Excluded:   cfg.Excluded,
	})
	if err != nil {
		return nil, fmt.Errorf("discover HDL sources: %w", err)
	}
	log.Info().Int("count", len(files)).Str("path", cfg.Path).Msg("Discovered HDL sources")

	p := project.New()
	p.AddBuiltin(project.BuiltinVHDL)
	p.AddBuiltin(project.BuiltinOSVVM)
	lib := p.AddLibrary(DefaultLibrary)
	if err := lib.AddSourceFiles(files, true); err != nil {
		return nil, err
	}

	if cfg.UseXilinxLibs {
		addGlblModule(log, lib)
	}

	projectRoot, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	opts := simulator.Options{
		TimeoutMS:          cfg.TimeoutMS,
		UseXilinxLibs:      cfg.UseXilinxLibs,
		UseIntelAlteraLibs: cfg.UseIntelAlteraLibs,
		QuestaBase:         simulator.IsQuestaBase(),
		WaveInitFile:       filepath.Join(projectRoot, waveInitFileName),
	}
	simulator.ConfigureCompile(p, opts)
	simulator.ConfigureSim(p, opts)

	return p, nil
}

// addGlblModule wires in the Xilinx glbl helper. A failure here is a warning,
// not an abort: the run is still useful for designs that never touch the
// global signals.
func addGlblModule(log zerolog.Logger, lib *project.Library) {
	glblPath, found := vendorlib.FindXilinxGlbl()
	if !found {
		log.Warn().Msg("Xilinx glbl.v not found")
		log.Warn().Msgf("Ensure Vivado is installed and/or set %s, e.g. export %s=/opt/Xilinx/Vivado/2023.2",
			vendorlib.XilinxVivadoEnv, vendorlib.XilinxVivadoEnv)
		log.Warn().Msg("Or copy glbl.v into the project tree manually")
		return
	}
	if err := lib.AddSourceFile(glblPath); err != nil {
		log.Warn().Err(err).Msg("Could not add glbl module")
		return
	}
	log.Info().Str("path", glblPath).Msg("Added Xilinx glbl module")
}

// executeRunner hands control to the framework. Batch compile runs on a
// terminal get a spinner with the output replayed on failure; everything else
// streams through so the framework's own reporting stays intact.
func executeRunner(ctx context.Context, cr runner.CommandRunner, args []string) (int, error) {
	if cfg.CompileOnly && !cfg.Debug && isatty.IsTerminal(os.Stdout.Fd()) {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Prefix = "Compiling: "
		s.Color("cyan", "bold")
		s.Start()
		out, err := cr.Run(ctx, args...)
		s.Stop()
		if err != nil {
			fmt.Print(out)
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return exitErr.ExitCode(), nil
			}
			return -1, err
		}
		return 0, nil
	}
	return cr.RunStreaming(ctx, args...)
}

// printSummary mirrors the one-line verdict of the original wrapper script.
func printSummary(code int) {
	status := color.New(color.FgGreen, color.Bold).Sprint("Passed")
	if code != 0 {
		status = color.New(color.FgRed, color.Bold).Sprint("Failed")
	}
	fmt.Printf("hdl tests: %s\n", status)
}
