// Package config holds the runner configuration assembled from defaults, the
// optional hdlrun.yaml project file, and CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

// FileName is the optional per-project configuration file, looked up in the
// project root.
const FileName = "hdlrun.yaml"

// Config mirrors the original runner-script parameters plus the output
// plumbing. Field names follow the framework's vocabulary.
type Config struct {
	// Path is the root scanned for HDL sources.
	Path string `json:"path"`
	// Pattern selects testbenches, framework glob syntax.
	Pattern string `json:"pattern"`
	// TimeoutMS is the simulated-time budget per testbench, in milliseconds.
	TimeoutMS float64 `json:"timeout_ms"`
	// Parallelism is the number of concurrent simulations.
	Parallelism int `json:"parallelism"`

	GUI         bool `json:"gui"`
	CompileOnly bool `json:"compile_only"`
	Clean       bool `json:"clean"`
	Debug       bool `json:"debug"`

	// UseXilinxLibs and UseIntelAlteraLibs enable vendor simulation
	// libraries and, for Xilinx, the glbl helper module.
	UseXilinxLibs      bool `json:"use_xilinx_libs"`
	UseIntelAlteraLibs bool `json:"use_intel_altera_libs"`

	// Verilog adds .v files to discovery.
	Verilog bool `json:"verilog"`
	// Excluded lists exact filenames dropped from discovery.
	Excluded []string `json:"excluded"`

	// XUnitXML is the report path handed to the runner, empty for none.
	XUnitXML string `json:"xunit_xml"`
	// OutputPath is where the project description and build artifacts live.
	OutputPath string `json:"output_path"`
	// Runner overrides the framework runner executable.
	Runner string `json:"runner"`
}

// Default returns the configuration the original runner script used.
func Default() Config {
	return Config{
		Path:        ".",
		Pattern:     "**",
		TimeoutMS:   0.5,
		Parallelism: 1,
		OutputPath:  "vunit_out",
	}
}

// Load starts from defaults and overlays hdlrun.yaml from the given project
// root when it exists. A missing file is not an error; an unreadable or
// malformed one is.
func Load(root string) (Config, error) {
	cfg := Default()

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the framework would fail on anyway, with
// clearer messages.
func (c Config) Validate() error {
	if c.TimeoutMS < 0 {
		return fmt.Errorf("timeout must be non-negative, got %v", c.TimeoutMS)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	info, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("project path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project path %s is not a directory", c.Path)
	}
	return nil
}
