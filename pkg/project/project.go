// Package project models the simulation project handed to the external
// framework runner: libraries with their source files, per-tool compile and
// simulation options, and top-level generics.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Names of the verification libraries bundled with the framework.
const (
	BuiltinVHDL  = "vhdl_builtins"
	BuiltinOSVVM = "osvvm"
)

// Project is the root of the description serialized for the runner.
type Project struct {
	Libraries      []*Library             `json:"libraries"`
	Builtins       []string               `json:"builtins,omitempty"`
	CompileOptions map[string][]string    `json:"compile_options,omitempty"`
	SimOptions     map[string]interface{} `json:"sim_options,omitempty"`
	Generics       map[string]string      `json:"generics,omitempty"`
}

// Library is a named HDL library and its ordered source list.
type Library struct {
	Name  string   `json:"name"`
	Files []string `json:"files"`

	seen map[string]bool
}

// New returns an empty project.
func New() *Project {
	return &Project{
		CompileOptions: make(map[string][]string),
		SimOptions:     make(map[string]interface{}),
		Generics:       make(map[string]string),
	}
}

// AddLibrary returns the library with the given name, creating it on first
// use so repeated calls share one source list.
func (p *Project) AddLibrary(name string) *Library {
	for _, lib := range p.Libraries {
		if lib.Name == name {
			return lib
		}
	}
	lib := &Library{
		Name:  name,
		Files: []string{},
		seen:  make(map[string]bool),
	}
	p.Libraries = append(p.Libraries, lib)
	return lib
}

// AddSourceFiles appends paths to the library in order, dropping duplicates
// (first position wins). With allowEmpty false an empty list is an error, so
// a misconfigured discovery root fails loudly instead of producing a project
// with nothing to compile.
func (l *Library) AddSourceFiles(paths []string, allowEmpty bool) error {
	if len(paths) == 0 && !allowEmpty {
		return fmt.Errorf("no source files for library %q", l.Name)
	}
	if l.seen == nil {
		l.seen = make(map[string]bool, len(paths))
	}
	for _, path := range paths {
		if l.seen[path] {
			continue
		}
		l.seen[path] = true
		l.Files = append(l.Files, path)
	}
	return nil
}

// AddSourceFile appends a single file after checking it exists on disk. This
// is the guarded path used for vendor support files.
func (l *Library) AddSourceFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("add source file to library %q: %w", l.Name, err)
	}
	if info.IsDir() {
		return fmt.Errorf("add source file to library %q: %s is a directory", l.Name, path)
	}
	return l.AddSourceFiles([]string{path}, false)
}

// AddBuiltin enables one of the framework's bundled verification libraries.
// Repeated adds are collapsed.
func (p *Project) AddBuiltin(name string) {
	for _, b := range p.Builtins {
		if b == name {
			return
		}
	}
	p.Builtins = append(p.Builtins, name)
}

// SetCompileOption sets a per-tool compile option, keyed "<tool>.<option>"
// (for example "nvc.a_flags").
func (p *Project) SetCompileOption(name string, flags []string) {
	p.CompileOptions[name] = flags
}

// SetSimOption sets a per-tool simulation option. Values may be flag lists,
// booleans or plain strings depending on the option.
func (p *Project) SetSimOption(name string, value interface{}) {
	p.SimOptions[name] = value
}

// SetGeneric sets a top-level generic passed to every testbench.
func (p *Project) SetGeneric(name, value string) {
	p.Generics[name] = value
}

// WriteFile marshals the project as JSON to path, creating parent
// directories as needed.
func (p *Project) WriteFile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create project output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write project file: %w", err)
	}
	return nil
}
