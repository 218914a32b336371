// Package discover finds HDL source files under a project tree.
package discover

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultExtensions are the VHDL extensions compiled by default. Verilog
// sources are only picked up when the caller asks for them.
var DefaultExtensions = []string{".vhd", ".vhdl"}

// VerilogExtensions are added to the accepted set for mixed-language projects.
var VerilogExtensions = []string{".v"}

// DefaultIgnoreSubstring filters editor backup files such as "tb_fifo.vhd~"
// or "#tb_fifo.vhd~#" that match an accepted extension.
const DefaultIgnoreSubstring = "~"

// IgnoreFileName is an optional gitignore-style file at the project root for
// keeping generated or vendored HDL out of the project.
const IgnoreFileName = ".hdlignore"

var defaultIgnores = []string{
	"vunit_out/",
	".git/",
	".svn/",
	".Xil/",
	"*.bak",
	".DS_Store",
}

// Options control which files a walk accepts.
type Options struct {
	// Extensions the filename must end with. Defaults to DefaultExtensions.
	Extensions []string
	// IgnoreSubstring excludes any filename containing it, regardless of
	// extension. Defaults to DefaultIgnoreSubstring.
	IgnoreSubstring string
	// Excluded lists exact filenames to drop.
	Excluded []string
}

// Files walks root recursively and returns the paths of all HDL sources that
// match the options, in traversal order. A file is kept when its name ends
// with one of the extensions, does not contain the ignore substring, and is
// not on the excluded list. Walk errors (unreadable directories and the like)
// propagate unmodified.
func Files(root string, opts Options) ([]string, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	ignoreSubstring := opts.IgnoreSubstring
	if ignoreSubstring == "" {
		ignoreSubstring = DefaultIgnoreSubstring
	}
	excluded := make(map[string]bool, len(opts.Excluded))
	for _, name := range opts.Excluded {
		excluded[name] = true
	}

	matcher := loadIgnoreMatcher(root)

	files := []string{}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil || relPath == "." {
			return nil
		}

		// Append a slash for directories so patterns ending in '/' match.
		pathToMatch := relPath
		if info.IsDir() {
			pathToMatch = relPath + string(filepath.Separator)
		}
		if matcher.MatchesPath(pathToMatch) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}

		name := info.Name()
		if !hasAnyExtension(name, exts) {
			return nil
		}
		if strings.Contains(name, ignoreSubstring) {
			return nil
		}
		if excluded[name] {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func hasAnyExtension(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// loadIgnoreMatcher combines the built-in ignore patterns with the project's
// .hdlignore file when one exists.
func loadIgnoreMatcher(root string) *ignore.GitIgnore {
	patterns := append([]string{}, defaultIgnores...)

	ignorePath := filepath.Join(root, IgnoreFileName)
	if content, err := os.ReadFile(ignorePath); err == nil {
		patterns = append(patterns, strings.Split(string(content), "\n")...)
	}

	return ignore.CompileIgnoreLines(patterns...)
}
