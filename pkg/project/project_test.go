package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLibraryReturnsSameInstance(t *testing.T) {
	p := New()
	a := p.AddLibrary("vunit_library")
	b := p.AddLibrary("vunit_library")

	assert.Same(t, a, b)
	assert.Len(t, p.Libraries, 1)
}

func TestAddSourceFiles(t *testing.T) {
	t.Run("keeps order and drops duplicates", func(t *testing.T) {
		lib := New().AddLibrary("lib")
		require.NoError(t, lib.AddSourceFiles([]string{"a.vhd", "b.vhd", "a.vhd", "c.vhd"}, false))
		assert.Equal(t, []string{"a.vhd", "b.vhd", "c.vhd"}, lib.Files)
	})

	t.Run("empty list allowed when requested", func(t *testing.T) {
		lib := New().AddLibrary("lib")
		assert.NoError(t, lib.AddSourceFiles(nil, true))
		assert.Empty(t, lib.Files)
	})

	t.Run("empty list rejected by default", func(t *testing.T) {
		lib := New().AddLibrary("lib")
		err := lib.AddSourceFiles(nil, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"lib"`)
	})
}

func TestAddBuiltinCollapsesDuplicates(t *testing.T) {
	p := New()
	p.AddBuiltin(BuiltinVHDL)
	p.AddBuiltin(BuiltinOSVVM)
	p.AddBuiltin(BuiltinVHDL)

	assert.Equal(t, []string{BuiltinVHDL, BuiltinOSVVM}, p.Builtins)
}

func TestAddSourceFile(t *testing.T) {
	t.Run("existing file is added", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "glbl.v")
		require.NoError(t, os.WriteFile(path, []byte("module glbl; endmodule\n"), 0644))

		lib := New().AddLibrary("lib")
		require.NoError(t, lib.AddSourceFile(path))
		assert.Equal(t, []string{path}, lib.Files)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		lib := New().AddLibrary("lib")
		err := lib.AddSourceFile(filepath.Join(t.TempDir(), "nope.v"))
		assert.Error(t, err)
	})

	t.Run("directory is an error", func(t *testing.T) {
		lib := New().AddLibrary("lib")
		err := lib.AddSourceFile(t.TempDir())
		assert.Error(t, err)
	})
}

func TestWriteFile(t *testing.T) {
	p := New()
	lib := p.AddLibrary("vunit_library")
	require.NoError(t, lib.AddSourceFiles([]string{"rtl/alu.vhd"}, false))
	p.SetCompileOption("nvc.a_flags", []string{"--relaxed"})
	p.SetSimOption("disable_ieee_warnings", true)
	p.SetGeneric("SIMULATION_TIMEOUT_IN_MS", "0.5")

	path := filepath.Join(t.TempDir(), "out", "project.json")
	require.NoError(t, p.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Project
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got.Libraries, 1)
	assert.Equal(t, "vunit_library", got.Libraries[0].Name)
	assert.Equal(t, []string{"rtl/alu.vhd"}, got.Libraries[0].Files)
	assert.Equal(t, []string{"--relaxed"}, got.CompileOptions["nvc.a_flags"])
	assert.Equal(t, true, got.SimOptions["disable_ieee_warnings"])
	assert.Equal(t, "0.5", got.Generics["SIMULATION_TIMEOUT_IN_MS"])
}
