package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ".", cfg.Path)
	assert.Equal(t, "**", cfg.Pattern)
	assert.Equal(t, 0.5, cfg.TimeoutMS)
	assert.Equal(t, 1, cfg.Parallelism)
	assert.Equal(t, "vunit_out", cfg.OutputPath)
	assert.False(t, cfg.GUI)
	assert.False(t, cfg.UseXilinxLibs)
}

func TestLoad(t *testing.T) {
	t.Run("missing file keeps defaults", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file overlays defaults", func(t *testing.T) {
		root := t.TempDir()
		content := `
path: ./ip
timeout_ms: 1.0
gui: true
use_xilinx_libs: true
excluded:
  - legacy_top.vhd
`
		require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(content), 0644))

		cfg, err := Load(root)
		require.NoError(t, err)
		assert.Equal(t, "./ip", cfg.Path)
		assert.Equal(t, 1.0, cfg.TimeoutMS)
		assert.True(t, cfg.GUI)
		assert.True(t, cfg.UseXilinxLibs)
		assert.Equal(t, []string{"legacy_top.vhd"}, cfg.Excluded)
		// Untouched keys keep their defaults.
		assert.Equal(t, "**", cfg.Pattern)
		assert.Equal(t, 1, cfg.Parallelism)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("path: [unclosed"), 0644))

		_, err := Load(root)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Path = t.TempDir()

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("negative timeout", func(t *testing.T) {
		cfg := valid
		cfg.TimeoutMS = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero parallelism", func(t *testing.T) {
		cfg := valid
		cfg.Parallelism = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing project path", func(t *testing.T) {
		cfg := valid
		cfg.Path = filepath.Join(t.TempDir(), "nope")
		assert.Error(t, cfg.Validate())
	})

	t.Run("project path is a file", func(t *testing.T) {
		cfg := valid
		file := filepath.Join(t.TempDir(), "f.vhd")
		require.NoError(t, os.WriteFile(file, []byte(""), 0644))
		cfg.Path = file
		assert.Error(t, cfg.Validate())
	})
}
