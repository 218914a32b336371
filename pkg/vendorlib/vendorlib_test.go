package vendorlib

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindXilinxGlbl(t *testing.T) {
	envPath := filepath.Join("/tools/Xilinx/Vivado/2023.2", "data", "verilog", "src", "glbl.v")

	tests := []struct {
		name         string
		vivadoEnv    string
		existing     map[string]bool
		expectedPath string
		expectedOK   bool
	}{
		{
			name:         "env variable wins when the file exists",
			vivadoEnv:    "/tools/Xilinx/Vivado/2023.2",
			existing:     map[string]bool{envPath: true, glblFallbackPaths[0]: true},
			expectedPath: envPath,
			expectedOK:   true,
		},
		{
			name:         "stale env variable falls back to fixed paths",
			vivadoEnv:    "/tools/Xilinx/Vivado/2023.2",
			existing:     map[string]bool{glblFallbackPaths[3]: true},
			expectedPath: glblFallbackPaths[3],
			expectedOK:   true,
		},
		{
			name:         "no env variable uses first existing fallback",
			existing:     map[string]bool{glblFallbackPaths[1]: true, glblFallbackPaths[4]: true},
			expectedPath: glblFallbackPaths[1],
			expectedOK:   true,
		},
		{
			name:       "nothing on disk reports not found",
			vivadoEnv:  "/tools/Xilinx/Vivado/2023.2",
			existing:   map[string]bool{},
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(key string) string {
				if key == XilinxVivadoEnv {
					return tt.vivadoEnv
				}
				return ""
			}
			exists := func(path string) bool { return tt.existing[path] }

			path, ok := findXilinxGlbl(getenv, exists)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedPath, path)
		})
	}
}

func TestVsimFlagSets(t *testing.T) {
	assert.Equal(t,
		[]string{"-L unisims_ver", "-L unimacro_ver", "-L xpm", "-L secureip", "glbl"},
		XilinxVsimFlags())
	assert.Equal(t,
		[]string{"-L altera_mf_ver", "-L altera_lnsim_ver", "-L lpm_ver"},
		IntelVsimFlags())
}

func TestNVCLibrarySets(t *testing.T) {
	assert.Equal(t, []string{"unisim", "unimacro", "unifast"}, XilinxNVCLibraries())
	assert.Equal(t, []string{"altera_mf"}, IntelNVCLibraries())
}
