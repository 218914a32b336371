package simulator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hdlrun/pkg/runner"
)

func TestProbeVersion(t *testing.T) {
	tests := []struct {
		name     string
		backend  Backend
		output   string
		expected string
		wantArgs []string
		wantErr  bool
	}{
		{
			name:     "questa banner",
			backend:  Questa,
			output:   "QuestaSim-64 vsim 2023.2 Simulator 2023.04 Apr 11 2023\n",
			expected: "2023.2.0",
			wantArgs: []string{"vsim", "-version"},
		},
		{
			name:     "nvc banner",
			backend:  NVC,
			output:   "nvc 1.11.0 (Using LLVM 14.0.0)\n",
			expected: "1.11.0",
			wantArgs: []string{"nvc", "--version"},
		},
		{
			name:    "no version token",
			backend: ModelSim,
			output:  "vsim Simulator\n",
			wantErr: true,
		},
		{
			name:    "unknown backend",
			backend: None,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &runner.FakeCommandRunner{Output: tt.output}
			v, err := ProbeVersion(context.Background(), fake, tt.backend)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v.String())
			require.Len(t, fake.Calls, 1)
			assert.Equal(t, tt.wantArgs, fake.Calls[0])
		})
	}
}

func TestParseVersionTokenSkipsNonNumeric(t *testing.T) {
	v := parseVersionToken("Model Technology rev. B vsim 2020.1 Simulator")
	require.NotNil(t, v)
	assert.Equal(t, "2020.1.0", v.String())

	assert.Nil(t, parseVersionToken("no numbers here"))
}
