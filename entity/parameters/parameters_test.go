package parameters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	params, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), params)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"gridSamples: 10\ncenterWavelength: 8.0e-7\nbandwidth: 2.0e-8\n",
	), 0o644))

	params, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, params.GridSamples)
	assert.InEpsilon(t, 800e-9, params.CenterWavelength, 1e-12)
	assert.InEpsilon(t, 20e-9, params.Bandwidth, 1e-12)
	// Untouched fields keep their defaults.
	assert.Equal(t, Default().ScanSpeed, params.ScanSpeed)
	assert.Equal(t, Default().Layers, params.Layers)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "negative grid span", yaml: "gridSpan: -1"},
		{name: "bandwidth wider than center", yaml: "bandwidth: 2.0e-6"},
		{name: "zero period number", yaml: "periodNumber: 0"},
		{name: "sampling coarser than one fringe", yaml: "sampleInterval: 1.0e-3"},
		{name: "reflectivity above one", yaml: "layers:\n  - depth: 1.0e-5\n    reflectivity: 1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "params.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsBrokenYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gridSamples: [broken"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestScanSamples(t *testing.T) {
	params := Default()
	assert.Equal(t, int(params.ScanTime/params.SampleInterval), params.ScanSamples())
}
