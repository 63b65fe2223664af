package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSource(t *testing.T) {
	tests := []struct {
		name      string
		center    float64
		bandwidth float64
		wantErr   bool
	}{
		{name: "valid source", center: 1310e-9, bandwidth: 50e-9},
		{name: "zero center", center: 0, bandwidth: 50e-9, wantErr: true},
		{name: "zero bandwidth", center: 1310e-9, bandwidth: 0, wantErr: true},
		{name: "negative bandwidth", center: 1310e-9, bandwidth: -1e-9, wantErr: true},
		{name: "bandwidth wider than center", center: 1310e-9, bandwidth: 1500e-9, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewSource(tt.center, tt.bandwidth)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, src)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.center, src.CenterWavelength())
			assert.Equal(t, tt.bandwidth, src.Bandwidth())
		})
	}
}

func TestCoherenceLength(t *testing.T) {
	src, err := NewSource(1310e-9, 50e-9)
	require.NoError(t, err)

	want := (2 * math.Ln2 / math.Pi) * 1310e-9 * 1310e-9 / 50e-9
	assert.InEpsilon(t, want, src.CoherenceLength(), 1e-12)
	assert.InEpsilon(t, want/2, src.AxialResolution(), 1e-12)

	// Doubling the bandwidth halves the coherence length.
	wide, err := NewSource(1310e-9, 100e-9)
	require.NoError(t, err)
	assert.InEpsilon(t, src.CoherenceLength()/2, wide.CoherenceLength(), 1e-12)
}

func TestFringeEnvelope(t *testing.T) {
	src, err := NewSource(1310e-9, 50e-9)
	require.NoError(t, err)
	lc := src.CoherenceLength()

	assert.Equal(t, 1.0, src.FringeEnvelope(0))

	// Gaussian, symmetric, FWHM equal to the coherence length.
	assert.InDelta(t, 0.5, src.FringeEnvelope(lc/2), 1e-12)
	assert.InDelta(t, 0.5, src.FringeEnvelope(-lc/2), 1e-12)
	assert.Equal(t, src.FringeEnvelope(lc), src.FringeEnvelope(-lc))
	assert.Less(t, src.FringeEnvelope(5*lc), 1e-6)
}

func TestInterferogram(t *testing.T) {
	src, err := NewSource(1310e-9, 50e-9)
	require.NoError(t, err)
	lc := src.CoherenceLength()

	// Full constructive fringe at zero path difference.
	assert.InDelta(t, 2.0, src.Interferogram(0), 1e-12)

	// Beyond the coherence length the fringes die out and the
	// detector sees the incoherent sum.
	for _, dl := range []float64{10 * lc, -10 * lc, 25 * lc} {
		assert.InDelta(t, 1.0, src.Interferogram(dl), 1e-6)
	}

	dls := Grid(-2*lc, 2*lc, 500)
	intensities := src.InterferogramOver(dls)
	require.Len(t, intensities, len(dls))
	for i, dl := range dls {
		assert.Equal(t, src.Interferogram(dl), intensities[i])
		assert.GreaterOrEqual(t, intensities[i], 0.0)
		assert.LessOrEqual(t, intensities[i], 2.0)
	}
}

func TestAScan(t *testing.T) {
	src, err := NewSource(1310e-9, 50e-9)
	require.NoError(t, err)

	reflectors := []Reflector{
		{Depth: 50e-6, Reflectivity: 0.9},
		{Depth: 120e-6, Reflectivity: 0.4},
	}
	depths := Grid(0, 200e-6, 2001)
	profile := src.AScan(depths, reflectors)
	require.Len(t, profile, len(depths))

	// The profile peaks at each reflector with the reflector's
	// reflectivity; the grid contains both depths exactly.
	peak1 := profile[500]  // 50 µm
	peak2 := profile[1200] // 120 µm
	assert.InDelta(t, 0.9, peak1, 1e-6)
	assert.InDelta(t, 0.4, peak2, 1e-6)

	// Far from every reflector the profile drops to the floor.
	assert.Less(t, profile[len(profile)-1], 1e-3)
}

func TestBScan(t *testing.T) {
	src, err := NewSource(1310e-9, 50e-9)
	require.NoError(t, err)

	depths := Grid(0, 100e-6, 101)
	columns := [][]Reflector{
		{{Depth: 30e-6, Reflectivity: 0.8}},
		{{Depth: 60e-6, Reflectivity: 0.8}},
	}
	image := src.BScan(depths, columns)
	require.Len(t, image, 2)
	require.Len(t, image[0], len(depths))

	// Each column peaks at its own reflector depth.
	assert.InDelta(t, 0.8, image[0][30], 1e-6)
	assert.InDelta(t, 0.8, image[1][60], 1e-6)
	assert.Less(t, image[0][90], 1e-3)
}
