package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWave(t *testing.T) {
	tests := []struct {
		name       string
		amplitude  float64
		wavelength float64
		wantErr    bool
	}{
		{name: "valid wave", amplitude: 1.0, wavelength: 600e-9},
		{name: "zero amplitude", amplitude: 0, wavelength: 600e-9, wantErr: true},
		{name: "negative amplitude", amplitude: -1.0, wavelength: 600e-9, wantErr: true},
		{name: "zero wavelength", amplitude: 1.0, wavelength: 0, wantErr: true},
		{name: "negative wavelength", amplitude: 1.0, wavelength: -600e-9, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wave, err := NewWave(tt.amplitude, tt.wavelength, 0)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, wave)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.amplitude, wave.Amplitude())
			assert.Equal(t, tt.wavelength, wave.Wavelength())
		})
	}
}

func TestWaveDerivedQuantities(t *testing.T) {
	wave, err := NewWave(1.0, 600e-9, 0)
	require.NoError(t, err)

	assert.InEpsilon(t, 2*math.Pi/600e-9, wave.WaveNumber(), 1e-12)
	assert.InEpsilon(t, SpeedOfLight/600e-9, wave.Frequency(), 1e-12)
	assert.InEpsilon(t, 2*math.Pi*wave.Frequency(), wave.AngularFrequency(), 1e-12)
	assert.InEpsilon(t, 1/wave.Frequency(), wave.Period(), 1e-12)

	// c = λν must hold for any wavelength.
	for _, wl := range []float64{400e-9, 550e-9, 650e-9, 1310e-9} {
		w, err := NewWave(1.0, wl, 0)
		require.NoError(t, err)
		assert.InEpsilon(t, SpeedOfLight, w.Frequency()*w.Wavelength(), 1e-9)
	}
}

func TestWaveIntensity(t *testing.T) {
	for _, amplitude := range []float64{0.3, 1.0, 2.0} {
		wave, err := NewWave(amplitude, 600e-9, 0)
		require.NoError(t, err)
		assert.Equal(t, amplitude*amplitude, wave.Intensity())
	}
}

func TestOCTSourceScenario(t *testing.T) {
	// A 650 nm wave has a frequency near 4.61e14 Hz and unit intensity.
	wave, err := NewWave(1.0, 650e-9, 0)
	require.NoError(t, err)
	assert.InEpsilon(t, 4.61e14, wave.Frequency(), 0.01)
	assert.Equal(t, 1.0, wave.Intensity())
}

func TestElectricFieldPeriodicity(t *testing.T) {
	wave, err := NewWave(1.0, 600e-9, math.Pi/5)
	require.NoError(t, err)

	t.Run("periodic in position with period λ", func(t *testing.T) {
		for _, x := range []float64{0, 1e-7, 3.3e-6, -2e-6} {
			assert.InDelta(t,
				wave.ElectricField(x, 1e-15),
				wave.ElectricField(x+wave.Wavelength(), 1e-15),
				1e-9)
		}
	})

	t.Run("periodic in time with period 1/ν", func(t *testing.T) {
		period := wave.Period()
		for _, x := range []float64{0, 5e-7} {
			assert.InDelta(t,
				wave.ElectricField(x, 0),
				wave.ElectricField(x, period),
				1e-9)
		}
	})
}

func TestElectricFieldOver(t *testing.T) {
	wave, err := NewWave(1.0, 600e-9, 0)
	require.NoError(t, err)

	xs := Grid(0, 3e-6, 100)
	fields := wave.ElectricFieldOver(xs, 0)
	require.Len(t, fields, len(xs))

	// The slice form must agree with the scalar form pointwise and
	// the field never exceeds the amplitude.
	for i, x := range xs {
		assert.Equal(t, wave.ElectricField(x, 0), fields[i])
		assert.LessOrEqual(t, math.Abs(fields[i]), wave.Amplitude())
	}
}

func TestSuperposition(t *testing.T) {
	xs := Grid(0, 2e-6, 200)

	t.Run("constructive doubles the field", func(t *testing.T) {
		w1, err := NewWave(1.0, 600e-9, 0)
		require.NoError(t, err)
		w2, err := NewWave(1.0, 600e-9, 0)
		require.NoError(t, err)

		sum := w1.Superpose(w2, xs, 0)
		for i, x := range xs {
			assert.Equal(t, 2*w1.ElectricField(x, 0), sum[i])
		}
	})

	t.Run("destructive cancels at every coordinate", func(t *testing.T) {
		w1, err := NewWave(1.0, 600e-9, 0)
		require.NoError(t, err)
		w2, err := NewWave(1.0, 600e-9, math.Pi)
		require.NoError(t, err)

		sum := w1.Superpose(w2, xs, 1e-15)
		for _, v := range sum {
			assert.InDelta(t, 0, v, 1e-9)
		}
	})

	t.Run("scalar superposition matches slice form", func(t *testing.T) {
		w1, err := NewWave(1.0, 600e-9, 0)
		require.NoError(t, err)
		w2, err := NewWave(0.5, 600e-9, math.Pi/2)
		require.NoError(t, err)

		sum := w1.Superpose(w2, xs, 0)
		for i, x := range xs {
			assert.Equal(t, w1.SuperposeAt(w2, x, 0), sum[i])
		}
	})
}

func TestGrid(t *testing.T) {
	xs := Grid(0, 1, 5)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, xs)
	assert.Equal(t, []float64{2}, Grid(2, 3, 1))
}
