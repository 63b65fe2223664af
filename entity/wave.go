package entity

import (
	"fmt"
	"math"
)

// SpeedOfLight is the vacuum propagation speed used for every
// wavelength-to-frequency conversion, in m/s.
const SpeedOfLight = 3e8

// Wave is a monochromatic plane wave E(x,t) = A·sin(kx − ωt + φ).
// It is immutable after construction; every method is a pure function
// of its fields and the supplied coordinates.
type Wave struct {
	amplitude  float64
	wavelength float64
	phase      float64
}

// NewWave validates the parameters and builds a wave. Amplitude is in
// relative field units, wavelength in meters, phase in radians.
func NewWave(amplitude, wavelength, phase float64) (*Wave, error) {
	if amplitude <= 0 {
		return nil, fmt.Errorf("amplitude must be positive, got %g", amplitude)
	}
	if wavelength <= 0 {
		return nil, fmt.Errorf("wavelength must be positive, got %g", wavelength)
	}
	return &Wave{
		amplitude:  amplitude,
		wavelength: wavelength,
		phase:      phase,
	}, nil
}

func (w *Wave) Amplitude() float64 {
	return w.amplitude
}

func (w *Wave) Wavelength() float64 {
	return w.wavelength
}

func (w *Wave) Phase() float64 {
	return w.phase
}

// WaveNumber returns k = 2π/λ in rad/m.
func (w *Wave) WaveNumber() float64 {
	return 2 * math.Pi / w.wavelength
}

// Frequency returns ν = c/λ in Hz.
func (w *Wave) Frequency() float64 {
	return SpeedOfLight / w.wavelength
}

// AngularFrequency returns ω = 2πν in rad/s.
func (w *Wave) AngularFrequency() float64 {
	return 2 * math.Pi * w.Frequency()
}

// Period returns T = 1/ν in seconds.
func (w *Wave) Period() float64 {
	return w.wavelength / SpeedOfLight
}

// Intensity returns the relative intensity A². Proportionality only,
// not absolute radiometric units.
func (w *Wave) Intensity() float64 {
	return w.amplitude * w.amplitude
}

// ElectricField evaluates the field at position x (meters) and time t
// (seconds). Defined for all real x and t.
func (w *Wave) ElectricField(x, t float64) float64 {
	return w.amplitude * math.Sin(w.WaveNumber()*x-w.AngularFrequency()*t+w.phase)
}

// ElectricFieldOver evaluates the field at every position in xs at a
// single instant t. The result has the same length and order as xs.
func (w *Wave) ElectricFieldOver(xs []float64, t float64) []float64 {
	k := w.WaveNumber()
	omega := w.AngularFrequency()
	fields := make([]float64, len(xs))
	for i, x := range xs {
		fields[i] = w.amplitude * math.Sin(k*x-omega*t+w.phase)
	}
	return fields
}

// SuperposeAt returns the summed field of the two waves at a single
// coordinate pair.
func (w *Wave) SuperposeAt(other *Wave, x, t float64) float64 {
	return w.ElectricField(x, t) + other.ElectricField(x, t)
}

// Superpose returns the elementwise sum of both fields evaluated at
// identical coordinates. A phase difference of 0 between equal waves
// doubles the field, a difference of π cancels it.
func (w *Wave) Superpose(other *Wave, xs []float64, t float64) []float64 {
	sum := w.ElectricFieldOver(xs, t)
	for i, x := range xs {
		sum[i] += other.ElectricField(x, t)
	}
	return sum
}

// Grid returns n evenly spaced positions from start to stop inclusive.
// Demonstrations sample their fields over such grids.
func Grid(start, stop float64, n int) []float64 {
	if n < 2 {
		return []float64{start}
	}
	xs := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range xs {
		xs[i] = start + float64(i)*step
	}
	return xs
}
