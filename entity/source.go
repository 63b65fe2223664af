package entity

import (
	"fmt"
	"math"
)

// Source models a broadband light source feeding a Michelson
// interferometer. Its finite bandwidth limits the path difference over
// which the two arms stay mutually coherent, which is what gives OCT
// its depth resolution.
type Source struct {
	centerWavelength float64
	bandwidth        float64
}

// NewSource builds a source from its center wavelength λ₀ and FWHM
// spectral bandwidth Δλ, both in meters.
func NewSource(centerWavelength, bandwidth float64) (*Source, error) {
	if centerWavelength <= 0 {
		return nil, fmt.Errorf("center wavelength must be positive, got %g", centerWavelength)
	}
	if bandwidth <= 0 {
		return nil, fmt.Errorf("bandwidth must be positive, got %g", bandwidth)
	}
	if bandwidth >= centerWavelength {
		return nil, fmt.Errorf("bandwidth %g must be narrower than the center wavelength %g", bandwidth, centerWavelength)
	}
	return &Source{
		centerWavelength: centerWavelength,
		bandwidth:        bandwidth,
	}, nil
}

func (s *Source) CenterWavelength() float64 {
	return s.centerWavelength
}

func (s *Source) Bandwidth() float64 {
	return s.bandwidth
}

// CoherenceLength returns lc = (2·ln2/π)·λ₀²/Δλ, the path difference
// over which fringe visibility stays above one half for a Gaussian
// spectrum.
func (s *Source) CoherenceLength() float64 {
	return (2 * math.Ln2 / math.Pi) * s.centerWavelength * s.centerWavelength / s.bandwidth
}

// AxialResolution returns lc/2: the round trip through a sample arm
// halves the depth separation two reflectors need to stay resolved.
func (s *Source) AxialResolution() float64 {
	return s.CoherenceLength() / 2
}

// FringeEnvelope returns the fringe visibility at path difference dl.
// The envelope is Gaussian, 1 at dl = 0, and its FWHM equals the
// coherence length.
func (s *Source) FringeEnvelope(dl float64) float64 {
	lc := s.CoherenceLength()
	u := dl / lc
	return math.Exp(-4 * math.Ln2 * u * u)
}

// Interferogram returns the normalized Michelson detector intensity at
// path difference dl:
//
//	I(dl) = 1 + |γ(dl)|·cos(2π·dl/λ₀)
//
// Fringes oscillate at the center wavelength and die out beyond the
// coherence length.
func (s *Source) Interferogram(dl float64) float64 {
	return 1 + s.FringeEnvelope(dl)*math.Cos(2*math.Pi*dl/s.centerWavelength)
}

// InterferogramOver evaluates the interferogram across a scan of path
// differences.
func (s *Source) InterferogramOver(dls []float64) []float64 {
	intensities := make([]float64, len(dls))
	for i, dl := range dls {
		intensities[i] = s.Interferogram(dl)
	}
	return intensities
}

// Reflector is a single scattering interface inside a sample: its
// depth below the surface (meters) and relative reflectivity in [0,1].
type Reflector struct {
	Depth        float64
	Reflectivity float64
}

// AScan synthesizes a depth reflectivity profile: each reflector
// contributes its reflectivity weighted by the fringe envelope at the
// round-trip path difference 2·(z − depth). The result mirrors the
// depths grid.
func (s *Source) AScan(depths []float64, reflectors []Reflector) []float64 {
	profile := make([]float64, len(depths))
	for i, z := range depths {
		for _, r := range reflectors {
			profile[i] += r.Reflectivity * s.FringeEnvelope(2*(z-r.Depth))
		}
	}
	return profile
}

// BScan stacks one A-scan per lateral column into a cross-sectional
// image. columns[j] holds the reflectors under lateral position j; the
// result is indexed [column][depth].
func (s *Source) BScan(depths []float64, columns [][]Reflector) [][]float64 {
	image := make([][]float64, len(columns))
	for j, reflectors := range columns {
		image[j] = s.AScan(depths, reflectors)
	}
	return image
}
