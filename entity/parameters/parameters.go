package parameters

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layer is one reflecting interface of the synthetic B-scan phantom.
// Depth is at the leftmost column; Tilt shifts the depth per column so
// layers need not be flat.
type Layer struct {
	Depth        float64 `yaml:"depth"`
	Reflectivity float64 `yaml:"reflectivity"`
	Tilt         float64 `yaml:"tilt"`
}

// Parameters collects every knob the demonstrations read. Zero values
// are filled from Default; a yaml file overrides individual fields.
type Parameters struct {
	// Field demonstrations.
	GridSpan    float64   `yaml:"gridSpan"`    // meters
	GridSamples int       `yaml:"gridSamples"` // positions per grid
	Wavelength  float64   `yaml:"wavelength"`  // meters, monochromatic demos
	Wavelengths []float64 `yaml:"wavelengths"` // meters, wavelength comparison
	Amplitudes  []float64 `yaml:"amplitudes"`  // relative, amplitude comparison
	TimeSteps   []float64 `yaml:"timeSteps"`   // seconds, propagation snapshots

	// Low-coherence source.
	CenterWavelength float64   `yaml:"centerWavelength"` // meters
	Bandwidth        float64   `yaml:"bandwidth"`        // meters, FWHM
	Bandwidths       []float64 `yaml:"bandwidths"`       // meters, coherence comparison

	// Mirror scan.
	ScanSpeed      float64 `yaml:"scanSpeed"`      // m/s
	SampleInterval float64 `yaml:"sampleInterval"` // seconds
	ScanTime       float64 `yaml:"scanTime"`       // seconds
	PeriodNumber   int     `yaml:"periodNumber"`   // fringe periods per window

	// A-scan / B-scan synthesis.
	DepthRange   float64 `yaml:"depthRange"`   // meters
	DepthSamples int     `yaml:"depthSamples"` // depths per A-scan
	Columns      int     `yaml:"columns"`      // lateral positions per B-scan
	Layers       []Layer `yaml:"layers"`
}

func Default() *Parameters {
	return &Parameters{
		GridSpan:    3e-6,
		GridSamples: 1000,
		Wavelength:  600e-9,
		Wavelengths: []float64{700e-9, 550e-9, 450e-9},
		Amplitudes:  []float64{0.3, 0.7, 1.0},
		TimeSteps:   []float64{0, 0.5e-15, 1.0e-15, 1.5e-15},

		CenterWavelength: 1310e-9,
		Bandwidth:        50e-9,
		Bandwidths:       []float64{20e-9, 50e-9, 100e-9},

		ScanSpeed:      0.008,
		SampleInterval: 1e-6,
		ScanTime:       0.0125,
		PeriodNumber:   1,

		DepthRange:   200e-6,
		DepthSamples: 600,
		Columns:      64,
		Layers: []Layer{
			{Depth: 50e-6, Reflectivity: 0.9},
			{Depth: 90e-6, Reflectivity: 0.6, Tilt: 0.3e-6},
			{Depth: 140e-6, Reflectivity: 0.4, Tilt: -0.2e-6},
		},
	}
}

// Load returns the defaults overlaid with the yaml file at path. An
// empty path returns the defaults unchanged.
func Load(path string) (*Parameters, error) {
	params := Default()
	if path == "" {
		return params, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters file: %w", err)
	}
	if err := yaml.Unmarshal(raw, params); err != nil {
		return nil, fmt.Errorf("failed to parse parameters file: %w", err)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters in %s: %w", path, err)
	}
	return params, nil
}

func (p *Parameters) Validate() error {
	if p.GridSpan <= 0 {
		return fmt.Errorf("gridSpan must be positive, got %g", p.GridSpan)
	}
	if p.GridSamples < 2 {
		return fmt.Errorf("gridSamples must be at least 2, got %d", p.GridSamples)
	}
	if p.Wavelength <= 0 {
		return fmt.Errorf("wavelength must be positive, got %g", p.Wavelength)
	}
	if len(p.Wavelengths) == 0 {
		return fmt.Errorf("wavelengths must not be empty")
	}
	for _, wl := range p.Wavelengths {
		if wl <= 0 {
			return fmt.Errorf("wavelengths must be positive, got %g", wl)
		}
	}
	if len(p.Amplitudes) == 0 {
		return fmt.Errorf("amplitudes must not be empty")
	}
	for _, a := range p.Amplitudes {
		if a <= 0 {
			return fmt.Errorf("amplitudes must be positive, got %g", a)
		}
	}
	if p.CenterWavelength <= 0 {
		return fmt.Errorf("centerWavelength must be positive, got %g", p.CenterWavelength)
	}
	if p.Bandwidth <= 0 || p.Bandwidth >= p.CenterWavelength {
		return fmt.Errorf("bandwidth must be in (0, centerWavelength), got %g", p.Bandwidth)
	}
	if p.ScanSpeed <= 0 {
		return fmt.Errorf("scanSpeed must be positive, got %g", p.ScanSpeed)
	}
	if p.SampleInterval <= 0 {
		return fmt.Errorf("sampleInterval must be positive, got %g", p.SampleInterval)
	}
	if p.ScanTime <= 0 {
		return fmt.Errorf("scanTime must be positive, got %g", p.ScanTime)
	}
	if p.PeriodNumber < 1 {
		return fmt.Errorf("periodNumber must be at least 1, got %d", p.PeriodNumber)
	}
	if step := p.ScanSpeed * p.SampleInterval; step > p.CenterWavelength {
		return fmt.Errorf("scan sampling too coarse: one sample moves %g, more than the center wavelength %g", step, p.CenterWavelength)
	}
	if p.DepthRange <= 0 {
		return fmt.Errorf("depthRange must be positive, got %g", p.DepthRange)
	}
	if p.DepthSamples < 2 {
		return fmt.Errorf("depthSamples must be at least 2, got %d", p.DepthSamples)
	}
	if p.Columns < 1 {
		return fmt.Errorf("columns must be at least 1, got %d", p.Columns)
	}
	for i, layer := range p.Layers {
		if layer.Depth <= 0 {
			return fmt.Errorf("layer %d depth must be positive, got %g", i, layer.Depth)
		}
		if layer.Reflectivity <= 0 || layer.Reflectivity > 1 {
			return fmt.Errorf("layer %d reflectivity must be in (0, 1], got %g", i, layer.Reflectivity)
		}
	}
	return nil
}

// ScanSamples returns how many detector samples one full scan yields.
func (p *Parameters) ScanSamples() int {
	return int(p.ScanTime / p.SampleInterval)
}
