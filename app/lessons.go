package app

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"

	"octsim/entity"
)

// wavelengthLesson compares plane waves of different wavelengths over
// the same grid: shorter wavelength, more oscillations, higher
// frequency (c = λν).
func (a *App) wavelengthLesson() (*lesson, error) {
	xs := entity.Grid(0, a.Params.GridSpan, a.Params.GridSamples)
	l := &lesson{xName: "position, nm", x: scale(xs, 1e9)}

	chart := newLineChart(
		"Electromagnetic waves with different wavelengths",
		"Position, nm",
		"Electric field",
	)
	chart.SetXAxis(l.x)

	for _, wl := range a.Params.Wavelengths {
		wave, err := entity.NewWave(1.0, wl, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to create wave: %w", err)
		}
		log.WithFields(log.Fields{
			"wavelength": wave.Wavelength(),
			"frequency":  wave.Frequency(),
		}).Debug("Wave created")
		name := fmt.Sprintf("λ = %.0f nm", wl*1e9)
		fields := wave.ElectricFieldOver(xs, 0)
		l.series = append(l.series, series{name: name, values: fields})
		chart.AddSeries(name, lineData(fields))
	}

	l.charts = []components.Charter{chart}
	return l, nil
}

// amplitudeLesson shows fields at several amplitudes together with the
// resulting relative intensities (I ∝ A²).
func (a *App) amplitudeLesson() (*lesson, error) {
	xs := entity.Grid(0, a.Params.GridSpan, a.Params.GridSamples)
	l := &lesson{xName: "position, nm", x: scale(xs, 1e9)}

	fieldChart := newLineChart(
		"Electromagnetic waves with different amplitudes",
		"Position, nm",
		"Electric field",
	)
	fieldChart.SetXAxis(l.x)

	labels := make([]string, 0, len(a.Params.Amplitudes))
	intensities := make([]opts.BarData, 0, len(a.Params.Amplitudes))

	for _, amplitude := range a.Params.Amplitudes {
		wave, err := entity.NewWave(amplitude, a.Params.Wavelength, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to create wave: %w", err)
		}
		name := fmt.Sprintf("A = %.1f", amplitude)
		fields := wave.ElectricFieldOver(xs, 0)
		l.series = append(l.series, series{name: name, values: fields})
		fieldChart.AddSeries(name, lineData(fields))

		labels = append(labels, name)
		intensities = append(intensities, opts.BarData{Value: wave.Intensity()})
	}

	intensityChart := newBarChart(
		"Relative intensity I = A²",
		"Amplitude",
		"Intensity",
	)
	intensityChart.SetXAxis(labels).AddSeries("intensity", intensities)

	l.charts = []components.Charter{fieldChart, intensityChart}
	return l, nil
}

// phaseLesson superposes wave pairs at phase differences of 0, π and
// π/2: constructive, destructive and partial interference.
func (a *App) phaseLesson() (*lesson, error) {
	xs := entity.Grid(0, a.Params.GridSpan, a.Params.GridSamples)
	l := &lesson{xName: "position, nm", x: scale(xs, 1e9)}

	reference, err := entity.NewWave(1.0, a.Params.Wavelength, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create wave: %w", err)
	}
	referenceFields := reference.ElectricFieldOver(xs, 0)
	l.series = append(l.series, series{name: "wave 1", values: referenceFields})

	cases := []struct {
		title string
		phase float64
	}{
		{"Constructive interference (Δφ = 0)", 0},
		{"Destructive interference (Δφ = π)", math.Pi},
		{"Partial interference (Δφ = π/2)", math.Pi / 2},
	}

	for _, c := range cases {
		other, err := entity.NewWave(1.0, a.Params.Wavelength, c.phase)
		if err != nil {
			return nil, fmt.Errorf("failed to create wave: %w", err)
		}
		otherFields := other.ElectricFieldOver(xs, 0)
		sum := reference.Superpose(other, xs, 0)

		otherName := fmt.Sprintf("wave 2 (φ = %.2f rad)", c.phase)
		sumName := fmt.Sprintf("sum (Δφ = %.2f rad)", c.phase)
		l.series = append(l.series,
			series{name: otherName, values: otherFields},
			series{name: sumName, values: sum},
		)

		chart := newLineChart(c.title, "Position, nm", "Electric field")
		chart.SetXAxis(l.x)
		chart.AddSeries("wave 1", lineData(referenceFields))
		chart.AddSeries(otherName, lineData(otherFields))
		chart.AddSeries(sumName, lineData(sum))
		l.charts = append(l.charts, chart)
	}

	return l, nil
}

// propagationLesson snapshots one wave at several instants; the
// pattern travels toward +x at the speed of light.
func (a *App) propagationLesson() (*lesson, error) {
	xs := entity.Grid(0, a.Params.GridSpan, a.Params.GridSamples)
	l := &lesson{xName: "position, nm", x: scale(xs, 1e9)}

	wave, err := entity.NewWave(1.0, a.Params.Wavelength, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create wave: %w", err)
	}
	log.WithFields(log.Fields{
		"wavelength": wave.Wavelength(),
		"frequency":  wave.Frequency(),
		"period":     wave.Period(),
	}).Debug("Wave created")

	chart := newLineChart(
		"Wave propagation over time",
		"Position, nm",
		"Electric field",
	)
	chart.SetXAxis(l.x)

	for _, t := range a.Params.TimeSteps {
		name := fmt.Sprintf("t = %.1f fs", t*1e15)
		fields := wave.ElectricFieldOver(xs, t)
		l.series = append(l.series, series{name: name, values: fields})
		chart.AddSeries(name, lineData(fields))
	}

	l.charts = []components.Charter{chart}
	return l, nil
}

// spectrumLesson charts the c = λν relationship across the visible
// band, from violet at 380 nm to red at 750 nm.
func (a *App) spectrumLesson() (*lesson, error) {
	wavelengths := entity.Grid(380e-9, 750e-9, a.Params.GridSamples)
	l := &lesson{xName: "wavelength, nm", x: scale(wavelengths, 1e9)}

	frequencies := make([]float64, len(wavelengths))
	for i, wl := range wavelengths {
		wave, err := entity.NewWave(1.0, wl, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to create wave: %w", err)
		}
		frequencies[i] = wave.Frequency()
	}
	l.series = append(l.series, series{name: "frequency, Hz", values: frequencies})

	chart := newLineChart(
		"Wavelength-frequency relationship across the visible spectrum",
		"Wavelength, nm",
		"Frequency, Hz",
	)
	chart.SetXAxis(l.x)
	chart.AddSeries("frequency, Hz", lineData(frequencies))

	l.charts = []components.Charter{chart}
	return l, nil
}

// coherenceLesson synthesizes Michelson interferograms for several
// source bandwidths. The wider the spectrum, the shorter the distance
// over which fringes survive.
func (a *App) coherenceLesson() (*lesson, error) {
	sources := make([]*entity.Source, 0, len(a.Params.Bandwidths))
	lcMax := 0.0
	for _, bw := range a.Params.Bandwidths {
		src, err := entity.NewSource(a.Params.CenterWavelength, bw)
		if err != nil {
			return nil, fmt.Errorf("failed to create source: %w", err)
		}
		log.WithFields(log.Fields{
			"bandwidth":       src.Bandwidth(),
			"coherenceLength": src.CoherenceLength(),
			"axialResolution": src.AxialResolution(),
		}).Info("Source characterized")
		if lc := src.CoherenceLength(); lc > lcMax {
			lcMax = lc
		}
		sources = append(sources, src)
	}

	dls := entity.Grid(-2.5*lcMax, 2.5*lcMax, a.Params.GridSamples)
	l := &lesson{xName: "path difference, um", x: scale(dls, 1e6)}

	chart := newLineChart(
		"Low-coherence interferograms and their envelopes",
		"Path difference, µm",
		"Normalized intensity",
	)
	chart.SetXAxis(l.x)

	for _, src := range sources {
		name := fmt.Sprintf("Δλ = %.0f nm", src.Bandwidth()*1e9)
		intensities := src.InterferogramOver(dls)
		l.series = append(l.series, series{name: name, values: intensities})
		chart.AddSeries(name, lineData(intensities))

		envelope := make([]float64, len(dls))
		for i, dl := range dls {
			envelope[i] = 1 + src.FringeEnvelope(dl)
		}
		envelopeName := fmt.Sprintf("envelope Δλ = %.0f nm", src.Bandwidth()*1e9)
		l.series = append(l.series, series{name: envelopeName, values: envelope})
		chart.AddSeries(envelopeName, lineData(envelope))
	}

	l.charts = []components.Charter{chart}
	return l, nil
}

// ascanLesson synthesizes one depth reflectivity profile of the
// configured layer phantom.
func (a *App) ascanLesson() (*lesson, error) {
	src, err := entity.NewSource(a.Params.CenterWavelength, a.Params.Bandwidth)
	if err != nil {
		return nil, fmt.Errorf("failed to create source: %w", err)
	}
	log.WithFields(log.Fields{
		"coherenceLength": src.CoherenceLength(),
		"axialResolution": src.AxialResolution(),
	}).Info("Source characterized")

	depths := entity.Grid(0, a.Params.DepthRange, a.Params.DepthSamples)
	profile := src.AScan(depths, a.reflectorColumn(0))

	l := &lesson{xName: "depth, um", x: scale(depths, 1e6)}
	l.series = append(l.series, series{name: "reflectivity", values: profile})

	chart := newLineChart(
		"A-scan: depth reflectivity profile",
		"Depth, µm",
		"Reflectivity",
	)
	chart.SetXAxis(l.x)
	chart.AddSeries("reflectivity", lineData(profile))

	l.charts = []components.Charter{chart}
	return l, nil
}

// bscanLesson stacks A-scans over lateral positions into a
// cross-sectional heatmap of the layer phantom.
func (a *App) bscanLesson() (*lesson, error) {
	src, err := entity.NewSource(a.Params.CenterWavelength, a.Params.Bandwidth)
	if err != nil {
		return nil, fmt.Errorf("failed to create source: %w", err)
	}

	depths := entity.Grid(0, a.Params.DepthRange, a.Params.DepthSamples)
	columns := make([][]entity.Reflector, a.Params.Columns)
	for j := range columns {
		columns[j] = a.reflectorColumn(j)
	}
	image := src.BScan(depths, columns)

	maxValue := 0.0
	for _, column := range image {
		for _, v := range column {
			if v > maxValue {
				maxValue = v
			}
		}
	}

	data := make([]opts.HeatMapData, 0, len(image)*len(depths))
	for j, column := range image {
		for i, v := range column {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, v}})
		}
	}

	chart := newHeatMap(
		"B-scan: synthesized cross-section",
		"Lateral position",
		"Depth sample",
		float32(maxValue),
	)
	lateral := make([]int, len(image))
	for j := range lateral {
		lateral[j] = j
	}
	chart.SetXAxis(lateral).AddSeries("reflectivity", data)

	l := &lesson{xName: "depth, um", x: scale(depths, 1e6)}
	for j, column := range image {
		l.series = append(l.series, series{name: fmt.Sprintf("column %d", j), values: column})
	}
	l.charts = []components.Charter{chart}
	return l, nil
}

// reflectorColumn places the configured layers under lateral column j,
// applying each layer's per-column tilt.
func (a *App) reflectorColumn(j int) []entity.Reflector {
	reflectors := make([]entity.Reflector, 0, len(a.Params.Layers))
	for _, layer := range a.Params.Layers {
		reflectors = append(reflectors, entity.Reflector{
			Depth:        layer.Depth + layer.Tilt*float64(j),
			Reflectivity: layer.Reflectivity,
		})
	}
	return reflectors
}
