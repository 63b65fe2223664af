package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/components"
	log "github.com/sirupsen/logrus"

	"octsim/entity"
	"octsim/entity/format"
	"octsim/entity/mode"
	"octsim/entity/parameters"
)

// App runs one demonstration end to end: build the waves, evaluate
// them over a grid, and write a chart or CSV file.
type App struct {
	Mode   mode.Mode
	Source string
	Output string
	Format format.Format
	Params *parameters.Parameters
}

func New(m mode.Mode, source, output string, f format.Format, params *parameters.Parameters) *App {
	return &App{
		Mode:   m,
		Source: source,
		Output: output,
		Format: f,
		Params: params,
	}
}

type series struct {
	name   string
	values []float64
}

// lesson is one computed demonstration: the charts to render plus the
// raw series for CSV output.
type lesson struct {
	charts []components.Charter
	xName  string
	x      []float64
	series []series
}

type renderable interface {
	Render(w io.Writer) error
}

func (a *App) Run(ctx context.Context) error {
	appTime := time.Now()
	defer func() {
		log.WithField("time", time.Since(appTime)).Debug("App finished")
	}()
	log.WithFields(log.Fields{
		"mode":   a.Mode.String(),
		"format": a.Format.String(),
		"source": a.Source,
		"output": a.Output,
	}).Debug("App started")

	if err := ctx.Err(); err != nil {
		return err
	}

	switch a.Mode {
	case mode.Record:
		return a.record()
	case mode.Visibility:
		return a.visibility()
	}

	l, err := a.buildLesson()
	if err != nil {
		return fmt.Errorf("failed to build demonstration: %w", err)
	}

	if a.Format == format.Csv {
		return a.writeCSV(l)
	}
	return a.renderHTML(l)
}

func (a *App) buildLesson() (*lesson, error) {
	switch a.Mode {
	case mode.Wavelength:
		return a.wavelengthLesson()
	case mode.Amplitude:
		return a.amplitudeLesson()
	case mode.Phase:
		return a.phaseLesson()
	case mode.Propagation:
		return a.propagationLesson()
	case mode.Spectrum:
		return a.spectrumLesson()
	case mode.Coherence:
		return a.coherenceLesson()
	case mode.AScan:
		return a.ascanLesson()
	case mode.BScan:
		return a.bscanLesson()
	default:
		return nil, fmt.Errorf("no demonstration for mode %s", a.Mode)
	}
}

// record synthesizes a Michelson scan of the configured source and
// writes it as a binary recording readable by the visibility mode.
func (a *App) record() error {
	src, err := entity.NewSource(a.Params.CenterWavelength, a.Params.Bandwidth)
	if err != nil {
		return fmt.Errorf("failed to build source: %w", err)
	}
	scan := a.scan()
	dls := scan.PathGrid(a.Params.ScanSamples())
	if err := entity.Record(a.Output, src.InterferogramOver(dls)); err != nil {
		return fmt.Errorf("failed to record scan: %w", err)
	}
	log.WithFields(log.Fields{
		"output":          a.Output,
		"samples":         len(dls),
		"coherenceLength": src.CoherenceLength(),
	}).Info("Scan recorded")
	return nil
}

// visibility analyzes binary scan recordings the way the record mode
// writes them: fringe visibility per window, charted against path
// difference.
func (a *App) visibility() error {
	filePaths, err := getFilenames(a.Source)
	if err != nil {
		return fmt.Errorf("failed to get filenames: %w", err)
	}

	scan := a.scan()
	traces := make([]*entity.Trace, 0, len(filePaths))
	for _, filePath := range filePaths {
		name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		trace, err := entity.NewTrace(name, scan)
		if err != nil {
			return fmt.Errorf("failed to create trace: %w", err)
		}
		if err := trace.SetVisibilityFromFile(filePath); err != nil {
			return fmt.Errorf("failed to analyze %s: %w", filePath, err)
		}
		log.WithFields(log.Fields{
			"file":            filePath,
			"windows":         len(trace.Data()),
			"coherenceLength": trace.EstimateCoherenceLength(),
		}).Info("Trace analyzed")
		traces = append(traces, trace)
	}

	if a.Format == format.Csv {
		l := &lesson{xName: "path difference, m", x: traces[0].PathAxis()}
		for _, trace := range traces {
			l.series = append(l.series, series{name: trace.Name(), values: lineValues(trace)})
		}
		return a.writeCSV(l)
	}

	chart := newLineChart(
		"Fringe visibility of recorded scans",
		"Path difference, m",
		"Visibility",
	)
	chart.SetXAxis(traces[0].PathAxis())
	for _, trace := range traces {
		chart.AddSeries(trace.Name(), trace.Data())
	}
	return a.renderChart(chart)
}

func (a *App) scan() entity.Scan {
	return entity.Scan{
		Wavelength:     a.Params.CenterWavelength,
		Speed:          a.Params.ScanSpeed,
		SampleInterval: a.Params.SampleInterval,
		PeriodNumber:   a.Params.PeriodNumber,
	}
}

func lineValues(trace *entity.Trace) []float64 {
	values := make([]float64, len(trace.Data()))
	for i, d := range trace.Data() {
		values[i] = d.Value.(float64)
	}
	return values
}

func getFilenames(source string) ([]string, error) {
	dir, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer dir.Close()

	fileInfo, err := dir.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	filePaths := make([]string, 0)

	if fileInfo.IsDir() {
		files, err := dir.Readdir(0)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory: %w", err)
		}
		for _, fi := range files {
			if filepath.Ext(fi.Name()) == ".bin" {
				filePaths = append(filePaths, filepath.Join(source, fi.Name()))
				log.WithField("name", fi.Name()).Debug("Found recording")
			}
		}
	} else if filepath.Ext(fileInfo.Name()) == ".bin" {
		filePaths = append(filePaths, source)
	}

	if len(filePaths) == 0 {
		return nil, fmt.Errorf("no recordings found in %s", source)
	}

	return filePaths, nil
}

func (a *App) renderHTML(l *lesson) error {
	if len(l.charts) == 1 {
		if chart, ok := l.charts[0].(renderable); ok {
			return a.renderChart(chart)
		}
	}
	page := components.NewPage()
	page.AddCharts(l.charts...)
	return a.renderChart(page)
}

func (a *App) renderChart(chart renderable) error {
	f, err := os.Create(a.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	renderTime := time.Now()
	if err := chart.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	log.WithFields(log.Fields{
		"output": a.Output,
		"time":   time.Since(renderTime),
	}).Info("Chart rendered and saved")
	return nil
}

func (a *App) writeCSV(l *lesson) error {
	f, err := os.Create(a.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := make([]string, 0, len(l.series)+1)
	header = append(header, l.xName)
	for _, s := range l.series {
		header = append(header, s.name)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(header))
	for i, x := range l.x {
		row[0] = strconv.FormatFloat(x, 'g', -1, 64)
		for j, s := range l.series {
			if i < len(s.values) {
				row[j+1] = strconv.FormatFloat(s.values[i], 'g', -1, 64)
			} else {
				row[j+1] = ""
			}
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	log.WithFields(log.Fields{
		"output": a.Output,
		"rows":   len(l.x),
	}).Info("CSV saved")
	return nil
}
