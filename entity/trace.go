package entity

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"
)

// countScale converts normalized detector intensity to ADC-like
// integer counts in scan recordings.
const countScale = 1 << 20

// Scan describes how a Michelson reference mirror is swept while the
// detector is sampled: the source center wavelength (m), the mirror
// speed (m/s), the sampling interval (s), and how many fringe periods
// one visibility window spans.
type Scan struct {
	Wavelength     float64
	Speed          float64
	SampleInterval float64
	PeriodNumber   int
}

func (s Scan) validate() error {
	if s.Wavelength <= 0 {
		return fmt.Errorf("scan wavelength must be positive, got %g", s.Wavelength)
	}
	if s.Speed <= 0 {
		return fmt.Errorf("scan speed must be positive, got %g", s.Speed)
	}
	if s.SampleInterval <= 0 {
		return fmt.Errorf("sample interval must be positive, got %g", s.SampleInterval)
	}
	if s.PeriodNumber < 1 {
		return fmt.Errorf("period number must be at least 1, got %d", s.PeriodNumber)
	}
	if s.WindowSize() < 1 {
		return fmt.Errorf("sampling too coarse: path step %g exceeds the fringe period %g", s.PathStep(), s.Wavelength)
	}
	return nil
}

// PathStep returns the path-difference increment between consecutive
// samples. The mirror moves Speed·SampleInterval per sample and the
// round trip doubles nothing here: path difference is tracked directly.
func (s Scan) PathStep() float64 {
	return s.Speed * s.SampleInterval
}

// WindowSize returns the number of samples in one visibility window:
// PeriodNumber fringe periods at the center wavelength.
func (s Scan) WindowSize() int {
	return int(s.Wavelength/s.PathStep()) * s.PeriodNumber
}

// WindowLength returns the path difference covered by one window.
func (s Scan) WindowLength() float64 {
	return float64(s.WindowSize()) * s.PathStep()
}

// PathGrid returns the path differences of n consecutive samples,
// centered so the scan crosses zero path difference at its midpoint.
func (s Scan) PathGrid(n int) []float64 {
	dx := s.PathStep()
	half := float64(n-1) / 2
	dls := make([]float64, n)
	for i := range dls {
		dls[i] = (float64(i) - half) * dx
	}
	return dls
}

// Trace is one analyzed scan recording: the fringe visibility per
// window, ready to plot.
type Trace struct {
	name    string
	data    []opts.LineData
	minimum int32
	scan    Scan
	zeroIdx int
}

func NewTrace(name string, scan Scan) (*Trace, error) {
	if name == "" {
		return nil, errors.New("name is empty")
	}
	if err := scan.validate(); err != nil {
		return nil, err
	}
	return &Trace{name: name, scan: scan}, nil
}

func (t *Trace) Name() string {
	return t.name
}

func (t *Trace) Data() []opts.LineData {
	return t.data
}

// ZeroIdx returns the window index of peak visibility, taken as the
// zero path difference position of the scan.
func (t *Trace) ZeroIdx() int {
	return t.zeroIdx
}

// PathAxis returns the path difference at each window center, with
// zero at the peak visibility window.
func (t *Trace) PathAxis() []float64 {
	wl := t.scan.WindowLength()
	axis := make([]float64, len(t.data))
	for i := range axis {
		axis[i] = float64(i-t.zeroIdx) * wl
	}
	return axis
}

// SetVisibilityFromFile streams a scan recording and computes the
// fringe visibility (max−min)/(max+min) over consecutive windows. The
// recording's global minimum is subtracted first so visibility is
// measured against the true intensity floor.
func (t *Trace) SetVisibilityFromFile(filename string) error {
	start := time.Now()
	defer func() {
		log.WithFields(log.Fields{
			"file":    filename,
			"windows": len(t.data),
			"time":    time.Since(start),
		}).Debug("Visibility computed")
	}()

	minimum, err := scanMinimum(filename)
	if err != nil {
		return fmt.Errorf("failed to find recording minimum: %w", err)
	}
	t.minimum = minimum

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open recording: %w", err)
	}
	defer file.Close()

	fi, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat recording: %w", err)
	}
	sampleCount := int(fi.Size() / 8)

	win := t.scan.WindowSize()

	sampleChan := make(chan int32, 1<<10)
	visibilityChan := make(chan float64, 1<<10)

	var readErr error
	go func() {
		defer close(sampleChan)
		readErr = readSamples(bufio.NewReader(file), sampleChan)
	}()
	go func() {
		defer close(visibilityChan)
		t.windowVisibility(sampleChan, visibilityChan)
	}()

	t.data = make([]opts.LineData, 0, (sampleCount+win)/win)
	maxVisibility := 0.0
	for v := range visibilityChan {
		if v > maxVisibility {
			maxVisibility = v
			t.zeroIdx = len(t.data)
		}
		t.data = append(t.data, opts.LineData{Value: v})
	}
	if readErr != nil {
		return fmt.Errorf("failed to read recording: %w", readErr)
	}
	if len(t.data) == 0 {
		return fmt.Errorf("recording %s is shorter than one window (%d samples)", filename, win)
	}
	return nil
}

// EstimateCoherenceLength returns the FWHM of the visibility curve in
// path difference units, measured as the contiguous run of windows at
// or above half peak around the peak window, so disjoint side lobes do
// not widen the estimate. On a recording of a Gaussian-spectrum source
// this recovers the source coherence length up to window quantization.
func (t *Trace) EstimateCoherenceLength() float64 {
	if len(t.data) == 0 {
		return 0
	}
	peak := t.data[t.zeroIdx].Value.(float64)
	if peak <= 0 {
		return 0
	}
	half := peak / 2
	lo, hi := t.zeroIdx, t.zeroIdx
	for lo > 0 && t.data[lo-1].Value.(float64) >= half {
		lo--
	}
	for hi < len(t.data)-1 && t.data[hi+1].Value.(float64) >= half {
		hi++
	}
	return float64(hi-lo+1) * t.scan.WindowLength()
}

func (t *Trace) windowVisibility(samples <-chan int32, visibilities chan<- float64) {
	win := t.scan.WindowSize()
	i := 0
	minimum, maximum := int32(math.MaxInt32), int32(0)
	for sample := range samples {
		sample -= t.minimum
		if sample < minimum {
			minimum = sample
		}
		if sample > maximum {
			maximum = sample
		}
		i++
		if i == win {
			// A flat window sitting on the intensity floor has no
			// fringes, not NaN.
			if sum := maximum + minimum; sum == 0 {
				visibilities <- 0
			} else {
				visibilities <- float64(maximum-minimum) / float64(sum)
			}
			i = 0
			minimum, maximum = math.MaxInt32, 0
		}
	}
}

func scanMinimum(filename string) (int32, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to open recording: %w", err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	word := [8]byte{}
	minimum := int32(math.MaxInt32)
	for {
		if _, err := io.ReadFull(br, word[:]); err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("failed to read sample: %w", err)
		}
		if v := int32(binary.BigEndian.Uint64(word[:])); v < minimum {
			minimum = v
		}
	}
	if minimum == math.MaxInt32 {
		minimum = 0
	}
	return minimum, nil
}

func readSamples(br *bufio.Reader, samples chan<- int32) error {
	word := [8]byte{}
	for {
		if _, err := io.ReadFull(br, word[:]); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		samples <- int32(binary.BigEndian.Uint64(word[:]))
	}
}

// Record writes normalized intensity samples as a scan recording:
// one 8-byte big-endian word per sample carrying a signed 32-bit
// count. The format matches what SetVisibilityFromFile reads, so
// synthesized and externally captured scans are interchangeable.
func Record(filename string, intensities []float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create recording: %w", err)
	}
	defer file.Close()

	bw := bufio.NewWriter(file)
	word := [8]byte{}
	for _, intensity := range intensities {
		count := int32(math.Round(intensity * countScale))
		binary.BigEndian.PutUint64(word[:], uint64(uint32(count)))
		if _, err := bw.Write(word[:]); err != nil {
			return fmt.Errorf("failed to write sample: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush recording: %w", err)
	}
	return nil
}
