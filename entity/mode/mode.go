package mode

import "fmt"

// Mode selects which demonstration the app runs.
type Mode uint8

const (
	Wavelength Mode = iota
	Amplitude
	Phase
	Propagation
	Spectrum
	Coherence
	AScan
	BScan
	Visibility
	Record
)

func UnmarshalText(text string) (Mode, error) {
	switch text {
	case "wavelength":
		return Wavelength, nil
	case "amplitude":
		return Amplitude, nil
	case "phase":
		return Phase, nil
	case "propagation":
		return Propagation, nil
	case "spectrum":
		return Spectrum, nil
	case "coherence":
		return Coherence, nil
	case "ascan":
		return AScan, nil
	case "bscan":
		return BScan, nil
	case "visibility":
		return Visibility, nil
	case "record":
		return Record, nil
	default:
		return 0, fmt.Errorf("invalid mode: %q", text)
	}
}

func (m Mode) String() string {
	switch m {
	case Wavelength:
		return "wavelength"
	case Amplitude:
		return "amplitude"
	case Phase:
		return "phase"
	case Propagation:
		return "propagation"
	case Spectrum:
		return "spectrum"
	case Coherence:
		return "coherence"
	case AScan:
		return "ascan"
	case BScan:
		return "bscan"
	case Visibility:
		return "visibility"
	case Record:
		return "record"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}
