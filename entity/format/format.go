package format

import "fmt"

// Format selects how computed series are written out.
type Format int8

const (
	HTML Format = iota
	Csv
)

func UnmarshalText(text string) (Format, error) {
	switch text {
	case "html":
		return HTML, nil
	case "csv":
		return Csv, nil
	default:
		return 0, fmt.Errorf("invalid format: %q", text)
	}
}

func (f Format) String() string {
	switch f {
	case HTML:
		return "html"
	case Csv:
		return "csv"
	default:
		return fmt.Sprintf("format(%d)", int8(f))
	}
}
