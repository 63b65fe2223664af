package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalText(t *testing.T) {
	valid := map[string]Mode{
		"wavelength":  Wavelength,
		"amplitude":   Amplitude,
		"phase":       Phase,
		"propagation": Propagation,
		"spectrum":    Spectrum,
		"coherence":   Coherence,
		"ascan":       AScan,
		"bscan":       BScan,
		"visibility":  Visibility,
		"record":      Record,
	}
	for text, want := range valid {
		got, err := UnmarshalText(text)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, text, got.String())
	}

	for _, text := range []string{"", "v", "i", "Wavelength", "unknown"} {
		_, err := UnmarshalText(text)
		assert.Error(t, err, "expected %q to be rejected", text)
	}
}
