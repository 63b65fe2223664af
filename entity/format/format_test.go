package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalText(t *testing.T) {
	valid := map[string]Format{
		"html": HTML,
		"csv":  Csv,
	}
	for text, want := range valid {
		got, err := UnmarshalText(text)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, text, got.String())
	}

	for _, text := range []string{"", "png", "HTML", "json"} {
		_, err := UnmarshalText(text)
		assert.Error(t, err, "expected %q to be rejected", text)
	}
}
