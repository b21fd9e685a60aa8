package packages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommaList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple", "a,b,c", []string{"a", "b", "c"}},
		{"trims whitespace", " hiking ,  beach , food ", []string{"hiking", "beach", "food"}},
		{"drops empties", "a,,b, ,c", []string{"a", "b", "c"}},
		{"preserves order", "day 3, day 1, day 2", []string{"day 3", "day 1", "day 2"}},
		{"preserves duplicates", "museum, museum", []string{"museum", "museum"}},
		{"empty input", "", []string{}},
		{"only separators", " , , ", []string{}},
		{"single entry", "solo", []string{"solo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCommaList(tt.input))
		})
	}
}

func TestJoinCommaList(t *testing.T) {
	assert.Equal(t, "hiking, beach", JoinCommaList([]string{"hiking", "beach"}))
	assert.Equal(t, "", JoinCommaList(nil))
	assert.Equal(t, "solo", JoinCommaList([]string{"solo"}))
}

func TestParseJoinRoundTrip(t *testing.T) {
	original := []string{"day 1: arrival", "day 2: summit", "day 3: descent"}
	parsed := ParseCommaList(JoinCommaList(original))
	assert.Equal(t, original, parsed)
}

func TestStringListValueScanRoundTrip(t *testing.T) {
	original := StringList{"hiking", "beach", "food"}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned StringList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func TestStringListScanAcceptsString(t *testing.T) {
	var scanned StringList
	require.NoError(t, scanned.Scan(`["a","b"]`))
	assert.Equal(t, StringList{"a", "b"}, scanned)
}

func TestStringListScanNil(t *testing.T) {
	var scanned StringList
	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)
}

func TestPackageResponseAvailableSeatsFloorsAtZero(t *testing.T) {
	pkg := Package{
		Title:       "Overbooked Trip",
		TotalSeats:  10,
		BookedSeats: 12,
	}
	resp := pkg.ToResponse()
	assert.Equal(t, 0, resp.AvailableSeats)

	pkg.BookedSeats = 4
	resp = pkg.ToResponse()
	assert.Equal(t, 6, resp.AvailableSeats)
}
