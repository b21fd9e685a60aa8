package packagetypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Adventure", "adventure"},
		{"spaces to hyphens", "Beach & Relax", "beach-relax"},
		{"strips punctuation", "Wildlife Safari!", "wildlife-safari"},
		{"collapses runs", "Food   &   Wine", "food-wine"},
		{"trims edge hyphens", " - Cultural - ", "cultural"},
		{"keeps digits", "Top 10 Treks", "top-10-treks"},
		{"already a slug", "city-breaks", "city-breaks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateSlug(tt.input))
		})
	}
}
