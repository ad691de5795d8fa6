package underwriting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"Millions abbreviate", 1234567, "$1.23M"},
		{"Negative millions", -2500000, "$-2.50M"},
		{"Thousands grouped", 450000, "$450,000"},
		{"Small amount", 950, "$950"},
		{"Negative amount", -12500, "-$12,500"},
		{"Zero", 0, "$0"},
		{"Rounds to whole dollars", 1234.56, "$1,235"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(tt.value))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "7.3%", FormatPercent(7.26, 1))
	assert.Equal(t, "0.0%", FormatPercent(0, 1))
	assert.Equal(t, "-4.5%", FormatPercent(-4.5, 1))
}

func TestFormatMultiple(t *testing.T) {
	assert.Equal(t, "2.10x", FormatMultiple(2.1))
	assert.Equal(t, "0.00x", FormatMultiple(0))
}
