package sku

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "lowercase is uppercased", raw: "abc1", expected: "ABC1"},
		{name: "mixed case is uppercased", raw: "aBc1", expected: "ABC1"},
		{name: "already canonical", raw: "ABC1", expected: "ABC1"},
		{name: "surrounding whitespace trimmed", raw: "  tm0296 ", expected: "TM0296"},
		{name: "tab and newline trimmed", raw: "\tx1\n", expected: "X1"},
		{name: "digits untouched", raw: "12345", expected: "12345"},
		{name: "empty stays empty", raw: "", expected: ""},
		{name: "whitespace only becomes empty", raw: "   ", expected: ""},
		{name: "inner whitespace preserved", raw: "ab c1", expected: "AB C1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"abc1", " X1 ", "Tm0296", "", "  ", "ab c1", "ÿzed"}

	for _, raw := range inputs {
		once := Normalize(raw)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", raw)
	}
}
