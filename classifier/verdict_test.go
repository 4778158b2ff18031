package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerdictString(t *testing.T) {
	tests := []struct {
		verdict  Verdict
		expected string
	}{
		{VerdictNoChanges, "No Changes"},
		{VerdictProductionUpdate, "Production Update"},
		{VerdictAPIChange, "API Change"},
		{VerdictClassificationError, "Error"},
		{Verdict(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.verdict.String())
		})
	}
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Verdict
		ok       bool
	}{
		{"exact form", "API Change", VerdictAPIChange, true},
		{"lowercase", "api change", VerdictAPIChange, true},
		{"uppercase", "PRODUCTION UPDATE", VerdictProductionUpdate, true},
		{"surrounding whitespace", "  No Changes \n", VerdictNoChanges, true},
		{"error form", "error", VerdictClassificationError, true},
		{"unknown input", "Breaking Change", 0, false},
		{"empty input", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseVerdict(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestParseVerdictRoundTrip(t *testing.T) {
	for _, v := range []Verdict{
		VerdictNoChanges,
		VerdictProductionUpdate,
		VerdictAPIChange,
		VerdictClassificationError,
	} {
		got, ok := ParseVerdict(v.String())
		assert.True(t, ok, "verdict %q must parse back", v.String())
		assert.Equal(t, v, got)
	}
}
