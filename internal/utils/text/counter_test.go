package text_test

import (
	"testing"

	"journal-radar/internal/utils/text"
)

// TestCountRunes tests the CountRunes function with various character types
func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{
			name:     "ASCII text",
			input:    "hello",
			expected: 5,
		},
		{
			name:     "ASCII with spaces",
			input:    "hello world",
			expected: 11,
		},
		{
			name:     "Chinese text",
			input:    "作物遗传育种",
			expected: 6,
		},
		{
			name:     "mixed ASCII and Chinese",
			input:    "hello世界",
			expected: 7,
		},
		{
			name:     "empty string",
			input:    "",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := text.CountRunes(tt.input)
			if got != tt.expected {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

// TestTruncate tests rune-safe truncation with the ellipsis suffix
func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{
			name:     "shorter than limit unchanged",
			input:    "hello",
			limit:    10,
			expected: "hello",
		},
		{
			name:     "exactly at limit unchanged",
			input:    "hello",
			limit:    5,
			expected: "hello",
		},
		{
			name:     "ASCII truncated with ellipsis",
			input:    "hello world",
			limit:    5,
			expected: "hello...",
		},
		{
			name:     "Chinese truncated on rune boundary",
			input:    "核心发现：水稻产量基因",
			limit:    4,
			expected: "核心发现...",
		},
		{
			name:     "mixed text truncated on rune boundary",
			input:    "yield基因定位",
			limit:    6,
			expected: "yield基...",
		},
		{
			name:     "empty string",
			input:    "",
			limit:    5,
			expected: "",
		},
		{
			name:     "zero limit",
			input:    "hello",
			limit:    0,
			expected: "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := text.Truncate(tt.input, tt.limit)
			if got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.expected)
			}
		})
	}
}

// TestTruncateNeverSplitsRunes verifies every output is valid UTF-8 at any limit
func TestTruncateNeverSplitsRunes(t *testing.T) {
	input := "水稻WGS分析揭示了drought耐性位点"
	for limit := 0; limit <= text.CountRunes(input); limit++ {
		got := text.Truncate(input, limit)
		for i, r := range got {
			if r == '�' {
				t.Fatalf("Truncate(%q, %d) produced invalid UTF-8 at byte %d: %q", input, limit, i, got)
			}
		}
	}
}
