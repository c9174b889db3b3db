package text_test

import (
	"strings"
	"testing"

	"williampedia/internal/utils/text"
)

/* ───────── CountRunes ───────── */

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"ASCII text", "hello", 5},
		{"ASCII with spaces", "hello world", 11},
		{"Japanese hiragana", "こんにちは", 5},
		{"mixed", "hello世界", 7},
		{"emoji", "Hello👋", 6},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountRunes(tt.input); got != tt.expected {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

/* ───────── Truncate ───────── */

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"fits", "Gravity is a force.", 50, "Gravity is a force."},
		{"trims surrounding space", "  short  ", 50, "short"},
		{"cuts on word boundary", "The quick brown fox jumps", 12, "The quick…"},
		{"drops trailing punctuation", "Alpha, beta, gamma", 12, "Alpha, beta…"},
		{"no boundary in window", "Supercalifragilistic", 8, "Supercal…"},
		{"multibyte", "日本語のテキストです", 4, "日本語の…"},
		{"zero max", "anything", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.Truncate(tt.input, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncate_NeverExceedsMax(t *testing.T) {
	input := strings.Repeat("lorem ipsum dolor ", 40)
	got := text.Truncate(input, 280)

	body := strings.TrimSuffix(got, text.Ellipsis)
	if n := text.CountRunes(body); n > 280 {
		t.Errorf("truncated body has %d runes, want <= 280", n)
	}
	if !strings.HasSuffix(got, text.Ellipsis) {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
}

func TestCollapseSpace(t *testing.T) {
	if got := text.CollapseSpace(" a \n\t b  c "); got != "a b c" {
		t.Errorf("CollapseSpace() = %q", got)
	}
}
