package styles

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatRule(t *testing.T) {
	got := FormatRule()
	if len(got) != RuleWidth {
		t.Errorf("FormatRule() length = %d, want %d", len(got), RuleWidth)
	}
	if strings.Trim(got, "=") != "" {
		t.Errorf("FormatRule() = %q, want only '='", got)
	}
}

func TestFormatSummary(t *testing.T) {
	tests := []struct {
		name       string
		downloaded int
		failed     int
		skipped    int
		expected   string
	}{
		{"all zero", 0, 0, 0, "0 downloaded, 0 failed, 0 skipped"},
		{"mixed", 3, 1, 6, "3 downloaded, 1 failed, 6 skipped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSummary(tt.downloaded, tt.failed, tt.skipped)
			if got != tt.expected {
				t.Errorf("FormatSummary(%d, %d, %d) = %q, want %q",
					tt.downloaded, tt.failed, tt.skipped, got, tt.expected)
			}
		})
	}
}

func TestNewPalette_PlainForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewPalette(&buf)

	if got := p.Success.Render("ok"); got != "ok" {
		t.Errorf("Success.Render() = %q, want plain text for non-terminal writer", got)
	}
}
