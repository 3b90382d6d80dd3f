// Package styles contains Lip Gloss style definitions.
package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Colors shared by every palette.
var (
	AccentColor  = lipgloss.AdaptiveColor{Light: "#5A3FC0", Dark: "#B4A7F5"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#73F59F"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#FF8787"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#BBBBBB"}
)

// Palette renders text for one output stream. Colors are dropped
// automatically when the stream is not a terminal.
type Palette struct {
	Banner  lipgloss.Style
	Rule    lipgloss.Style
	Heading lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	Muted   lipgloss.Style
}

// NewPalette returns styles bound to w's color profile.
func NewPalette(w io.Writer) Palette {
	r := lipgloss.NewRenderer(w)
	return Palette{
		Banner:  r.NewStyle().Bold(true).Foreground(AccentColor),
		Rule:    r.NewStyle().Foreground(MutedColor),
		Heading: r.NewStyle().Bold(true),
		Success: r.NewStyle().Foreground(SuccessColor),
		Failure: r.NewStyle().Foreground(ErrorColor),
		Muted:   r.NewStyle().Foreground(MutedColor),
	}
}
