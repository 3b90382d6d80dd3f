package styles

import (
	"fmt"
	"strings"
)

// Status markers printed before progress lines.
const (
	MarkerDownload = "\U0001F4E5" // inbox tray
	MarkerSuccess  = "\u2705"     // check mark button
	MarkerFailure  = "\u274C"     // cross mark
	MarkerPresent  = "\u2713"     // check mark
	MarkerBanner   = "\U0001F3B5" // musical note
	MarkerSkipped  = "\u23ED"     // next track
)

// RuleWidth is the width of horizontal separators.
const RuleWidth = 50

// FormatRule returns a separator line of RuleWidth '=' characters.
func FormatRule() string {
	return strings.Repeat("=", RuleWidth)
}

// FormatSummary returns the batch summary line.
func FormatSummary(downloaded, failed, skipped int) string {
	return fmt.Sprintf("%d downloaded, %d failed, %d skipped", downloaded, failed, skipped)
}
