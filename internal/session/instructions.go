package session

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/soundfetch/internal/source"
)

// Renderer turns markdown into terminal output.
type Renderer interface {
	Render(markdown string) (string, error)
}

// NewRenderer returns a glamour renderer for style ("auto", "dark",
// "light" or "notty").
func NewRenderer(style string) (Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(100)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return r, nil
}

// PlainRenderer returns markdown unchanged.
type PlainRenderer struct{}

// Render implements Renderer.
func (PlainRenderer) Render(markdown string) (string, error) { return markdown, nil }

func setupInstructions(folderID string) string {
	var b strings.Builder
	b.WriteString("## Setup\n\n")
	b.WriteString("To use this tool:\n\n")
	b.WriteString("1. Make sure the Google Drive folder is publicly accessible\n")
	b.WriteString("2. Get the file IDs from the folder\n")
	b.WriteString("3. Add them under `drive.file_ids` in the config file\n")
	b.WriteString("   (run `soundfetch config init` to create one)\n\n")
	b.WriteString("Alternatively:\n\n")
	fmt.Fprintf(&b, "1. Open the Google Drive folder: `%s`\n", source.DriveFolderURL(folderID))
	b.WriteString("2. For each audio file, right-click → 'Get link' → 'Copy link'\n")
	fmt.Fprintf(&b, "3. The file ID is in the URL: `%s`\n", strings.TrimPrefix(source.DriveFileURL("[FILE_ID]"), "https://"))
	b.WriteString("4. Use the direct download URL format:\n")
	fmt.Fprintf(&b, "   `%s`\n", source.DriveURL("[FILE_ID]"))
	return b.String()
}

func manualInstructions(folderID, soundsDir string) string {
	var b strings.Builder
	b.WriteString("## Manual download instructions\n\n")
	b.WriteString("For each audio file in your Google Drive folder:\n\n")
	b.WriteString("1. Right-click the file → 'Get link' → 'Copy link'\n")
	b.WriteString("2. Open the link in a browser\n")
	b.WriteString("3. Right-click 'Download' button → 'Copy link address'\n")
	b.WriteString("4. Use that direct download URL\n\n")
	b.WriteString("Or use the gdown tool:\n\n")
	b.WriteString("```sh\n")
	b.WriteString("pip install gdown\n")
	fmt.Fprintf(&b, "gdown --folder %s -O %s\n", source.DriveFolderURL(folderID), soundsDir)
	b.WriteString("```\n")
	return b.String()
}
