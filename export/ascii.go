package export

import (
	"fmt"
	"io"
	"strings"

	"routeplan/canvas"
)

// ASCIIExporter draws the report as a character map followed by a summary
type ASCIIExporter struct {
	Width  int
	Height int
	Glyphs canvas.Glyphs
}

// NewASCIIExporter creates a new ASCII exporter with an 80x30 map
func NewASCIIExporter() *ASCIIExporter {
	return &ASCIIExporter{Width: 80, Height: 30, Glyphs: canvas.UnicodeGlyphs}
}

// Export writes the map and route summary
func (e *ASCIIExporter) Export(w io.Writer, r *Report) error {
	if r == nil {
		return fmt.Errorf("report is nil")
	}

	c, err := r.SceneWith(e.Glyphs).Render(e.Width, e.Height)
	if err != nil {
		return fmt.Errorf("failed to render scene: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s\n%s", strings.Join(c.Lines(), "\n"), r.Summary())
	return err
}

// GetFileExtension returns the recommended file extension
func (e *ASCIIExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the format name
func (e *ASCIIExporter) GetFormatName() string {
	return "ASCII map"
}
