package export

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONExporter exports reports to JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export writes the report as indented JSON
func (e *JSONExporter) Export(w io.Writer, r *Report) error {
	if r == nil {
		return fmt.Errorf("report is nil")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}
