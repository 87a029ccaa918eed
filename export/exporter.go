// Package export writes planning results as JSON, ASCII art or PNG plots.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"routeplan/canvas"
	"routeplan/core"
	"routeplan/genetic"
	"routeplan/pathfinding"
)

// ErrUnsupportedFormat is returned for unknown export formats.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents an export format
type Format string

const (
	// FormatJSON exports the report as indented JSON
	FormatJSON Format = "json"
	// FormatASCII exports a character map of the scenario and routes
	FormatASCII Format = "ascii"
	// FormatPNG exports a plot image
	FormatPNG Format = "png"
)

// RouteKind identifies which planner produced a route.
type RouteKind string

const (
	KindGrid    RouteKind = "grid"
	KindEvolved RouteKind = "evolved"
)

// Skip describes a checkpoint pair the grid planner could not connect.
type Skip struct {
	Index  int        `json:"index"`
	From   core.Point `json:"from"`
	To     core.Point `json:"to"`
	Reason string     `json:"reason"`
}

// Route is one planned route.
type Route struct {
	Kind    RouteKind `json:"kind"`
	Path    core.Path `json:"path"`
	Length  float64   `json:"length"`
	Skipped []Skip    `json:"skipped,omitempty"`
}

// Report is the data written by every exporter.
type Report struct {
	Window      core.Bounds      `json:"window"`
	Obstacles   core.ObstacleSet `json:"obstacles"`
	Checkpoints []core.Point     `json:"checkpoints,omitempty"`
	Routes      []Route          `json:"routes"`
	History     []genetic.Stats  `json:"history,omitempty"`
}

// NewReport creates an empty report for a window and obstacle layout.
func NewReport(window core.Bounds, set core.ObstacleSet) *Report {
	return &Report{Window: window, Obstacles: set}
}

// AddGridRoute records the simplified grid route and its skipped segments.
func (r *Report) AddGridRoute(result *pathfinding.RouteResult) {
	route := Route{Kind: KindGrid, Path: result.Simplified, Length: result.Simplified.Cost}
	for _, s := range result.Skipped {
		route.Skipped = append(route.Skipped, Skip{
			Index:  s.Index,
			From:   s.From,
			To:     s.To,
			Reason: s.Err.Error(),
		})
	}
	r.Routes = append(r.Routes, route)
}

// AddEvolvedRoute records the best evolved route and the run's history.
func (r *Report) AddEvolvedRoute(result *genetic.Result) {
	r.Routes = append(r.Routes, Route{
		Kind:   KindEvolved,
		Path:   result.Path(),
		Length: result.Best.Length,
	})
	r.History = result.History
}

// Scene converts the report into a drawable scene with Unicode glyphs.
func (r *Report) Scene() *canvas.Scene {
	return r.SceneWith(canvas.UnicodeGlyphs)
}

// SceneWith converts the report into a drawable scene with the given glyphs.
func (r *Report) SceneWith(glyphs canvas.Glyphs) *canvas.Scene {
	scene := canvas.NewScene(r.Window, r.Obstacles)
	scene.Glyphs = glyphs
	scene.Checkpoints = r.Checkpoints
	for _, route := range r.Routes {
		scene.AddRoute(string(route.Kind), route.Path, glyphFor(route.Kind, glyphs))
		if route.Kind == KindEvolved {
			scene.FootprintRadius = float64(r.Obstacles.Size) / 2
		}
	}
	return scene
}

// Summary returns one line per route in the form the command line prints.
func (r *Report) Summary() string {
	var sb strings.Builder
	for _, route := range r.Routes {
		fmt.Fprintf(&sb, "%s route: %d points, length %.2f\n", route.Kind, route.Path.Len(), route.Length)
		for _, s := range route.Skipped {
			fmt.Fprintf(&sb, "  skipped segment %d %v -> %v: %s\n", s.Index, s.From, s.To, s.Reason)
		}
	}
	return sb.String()
}

func (r *Report) hasRoute(kind RouteKind) bool {
	for _, route := range r.Routes {
		if route.Kind == kind {
			return true
		}
	}
	return false
}

func glyphFor(kind RouteKind, glyphs canvas.Glyphs) rune {
	if kind == KindEvolved {
		return glyphs.EvolvedRoute
	}
	return glyphs.GridRoute
}

// Exporter interface for different export formats
type Exporter interface {
	// Export writes the report in the target format
	Export(w io.Writer, r *Report) error
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatASCII:
		return NewASCIIExporter(), nil
	case FormatPNG:
		return NewPNGExporter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "ascii", "text", "txt":
		return FormatASCII, nil
	case "png", "plot":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatJSON,
		FormatASCII,
		FormatPNG,
	}
}
