package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"routeplan/core"
)

var routeColors = map[RouteKind]color.RGBA{
	KindGrid:    {0, 80, 255, 255},
	KindEvolved: {220, 120, 0, 255},
}

// PNGExporter plots the report with gonum/plot
type PNGExporter struct {
	Width  vg.Length
	Height vg.Length
}

// NewPNGExporter creates a new PNG exporter sized 8x6 inches
func NewPNGExporter() *PNGExporter {
	return &PNGExporter{Width: 8 * vg.Inch, Height: 6 * vg.Inch}
}

// Export writes the plot as a PNG image. The Y axis is flipped so the image
// matches screen coordinates.
func (e *PNGExporter) Export(w io.Writer, r *Report) error {
	if r == nil {
		return fmt.Errorf("report is nil")
	}
	p, err := e.plot(r)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(e.Width, e.Height, "png")
	if err != nil {
		return fmt.Errorf("failed to create png writer: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func (e *PNGExporter) plot(r *Report) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Routes"
	p.X.Min, p.X.Max = float64(r.Window.Min.X), float64(r.Window.Max.X)
	p.Y.Min, p.Y.Max = float64(r.Window.Min.Y), float64(r.Window.Max.Y)
	p.Add(plotter.NewGrid())

	flip := func(pt core.Point) plotter.XY {
		return plotter.XY{X: float64(pt.X), Y: float64(r.Window.Max.Y - pt.Y + r.Window.Min.Y)}
	}

	if r.hasRoute(KindEvolved) {
		radius := float64(r.Obstacles.Size) / 2
		for i, o := range r.Obstacles.Obstacles {
			disc, err := plotter.NewPolygon(discXYs(flip(o.Anchor), radius))
			if err != nil {
				return nil, fmt.Errorf("failed to plot footprint %v: %w", o.Anchor, err)
			}
			disc.Color = color.RGBA{220, 120, 0, 60}
			disc.LineStyle.Color = routeColors[KindEvolved]
			p.Add(disc)
			if i == 0 {
				p.Legend.Add("evolved footprint", disc)
			}
		}
	}

	size := r.Obstacles.Size
	for i, o := range r.Obstacles.Obstacles {
		a := o.Anchor
		poly, err := plotter.NewPolygon(plotter.XYs{
			flip(a), flip(a.Add(size, 0)), flip(a.Add(size, size)), flip(a.Add(0, size)),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to plot obstacle %v: %w", a, err)
		}
		poly.Color = color.RGBA{128, 128, 128, 160}
		p.Add(poly)
		if i == 0 {
			p.Legend.Add("grid obstacle", poly)
		}
	}

	for _, route := range r.Routes {
		if route.Path.Len() < 2 {
			continue
		}
		xy := make(plotter.XYs, route.Path.Len())
		for i, pt := range route.Path.Points {
			xy[i] = flip(pt)
		}
		line, points, err := plotter.NewLinePoints(xy)
		if err != nil {
			return nil, fmt.Errorf("failed to plot %s route: %w", route.Kind, err)
		}
		line.Color = routeColors[route.Kind]
		line.Width = vg.Points(1.8)
		points.GlyphStyle.Color = routeColors[route.Kind]
		points.GlyphStyle.Radius = vg.Points(2)
		p.Add(line, points)
		p.Legend.Add(fmt.Sprintf("%s (%.1f)", route.Kind, route.Length), line)
	}

	if len(r.Checkpoints) > 0 {
		xy := make(plotter.XYs, len(r.Checkpoints))
		for i, cp := range r.Checkpoints {
			xy[i] = flip(cp)
		}
		scatter, err := plotter.NewScatter(xy)
		if err != nil {
			return nil, fmt.Errorf("failed to plot checkpoints: %w", err)
		}
		scatter.GlyphStyle.Shape = draw.CrossGlyph{}
		scatter.GlyphStyle.Color = color.RGBA{220, 0, 0, 255}
		scatter.GlyphStyle.Radius = vg.Points(4)
		p.Add(scatter)
		p.Legend.Add("checkpoints", scatter)
	}

	return p, nil
}

// discXYs approximates a circle around c with a polygon.
func discXYs(c plotter.XY, radius float64) plotter.XYs {
	const segments = 32
	xy := make(plotter.XYs, segments)
	for i := range xy {
		a := 2 * math.Pi * float64(i) / segments
		xy[i] = plotter.XY{X: c.X + radius*math.Cos(a), Y: c.Y + radius*math.Sin(a)}
	}
	return xy
}

// GetFileExtension returns the recommended file extension
func (e *PNGExporter) GetFileExtension() string {
	return ".png"
}

// GetFormatName returns the format name
func (e *PNGExporter) GetFormatName() string {
	return "PNG plot"
}
