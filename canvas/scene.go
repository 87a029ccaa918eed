package canvas

import (
	"fmt"

	"routeplan/core"
	"routeplan/geometry"
)

// Default glyphs.
const (
	GlyphObstacle     = '█'
	GlyphFootprint    = '░'
	GlyphGridRoute    = '•'
	GlyphEvolvedRoute = '*'
	GlyphCheckpoint   = 'o'
	GlyphStart        = 'S'
	GlyphEnd          = 'E'
)

// Glyphs is the character set used for one rendering.
type Glyphs struct {
	Obstacle     rune
	Footprint    rune
	GridRoute    rune
	EvolvedRoute rune
	Checkpoint   rune
	Start        rune
	End          rune
}

var (
	// UnicodeGlyphs is the default glyph set.
	UnicodeGlyphs = Glyphs{
		Obstacle:     GlyphObstacle,
		Footprint:    GlyphFootprint,
		GridRoute:    GlyphGridRoute,
		EvolvedRoute: GlyphEvolvedRoute,
		Checkpoint:   GlyphCheckpoint,
		Start:        GlyphStart,
		End:          GlyphEnd,
	}
	// ASCIIGlyphs is used on terminals without UTF-8.
	ASCIIGlyphs = Glyphs{
		Obstacle:     '#',
		Footprint:    ':',
		GridRoute:    '.',
		EvolvedRoute: '*',
		Checkpoint:   'o',
		Start:        'S',
		End:          'E',
	}
)

// Layer is a named polyline drawn with one glyph.
type Layer struct {
	Name   string
	Points []core.Point
	Glyph  rune
}

// Scene is everything drawn for one planning run, in world coordinates.
// FootprintRadius, when positive, also draws each obstacle as a disc
// centred on its anchor, which is how the evolutionary planner sees it.
type Scene struct {
	Window          core.Bounds
	Obstacles       core.ObstacleSet
	Checkpoints     []core.Point
	Layers          []Layer
	Glyphs          Glyphs
	FootprintRadius float64
}

// NewScene creates an empty scene over window using UnicodeGlyphs.
func NewScene(window core.Bounds, set core.ObstacleSet) *Scene {
	return &Scene{Window: window, Obstacles: set, Glyphs: UnicodeGlyphs}
}

// AddRoute appends a route layer. Empty paths are ignored.
func (s *Scene) AddRoute(name string, path core.Path, glyph rune) {
	if path.IsEmpty() {
		return
	}
	s.Layers = append(s.Layers, Layer{Name: name, Points: path.Points, Glyph: glyph})
}

// Render rasterizes the scene onto a width x height canvas. Footprints and
// then obstacle squares are drawn first, then route layers in order, then checkpoints and the first
// and last point of every layer.
func (s *Scene) Render(width, height int) (*MatrixCanvas, error) {
	if s.Window.IsEmpty() {
		return nil, fmt.Errorf("%w: empty window", ErrInvalidSize)
	}
	c, err := NewMatrixCanvas(width, height)
	if err != nil {
		return nil, err
	}
	proj := projection{window: s.Window, width: width, height: height}

	if s.FootprintRadius > 0 {
		for _, o := range s.Obstacles.Obstacles {
			s.fillFootprint(c, proj, o.Anchor)
		}
	}

	size := s.Obstacles.Size
	for _, o := range s.Obstacles.Obstacles {
		c.FillRect(proj.cell(o.Anchor), proj.cell(o.Anchor.Add(size, size)), s.Glyphs.Obstacle)
	}

	for _, layer := range s.Layers {
		for i := 1; i < len(layer.Points); i++ {
			c.DrawLine(proj.cell(layer.Points[i-1]), proj.cell(layer.Points[i]), layer.Glyph)
		}
	}

	for _, cp := range s.Checkpoints {
		c.Set(proj.cell(cp), s.Glyphs.Checkpoint)
	}
	for _, layer := range s.Layers {
		if len(layer.Points) == 0 {
			continue
		}
		c.Set(proj.cell(layer.Points[0]), s.Glyphs.Start)
		c.Set(proj.cell(layer.Points[len(layer.Points)-1]), s.Glyphs.End)
	}

	return c, nil
}

// fillFootprint marks the cells whose world position lies strictly inside
// the footprint disc around anchor.
func (s *Scene) fillFootprint(c *MatrixCanvas, proj projection, anchor core.Point) {
	r := int(s.FootprintRadius) + 1
	lo := proj.cell(anchor.Add(-r, -r))
	hi := proj.cell(anchor.Add(r, r))
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			cell := core.Point{X: x, Y: y}
			if geometry.Distance(proj.world(cell), anchor) < s.FootprintRadius {
				c.setClipped(x, y, s.Glyphs.Footprint)
			}
		}
	}
}

// projection maps world coordinates onto canvas cells.
type projection struct {
	window        core.Bounds
	width, height int
}

func (p projection) cell(pt core.Point) core.Point {
	return core.Point{
		X: (pt.X - p.window.Min.X) * (p.width - 1) / p.window.Width(),
		Y: (pt.Y - p.window.Min.Y) * (p.height - 1) / p.window.Height(),
	}
}

// world maps a cell back to the world coordinate of its origin.
func (p projection) world(cell core.Point) core.Point {
	return core.Point{
		X: p.window.Min.X + cell.X*p.window.Width()/max(p.width-1, 1),
		Y: p.window.Min.Y + cell.Y*p.window.Height()/max(p.height-1, 1),
	}
}
