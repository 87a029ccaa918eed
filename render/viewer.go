// Package render shows planned routes in the terminal.
package render

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"routeplan/canvas"
)

// Styles per scene glyph. Unknown glyphs use the default style.
var glyphStyles = map[rune]tcell.Style{
	canvas.GlyphObstacle:     tcell.StyleDefault.Foreground(tcell.ColorGray),
	canvas.GlyphFootprint:    tcell.StyleDefault.Foreground(tcell.ColorOlive),
	canvas.GlyphGridRoute:    tcell.StyleDefault.Foreground(tcell.ColorGreen),
	canvas.GlyphEvolvedRoute: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	canvas.GlyphCheckpoint:   tcell.StyleDefault.Foreground(tcell.ColorAqua),
	canvas.GlyphStart:        tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	canvas.GlyphEnd:          tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),

	canvas.ASCIIGlyphs.Obstacle:  tcell.StyleDefault.Foreground(tcell.ColorGray),
	canvas.ASCIIGlyphs.GridRoute: tcell.StyleDefault.Foreground(tcell.ColorGreen),
}

var statusStyle = tcell.StyleDefault.Reverse(true)

// Viewer draws a scene on a tcell screen and redraws it on resize. The
// bottom row is reserved for a status line.
type Viewer struct {
	screen tcell.Screen
	scene  *canvas.Scene
	status string
	color  bool
}

// NewViewer creates a viewer on an initialized screen.
func NewViewer(screen tcell.Screen, scene *canvas.Scene) *Viewer {
	return &Viewer{screen: screen, scene: scene, color: true}
}

// OpenTerminal initializes the controlling terminal and returns a viewer
// for it. Close must be called to restore the terminal.
func OpenTerminal(scene *canvas.Scene) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	return NewViewer(screen, scene), nil
}

// Close releases the screen.
func (v *Viewer) Close() {
	v.screen.Fini()
}

// SetColor enables or disables per-glyph colors.
func (v *Viewer) SetColor(color bool) {
	v.color = color
}

// SetStatus sets the text of the status line.
func (v *Viewer) SetStatus(status string) {
	v.status = status
}

// Draw renders the scene at the current screen size.
func (v *Viewer) Draw() error {
	v.screen.Clear()
	width, height := v.screen.Size()
	if width <= 0 || height <= 1 {
		v.screen.Show()
		return nil
	}

	c, err := v.scene.Render(width, height-1)
	if err != nil {
		return err
	}
	for y, row := range c.Matrix() {
		for x, r := range row {
			if r == ' ' {
				continue
			}
			style, ok := glyphStyles[r]
			if !ok || !v.color {
				style = tcell.StyleDefault
			}
			v.screen.SetContent(x, y, r, nil, style)
		}
	}

	x := 0
	for _, r := range v.status {
		if x >= width {
			break
		}
		v.screen.SetContent(x, height-1, r, nil, statusStyle)
		x++
	}

	v.screen.Show()
	return nil
}

// Run draws the scene and handles events until the user quits with Esc, q
// or Ctrl-C, or ctx is done. A user quit returns nil.
func (v *Viewer) Run(ctx context.Context) error {
	if err := v.Draw(); err != nil {
		return err
	}

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuitKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				v.screen.Sync()
				if err := v.Draw(); err != nil {
					return err
				}
			}
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
