// Package canvas rasterizes scenarios and routes onto a character grid.
package canvas

import (
	"errors"
	"strings"

	"routeplan/core"
	"routeplan/geometry"
)

// Common errors
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("invalid canvas size")
)

// MatrixCanvas is a rune matrix with simple drawing primitives.
//
// MatrixCanvas is not safe for concurrent writes.
//
// Coordinate System:
//   - Origin (0,0) is top-left
//   - X increases rightward
//   - Y increases downward
//   - All coordinates are in character cells
type MatrixCanvas struct {
	matrix [][]rune
	width  int
	height int
}

// NewMatrixCanvas creates a new canvas with the specified dimensions.
func NewMatrixCanvas(width, height int) (*MatrixCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}

	matrix := make([][]rune, height)
	for y := 0; y < height; y++ {
		matrix[y] = make([]rune, width)
		for x := 0; x < width; x++ {
			matrix[y][x] = ' '
		}
	}

	return &MatrixCanvas{
		matrix: matrix,
		width:  width,
		height: height,
	}, nil
}

// Size returns the width and height of the canvas.
func (c *MatrixCanvas) Size() (width, height int) {
	return c.width, c.height
}

// Matrix returns direct access to the underlying rune matrix.
func (c *MatrixCanvas) Matrix() [][]rune {
	return c.matrix
}

// Get returns the character at the given position.
// Returns ' ' (space) if position is out of bounds.
func (c *MatrixCanvas) Get(p core.Point) rune {
	if !c.inBounds(p.X, p.Y) {
		return ' '
	}
	return c.matrix[p.Y][p.X]
}

// Set places a character at the given position.
func (c *MatrixCanvas) Set(p core.Point, char rune) error {
	if !c.inBounds(p.X, p.Y) {
		return ErrOutOfBounds
	}
	c.matrix[p.Y][p.X] = char
	return nil
}

// Clear resets the canvas to all spaces.
func (c *MatrixCanvas) Clear() {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			c.matrix[y][x] = ' '
		}
	}
}

// String returns the canvas as a string with newlines.
func (c *MatrixCanvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			sb.WriteRune(c.matrix[y][x])
		}
		if y < c.height-1 {
			sb.WriteRune('\n')
		}
	}

	return sb.String()
}

// Lines returns the canvas rows with trailing spaces removed.
func (c *MatrixCanvas) Lines() []string {
	lines := make([]string, c.height)
	for y, row := range c.matrix {
		lines[y] = strings.TrimRight(string(row), " ")
	}
	return lines
}

// FillRect fills the inclusive rectangle spanned by p1 and p2, clipped to
// the canvas.
func (c *MatrixCanvas) FillRect(p1, p2 core.Point, char rune) {
	x1, x2 := geometry.Min(p1.X, p2.X), geometry.Max(p1.X, p2.X)
	y1, y2 := geometry.Min(p1.Y, p2.Y), geometry.Max(p1.Y, p2.Y)
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			c.setClipped(x, y, char)
		}
	}
}

// DrawLine draws a line between two points using Bresenham's algorithm.
// Cells outside the canvas are skipped.
func (c *MatrixCanvas) DrawLine(p1, p2 core.Point, char rune) {
	dx := geometry.Abs(p2.X - p1.X)
	dy := geometry.Abs(p2.Y - p1.Y)

	x, y := p1.X, p1.Y

	xInc := 1
	if p1.X > p2.X {
		xInc = -1
	}

	yInc := 1
	if p1.Y > p2.Y {
		yInc = -1
	}

	if dx > dy {
		err := dx / 2
		for x != p2.X {
			c.setClipped(x, y, char)
			err -= dy
			if err < 0 {
				y += yInc
				err += dx
			}
			x += xInc
		}
	} else {
		err := dy / 2
		for y != p2.Y {
			c.setClipped(x, y, char)
			err -= dx
			if err < 0 {
				x += xInc
				err += dy
			}
			y += yInc
		}
	}

	c.setClipped(p2.X, p2.Y, char)
}

// DrawText renders text at the specified position, clipped to the canvas.
func (c *MatrixCanvas) DrawText(x, y int, text string) error {
	if y < 0 || y >= c.height {
		return ErrOutOfBounds
	}
	for _, r := range text {
		c.setClipped(x, y, r)
		x++
		if x >= c.width {
			break
		}
	}
	return nil
}

// setClipped sets a character with bounds checking (no error).
func (c *MatrixCanvas) setClipped(x, y int, char rune) {
	if c.inBounds(x, y) {
		c.matrix[y][x] = char
	}
}

func (c *MatrixCanvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}
