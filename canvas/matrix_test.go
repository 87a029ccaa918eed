package canvas

import (
	"strings"
	"testing"

	"routeplan/core"
)

func newCanvas(t *testing.T, width, height int) *MatrixCanvas {
	t.Helper()
	c, err := NewMatrixCanvas(width, height)
	if err != nil {
		t.Fatalf("NewMatrixCanvas(%d, %d) error = %v", width, height, err)
	}
	return c
}

func TestMatrixCanvas_Creation(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"Small", 10, 5},
		{"Square", 20, 20},
		{"Wide", 100, 10},
		{"Tall", 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCanvas(t, tt.width, tt.height)

			w, h := c.Size()
			if w != tt.width || h != tt.height {
				t.Errorf("Size() = (%d, %d), want (%d, %d)", w, h, tt.width, tt.height)
			}

			matrix := c.Matrix()
			if len(matrix) != tt.height {
				t.Errorf("Matrix height = %d, want %d", len(matrix), tt.height)
			}
			for y, row := range matrix {
				if len(row) != tt.width {
					t.Errorf("Row %d width = %d, want %d", y, len(row), tt.width)
				}
				for x, r := range row {
					if r != ' ' {
						t.Errorf("Cell (%d,%d) = %c, want space", x, y, r)
					}
				}
			}
		})
	}
}

func TestMatrixCanvas_InvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		if _, err := NewMatrixCanvas(size[0], size[1]); err != ErrInvalidSize {
			t.Errorf("NewMatrixCanvas(%d, %d) error = %v, want ErrInvalidSize", size[0], size[1], err)
		}
	}
}

func TestMatrixCanvas_GetSet(t *testing.T) {
	c := newCanvas(t, 20, 10)

	tests := []struct {
		name  string
		point core.Point
		char  rune
		valid bool
	}{
		{"Origin", core.Point{X: 0, Y: 0}, 'A', true},
		{"Center", core.Point{X: 10, Y: 5}, '•', true},
		{"Bottom right", core.Point{X: 19, Y: 9}, 'Z', true},
		{"Out of bounds X", core.Point{X: 20, Y: 5}, 'X', false},
		{"Out of bounds Y", core.Point{X: 10, Y: 10}, 'Y', false},
		{"Negative X", core.Point{X: -1, Y: 5}, 'N', false},
		{"Negative Y", core.Point{X: 5, Y: -1}, 'N', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Set(tt.point, tt.char)
			if tt.valid && err != nil {
				t.Errorf("Set() error = %v, want nil", err)
			}
			if !tt.valid && err != ErrOutOfBounds {
				t.Errorf("Set() error = %v, want ErrOutOfBounds", err)
			}

			got := c.Get(tt.point)
			want := tt.char
			if !tt.valid {
				want = ' '
			}
			if got != want {
				t.Errorf("Get() = %c, want %c", got, want)
			}
		})
	}
}

func TestMatrixCanvas_Clear(t *testing.T) {
	c := newCanvas(t, 10, 10)
	for _, p := range []core.Point{{X: 5, Y: 5}, {X: 0, Y: 0}, {X: 9, Y: 9}, {X: 3, Y: 7}} {
		c.Set(p, 'X')
	}

	c.Clear()

	if strings.TrimSpace(c.String()) != "" {
		t.Errorf("After clear, canvas = %q, want only spaces", c.String())
	}
}

func TestMatrixCanvas_String(t *testing.T) {
	c := newCanvas(t, 5, 3)
	c.DrawText(0, 0, "+---+")
	c.DrawText(0, 1, "| X |")
	c.DrawText(0, 2, "+---+")

	expected := "+---+\n| X |\n+---+"
	if got := c.String(); got != expected {
		t.Errorf("String() =\n%s\nwant\n%s", got, expected)
	}
}

func TestMatrixCanvas_DrawLine(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 core.Point
		want   []string
	}{
		{
			name: "Horizontal",
			p1:   core.Point{X: 0, Y: 1}, p2: core.Point{X: 4, Y: 1},
			want: []string{"", "xxxxx", ""},
		},
		{
			name: "Vertical reversed",
			p1:   core.Point{X: 2, Y: 2}, p2: core.Point{X: 2, Y: 0},
			want: []string{"  x", "  x", "  x"},
		},
		{
			name: "Diagonal",
			p1:   core.Point{X: 0, Y: 0}, p2: core.Point{X: 2, Y: 2},
			want: []string{"x", " x", "  x"},
		},
		{
			name: "Clipped",
			p1:   core.Point{X: -3, Y: 0}, p2: core.Point{X: 1, Y: 0},
			want: []string{"xx", "", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCanvas(t, 5, 3)
			c.DrawLine(tt.p1, tt.p2, 'x')
			got := c.Lines()
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMatrixCanvas_DrawLineConnected(t *testing.T) {
	c := newCanvas(t, 30, 20)
	p1, p2 := core.Point{X: 1, Y: 2}, core.Point{X: 27, Y: 17}
	c.DrawLine(p1, p2, '#')

	// every column between the endpoints is touched exactly once
	for x := p1.X; x <= p2.X; x++ {
		count := 0
		for y := 0; y < 20; y++ {
			if c.Get(core.Point{X: x, Y: y}) == '#' {
				count++
			}
		}
		if count != 1 {
			t.Errorf("column %d has %d cells, want 1", x, count)
		}
	}
}

func TestMatrixCanvas_FillRect(t *testing.T) {
	c := newCanvas(t, 6, 4)
	c.FillRect(core.Point{X: 4, Y: 2}, core.Point{X: 1, Y: 1}, '#')
	c.FillRect(core.Point{X: 5, Y: 3}, core.Point{X: 9, Y: 9}, '%')

	expected := []string{"", " ####", " ####", "     %"}
	got := c.Lines()
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], expected[i])
		}
	}
}

func TestMatrixCanvas_DrawText(t *testing.T) {
	c := newCanvas(t, 6, 2)
	if err := c.DrawText(3, 0, "routes"); err != nil {
		t.Fatalf("DrawText() error = %v", err)
	}
	if got := c.Lines()[0]; got != "   rou" {
		t.Errorf("line 0 = %q, want %q", got, "   rou")
	}
	if err := c.DrawText(0, 5, "x"); err != ErrOutOfBounds {
		t.Errorf("DrawText() error = %v, want ErrOutOfBounds", err)
	}
}
