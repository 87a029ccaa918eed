package core

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestObstacleSetAnchors(t *testing.T) {
	set := NewObstacleSet(40, Point{300, 300}, Point{200, 200})

	if set.Len() != 2 {
		t.Fatalf("Expected 2 obstacles, got %d", set.Len())
	}
	if set.Size != 40 {
		t.Errorf("Expected size 40, got %d", set.Size)
	}

	want := []Point{{300, 300}, {200, 200}}
	if got := set.Anchors(); !reflect.DeepEqual(got, want) {
		t.Errorf("Anchors() = %v, want %v", got, want)
	}
}

func TestPathAccessors(t *testing.T) {
	path := Path{Points: []Point{{0, 0}, {1, 1}, {2, 2}}, Cost: 2.8}

	if path.Start() != (Point{0, 0}) {
		t.Errorf("Start() = %v", path.Start())
	}
	if path.End() != (Point{2, 2}) {
		t.Errorf("End() = %v", path.End())
	}

	clone := path.Clone()
	clone.Points[0] = Point{9, 9}
	if path.Points[0] != (Point{0, 0}) {
		t.Error("Clone shares backing array with the original")
	}

	if !(Path{}).IsEmpty() {
		t.Error("zero Path should be empty")
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Min: Point{0, 0}, Max: Point{800, 600}}

	tests := []struct {
		p    Point
		want bool
	}{
		{Point{0, 0}, true},
		{Point{800, 600}, true},
		{Point{400, 300}, true},
		{Point{-1, 0}, false},
		{Point{801, 10}, false},
		{Point{10, 601}, false},
	}

	for _, tt := range tests {
		if got := b.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if b.Width() != 800 || b.Height() != 600 {
		t.Errorf("unexpected size %dx%d", b.Width(), b.Height())
	}
	if b.IsEmpty() {
		t.Error("bounds should not be empty")
	}
}

func TestPointJSON(t *testing.T) {
	data, err := json.Marshal(Point{3, 4})
	if err != nil {
		t.Fatalf("Failed to marshal point: %v", err)
	}
	if string(data) != `{"x":3,"y":4}` {
		t.Errorf("unexpected JSON %s", data)
	}
}
