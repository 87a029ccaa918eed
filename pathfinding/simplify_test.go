package pathfinding

import (
	"context"
	"math/rand"
	"reflect"
	"testing"

	"routeplan/core"
	"routeplan/obstacles"
)

func linePoints(n int) []core.Point {
	points := make([]core.Point, n)
	for i := range points {
		points[i] = core.Point{X: i, Y: 0}
	}
	return points
}

func randomWalk(seed int64, n int) []core.Point {
	rng := rand.New(rand.NewSource(seed))
	points := make([]core.Point, n)
	p := core.Point{}
	for i := range points {
		points[i] = p
		p = p.Add(rng.Intn(3)-1, rng.Intn(3)-1)
	}
	return points
}

func TestSimplify_Endpoints(t *testing.T) {
	inputs := [][]core.Point{
		{{X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 5, Y: 5}},
		linePoints(50),
		randomWalk(1, 300),
		randomWalk(2, 1000),
	}
	tolerances := []float64{0, 1, 5, 40, 210, 1e9}

	for _, in := range inputs {
		for _, tol := range tolerances {
			out := Simplify(in, tol)
			if out[0] != in[0] || out[len(out)-1] != in[len(in)-1] {
				t.Errorf("tolerance %v: endpoints %v..%v, want %v..%v",
					tol, out[0], out[len(out)-1], in[0], in[len(in)-1])
			}
		}
	}
}

func TestSimplify_Subsequence(t *testing.T) {
	in := randomWalk(3, 500)
	out := Simplify(in, 10)

	j := 0
	for _, p := range out {
		for j < len(in) && in[j] != p {
			j++
		}
		if j == len(in) {
			t.Fatalf("output is not an ordered subsequence of the input")
		}
		j++
	}
}

func TestSimplify_Monotonic(t *testing.T) {
	in := randomWalk(4, 800)
	tolerances := []float64{0, 0.5, 1, 2, 4, 8, 16, 32, 64, 128, 210}

	prev := len(Simplify(in, tolerances[0]))
	for _, tol := range tolerances[1:] {
		n := len(Simplify(in, tol))
		if n > prev {
			t.Errorf("tolerance %v produced %d points, more than %d at a tighter tolerance", tol, n, prev)
		}
		prev = n
	}
}

func TestSimplify_Idempotent(t *testing.T) {
	for _, tol := range []float64{3, 25, 210} {
		once := Simplify(randomWalk(5, 600), tol)
		twice := Simplify(once, tol)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("tolerance %v: second pass changed %v to %v", tol, once, twice)
		}
	}
}

func TestSimplify_MeasuresFromFirstPoint(t *testing.T) {
	// Collinear points still split because deviation is measured from the
	// first point of each range.
	got := Simplify(linePoints(11), 5)
	want := []core.Point{{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 7, Y: 0}, {X: 8, Y: 0}, {X: 9, Y: 0}, {X: 10, Y: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Simplify() = %v, want %v", got, want)
	}

	// Everything within tolerance collapses to the endpoints
	got = Simplify(linePoints(11), 10)
	want = []core.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Simplify() = %v, want %v", got, want)
	}
}

func TestSimplifyChord(t *testing.T) {
	got := SimplifyChordPoints(linePoints(11), 0.5)
	want := []core.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SimplifyChordPoints() = %v, want %v", got, want)
	}

	corner := []core.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}, {X: 10, Y: 10}}
	got = SimplifyChordPoints(corner, 1)
	want = []core.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SimplifyChordPoints() = %v, want %v", got, want)
	}
}

func TestParseSimplifyMode(t *testing.T) {
	tests := map[string]SimplifyMode{
		"":            SimplifyFirstPoint,
		"first-point": SimplifyFirstPoint,
		"chord":       SimplifyChord,
		"rdp":         SimplifyChord,
	}
	for in, want := range tests {
		got, err := ParseSimplifyMode(in)
		if err != nil || got != want {
			t.Errorf("ParseSimplifyMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseSimplifyMode("bogus"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestRemoveCollinear(t *testing.T) {
	in := []core.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 3}}
	want := []core.Point{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 3}}
	if got := RemoveCollinear(in); !reflect.DeepEqual(got, want) {
		t.Errorf("RemoveCollinear() = %v, want %v", got, want)
	}
}

func TestRemoveCollinear_KeepsReversal(t *testing.T) {
	in := []core.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 2, Y: 0}}
	if got := RemoveCollinear(in); !reflect.DeepEqual(got, in) {
		t.Errorf("RemoveCollinear() = %v, want %v", got, in)
	}

	// The reversal point survives into Douglas-Peucker and is the farthest
	// point from the chord.
	got := SimplifyChordPoints([]core.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 2, Y: 0}}, 1)
	if len(got) != 3 {
		t.Errorf("SimplifyChordPoints() = %v, want reversal kept", got)
	}
}

func TestSimplify_GridRouteStaysClear(t *testing.T) {
	finder := NewAStarPathFinder(DefaultWeights)
	checker := obstacles.SquareChecker(scenarioObstacles)

	path, err := finder.FindPath(context.Background(), core.Point{X: 100, Y: 100}, core.Point{X: 700, Y: 500}, checker)
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}

	out := Simplify(path.Points, DefaultTolerance)
	for _, p := range out {
		if checker(p) {
			t.Errorf("simplified waypoint %v is blocked", p)
		}
	}
	if len(out) >= path.Len() {
		t.Errorf("simplification did not reduce %d points", path.Len())
	}
}
