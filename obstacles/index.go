package obstacles

import (
	"routeplan/core"

	"github.com/dhconnelly/rtreego"
)

// anchorTolerance is the half-width of the rectangle stored for each anchor.
// Queries are widened by the same amount, so candidates are a superset of the
// exact matches.
const anchorTolerance = 0.5

type anchorEntry struct {
	obstacle core.Obstacle
	rect     rtreego.Rect
}

func (e *anchorEntry) Bounds() rtreego.Rect {
	return e.rect
}

// Index is an R-tree over obstacle anchor points. It narrows collision tests
// to the obstacles near a query point.
type Index struct {
	tree *rtreego.Rtree
}

// NewIndex builds an index for an obstacle set.
func NewIndex(set core.ObstacleSet) *Index {
	objs := make([]rtreego.Spatial, len(set.Obstacles))
	for i, o := range set.Obstacles {
		objs[i] = &anchorEntry{
			obstacle: o,
			rect:     rtreego.Point{float64(o.Anchor.X), float64(o.Anchor.Y)}.ToRect(anchorTolerance),
		}
	}
	return &Index{
		tree: rtreego.NewTree(2, 4, 16, objs...),
	}
}

// Len returns the number of indexed obstacles.
func (ix *Index) Len() int {
	return ix.tree.Size()
}

// Within returns the obstacles whose anchor may lie in the inclusive box
// [min, max]. The result can contain obstacles just outside the box.
func (ix *Index) Within(min, max core.Point) []core.Obstacle {
	if ix.Len() == 0 {
		return nil
	}
	lo := rtreego.Point{float64(min.X) - anchorTolerance, float64(min.Y) - anchorTolerance}
	hi := rtreego.Point{float64(max.X) + anchorTolerance, float64(max.Y) + anchorTolerance}
	rect, err := rtreego.NewRectFromPoints(lo, hi)
	if err != nil {
		return nil
	}

	hits := ix.tree.SearchIntersect(rect)
	result := make([]core.Obstacle, 0, len(hits))
	for _, h := range hits {
		result = append(result, h.(*anchorEntry).obstacle)
	}
	return result
}
