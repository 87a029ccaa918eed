package pathfinding

import (
	"container/heap"
	"context"
	"fmt"

	"routeplan/core"
	"routeplan/geometry"
	"routeplan/obstacles"
)

// contextCheckInterval is how many expansions pass between context checks.
const contextCheckInterval = 4096

// AStarNode represents a state in the A* search.
type AStarNode struct {
	Point  core.Point
	G      float64 // Cost from start
	F      float64 // Blended priority
	Parent *AStarNode
	Index  int    // Index in the heap, -1 when not queued
	seq    uint64 // Push order, used to break priority ties
}

// NodeQueue is a priority queue for A* nodes.
type NodeQueue []*AStarNode

func (nq NodeQueue) Len() int { return len(nq) }

func (nq NodeQueue) Less(i, j int) bool {
	if nq[i].F != nq[j].F {
		return nq[i].F < nq[j].F
	}
	// Equal priority: first pushed is explored first
	return nq[i].seq < nq[j].seq
}

func (nq NodeQueue) Swap(i, j int) {
	nq[i], nq[j] = nq[j], nq[i]
	nq[i].Index = i
	nq[j].Index = j
}

func (nq *NodeQueue) Push(x interface{}) {
	n := len(*nq)
	node := x.(*AStarNode)
	node.Index = n
	*nq = append(*nq, node)
}

func (nq *NodeQueue) Pop() interface{} {
	old := *nq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil  // avoid memory leak
	node.Index = -1 // for safety
	*nq = old[0 : n-1]
	return node
}

// AStarPathFinder searches the implicit 8-connected integer grid.
type AStarPathFinder struct {
	weights  Weights
	maxNodes int // Maximum nodes to expand (safety limit)
}

// NewAStarPathFinder creates a new A* path finder with the given weights.
func NewAStarPathFinder(weights Weights) *AStarPathFinder {
	return &AStarPathFinder{
		weights:  weights,
		maxNodes: DefaultMaxNodes,
	}
}

// SetMaxNodes sets the maximum number of nodes to expand. Values <= 0
// remove the limit.
func (a *AStarPathFinder) SetMaxNodes(max int) {
	a.maxNodes = max
}

// FindPath finds a path from start to end avoiding blocked points.
func (a *AStarPathFinder) FindPath(ctx context.Context, start, end core.Point, blocked obstacles.Checker) (core.Path, error) {
	goal, err := a.search(ctx, start, end, blocked)
	if err != nil {
		return core.Path{}, err
	}
	return reconstructPath(goal), nil
}

// search runs the best-first loop and returns the goal node. All bookkeeping
// is local to the call.
func (a *AStarPathFinder) search(ctx context.Context, start, end core.Point, blocked obstacles.Checker) (*AStarNode, error) {
	if blocked != nil {
		if blocked(start) {
			return nil, fmt.Errorf("%w at %v", ErrStartBlocked, start)
		}
		if blocked(end) {
			return nil, fmt.Errorf("%w: goal %v is blocked", ErrNotFound, end)
		}
	}

	openSet := &NodeQueue{}
	heap.Init(openSet)
	nodeMap := make(map[core.Point]*AStarNode)

	var seq uint64
	startNode := &AStarNode{Point: start}
	heap.Push(openSet, startNode)
	nodeMap[start] = startNode

	nodesExpanded := 0

	for openSet.Len() > 0 {
		nodesExpanded++
		if a.maxNodes > 0 && nodesExpanded > a.maxNodes {
			return nil, fmt.Errorf("%w (%d nodes) searching %v → %v", ErrSearchLimit, a.maxNodes, start, end)
		}
		if nodesExpanded%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		current := heap.Pop(openSet).(*AStarNode)
		if current.Point == end {
			return current, nil
		}

		for _, neighbor := range GetNeighbors(current.Point) {
			if blocked != nil && blocked(neighbor) {
				continue
			}

			tentativeG := current.G + geometry.Distance(current.Point, neighbor)
			existing, seen := nodeMap[neighbor]
			if seen && tentativeG >= existing.G {
				continue
			}

			f := a.weights.Heuristic*geometry.Distance(neighbor, end) + a.weights.Cost*tentativeG
			seq++

			if !seen {
				node := &AStarNode{
					Point:  neighbor,
					G:      tentativeG,
					F:      f,
					Parent: current,
					seq:    seq,
				}
				heap.Push(openSet, node)
				nodeMap[neighbor] = node
				continue
			}

			// Better route to a known node
			existing.G = tentativeG
			existing.F = f
			existing.Parent = current
			existing.seq = seq
			if existing.Index >= 0 {
				heap.Fix(openSet, existing.Index)
			} else {
				heap.Push(openSet, existing)
			}
		}
	}

	return nil, fmt.Errorf("%w from %v to %v", ErrNotFound, start, end)
}

// reconstructPath builds the final path from the goal node.
func reconstructPath(goal *AStarNode) core.Path {
	n := 0
	for current := goal; current != nil; current = current.Parent {
		n++
	}

	points := make([]core.Point, n)
	for current := goal; current != nil; current = current.Parent {
		n--
		points[n] = current.Point
	}

	return core.Path{
		Points: points,
		Cost:   goal.G,
	}
}
