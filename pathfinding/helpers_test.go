package pathfinding

import "container/heap"

func heapPush(nq *NodeQueue, n *AStarNode) {
	heap.Push(nq, n)
}

func heapPop(nq *NodeQueue) *AStarNode {
	return heap.Pop(nq).(*AStarNode)
}
