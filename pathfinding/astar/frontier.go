package astar

import "container/heap"

// frontier holds the discovered-but-unexpanded nodes of one query. Entries
// refer to nodes by arena index and may repeat. next always returns the open
// node with the smallest (F, first insertion order).
type frontier interface {
	push(nodes []Node, idx int)
	next(nodes []Node) (int, bool)
	reset()
	len() int
}

func newFrontier(kind FrontierKind) frontier {
	if kind == FrontierScan {
		return &scanFrontier{}
	}
	return &heapFrontier{}
}

// scanFrontier is the plain list: every discovery appends, every selection
// scans the whole list and drops entries whose node has been closed.
type scanFrontier struct {
	entries []int
}

func (s *scanFrontier) push(_ []Node, idx int) {
	s.entries = append(s.entries, idx)
}

func (s *scanFrontier) next(nodes []Node) (int, bool) {
	best := -1
	kept := s.entries[:0]
	for _, idx := range s.entries {
		if !nodes[idx].Open {
			continue
		}
		kept = append(kept, idx)
		if best < 0 || nodes[idx].F < nodes[best].F {
			best = idx
		}
	}
	s.entries = kept
	return best, best >= 0
}

func (s *scanFrontier) reset()   { s.entries = s.entries[:0] }
func (s *scanFrontier) len() int { return len(s.entries) }

type frontierItem struct {
	idx   int
	f     float64
	order int
}

type frontierQueue []frontierItem

func (queue frontierQueue) Len() int { return len(queue) }
func (queue frontierQueue) Less(i, j int) bool {
	if queue[i].f != queue[j].f {
		return queue[i].f < queue[j].f
	}
	return queue[i].order < queue[j].order
}
func (queue frontierQueue) Swap(i, j int) { queue[i], queue[j] = queue[j], queue[i] }

func (queue *frontierQueue) Push(x any) {
	*queue = append(*queue, x.(frontierItem))
}

func (queue *frontierQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	*queue = oldQueue[:n-1]
	return item
}

// heapFrontier snapshots a node's F on every push. Entries whose node has
// been closed, or whose F has since dropped, are discarded when popped.
type heapFrontier struct {
	queue frontierQueue
}

func (h *heapFrontier) push(nodes []Node, idx int) {
	heap.Push(&h.queue, frontierItem{idx: idx, f: nodes[idx].F, order: nodes[idx].order})
}

func (h *heapFrontier) next(nodes []Node) (int, bool) {
	for h.queue.Len() > 0 {
		item := heap.Pop(&h.queue).(frontierItem)
		node := &nodes[item.idx]
		if !node.Open || item.f > node.F {
			continue
		}
		return item.idx, true
	}
	return -1, false
}

func (h *heapFrontier) reset()   { h.queue = h.queue[:0] }
func (h *heapFrontier) len() int { return h.queue.Len() }
