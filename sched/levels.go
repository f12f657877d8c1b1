package sched

import (
	"container/heap"
	"sort"
)

// idHeap is a min-heap of task IDs, used by BuildLevels to dequeue
// ready tasks in deterministic (ascending-ID) order. Grounded on the same
// container/heap pattern used for event dispatch ordering elsewhere in the
// corpus: a plain slice with Len/Less/Swap/Push/Pop.
type idHeap []int

func (h idHeap) Len() int            { return len(h) }
func (h idHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h idHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *idHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *idHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Levels maps level number to the ordered list of task IDs at that level.
// Level 0 holds every entry task (empty Pre). For every edge i->j,
// level(i) < level(j).
type Levels map[int][]int

// LevelOf inverts a Levels map for O(1) task->level lookup.
func (l Levels) LevelOf() map[int]int {
	out := make(map[int]int)
	for lvl, ids := range l {
		for _, id := range ids {
			out[id] = lvl
		}
	}
	return out
}

// MaxLevel returns the highest level index, or -1 if l is empty.
func (l Levels) MaxLevel() int {
	max := -1
	for lvl := range l {
		if lvl > max {
			max = lvl
		}
	}
	return max
}

// BuildLevels partitions g's tasks into topological levels via Kahn's
// algorithm: in-degree-zero tasks seed level 0, and each dequeued task
// raises every successor's level to max(current, parentLevel+1), enqueueing
// the successor once its in-degree reaches zero.
//
// Returns ErrInvalidDAG if a non-empty graph has no entry task, or if any
// task is left with positive in-degree after the sweep (a cycle). A graph
// with no tasks yields empty Levels and no error.
func BuildLevels(g *Graph) (Levels, error) {
	if len(g.Tasks) == 0 {
		return Levels{}, nil
	}

	indeg := make(map[int]int, len(g.Tasks))
	taskLevel := make(map[int]int, len(g.Tasks))
	order := g.TaskOrder()

	queue := &idHeap{}
	for _, id := range order {
		t := g.Tasks[id]
		indeg[id] = len(t.Pre)
		if indeg[id] == 0 {
			heap.Push(queue, id)
			taskLevel[id] = 0
		}
	}
	if queue.Len() == 0 {
		return nil, ErrInvalidDAG
	}

	// Deterministic BFS: always dequeue the smallest-ID ready task so level
	// ordering does not depend on map iteration order. A task is enqueued
	// only once every predecessor has already been processed, so dequeue
	// order affects only iteration order, never the computed level values.
	visited := 0
	for queue.Len() > 0 {
		id := heap.Pop(queue).(int)
		visited++

		t := g.Tasks[id]
		parentLevel := taskLevel[id]

		succIDs := make([]int, 0, len(t.Succ))
		for s := range t.Succ {
			succIDs = append(succIDs, s)
		}
		sort.Ints(succIDs)

		for _, s := range succIDs {
			if parentLevel+1 > taskLevel[s] {
				taskLevel[s] = parentLevel + 1
			}
			indeg[s]--
			if indeg[s] == 0 {
				heap.Push(queue, s)
			}
		}
	}

	if visited != len(g.Tasks) {
		return nil, ErrInvalidDAG
	}

	levels := make(Levels)
	for _, id := range order {
		lvl := taskLevel[id]
		levels[lvl] = append(levels[lvl], id)
	}
	for lvl := range levels {
		sort.Ints(levels[lvl])
	}
	return levels, nil
}
