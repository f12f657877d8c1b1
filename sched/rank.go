package sched

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Weight computes W(i), the mean execution time of task t across every VM
// in the pool: mean_v(size(t)/capacity(v)). Falls back to size(t) when vms
// is empty (documented fallback — spec.md §4.2).
func Weight(t *Task, vms map[int]*VM) float64 {
	if len(vms) == 0 {
		return t.Size
	}
	ets := make([]float64, 0, len(vms))
	for _, v := range vms {
		ets = append(ets, ET(t.Size, v))
	}
	// Sum in a fixed order so map iteration cannot change the last bit.
	sort.Float64s(ets)
	return stat.Mean(ets, nil)
}

// RankEngine computes DCP-rank values with memoization, using an explicit
// stack for post-order traversal so chains of thousands of tasks cannot
// overflow the native call stack (spec.md §9).
type RankEngine struct {
	graph     *Graph
	commCost  *CommCostTable
	vms       map[int]*VM
	rankOf    map[int]float64
}

// NewRankEngine builds a RankEngine over g using the given comm-cost table.
func NewRankEngine(g *Graph, cc *CommCostTable) *RankEngine {
	return &RankEngine{
		graph:    g,
		commCost: cc,
		vms:      g.VMs,
		rankOf:   make(map[int]float64),
	}
}

// frame is one entry on the explicit post-order stack: a task ID and
// whether its successors have already been pushed.
type frame struct {
	id       int
	expanded bool
}

// RankAll computes rank(i) for every task in the graph and returns the
// rankOf map. rank(t_exit) = W(t_exit) for exit tasks (empty Succ);
// rank(i) = W(i) + max_{j in succ(i)}(c[i,j] + rank(j)) otherwise.
func (r *RankEngine) RankAll() map[int]float64 {
	for _, id := range r.graph.TaskOrder() {
		r.rank(id)
	}
	return r.rankOf
}

// rank returns rank(id), computing and memoizing it (and every transitive
// successor's rank) via an iterative post-order traversal if not already
// cached.
func (r *RankEngine) rank(id int) float64 {
	if v, ok := r.rankOf[id]; ok {
		return v
	}

	stack := []frame{{id: id, expanded: false}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if _, done := r.rankOf[top.id]; done {
			stack = stack[:len(stack)-1]
			continue
		}

		t := r.graph.Tasks[top.id]
		if !top.expanded {
			top.expanded = true
			for succID := range t.Succ {
				if _, done := r.rankOf[succID]; !done {
					stack = append(stack, frame{id: succID})
				}
			}
			continue
		}

		// Every successor's rank is now memoized (or t is an exit task).
		w := Weight(t, r.vms)
		if t.IsExit() {
			r.rankOf[t.ID] = w
		} else {
			best := 0.0
			first := true
			for succID := range t.Succ {
				candidate := r.commCost.Cost(t.ID, succID) + r.rankOf[succID]
				if first || candidate > best {
					best = candidate
					first = false
				}
			}
			r.rankOf[t.ID] = w + best
		}
		stack = stack[:len(stack)-1]
	}

	return r.rankOf[id]
}
