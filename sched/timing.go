package sched

import "math"

// Ttrans returns the cross-VM transfer cost from task i (on vi) to task j
// (on vj): size(i)*ccr / bandwidth(vi,vj). Returns 0 when vi == vj (same-VM
// transfer is free) regardless of the bandwidth map contents.
func Ttrans(sizeI float64, vi, vj *VM, ccr float64) float64 {
	if vi.ID == vj.ID {
		return 0
	}
	bw := vi.BandwidthTo(vj.ID)
	if bw <= 0 {
		return math.Inf(1)
	}
	return (sizeI * ccr) / bw
}

// TimingEngine computes AST/AFT for tasks in topological order, honoring
// predecessor finish times, cross-VM transfer cost, and each VM's free-time
// cursor.
type TimingEngine struct {
	graph      *Graph
	ccr        float64
	assignedVM map[int]int // task ID -> VM ID
	AST        map[int]float64
	AFT        map[int]float64

	// dup is nil until LOTD runs. Once set, predecessor arrival
	// computation treats a duplicate host the same as the primary host:
	// zero transfer cost, ready at the duplicate's own AFT.
	dup *DuplicationState
}

// NewTimingEngine creates a TimingEngine over g. assignedVM must contain an
// entry for every task that will be timed.
func NewTimingEngine(g *Graph, ccr float64, assignedVM map[int]int) *TimingEngine {
	return &TimingEngine{
		graph:      g,
		ccr:        ccr,
		assignedVM: assignedVM,
		AST:        make(map[int]float64),
		AFT:        make(map[int]float64),
	}
}

// TimeTask computes AST(t)/AFT(t) for a single task, assuming every
// predecessor already has AFT set. Updates the assigned VM's FreeTime.
// Callers must invoke this in topological order (level ascending, then
// queue-insertion order within a level) so the precondition holds.
func (e *TimingEngine) TimeTask(taskID int) {
	t := e.graph.Tasks[taskID]
	v := e.graph.VMs[e.assignedVM[taskID]]

	ast := v.FreeTime
	for predID := range t.Pre {
		arrival := e.predecessorArrival(predID, v)
		if arrival > ast {
			ast = arrival
		}
	}

	aft := ast + ET(t.Size, v)
	e.AST[taskID] = ast
	e.AFT[taskID] = aft
	v.FreeTime = aft
}

// predecessorArrival returns the time at which predID's output is
// available on v: its own AFT when predID's primary lives on v, the
// duplicate's AFT when LOTD placed a copy of predID on v, or AFT plus the
// cross-VM transfer cost otherwise.
func (e *TimingEngine) predecessorArrival(predID int, v *VM) float64 {
	if e.assignedVM[predID] == v.ID {
		return e.AFT[predID]
	}
	if e.dup.HasCopy(predID, v.ID) {
		return e.dup.ReadyTime(predID, v.ID)
	}
	pv := e.graph.VMs[e.assignedVM[predID]]
	return e.AFT[predID] + Ttrans(e.graph.Tasks[predID].Size, pv, v, e.ccr)
}

// RetimeFrom re-runs timing for every task from position idx0 onward in
// order (a topological order, e.g. flattenLevels' output). Each affected
// VM's FreeTime is first rewound to its value as of just before idx0 —
// the maximum AFT among tasks assigned to it at earlier positions, all of
// which are untouched by this call — so the replay reproduces exactly what
// a from-scratch run would have computed up to idx0, then continues fresh.
func (e *TimingEngine) RetimeFrom(order []int, idx0 int) {
	freeTime := make(map[int]float64, len(e.graph.VMs))
	for _, id := range order[:idx0] {
		vmID := e.assignedVM[id]
		if e.AFT[id] > freeTime[vmID] {
			freeTime[vmID] = e.AFT[id]
		}
	}
	for vmID, v := range e.graph.VMs {
		v.FreeTime = freeTime[vmID]
	}
	for _, id := range order[idx0:] {
		e.TimeTask(id)
	}
}

// TimeTasks times every task ID in order, in sequence.
func (e *TimingEngine) TimeTasks(order []int) {
	for _, id := range order {
		e.TimeTask(id)
	}
}

// Makespan returns the maximum AFT across all timed primary tasks.
func (e *TimingEngine) Makespan() float64 {
	m := 0.0
	for _, aft := range e.AFT {
		if aft > m {
			m = aft
		}
	}
	return m
}
