package sched

import (
	"math"
	"sort"
)

// DupKey identifies one duplicate placement: task Task duplicated onto
// VM.
type DupKey struct {
	VM   int
	Task int
}

// DuplicationState holds every accepted LOTD placement. A nil
// *DuplicationState (as held by the timing engine before LOTD runs) has no
// duplicates, so HasCopy always falls through to the primary-only check.
type DuplicationState struct {
	Duplicates map[int][]int      // vmID -> duplicated task IDs, insertion order
	DupAST     map[DupKey]float64
	DupAFT     map[DupKey]float64
}

// NewDuplicationState returns an empty DuplicationState.
func NewDuplicationState() *DuplicationState {
	return &DuplicationState{
		Duplicates: make(map[int][]int),
		DupAST:     make(map[DupKey]float64),
		DupAFT:     make(map[DupKey]float64),
	}
}

// HasCopy reports whether taskID has a duplicate hosted on vmID.
func (d *DuplicationState) HasCopy(taskID, vmID int) bool {
	if d == nil {
		return false
	}
	_, ok := d.DupAFT[DupKey{VM: vmID, Task: taskID}]
	return ok
}

// ReadyTime returns the time at which taskID's duplicate on vmID finishes.
func (d *DuplicationState) ReadyTime(taskID, vmID int) float64 {
	return d.DupAFT[DupKey{VM: vmID, Task: taskID}]
}

func (d *DuplicationState) add(vmID, taskID int, ast, aft float64) {
	d.Duplicates[vmID] = append(d.Duplicates[vmID], taskID)
	d.DupAST[DupKey{vmID, taskID}] = ast
	d.DupAFT[DupKey{vmID, taskID}] = aft
}

type interval struct{ start, end float64 }

// RunLOTD performs one pass of list-of-task-duplication over every entry
// (level-0) task, grounded on spec.md §4.7. It mutates engine's AST/AFT
// maps in place for any task whose timing improves, and returns the
// DuplicationState recording every accepted placement.
//
// Only entry tasks are considered — they have no predecessors, so their
// duplicate's own start time is unconstrained below by anything but 0.
func RunLOTD(g *Graph, levels Levels, assignedVM map[int]int, engine *TimingEngine, ccr float64) *DuplicationState {
	dup := NewDuplicationState()
	engine.dup = dup

	order := flattenLevels(levels)
	position := make(map[int]int, len(order))
	for i, id := range order {
		position[id] = i
	}

	entryTasks := append([]int(nil), levels[0]...)
	sort.Ints(entryTasks)

	for _, taskID := range entryTasks {
		t := g.Tasks[taskID]
		hostVM := assignedVM[taskID]

		candidates := candidateVMs(t, assignedVM, hostVM)
		for _, vmID := range candidates {
			v := g.VMs[vmID]

			sStar, limit, ok := earliestSuccessorOn(t, vmID, assignedVM, engine.AST)
			if !ok {
				continue
			}

			etDup := ET(t.Size, v)
			timeline := buildTimeline(vmID, assignedVM, engine.AST, engine.AFT, dup)
			gapStart, ok := findIdleGap(timeline, limit, etDup)
			if !ok {
				continue // Rule 2 cannot be satisfied: no idle gap, skip silently.
			}

			dup.add(vmID, taskID, gapStart, gapStart+etDup)

			engine.RetimeFrom(order, position[sStar])
		}
	}

	return dup
}

// flattenLevels returns every task ID in topological order: level ascending,
// then ascending task ID within a level (same-level tasks share no edges,
// so any stable order within a level is topologically valid).
func flattenLevels(levels Levels) []int {
	max := levels.MaxLevel()
	var order []int
	for lvl := 0; lvl <= max; lvl++ {
		ids := append([]int(nil), levels[lvl]...)
		sort.Ints(ids)
		order = append(order, ids...)
	}
	return order
}

// candidateVMs returns the sorted, deduplicated set of VM IDs hosting a
// successor of t that is not already co-located with t's primary.
func candidateVMs(t *Task, assignedVM map[int]int, hostVM int) []int {
	seen := make(map[int]struct{})
	for s := range t.Succ {
		vmID := assignedVM[s]
		if vmID != hostVM {
			seen[vmID] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// earliestSuccessorOn finds the successor of t assigned to vmID with the
// smallest AST, breaking ties by smallest task ID.
func earliestSuccessorOn(t *Task, vmID int, assignedVM map[int]int, ast map[int]float64) (int, float64, bool) {
	best := -1
	bestAST := math.Inf(1)
	for s := range t.Succ {
		if assignedVM[s] != vmID {
			continue
		}
		a := ast[s]
		if a < bestAST || (a == bestAST && s < best) {
			best = s
			bestAST = a
		}
	}
	return best, bestAST, best != -1
}

// buildTimeline returns every already-scheduled interval (primaries and
// prior duplicates) on vmID, sorted ascending by start time.
func buildTimeline(vmID int, assignedVM map[int]int, ast, aft map[int]float64, dup *DuplicationState) []interval {
	var timeline []interval
	for taskID, v := range assignedVM {
		if v == vmID {
			timeline = append(timeline, interval{ast[taskID], aft[taskID]})
		}
	}
	for _, taskID := range dup.Duplicates[vmID] {
		key := DupKey{vmID, taskID}
		timeline = append(timeline, interval{dup.DupAST[key], dup.DupAFT[key]})
	}
	sort.Slice(timeline, func(i, j int) bool { return timeline[i].start < timeline[j].start })
	return timeline
}

// findIdleGap scans timeline (sorted ascending by start) for the earliest
// gap ending at or before limit that is at least etDup wide, returning its
// start. Gaps are measured from 0, since entry tasks have no predecessors
// to push their duplicate's start later.
func findIdleGap(timeline []interval, limit, etDup float64) (float64, bool) {
	cursor := 0.0
	for _, iv := range timeline {
		if iv.start >= limit {
			break
		}
		gapEnd := math.Min(iv.start, limit)
		if gapEnd-cursor >= etDup {
			return cursor, true
		}
		if iv.end > cursor {
			cursor = iv.end
		}
	}
	if limit-cursor >= etDup {
		return cursor, true
	}
	return 0, false
}
