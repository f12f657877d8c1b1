package sched

import (
	"encoding/json"
	"math"
	"sort"
)

// Schedule is the final output of the SM-CPTD pipeline: primary and
// duplicate assignments, AST/AFT for every primary, the critical path, and
// the makespan.
type Schedule struct {
	Assignment   map[int][]int // vmId -> primary task IDs, in assignment order
	Duplicates   map[int][]int // vmId -> duplicated task IDs
	AST          map[int]float64
	AFT          map[int]float64
	DupAST       map[DupKey]float64
	DupAFT       map[DupKey]float64
	CriticalPath CriticalPath
	Makespan     float64
}

// Run drives the full SM-CPTD pipeline over g using cfg:
//  1. build levels
//  2. compute ranks and select the critical path
//  3. allocate per-VM waiting lists and free time
//  4. for each level: compute thresholds, run stable matching, time the
//     newly-assigned tasks
//  5. run LOTD and recompute affected timings
//  6. report the makespan
func Run(g *Graph, cfg Config) (*Schedule, error) {
	if len(g.VMs) == 0 {
		return nil, ErrEmptyVMPool
	}

	levels, err := BuildLevels(g)
	if err != nil {
		return nil, err
	}

	commCost := BuildCommCostTable(g, cfg.CCR)
	rankEngine := NewRankEngine(g, commCost)
	rankOf := rankEngine.RankAll()
	cp := SelectCriticalPath(levels, rankOf)

	if err := checkFeasibility(cp, g); err != nil {
		return nil, err
	}

	assignedVM := make(map[int]int, len(g.Tasks))
	assignmentOrder := make(map[int][]int, len(g.VMs))
	for _, v := range g.VMs {
		v.WaitingList = nil
		v.FreeTime = 0
	}

	max := levels.MaxLevel()
	timing := NewTimingEngine(g, cfg.CCR, assignedVM)

	for lvl := 0; lvl <= max; lvl++ {
		levelTasks := levels[lvl]
		if len(levelTasks) == 0 {
			continue
		}

		ComputeThresholds(g.VMs, levels, lvl)
		results := Match(levelTasks, cp, g.Tasks, g.VMs)

		for _, taskID := range levelTasks {
			r := results[taskID]
			assignedVM[taskID] = r.VM
			assignmentOrder[r.VM] = append(assignmentOrder[r.VM], taskID)
		}

		timing.TimeTasks(levelTasks)
	}

	dup := RunLOTD(g, levels, assignedVM, timing, cfg.CCR)

	return &Schedule{
		Assignment:   assignmentOrder,
		Duplicates:   dup.Duplicates,
		AST:          timing.AST,
		AFT:          timing.AFT,
		DupAST:       dup.DupAST,
		DupAFT:       dup.DupAFT,
		CriticalPath: cp,
		Makespan:     timing.Makespan(),
	}, nil
}

// dupRecord is one LOTD placement, flattened for JSON: DupKey can't be a
// JSON object key, so DupAST/DupAFT are carried as a slice of records
// instead of two parallel maps keyed by struct.
type dupRecord struct {
	VM   int     `json:"vm"`
	Task int     `json:"task"`
	AST  float64 `json:"ast"`
	AFT  float64 `json:"aft"`
}

// scheduleJSON is the wire shape for Schedule: CriticalPath becomes a
// sorted slice (its set semantics don't need map keys on the wire) and
// duplicate timings become dupRecords.
type scheduleJSON struct {
	Assignment   map[int][]int `json:"assignment"`
	Duplicates   map[int][]int `json:"duplicates"`
	AST          map[int]float64 `json:"ast"`
	AFT          map[int]float64 `json:"aft"`
	DuplicateRuns []dupRecord  `json:"duplicateRuns"`
	CriticalPath []int        `json:"criticalPath"`
	Makespan     float64      `json:"makespan"`
}

// MarshalJSON implements the round-trip testable property (spec.md §8
// item 11): serializing and reloading a Schedule must reproduce the same
// assignment, AST/AFT maps, and makespan.
func (s *Schedule) MarshalJSON() ([]byte, error) {
	cp := make([]int, 0, len(s.CriticalPath))
	for id := range s.CriticalPath {
		cp = append(cp, id)
	}
	sort.Ints(cp)

	dups := make([]dupRecord, 0, len(s.DupAFT))
	for key, aft := range s.DupAFT {
		dups = append(dups, dupRecord{VM: key.VM, Task: key.Task, AST: s.DupAST[key], AFT: aft})
	}
	sort.Slice(dups, func(i, j int) bool {
		if dups[i].VM != dups[j].VM {
			return dups[i].VM < dups[j].VM
		}
		return dups[i].Task < dups[j].Task
	})

	return json.Marshal(scheduleJSON{
		Assignment:    s.Assignment,
		Duplicates:    s.Duplicates,
		AST:           s.AST,
		AFT:           s.AFT,
		DuplicateRuns: dups,
		CriticalPath:  cp,
		Makespan:      s.Makespan,
	})
}

// UnmarshalJSON is MarshalJSON's inverse.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	var payload scheduleJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}

	s.Assignment = payload.Assignment
	s.Duplicates = payload.Duplicates
	s.AST = payload.AST
	s.AFT = payload.AFT
	s.Makespan = payload.Makespan

	s.CriticalPath = make(CriticalPath, len(payload.CriticalPath))
	for _, id := range payload.CriticalPath {
		s.CriticalPath[id] = struct{}{}
	}

	s.DupAST = make(map[DupKey]float64, len(payload.DuplicateRuns))
	s.DupAFT = make(map[DupKey]float64, len(payload.DuplicateRuns))
	for _, d := range payload.DuplicateRuns {
		key := DupKey{VM: d.VM, Task: d.Task}
		s.DupAST[key] = d.AST
		s.DupAFT[key] = d.AFT
	}
	return nil
}

// checkFeasibility returns ErrInfeasibleSchedule if any critical-path task
// has ET = +Inf on every VM in the pool (every VM unschedulable for it),
// which would make the SLR denominator zero.
func checkFeasibility(cp CriticalPath, g *Graph) error {
	for taskID := range cp {
		t := g.Tasks[taskID]
		feasible := false
		for _, v := range g.VMs {
			if !math.IsInf(ET(t.Size, v), 1) {
				feasible = true
				break
			}
		}
		if !feasible {
			return ErrInfeasibleSchedule
		}
	}
	return nil
}

// SortedVMIDs returns every VM ID in g, ascending, for deterministic
// iteration at call sites that need it (CLI output, tests).
func SortedVMIDs(g *Graph) []int {
	ids := make([]int, 0, len(g.VMs))
	for id := range g.VMs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
