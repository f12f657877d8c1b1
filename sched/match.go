package sched

import "sort"

// MatchState tags a non-CP task's position in the Gale-Shapley-style
// deferred-acceptance loop: Unmatched -> Proposing(v) -> {Accepted,
// Rejected -> Proposing(next v)}, and Accepted -> Evicted -> Unmatched on
// displacement. Terminal states are Accepted and ForceAssigned.
type MatchState int

const (
	StateUnmatched MatchState = iota
	StateProposing
	StateAccepted
	StateForceAssigned
)

// MatchResult records the terminal outcome of matching one task.
type MatchResult struct {
	State MatchState
	VM    int
}

// Match runs the per-level SMGT phase: CP tasks are pinned to the fastest
// VM, then non-CP tasks run deferred acceptance with replacement against
// per-VM capacity thresholds (already populated in vms by
// ComputeThresholds). Returns the terminal MatchResult for every task in
// levelTasks.
func Match(levelTasks []int, cp CriticalPath, tasks map[int]*Task, vms map[int]*VM) map[int]MatchResult {
	results := make(map[int]MatchResult, len(levelTasks))

	var nonCP []int
	for _, id := range levelTasks {
		if cp.Contains(id) {
			fastest := FastestVM(vms)
			fastest.WaitingList = append(fastest.WaitingList, id)
			results[id] = MatchResult{State: StateAccepted, VM: fastest.ID}
		} else {
			nonCP = append(nonCP, id)
		}
	}
	if len(nonCP) == 0 {
		return results
	}

	prefs := buildTaskPreferences(nonCP, tasks, vms)
	taskVM := make(map[int]int, len(nonCP))

	queue := make([]int, len(nonCP))
	copy(queue, nonCP)

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]

		if len(prefs[t]) == 0 {
			vmID := bestAvailableOrFastest(vms)
			v := vms[vmID]
			v.WaitingList = append(v.WaitingList, t)
			taskVM[t] = vmID
			results[t] = MatchResult{State: StateForceAssigned, VM: vmID}
			continue
		}

		vmID := prefs[t][0]
		v := vms[vmID]

		if !v.Saturated() {
			v.WaitingList = append(v.WaitingList, t)
			taskVM[t] = vmID
			results[t] = MatchResult{State: StateAccepted, VM: vmID}
			continue
		}

		worst, found := worstNonCP(v, cp, tasks)
		if !found {
			prefs[t] = prefs[t][1:]
			queue = append(queue, t)
			continue
		}

		if ET(tasks[t].Size, v) < ET(tasks[worst].Size, v) {
			v.Remove(worst)
			prefs[worst] = dropVM(prefs[worst], vmID)
			delete(taskVM, worst)
			delete(results, worst)

			v.WaitingList = append(v.WaitingList, t)
			taskVM[t] = vmID
			results[t] = MatchResult{State: StateAccepted, VM: vmID}

			queue = append(queue, worst)
		} else {
			prefs[t] = prefs[t][1:]
			queue = append(queue, t)
		}
	}

	return results
}

// buildTaskPreferences returns, for every task in nonCP, VM IDs sorted
// ascending by ET(t,v), ties broken by ascending VM ID.
func buildTaskPreferences(nonCP []int, tasks map[int]*Task, vms map[int]*VM) map[int][]int {
	vmIDs := make([]int, 0, len(vms))
	for id := range vms {
		vmIDs = append(vmIDs, id)
	}

	prefs := make(map[int][]int, len(nonCP))
	for _, t := range nonCP {
		size := tasks[t].Size
		ordered := make([]int, len(vmIDs))
		copy(ordered, vmIDs)
		sort.SliceStable(ordered, func(i, j int) bool {
			ei, ej := ET(size, vms[ordered[i]]), ET(size, vms[ordered[j]])
			if ei != ej {
				return ei < ej
			}
			return ordered[i] < ordered[j]
		})
		prefs[t] = ordered
	}
	return prefs
}

// worstNonCP returns the task in v's waiting list with the greatest
// ET(t,v) among non-CP occupants (ties broken by largest task ID for
// determinism), skipping CP tasks entirely since they are immovable.
func worstNonCP(v *VM, cp CriticalPath, tasks map[int]*Task) (int, bool) {
	worst := -1
	worstET := 0.0
	for _, id := range v.WaitingList {
		if cp.Contains(id) {
			continue
		}
		e := ET(tasks[id].Size, v)
		if worst == -1 || e > worstET || (e == worstET && id > worst) {
			worst = id
			worstET = e
		}
	}
	return worst, worst != -1
}

// dropVM removes vmID from a task's preference list, preserving order.
func dropVM(prefs []int, vmID int) []int {
	out := prefs[:0]
	for _, id := range prefs {
		if id != vmID {
			out = append(out, id)
		}
	}
	return out
}

// bestAvailableOrFastest picks the VM with the lowest FreeTime among VMs
// with spare capacity (|waitingList| < threshold), ties broken by smallest
// ID. If every VM is saturated, falls back to the fastest VM (documented
// last-resort fallback — spec.md §4.5 step 5).
func bestAvailableOrFastest(vms map[int]*VM) int {
	var best *VM
	for _, v := range vms {
		if v.Saturated() {
			continue
		}
		if best == nil || v.FreeTime < best.FreeTime ||
			(v.FreeTime == best.FreeTime && v.ID < best.ID) {
			best = v
		}
	}
	if best != nil {
		return best.ID
	}
	return FastestVM(vms).ID
}
