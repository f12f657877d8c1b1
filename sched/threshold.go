package sched

import (
	"math"
	"sort"
)

// ComputeThresholds sets threshold(v, level) for every VM given the
// cumulative task count through `level` (inclusive). N = sum of tasks at
// levels 0..level; P = sum of VM capacities. Each VM gets
// ceil((N/P) * capacity(v)); any rounding deficit (sum of ceilings < N) is
// distributed one unit at a time, round-robin in descending capacity-share
// order, until the sum equals N.
//
// Mutates vms in place (threshold is a per-VM, per-level quantity refreshed
// as scheduling proceeds) and returns the same map keyed by VM ID for
// convenience.
func ComputeThresholds(vms map[int]*VM, levels Levels, level int) map[int]int {
	n := cumulativeTaskCount(levels, level)
	p := totalCapacity(vms)

	ids := make([]int, 0, len(vms))
	for id := range vms {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	thresholds := make(map[int]int, len(ids))
	sum := 0
	if p <= 0 {
		// No capacity in the pool: every VM gets an equal share of N,
		// distributed by the same round-robin deficit rule below starting
		// from zero thresholds.
		for _, id := range ids {
			thresholds[id] = 0
		}
	} else {
		for _, id := range ids {
			share := (float64(n) / p) * vms[id].Capacity
			thresholds[id] = int(math.Ceil(share))
			sum += thresholds[id]
		}
	}

	if sum < n {
		// Round-robin the deficit in descending order of capacity share
		// (ties by ascending ID for determinism).
		order := make([]int, len(ids))
		copy(order, ids)
		sort.SliceStable(order, func(i, j int) bool {
			return vms[order[i]].Capacity > vms[order[j]].Capacity
		})
		deficit := n - sum
		for deficit > 0 {
			for _, id := range order {
				if deficit == 0 {
					break
				}
				thresholds[id]++
				deficit--
			}
		}
	}

	for id, v := range vms {
		v.Threshold = thresholds[id]
	}
	return thresholds
}

func cumulativeTaskCount(levels Levels, level int) int {
	n := 0
	for l := 0; l <= level; l++ {
		n += len(levels[l])
	}
	return n
}

func totalCapacity(vms map[int]*VM) float64 {
	total := 0.0
	for _, v := range vms {
		if v.Capacity > 0 {
			total += v.Capacity
		}
	}
	return total
}
