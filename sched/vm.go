package sched

import "math"

// VM is a virtual machine in the scheduling pool. Capacity is a processing
// rate (work units per time unit); Bandwidth maps peer VM ID to transfer
// bandwidth, with Bandwidth[ID] conceptually +Inf (same-VM transfer is free,
// so timing.go never looks it up for self-pairs).
type VM struct {
	ID         int
	Capacity   float64 // > 0 at steady state; <= 0 makes ET return +Inf
	Bandwidth  map[int]float64

	WaitingList []int // assigned task IDs, in matching-acceptance order
	Threshold   int   // refreshed per level by the threshold calculator

	FreeTime float64 // timing engine's per-VM cursor
}

// NewVM creates a VM with an empty waiting list and bandwidth map.
func NewVM(id int, capacity float64) *VM {
	return &VM{
		ID:        id,
		Capacity:  capacity,
		Bandwidth: make(map[int]float64),
	}
}

// BandwidthTo returns the bandwidth from v to peer, or +Inf for peer == v.ID
// (same-VM communication is free).
func (v *VM) BandwidthTo(peer int) float64 {
	if peer == v.ID {
		return math.Inf(1)
	}
	return v.Bandwidth[peer]
}

// Saturated reports whether v's waiting list is at or above its threshold
// for the level currently being matched.
func (v *VM) Saturated() bool {
	return len(v.WaitingList) >= v.Threshold
}

// IndexOf returns the position of taskID in v's waiting list, or -1.
func (v *VM) IndexOf(taskID int) int {
	for i, id := range v.WaitingList {
		if id == taskID {
			return i
		}
	}
	return -1
}

// Remove deletes taskID from v's waiting list, preserving order of the rest.
func (v *VM) Remove(taskID int) {
	idx := v.IndexOf(taskID)
	if idx < 0 {
		return
	}
	v.WaitingList = append(v.WaitingList[:idx], v.WaitingList[idx+1:]...)
}

// FastestVM returns the VM with the highest capacity, breaking ties by
// smallest ID. Panics on an empty pool — callers must check EmptyVMPool
// first (ErrEmptyVMPool is a structural error, not a panic path).
func FastestVM(vms map[int]*VM) *VM {
	var best *VM
	for _, v := range vms {
		if best == nil ||
			v.Capacity > best.Capacity ||
			(v.Capacity == best.Capacity && v.ID < best.ID) {
			best = v
		}
	}
	if best == nil {
		panic("sched: FastestVM called on empty VM pool")
	}
	return best
}

// ET returns size/capacity, the execution time of a task with the given
// size on v. Returns +Inf if capacity or size is non-positive (spec.md §7
// numerical fallback — unschedulable, not an error).
func ET(size float64, v *VM) float64 {
	if v.Capacity <= 0 || size <= 0 {
		return math.Inf(1)
	}
	return size / v.Capacity
}
