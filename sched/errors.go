package sched

import "errors"

// Structural errors are fatal: nothing is partially scheduled when these
// surface. They are returned, never panicked, so a CLI caller can report
// them cleanly (see cmd.validateCmd).
var (
	// ErrInvalidDAG is returned when the task graph contains a cycle or has
	// no entry (in-degree zero) task.
	ErrInvalidDAG = errors.New("sched: invalid DAG")

	// ErrEmptyVMPool is returned when a schedule is requested with no VMs
	// configured.
	ErrEmptyVMPool = errors.New("sched: empty VM pool")

	// ErrInfeasibleSchedule is returned when a critical-path task has
	// execution time +Inf on every VM (its size is non-positive, or every
	// VM has non-positive capacity),
	// which would make SLR undefined.
	ErrInfeasibleSchedule = errors.New("sched: infeasible schedule")
)
