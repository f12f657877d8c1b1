// Package sched implements the SM-CPTD workflow scheduler: a three-phase
// algorithm that maps a DAG of tasks onto a heterogeneous pool of VMs while
// minimizing makespan.
//
// # Reading Guide
//
// Start with these files to understand the scheduling pipeline:
//   - task.go / vm.go: the graph model (Task, VM, DAG, communication costs)
//   - levels.go: topological level partition (Dynamic Critical Path input)
//   - rank.go / criticalpath.go: DCP phase — bottom-up rank, per-level CP pick
//   - threshold.go / match.go: SMGT phase — per-VM capacity thresholds and
//     Gale-Shapley-style stable matching
//   - timing.go: AST/AFT computation honoring predecessors and transfers
//   - duplicate.go: LOTD phase — entry-task duplication into idle gaps
//   - schedule.go: Schedule orchestrates the three phases and the makespan
//
// # Architecture
//
// The scheduler is single-threaded and synchronous: there is no concurrency
// inside the hot path, no I/O, and no global RNG. All randomness (dataset
// generation) lives in the sibling dataset package and never reaches here.
//
// Given fixed inputs and the tie-break rules documented on each phase, the
// scheduler is fully deterministic: two runs on identical inputs produce
// byte-identical schedules.
package sched
