// Package dataset provides the external collaborators spec.md treats as
// interface contracts: CSV loaders for task/DAG/capacity/bandwidth tables,
// and a deterministic synthetic generator for when those tables are
// incomplete or absent.
//
// Nothing in this package is consulted by the sched package's algorithms —
// the boundary is one-directional: dataset builds a *sched.Graph, sched
// schedules it.
package dataset
