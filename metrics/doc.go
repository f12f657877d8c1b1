// Package metrics reports on a finished schedule. spec.md keeps detailed
// metric math (SLR/VU/AVU/fairness) out of the algorithmic core's scope; this
// package is the thin interface-contract layer spec.md still names as a
// consumer of the scheduler's output.
package metrics
