package dataset

import (
	"github.com/hetero-sched/sm-cptd/sched"
)

// Generator produces synthetic task sizes, VM capacities, and bandwidths
// deterministically from a seed, per spec.md §6: sizes in [500,700],
// capacities in [10,20], bandwidths in [20,30]. Only DAG structure must be
// preserved across loaders — these numeric ranges are the generator's own
// choice, matching spec.md's stated ranges.
type Generator struct {
	rng *PartitionedRNG
}

// NewGenerator builds a Generator from a seed and whether the seed is
// shared across runs (fixedSeed).
func NewGenerator(seed int64, fixedSeed bool) *Generator {
	return &Generator{rng: NewPartitionedRNG(SeedKey(seed), fixedSeed)}
}

// TaskSize draws a uniform task size in [500,700).
func (g *Generator) TaskSize() float64 {
	return uniform(g.rng.ForSubsystem(SubsystemTaskSize), 500, 700)
}

// Capacity draws a uniform VM capacity in [10,20).
func (g *Generator) Capacity() float64 {
	return uniform(g.rng.ForSubsystem(SubsystemCapacity), 10, 20)
}

// Bandwidth draws a uniform VM-to-VM bandwidth in [20,30).
func (g *Generator) Bandwidth() float64 {
	return uniform(g.rng.ForSubsystem(SubsystemBandwidth), 20, 30)
}

func uniform(r interface{ Float64() float64 }, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// GenerateGraph builds a Graph with numTasks tasks wired as a random DAG
// (edge i->j only for i<j, guaranteeing acyclicity) and numVMs VMs with a
// full bandwidth matrix, all drawn from g. edgeProb controls density: each
// ordered pair (i,j) with i<j gets an edge independently with that
// probability, and task 0 is always wired as an ancestor of every
// otherwise-isolated task so level 0 stays small and entry tasks have
// fan-out for the duplicator to exercise.
func (g *Generator) GenerateGraph(numTasks, numVMs int, edgeProb float64) *sched.Graph {
	graph := sched.NewGraph()

	for i := 0; i < numTasks; i++ {
		graph.AddTask(sched.NewTask(i, g.TaskSize()))
	}

	edgeRNG := g.rng.ForSubsystem(SubsystemTaskSize)
	hasPred := make([]bool, numTasks)
	for i := 0; i < numTasks; i++ {
		for j := i + 1; j < numTasks; j++ {
			if edgeRNG.Float64() < edgeProb {
				graph.AddEdge(i, j)
				hasPred[j] = true
			}
		}
	}
	// Every non-zero task with no predecessor becomes a successor of task
	// 0, so there is exactly one natural root and the level partition is
	// well-formed rather than all-entry.
	for j := 1; j < numTasks; j++ {
		if !hasPred[j] {
			graph.AddEdge(0, j)
		}
	}

	for i := 0; i < numVMs; i++ {
		graph.AddVM(sched.NewVM(i, g.Capacity()))
	}
	// Bandwidth is a symmetric matrix (spec.md §6): draw once per unordered
	// pair and assign both directions the same value.
	for i := 0; i < numVMs; i++ {
		for j := i + 1; j < numVMs; j++ {
			bw := g.Bandwidth()
			graph.VMs[i].Bandwidth[j] = bw
			graph.VMs[j].Bandwidth[i] = bw
		}
	}

	return graph
}
