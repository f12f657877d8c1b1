package metrics

import (
	"testing"

	"github.com/hetero-sched/sm-cptd/sched"
)

func buildScheduledGraph(t *testing.T) (*sched.Graph, *sched.Schedule) {
	t.Helper()
	g := sched.NewGraph()
	g.AddTask(sched.NewTask(1, 100))
	g.AddTask(sched.NewTask(2, 100))
	g.AddEdge(1, 2)
	g.AddVM(sched.NewVM(1, 10))
	g.AddVM(sched.NewVM(2, 10))

	s, err := sched.Run(g, sched.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g, s
}

func TestDefaultReporter_Report_PopulatesSummary(t *testing.T) {
	g, s := buildScheduledGraph(t)

	summary := NewReporter().Report(s, g)

	if summary.Makespan != s.Makespan {
		t.Errorf("summary.Makespan = %v, want %v", summary.Makespan, s.Makespan)
	}
	if summary.SLR <= 0 {
		t.Errorf("SLR = %v, want > 0", summary.SLR)
	}
	if len(summary.VU) != len(g.VMs) {
		t.Errorf("VU has %d entries, want %d (one per VM)", len(summary.VU), len(g.VMs))
	}
	for vmID, vu := range summary.VU {
		if vu < 0 || vu > 1 {
			t.Errorf("VU[%d] = %v, want in [0,1]", vmID, vu)
		}
	}
}

func TestDefaultReporter_Report_FairnessIsOneWhenUtilizationIsEven(t *testing.T) {
	// A single-VM pool trivially has perfectly even utilization: AVU equals
	// that VM's own VU, so stddev is 0 and fairness is exactly 1.
	g := sched.NewGraph()
	g.AddTask(sched.NewTask(1, 100))
	g.AddVM(sched.NewVM(1, 10))

	s, err := sched.Run(g, sched.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := NewReporter().Report(s, g)
	if summary.Fairness != 1 {
		t.Errorf("Fairness = %v, want 1 for a single-VM pool", summary.Fairness)
	}
}
