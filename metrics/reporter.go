package metrics

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/hetero-sched/sm-cptd/sched"
)

// Summary aggregates the metrics a finished Schedule can be judged by.
//
// SLR (Schedule Length Ratio) is makespan divided by the critical path's
// lower-bound length on the fastest VM — the standard definition from the
// scheduling literature. VU/AVU/fairness have no formula in spec.md beyond
// being named out of scope; this is the Open Question resolution (see
// DESIGN.md): VU per VM is busy-time/makespan, AVU is the mean VU, and
// fairness is 1 - stddev(VU)/mean(VU) (1.0 = perfectly even utilization).
type Summary struct {
	Makespan  float64
	SLR       float64
	VU        map[int]float64
	AVU       float64
	Fairness  float64
}

// Reporter turns a finished Schedule into a Summary. The single method
// interface mirrors the corpus's one-method extension points (routing
// policy, admission policy, priority policy): a new reporter only needs to
// implement Report.
type Reporter interface {
	Report(s *sched.Schedule, g *sched.Graph) Summary
}

// DefaultReporter computes Summary using the formulas documented on
// Summary.
type DefaultReporter struct{}

// NewReporter returns the default Reporter. Kept as a constructor (rather
// than exporting DefaultReporter directly) so a named alternative can be
// added later without changing call sites — spec.md names no alternative
// today, so none is built.
func NewReporter() Reporter {
	return &DefaultReporter{}
}

// Report implements Reporter.
func (r *DefaultReporter) Report(s *sched.Schedule, g *sched.Graph) Summary {
	summary := Summary{
		Makespan: s.Makespan,
		SLR:      slr(s, g),
		VU:       vuPerVM(s, g),
	}
	vus := make([]float64, 0, len(summary.VU))
	for _, v := range summary.VU {
		vus = append(vus, v)
	}
	if len(vus) > 0 {
		summary.AVU = stat.Mean(vus, nil)
		if summary.AVU > 0 {
			var stddev float64
			if len(vus) > 1 {
				stddev = stat.StdDev(vus, nil)
			}
			summary.Fairness = 1 - stddev/summary.AVU
		}
	}
	return summary
}

func slr(s *sched.Schedule, g *sched.Graph) float64 {
	if s.Makespan == 0 {
		return 0
	}
	fastest := sched.FastestVM(g.VMs)
	cpLength := 0.0
	for taskID := range s.CriticalPath {
		cpLength += sched.ET(g.Tasks[taskID].Size, fastest)
	}
	if cpLength == 0 {
		return 0
	}
	return s.Makespan / cpLength
}

func vuPerVM(s *sched.Schedule, g *sched.Graph) map[int]float64 {
	busy := make(map[int]float64, len(g.VMs))
	for vmID, taskIDs := range s.Assignment {
		for _, taskID := range taskIDs {
			busy[vmID] += s.AFT[taskID] - s.AST[taskID]
		}
	}
	for vmID, taskIDs := range s.Duplicates {
		for _, taskID := range taskIDs {
			key := sched.DupKey{VM: vmID, Task: taskID}
			busy[vmID] += s.DupAFT[key] - s.DupAST[key]
		}
	}

	vu := make(map[int]float64, len(g.VMs))
	for vmID := range g.VMs {
		if s.Makespan > 0 {
			vu[vmID] = busy[vmID] / s.Makespan
		}
	}
	return vu
}

// Print logs summary via logrus at Info level, one line per field, matching
// the corpus's Metrics.Print ambient style routed through the structured
// logger instead of bare fmt.Println.
func Print(summary Summary) {
	logrus.Info("=== Schedule Summary ===")
	logrus.Infof("Makespan : %.2f", summary.Makespan)
	logrus.Infof("SLR      : %.4f", summary.SLR)
	logrus.Infof("AVU      : %.4f", summary.AVU)
	logrus.Infof("Fairness : %.4f", summary.Fairness)
	for vmID := range summary.VU {
		logrus.Infof("  VU[%s] : %.4f", fmt.Sprint(vmID), summary.VU[vmID])
	}
}
