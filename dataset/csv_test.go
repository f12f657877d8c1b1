package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hetero-sched/sm-cptd/sched"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTasks_ParsesSizes(t *testing.T) {
	path := writeTempCSV(t, "tasks.csv", "t1,500\nt2,600\n")
	gen := NewGenerator(1, false)

	graph, err := LoadTasks(path, gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if graph.Tasks[1].Size != 500 {
		t.Errorf("task 1 size = %v, want 500", graph.Tasks[1].Size)
	}
	if graph.Tasks[2].Size != 600 {
		t.Errorf("task 2 size = %v, want 600", graph.Tasks[2].Size)
	}
}

func TestLoadTasks_MissingSizeIsGenerated(t *testing.T) {
	path := writeTempCSV(t, "tasks.csv", "t1\n")
	gen := NewGenerator(1, false)

	graph, err := LoadTasks(path, gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	size := graph.Tasks[1].Size
	if size < 500 || size >= 700 {
		t.Errorf("generated size = %v, want in [500,700)", size)
	}
}

func TestLoadDAG_WiresEdges(t *testing.T) {
	tasksPath := writeTempCSV(t, "tasks.csv", "t1,100\nt2,100\n")
	gen := NewGenerator(1, false)
	graph, err := LoadTasks(tasksPath, gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dagPath := writeTempCSV(t, "dag.csv", "t1,t2\n")
	if err := LoadDAG(dagPath, graph); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := graph.Tasks[1].Succ[2]; !ok {
		t.Error("expected edge 1 -> 2")
	}
}

func TestLoadVMs_ParsesCapacities(t *testing.T) {
	path := writeTempCSV(t, "vms.csv", "vm1,10\nvm2,20\n")
	graph := sched.NewGraph()

	if err := LoadVMs(path, graph); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if graph.VMs[1].Capacity != 10 {
		t.Errorf("VM 1 capacity = %v, want 10", graph.VMs[1].Capacity)
	}
	if graph.VMs[2].Capacity != 20 {
		t.Errorf("VM 2 capacity = %v, want 20", graph.VMs[2].Capacity)
	}
}

func TestLoadBandwidth_ParsesSymmetricMatrix(t *testing.T) {
	graph := sched.NewGraph()
	vmsPath := writeTempCSV(t, "vms.csv", "vm1,10\nvm2,10\n")
	if err := LoadVMs(vmsPath, graph); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bwPath := writeTempCSV(t, "bandwidth.csv", "0,25\n25,0\n")
	if err := LoadBandwidth(bwPath, graph); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if graph.VMs[1].Bandwidth[2] != 25 {
		t.Errorf("bandwidth(1,2) = %v, want 25", graph.VMs[1].Bandwidth[2])
	}
	if graph.VMs[2].Bandwidth[1] != 25 {
		t.Errorf("bandwidth(2,1) = %v, want 25", graph.VMs[2].Bandwidth[1])
	}
}

func TestParsePrefixedID_RejectsWrongPrefix(t *testing.T) {
	if _, err := parseTaskID("vm1"); err == nil {
		t.Error("expected an error for a task ID missing the 't' prefix")
	}
}
