package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hetero-sched/sm-cptd/sched"
)

// LoadTasks parses task.csv rows "t<id> <size>". A missing size column is
// regenerated from gen (spec.md §6: only DAG structure must be preserved
// across loaders, numeric sizes may be generated).
func LoadTasks(path string, gen *Generator) (*sched.Graph, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	graph := sched.NewGraph()
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		id, err := parseTaskID(row[0])
		if err != nil {
			return nil, fmt.Errorf("tasks.csv row %d: %w", i+1, err)
		}

		size := 0.0
		if len(row) > 1 && strings.TrimSpace(row[1]) != "" {
			size, err = strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
			if err != nil {
				return nil, fmt.Errorf("tasks.csv row %d: invalid size: %w", i+1, err)
			}
		} else {
			size = gen.TaskSize()
		}

		graph.AddTask(sched.NewTask(id, size))
	}
	return graph, nil
}

// LoadDAG parses dag.csv edges "t<from> t<to>" into graph, which must
// already contain every referenced task (from LoadTasks).
func LoadDAG(path string, graph *sched.Graph) error {
	rows, err := readRows(path)
	if err != nil {
		return fmt.Errorf("loading dag: %w", err)
	}
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		from, err := parseTaskID(row[0])
		if err != nil {
			return fmt.Errorf("dag.csv row %d: %w", i+1, err)
		}
		to, err := parseTaskID(row[1])
		if err != nil {
			return fmt.Errorf("dag.csv row %d: %w", i+1, err)
		}
		graph.AddEdge(from, to)
	}
	return nil
}

// LoadVMs parses processing_capacity.csv rows "vm<id> <capacity>" into
// graph's VM pool.
func LoadVMs(path string, graph *sched.Graph) error {
	rows, err := readRows(path)
	if err != nil {
		return fmt.Errorf("loading VMs: %w", err)
	}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		id, err := parseVMID(row[0])
		if err != nil {
			return fmt.Errorf("processing_capacity.csv row %d: %w", i+1, err)
		}
		capacity, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return fmt.Errorf("processing_capacity.csv row %d: invalid capacity: %w", i+1, err)
		}
		graph.AddVM(sched.NewVM(id, capacity))
	}
	return nil
}

// LoadBandwidth parses the symmetric bandwidth.csv matrix into graph's VMs.
// Row i, column j holds bandwidth(vmI, vmJ); the diagonal is ignored (VM's
// BandwidthTo already treats self as +Inf).
func LoadBandwidth(path string, graph *sched.Graph) error {
	rows, err := readRows(path)
	if err != nil {
		return fmt.Errorf("loading bandwidth: %w", err)
	}
	vmIDs := sched.SortedVMIDs(graph)
	for i, row := range rows {
		if i >= len(vmIDs) {
			break
		}
		fromID := vmIDs[i]
		for j, cell := range row {
			if j >= len(vmIDs) || j == i {
				continue
			}
			bw, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return fmt.Errorf("bandwidth.csv row %d col %d: invalid bandwidth: %w", i+1, j+1, err)
			}
			graph.VMs[fromID].Bandwidth[vmIDs[j]] = bw
		}
	}
	return nil
}

func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

// parseTaskID parses an identifier of the form "t<int>".
func parseTaskID(field string) (int, error) {
	return parsePrefixedID(field, "t")
}

// parseVMID parses an identifier of the form "vm<int>".
func parseVMID(field string) (int, error) {
	return parsePrefixedID(field, "vm")
}

func parsePrefixedID(field, prefix string) (int, error) {
	field = strings.TrimSpace(field)
	if !strings.HasPrefix(field, prefix) {
		return 0, fmt.Errorf("expected %q prefix, got %q", prefix, field)
	}
	return strconv.Atoi(strings.TrimPrefix(field, prefix))
}
