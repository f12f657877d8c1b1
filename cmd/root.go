// cmd/root.go
package cmd

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hetero-sched/sm-cptd/dataset"
	"github.com/hetero-sched/sm-cptd/metrics"
	"github.com/hetero-sched/sm-cptd/sched"
)

var (
	tasksPath     string
	dagPath       string
	capacityPath  string
	bandwidthPath string
	configPath    string
	ccr           float64
	seed          int64
	fixedSeed     bool
	generate      int
	numVMs        int
	logLevel      string
	outPath       string
)

var rootCmd = &cobra.Command{
	Use:   "sm-cptd",
	Short: "DCP/SMGT/LOTD scheduler for heterogeneous VM pools",
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Load or generate a task DAG and VM pool, then compute and print a schedule",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := loadConfig()
		if err != nil {
			logrus.Fatalf("loading config: %v", err)
		}

		graph, err := loadGraph(cfg)
		if err != nil {
			logrus.Fatalf("loading dataset: %v", err)
		}

		logrus.Infof("scheduling %d tasks across %d VMs (ccr=%.2f)", len(graph.Tasks), len(graph.VMs), cfg.CCR)

		s, err := sched.Run(graph, cfg)
		if err != nil {
			logrus.Fatalf("schedule failed: %v", err)
		}

		summary := metrics.NewReporter().Report(s, graph)
		metrics.Print(summary)

		if outPath != "" {
			if err := writeScheduleJSON(s, outPath); err != nil {
				logrus.Fatalf("writing schedule: %v", err)
			}
			logrus.Infof("wrote schedule to %s", outPath)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load or generate a task DAG and VM pool and report structural errors without scheduling",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			logrus.Fatalf("invalid config: %v", err)
		}

		graph, err := loadGraph(cfg)
		if err != nil {
			logrus.Fatalf("invalid dataset: %v", err)
		}

		if _, err := sched.BuildLevels(graph); err != nil {
			logrus.Fatalf("invalid DAG: %v", err)
		}

		logrus.Infof("valid: %d tasks, %d VMs, config ok", len(graph.Tasks), len(graph.VMs))
	},
}

func loadConfig() (sched.Config, error) {
	if configPath == "" {
		cfg := sched.DefaultConfig()
		cfg.CCR = ccr
		cfg.Seed = seed
		cfg.FixedSeed = fixedSeed
		return cfg, cfg.Validate()
	}
	cfg, err := sched.LoadConfig(configPath)
	if err != nil {
		return sched.Config{}, err
	}
	return *cfg, cfg.Validate()
}

// loadGraph builds a Graph either from CSV files or, when --generate is
// positive, from a synthetic dataset of that many tasks over --vms VMs.
func loadGraph(cfg sched.Config) (*sched.Graph, error) {
	gen := dataset.NewGenerator(cfg.Seed, cfg.FixedSeed)

	if generate > 0 {
		const edgeProb = 0.3
		return gen.GenerateGraph(generate, numVMs, edgeProb), nil
	}

	graph, err := dataset.LoadTasks(tasksPath, gen)
	if err != nil {
		return nil, err
	}
	if err := dataset.LoadDAG(dagPath, graph); err != nil {
		return nil, err
	}
	if err := dataset.LoadVMs(capacityPath, graph); err != nil {
		return nil, err
	}
	if err := dataset.LoadBandwidth(bandwidthPath, graph); err != nil {
		return nil, err
	}
	return graph, nil
}

func writeScheduleJSON(s *sched.Schedule, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	for _, c := range []*cobra.Command{scheduleCmd, validateCmd} {
		c.Flags().StringVar(&tasksPath, "tasks", "tasks.csv", "Path to tasks CSV")
		c.Flags().StringVar(&dagPath, "dag", "dag.csv", "Path to DAG edges CSV")
		c.Flags().StringVar(&capacityPath, "capacity", "processing_capacity.csv", "Path to VM capacities CSV")
		c.Flags().StringVar(&bandwidthPath, "bandwidth", "bandwidth.csv", "Path to VM bandwidth matrix CSV")
		c.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file (overrides --ccr/--seed/--fixed-seed)")
		c.Flags().Float64Var(&ccr, "ccr", sched.DefaultConfig().CCR, "Communication-to-computation ratio")
		c.Flags().Int64Var(&seed, "seed", 0, "RNG seed for regenerated or generated values")
		c.Flags().BoolVar(&fixedSeed, "fixed-seed", false, "Share one RNG stream across all generation subsystems")
		c.Flags().IntVar(&generate, "generate", 0, "Generate N synthetic tasks instead of loading CSVs (0 = load from files)")
		c.Flags().IntVar(&numVMs, "vms", 4, "Number of VMs to generate (used only with --generate)")
	}
	scheduleCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	scheduleCmd.Flags().StringVar(&outPath, "out", "", "Write the full schedule as JSON to this path")

	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(validateCmd)
}
