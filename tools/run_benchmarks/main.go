// Command run_benchmarks runs the railmapf routing core against a
// directory of generated instances and reports planning time, makespan,
// idle time and safety margin statistics.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/elektrokombinacija/railmapf/internal/core"
	"github.com/elektrokombinacija/railmapf/internal/sim"
)

// InstanceFile mirrors the JSON shape written by tools/gen_instances.
type InstanceFile struct {
	Name   string `json:"name"`
	Params struct {
		NumAgents   int     `json:"num_agents"`
		ActionCount int     `json:"action_count"`
		RailLength  float64 `json:"rail_length"`
	} `json:"params"`
	Agents   []core.Agent  `json:"agents"`
	Schedule core.Schedule `json:"schedule"`
}

// BenchmarkResult stores the outcome of routing a single instance.
type BenchmarkResult struct {
	Timestamp       string  `json:"timestamp"`
	CommitHash      string  `json:"commit_hash"`
	GoVersion       string  `json:"go_version"`
	OS              string  `json:"os"`
	Arch            string  `json:"arch"`
	Instance        string  `json:"instance"`
	NumAgents       int     `json:"num_agents"`
	NumActions      int     `json:"num_actions"`
	RailLength      float64 `json:"rail_length"`
	Success         bool    `json:"success"`
	PlanningTimeMs  float64 `json:"planning_time_ms"`
	Makespan        float64 `json:"makespan"`
	EvasionsApplied int     `json:"evasions_applied"`
	IdlesInserted   int     `json:"idles_inserted"`
	TotalIdleTime   float64 `json:"total_idle_time"`
	MinSafetyMargin float64 `json:"min_safety_margin"`
	Error           string  `json:"error,omitempty"`
}

// sizeClass aggregates results sharing the same agent count.
type sizeClass struct {
	NumAgents         int
	Runs              int
	Successes         int
	TotalPlanningMs   float64
	TotalMakespan     float64
	TotalIdleTime     float64
	WorstSafetyMargin float64
}

func getGitCommit() string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

func loadInstance(path string) (*InstanceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var inst InstanceFile
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, err
	}
	return &inst, nil
}

// runInstance routes one instance through the simulator and records the
// resulting metrics.
func runInstance(inst *InstanceFile, debugInvariants bool, timeout time.Duration) *BenchmarkResult {
	result := &BenchmarkResult{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		CommitHash: getGitCommit(),
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		Instance:   inst.Name,
		NumAgents:  inst.Params.NumAgents,
		NumActions: inst.Params.ActionCount,
		RailLength: inst.Params.RailLength,
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s := sim.NewSimulator(sim.SimulationConfig{
		Agents:          inst.Agents,
		Schedule:        inst.Schedule,
		TimeStep:        0.5,
		DebugInvariants: debugInvariants,
	})

	metrics, err := s.Run(ctx)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	result.PlanningTimeMs = metrics.PlanningTimeMs
	result.Makespan = metrics.Makespan
	result.EvasionsApplied = metrics.EvasionsApplied
	result.IdlesInserted = metrics.IdlesInserted
	result.TotalIdleTime = metrics.TotalIdleTime
	result.MinSafetyMargin = metrics.MinSafetyMargin
	return result
}

func writeCSV(results []*BenchmarkResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"timestamp", "commit_hash", "go_version", "os", "arch",
		"instance", "num_agents", "num_actions", "rail_length",
		"success", "planning_time_ms", "makespan",
		"evasions_applied", "idles_inserted", "total_idle_time",
		"min_safety_margin", "error",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Timestamp, r.CommitHash, r.GoVersion, r.OS, r.Arch,
			r.Instance, fmt.Sprintf("%d", r.NumAgents), fmt.Sprintf("%d", r.NumActions),
			fmt.Sprintf("%.2f", r.RailLength),
			fmt.Sprintf("%t", r.Success), fmt.Sprintf("%.3f", r.PlanningTimeMs),
			fmt.Sprintf("%.3f", r.Makespan),
			fmt.Sprintf("%d", r.EvasionsApplied), fmt.Sprintf("%d", r.IdlesInserted),
			fmt.Sprintf("%.3f", r.TotalIdleTime), fmt.Sprintf("%.3f", r.MinSafetyMargin),
			r.Error,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(results []*BenchmarkResult) {
	classes := make(map[int]*sizeClass)
	for _, r := range results {
		c, ok := classes[r.NumAgents]
		if !ok {
			c = &sizeClass{NumAgents: r.NumAgents, WorstSafetyMargin: r.MinSafetyMargin}
			classes[r.NumAgents] = c
		}
		c.Runs++
		if r.Success {
			c.Successes++
			c.TotalPlanningMs += r.PlanningTimeMs
			c.TotalMakespan += r.Makespan
			c.TotalIdleTime += r.TotalIdleTime
			if r.MinSafetyMargin < c.WorstSafetyMargin {
				c.WorstSafetyMargin = r.MinSafetyMargin
			}
		}
	}

	fmt.Println("\n=== ROUTING BENCHMARK SUMMARY ===")
	fmt.Printf("%-10s %6s %8s %14s %12s %12s %14s\n",
		"Agents", "Runs", "Success", "AvgPlan(ms)", "AvgMakespan", "AvgIdleTime", "WorstMargin")
	fmt.Println(strings.Repeat("-", 78))

	var sizes []int
	for n := range classes {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)

	for _, n := range sizes {
		c := classes[n]
		avgPlan, avgMakespan, avgIdle := 0.0, 0.0, 0.0
		if c.Successes > 0 {
			avgPlan = c.TotalPlanningMs / float64(c.Successes)
			avgMakespan = c.TotalMakespan / float64(c.Successes)
			avgIdle = c.TotalIdleTime / float64(c.Successes)
		}
		fmt.Printf("%-10d %6d %8d %14.3f %12.2f %12.2f %14.4f\n",
			c.NumAgents, c.Runs, c.Successes, avgPlan, avgMakespan, avgIdle, c.WorstSafetyMargin)
	}
}

func main() {
	inputDir := flag.String("input", "testdata", "Directory containing instance JSON files")
	outputFile := flag.String("output", "evidence/benchmark_results.csv", "Output CSV file")
	timeout := flag.Duration("timeout", 30*time.Second, "Timeout per instance")
	agentFilter := flag.Int("agents", 0, "Run only instances with this many agents (0 = all)")
	debugInvariants := flag.Bool("debug-invariants", true, "Fail fast on routing invariant violations")
	verbose := flag.Bool("verbose", false, "Verbose output")

	flag.Parse()

	outputDir := filepath.Dir(*outputFile)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	pattern := filepath.Join(*inputDir, "*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding instance files: %v\n", err)
		os.Exit(1)
	}

	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No instance files found in %s\n", *inputDir)
		fmt.Fprintf(os.Stderr, "Run gen_instances first: go run ./tools/gen_instances -scaling -output testdata\n")
		os.Exit(1)
	}

	var results []*BenchmarkResult
	for i, file := range files {
		inst, err := loadInstance(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", file, err)
			continue
		}

		if *agentFilter > 0 && inst.Params.NumAgents != *agentFilter {
			continue
		}

		if *verbose {
			fmt.Printf("[%d/%d] %s ... ", i+1, len(files), inst.Name)
		} else {
			fmt.Printf("\r[%d/%d] Running...", i+1, len(files))
		}

		result := runInstance(inst, *debugInvariants, *timeout)
		results = append(results, result)

		if *verbose {
			if result.Success {
				fmt.Printf("OK (%.2fms, makespan=%.2f)\n", result.PlanningTimeMs, result.Makespan)
			} else {
				fmt.Printf("FAILED: %s\n", result.Error)
			}
		}
	}
	fmt.Println()

	if err := writeCSV(results, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results written to: %s\n", *outputFile)

	printSummary(results)
}
