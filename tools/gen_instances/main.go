// Command gen_instances generates deterministic rail-fleet instances for
// benchmarking and property testing: a set of agents on a shared rail
// plus a schedule of requested actions.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/elektrokombinacija/railmapf/internal/core"
)

// InstanceParams defines parameters for instance generation.
type InstanceParams struct {
	Seed        int64   `json:"seed"`
	NumAgents   int     `json:"num_agents"`
	ActionCount int     `json:"action_count"`
	RailLength  float64 `json:"rail_length"`
	RailDepth   float64 `json:"rail_depth"`
	SafetyX     float64 `json:"safety_x"`
	VxMin       float64 `json:"vx_min"`
	VxMax       float64 `json:"vx_max"`
	VyMin       float64 `json:"vy_min"`
	VyMax       float64 `json:"vy_max"`
	DurationMax float64 `json:"duration_max"`
}

// Instance is a complete routing problem: a fleet and a requested
// schedule of actions.
type Instance struct {
	Name      string         `json:"name"`
	Params    InstanceParams `json:"params"`
	Agents    []core.Agent   `json:"agents"`
	Schedule  core.Schedule  `json:"schedule"`
	Generated string         `json:"generated"`
}

func generateInstance(params InstanceParams) *Instance {
	rng := rand.New(rand.NewSource(params.Seed))

	inst := &Instance{
		Name:   fmt.Sprintf("railmapf_%d_agents_%d", params.NumAgents, params.Seed),
		Params: params,
	}

	spacing := params.RailLength / float64(params.NumAgents+1)
	for i := 0; i < params.NumAgents; i++ {
		agent := core.Agent{
			Name:     fmt.Sprintf("r%d", i),
			Position: core.Point{X: spacing * float64(i+1), Y: params.RailDepth * rng.Float64()},
			Velocity: core.ConstVel2D{
				X: params.VxMin + rng.Float64()*(params.VxMax-params.VxMin),
				Y: params.VyMin + rng.Float64()*(params.VyMax-params.VyMin),
			},
			SafetyX: params.SafetyX,
			Order:   int64(i),
		}
		inst.Agents = append(inst.Agents, agent)
	}

	var actions []core.Action
	for i := 0; i < params.ActionCount; i++ {
		agent := inst.Agents[rng.Intn(len(inst.Agents))]
		target := core.Point{
			X: rng.Float64() * params.RailLength,
			Y: rng.Float64() * params.RailDepth,
		}
		duration := rng.Float64() * params.DurationMax
		actions = append(actions, core.NewAction(agent, target, duration))
	}
	inst.Schedule = core.NewSchedule(actions...)

	return inst
}

func main() {
	seed := flag.Int64("seed", 42, "Random seed")
	numAgents := flag.Int("agents", 5, "Number of agents")
	actionCount := flag.Int("actions", 10, "Number of scheduled actions")
	railLength := flag.Float64("rail-length", 200, "Rail span (x-axis)")
	railDepth := flag.Float64("rail-depth", 40, "Perpendicular reach (y-axis)")
	safetyX := flag.Float64("safety-x", 10, "Default per-agent safety distance along x")
	vxMin := flag.Float64("vx-min", 1, "Minimum rail velocity")
	vxMax := flag.Float64("vx-max", 3, "Maximum rail velocity")
	vyMin := flag.Float64("vy-min", 0.5, "Minimum perpendicular velocity")
	vyMax := flag.Float64("vy-max", 2, "Maximum perpendicular velocity")
	durationMax := flag.Float64("duration-max", 10, "Maximum per-action dwell duration")
	outputDir := flag.String("output", "testdata", "Output directory")
	scalingMode := flag.Bool("scaling", false, "Generate a scaling test suite (5, 20, 50, 200 agents)")

	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	base := InstanceParams{
		Seed:        *seed,
		NumAgents:   *numAgents,
		ActionCount: *actionCount,
		RailLength:  *railLength,
		RailDepth:   *railDepth,
		SafetyX:     *safetyX,
		VxMin:       *vxMin,
		VxMax:       *vxMax,
		VyMin:       *vyMin,
		VyMax:       *vyMax,
		DurationMax: *durationMax,
	}

	var instances []*Instance
	if *scalingMode {
		for _, size := range []int{5, 20, 50, 200} {
			params := base
			params.NumAgents = size
			params.ActionCount = size * 3
			instances = append(instances, generateInstance(params))
		}
	} else {
		instances = append(instances, generateInstance(base))
	}

	generated := time.Now().UTC().Format(time.RFC3339)
	for _, inst := range instances {
		inst.Generated = generated

		filename := filepath.Join(*outputDir, inst.Name+".json")
		data, err := json.MarshalIndent(inst, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling instance %s: %v\n", inst.Name, err)
			continue
		}
		if err := os.WriteFile(filename, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing instance %s: %v\n", filename, err)
			continue
		}
		fmt.Printf("Generated: %s (%d agents, %d actions)\n", filename, inst.Params.NumAgents, inst.Params.ActionCount)
	}
}
