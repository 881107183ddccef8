// Command railmapf runs a small fleet of rail-mounted agents through the
// routing core and prints the resulting schedule.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/railmapf/internal/core"
	"github.com/elektrokombinacija/railmapf/internal/sim"
)

func main() {
	fmt.Println("=== railmapf: rail-constrained conflict-free routing ===")

	fmt.Println("--- Head-on crossing (3 agents) ---")
	agents, schedule := headOnInstance()
	runAndReport(agents, schedule)

	fmt.Println()
	fmt.Println("--- Cascading evasion (4 agents, tight spacing) ---")
	agents, schedule = cascadeInstance()
	runAndReport(agents, schedule)
}

func runAndReport(agents []core.Agent, schedule core.Schedule) {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	config := sim.DefaultConfig()
	config.Agents = agents
	config.Schedule = schedule
	config.Logger = logger
	config.DebugInvariants = true

	simulator := sim.NewSimulator(config)
	start := time.Now()
	metrics, err := simulator.Run(context.Background())
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "routing failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("planned %d agents / %d actions in %v (makespan %.2fs, idle %.2fs over %d insertions, %d evasions, min margin %.3f)\n",
		metrics.AgentCount, metrics.ActionCount, elapsed, metrics.Makespan, metrics.TotalIdleTime,
		metrics.IdlesInserted, metrics.EvasionsApplied, metrics.MinSafetyMargin)

	printRouting(simulator.Routing())
}

func printRouting(r core.Routing) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"agent", "kind", "t_start", "t_end", "target_x", "target_y"})
	for _, route := range r.Routes {
		for _, p := range route.Paths {
			t.AppendRow(table.Row{
				route.Agent.Name, p.Action.Kind.String(), fmt.Sprintf("%.2f", p.TStart),
				fmt.Sprintf("%.2f", p.TEnd), fmt.Sprintf("%.2f", p.Action.Target.X), fmt.Sprintf("%.2f", p.Action.Target.Y),
			})
		}
	}
	t.Render()
}

func headOnInstance() ([]core.Agent, core.Schedule) {
	a1 := core.Agent{Name: "gantry-1", Position: core.Point{X: 5, Y: 10}, Velocity: core.ConstVel2D{X: 2, Y: 1}, SafetyX: 8, Order: 0}
	a2 := core.Agent{Name: "gantry-2", Position: core.Point{X: 40, Y: 10}, Velocity: core.ConstVel2D{X: 2, Y: 1}, SafetyX: 8, Order: 1}
	a3 := core.Agent{Name: "gantry-3", Position: core.Point{X: 70, Y: 10}, Velocity: core.ConstVel2D{X: 1.5, Y: 1}, SafetyX: 8, Order: 2}

	schedule := core.NewSchedule(
		core.NewAction(a2, core.Point{X: 20, Y: 25}, 4),
		core.NewAction(a1, core.Point{X: 35, Y: 25}, 4),
		core.NewAction(a3, core.Point{X: 45, Y: 25}, 4),
	)
	return []core.Agent{a1, a2, a3}, schedule
}

func cascadeInstance() ([]core.Agent, core.Schedule) {
	agents := make([]core.Agent, 0, 4)
	for i := 0; i < 4; i++ {
		agents = append(agents, core.Agent{
			Name:     fmt.Sprintf("gantry-%d", i),
			Position: core.Point{X: float64(i) * 12, Y: 10},
			Velocity: core.ConstVel2D{X: 2, Y: 1},
			SafetyX:  10,
			Order:    int64(i),
		})
	}

	schedule := core.NewSchedule(
		core.NewAction(agents[3], core.Point{X: 5, Y: 30}, 3),
		core.NewAction(agents[2], core.Point{X: 2, Y: 30}, 3),
	)
	return agents, schedule
}
