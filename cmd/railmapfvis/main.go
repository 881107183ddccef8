// Command railmapfvis provides a GUI visualization for railmapf routing
// results.
package main

import (
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/railmapf/internal/core"
	"github.com/elektrokombinacija/railmapf/internal/routing"
	"github.com/elektrokombinacija/railmapf/internal/vis"
)

func main() {
	agents, schedule := demoInstance()
	result, err := routing.Routes(agents, schedule)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("railmapf Visualizer"),
			app.Size(unit.Dp(1400), unit.Dp(900)),
		)

		application := vis.NewApp(agents, result)
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func demoInstance() ([]core.Agent, core.Schedule) {
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
