package routing

import (
	"math/rand"

	"github.com/elektrokombinacija/railmapf/internal/core"
)

// scheduleGen produces small deterministic-per-seed schedules for property
// tests, grounded on the random-instance generation used by
// original_source/tests/actions_tests.rs's proptest strategy (bounded
// target coordinates and durations, agents picked uniformly).
type scheduleGen struct {
	rnd *rand.Rand
}

func newScheduleGen(seed int64) *scheduleGen {
	return &scheduleGen{rnd: rand.New(rand.NewSource(seed))}
}

func (g *scheduleGen) schedule(agents []core.Agent, n int) core.Schedule {
	actions := make([]core.Action, 0, n)
	for i := 0; i < n; i++ {
		agent := agents[g.rnd.Intn(len(agents))]
		target := core.Point{
			X: g.rnd.Float64()*120 - 20,
			Y: g.rnd.Float64() * 40,
		}
		duration := g.rnd.Float64() * 8
		actions = append(actions, core.NewAction(agent, target, duration))
	}
	return core.NewSchedule(actions...)
}
