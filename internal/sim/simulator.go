// Package sim provides simulation infrastructure for exercising the
// railmapf routing core end to end: running a Schedule through
// routing.Routes, then replaying the resulting Routing tick by tick to
// collect makespan, idle-time and safety-margin metrics.
package sim

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/elektrokombinacija/railmapf/internal/core"
	"github.com/elektrokombinacija/railmapf/internal/routing"
)

// SimulationConfig configures a simulation run.
type SimulationConfig struct {
	// Agents is the fleet to route.
	Agents []core.Agent

	// Schedule is the ordered sequence of requested actions.
	Schedule core.Schedule

	// TimeStep is the replay granularity used when scanning committed
	// timelines for safety-margin metrics (seconds).
	TimeStep float64

	// DebugInvariants enables routing.DebugInvariants for this run,
	// surfacing evasion non-termination as an error instead of an
	// infinite loop.
	DebugInvariants bool

	// Verbose enables progress logging during replay, for ticks whose
	// whole-second part is a multiple of 10.
	Verbose bool

	Logger *zap.Logger
}

// DefaultConfig returns a default simulation configuration.
func DefaultConfig() SimulationConfig {
	logger, _ := zap.NewProduction()
	return SimulationConfig{
		TimeStep: 0.5,
		Logger:   logger,
	}
}

// SimulationMetrics collects metrics from a simulation run.
type SimulationMetrics struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	PlanningTimeMs float64 `json:"planning_time_ms"`

	AgentCount      int `json:"agent_count"`
	ActionCount     int `json:"action_count"`
	EvasionsApplied int `json:"evasions_applied"`
	IdlesInserted   int `json:"idles_inserted"`

	TotalIdleTime float64 `json:"total_idle_time"`
	Makespan      float64 `json:"makespan"`

	// MinSafetyMargin is the smallest observed (x-gap - sd) across every
	// sampled tick and ordered agent pair; it should never go negative.
	MinSafetyMargin float64 `json:"min_safety_margin"`
}

// Simulator replays a Schedule through the routing core and reports
// metrics about the resulting Routing.
type Simulator struct {
	config  SimulationConfig
	routing core.Routing
	metrics SimulationMetrics
}

// NewSimulator creates a simulator for the given configuration.
func NewSimulator(config SimulationConfig) *Simulator {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Simulator{
		config:  config,
		metrics: SimulationMetrics{MinSafetyMargin: math.Inf(1)},
	}
}

// Run plans the configured schedule and replays the result, collecting
// metrics. It respects ctx cancellation between replay ticks.
func (s *Simulator) Run(ctx context.Context) (*SimulationMetrics, error) {
	s.metrics.StartTime = time.Now()
	s.metrics.AgentCount = len(s.config.Agents)
	s.metrics.ActionCount = len(s.config.Schedule.Actions)

	prevInvariants := routing.DebugInvariants
	routing.DebugInvariants = s.config.DebugInvariants
	defer func() { routing.DebugInvariants = prevInvariants }()

	planStart := time.Now()
	result, err := routing.Routes(s.config.Agents, s.config.Schedule)
	s.metrics.PlanningTimeMs = float64(time.Since(planStart).Microseconds()) / 1000.0
	if err != nil {
		s.config.Logger.Error("routing failed", zap.Error(err))
		return nil, err
	}
	s.routing = result

	s.tallyActions()
	if err := s.replay(ctx); err != nil {
		return nil, err
	}

	s.metrics.EndTime = time.Now()
	return &s.metrics, nil
}

// tallyActions walks every committed path once, counting evasions and
// idles and tracking the overall makespan.
func (s *Simulator) tallyActions() {
	for _, route := range s.routing.Routes {
		for _, p := range route.Paths {
			switch p.Action.Kind {
			case core.Evasive:
				s.metrics.EvasionsApplied++
			case core.Idle:
				if p.TEnd > p.TStart {
					s.metrics.IdlesInserted++
					s.metrics.TotalIdleTime += p.TEnd - p.TStart
				}
			}
			if p.TEnd > s.metrics.Makespan {
				s.metrics.Makespan = p.TEnd
			}
		}
	}
}

// replay steps through the combined timeline in TimeStep increments,
// sampling every agent's interpolated x-position and recording the
// tightest observed safety margin (spec P1). This is diagnostic: the
// routing core already guarantees the invariant by construction, but a
// simulator that never checks it would hide a regression.
func (s *Simulator) replay(ctx context.Context) error {
	step := s.config.TimeStep
	if step <= 0 {
		step = 0.5
	}

	timelines := make(map[string][]core.PointST, len(s.routing.Routes))
	for _, route := range s.routing.Routes {
		var pts []core.PointST
		for _, p := range route.Paths {
			pts = append(pts, p.ToPointsST()...)
		}
		timelines[route.Agent.Name] = pts
	}

	for t := 0.0; t <= s.metrics.Makespan; t += step {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for _, a := range s.routing.Routes {
			xa, ok := sampleX(timelines[a.Agent.Name], t)
			if !ok {
				continue
			}
			for _, b := range s.routing.Routes {
				if a.Agent.Name == b.Agent.Name {
					continue
				}
				xb, ok := sampleX(timelines[b.Agent.Name], t)
				if !ok {
					continue
				}
				if a.Agent.Order >= b.Agent.Order {
					continue
				}
				sd := a.Agent.SafetyDistance(b.Agent)
				margin := (xb - xa) - sd
				if margin < s.metrics.MinSafetyMargin {
					s.metrics.MinSafetyMargin = margin
				}
			}
		}

		if s.config.Verbose && int(t)%10 == 0 {
			s.config.Logger.Info("replay tick",
				zap.Float64("t", t),
				zap.Float64("min_safety_margin", s.metrics.MinSafetyMargin))
		}
	}
	return nil
}

// sampleX linearly interpolates x(t) over a flattened PointST timeline.
func sampleX(pts []core.PointST, t float64) (float64, bool) {
	if len(pts) == 0 {
		return 0, false
	}
	if t <= pts[0].T {
		return pts[0].X, true
	}
	for i := 1; i < len(pts); i++ {
		if t <= pts[i].T {
			p0, p1 := pts[i-1], pts[i]
			if p1.T == p0.T {
				return p1.X, true
			}
			frac := (t - p0.T) / (p1.T - p0.T)
			return p0.X + frac*(p1.X-p0.X), true
		}
	}
	return pts[len(pts)-1].X, true
}

// Metrics returns the metrics collected by the last Run.
func (s *Simulator) Metrics() SimulationMetrics {
	return s.metrics
}

// Routing returns the Routing produced by the last Run.
func (s *Simulator) Routing() core.Routing {
	return s.routing
}

// ExportMetrics writes the collected metrics to a JSON file.
func (s *Simulator) ExportMetrics(path string) error {
	data, err := json.MarshalIndent(s.metrics, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RunSimulation is a convenience wrapper that constructs a Simulator,
// runs it to completion, and returns its metrics.
func RunSimulation(config SimulationConfig) (*SimulationMetrics, error) {
	sim := NewSimulator(config)
	return sim.Run(context.Background())
}
