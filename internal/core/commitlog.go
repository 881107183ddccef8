package core

import "github.com/pkg/errors"

// ErrDuplicateAgentName is returned when two agents share a name; names
// are the stable identity CommitLog and Conflict lookups key on.
var ErrDuplicateAgentName = errors.New("core: duplicate agent name")

// ErrZeroVelocity is returned when an agent has a non-positive velocity
// component; the direct path planner and idle-time computer both divide
// by velocity and cannot proceed.
var ErrZeroVelocity = errors.New("core: agent velocity components must be > 0")

// AgentRoute pairs an agent with its ordered, contiguous-in-time Paths.
type AgentRoute struct {
	Agent Agent
	Paths []Path
}

// Routing is the final output of a routing run: one AgentRoute per input
// agent, in input order.
type Routing struct {
	Routes []AgentRoute
}

// CommitLog is the driver's append-only, per-agent ordered list of Paths,
// owned exclusively for the duration of one routing run. Agents are kept
// in an ordered slice, and every iteration walks that slice so output
// stays deterministic; the name-keyed index map is used only to look an
// agent up by name, never to iterate.
type CommitLog struct {
	entries []AgentRoute
	index   map[string]int
}

// NewCommitLog seeds a CommitLog with one synthetic t=0 idle per agent at
// its initial position, per spec §3/§4.6. Agent names must be unique and
// every velocity component strictly positive.
func NewCommitLog(agents []Agent) (*CommitLog, error) {
	log := &CommitLog{
		entries: make([]AgentRoute, 0, len(agents)),
		index:   make(map[string]int, len(agents)),
	}
	for _, a := range agents {
		if a.Velocity.X <= 0 || a.Velocity.Y <= 0 {
			return nil, errors.Wrapf(ErrZeroVelocity, "agent %q", a.Name)
		}
		if _, exists := log.index[a.Name]; exists {
			return nil, errors.Wrapf(ErrDuplicateAgentName, "agent %q", a.Name)
		}
		initIdle := Path{
			Moves: nil,
			Action: Action{
				Agent:    a,
				Target:   a.Position,
				Duration: 0,
				Kind:     Idle,
			},
			TStart: 0,
			TEnd:   0,
		}
		log.index[a.Name] = len(log.entries)
		log.entries = append(log.entries, AgentRoute{Agent: a, Paths: []Path{initIdle}})
	}
	return log, nil
}

// Lookup returns the slice index for an agent name.
func (c *CommitLog) Lookup(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// Paths returns an agent's committed Paths in commit order.
func (c *CommitLog) Paths(name string) ([]Path, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.entries[i].Paths, true
}

// Last returns an agent's most recently committed Path.
func (c *CommitLog) Last(name string) (Path, bool) {
	paths, ok := c.Paths(name)
	if !ok || len(paths) == 0 {
		return Path{}, false
	}
	return paths[len(paths)-1], true
}

// Append commits a new Path for an agent, preserving the contiguous-time
// invariant (paths[i].TEnd == paths[i+1].TStart) by construction.
func (c *CommitLog) Append(name string, p Path) bool {
	i, ok := c.index[name]
	if !ok {
		return false
	}
	c.entries[i].Paths = append(c.entries[i].Paths, p)
	return true
}

// Others returns every committed AgentRoute except the named agent's,
// in commit-log order — used by the conflict detector and idle-time
// computer to scan neighbors.
func (c *CommitLog) Others(name string) []AgentRoute {
	out := make([]AgentRoute, 0, len(c.entries))
	for _, e := range c.entries {
		if e.Agent.Name != name {
			out = append(out, e)
		}
	}
	return out
}

// Routing snapshots the CommitLog into the final output shape.
func (c *CommitLog) Routing() Routing {
	routes := make([]AgentRoute, len(c.entries))
	copy(routes, c.entries)
	return Routing{Routes: routes}
}
