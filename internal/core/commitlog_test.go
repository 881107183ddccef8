package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func agentFixture(name string, order int64) Agent {
	return Agent{
		Name:     name,
		Position: Point{X: float64(order) * 20, Y: 10},
		Velocity: ConstVel2D{X: 2, Y: 1},
		SafetyX:  10,
		Order:    order,
	}
}

func TestNewCommitLog_SeedsSyntheticIdle(t *testing.T) {
	log, err := NewCommitLog([]Agent{agentFixture("a1", 0), agentFixture("a2", 1)})
	require.NoError(t, err)

	paths, ok := log.Paths("a1")
	require.True(t, ok)
	require.Len(t, paths, 1)
	require.Equal(t, Idle, paths[0].Action.Kind)
	require.Equal(t, 0.0, paths[0].TStart)
	require.Equal(t, 0.0, paths[0].TEnd)
}

func TestNewCommitLog_RejectsDuplicateNames(t *testing.T) {
	_, err := NewCommitLog([]Agent{agentFixture("dup", 0), agentFixture("dup", 1)})
	require.ErrorIs(t, err, ErrDuplicateAgentName)
}

func TestNewCommitLog_RejectsZeroVelocity(t *testing.T) {
	bad := agentFixture("bad", 0)
	bad.Velocity.X = 0
	_, err := NewCommitLog([]Agent{bad})
	require.ErrorIs(t, err, ErrZeroVelocity)
}

func TestCommitLog_AppendAndOthers(t *testing.T) {
	log, err := NewCommitLog([]Agent{agentFixture("a1", 0), agentFixture("a2", 1)})
	require.NoError(t, err)

	ok := log.Append("a1", Path{Action: Action{Target: Point{X: 99, Y: 10}}, TStart: 0, TEnd: 5})
	require.True(t, ok)

	last, ok := log.Last("a1")
	require.True(t, ok)
	require.Equal(t, 5.0, last.TEnd)

	others := log.Others("a1")
	require.Len(t, others, 1)
	require.Equal(t, "a2", others[0].Agent.Name)
}
