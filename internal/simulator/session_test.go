package simulator

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fap/internal/automaton"
	"fap/internal/logging"
)

// twoCycle is a --0,1--> b, b --1--> a, start and final a.
func twoCycle() *automaton.Automaton {
	b := automaton.NewBuilder()
	b.AddState("a", automaton.StartFinal).AddState("b", automaton.Normal)
	b.AddTransition("a", "b", "0", "1")
	b.AddTransition("b", "a", "1")
	return b.Build()
}

// epsilonChain is s -ε-> m -x-> f -ε-> g, start s, final g.
func epsilonChain() *automaton.Automaton {
	b := automaton.NewBuilder()
	b.AddState("s", automaton.Start).AddState("m", automaton.Normal)
	b.AddState("f", automaton.Normal).AddState("g", automaton.Final)
	b.AddTransition("s", "m", automaton.Epsilon)
	b.AddTransition("m", "f", "x")
	b.AddTransition("f", "g", automaton.Epsilon)
	return b.Build()
}

func TestStepThroughTwoCycle(t *testing.T) {
	s := New(twoCycle())
	snap := s.Start("01")
	assert.Equal(t, Stepping, snap.Phase)
	assert.Equal(t, []string{"a"}, snap.Active)

	snap, err := s.StepForward()
	require.NoError(t, err)
	assert.Equal(t, "0", snap.Symbol)
	assert.Equal(t, []string{"b"}, snap.Active)
	assert.Equal(t, Stepping, snap.Phase)

	snap, err = s.StepForward()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, snap.Active)
	assert.Equal(t, Finished, snap.Phase)
	assert.True(t, snap.Accepted)
	assert.Equal(t, "step 2/2, read '1', active {a} -> accepted", snap.String())
}

func TestStartTakesEpsilonClosure(t *testing.T) {
	s := New(epsilonChain())
	snap := s.Start("x")
	assert.Equal(t, []string{"m", "s"}, snap.Active)

	snap, err := s.StepForward()
	require.NoError(t, err)
	assert.Equal(t, []string{"f", "g"}, snap.Active)
	assert.True(t, snap.Accepted)
}

func TestStuckKeepsConsuming(t *testing.T) {
	s := New(twoCycle())
	s.Start("000")
	_, err := s.StepForward()
	require.NoError(t, err)

	snap, err := s.StepForward()
	require.NoError(t, err)
	assert.True(t, snap.Stuck())
	assert.Equal(t, Stepping, snap.Phase)
	assert.Equal(t, "step 2/3, read '0', active ∅ (stuck)", snap.String())

	snap, err = s.StepForward()
	require.NoError(t, err)
	assert.Equal(t, Finished, snap.Phase)
	assert.False(t, snap.Accepted)
	assert.Contains(t, snap.String(), "rejected")
}

func TestEmptyWordFinishesAtOnce(t *testing.T) {
	s := New(twoCycle())
	snap := s.Start("")
	assert.Equal(t, Finished, snap.Phase)
	assert.True(t, snap.Accepted)
}

func TestStepBackwardReplays(t *testing.T) {
	s := New(twoCycle())
	s.Start("011")
	for i := 0; i < 3; i++ {
		_, err := s.StepForward()
		require.NoError(t, err)
	}
	require.Equal(t, Finished, s.Phase())

	snap, err := s.StepBackward()
	require.NoError(t, err)
	assert.Equal(t, Stepping, snap.Phase)
	assert.Equal(t, 2, snap.Position)
	assert.Equal(t, []string{"a"}, snap.Active)
	assert.Equal(t, []string{"1"}, snap.Remaining())
	assert.Empty(t, snap.Symbol)

	snap, err = s.StepBackward()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Position)
	assert.Equal(t, []string{"b"}, snap.Active)

	snap, err = s.StepBackward()
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Position)
	assert.Equal(t, []string{"a"}, snap.Active)

	_, err = s.StepBackward()
	assert.True(t, HasCode(err, ErrCodeAtBeginning))
}

func TestIllegalCalls(t *testing.T) {
	s := New(twoCycle())
	_, err := s.StepForward()
	assert.True(t, HasCode(err, ErrCodeNotStarted))
	_, err = s.StepBackward()
	assert.True(t, HasCode(err, ErrCodeNotStarted))
	assert.Equal(t, "not started", s.Snapshot().String())

	s.Start("1")
	_, err = s.StepForward()
	require.NoError(t, err)
	_, err = s.StepForward()
	assert.True(t, HasCode(err, ErrCodeFinished))
	assert.False(t, HasCode(err, ErrCodeNotStarted))
}

func TestResetDropsRun(t *testing.T) {
	s := New(twoCycle())
	s.Start("01")
	s.Reset(epsilonChain())
	assert.Equal(t, NotStarted, s.Phase())
	assert.Equal(t, 0, s.Position())

	snap := s.Start("x")
	assert.Equal(t, []string{"m", "s"}, snap.Active)
}

func TestNoStartIsStuckFromTheBeginning(t *testing.T) {
	b := automaton.NewBuilder()
	b.AddState("f", automaton.Final)
	s := New(b.Build())
	snap := s.Start("")
	assert.True(t, snap.Stuck())
	assert.False(t, snap.Accepted)
}

func TestContinueRunsToTheEnd(t *testing.T) {
	s := New(twoCycle())
	s.Start("0101")
	var positions []int
	for snap := range s.Continue(context.Background()) {
		positions = append(positions, snap.Position)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, positions)
	assert.Equal(t, Finished, s.Phase())
	assert.True(t, s.Snapshot().Accepted)
}

func TestContinueBreakLeavesStepping(t *testing.T) {
	s := New(twoCycle())
	s.Start("0101")
	for snap := range s.Continue(context.Background()) {
		if snap.Position == 2 {
			break
		}
	}
	assert.Equal(t, Stepping, s.Phase())
	assert.Equal(t, 2, s.Position())
}

func TestContinueHonorsCancellation(t *testing.T) {
	s := New(twoCycle())
	s.Start("0101")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	n := 0
	for range s.Continue(ctx) {
		n++
		if n == 1 {
			cancel()
		}
	}
	assert.Equal(t, 1, n)
	assert.Equal(t, Stepping, s.Phase())
	assert.Equal(t, 1, s.Position())
}

func TestContinueBeforeStartYieldsNothing(t *testing.T) {
	s := New(twoCycle())
	for range s.Continue(context.Background()) {
		t.Fatal("unexpected snapshot")
	}
	assert.Equal(t, NotStarted, s.Phase())
}

func TestSessionLogs(t *testing.T) {
	buf := &bytes.Buffer{}
	s := New(twoCycle(), WithLogger(logging.NewFmtLogger(buf, logging.LevelDebug)))
	s.Start("0")
	_, err := s.StepForward()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `simulation started for "0"`)
	assert.Contains(t, buf.String(), "active={b}")
}
