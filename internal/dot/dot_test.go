package dot

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fap/internal/automaton"
)

func TestWrite(t *testing.T) {
	b := automaton.NewBuilder()
	b.AddState("a", automaton.StartFinal).AddState("b", automaton.Normal)
	b.AddTransition("a", "b", "0", "1")
	b.AddTransition("b", "a", automaton.Epsilon)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, b.Build(), "ε"))
	assert.Equal(t, `digraph G {
    rankdir=LR;
    "a" [shape=doublecircle];
    "b" [shape=circle];
    "a" -> "b" [label="0,1"];
    "b" -> "a" [label="ε"];
    _start [shape=point]; _start -> "a";
}
`, buf.String())
}

func TestWriteSeveralStarts(t *testing.T) {
	b := automaton.NewBuilder()
	b.AddState("p", automaton.Start).AddState(`q"1`, automaton.Start)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, b.Build(), "ε"))
	assert.Contains(t, buf.String(), `_start -> "p";`)
	assert.Contains(t, buf.String(), `_start1 -> "q\"1";`)
}

func TestWriteStartPointAvoidsStateNames(t *testing.T) {
	b := automaton.NewBuilder()
	b.AddState("_start", automaton.Start).AddState("__start", automaton.Final)
	b.AddTransition("_start", "__start", "a")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, b.Build(), "ε"))
	out := buf.String()
	assert.Contains(t, out, `"_start" [shape=circle];`)
	assert.Contains(t, out, `___start [shape=point]; ___start -> "_start";`)
	assert.NotContains(t, out, "_start [shape=point]; _start ->")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReportsIOError(t *testing.T) {
	b := automaton.NewBuilder()
	b.AddState("a", automaton.Start)
	assert.Error(t, Write(failingWriter{}, b.Build(), "ε"))
}
