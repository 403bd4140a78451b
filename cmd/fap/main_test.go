package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fap/internal/fafile"
	"fap/internal/regex"
)

const evenOnes = `{
    "type": "DFA",
    "states": ["a", "b", "c"],
    "input_symbols": ["0", "1"],
    "transitions": {
        "a": {"0": "b", "1": "c"},
        "b": {"0": "b", "1": "b"},
        "c": {"0": "b", "1": "a"}
    },
    "initial_state": "a",
    "final_states": ["a"]
}`

const drawing = `
nodes:
  - {name: s, role: start}
  - {name: t, role: final}
edges:
  - {from: s, to: t, label: "x"}
  - {from: t, to: t, label: "x, y"}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRegexCommand(t *testing.T) {
	path := writeFile(t, "even.fa", evenOnes)
	code, out, _ := runCLI(t, "regex", "-f", path)
	require.Equal(t, 0, code)

	term, err := regex.Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.True(t, regex.Matches(term, ""))
	assert.True(t, regex.Matches(term, "1111"))
	assert.False(t, regex.Matches(term, "1"))
	assert.False(t, regex.Matches(term, "110"))
}

func TestRegexSave(t *testing.T) {
	path := writeFile(t, "even.fa", evenOnes)
	code, out, _ := runCLI(t, "regex", "--save", "-f", path)
	require.Equal(t, 0, code)

	f, err := fafile.Read(path)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(out), f.Regex)

	code, _, stderr := runCLI(t, "regex", "--save", "-r", "ab")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "--save needs --file")
}

func TestOptimizeToStdout(t *testing.T) {
	code, out, stderr := runCLI(t, "optimize", "-r", "(a|b)*abb")
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "minimized")

	f, err := fafile.Decode(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, fafile.DFA, f.Type)
	assert.Equal(t, "q0", f.InitialState)
	assert.Len(t, f.States, 4)
}

func TestOptimizeToGraph(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "min.yaml")
	code, out, _ := runCLI(t, "optimize", "--partial", "-r", "ab", "-o", target)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "written to")

	code, out, _ = runCLI(t, "match", "-g", target, "ab", "a", "abb")
	require.Equal(t, 0, code)
	assert.Equal(t, 1, strings.Count(out, "accepted"))
	assert.Equal(t, 2, strings.Count(out, "rejected"))
}

func TestSimulateAuto(t *testing.T) {
	path := writeFile(t, "even.fa", evenOnes)
	code, out, _ := runCLI(t, "simulate", "-f", path, "--auto", "--delay", "0s", "11")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "step 0/2, active {a}")
	assert.Contains(t, out, "step 1/2, read '1', active {c}")
	assert.Contains(t, out, "-> accepted")
	assert.Contains(t, strings.ToLower(out), "status")
}

func TestSimulateOutputIsPlainWhenPiped(t *testing.T) {
	code, out, _ := runCLI(t, "simulate", "-r", "ab", "--auto", "--delay", "0s", "ab")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "-> accepted")
	assert.NotContains(t, out, "\x1b[")
}

func TestMatchRegex(t *testing.T) {
	code, out, _ := runCLI(t, "match", "-r", "(ab)*", "abab", "aba")
	require.Equal(t, 0, code)
	assert.Equal(t, 1, strings.Count(out, "accepted"))
	assert.Equal(t, 1, strings.Count(out, "rejected"))
}

func TestTableAndDot(t *testing.T) {
	path := writeFile(t, "drawing.yaml", drawing)

	code, out, _ := runCLI(t, "table", "-g", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "->s")
	assert.Contains(t, out, "*t")

	code, out, _ = runCLI(t, "dot", "-g", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"t" -> "t" [label="x,y"];`)
	assert.Contains(t, out, `_start -> "s";`)

	code, out, _ = runCLI(t, "dot", "-m", "-g", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, `_start -> "q0";`)
}

func TestEquiv(t *testing.T) {
	path := writeFile(t, "even.fa", evenOnes)
	code, out, _ := runCLI(t, "equiv", "-f", path, "(0(0|1)*|1(0(0|1)*|1))*")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "differ on 0")

	code, out, _ = runCLI(t, "equiv", "-r", "(a|b)*", "(a*b*)*")
	require.Equal(t, 0, code)
	assert.Equal(t, "equivalent\n", out)

	code, out, _ = runCLI(t, "equiv", "-r", "a*", "aa*")
	require.Equal(t, 0, code)
	assert.Equal(t, "differ on ε\n", out)
}

func TestTableKeepsSymbolCase(t *testing.T) {
	code, out, _ := runCLI(t, "table", "-r", "aA")
	require.Equal(t, 0, code)
	header := strings.SplitN(strings.TrimSpace(out), "\n", 3)[1]
	assert.Contains(t, header, "State")
	assert.Contains(t, header, " a ")
	assert.Contains(t, header, " A ")
	assert.Contains(t, header, " ε ")
	assert.NotContains(t, header, "Ε")
}

func TestFailures(t *testing.T) {
	code, _, stderr := runCLI(t, "table")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "--regex")

	code, _, _ = runCLI(t, "match", "-r", "(a")
	assert.Equal(t, 1, code)

	cfg := writeFile(t, "fap.yaml", "simplifier: {max_passes: -2}\n")
	code, _, stderr = runCLI(t, "-c", cfg, "match", "-r", "a")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid configuration")

	code, _, stderr = runCLI(t, "--log-level", "bogus", "regex", "-r", "a")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid configuration")

	code, _, _ = runCLI(t, "frobnicate")
	assert.Equal(t, 2, code)
}

func TestConfiguredGlyphs(t *testing.T) {
	cfg := writeFile(t, "fap.yaml", "glyphs: {epsilon: e, empty: '0'}\n")
	code, out, _ := runCLI(t, "-c", cfg, "regex", "-r", "a|e")
	require.Equal(t, 0, code)
	term, err := regex.Parse(strings.TrimSpace(out), regex.WithGlyphs(regex.Glyphs{Epsilon: "e", Empty: "0"}))
	require.NoError(t, err)
	assert.True(t, regex.Matches(term, ""))
	assert.True(t, regex.Matches(term, "a"))
}
