package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/manifoldco/promptui"

	"fap/internal/automaton"
	"fap/internal/dfa"
	"fap/internal/dot"
	"fap/internal/fafile"
	"fap/internal/graph"
	"fap/internal/regex"
	"fap/internal/simulator"
)

type RegexCmd struct {
	Source
	Save bool `help:"Store the expression in the regex field of the --file input."`
}

func (c *RegexCmd) Run(rt *runtime) error {
	a, err := c.load(rt)
	if err != nil {
		return err
	}
	t := regex.Synthesize(a, regex.WithMaxPasses(rt.cfg.Simplifier.MaxPasses))
	text := t.Format(rt.cfg.RegexGlyphs())
	rt.log.Debug("synthesized an expression of size %d from %d states", t.Size(), a.Len())
	fmt.Fprintln(rt.out, text)

	if !c.Save {
		return nil
	}
	if c.File == "" {
		return errors.New("--save needs --file", errors.CategoryBadInput).WithTextCode("CLI_SAVE_WITHOUT_FILE")
	}
	f, err := fafile.Read(c.File)
	if err != nil {
		return err
	}
	f.Regex = text
	return fafile.Write(c.File, f)
}

type OptimizeCmd struct {
	Source
	Partial bool   `help:"Drop the trap state and every state that cannot reach a final state."`
	Output  string `short:"o" type:"path" help:"Write to this file instead of stdout. A .yaml or .yml name gets a graph drawing, anything else a .fa file."`
}

func (c *OptimizeCmd) Run(rt *runtime) error {
	a, err := c.load(rt)
	if err != nil {
		return err
	}
	minimize := dfa.Minimize
	if c.Partial {
		minimize = dfa.MinimizeNFA
	}
	m, err := minimize(a)
	if err != nil {
		return err
	}
	rt.log.Info("minimized %d states to %d", a.Len(), m.Len())

	var buf bytes.Buffer
	switch ext := strings.ToLower(filepath.Ext(c.Output)); ext {
	case ".yaml", ".yml":
		err = graph.Encode(&buf, graph.Export(m, graph.WithEpsilonGlyph(rt.cfg.Glyphs.Epsilon)))
	default:
		var f *fafile.File
		if f, err = fafile.FromAutomaton(m, ""); err == nil {
			err = fafile.Encode(&buf, f)
		}
	}
	if err != nil {
		return err
	}
	if c.Output == "" {
		_, err = rt.out.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(c.Output, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryExternal, "cannot write output").
			WithMetadata(map[string]any{"path": c.Output})
	}
	fmt.Fprintf(rt.out, "written to %s\n", c.Output)
	return nil
}

type SimulateCmd struct {
	Source
	Word  string         `arg:"" optional:"" help:"Word to consume, one symbol per character."`
	Auto  bool           `help:"Play the whole word without prompting; Ctrl-C pauses."`
	Delay *time.Duration `help:"Pause between automatic steps (default from configuration)."`
}

func (c *SimulateCmd) Run(rt *runtime) error {
	a, err := c.load(rt)
	if err != nil {
		return err
	}
	sess := simulator.New(a, simulator.WithLogger(rt.log))
	first := sess.Start(c.Word)
	trace := []simulator.Snapshot{first}
	fmt.Fprintln(rt.out, status(rt, first))

	if c.Auto {
		delay := rt.cfg.Simulator.Delay
		if c.Delay != nil {
			delay = *c.Delay
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		trace = append(trace, autoPlay(ctx, rt, sess, delay)...)
	} else {
		trace, err = interactive(rt, sess, trace)
		if err != nil {
			return err
		}
	}
	return renderTrace(rt.out, trace)
}

func autoPlay(ctx context.Context, rt *runtime, sess *simulator.Session, delay time.Duration) []simulator.Snapshot {
	var trace []simulator.Snapshot
	for snap := range sess.Continue(ctx) {
		trace = append(trace, snap)
		fmt.Fprintln(rt.out, status(rt, snap))
		if snap.Phase == simulator.Finished || delay <= 0 {
			continue
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}
	if sess.Phase() == simulator.Stepping {
		fmt.Fprintf(rt.out, "paused at %d/%d\n", sess.Position(), len(sess.Snapshot().Word))
	}
	return trace
}

const (
	actionForward  = "forward"
	actionBack     = "back"
	actionContinue = "continue"
	actionQuit     = "quit"
)

func interactive(rt *runtime, sess *simulator.Session, trace []simulator.Snapshot) ([]simulator.Snapshot, error) {
	for {
		prompt := promptui.Select{
			Label: sess.Snapshot().String(),
			Items: []string{actionForward, actionBack, actionContinue, actionQuit},
		}
		_, choice, err := prompt.Run()
		if err != nil {
			if err == promptui.ErrInterrupt || err == promptui.ErrEOF {
				return trace, nil
			}
			return trace, errors.Wrap(err, errors.CategoryExternal, "prompt failed")
		}

		var snap simulator.Snapshot
		switch choice {
		case actionForward:
			snap, err = sess.StepForward()
		case actionBack:
			snap, err = sess.StepBackward()
		case actionContinue:
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			trace = append(trace, autoPlay(ctx, rt, sess, rt.cfg.Simulator.Delay)...)
			stop()
			continue
		default:
			return trace, nil
		}
		if err != nil {
			fmt.Fprintln(rt.out, paint(rt, promptui.Styler(promptui.FGYellow), err.Error()))
			continue
		}
		trace = append(trace, snap)
		fmt.Fprintln(rt.out, status(rt, snap))
	}
}

func status(rt *runtime, snap simulator.Snapshot) string {
	line := snap.String()
	if snap.Phase != simulator.Finished {
		return line
	}
	if snap.Accepted {
		return paint(rt, promptui.Styler(promptui.FGGreen), line)
	}
	return paint(rt, promptui.Styler(promptui.FGRed), line)
}

// paint colors text only when stdout is a terminal.
func paint(rt *runtime, style func(interface{}) string, text string) string {
	if !rt.color {
		return text
	}
	return style(text)
}

type MatchCmd struct {
	Source
	Words []string `arg:"" optional:"" help:"Words to test; none tests the empty word."`
}

func (c *MatchCmd) Run(rt *runtime) error {
	a, err := c.load(rt)
	if err != nil {
		return err
	}
	words := c.Words
	if len(words) == 0 {
		words = []string{""}
	}
	rows := make([][]string, 0, len(words))
	for _, w := range words {
		verdict := "rejected"
		if a.Accepts(w) {
			verdict = "accepted"
		}
		shown := w
		if shown == "" {
			shown = rt.cfg.Glyphs.Epsilon
		}
		rows = append(rows, []string{shown, verdict})
	}
	return renderRows(rt.out, []string{"Word", "Verdict"}, rows)
}

type TableCmd struct {
	Source
	Minimize bool `short:"m" help:"Show the minimal DFA instead."`
}

func (c *TableCmd) Run(rt *runtime) error {
	a, err := c.load(rt)
	if err != nil {
		return err
	}
	if c.Minimize {
		if a, err = dfa.Minimize(a); err != nil {
			return err
		}
	}
	return renderTransitions(rt.out, a, rt.cfg.Glyphs.Epsilon)
}

type DotCmd struct {
	Source
	Minimize bool   `short:"m" help:"Render the minimal DFA instead."`
	PNG      string `name:"png" type:"path" help:"Render to this PNG file with Graphviz dot instead of printing."`
}

func (c *DotCmd) Run(rt *runtime) error {
	a, err := c.load(rt)
	if err != nil {
		return err
	}
	if c.Minimize {
		if a, err = dfa.Minimize(a); err != nil {
			return err
		}
	}
	if c.PNG == "" {
		return dot.Write(rt.out, a, rt.cfg.Glyphs.Epsilon)
	}

	var buf bytes.Buffer
	if err := dot.Write(&buf, a, rt.cfg.Glyphs.Epsilon); err != nil {
		return err
	}
	cmd := exec.Command("dot", "-Tpng", "-o", c.PNG)
	cmd.Stdin = &buf
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, errors.CategoryExternal, "dot failed").
			WithMetadata(map[string]any{"stderr": strings.TrimSpace(stderr.String())})
	}
	fmt.Fprintf(rt.out, "PNG written to %s\n", c.PNG)
	return nil
}

type EquivCmd struct {
	Source
	Against string `arg:"" help:"Regular expression to compare the automaton with."`
}

func (c *EquivCmd) Run(rt *runtime) error {
	a, err := c.load(rt)
	if err != nil {
		return err
	}
	t, err := regex.Parse(c.Against, regex.WithGlyphs(rt.cfg.RegexGlyphs()))
	if err != nil {
		return err
	}
	same, word, err := dfa.Equivalent(a, regex.ToAutomaton(t))
	if err != nil {
		return err
	}
	if same {
		fmt.Fprintln(rt.out, "equivalent")
		return nil
	}
	if word == "" {
		word = rt.cfg.Glyphs.Epsilon
	}
	fmt.Fprintf(rt.out, "differ on %s\n", word)
	return nil
}

func stateLabel(a *automaton.Automaton, s string) string {
	role := a.Role(s)
	prefix := ""
	if role.IsStart() {
		prefix += "->"
	}
	if role.IsFinal() {
		prefix += "*"
	}
	return prefix + s
}
