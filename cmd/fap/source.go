package main

import (
	"os"

	"github.com/goliatone/go-errors"

	"fap/internal/automaton"
	"fap/internal/fafile"
	"fap/internal/graph"
	"fap/internal/regex"
)

// Source selects where a command reads its automaton from. Exactly one field
// must be set.
type Source struct {
	File  string `short:"f" type:"existingfile" help:"Automaton file (.fa, JSON or YAML)." xor:"source"`
	Graph string `short:"g" type:"existingfile" help:"Graph drawing with nodes and edges (JSON or YAML)." xor:"source"`
	Regex string `short:"r" help:"Regular expression; its Thompson automaton is used." xor:"source"`
}

func (s Source) load(rt *runtime) (*automaton.Automaton, error) {
	switch {
	case s.File != "":
		f, err := fafile.Read(s.File)
		if err != nil {
			return nil, err
		}
		rt.log.Debug("read %s automaton from %s", f.Type, s.File)
		return fafile.ToAutomaton(f, fafile.WithEpsilonGlyph(rt.cfg.Glyphs.Epsilon))
	case s.Graph != "":
		fh, err := os.Open(s.Graph)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryExternal, "cannot open graph").
				WithMetadata(map[string]any{"path": s.Graph})
		}
		defer fh.Close()
		g, err := graph.Decode(fh)
		if err != nil {
			return nil, err
		}
		rt.log.Debug("read graph with %d nodes and %d edges", len(g.Nodes), len(g.Edges))
		return graph.Import(g,
			graph.WithEpsilonGlyph(rt.cfg.Glyphs.Epsilon),
			graph.WithDefaultAlphabet(rt.cfg.DefaultAlphabet...),
		), nil
	case s.Regex != "":
		t, err := regex.Parse(s.Regex, regex.WithGlyphs(rt.cfg.RegexGlyphs()))
		if err != nil {
			return nil, err
		}
		return regex.ToAutomaton(t), nil
	}
	return nil, errors.New("one of --file, --graph or --regex is required", errors.CategoryBadInput).
		WithTextCode("CLI_NO_SOURCE")
}
