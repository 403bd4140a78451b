// Package fafile reads and writes the .fa automaton format: a JSON object
// with the automaton type, its states, input symbols, transition map,
// initial and final states and the last regex shown for it.
package fafile

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"slices"

	"github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"fap/internal/automaton"
)

type Kind string

const (
	DFA Kind = "DFA"
	NFA Kind = "NFA"
)

// Destinations holds the targets of one transition entry. In files it is a
// single string for DFA records and a list for NFA records.
type Destinations []string

func (d *Destinations) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*d = Destinations{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*d = list
		return nil
	}
	return &yaml.TypeError{Errors: []string{"transition target must be a state name or a list of state names"}}
}

type File struct {
	Type         Kind                               `yaml:"type"`
	States       []string                           `yaml:"states"`
	InputSymbols []string                           `yaml:"input_symbols"`
	Transitions  map[string]map[string]Destinations `yaml:"transitions"`
	InitialState string                             `yaml:"initial_state"`
	FinalStates  []string                           `yaml:"final_states"`
	Regex        string                             `yaml:"regex"`
}

type options struct {
	epsilonGlyph string
}

type Option func(*options)

// WithEpsilonGlyph sets a symbol read as epsilon besides "".
func WithEpsilonGlyph(glyph string) Option {
	return func(o *options) { o.epsilonGlyph = glyph }
}

func newOptions(opts []Option) options {
	o := options{epsilonGlyph: "ε"}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Decode parses a JSON or YAML document.
func Decode(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "cannot decode automaton file").
			WithTextCode(ErrCodeDecode)
	}
	return &f, nil
}

type record struct {
	Type         Kind     `json:"type"`
	States       []string `json:"states"`
	InputSymbols []string `json:"input_symbols"`
	Transitions  any      `json:"transitions"`
	InitialState string   `json:"initial_state"`
	FinalStates  []string `json:"final_states"`
	Regex        string   `json:"regex"`
}

// Encode writes f as JSON indented by four spaces.
func Encode(w io.Writer, f *File) error {
	rec := record{
		Type:         f.Type,
		States:       nonNil(f.States),
		InputSymbols: nonNil(f.InputSymbols),
		InitialState: f.InitialState,
		FinalStates:  nonNil(f.FinalStates),
		Regex:        f.Regex,
	}
	if f.Type == DFA {
		flat := make(map[string]map[string]string, len(f.Transitions))
		for from, moves := range f.Transitions {
			flat[from] = make(map[string]string, len(moves))
			for sym, dests := range moves {
				if len(dests) > 0 {
					flat[from][sym] = dests[0]
				}
			}
		}
		rec.Transitions = flat
	} else {
		rec.Transitions = f.Transitions
		if f.Transitions == nil {
			rec.Transitions = map[string]any{}
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(rec); err != nil {
		return errors.Wrap(err, errors.CategoryExternal, "cannot encode automaton file")
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, errors.CategoryExternal, "cannot write automaton file")
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Read decodes the file at path.
func Read(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryExternal, "cannot open automaton file").
			WithMetadata(map[string]any{"path": path})
	}
	defer fh.Close()
	return Decode(fh)
}

// Write encodes f to path, replacing any existing file.
func Write(path string, f *File) error {
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryExternal, "cannot write automaton file").
			WithMetadata(map[string]any{"path": path})
	}
	return nil
}

// FromAutomaton describes a. Several start states are joined under a fresh
// start state with epsilon moves; the record is then an NFA.
func FromAutomaton(a *automaton.Automaton, regex string) (*File, error) {
	starts := a.StartStates()
	if len(starts) == 0 {
		return nil, invalid("automaton has no start state", nil)
	}

	f := &File{
		Type:         NFA,
		States:       a.States(),
		InputSymbols: a.Alphabet(),
		Transitions:  map[string]map[string]Destinations{},
		FinalStates:  a.FinalStates(),
		Regex:        regex,
	}
	if a.IsDeterministic() {
		f.Type = DFA
	}
	for _, from := range a.States() {
		for _, sym := range a.Symbols(from) {
			if f.Transitions[from] == nil {
				f.Transitions[from] = map[string]Destinations{}
			}
			f.Transitions[from][sym] = a.Next(from, sym)
		}
	}

	f.InitialState = starts[0]
	if len(starts) > 1 {
		start := a.FreshName("start")
		f.InitialState = start
		f.States = append(f.States, start)
		slices.Sort(f.States)
		f.Transitions[start] = map[string]Destinations{automaton.Epsilon: starts}
	}
	return f, nil
}

// ToAutomaton builds the automaton f describes. Transitions and final states
// naming unknown states are dropped; an unknown initial state or a DFA entry
// with several targets is an error.
func ToAutomaton(f *File, opts ...Option) (*automaton.Automaton, error) {
	o := newOptions(opts)
	if f.Type != DFA && f.Type != NFA {
		return nil, invalid("unknown automaton type", map[string]any{"type": string(f.Type)})
	}
	if !slices.Contains(f.States, f.InitialState) {
		return nil, invalid("initial state is not a state", map[string]any{"initial_state": f.InitialState})
	}

	b := automaton.NewBuilder()
	for _, s := range f.States {
		b.AddState(s, automaton.Normal)
	}
	for _, s := range f.FinalStates {
		if b.HasState(s) {
			b.AddState(s, automaton.Final)
		}
	}
	b.AddState(f.InitialState, automaton.RoleOf(true, slices.Contains(f.FinalStates, f.InitialState)))

	for _, from := range sortedKeys(f.Transitions) {
		moves := f.Transitions[from]
		for _, sym := range sortedKeys(moves) {
			dests := moves[sym]
			if f.Type == DFA && len(dests) > 1 {
				return nil, invalid("DFA transition has several targets", map[string]any{
					"state":  from,
					"symbol": sym,
				})
			}
			if sym == o.epsilonGlyph {
				sym = automaton.Epsilon
			}
			for _, to := range dests {
				b.AddTransition(from, to, sym)
			}
		}
	}
	for _, sym := range f.InputSymbols {
		if sym != o.epsilonGlyph {
			b.AddAlphabet(sym)
		}
	}
	return b.Build(), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
