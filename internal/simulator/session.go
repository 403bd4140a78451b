// Package simulator steps a word through an automaton one symbol at a time,
// tracking the epsilon-closed set of active states.
package simulator

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"fap/internal/automaton"
	"fap/internal/logging"
)

type Phase int

const (
	NotStarted Phase = iota
	Stepping
	Finished
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not started"
	case Stepping:
		return "stepping"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Snapshot is a copy of the session state after an operation.
type Snapshot struct {
	Phase    Phase
	Position int
	Word     []string
	// Symbol is the symbol consumed by the last forward step, or "" after
	// Start and StepBackward.
	Symbol   string
	Active   []string
	Accepted bool
}

// Stuck reports whether no state is active.
func (s Snapshot) Stuck() bool { return len(s.Active) == 0 }

// Remaining is the unread part of the word.
func (s Snapshot) Remaining() []string {
	if s.Position >= len(s.Word) {
		return nil
	}
	return s.Word[s.Position:]
}

// String renders the status line shown while stepping.
func (s Snapshot) String() string {
	if s.Phase == NotStarted {
		return "not started"
	}
	active := "∅ (stuck)"
	if !s.Stuck() {
		active = "{" + strings.Join(s.Active, ", ") + "}"
	}
	line := fmt.Sprintf("step %d/%d", s.Position, len(s.Word))
	if s.Symbol != "" {
		line += fmt.Sprintf(", read '%s'", s.Symbol)
	}
	line += ", active " + active
	if s.Phase == Finished {
		if s.Accepted {
			line += " -> accepted"
		} else {
			line += " -> rejected"
		}
	}
	return line
}

// Session is a single-owner simulation over one automaton. It is not safe for
// concurrent use.
type Session struct {
	a      *automaton.Automaton
	word   []string
	pos    int
	last   string
	active automaton.StateSet
	phase  Phase
	logger logging.Logger
}

type Option func(*Session)

// WithLogger traces every transition of the session at debug level.
func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = logging.Normalize(l) }
}

func New(a *automaton.Automaton, opts ...Option) *Session {
	s := &Session{a: a, logger: logging.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Reset swaps the automaton and drops any run in progress.
func (s *Session) Reset(a *automaton.Automaton) {
	s.a = a
	s.word, s.pos, s.last, s.active = nil, 0, "", nil
	s.phase = NotStarted
}

// Start begins a run over word, one symbol per rune. The active set is the
// epsilon-closure of the start states. An empty word finishes at once.
func (s *Session) Start(word string) Snapshot {
	s.word = s.word[:0]
	for _, r := range word {
		s.word = append(s.word, string(r))
	}
	s.rewind()
	s.log().Debug("simulation started for %q", word)
	return s.Snapshot()
}

func (s *Session) rewind() {
	s.pos, s.last = 0, ""
	s.active = s.a.Initial()
	s.phase = Stepping
	s.settle()
}

func (s *Session) settle() {
	if s.pos == len(s.word) {
		s.phase = Finished
	}
}

// StepForward consumes the next symbol. A move with no destination leaves the
// session stuck with no active state; it keeps consuming.
func (s *Session) StepForward() (Snapshot, error) {
	switch s.phase {
	case NotStarted:
		return s.Snapshot(), ErrNotStarted.Clone()
	case Finished:
		return s.Snapshot(), ErrFinished.Clone().
			WithMetadata(map[string]any{"position": s.pos})
	}
	s.advance()
	s.log().Debug("read %q", s.last)
	return s.Snapshot(), nil
}

func (s *Session) advance() {
	s.last = s.word[s.pos]
	s.active = s.a.Step(s.active, s.last)
	s.pos++
	s.settle()
}

// StepBackward moves one symbol back by replaying the word from the start.
func (s *Session) StepBackward() (Snapshot, error) {
	if s.phase == NotStarted {
		return s.Snapshot(), ErrNotStarted.Clone()
	}
	if s.pos == 0 {
		return s.Snapshot(), ErrAtBeginning.Clone()
	}
	target := s.pos - 1
	s.rewind()
	for s.pos < target {
		s.advance()
	}
	s.phase = Stepping
	s.last = ""
	s.log().Debug("stepped back")
	return s.Snapshot(), nil
}

// Continue steps forward until the word is consumed, yielding a snapshot
// after each step. Breaking out of the loop or cancelling ctx stops between
// steps and leaves the session at the position reached. It yields nothing
// unless the session is stepping.
func (s *Session) Continue(ctx context.Context) iter.Seq[Snapshot] {
	return func(yield func(Snapshot) bool) {
		for s.phase == Stepping {
			if err := ctx.Err(); err != nil {
				s.log().Debug("auto-play stopped: %v", err)
				return
			}
			snap, err := s.StepForward()
			if err != nil || !yield(snap) {
				return
			}
		}
	}
}

func (s *Session) log() logging.Logger {
	return logging.WithFields(s.logger, map[string]any{
		"position": s.pos,
		"active":   s.active.Key(),
	})
}

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) Position() int { return s.pos }

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:    s.phase,
		Position: s.pos,
		Word:     append([]string(nil), s.word...),
		Symbol:   s.last,
		Active:   s.active.Sorted(),
	}
	if s.phase == Finished {
		snap.Accepted = s.a.AnyFinal(s.active)
	}
	return snap
}
