// Package dfa turns any automaton into its canonical minimal complete DFA.
//
// The pipeline runs in fixed order: determinize (subset construction, or a
// straight copy when the input is already deterministic), complete with a
// trap state, drop unreachable states, merge equivalent states, and rename
// to q0..qn with the start state first.
package dfa

import (
	"fap/internal/automaton"
)

// Determinize returns a deterministic automaton accepting the same language
// as a. Subset states are named after their members. Missing moves stay
// missing.
func Determinize(a *automaton.Automaton) (*automaton.Automaton, error) {
	t, err := determinize(a)
	if err != nil {
		return nil, err
	}
	return t.automaton(), nil
}

// Complete is Determinize followed by routing every missing move to a trap
// state.
func Complete(a *automaton.Automaton) (*automaton.Automaton, error) {
	t, err := determinize(a)
	if err != nil {
		return nil, err
	}
	t.complete()
	return t.automaton(), nil
}

// Minimize returns the minimal complete DFA for the language of a with
// states named q0, q1, ... and q0 the start. Running it on its own output
// gives the same automaton back.
func Minimize(a *automaton.Automaton) (*automaton.Automaton, error) {
	t, err := minimal(a)
	if err != nil {
		return nil, err
	}
	return t.automaton(), nil
}

// MinimizeNFA is Minimize without the trap: states that cannot reach a final
// state are removed, leaving a partial DFA that may have missing moves.
func MinimizeNFA(a *automaton.Automaton) (*automaton.Automaton, error) {
	t, err := minimal(a)
	if err != nil {
		return nil, err
	}
	t.dropDead()
	t.rename()
	return t.automaton(), nil
}

func minimal(a *automaton.Automaton) (*table, error) {
	t, err := determinize(a)
	if err != nil {
		return nil, err
	}
	t.complete()
	t.prune()
	t.minimize()
	t.rename()
	return t, nil
}
