package dfa

import (
	stderrors "errors"

	"github.com/goliatone/go-errors"
)

const ErrCodeNoStart = "AUTOMATON_NO_START"

var ErrNotApplicable = errors.New("automaton has no start state", errors.CategoryBadInput).
	WithTextCode(ErrCodeNoStart)

// IsNotApplicable reports whether err means the pipeline could not run
// because the input automaton has no start state.
func IsNotApplicable(err error) bool {
	var ge *errors.Error
	return stderrors.As(err, &ge) && ge.TextCode == ErrCodeNoStart
}
