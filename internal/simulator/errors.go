package simulator

import (
	stderrors "errors"

	"github.com/goliatone/go-errors"
)

const (
	ErrCodeNotStarted  = "SIM_NOT_STARTED"
	ErrCodeFinished    = "SIM_FINISHED"
	ErrCodeAtBeginning = "SIM_AT_BEGINNING"
)

var (
	ErrNotStarted = errors.New("simulation not started", errors.CategoryConflict).
			WithTextCode(ErrCodeNotStarted)
	ErrFinished = errors.New("word already consumed", errors.CategoryConflict).
			WithTextCode(ErrCodeFinished)
	ErrAtBeginning = errors.New("already at the first symbol", errors.CategoryConflict).
			WithTextCode(ErrCodeAtBeginning)
)

// HasCode reports whether err is a simulator error with the given text code.
func HasCode(err error, code string) bool {
	var ge *errors.Error
	return stderrors.As(err, &ge) && ge.TextCode == code
}
