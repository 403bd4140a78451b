package regex

import (
	stderrors "errors"

	"github.com/goliatone/go-errors"
)

const ErrCodeSyntax = "REGEX_SYNTAX"

var ErrSyntax = errors.New("invalid regular expression", errors.CategoryValidation).
	WithTextCode(ErrCodeSyntax)

// IsSyntaxError reports whether err came from Parse rejecting its input.
func IsSyntaxError(err error) bool {
	var ge *errors.Error
	return stderrors.As(err, &ge) && ge.TextCode == ErrCodeSyntax
}
