package fafile

import (
	stderrors "errors"
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	ErrCodeDecode  = "FAFILE_DECODE"
	ErrCodeInvalid = "FAFILE_INVALID"
)

var (
	ErrDecode = errors.New("cannot decode automaton file", errors.CategoryBadInput).
			WithTextCode(ErrCodeDecode)
	ErrInvalid = errors.New("invalid automaton file", errors.CategoryValidation).
			WithTextCode(ErrCodeInvalid)
)

func invalid(message string, metadata map[string]any) *errors.Error {
	err := ErrInvalid.Clone()
	if text := strings.TrimSpace(message); text != "" {
		err.Message = text
	}
	if len(metadata) > 0 {
		err = err.WithMetadata(metadata)
	}
	return err
}

func errorCode(err error) string {
	var ge *errors.Error
	if stderrors.As(err, &ge) {
		return ge.TextCode
	}
	return ""
}

// IsDecodeError reports whether err came from malformed JSON or YAML.
func IsDecodeError(err error) bool { return errorCode(err) == ErrCodeDecode }

// IsInvalid reports whether err came from a well formed file that does not
// describe a usable automaton.
func IsInvalid(err error) bool { return errorCode(err) == ErrCodeInvalid }
