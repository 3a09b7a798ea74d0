package java

import (
	"errors"
	"fmt"
)

var (
	// ErrClassNotFound is returned by a ClassLoader that has no class of
	// the requested name. The Library treats it as "try the next tier".
	ErrClassNotFound = errors.New("class not found")

	// ErrInvalidState reports a Builder call that violates the shape of
	// the record currently open, such as a superclass on an enum.
	ErrInvalidState = errors.New("invalid builder state")
)

// ParseError describes a malformed compilation unit. It is fatal to
// that unit only.
type ParseError struct {
	Message string
	Line    int
	Column  int
	Source  string
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Message)
}

func invalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}
