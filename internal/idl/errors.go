package idl

import (
	"fmt"

	"github.com/gravitational/trace"
)

// SyntaxError reports a parse failure at a specific offset (a rune index
// into the comment-stripped source that Preprocess returns), naming what
// the parser expected to find there.
type SyntaxError struct {
	Offset   int
	Line     int
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("idl: syntax error at line %d (offset %d): expected %s, found %q",
		e.Line, e.Offset, e.Expected, e.Found)
}

func newSyntaxError(offset, line int, expected, found string) error {
	return trace.Wrap(&SyntaxError{Offset: offset, Line: line, Expected: expected, Found: found})
}
