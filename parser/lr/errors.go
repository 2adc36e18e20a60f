package lr

import (
	"fmt"
	"strings"

	"github.com/pattyshack/gt/parseutil"
)

const maxListedExpectations = 5

// SyntaxError is reported (through the emitter) when the automaton has no
// action for the lookahead.  Parsing continues in panic mode afterward.
type SyntaxError struct {
	parseutil.StartEndPos

	Message  string
	Expected []string
	Found    string
}

func newSyntaxError(
	pos parseutil.StartEndPos,
	expected []string,
	found string,
) *SyntaxError {
	msg := "syntax error, unexpected " + found
	if len(expected) > 0 && len(expected) <= maxListedExpectations {
		msg += ", expecting " + strings.Join(expected, " or ")
	}

	return &SyntaxError{
		StartEndPos: pos,
		Message:     msg,
		Expected:    expected,
		Found:       found,
	}
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", err.Loc(), err.Message)
}

// IrrecoverableSyntaxError aborts the parse.  It is returned when panic mode
// cannot resynchronize (no stack frame accepts the error token) or when the
// input ends while discarding tokens.
type IrrecoverableSyntaxError struct {
	SyntaxError

	// The reported error which started panic mode, if any.
	Cause *SyntaxError
}

func (err *IrrecoverableSyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", err.Loc(), err.Message)
}

func (err *IrrecoverableSyntaxError) Unwrap() error {
	if err.Cause == nil {
		return nil
	}
	return err.Cause
}
