package scope

import (
	"fmt"

	"github.com/pattyshack/gt/parseutil"
)

// SemanticError reports a syntactically valid construct which is forbidden
// at its position.  Semantic errors abort the parse.
type SemanticError struct {
	parseutil.StartEndPos

	Message string
}

func NewSemanticError(
	pos parseutil.StartEndPos,
	format string,
	args ...interface{},
) *SemanticError {
	return &SemanticError{
		StartEndPos: pos,
		Message:     fmt.Sprintf(format, args...),
	}
}

func (err *SemanticError) Error() string {
	return fmt.Sprintf("%s: %s", err.Loc(), err.Message)
}
