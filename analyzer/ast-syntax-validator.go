package analyzer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/garnet/ast"
)

type astSyntaxValidator struct {
	*parseutil.Emitter
}

// ValidateAstSyntax checks node level invariants (e.g., resolved bindings,
// non-empty names) of every node which implements ast.Validator.
func ValidateAstSyntax(emitter *parseutil.Emitter) Pass {
	return astSyntaxValidator{
		Emitter: emitter,
	}
}

func (validator astSyntaxValidator) Process(root *ast.Root) {
	root.Walk(validator)
}

func (validator astSyntaxValidator) Enter(n ast.Node) {
	switch node := n.(type) {
	case ast.Validator:
		node.Validate(validator.Emitter)
	}
}

func (validator astSyntaxValidator) Exit(node ast.Node) {
}
