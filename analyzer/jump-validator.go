package analyzer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/garnet/ast"
)

type jumpValidator struct {
	*parseutil.Emitter

	bodyStack
}

// ValidateJumps reports break / next statements which have no enclosing
// loop or block.  Method, class and module bodies end the search.
func ValidateJumps(emitter *parseutil.Emitter) Pass {
	return &jumpValidator{
		Emitter: emitter,
	}
}

func (validator *jumpValidator) Process(root *ast.Root) {
	validator.reset()
	root.Walk(validator)
}

func (validator *jumpValidator) canJump() bool {
	switch validator.innermost().(type) {
	case *ast.While, *ast.Until, *ast.Iter:
		return true
	}
	return false
}

func (validator *jumpValidator) Enter(node ast.Node) {
	switch jump := node.(type) {
	case *ast.Break:
		if !validator.canJump() {
			validator.Emit(jump.Loc(), "Invalid break")
		}
	case *ast.Next:
		if !validator.canJump() {
			validator.Emit(jump.Loc(), "Invalid next")
		}
	}

	validator.enter(node)
}

func (validator *jumpValidator) Exit(node ast.Node) {
	validator.exit(node)
}
