package ast

import (
	"github.com/pattyshack/gt/parseutil"
)

type If struct {
	parseutil.StartEndPos

	Condition Node
	Then      Node // optional
	Else      Node // optional
}

func (stmt *If) Walk(visitor Visitor) {
	visitor.Enter(stmt)
	walk(visitor, stmt.Condition, stmt.Then, stmt.Else)
	visitor.Exit(stmt)
}

type While struct {
	parseutil.StartEndPos

	Condition Node
	Body      Node // optional

	// False for "begin ... end while cond", where the body runs before the
	// first condition check.
	CheckFirst bool
}

func (loop *While) Walk(visitor Visitor) {
	visitor.Enter(loop)
	walk(visitor, loop.Condition, loop.Body)
	visitor.Exit(loop)
}

type Until struct {
	parseutil.StartEndPos

	Condition  Node
	Body       Node // optional
	CheckFirst bool
}

func (loop *Until) Walk(visitor Visitor) {
	visitor.Enter(loop)
	walk(visitor, loop.Condition, loop.Body)
	visitor.Exit(loop)
}

type And struct {
	parseutil.StartEndPos

	Left  Node
	Right Node
}

func (expr *And) Walk(visitor Visitor) {
	visitor.Enter(expr)
	walk(visitor, expr.Left, expr.Right)
	visitor.Exit(expr)
}

type Or struct {
	parseutil.StartEndPos

	Left  Node
	Right Node
}

func (expr *Or) Walk(visitor Visitor) {
	visitor.Enter(expr)
	walk(visitor, expr.Left, expr.Right)
	visitor.Exit(expr)
}

type Not struct {
	parseutil.StartEndPos

	Value Node
}

func (expr *Not) Walk(visitor Visitor) {
	visitor.Enter(expr)
	walk(visitor, expr.Value)
	visitor.Exit(expr)
}

// Jump is implemented by return, break and next.  Jumps have no value of
// their own and must not be used where a value is expected.
type Jump interface {
	Node
	JumpValue() Node
}

type Return struct {
	parseutil.StartEndPos

	Value Node // optional
}

var _ Jump = &Return{}

func (jump *Return) JumpValue() Node { return jump.Value }

func (jump *Return) Walk(visitor Visitor) {
	visitor.Enter(jump)
	walk(visitor, jump.Value)
	visitor.Exit(jump)
}

type Break struct {
	parseutil.StartEndPos

	Value Node // optional
}

var _ Jump = &Break{}

func (jump *Break) JumpValue() Node { return jump.Value }

func (jump *Break) Walk(visitor Visitor) {
	visitor.Enter(jump)
	walk(visitor, jump.Value)
	visitor.Exit(jump)
}

type Next struct {
	parseutil.StartEndPos

	Value Node // optional
}

var _ Jump = &Next{}

func (jump *Next) JumpValue() Node { return jump.Value }

func (jump *Next) Walk(visitor Visitor) {
	visitor.Enter(jump)
	walk(visitor, jump.Value)
	visitor.Exit(jump)
}
