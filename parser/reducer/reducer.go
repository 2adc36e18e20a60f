// Package reducer implements the semantic actions of the ruby grammar.  Each
// grammar action name maps to a Reducer method; the Dispatcher adapts the
// generic parse stack values to the methods' typed signatures.
package reducer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/lr"
	"github.com/pattyshack/garnet/parser/scope"
	"github.com/pattyshack/garnet/parser/warning"
)

type Reducer struct {
	Scope *scope.Manager

	// Current lexer position.  Empty productions have no tokens of their own;
	// errors raised by them are reported here.
	Location func() parseutil.Location
}

func NewReducer(manager *scope.Manager) *Reducer {
	return &Reducer{
		Scope:    manager,
		Location: func() parseutil.Location { return parseutil.Location{} },
	}
}

func (reducer *Reducer) warnings() warning.Sink {
	return reducer.Scope.Warnings()
}

func (reducer *Reducer) here() parseutil.StartEndPos {
	loc := reducer.Location()
	return parseutil.NewStartEndPos(loc, loc)
}

func span(first parseutil.Locatable, last parseutil.Locatable) parseutil.StartEndPos {
	return parseutil.NewStartEndPos(first.Loc(), last.End())
}

func (reducer *Reducer) ToProgram(body ast.Node) (*ast.Root, error) {
	block := toBlock(body)
	if block == nil {
		block = &ast.Block{StartEndPos: reducer.here()}
	}

	return &ast.Root{
		StartEndPos: block.StartEndPos,
		Locals:      reducer.Scope.TopLevelNames(),
		Body:        block,
	}, nil
}

func (reducer *Reducer) NewToStmts(stmt ast.Node) (ast.Node, error) {
	return newline(stmt), nil
}

func (reducer *Reducer) AddToStmts(
	stmts ast.Node,
	terms *lr.TokenValue,
	stmt ast.Node,
) (
	ast.Node,
	error,
) {
	return reducer.appendToBlock(stmts, newline(stmt)), nil
}

// Statements before the error were discarded by recovery.
func (reducer *Reducer) ErrorToStmts(stmt ast.Node) (ast.Node, error) {
	return newline(stmt), nil
}

func toBlock(node ast.Node) *ast.Block {
	switch n := node.(type) {
	case nil:
		return nil
	case *ast.Block:
		return n
	}
	return &ast.Block{
		StartEndPos: span(node, node),
		Statements:  []ast.Node{node},
	}
}

func newline(node ast.Node) ast.Node {
	if node == nil {
		return nil
	}
	if _, ok := node.(*ast.Newline); ok {
		return node
	}
	return &ast.Newline{
		StartEndPos: span(node, node),
		Statement:   node,
	}
}

// appendToBlock merges two statement sequences into a single block.
func (reducer *Reducer) appendToBlock(head ast.Node, tail ast.Node) ast.Node {
	if tail == nil {
		return head
	}
	if head == nil {
		return tail
	}

	block, ok := head.(*ast.Block)
	if !ok {
		block = toBlock(head)
	}

	if _, ok := block.Last().(ast.Jump); ok {
		reducer.warnings().Warning(
			warning.StatementNotReached,
			span(tail, tail),
			"statement not reached")
	}

	tailBlock, ok := tail.(*ast.Block)
	if ok {
		block.Statements = append(block.Statements, tailBlock.Statements...)
	} else {
		block.Statements = append(block.Statements, tail)
	}
	block.EndPos = tail.End()

	return block
}

func isVoid(node ast.Node) bool {
	switch n := ast.Unwrap(node).(type) {
	case ast.Jump:
		return true
	case *ast.Block:
		return isVoid(n.Last())
	case *ast.Begin:
		return isVoid(n.Body)
	case *ast.If:
		return n.Then != nil && n.Else != nil && isVoid(n.Then) && isVoid(n.Else)
	}
	return false
}

// valueExpression rejects expressions which never produce a value (jumps)
// in positions where a value is required.
func valueExpression(node ast.Node) error {
	if node != nil && isVoid(node) {
		return scope.NewSemanticError(span(node, node), "void value expression")
	}
	return nil
}

func isLiteral(node ast.Node) bool {
	switch node.(type) {
	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.StringLiteral,
		*ast.SymbolLiteral, *ast.NilLiteral, *ast.TrueLiteral,
		*ast.FalseLiteral:
		return true
	}
	return false
}

// condition prepares node for use as a branch or loop condition.
func (reducer *Reducer) condition(node ast.Node) ast.Node {
	target, ok := ast.Unwrap(node).(ast.Assignable)
	if !ok {
		return node
	}
	if _, ok := target.(*ast.MultipleAssignment); ok {
		return node
	}

	if isLiteral(target.AssignedValue()) {
		reducer.warnings().Warning(
			warning.AssignmentInCondition,
			span(node, node),
			"found = in conditional, should be ==")
	}
	return node
}
