package reducer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/lr"
	"github.com/pattyshack/garnet/parser/scope"
)

func extendTo(node ast.Node, end parseutil.Location) {
	switch n := node.(type) {
	case *ast.LocalAssignment:
		n.EndPos = end
	case *ast.InstanceAssignment:
		n.EndPos = end
	case *ast.ClassVariableAssignment:
		n.EndPos = end
	case *ast.ClassVariableDeclaration:
		n.EndPos = end
	case *ast.GlobalAssignment:
		n.EndPos = end
	case *ast.ConstantDeclaration:
		n.EndPos = end
	case *ast.MultipleAssignment:
		n.EndPos = end
	case *ast.AttributeAssignment:
		n.EndPos = end
	}
}

// assign attaches value to a target built before the value was parsed.
func assign(target ast.Node, value ast.Node) (ast.Node, error) {
	err := valueExpression(value)
	if err != nil {
		return nil, err
	}

	assignable := target.(ast.Assignable)
	assignable.SetAssignedValue(value)
	extendTo(assignable, value.End())
	return assignable, nil
}

func (reducer *Reducer) MultipleAssignToStmt(
	mlhs ast.Node,
	eq *lr.TokenValue,
	value ast.Node,
) (
	ast.Node,
	error,
) {
	return assign(mlhs, value)
}

func (reducer *Reducer) MrhsAssignToStmt(
	lhs ast.Node,
	eq *lr.TokenValue,
	mrhs ast.Node,
) (
	ast.Node,
	error,
) {
	return assign(lhs, mrhs)
}

func (reducer *Reducer) AssignToStmt(
	lhs ast.Node,
	eq *lr.TokenValue,
	command ast.Node,
) (
	ast.Node,
	error,
) {
	return assign(lhs, command)
}

func (reducer *Reducer) AssignToArg(
	lhs ast.Node,
	eq *lr.TokenValue,
	value ast.Node,
) (
	ast.Node,
	error,
) {
	return assign(lhs, value)
}

// Operator assignment.  op carries the operator without the trailing '='.
func (reducer *Reducer) OpAssignToArg(
	lhs ast.Node,
	op *lr.TokenValue,
	value ast.Node,
) (
	ast.Node,
	error,
) {
	variable, ok := lhs.(ast.Variable)
	if !ok {
		return nil, scope.NewSemanticError(
			span(lhs, op),
			"invalid operator assignment target")
	}

	read, err := reducer.Scope.DeclareReference(&lr.TokenValue{
		StartEndPos: span(lhs, lhs),
		Value:       variable.VariableName(),
	})
	if err != nil {
		return nil, err
	}

	pos := span(lhs, value)
	switch op.Value {
	case "||":
		write, err := assign(lhs, value)
		if err != nil {
			return nil, err
		}
		return &ast.OpAssignOr{
			StartEndPos: pos,
			Read:        read,
			Write:       write.(ast.Assignable),
		}, nil
	case "&&":
		write, err := assign(lhs, value)
		if err != nil {
			return nil, err
		}
		return &ast.OpAssignAnd{
			StartEndPos: pos,
			Read:        read,
			Write:       write.(ast.Assignable),
		}, nil
	}

	call, err := operatorCall(read, op.Value, value)
	if err != nil {
		return nil, err
	}
	return assign(lhs, call)
}

func (reducer *Reducer) VariableToLhs(variable *lr.TokenValue) (ast.Node, error) {
	return reducer.Scope.Assignable(variable, nil)
}

func (reducer *Reducer) IndexToLhs(
	receiver ast.Node,
	lbracket *lr.TokenValue,
	args ast.Node,
	rbracket *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.AttributeAssignment{
		StartEndPos: span(receiver, rbracket),
		Receiver:    receiver,
		Name:        "[]=",
		Args:        args,
	}, nil
}

func (reducer *Reducer) AttributeToLhs(
	receiver ast.Node,
	dot *lr.TokenValue,
	name *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.AttributeAssignment{
		StartEndPos: span(receiver, name),
		Receiver:    receiver,
		Name:        name.Value + "=",
	}, nil
}

func (reducer *Reducer) ToVarLhs(variable *lr.TokenValue) (ast.Node, error) {
	return reducer.Scope.Assignable(variable, nil)
}

func (reducer *Reducer) ToVarRef(variable *lr.TokenValue) (ast.Node, error) {
	return reducer.Scope.DeclareReference(variable)
}

//
// Multiple assignment targets
//

func (reducer *Reducer) NestedToMlhs(
	lparen *lr.TokenValue,
	inner ast.Node,
	rparen *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return inner, nil
}

func (reducer *Reducer) NestedToMlhsInner(
	lparen *lr.TokenValue,
	inner ast.Node,
	rparen *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.MultipleAssignment{
		StartEndPos: span(lparen, rparen),
		Targets:     []ast.Node{inner},
	}, nil
}

func (reducer *Reducer) NestedToMlhsItem(
	lparen *lr.TokenValue,
	inner ast.Node,
	rparen *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return inner, nil
}

func (reducer *Reducer) NewToMlhsHead(
	item ast.Node,
	comma *lr.TokenValue,
) (
	[]ast.Node,
	error,
) {
	return []ast.Node{item}, nil
}

func (reducer *Reducer) AddToMlhsHead(
	head []ast.Node,
	item ast.Node,
	comma *lr.TokenValue,
) (
	[]ast.Node,
	error,
) {
	return append(head, item), nil
}

func (reducer *Reducer) HeadToMlhsBasic(head []ast.Node) (ast.Node, error) {
	return &ast.MultipleAssignment{
		StartEndPos: span(head[0], head[len(head)-1]),
		Targets:     head,
	}, nil
}

func (reducer *Reducer) HeadItemToMlhsBasic(
	head []ast.Node,
	item ast.Node,
) (
	ast.Node,
	error,
) {
	return &ast.MultipleAssignment{
		StartEndPos: span(head[0], item),
		Targets:     append(head, item),
	}, nil
}

func (reducer *Reducer) HeadSplatToMlhsBasic(
	head []ast.Node,
	star *lr.TokenValue,
	target ast.Node,
) (
	ast.Node,
	error,
) {
	return &ast.MultipleAssignment{
		StartEndPos: span(head[0], target),
		Targets:     head,
		Splat:       target,
	}, nil
}

func (reducer *Reducer) HeadStarToMlhsBasic(
	head []ast.Node,
	star *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.MultipleAssignment{
		StartEndPos: span(head[0], star),
		Targets:     head,
		Splat:       &ast.Star{StartEndPos: star.StartEndPos},
	}, nil
}

func (reducer *Reducer) SplatToMlhsBasic(
	star *lr.TokenValue,
	target ast.Node,
) (
	ast.Node,
	error,
) {
	return &ast.MultipleAssignment{
		StartEndPos: span(star, target),
		Splat:       target,
	}, nil
}

func (reducer *Reducer) StarToMlhsBasic(star *lr.TokenValue) (ast.Node, error) {
	return &ast.MultipleAssignment{
		StartEndPos: star.StartEndPos,
		Splat:       &ast.Star{StartEndPos: star.StartEndPos},
	}, nil
}

func (reducer *Reducer) VariableToMlhsNode(
	variable *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return reducer.Scope.Assignable(variable, nil)
}

func (reducer *Reducer) IndexToMlhsNode(
	receiver ast.Node,
	lbracket *lr.TokenValue,
	args ast.Node,
	rbracket *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return reducer.IndexToLhs(receiver, lbracket, args, rbracket)
}

func (reducer *Reducer) AttributeToMlhsNode(
	receiver ast.Node,
	dot *lr.TokenValue,
	name *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return reducer.AttributeToLhs(receiver, dot, name)
}
