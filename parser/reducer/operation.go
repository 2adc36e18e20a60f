package reducer

import (
	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/lr"
)

// operatorCall builds receiver.op(arg).  A nil arg builds a unary call.
func operatorCall(receiver ast.Node, op string, arg ast.Node) (ast.Node, error) {
	err := valueExpression(receiver)
	if err != nil {
		return nil, err
	}

	call := &ast.Call{
		StartEndPos: span(receiver, receiver),
		Receiver:    receiver,
		Name:        op,
	}

	if arg != nil {
		err = valueExpression(arg)
		if err != nil {
			return nil, err
		}

		call.EndPos = arg.End()
		call.Args = &ast.Array{
			StartEndPos: span(arg, arg),
			Elements:    []ast.Node{arg},
		}
	}

	return call, nil
}

func (reducer *Reducer) BinaryToArg(
	left ast.Node,
	op *lr.TokenValue,
	right ast.Node,
) (
	ast.Node,
	error,
) {
	if op.Value != "!=" {
		return operatorCall(left, op.Value, right)
	}

	equal, err := operatorCall(left, "==", right)
	if err != nil {
		return nil, err
	}
	return &ast.Not{
		StartEndPos: span(left, right),
		Value:       equal,
	}, nil
}

func (reducer *Reducer) AndToArg(
	left ast.Node,
	op *lr.TokenValue,
	right ast.Node,
) (
	ast.Node,
	error,
) {
	err := valueExpression(left)
	if err != nil {
		return nil, err
	}
	return &ast.And{
		StartEndPos: span(left, right),
		Left:        left,
		Right:       right,
	}, nil
}

func (reducer *Reducer) OrToArg(
	left ast.Node,
	op *lr.TokenValue,
	right ast.Node,
) (
	ast.Node,
	error,
) {
	err := valueExpression(left)
	if err != nil {
		return nil, err
	}
	return &ast.Or{
		StartEndPos: span(left, right),
		Left:        left,
		Right:       right,
	}, nil
}

func (reducer *Reducer) UnaryMinusToArg(
	minus *lr.TokenValue,
	value ast.Node,
) (
	ast.Node,
	error,
) {
	call, err := operatorCall(value, "-@", nil)
	if err != nil {
		return nil, err
	}
	call.(*ast.Call).StartPos = minus.StartPos
	return call, nil
}

func (reducer *Reducer) NotToArg(
	not *lr.TokenValue,
	value ast.Node,
) (
	ast.Node,
	error,
) {
	err := valueExpression(value)
	if err != nil {
		return nil, err
	}
	return &ast.Not{
		StartEndPos: span(not, value),
		Value:       reducer.condition(value),
	}, nil
}

func (reducer *Reducer) AndToExpr(
	left ast.Node,
	op *lr.TokenValue,
	right ast.Node,
) (
	ast.Node,
	error,
) {
	return reducer.AndToArg(left, op, right)
}

func (reducer *Reducer) OrToExpr(
	left ast.Node,
	op *lr.TokenValue,
	right ast.Node,
) (
	ast.Node,
	error,
) {
	return reducer.OrToArg(left, op, right)
}

func (reducer *Reducer) NotToExpr(
	not *lr.TokenValue,
	value ast.Node,
) (
	ast.Node,
	error,
) {
	return reducer.NotToArg(not, value)
}

func (reducer *Reducer) ToValueExpr(expr ast.Node) (ast.Node, error) {
	return expr, valueExpression(expr)
}

func (reducer *Reducer) ToValueArg(arg ast.Node) (ast.Node, error) {
	return arg, valueExpression(arg)
}

func (reducer *Reducer) ToValuePrimary(primary ast.Node) (ast.Node, error) {
	return primary, valueExpression(primary)
}
