package reducer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/lr"
	"github.com/pattyshack/garnet/parser/scope"
)

// spanOf covers first and the last non-nil node in rest.
func spanOf(first parseutil.Locatable, rest ...ast.Node) parseutil.StartEndPos {
	pos := span(first, first)
	for _, node := range rest {
		if node != nil {
			pos.EndPos = node.End()
		}
	}
	return pos
}

func (reducer *Reducer) FunctionToCommand(
	name *lr.TokenValue,
	args ast.Node,
) (
	ast.Node,
	error,
) {
	return &ast.FunctionCall{
		StartEndPos: spanOf(name, args),
		Name:        name.Value,
		Args:        args,
	}, nil
}

func (reducer *Reducer) MethodToCommand(
	receiver ast.Node,
	dot *lr.TokenValue,
	name *lr.TokenValue,
	args ast.Node,
) (
	ast.Node,
	error,
) {
	return &ast.Call{
		StartEndPos: spanOf(receiver, args),
		Receiver:    receiver,
		Name:        name.Value,
		Args:        args,
	}, nil
}

func (reducer *Reducer) FunctionToMethodCall(
	name *lr.TokenValue,
	args ast.Node,
) (
	ast.Node,
	error,
) {
	return reducer.FunctionToCommand(name, args)
}

func (reducer *Reducer) MethodToMethodCall(
	receiver ast.Node,
	dot *lr.TokenValue,
	name *lr.TokenValue,
	args ast.Node,
) (
	ast.Node,
	error,
) {
	call := &ast.Call{
		StartEndPos: span(receiver, name),
		Receiver:    receiver,
		Name:        name.Value,
		Args:        args,
	}
	if args != nil {
		call.EndPos = args.End()
	}
	return call, nil
}

func (reducer *Reducer) IndexToMethodCall(
	receiver ast.Node,
	lbracket *lr.TokenValue,
	args ast.Node,
	rbracket *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.Call{
		StartEndPos: span(receiver, rbracket),
		Receiver:    receiver,
		Name:        "[]",
		Args:        args,
	}, nil
}

func blockAppend(call ast.Node, iter *ast.Iter) (ast.Node, error) {
	var args ast.Node
	switch node := call.(type) {
	case *ast.Call:
		args = node.Args
		node.Block = iter
		node.EndPos = iter.End()
	case *ast.FunctionCall:
		args = node.Args
		node.Block = iter
		node.EndPos = iter.End()
	}

	if _, ok := args.(*ast.BlockPass); ok {
		return nil, scope.NewSemanticError(
			span(iter, iter),
			"both block arg and actual block given")
	}
	return call, nil
}

func (reducer *Reducer) BlockCallToPrimary(
	call ast.Node,
	block ast.Node,
) (
	ast.Node,
	error,
) {
	return blockAppend(call, block.(*ast.Iter))
}

func (reducer *Reducer) BlockFunctionToPrimary(
	name *lr.TokenValue,
	block ast.Node,
) (
	ast.Node,
	error,
) {
	return &ast.FunctionCall{
		StartEndPos: span(name, block),
		Name:        name.Value,
		Block:       block,
	}, nil
}

func (reducer *Reducer) EnterBlockScope() error {
	reducer.Scope.PushBlockScope()
	return nil
}

func (reducer *Reducer) ToBraceBlock(
	open *lr.TokenValue,
	params ast.Node,
	body ast.Node,
	close *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	iter := &ast.Iter{
		StartEndPos: span(open, close),
		Body:        body,
		Locals:      reducer.Scope.PopCurrentScope(),
	}
	if params != nil {
		iter.Params = params.(*ast.Parameters)
	}
	return iter, nil
}

func (reducer *Reducer) EmptyToBlockParamDef(
	open *lr.TokenValue,
	close *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.Parameters{StartEndPos: span(open, close)}, nil
}

func (reducer *Reducer) ToBlockParamDef(
	open *lr.TokenValue,
	params ast.Node,
	close *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	result := params.(*ast.Parameters)
	result.StartEndPos = span(open, close)
	return result, nil
}

func (reducer *Reducer) ListToBlockParam(list []ast.Node) (ast.Node, error) {
	return &ast.Parameters{
		StartEndPos: span(list[0], list[len(list)-1]),
		Required:    list,
	}, nil
}

func (reducer *Reducer) ListRestToBlockParam(
	list []ast.Node,
	comma *lr.TokenValue,
	rest ast.Node,
) (
	ast.Node,
	error,
) {
	return &ast.Parameters{
		StartEndPos: span(list[0], rest),
		Required:    list,
		Rest:        rest,
	}, nil
}

func (reducer *Reducer) RestToBlockParam(rest ast.Node) (ast.Node, error) {
	return &ast.Parameters{
		StartEndPos: span(rest, rest),
		Rest:        rest,
	}, nil
}

// Block parameter binding semantics differ between dialects.
func (reducer *Reducer) ToBparam(name *lr.TokenValue) (ast.Node, error) {
	return reducer.Scope.Dialect().BlockParameter(reducer.Scope, name)
}

func (reducer *Reducer) ToBparamRest(
	star *lr.TokenValue,
	name *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return reducer.Scope.Dialect().BlockParameter(reducer.Scope, name)
}

func (reducer *Reducer) AnonymousToBparamRest(
	star *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.Argument{StartEndPos: star.StartEndPos, Slot: -1}, nil
}
