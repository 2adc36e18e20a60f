package reducer

import (
	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/lr"
)

// argAppend appends value to an argument list.  Lists which end in a splat
// cannot grow in place and become push nodes instead.
func argAppend(head ast.Node, value ast.Node) ast.Node {
	switch node := head.(type) {
	case nil:
		return &ast.Array{
			StartEndPos: span(value, value),
			Elements:    []ast.Node{value},
		}
	case *ast.Array:
		node.Elements = append(node.Elements, value)
		node.EndPos = value.End()
		return node
	case *ast.BlockPass:
		return argAppend(node.Args, value)
	case *ast.ArgsPush:
		return &ast.ArgsCat{
			StartEndPos: span(node, value),
			Head:        node.Head,
			Tail: &ast.Array{
				StartEndPos: span(node.Value, value),
				Elements:    []ast.Node{node.Value, value},
			},
		}
	}

	return &ast.ArgsPush{
		StartEndPos: span(head, value),
		Head:        head,
		Value:       value,
	}
}

// argConcat splices the splatted list tail onto head.
func argConcat(head ast.Node, tail ast.Node) ast.Node {
	if tail == nil {
		return head
	}

	switch node := head.(type) {
	case nil:
		return &ast.Splat{StartEndPos: span(tail, tail), Value: tail}
	case *ast.BlockPass:
		return argConcat(node.Args, tail)
	case *ast.Array:
		if array, ok := tail.(*ast.Array); ok {
			node.Elements = append(node.Elements, array.Elements...)
			node.EndPos = array.End()
			return node
		}
	}

	return &ast.ArgsCat{
		StartEndPos: span(head, tail),
		Head:        head,
		Tail:        tail,
	}
}

func (reducer *Reducer) NewToArgs(value ast.Node) (ast.Node, error) {
	return argAppend(nil, value), nil
}

func (reducer *Reducer) SplatToArgs(
	star *lr.TokenValue,
	value ast.Node,
) (
	ast.Node,
	error,
) {
	return &ast.Splat{StartEndPos: span(star, value), Value: value}, nil
}

func (reducer *Reducer) AppendToArgs(
	args ast.Node,
	comma *lr.TokenValue,
	value ast.Node,
) (
	ast.Node,
	error,
) {
	return argAppend(args, value), nil
}

func (reducer *Reducer) ConcatToArgs(
	args ast.Node,
	comma *lr.TokenValue,
	star *lr.TokenValue,
	value ast.Node,
) (
	ast.Node,
	error,
) {
	return argConcat(args, value), nil
}

func (reducer *Reducer) AppendToMrhs(
	args ast.Node,
	comma *lr.TokenValue,
	value ast.Node,
) (
	ast.Node,
	error,
) {
	return argAppend(args, value), nil
}

func (reducer *Reducer) ConcatToMrhs(
	args ast.Node,
	comma *lr.TokenValue,
	star *lr.TokenValue,
	value ast.Node,
) (
	ast.Node,
	error,
) {
	return argConcat(args, value), nil
}

func (reducer *Reducer) SplatToMrhs(
	star *lr.TokenValue,
	value ast.Node,
) (
	ast.Node,
	error,
) {
	return reducer.SplatToArgs(star, value)
}

func (reducer *Reducer) ToCallArgs(
	args ast.Node,
	blockArg ast.Node,
) (
	ast.Node,
	error,
) {
	if blockArg == nil {
		return args, nil
	}

	pass := blockArg.(*ast.BlockPass)
	pass.Args = args
	pass.StartPos = args.Loc()
	return pass, nil
}

func (reducer *Reducer) BlockToCallArgs(blockArg ast.Node) (ast.Node, error) {
	return blockArg, nil
}

func (reducer *Reducer) ToOptBlockArg(
	comma *lr.TokenValue,
	blockArg ast.Node,
) (
	ast.Node,
	error,
) {
	return blockArg, nil
}

func (reducer *Reducer) ToBlockArg(
	amper *lr.TokenValue,
	value ast.Node,
) (
	ast.Node,
	error,
) {
	return &ast.BlockPass{StartEndPos: span(amper, value), Body: value}, nil
}

func (reducer *Reducer) ToParenArgs(
	lparen *lr.TokenValue,
	args ast.Node,
	rparen *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return args, nil
}

func (reducer *Reducer) NewToAssocs(pair ast.Node) ([]ast.Node, error) {
	return []ast.Node{pair}, nil
}

func (reducer *Reducer) AddToAssocs(
	list []ast.Node,
	comma *lr.TokenValue,
	pair ast.Node,
) (
	[]ast.Node,
	error,
) {
	return append(list, pair), nil
}

func (reducer *Reducer) ToAssoc(
	key ast.Node,
	assoc *lr.TokenValue,
	value ast.Node,
) (
	ast.Node,
	error,
) {
	return &ast.HashPair{
		StartEndPos: span(key, value),
		Key:         key,
		Value:       value,
	}, nil
}

func (reducer *Reducer) NewToBparamList(param ast.Node) ([]ast.Node, error) {
	return []ast.Node{param}, nil
}

func (reducer *Reducer) AddToBparamList(
	list []ast.Node,
	comma *lr.TokenValue,
	param ast.Node,
) (
	[]ast.Node,
	error,
) {
	return append(list, param), nil
}

func (reducer *Reducer) NewToFArg(arg ast.Node) ([]ast.Node, error) {
	return []ast.Node{arg}, nil
}

func (reducer *Reducer) AddToFArg(
	list []ast.Node,
	comma *lr.TokenValue,
	arg ast.Node,
) (
	[]ast.Node,
	error,
) {
	return append(list, arg), nil
}
