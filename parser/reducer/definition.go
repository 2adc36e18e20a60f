package reducer

import (
	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/lr"
)

//
// Body scope markers.  These reduce right before the body is parsed.
//

func (reducer *Reducer) EnterClassScope() error {
	return reducer.Scope.EnterClassBody(reducer.here())
}

func (reducer *Reducer) EnterSingletonClassScope() error {
	reducer.Scope.EnterSingletonClassBody()
	return nil
}

func (reducer *Reducer) EnterModuleScope() error {
	return reducer.Scope.EnterModuleBody(reducer.here())
}

func (reducer *Reducer) EnterMethodScope() error {
	reducer.Scope.EnterMethodBody()
	return nil
}

func (reducer *Reducer) EnterSingletonMethodScope() error {
	reducer.Scope.EnterSingletonMethodBody()
	return nil
}

func (reducer *Reducer) ClassToPrimary(
	class *lr.TokenValue,
	name *lr.TokenValue,
	superclass ast.Node,
	body ast.Node,
	end *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.ClassDefinition{
		StartEndPos: span(class, end),
		Name:        name.Value,
		Superclass:  superclass,
		Body:        body,
		Locals:      reducer.Scope.LeaveBody(),
	}, nil
}

func (reducer *Reducer) SingletonClassToPrimary(
	class *lr.TokenValue,
	receiver ast.Node,
	body ast.Node,
	end *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.SingletonClassDefinition{
		StartEndPos: span(class, end),
		Receiver:    receiver,
		Body:        body,
		Locals:      reducer.Scope.LeaveBody(),
	}, nil
}

func (reducer *Reducer) ModuleToPrimary(
	module *lr.TokenValue,
	name *lr.TokenValue,
	body ast.Node,
	end *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.ModuleDefinition{
		StartEndPos: span(module, end),
		Name:        name.Value,
		Body:        body,
		Locals:      reducer.Scope.LeaveBody(),
	}, nil
}

func (reducer *Reducer) MethodToPrimary(
	def *lr.TokenValue,
	name *lr.TokenValue,
	params ast.Node,
	body ast.Node,
	end *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.MethodDefinition{
		StartEndPos: span(def, end),
		Name:        name.Value,
		Params:      params.(*ast.Parameters),
		Body:        body,
		Locals:      reducer.Scope.LeaveBody(),
	}, nil
}

func (reducer *Reducer) SingletonMethodToPrimary(
	def *lr.TokenValue,
	receiver ast.Node,
	name *lr.TokenValue,
	params ast.Node,
	body ast.Node,
	end *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.SingletonMethodDefinition{
		StartEndPos: span(def, end),
		Receiver:    receiver,
		Name:        name.Value,
		Params:      params.(*ast.Parameters),
		Body:        body,
		Locals:      reducer.Scope.LeaveBody(),
	}, nil
}

func (reducer *Reducer) TermToSuperclass(*lr.TokenValue) (ast.Node, error) {
	return nil, nil
}

func (reducer *Reducer) ToSuperclass(
	lt *lr.TokenValue,
	superclass ast.Node,
	term *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return superclass, nil
}

func (reducer *Reducer) ToSingleton(self *lr.TokenValue) (ast.Node, error) {
	return &ast.Self{StartEndPos: self.StartEndPos}, nil
}

//
// Formal parameters
//

func (reducer *Reducer) ParenToFArglist(
	lparen *lr.TokenValue,
	params ast.Node,
	rparen *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	result := params.(*ast.Parameters)
	result.StartEndPos = span(lparen, rparen)
	return result, nil
}

func toArgument(token *lr.TokenValue, binding ast.Binding) *ast.Argument {
	if binding.Slot < 0 {
		return &ast.Argument{StartEndPos: token.StartEndPos, Slot: -1}
	}
	return &ast.Argument{
		StartEndPos: token.StartEndPos,
		Name:        token.Value,
		Slot:        binding.Slot,
	}
}

func newParameters(
	required []ast.Node,
	rest *ast.Argument,
	block *ast.Argument,
) *ast.Parameters {
	params := &ast.Parameters{Required: required}

	var nodes []ast.Node
	nodes = append(nodes, required...)
	if rest != nil {
		params.Rest = rest
		nodes = append(nodes, rest)
	}
	if block != nil {
		params.Block = block
		nodes = append(nodes, block)
	}

	if len(nodes) > 0 {
		params.StartEndPos = span(nodes[0], nodes[len(nodes)-1])
	}
	return params
}

func (reducer *Reducer) ArgRestToFArgs(
	list []ast.Node,
	comma *lr.TokenValue,
	rest *ast.Argument,
	block *ast.Argument,
) (
	ast.Node,
	error,
) {
	return newParameters(list, rest, block), nil
}

func (reducer *Reducer) ArgToFArgs(
	list []ast.Node,
	block *ast.Argument,
) (
	ast.Node,
	error,
) {
	return newParameters(list, nil, block), nil
}

func (reducer *Reducer) RestToFArgs(
	rest *ast.Argument,
	block *ast.Argument,
) (
	ast.Node,
	error,
) {
	return newParameters(nil, rest, block), nil
}

func (reducer *Reducer) BlockToFArgs(block *ast.Argument) (ast.Node, error) {
	return newParameters(nil, nil, block), nil
}

func (reducer *Reducer) EmptyToFArgs() (ast.Node, error) {
	params := newParameters(nil, nil, nil)
	params.StartEndPos = reducer.here()
	return params, nil
}

func (reducer *Reducer) ToFNormArg(name *lr.TokenValue) (ast.Node, error) {
	slot, err := reducer.Scope.DeclareArgument(name)
	if err != nil {
		return nil, err
	}
	return toArgument(name, ast.Binding{Slot: slot}), nil
}

func (reducer *Reducer) ToFRestArg(
	star *lr.TokenValue,
	name *lr.TokenValue,
) (
	*lr.TokenValue,
	ast.Binding,
	error,
) {
	slot, err := reducer.Scope.DeclareArgument(name)
	if err != nil {
		return nil, ast.Binding{}, err
	}
	return name, ast.Binding{Slot: slot}, nil
}

func (reducer *Reducer) AnonymousToFRestArg(
	star *lr.TokenValue,
) (
	*lr.TokenValue,
	ast.Binding,
	error,
) {
	return star, ast.Binding{Slot: -1}, nil
}

func (reducer *Reducer) ToFBlockArg(
	amper *lr.TokenValue,
	name *lr.TokenValue,
) (
	*lr.TokenValue,
	ast.Binding,
	error,
) {
	return reducer.ToFRestArg(amper, name)
}
