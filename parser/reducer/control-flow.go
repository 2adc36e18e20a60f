package reducer

import (
	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/lr"
	"github.com/pattyshack/garnet/parser/scope"
)

const (
	IfModifier = lr.Modifier(iota)
	UnlessModifier
	WhileModifier
	UntilModifier
)

func (reducer *Reducer) IfToModifier(*lr.TokenValue) (lr.Modifier, error) {
	return IfModifier, nil
}

func (reducer *Reducer) UnlessToModifier(*lr.TokenValue) (lr.Modifier, error) {
	return UnlessModifier, nil
}

func (reducer *Reducer) WhileToModifier(*lr.TokenValue) (lr.Modifier, error) {
	return WhileModifier, nil
}

func (reducer *Reducer) UntilToModifier(*lr.TokenValue) (lr.Modifier, error) {
	return UntilModifier, nil
}

// stmt if cond, stmt unless cond, stmt while cond, stmt until cond.  A
// begin/end body followed by a loop modifier runs at least once.
func (reducer *Reducer) ModifierToStmt(
	stmt ast.Node,
	modifier lr.Modifier,
	cond ast.Node,
) (
	ast.Node,
	error,
) {
	pos := span(stmt, cond)
	cond = reducer.condition(cond)

	switch modifier {
	case IfModifier:
		return &ast.If{StartEndPos: pos, Condition: cond, Then: stmt}, nil
	case UnlessModifier:
		return &ast.If{StartEndPos: pos, Condition: cond, Else: stmt}, nil
	}

	body := stmt
	checkFirst := true
	if begin, ok := stmt.(*ast.Begin); ok {
		body = begin.Body
		checkFirst = false
	}

	if modifier == WhileModifier {
		return &ast.While{
			StartEndPos: pos,
			Condition:   cond,
			Body:        body,
			CheckFirst:  checkFirst,
		}, nil
	}
	return &ast.Until{
		StartEndPos: pos,
		Condition:   cond,
		Body:        body,
		CheckFirst:  checkFirst,
	}, nil
}

func (reducer *Reducer) IfToPrimary(
	ifToken *lr.TokenValue,
	cond ast.Node,
	then *lr.TokenValue,
	body ast.Node,
	tail ast.Node,
	end *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.If{
		StartEndPos: span(ifToken, end),
		Condition:   reducer.condition(cond),
		Then:        body,
		Else:        tail,
	}, nil
}

func (reducer *Reducer) UnlessToPrimary(
	unless *lr.TokenValue,
	cond ast.Node,
	then *lr.TokenValue,
	body ast.Node,
	elseBody ast.Node,
	end *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.If{
		StartEndPos: span(unless, end),
		Condition:   reducer.condition(cond),
		Then:        elseBody,
		Else:        body,
	}, nil
}

func (reducer *Reducer) ElsifToIfTail(
	elsif *lr.TokenValue,
	cond ast.Node,
	then *lr.TokenValue,
	body ast.Node,
	tail ast.Node,
) (
	ast.Node,
	error,
) {
	pos := span(elsif, elsif)
	switch {
	case tail != nil:
		pos.EndPos = tail.End()
	case body != nil:
		pos.EndPos = body.End()
	default:
		pos.EndPos = cond.End()
	}

	return &ast.If{
		StartEndPos: pos,
		Condition:   reducer.condition(cond),
		Then:        body,
		Else:        tail,
	}, nil
}

func (reducer *Reducer) ElseToOptElse(
	elseToken *lr.TokenValue,
	body ast.Node,
) (
	ast.Node,
	error,
) {
	return body, nil
}

func (reducer *Reducer) WhileToPrimary(
	while *lr.TokenValue,
	cond ast.Node,
	do *lr.TokenValue,
	body ast.Node,
	end *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.While{
		StartEndPos: span(while, end),
		Condition:   reducer.condition(cond),
		Body:        body,
		CheckFirst:  true,
	}, nil
}

func (reducer *Reducer) UntilToPrimary(
	until *lr.TokenValue,
	cond ast.Node,
	do *lr.TokenValue,
	body ast.Node,
	end *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.Until{
		StartEndPos: span(until, end),
		Condition:   reducer.condition(cond),
		Body:        body,
		CheckFirst:  true,
	}, nil
}

func (reducer *Reducer) BeginToPrimary(
	begin *lr.TokenValue,
	body ast.Node,
	end *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.Begin{
		StartEndPos: span(begin, end),
		Body:        body,
	}, nil
}

// returnArguments converts a jump's argument list into its value.  A single
// argument is returned unwrapped.
func returnArguments(args ast.Node) (ast.Node, error) {
	switch node := args.(type) {
	case *ast.BlockPass:
		return nil, scope.NewSemanticError(
			span(node, node),
			"block argument should not be given")
	case *ast.Array:
		if len(node.Elements) == 1 {
			return node.Elements[0], nil
		}
	}
	return args, nil
}

func (reducer *Reducer) ReturnToCommand(
	keyword *lr.TokenValue,
	args ast.Node,
) (
	ast.Node,
	error,
) {
	value, err := returnArguments(args)
	if err != nil {
		return nil, err
	}
	return &ast.Return{StartEndPos: span(keyword, args), Value: value}, nil
}

func (reducer *Reducer) BreakToCommand(
	keyword *lr.TokenValue,
	args ast.Node,
) (
	ast.Node,
	error,
) {
	value, err := returnArguments(args)
	if err != nil {
		return nil, err
	}
	return &ast.Break{StartEndPos: span(keyword, args), Value: value}, nil
}

func (reducer *Reducer) NextToCommand(
	keyword *lr.TokenValue,
	args ast.Node,
) (
	ast.Node,
	error,
) {
	value, err := returnArguments(args)
	if err != nil {
		return nil, err
	}
	return &ast.Next{StartEndPos: span(keyword, args), Value: value}, nil
}

func (reducer *Reducer) ReturnToPrimary(keyword *lr.TokenValue) (ast.Node, error) {
	return &ast.Return{StartEndPos: keyword.StartEndPos}, nil
}

func (reducer *Reducer) BreakToPrimary(keyword *lr.TokenValue) (ast.Node, error) {
	return &ast.Break{StartEndPos: keyword.StartEndPos}, nil
}

func (reducer *Reducer) NextToPrimary(keyword *lr.TokenValue) (ast.Node, error) {
	return &ast.Next{StartEndPos: keyword.StartEndPos}, nil
}
