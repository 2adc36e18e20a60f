package reducer

import (
	"strconv"
	"strings"

	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/lr"
	"github.com/pattyshack/garnet/parser/scope"
)

func (reducer *Reducer) IntegerToPrimary(token *lr.TokenValue) (ast.Node, error) {
	// base 0 accepts 0x / 0b / 0o / leading 0 prefixes and digit separators.
	value, err := strconv.ParseInt(token.Value, 0, 64)
	if err != nil {
		return nil, scope.NewSemanticError(
			token.StartEndPos,
			"invalid integer literal (%s)",
			token.Value)
	}

	return &ast.IntegerLiteral{
		StartEndPos: token.StartEndPos,
		Value:       value,
	}, nil
}

func (reducer *Reducer) FloatToPrimary(token *lr.TokenValue) (ast.Node, error) {
	value, err := strconv.ParseFloat(
		strings.ReplaceAll(token.Value, "_", ""),
		64)
	if err != nil {
		return nil, scope.NewSemanticError(
			token.StartEndPos,
			"invalid float literal (%s)",
			token.Value)
	}

	return &ast.FloatLiteral{
		StartEndPos: token.StartEndPos,
		Value:       value,
	}, nil
}

func (reducer *Reducer) SymbolToPrimary(token *lr.TokenValue) (ast.Node, error) {
	return &ast.SymbolLiteral{
		StartEndPos: token.StartEndPos,
		Name:        token.Value,
	}, nil
}

func (reducer *Reducer) ParenToPrimary(
	lparen *lr.TokenValue,
	body ast.Node,
	rparen *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	if body == nil {
		return &ast.ImplicitNil{StartEndPos: span(lparen, rparen)}, nil
	}
	return body, nil
}

func (reducer *Reducer) ArrayToPrimary(
	lbracket *lr.TokenValue,
	args ast.Node,
	rbracket *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	switch node := args.(type) {
	case nil:
		return &ast.Array{StartEndPos: span(lbracket, rbracket)}, nil
	case *ast.Array:
		node.StartEndPos = span(lbracket, rbracket)
		return node, nil
	}
	return args, nil
}

func (reducer *Reducer) HashToPrimary(
	lbrace *lr.TokenValue,
	list []ast.Node,
	rbrace *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	hash := &ast.Hash{StartEndPos: span(lbrace, rbrace)}
	for _, pair := range list {
		hash.Pairs = append(hash.Pairs, pair.(*ast.HashPair))
	}
	return hash, nil
}

func (reducer *Reducer) ToString1(
	begin *lr.TokenValue,
	contents ast.Node,
	end *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	pos := span(begin, end)
	switch node := contents.(type) {
	case nil:
		return &ast.StringLiteral{StartEndPos: pos}, nil
	case *ast.StringLiteral:
		return &ast.StringLiteral{StartEndPos: pos, Value: node.Value}, nil
	case *ast.InterpolatedString:
		node.StartEndPos = pos
		return node, nil
	}

	return &ast.InterpolatedString{
		StartEndPos: pos,
		Parts:       []ast.Node{contents},
	}, nil
}

func (reducer *Reducer) AddToStringContents(
	contents ast.Node,
	content ast.Node,
) (
	ast.Node,
	error,
) {
	return literalConcat(contents, content), nil
}

func (reducer *Reducer) ContentToStringContent(
	token *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.StringLiteral{
		StartEndPos: token.StartEndPos,
		Value:       token.Value,
	}, nil
}

func (reducer *Reducer) EvalToStringContent(
	begin *lr.TokenValue,
	body ast.Node,
	end *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return &ast.EvalString{
		StartEndPos: span(begin, end),
		Body:        body,
	}, nil
}

// "a" "b" literal juxtaposition.
func (reducer *Reducer) ConcatToString(
	head ast.Node,
	tail ast.Node,
) (
	ast.Node,
	error,
) {
	return literalConcat(head, tail), nil
}

// appendPart adds part to an interpolated string's parts.  Adjacent static
// fragments are merged.
func appendPart(parts []ast.Node, part ast.Node) []ast.Node {
	str, ok := part.(*ast.StringLiteral)
	if !ok || len(parts) == 0 {
		return append(parts, part)
	}

	last, ok := parts[len(parts)-1].(*ast.StringLiteral)
	if !ok {
		return append(parts, part)
	}

	parts[len(parts)-1] = &ast.StringLiteral{
		StartEndPos: span(last, str),
		Value:       last.Value + str.Value,
	}
	return parts
}

// literalConcat joins two string fragments.  Static fragments are merged;
// any interpolation yields an interpolated string.
func literalConcat(head ast.Node, tail ast.Node) ast.Node {
	if head == nil {
		return tail
	}
	if tail == nil {
		return head
	}

	pos := span(head, tail)

	var parts []ast.Node
	switch node := head.(type) {
	case *ast.StringLiteral:
		if str, ok := tail.(*ast.StringLiteral); ok {
			return &ast.StringLiteral{
				StartEndPos: pos,
				Value:       node.Value + str.Value,
			}
		}
		parts = []ast.Node{node}
	case *ast.InterpolatedString:
		parts = node.Parts
	default:
		parts = []ast.Node{head}
	}

	if dstr, ok := tail.(*ast.InterpolatedString); ok {
		for _, part := range dstr.Parts {
			parts = appendPart(parts, part)
		}
	} else {
		parts = appendPart(parts, tail)
	}

	return &ast.InterpolatedString{
		StartEndPos: pos,
		Parts:       parts,
	}
}
