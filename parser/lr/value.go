package lr

import (
	"fmt"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/garnet/ast"
)

type ValueKind int

const (
	NoValue = ValueKind(iota)
	TokenKind
	NodeKind
	NodeListKind
	ModifierKind
	BindingKind
)

func (kind ValueKind) String() string {
	switch kind {
	case NoValue:
		return "none"
	case TokenKind:
		return "token"
	case NodeKind:
		return "node"
	case NodeListKind:
		return "node list"
	case ModifierKind:
		return "modifier"
	case BindingKind:
		return "binding"
	}
	return fmt.Sprintf("ValueKind(%d)", int(kind))
}

// Small enumerations produced by marker productions.
type Modifier int

// Value is the semantic value carried by a parse stack slot.  Kind selects
// which of the remaining fields is meaningful.  For BindingKind, Token holds
// the identifier the binding was declared for.
type Value struct {
	Kind ValueKind

	Token    *TokenValue
	Node     ast.Node
	Nodes    []ast.Node
	Modifier Modifier
	Binding  ast.Binding
}

func TokenVal(token *TokenValue) Value {
	return Value{Kind: TokenKind, Token: token}
}

// NodeVal wraps node.  A nil node yields NoValue.
func NodeVal(node ast.Node) Value {
	if node == nil {
		return Value{}
	}
	return Value{Kind: NodeKind, Node: node}
}

func NodesVal(nodes []ast.Node) Value {
	return Value{Kind: NodeListKind, Nodes: nodes}
}

func ModifierVal(modifier Modifier) Value {
	return Value{Kind: ModifierKind, Modifier: modifier}
}

func BindingVal(token *TokenValue, binding ast.Binding) Value {
	return Value{Kind: BindingKind, Token: token, Binding: binding}
}

func (value Value) mismatch(expected ValueKind) {
	panic(fmt.Sprintf(
		"semantic value kind mismatch: expected %s, found %s",
		expected,
		value.Kind))
}

func (value Value) IsEmpty() bool {
	return value.Kind == NoValue
}

func (value Value) AsToken() *TokenValue {
	if value.Kind != TokenKind {
		value.mismatch(TokenKind)
	}
	return value.Token
}

// AsText returns the token's lexeme.
func (value Value) AsText() string {
	return value.AsToken().Value
}

// AsNode returns the node, or nil for NoValue (optional productions).
func (value Value) AsNode() ast.Node {
	switch value.Kind {
	case NoValue:
		return nil
	case NodeKind:
		return value.Node
	}
	value.mismatch(NodeKind)
	return nil
}

// AsNodes returns the list, or nil for NoValue.
func (value Value) AsNodes() []ast.Node {
	switch value.Kind {
	case NoValue:
		return nil
	case NodeListKind:
		return value.Nodes
	}
	value.mismatch(NodeListKind)
	return nil
}

func (value Value) AsModifier() Modifier {
	if value.Kind != ModifierKind {
		value.mismatch(ModifierKind)
	}
	return value.Modifier
}

func (value Value) AsBinding() (*TokenValue, ast.Binding) {
	if value.Kind != BindingKind {
		value.mismatch(BindingKind)
	}
	return value.Token, value.Binding
}

// StartEnd returns the value's source span.  ok is false when the value has
// no position (NoValue, modifiers, empty lists).
func (value Value) StartEnd() (parseutil.StartEndPos, bool) {
	switch value.Kind {
	case TokenKind, BindingKind:
		if value.Token != nil {
			return value.Token.StartEndPos, true
		}
	case NodeKind:
		return parseutil.NewStartEndPos(value.Node.Loc(), value.Node.End()), true
	case NodeListKind:
		if len(value.Nodes) > 0 {
			last := value.Nodes[len(value.Nodes)-1]
			return parseutil.NewStartEndPos(value.Nodes[0].Loc(), last.End()), true
		}
	}
	return parseutil.StartEndPos{}, false
}

// Span returns the source span covering all positioned values.
func Span(values ...Value) parseutil.StartEndPos {
	var start, end parseutil.StartEndPos
	found := false
	for _, value := range values {
		pos, ok := value.StartEnd()
		if !ok {
			continue
		}
		if !found {
			start = pos
			found = true
		}
		end = pos
	}
	if !found {
		return parseutil.StartEndPos{}
	}
	return parseutil.NewStartEndPos(start.Loc(), end.End())
}
