package lr

import (
	"testing"

	"github.com/pattyshack/gt/parseutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pattyshack/garnet/ast"
)

func TestValueAccessors(t *testing.T) {
	token := &TokenValue{SymbolId: FirstNamedToken, Value: "foo"}
	assert.Equal(t, token, TokenVal(token).AsToken())
	assert.Equal(t, "foo", TokenVal(token).AsText())

	node := &ast.IntegerLiteral{Value: 1}
	assert.Equal(t, ast.Node(node), NodeVal(node).AsNode())

	nodes := []ast.Node{node}
	assert.Equal(t, nodes, NodesVal(nodes).AsNodes())

	assert.Equal(t, Modifier(2), ModifierVal(2).AsModifier())

	binding := ast.Binding{Depth: 1, Slot: 3}
	bindingToken, gotBinding := BindingVal(token, binding).AsBinding()
	assert.Equal(t, token, bindingToken)
	assert.Equal(t, binding, gotBinding)
}

func TestNoValueIsOptional(t *testing.T) {
	value := NodeVal(nil)
	require.True(t, value.IsEmpty())
	assert.Nil(t, value.AsNode())
	assert.Nil(t, value.AsNodes())

	_, ok := value.StartEnd()
	assert.False(t, ok)
	assert.Equal(t, parseutil.StartEndPos{}, Span(value, ModifierVal(1)))
}

func TestValueKindMismatchPanics(t *testing.T) {
	assert.PanicsWithValue(
		t,
		"semantic value kind mismatch: expected token, found node",
		func() {
			NodeVal(&ast.NilLiteral{}).AsToken()
		})

	assert.PanicsWithValue(
		t,
		"semantic value kind mismatch: expected node list, found modifier",
		func() {
			ModifierVal(0).AsNodes()
		})

	assert.Panics(t, func() { Value{}.AsBinding() })
}

func TestSymbolIdString(t *testing.T) {
	assert.Equal(t, "$end", EndOfInput.String())
	assert.Equal(t, "error", ErrorToken.String())
	assert.Equal(t, "'+'", SymbolId('+').String())
	assert.Equal(t, "'\\n'", SymbolId('\n').String())
	assert.Equal(t, "token(300)", SymbolId(300).String())
}
