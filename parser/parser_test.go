package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pattyshack/gt/parseutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/grammar"
	"github.com/pattyshack/garnet/parser/lr"
	"github.com/pattyshack/garnet/parser/scope"
	"github.com/pattyshack/garnet/parser/warning"
)

var ignorePos = cmpopts.IgnoreTypes(parseutil.StartEndPos{})

func parse(t *testing.T, source string, config Config) (*ast.Root, []error) {
	if config.FileName == "" {
		config.FileName = "test.rb"
	}

	emitter := &parseutil.Emitter{}
	root, err := ParseBytes([]byte(source), emitter, config)
	require.NoError(t, err)
	require.NotNil(t, root)
	return root, emitter.Errors()
}

func statements(root *ast.Root) []ast.Node {
	result := []ast.Node{}
	for _, stmt := range root.Body.Statements {
		result = append(result, ast.Unwrap(stmt))
	}
	return result
}

type localReferences struct {
	found []*ast.LocalVariable
}

func (refs *localReferences) Enter(node ast.Node) {
	local, ok := node.(*ast.LocalVariable)
	if ok {
		refs.found = append(refs.found, local)
	}
}

func (refs *localReferences) Exit(ast.Node) {}

func findLocals(node ast.Node) []*ast.LocalVariable {
	refs := &localReferences{}
	node.Walk(refs)
	return refs.found
}

func TestGrammarHasNoConflicts(t *testing.T) {
	result, err := grammar.Compiled()
	require.NoError(t, err)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.UnreducedRules)
}

func TestLocalAssignment(t *testing.T) {
	root, errs := parse(t, "x = 1", Config{})
	require.Empty(t, errs)

	expected := &ast.Root{
		Locals: []string{"x"},
		Body: &ast.Block{
			Statements: []ast.Node{
				&ast.Newline{
					Statement: &ast.LocalAssignment{
						Name:    "x",
						Binding: ast.Binding{Depth: 0, Slot: 0},
						Value:   &ast.IntegerLiteral{Value: 1},
					},
				},
			},
		},
	}

	assert.True(t, cmp.Equal(expected, root, ignorePos), cmp.Diff(expected, root, ignorePos))
}

func TestMethodDefinitionScope(t *testing.T) {
	root, errs := parse(t, "def f; y = 1; end\ny", Config{})
	require.Empty(t, errs)
	assert.Empty(t, root.Locals)

	stmts := statements(root)
	require.Len(t, stmts, 2)

	def, ok := stmts[0].(*ast.MethodDefinition)
	require.True(t, ok)
	assert.Equal(t, "f", def.Name)
	assert.Equal(t, []string{"y"}, def.Locals)

	body, ok := ast.Unwrap(def.Body).(*ast.LocalAssignment)
	require.True(t, ok)
	assert.Equal(t, ast.Binding{Depth: 0, Slot: 0}, body.Binding)

	// The trailing y is a method call, not the method's local.
	_, ok = stmts[1].(*ast.VariableCall)
	assert.True(t, ok)
}

func TestDynamicConstantAssignment(t *testing.T) {
	emitter := &parseutil.Emitter{}
	root, err := ParseBytes([]byte("def f; X = 1; end"), emitter, Config{})
	require.Nil(t, root)

	semanticErr, ok := err.(*scope.SemanticError)
	require.True(t, ok, err)
	assert.Equal(t, "dynamic constant assignment", semanticErr.Message)

	// Outside of method bodies, constants are assignable.
	root, errs := parse(t, "X = 1", Config{})
	require.Empty(t, errs)
	_, ok = statements(root)[0].(*ast.ConstantDeclaration)
	assert.True(t, ok)
}

func TestMultipleAssignmentWithSplat(t *testing.T) {
	root, errs := parse(t, "a, *b = [1,2,3]", Config{})
	require.Empty(t, errs)
	assert.Equal(t, []string{"a", "b"}, root.Locals)

	stmts := statements(root)
	require.Len(t, stmts, 1)

	expected := &ast.MultipleAssignment{
		Targets: []ast.Node{
			&ast.LocalAssignment{
				Name:    "a",
				Binding: ast.Binding{Depth: 0, Slot: 0},
			},
		},
		Splat: &ast.LocalAssignment{
			Name:    "b",
			Binding: ast.Binding{Depth: 0, Slot: 1},
		},
		Value: &ast.Array{
			Elements: []ast.Node{
				&ast.IntegerLiteral{Value: 1},
				&ast.IntegerLiteral{Value: 2},
				&ast.IntegerLiteral{Value: 3},
			},
		},
	}

	assert.True(
		t,
		cmp.Equal(expected, stmts[0], ignorePos),
		cmp.Diff(expected, stmts[0], ignorePos))
}

func TestRecoveredSyntaxError(t *testing.T) {
	root, errs := parse(t, "x = 1 + )\ny = 2\n", Config{})
	require.Len(t, errs, 1)

	syntaxErr, ok := errs[0].(*lr.SyntaxError)
	require.True(t, ok, errs[0])
	assert.Equal(t, "')'", syntaxErr.Found)
	assert.Contains(t, syntaxErr.Expected, "tINTEGER")
	assert.Contains(t, syntaxErr.Expected, "tIDENTIFIER")

	// x's declaration was unwound with the discarded frames.
	assert.Equal(t, []string{"y"}, root.Locals)

	stmts := statements(root)
	require.Len(t, stmts, 1)
	asg, ok := stmts[0].(*ast.LocalAssignment)
	require.True(t, ok)
	assert.Equal(t, "y", asg.Name)
	assert.Equal(t, ast.Binding{Depth: 0, Slot: 0}, asg.Binding)
}

func TestErrorsNotReportedUntilThreeTokensShifted(t *testing.T) {
	// The second ')' arrives after only one shifted token.
	root, errs := parse(t, "x = 1 + )\ny ) = 2\n", Config{})
	require.Len(t, errs, 1)
	assert.Equal(t, "')'", errs[0].(*lr.SyntaxError).Found)
	assert.NotNil(t, root)

	// Three shifted tokens (y = 2) end panic mode.
	root, errs = parse(t, "x = 1 + )\ny = 2\nz = )\nw = 3\n", Config{})
	require.Len(t, errs, 2)
	assert.NotNil(t, root)
}

func TestRecoveryDiscardsEnd(t *testing.T) {
	// Resynchronizing inside the method body discards the method's end, so
	// the constant assignment is still parsed inside the body.
	emitter := &parseutil.Emitter{}
	root, err := ParseBytes(
		[]byte("def f\n  1 + )\nend\nX = 1\n"),
		emitter,
		Config{})
	assert.Nil(t, root)

	semanticErr, ok := err.(*scope.SemanticError)
	require.True(t, ok, err)
	assert.Equal(t, "dynamic constant assignment", semanticErr.Message)

	errs := emitter.Errors()
	require.Len(t, errs, 1)
	syntaxErr, ok := errs[0].(*lr.SyntaxError)
	require.True(t, ok, errs[0])
	assert.Equal(t, "')'", syntaxErr.Found)
}

func TestIrrecoverableSyntaxError(t *testing.T) {
	emitter := &parseutil.Emitter{}
	root, err := ParseBytes([]byte("x = (1 +"), emitter, Config{})
	assert.Nil(t, root)

	_, ok := err.(*lr.IrrecoverableSyntaxError)
	assert.True(t, ok, err)
	assert.Len(t, emitter.Errors(), 1)
}

func TestLexErrorAbortsParse(t *testing.T) {
	emitter := &parseutil.Emitter{}
	root, err := ParseBytes([]byte("x = \"abc"), emitter, Config{})
	assert.Nil(t, root)
	assert.ErrorContains(t, err, "unterminated string meets end of file")
}

func TestBlockResolvesOuterLocal(t *testing.T) {
	root, errs := parse(t, "x = 1\nfoo { |v| x }", Config{})
	require.Empty(t, errs)

	refs := findLocals(root)
	require.Len(t, refs, 1)
	assert.Equal(t, "x", refs[0].Name)
	assert.Equal(t, ast.Binding{Depth: 1, Slot: 0}, refs[0].Binding)
}

func TestRuby19BlockParameterShadowing(t *testing.T) {
	warnings := warning.NewCollector()
	root, errs := parse(
		t,
		"x = 1\nfoo { |x| x }",
		Config{
			Dialect:  scope.Ruby19{},
			Warnings: warnings,
		})
	require.Empty(t, errs)

	assert.Equal(
		t,
		[]string{"shadowing outer local variable - x"},
		warnings.Messages())

	refs := findLocals(root)
	require.Len(t, refs, 1)
	assert.Equal(t, ast.Binding{Depth: 0, Slot: 0}, refs[0].Binding)
}

func TestEvalScope(t *testing.T) {
	root, errs := parse(
		t,
		"z",
		Config{
			EvalScope: &scope.EvalScope{Names: []string{"z"}},
		})
	require.Empty(t, errs)
	assert.Equal(t, []string{"z"}, root.Locals)

	stmts := statements(root)
	require.Len(t, stmts, 1)
	local, ok := stmts[0].(*ast.LocalVariable)
	require.True(t, ok)
	assert.Equal(t, ast.Binding{Depth: 0, Slot: 0}, local.Binding)
}

func TestParseIsReentrant(t *testing.T) {
	for i := 0; i < 2; i++ {
		root, errs := parse(t, "class Foo\n  def bar(a, b)\n    a + b\n  end\nend\n", Config{})
		require.Empty(t, errs)
		assert.Empty(t, root.Locals)

		stmts := statements(root)
		require.Len(t, stmts, 1)
		class, ok := stmts[0].(*ast.ClassDefinition)
		require.True(t, ok)
		assert.Equal(t, "Foo", class.Name)
	}
}
