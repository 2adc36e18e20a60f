package scope

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/lr"
	"github.com/pattyshack/garnet/parser/warning"
)

func ident(name string) *lr.TokenValue {
	return &lr.TokenValue{Value: name}
}

func newTestManager(dialect Dialect) (*Manager, *warning.Collector) {
	collector := warning.NewCollector()
	return NewManager(dialect, collector), collector
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		expected IdentifierKind
	}{
		{"x", LocalIdentifier},
		{"_foo", LocalIdentifier},
		{"Foo", ConstantIdentifier},
		{"@a", InstanceIdentifier},
		{"@@a", ClassVariableIdentifier},
		{"$a", GlobalIdentifier},
		{"self", PseudoVariable},
		{"__LINE__", PseudoVariable},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Classify(test.name))
		})
	}
}

func TestDeclareIsIdempotent(t *testing.T) {
	manager, _ := newTestManager(nil)

	assert.Equal(t, 0, manager.Declare("a"))
	assert.Equal(t, 1, manager.Declare("b"))
	assert.Equal(t, 0, manager.Declare("a"))
	assert.Equal(t, []string{"a", "b"}, manager.CurrentNames())
}

func TestResolveThroughNestedBlocks(t *testing.T) {
	manager, collector := newTestManager(Ruby19{})

	manager.Declare("other")
	manager.Declare("x")
	manager.PushBlockScope()
	manager.PushBlockScope()

	binding, ok := manager.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, ast.Binding{Depth: 2, Slot: 1}, binding)

	// Shadow x in the innermost block.
	slot, err := manager.DeclareShadowing(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, 0, slot)

	binding, ok = manager.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, ast.Binding{Depth: 0, Slot: 0}, binding)

	assert.Equal(
		t,
		[]string{"shadowing outer local variable - x"},
		collector.Messages())
}

func TestLocalFrameIsResolutionBoundary(t *testing.T) {
	manager, _ := newTestManager(nil)

	manager.Declare("outer")
	manager.EnterMethodBody()

	_, ok := manager.Resolve("outer")
	assert.False(t, ok)

	node, err := manager.DeclareReference(ident("outer"))
	require.NoError(t, err)
	assert.Equal(t, &ast.VariableCall{Name: "outer"}, node)

	manager.Declare("y")
	locals := manager.LeaveBody()
	assert.Equal(t, []string{"y"}, locals)

	_, ok = manager.Resolve("y")
	assert.False(t, ok)
	_, ok = manager.Resolve("outer")
	assert.True(t, ok)
}

func TestAssignableDeclaresInCurrentFrame(t *testing.T) {
	manager, _ := newTestManager(nil)

	manager.Declare("a")
	manager.PushBlockScope()

	// Existing outer local is reused.
	asg, err := manager.Assignable(ident("a"), nil)
	require.NoError(t, err)
	assert.Equal(t, ast.Binding{Depth: 1, Slot: 0}, asg.(*ast.LocalAssignment).Binding)

	// New local is declared in the block.
	asg, err = manager.Assignable(ident("b"), nil)
	require.NoError(t, err)
	assert.Equal(t, ast.Binding{Depth: 0, Slot: 0}, asg.(*ast.LocalAssignment).Binding)
	assert.Equal(t, []string{"b"}, manager.PopCurrentScope())

	_, ok := manager.Resolve("b")
	assert.False(t, ok)
}

func TestClassificationRoundTrip(t *testing.T) {
	value := &ast.IntegerLiteral{Value: 1}

	for _, name := range []string{"x", "CONST", "@ivar", "@@cvar", "$global"} {
		t.Run(name, func(t *testing.T) {
			manager, _ := newTestManager(nil)

			asg, err := manager.Assignable(ident(name), value)
			require.NoError(t, err)

			ref, err := manager.DeclareReference(ident(name))
			require.NoError(t, err)

			write, ok := asg.(ast.Variable)
			require.True(t, ok)
			read, ok := ref.(ast.Variable)
			require.True(t, ok)

			assert.Equal(t, name, write.VariableName())
			assert.Equal(t, name, read.VariableName())
			assert.Equal(t, write.Storage(), read.Storage())
			assert.Equal(t, value, asg.AssignedValue())

			if write.Storage() == ast.LocalStorage {
				assert.Equal(
					t,
					asg.(*ast.LocalAssignment).Binding,
					ref.(*ast.LocalVariable).Binding)
			}
		})
	}
}

func TestDynamicConstantAssignment(t *testing.T) {
	tests := []struct {
		name  string
		enter func(*Manager)
		fails bool
	}{
		{
			name:  "top level",
			enter: func(*Manager) {},
			fails: false,
		},
		{
			name:  "method body",
			enter: (*Manager).EnterMethodBody,
			fails: true,
		},
		{
			name:  "singleton method body",
			enter: (*Manager).EnterSingletonMethodBody,
			fails: true,
		},
		{
			name:  "singleton class body",
			enter: (*Manager).EnterSingletonClassBody,
			fails: false,
		},
		{
			name: "singleton class inside method",
			enter: func(manager *Manager) {
				manager.EnterMethodBody()
				manager.EnterSingletonClassBody()
			},
			fails: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			manager, _ := newTestManager(nil)
			test.enter(manager)

			asg, err := manager.Assignable(ident("X"), &ast.NilLiteral{})
			if test.fails {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "dynamic constant assignment")
				return
			}

			require.NoError(t, err)
			_, ok := asg.(*ast.ConstantDeclaration)
			assert.True(t, ok)
		})
	}
}

func TestClassVariableVariant(t *testing.T) {
	manager, _ := newTestManager(nil)

	asg, err := manager.Assignable(ident("@@a"), nil)
	require.NoError(t, err)
	_, ok := asg.(*ast.ClassVariableDeclaration)
	assert.True(t, ok)

	manager.EnterMethodBody()
	asg, err = manager.Assignable(ident("@@a"), nil)
	require.NoError(t, err)
	_, ok = asg.(*ast.ClassVariableAssignment)
	assert.True(t, ok)
}

func TestPseudoVariableAssignment(t *testing.T) {
	tests := map[string]string{
		"self":     "Can't change the value of self",
		"nil":      "Can't assign to nil",
		"true":     "Can't assign to true",
		"false":    "Can't assign to false",
		"__FILE__": "Can't assign to __FILE__",
		"__LINE__": "Can't assign to __LINE__",
	}

	for name, msg := range tests {
		t.Run(name, func(t *testing.T) {
			manager, _ := newTestManager(nil)
			_, err := manager.Assignable(ident(name), nil)
			require.Error(t, err)

			semanticErr, ok := err.(*SemanticError)
			require.True(t, ok)
			assert.Equal(t, msg, semanticErr.Message)
		})
	}
}

func TestPseudoVariableReference(t *testing.T) {
	manager, _ := newTestManager(nil)
	manager.FileName = "test.rb"

	node, err := manager.DeclareReference(ident("__FILE__"))
	require.NoError(t, err)
	assert.Equal(t, &ast.StringLiteral{Value: "test.rb"}, node)

	node, err = manager.DeclareReference(ident("self"))
	require.NoError(t, err)
	assert.Equal(t, &ast.Self{}, node)
}

func TestClassDefinitionInMethodBody(t *testing.T) {
	manager, _ := newTestManager(nil)

	require.NoError(t, manager.EnterClassBody(ident("Foo").StartEndPos))
	manager.EnterMethodBody()

	err := manager.EnterClassBody(ident("Bar").StartEndPos)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class definition in method body")

	err = manager.EnterModuleBody(ident("Baz").StartEndPos)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "module definition in method body")

	manager.LeaveBody()
	assert.False(t, manager.InDef())
	manager.LeaveBody()
	assert.Equal(t, 1, manager.Depth())
}

func TestFormalArguments(t *testing.T) {
	tests := []struct {
		name string
		err  string
	}{
		{"Foo", "formal argument cannot be a constant"},
		{"@a", "formal argument cannot be an instance variable"},
		{"$a", "formal argument cannot be a global variable"},
		{"@@a", "formal argument cannot be a class variable"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			manager, _ := newTestManager(nil)
			_, err := manager.DeclareArgument(ident(test.name))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.err)
		})
	}

	manager, _ := newTestManager(nil)
	manager.EnterMethodBody()
	slot, err := manager.DeclareArgument(ident("a"))
	require.NoError(t, err)
	assert.Equal(t, 0, slot)

	_, err = manager.DeclareArgument(ident("a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicated argument name")
}

func TestDialectBlockParameters(t *testing.T) {
	manager, collector := newTestManager(Ruby18{})
	manager.Declare("x")
	manager.PushBlockScope()

	node, err := manager.Dialect().BlockParameter(manager, ident("x"))
	require.NoError(t, err)
	assert.Equal(
		t,
		&ast.LocalAssignment{Name: "x", Binding: ast.Binding{Depth: 1, Slot: 0}},
		node)

	node, err = manager.Dialect().BlockParameter(manager, ident("@a"))
	require.NoError(t, err)
	assert.Equal(t, &ast.InstanceAssignment{Name: "@a"}, node)
	assert.Empty(t, collector.Warnings())

	manager, collector = newTestManager(Ruby19{})
	manager.Declare("x")
	manager.PushBlockScope()

	node, err = manager.Dialect().BlockParameter(manager, ident("x"))
	require.NoError(t, err)
	assert.Equal(t, &ast.Argument{Name: "x", Slot: 0}, node)
	assert.Len(t, collector.Warnings(), 1)

	_, err = manager.Dialect().BlockParameter(manager, ident("@a"))
	require.Error(t, err)
}

func TestCheckpointRestore(t *testing.T) {
	manager, _ := newTestManager(nil)
	manager.Declare("a")

	checkpoint := manager.Checkpoint()

	manager.Declare("b")
	manager.EnterMethodBody()
	manager.Declare("c")
	manager.PushBlockScope()
	manager.Declare("d")

	assert.True(t, manager.InDef())
	assert.Equal(t, 3, manager.Depth())

	manager.Restore(checkpoint)

	assert.False(t, manager.InDef())
	assert.Equal(t, 1, manager.Depth())
	assert.Equal(t, []string{"a"}, manager.CurrentNames())

	// Popped frames are restored as well.
	manager.PushBlockScope()
	manager.Declare("e")
	checkpoint = manager.Checkpoint()
	manager.PopCurrentScope()
	manager.Restore(checkpoint)
	assert.Equal(t, BlockFrame, manager.CurrentKind())
	assert.Equal(t, []string{"e"}, manager.CurrentNames())
}

func TestEvalScope(t *testing.T) {
	manager, _ := newTestManager(nil)
	manager.Declare("a")
	manager.Declare("b")

	exported := manager.Export()

	manager.Reset(exported)
	binding, ok := manager.Resolve("b")
	require.True(t, ok)
	assert.Equal(t, ast.Binding{Depth: 0, Slot: 1}, binding)

	manager.Reset(nil)
	if diff := cmp.Diff([]string{}, manager.TopLevelNames()); diff != "" {
		t.Errorf("unexpected top level names (-want +got):\n%s", diff)
	}
}
