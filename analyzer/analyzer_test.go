package analyzer

import (
	"sort"
	"testing"

	"github.com/pattyshack/gt/parseutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser"
	"github.com/pattyshack/garnet/parser/warning"
)

func parseRoot(t *testing.T, source string) *ast.Root {
	emitter := &parseutil.Emitter{}
	root, err := parser.ParseBytes(
		[]byte(source),
		emitter,
		parser.Config{FileName: "test.rb"})
	require.NoError(t, err)
	require.False(t, emitter.HasErrors(), emitter.Errors())
	return root
}

func errorMessages(emitter *parseutil.Emitter) []string {
	result := []string{}
	for _, err := range emitter.Errors() {
		result = append(result, err.Error())
	}
	return result
}

func TestJumpValidation(t *testing.T) {
	testCases := []struct {
		name   string
		source string
		errors []string
	}{
		{
			name:   "break in loop",
			source: "while true\n  break\nend",
		},
		{
			name:   "next in block",
			source: "foo { next }",
		},
		{
			name:   "break at top level",
			source: "break",
			errors: []string{"Invalid break"},
		},
		{
			name:   "next in method body",
			source: "def f\n  next\nend",
			errors: []string{"Invalid next"},
		},
		{
			name:   "loop does not extend into method body",
			source: "while true\n  def f\n    break\n  end\nend",
			errors: []string{"Invalid break"},
		},
		{
			name:   "loop inside method body",
			source: "def f\n  until x\n    next\n  end\nend",
		},
		{
			name:   "break in class body",
			source: "class A\n  break\nend",
			errors: []string{"Invalid break"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			root := parseRoot(t, testCase.source)

			emitter := &parseutil.Emitter{}
			ValidateJumps(emitter).Process(root)

			messages := errorMessages(emitter)
			require.Len(t, messages, len(testCase.errors))
			for idx, expected := range testCase.errors {
				assert.Contains(t, messages[idx], expected)
			}
		})
	}
}

func TestDefinitionCollector(t *testing.T) {
	first := parseRoot(
		t,
		"class A\n  def f\n  end\n  def self.g\n  end\nend\ndef h\nend\n")
	second := parseRoot(
		t,
		"module M\n  class B\n    def f\n    end\n  end\nend\nclass A\n  def f\n  end\nend\n")

	warnings := warning.NewCollector()
	collector := NewDefinitionCollector(warnings)
	collector.Process([]*ast.Root{first, second})

	names := []string{}
	for name := range collector.Definitions() {
		names = append(names, name)
	}
	sort.Strings(names)

	assert.Equal(t, []string{"A#f", "A.g", "M::B#f", "Object#h"}, names)

	redefinitions := warnings.Warnings()
	require.Len(t, redefinitions, 1)
	assert.Equal(t, warning.MethodRedefined, redefinitions[0].Id)
	assert.Contains(t, redefinitions[0].Message, "discarding old A#f")
}

func TestSingletonClassNamespace(t *testing.T) {
	root := parseRoot(
		t,
		"module M\n  class << self\n    def f\n    end\n  end\nend\n")

	collector := NewDefinitionCollector(nil)
	collector.Process([]*ast.Root{root})

	_, ok := collector.Definitions()["M::<singleton>#f"]
	assert.True(t, ok, collector.Definitions())
}

type recordingPass struct {
	emitter *parseutil.Emitter
	emit    bool
	ran     bool
}

func (pass *recordingPass) Process(root *ast.Root) {
	pass.ran = true
	if pass.emit {
		pass.emitter.Emit(root.Loc(), "failed")
	}
}

func TestRunPassesStopsBetweenGroups(t *testing.T) {
	root := parseRoot(t, "x = 1\n")
	emitter := &parseutil.Emitter{}

	first := &recordingPass{emitter: emitter, emit: true}
	sibling := &recordingPass{emitter: emitter}
	later := &recordingPass{emitter: emitter}

	runPasses(root, [][]Pass{{first, sibling}, {later}}, emitter.HasErrors)

	assert.True(t, first.ran)
	assert.True(t, sibling.ran)
	assert.False(t, later.ran)
}

func TestAnalyze(t *testing.T) {
	valid := parseRoot(t, "x = 1\nwhile x\n  x = nil\nend\n")
	invalid := parseRoot(t, "def f\n  break\nend\n")

	emitter := &parseutil.Emitter{}
	definitions := Analyze(
		[]*ast.Root{valid, invalid},
		emitter,
		warning.Discard{})

	messages := errorMessages(emitter)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "Invalid break")

	_, ok := definitions["Object#f"]
	assert.True(t, ok)
}

func TestSyntaxValidator(t *testing.T) {
	root := &ast.Root{
		Body: &ast.Block{
			Statements: []ast.Node{
				&ast.LocalVariable{
					Name:    "x",
					Binding: ast.Binding{Depth: 0, Slot: -1},
				},
			},
		},
	}

	emitter := &parseutil.Emitter{}
	ValidateAstSyntax(emitter).Process(root)

	messages := errorMessages(emitter)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "invalid binding (depth=0 slot=-1)")
}
