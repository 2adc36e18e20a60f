package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/pattyshack/garnet/config"
)

func diagnose(t *testing.T, source string, cfg config.Config) []protocol.Diagnostic {
	return Diagnose([]byte(source), cfg.ParserConfig("test.rb"), cfg.Analyze)
}

func TestCleanSource(t *testing.T) {
	diagnostics := diagnose(t, "x = 1\nputs x\n", config.Default())
	assert.Empty(t, diagnostics)
}

func TestRecoveredSyntaxErrorDiagnostic(t *testing.T) {
	diagnostics := diagnose(t, "x = 1 + )\ny = 2\n", config.Default())
	require.Len(t, diagnostics, 1)

	diagnostic := diagnostics[0]
	require.NotNil(t, diagnostic.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diagnostic.Severity)
	assert.Contains(t, diagnostic.Message, "syntax error, unexpected ')'")
	require.NotNil(t, diagnostic.Source)
	assert.Equal(t, "garnet", *diagnostic.Source)
}

func TestDiagnosticRange(t *testing.T) {
	testCases := []struct {
		name   string
		source string
		start  protocol.Position
		end    protocol.Position
	}{
		{
			name:   "mid line token",
			source: "x = 1 + )\ny = 2\n",
			start:  protocol.Position{Line: 0, Character: 8},
			end:    protocol.Position{Line: 0, Character: 9},
		},
		{
			name:   "first column token",
			source: "x = 1\n)\ny = 2\n",
			start:  protocol.Position{Line: 1, Character: 0},
			end:    protocol.Position{Line: 1, Character: 1},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			diagnostics := diagnose(t, testCase.source, config.Default())
			require.Len(t, diagnostics, 1)
			assert.Contains(t, diagnostics[0].Message, "unexpected ')'")
			assert.Equal(t, testCase.start, diagnostics[0].Range.Start)
			assert.Equal(t, testCase.end, diagnostics[0].Range.End)
		})
	}
}

func TestSemanticErrorDiagnostic(t *testing.T) {
	diagnostics := diagnose(t, "def f\n  X = 1\nend\n", config.Default())
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "dynamic constant assignment", diagnostics[0].Message)
}

func TestWarningAndAnalyzerDiagnostics(t *testing.T) {
	cfg := config.Default()
	cfg.Dialect = "1.9"

	diagnostics := diagnose(
		t,
		"x = 1\nfoo { |x| x }\nbreak\n",
		cfg)
	require.Len(t, diagnostics, 2)

	assert.Contains(t, diagnostics[0].Message, "Invalid break")
	assert.Equal(t, protocol.DiagnosticSeverityError, *diagnostics[0].Severity)

	assert.Equal(t, "shadowing outer local variable - x", diagnostics[1].Message)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diagnostics[1].Severity)

	cfg.Analyze = false
	diagnostics = diagnose(t, "break\n", cfg)
	assert.Empty(t, diagnostics)
}

func TestUriToPath(t *testing.T) {
	assert.Equal(t, "/tmp/a b.rb", uriToPath("file:///tmp/a%20b.rb"))
	assert.Equal(t, "untitled:1", uriToPath("untitled:1"))
}
