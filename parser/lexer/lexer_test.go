package lexer

import (
	"io"
	"testing"

	"github.com/pattyshack/gt/parseutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pattyshack/garnet/parser/grammar"
	"github.com/pattyshack/garnet/parser/lr"
	"github.com/pattyshack/garnet/parser/warning"
)

type localSet map[string]bool

func (set localSet) IsLocal(name string) bool {
	return set[name]
}

func lex(t *testing.T, source string, locals Locals) []*lr.TokenValue {
	lexer := NewLexer(
		parseutil.NewBufferedByteLocationReaderFromSlice(
			"test.rb",
			[]byte(source)),
		locals)

	result := []*lr.TokenValue{}
	for {
		token, err := lexer.Next()
		if err == io.EOF {
			return result
		}
		require.NoError(t, err)
		result = append(result, token.(*lr.TokenValue))
	}
}

func ids(tokens []*lr.TokenValue) []lr.SymbolId {
	result := []lr.SymbolId{}
	for _, token := range tokens {
		result = append(result, token.SymbolId)
	}
	return result
}

func values(tokens []*lr.TokenValue) []string {
	result := []string{}
	for _, token := range tokens {
		result = append(result, token.Value)
	}
	return result
}

func TestBasicTokens(t *testing.T) {
	tokens := lex(t, "x = 1 + 2.5\n", nil)
	assert.Equal(
		t,
		[]lr.SymbolId{
			grammar.TIdentifier, '=', grammar.TInteger, '+', grammar.TFloat, '\n',
		},
		ids(tokens))
	assert.Equal(t, []string{"x", "=", "1", "+", "2.5", "\n"}, values(tokens))
}

func TestNewlineSuppression(t *testing.T) {
	testCases := []struct {
		name     string
		source   string
		expected []lr.SymbolId
	}{
		{
			name:   "blank lines and comments",
			source: "a\n\n  # comment\n\nb",
			expected: []lr.SymbolId{
				grammar.TIdentifier, '\n', grammar.TIdentifier,
			},
		},
		{
			name:   "after operator",
			source: "a +\n b",
			expected: []lr.SymbolId{
				grammar.TIdentifier, '+', grammar.TIdentifier,
			},
		},
		{
			name:   "line continuation",
			source: "a \\\n+ b",
			expected: []lr.SymbolId{
				grammar.TIdentifier, '+', grammar.TIdentifier,
			},
		},
		{
			name:   "inside array literal",
			source: "[\n1,\n2\n]",
			expected: []lr.SymbolId{
				grammar.TLBrack, grammar.TInteger, ',', grammar.TInteger, ']',
			},
		},
		{
			name:   "after semicolon",
			source: "a;\nb",
			expected: []lr.SymbolId{
				grammar.TIdentifier, ';', grammar.TIdentifier,
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, ids(lex(t, testCase.source, nil)))
		})
	}
}

func TestKeywords(t *testing.T) {
	tokens := lex(t, "if x then y end", nil)
	assert.Equal(
		t,
		[]lr.SymbolId{
			grammar.KIf, grammar.TIdentifier, grammar.KThen, grammar.TIdentifier,
			grammar.KEnd,
		},
		ids(tokens))

	tokens = lex(t, "y if x", nil)
	assert.Equal(
		t,
		[]lr.SymbolId{grammar.TIdentifier, grammar.KIfMod, grammar.TIdentifier},
		ids(tokens))

	tokens = lex(t, "return if x", nil)
	assert.Equal(
		t,
		[]lr.SymbolId{grammar.KReturn, grammar.KIfMod, grammar.TIdentifier},
		ids(tokens))

	// keywords after '.' are method names
	tokens = lex(t, "x.class", nil)
	assert.Equal(
		t,
		[]lr.SymbolId{grammar.TIdentifier, '.', grammar.TIdentifier},
		ids(tokens))
}

func TestLoopConditionDo(t *testing.T) {
	tokens := lex(t, "while x do y end", nil)
	assert.Equal(
		t,
		[]lr.SymbolId{
			grammar.KWhile, grammar.TIdentifier, grammar.KDoCond,
			grammar.TIdentifier, grammar.KEnd,
		},
		ids(tokens))

	tokens = lex(t, "while x\nfoo do end\nend", nil)
	assert.Equal(
		t,
		[]lr.SymbolId{
			grammar.KWhile, grammar.TIdentifier, '\n',
			grammar.TIdentifier, grammar.KDo, grammar.KEnd, '\n',
			grammar.KEnd,
		},
		ids(tokens))
}

func TestSpaceSensitiveTokens(t *testing.T) {
	testCases := []struct {
		name     string
		source   string
		locals   localSet
		expected []lr.SymbolId
	}{
		{
			name:     "method call index argument",
			source:   "foo [1]",
			expected: []lr.SymbolId{grammar.TIdentifier, grammar.TLBrack, grammar.TInteger, ']'},
		},
		{
			name:     "local variable index",
			source:   "foo [1]",
			locals:   localSet{"foo": true},
			expected: []lr.SymbolId{grammar.TIdentifier, '[', grammar.TInteger, ']'},
		},
		{
			name:     "index without space",
			source:   "foo[1]",
			expected: []lr.SymbolId{grammar.TIdentifier, '[', grammar.TInteger, ']'},
		},
		{
			name:     "negative argument",
			source:   "foo -1",
			expected: []lr.SymbolId{grammar.TIdentifier, grammar.TInteger},
		},
		{
			name:     "local subtraction",
			source:   "foo -1",
			locals:   localSet{"foo": true},
			expected: []lr.SymbolId{grammar.TIdentifier, '-', grammar.TInteger},
		},
		{
			name:     "binary minus with spaces",
			source:   "foo - 1",
			expected: []lr.SymbolId{grammar.TIdentifier, '-', grammar.TInteger},
		},
		{
			name:     "unary minus",
			source:   "-x",
			expected: []lr.SymbolId{grammar.TUMinus, grammar.TIdentifier},
		},
		{
			name:     "splat argument",
			source:   "foo *args",
			expected: []lr.SymbolId{grammar.TIdentifier, grammar.TStar, grammar.TIdentifier},
		},
		{
			name:     "multiplication",
			source:   "foo * args",
			expected: []lr.SymbolId{grammar.TIdentifier, '*', grammar.TIdentifier},
		},
		{
			name:     "call parens",
			source:   "foo(1)",
			expected: []lr.SymbolId{grammar.TIdentifier, '(', grammar.TInteger, ')'},
		},
		{
			name:     "grouped argument",
			source:   "foo (1)",
			expected: []lr.SymbolId{grammar.TIdentifier, grammar.TLParen, grammar.TInteger, ')'},
		},
		{
			name:     "block brace",
			source:   "foo { }",
			expected: []lr.SymbolId{grammar.TIdentifier, '{', '}'},
		},
		{
			name:     "hash brace",
			source:   "x = { }",
			expected: []lr.SymbolId{grammar.TIdentifier, '=', grammar.TLBrace, '}'},
		},
		{
			name:     "empty block parameters",
			source:   "foo { || }",
			expected: []lr.SymbolId{grammar.TIdentifier, '{', '|', '|', '}'},
		},
		{
			name:     "logical or",
			source:   "a || b",
			expected: []lr.SymbolId{grammar.TIdentifier, grammar.TOrOp, grammar.TIdentifier},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var locals Locals
			if testCase.locals != nil {
				locals = testCase.locals
			}
			assert.Equal(t, testCase.expected, ids(lex(t, testCase.source, locals)))
		})
	}
}

func TestOperators(t *testing.T) {
	tokens := lex(t, "a == b != c <= d >= e && f ** g => h", nil)
	assert.Equal(
		t,
		[]lr.SymbolId{
			grammar.TIdentifier, grammar.TEq,
			grammar.TIdentifier, grammar.TNeq,
			grammar.TIdentifier, grammar.TLeq,
			grammar.TIdentifier, grammar.TGeq,
			grammar.TIdentifier, grammar.TAndOp,
			grammar.TIdentifier, grammar.TPow,
			grammar.TIdentifier, grammar.TAssoc,
			grammar.TIdentifier,
		},
		ids(tokens))

	tokens = lex(t, "a += 1; b ||= 2; c &&= 3; d **= 4", nil)
	opAssigns := []string{}
	for _, token := range tokens {
		if token.SymbolId == grammar.TOpAsgn {
			opAssigns = append(opAssigns, token.Value)
		}
	}
	assert.Equal(t, []string{"+", "||", "&&", "**"}, opAssigns)
}

func TestVariablesAndSymbols(t *testing.T) {
	tokens := lex(t, "@a @@b $c $0 Foo :sym :empty? :@iv :+ :[]=", nil)
	assert.Equal(
		t,
		[]lr.SymbolId{
			grammar.TIvar, grammar.TCvar, grammar.TGvar, grammar.TGvar,
			grammar.TConstant, grammar.TSymbol, grammar.TSymbol, grammar.TSymbol,
			grammar.TSymbol, grammar.TSymbol,
		},
		ids(tokens))
	assert.Equal(
		t,
		[]string{
			"@a", "@@b", "$c", "$0", "Foo", "sym", "empty?", "@iv", "+", "[]=",
		},
		values(tokens))
}

func TestNumbers(t *testing.T) {
	tokens := lex(t, "1_000 0x1F 0b10 0d12 1e3 2.5e-1 3.times", nil)
	assert.Equal(
		t,
		[]string{"1_000", "0x1F", "0b10", "12", "1e3", "2.5e-1", "3", ".", "times"},
		values(tokens))
	assert.Equal(t, grammar.TFloat, tokens[4].SymbolId)
	assert.Equal(t, grammar.TInteger, tokens[6].SymbolId)
}

func TestStrings(t *testing.T) {
	tokens := lex(t, `"a\tb#{x}c" 'd\n\'e'`, nil)
	assert.Equal(
		t,
		[]lr.SymbolId{
			grammar.TStringBeg, grammar.TStringContent, grammar.TStringDBeg,
			grammar.TIdentifier, grammar.TStringDEnd, grammar.TStringContent,
			grammar.TStringEnd,
			grammar.TStringBeg, grammar.TStringContent, grammar.TStringEnd,
		},
		ids(tokens))
	assert.Equal(t, "a\tb", tokens[1].Value)
	assert.Equal(t, "c", tokens[5].Value)
	assert.Equal(t, `d\n'e`, tokens[8].Value)
}

func TestNestedInterpolation(t *testing.T) {
	tokens := lex(t, `"#{ [1].map { |v| "#{v}" } }"`, nil)
	assert.Equal(t, grammar.TStringBeg, tokens[0].SymbolId)
	assert.Equal(t, grammar.TStringEnd, tokens[len(tokens)-1].SymbolId)

	dends := 0
	for _, token := range tokens {
		if token.SymbolId == grammar.TStringDEnd {
			dends++
		}
	}
	assert.Equal(t, 2, dends)
}

func TestMethodNames(t *testing.T) {
	tokens := lex(t, "def self.value=(v) end", nil)
	assert.Equal(
		t,
		[]lr.SymbolId{
			grammar.KDef, grammar.KSelf, '.', grammar.TIdentifier, '(',
			grammar.TIdentifier, ')', grammar.KEnd,
		},
		ids(tokens))
	assert.Equal(t, "value=", tokens[3].Value)

	tokens = lex(t, "def empty? (x)\nend", nil)
	assert.Equal(
		t,
		[]lr.SymbolId{
			grammar.KDef, grammar.TIdentifier, '(', grammar.TIdentifier, ')',
			'\n', grammar.KEnd,
		},
		ids(tokens))
	assert.Equal(t, "empty?", tokens[1].Value)
}

func TestSingletonClass(t *testing.T) {
	tokens := lex(t, "class << self\nend", nil)
	assert.Equal(
		t,
		[]lr.SymbolId{
			grammar.KClass, grammar.TLShift, grammar.KSelf, '\n', grammar.KEnd,
		},
		ids(tokens))
}

func TestLexErrors(t *testing.T) {
	testCases := []struct {
		source string
		errMsg string
	}{
		{`"abc`, "unterminated string meets end of file"},
		{"@", "without identifiers"},
		{"a ` b", "Invalid char"},
		{"1_", "trailing `_' in number"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.source, func(t *testing.T) {
			lexer := NewLexer(
				parseutil.NewBufferedByteLocationReaderFromSlice(
					"test.rb",
					[]byte(testCase.source)),
				nil)

			var err error
			for err == nil {
				_, err = lexer.Next()
			}
			require.NotEqual(t, io.EOF, err)
			assert.ErrorContains(t, err, testCase.errMsg)
		})
	}
}

func TestAmbiguousArgumentWarnings(t *testing.T) {
	warnings := warning.NewCollector()
	lexer := NewLexer(
		parseutil.NewBufferedByteLocationReaderFromSlice(
			"test.rb",
			[]byte("foo -1\nbar *args\nbaz - 1\n-2")),
		nil)
	lexer.Warnings = warnings

	for {
		_, err := lexer.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}

	assert.Equal(
		t,
		[]string{
			"ambiguous first argument",
			"`*' interpreted as argument prefix",
		},
		warnings.Messages())
}
