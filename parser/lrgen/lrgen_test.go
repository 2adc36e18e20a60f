package lrgen

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pattyshack/gt/parseutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/lr"
)

const (
	numToken = lr.FirstNamedToken + iota
	negToken
)

func calculatorGrammar() *Grammar {
	return &Grammar{
		Start: "input",
		Terminals: []Terminal{
			{Name: "NUM", Id: numToken},
			{Name: "NEG", Id: negToken},
		},
		Precedence: []Precedence{
			{NonAssoc, []string{"'<'"}},
			{LeftAssoc, []string{"'+'", "'-'"}},
			{LeftAssoc, []string{"'*'"}},
			{RightAssoc, []string{"'^'"}},
			{RightAssoc, []string{"NEG"}},
		},
		Rules: []Rule{
			{Lhs: "input", Rhs: "lines", Action: "Lines"},
			{Lhs: "lines", Rhs: ""},
			{Lhs: "lines", Rhs: "lines expr '\\n'", Action: "Line"},
			{Lhs: "lines", Rhs: "lines error '\\n'", Action: "ErrorLine"},
			{Lhs: "expr", Rhs: "expr '+' expr", Action: "Add"},
			{Lhs: "expr", Rhs: "expr '-' expr", Action: "Sub"},
			{Lhs: "expr", Rhs: "expr '*' expr", Action: "Mul"},
			{Lhs: "expr", Rhs: "expr '^' expr", Action: "Pow"},
			{Lhs: "expr", Rhs: "expr '<' expr", Action: "Less"},
			{Lhs: "expr", Rhs: "'-' expr", Prec: "NEG", Action: "Neg"},
			{Lhs: "expr", Rhs: "'(' expr ')'"},
			{Lhs: "expr", Rhs: "NUM", Action: "Num"},
		},
	}
}

type sliceLexer struct {
	tokens []lr.Token
}

func (lexer *sliceLexer) Next() (lr.Token, error) {
	if len(lexer.tokens) == 0 {
		return nil, io.EOF
	}
	token := lexer.tokens[0]
	lexer.tokens = lexer.tokens[1:]
	return token, nil
}

func (lexer *sliceLexer) CurrentLocation() parseutil.Location {
	return parseutil.Location{}
}

// tokenize splits a compact expression.  Digits are single digit numbers.
func tokenize(input string) *sliceLexer {
	lexer := &sliceLexer{}
	for _, char := range input {
		if char == ' ' {
			continue
		}

		token := &lr.TokenValue{SymbolId: lr.SymbolId(char), Value: string(char)}
		if '0' <= char && char <= '9' {
			token.SymbolId = numToken
		}
		lexer.tokens = append(lexer.tokens, token)
	}
	return lexer
}

// calculator evaluates lines into a list of integer literals.
type calculator struct {
	tables *lr.Tables
}

func (calc *calculator) Reduce(rule int, args []lr.Value) (lr.Value, error) {
	num := func(idx int) int64 {
		return args[idx].AsNode().(*ast.IntegerLiteral).Value
	}
	result := func(value int64) (lr.Value, error) {
		return lr.NodeVal(&ast.IntegerLiteral{Value: value}), nil
	}

	switch calc.tables.RuleNames[rule] {
	case "":
		if len(args) == 0 {
			return lr.Value{}, nil
		}
		if len(args) == 3 { // parenthesized
			return args[1], nil
		}
		return args[0], nil
	case "Lines":
		return args[0], nil
	case "Line":
		return lr.NodesVal(append(args[0].AsNodes(), args[1].AsNode())), nil
	case "ErrorLine":
		return lr.NodesVal(append(args[0].AsNodes(), &ast.NilLiteral{})), nil
	case "Add":
		return result(num(0) + num(2))
	case "Sub":
		return result(num(0) - num(2))
	case "Mul":
		return result(num(0) * num(2))
	case "Pow":
		value := int64(1)
		for i := int64(0); i < num(2); i++ {
			value *= num(0)
		}
		return result(value)
	case "Less":
		if num(0) < num(2) {
			return result(1)
		}
		return result(0)
	case "Neg":
		return result(-num(1))
	case "Num":
		var value int64
		_, err := fmt.Sscanf(args[0].AsText(), "%d", &value)
		if err != nil {
			return lr.Value{}, err
		}
		return result(value)
	}
	return lr.Value{}, fmt.Errorf("unknown action %s", calc.tables.RuleNames[rule])
}

func buildCalculator(t *testing.T) *Result {
	result, err := Build(calculatorGrammar())
	require.NoError(t, err)
	return result
}

func evaluate(
	t *testing.T,
	result *Result,
	input string,
) (
	[]int64,
	*parseutil.Emitter,
	error,
) {
	emitter := &parseutil.Emitter{}
	tables := result.Tables
	value, err := lr.Parse(
		tokenize(input),
		tables,
		&calculator{tables: tables},
		emitter)
	if err != nil {
		return nil, emitter, err
	}

	results := []int64{}
	for _, node := range value.AsNodes() {
		lit, ok := node.(*ast.IntegerLiteral)
		if ok {
			results = append(results, lit.Value)
		} else {
			results = append(results, -999) // error line
		}
	}
	return results, emitter, nil
}

func TestNoConflicts(t *testing.T) {
	result := buildCalculator(t)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.UnreducedRules)
}

func TestTableShape(t *testing.T) {
	tables := buildCalculator(t).Tables

	assert.Equal(t, -1, tables.Lhs[0])
	assert.Equal(t, 1, tables.Len[0])
	assert.Equal(t, "input", tables.Nonterminals[0])
	assert.Equal(t, len(tables.Table), len(tables.Check))
	assert.Equal(t, int(negToken)+1, len(tables.Names))
	assert.Equal(t, "$end", tables.Names[0])
	assert.Equal(t, "error", tables.Names[lr.ErrorToken])
	assert.Equal(t, "'+'", tables.Names['+'])
	assert.Equal(t, "NUM", tables.Names[numToken])

	bases := map[int]bool{}
	for _, indices := range [][]int{tables.SIndex, tables.RIndex, tables.GIndex} {
		for _, base := range indices {
			if base == 0 {
				continue
			}
			assert.False(t, bases[base], "duplicate base %d", base)
			bases[base] = true
		}
	}

	assert.Equal(t, []lr.SymbolId{lr.EndOfInput}, tables.Expected(tables.Final))
}

func TestDeterministic(t *testing.T) {
	first := buildCalculator(t)
	second := buildCalculator(t)
	if diff := cmp.Diff(first.Tables, second.Tables); diff != "" {
		t.Errorf("tables differ between builds (-first +second):\n%s", diff)
	}
}

func TestEvaluate(t *testing.T) {
	result := buildCalculator(t)

	tests := []struct {
		name     string
		input    string
		expected []int64
		errors   []string
	}{
		{
			name:     "empty",
			input:    "",
			expected: []int64{},
		},
		{
			name:     "precedence",
			input:    "1+2*3\n(1+2)*3\n",
			expected: []int64{7, 9},
		},
		{
			name:     "left associative",
			input:    "9-3-2\n",
			expected: []int64{4},
		},
		{
			name:     "right associative",
			input:    "2^3^2\n",
			expected: []int64{512},
		},
		{
			name:     "prec override",
			input:    "-2*3\n-(2+3)\n",
			expected: []int64{-6, -5},
		},
		{
			name:     "nonassoc",
			input:    "1<2<3\n4\n",
			expected: []int64{-999, 4},
			errors:   []string{"unexpected '<'"},
		},
		{
			name:     "recovery",
			input:    "1+\n2*)3\n5\n",
			expected: []int64{-999, -999, 5},
			errors:   []string{"unexpected '\\n'", "unexpected ')'"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			values, emitter, err := evaluate(t, result, test.input)
			require.NoError(t, err)

			if diff := cmp.Diff(test.expected, values); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}

			errs := emitter.Errors()
			require.Len(t, errs, len(test.errors))
			for idx, msg := range test.errors {
				assert.Contains(t, errs[idx].Error(), msg)
			}
		})
	}
}

func TestIrrecoverableAtEndOfInput(t *testing.T) {
	_, _, err := evaluate(t, buildCalculator(t), "1+")
	require.Error(t, err)

	irrecoverable, ok := err.(*lr.IrrecoverableSyntaxError)
	require.True(t, ok)
	assert.Equal(
		t,
		"irrecoverable syntax error at end-of-file",
		irrecoverable.Message)
	require.NotNil(t, irrecoverable.Cause)
	assert.Equal(t, "$end", irrecoverable.Cause.Found)
}

func TestStartStateDefaultReduces(t *testing.T) {
	tables := buildCalculator(t).Tables

	// lines is nullable and nothing else is possible in state 0.
	action := tables.Action(0, numToken)
	assert.Equal(t, lr.DefaultReduceAction, action.Type)
	assert.Equal(t, "", tables.RuleNames[action.Target])
	assert.Equal(t, "lines", tables.NonterminalName(tables.Lhs[action.Target]))
}

func TestReport(t *testing.T) {
	buffer := &bytes.Buffer{}
	require.NoError(t, buildCalculator(t).WriteReport(buffer))
	assert.Contains(t, buffer.String(), "$accept: . input")
	assert.Contains(t, buffer.String(), "rule 5: expr: expr '+' expr  {Add}")
}

func TestGrammarErrors(t *testing.T) {
	tests := []struct {
		name    string
		grammar *Grammar
		err     string
	}{
		{
			name: "undefined symbol",
			grammar: &Grammar{
				Start: "a",
				Rules: []Rule{{Lhs: "a", Rhs: "b"}},
			},
			err: "undefined symbol b",
		},
		{
			name:    "missing rules",
			grammar: &Grammar{Start: "a"},
			err:     "nonterminal a has no rules",
		},
		{
			name: "reserved id",
			grammar: &Grammar{
				Start:     "a",
				Terminals: []Terminal{{Name: "X", Id: 'x'}},
				Rules:     []Rule{{Lhs: "a", Rhs: "X"}},
			},
			err: "id 120 is reserved",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Build(test.grammar)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.err)
		})
	}
}

func TestUnresolvedConflict(t *testing.T) {
	result, err := Build(&Grammar{
		Start:     "e",
		Terminals: []Terminal{{Name: "X", Id: lr.FirstNamedToken}},
		Rules: []Rule{
			{Lhs: "e", Rhs: "e '+' e"},
			{Lhs: "e", Rhs: "X"},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Conflicts)
	assert.Equal(t, ShiftReduce, result.Conflicts[0].Kind)
	assert.Equal(t, "'+'", result.Conflicts[0].Token)
}
