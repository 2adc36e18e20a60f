package grammar

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pattyshack/garnet/parser/lr"
)

func TestCompiled(t *testing.T) {
	result, err := Compiled()
	require.NoError(t, err)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.UnreducedRules)

	tables, err := Tables()
	require.NoError(t, err)
	assert.Equal(t, result.Tables.NumRules(), tables.NumRules())
	assert.Equal(t, "ToProgram", tables.RuleNames[1])
}

func TestWriteTablesSource(t *testing.T) {
	tables := &lr.Tables{
		Lhs:          []int{0, 0},
		Len:          []int{1, 1},
		DefRed:       []int{0, 1},
		DGoto:        []int{1},
		SIndex:       []int{0, 0},
		RIndex:       []int{0, 0},
		GIndex:       []int{0},
		Table:        []int{0},
		Check:        []int{-1},
		Final:        1,
		Names:        []string{"$end", "", "\"q\""},
		RuleNames:    []string{"", "ToProgram"},
		Nonterminals: []string{"program"},
	}

	buffer := &bytes.Buffer{}
	require.NoError(t, WriteTablesSource(buffer, tables))

	source := buffer.String()
	assert.Contains(t, source, "package grammar")
	assert.Contains(t, source, "\"github.com/pattyshack/garnet/parser/lr\"")
	assert.Contains(t, source, "precompiled = &lr.Tables{")
	assert.Regexp(t, `Check: +\[\]int\{`, source)
	assert.Contains(t, source, "-1,")
	assert.Regexp(t, `Final: +1,`, source)
	assert.Contains(t, source, `"\"q\"",`)
	assert.Contains(t, source, `"ToProgram",`)
}

func TestPrecompiledTablesMatchGrammar(t *testing.T) {
	if precompiled == nil {
		t.Skip("tables_gen.go has not been generated")
	}

	result, err := Compiled()
	require.NoError(t, err)

	assert.True(
		t,
		cmp.Equal(result.Tables, precompiled, cmpopts.EquateEmpty()),
		cmp.Diff(result.Tables, precompiled, cmpopts.EquateEmpty()))
}
