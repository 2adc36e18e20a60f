package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pattyshack/garnet/config"
)

func TestPrintTokens(t *testing.T) {
	out := &bytes.Buffer{}
	err := printTokens(out, "test.rb", []byte("x = :sym\n"))
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, `tIDENTIFIER "x"`)
	assert.Contains(t, output, `tSYMBOL "sym"`)
}

func TestPrintTokensLexError(t *testing.T) {
	out := &bytes.Buffer{}
	err := printTokens(out, "test.rb", []byte("@"))
	assert.ErrorContains(t, err, "without identifiers")
}

func TestPrintTree(t *testing.T) {
	opts := &options{config: config.Default()}

	out := &bytes.Buffer{}
	numErrors := printTree(out, "test.rb", []byte("x = 1\n"), opts)
	assert.Equal(t, 0, numErrors)
	assert.Contains(t, out.String(), "[Root:")

	out.Reset()
	numErrors = printTree(out, "test.rb", []byte("break\n"), opts)
	assert.Equal(t, 1, numErrors)
	assert.Contains(t, out.String(), "Invalid break")

	out.Reset()
	numErrors = printTree(out, "test.rb", []byte("x = (1 +"), opts)
	assert.Equal(t, 2, numErrors)
	assert.NotContains(t, out.String(), "[Root:")
}
