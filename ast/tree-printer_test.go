package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTreeStringKeepsFormatVerbs(t *testing.T) {
	tree := TreeString(
		&Newline{
			Statement: &StringLiteral{Value: "100%d %s"},
		},
		"")

	assert.Contains(t, tree, "[Newline:")
	assert.Contains(t, tree, "Statement=")
	assert.Contains(t, tree, `[StringLiteral: Value="100%d %s"]`)
	assert.NotContains(t, tree, "%!")
}

func TestTreeStringNestedLabels(t *testing.T) {
	tree := TreeString(
		&Array{
			Elements: []Node{
				&IntegerLiteral{Value: 1},
				&SymbolLiteral{Name: "a%v"},
			},
		},
		"")

	assert.Contains(t, tree, "Element0=[IntegerLiteral: Value=1]")
	assert.Contains(t, tree, "Element1=[SymbolLiteral: Name=a%v]")
	assert.NotContains(t, tree, "%!")
}
