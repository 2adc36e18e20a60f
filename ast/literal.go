package ast

import (
	"github.com/pattyshack/gt/parseutil"
)

type IntegerLiteral struct {
	parseutil.StartEndPos

	Value int64
}

func (lit *IntegerLiteral) Walk(visitor Visitor) {
	visitor.Enter(lit)
	visitor.Exit(lit)
}

type FloatLiteral struct {
	parseutil.StartEndPos

	Value float64
}

func (lit *FloatLiteral) Walk(visitor Visitor) {
	visitor.Enter(lit)
	visitor.Exit(lit)
}

// Static string fragment.
type StringLiteral struct {
	parseutil.StartEndPos

	Value string
}

func (lit *StringLiteral) Walk(visitor Visitor) {
	visitor.Enter(lit)
	visitor.Exit(lit)
}

// String built from static fragments and #{} segments.
type InterpolatedString struct {
	parseutil.StartEndPos

	Parts []Node
}

func (str *InterpolatedString) Walk(visitor Visitor) {
	visitor.Enter(str)
	walk(visitor, str.Parts...)
	visitor.Exit(str)
}

// A single #{...} segment.
type EvalString struct {
	parseutil.StartEndPos

	Body Node // nil for #{}
}

func (str *EvalString) Walk(visitor Visitor) {
	visitor.Enter(str)
	walk(visitor, str.Body)
	visitor.Exit(str)
}

type SymbolLiteral struct {
	parseutil.StartEndPos

	Name string
}

func (lit *SymbolLiteral) Walk(visitor Visitor) {
	visitor.Enter(lit)
	visitor.Exit(lit)
}

// Explicit nil keyword.
type NilLiteral struct {
	parseutil.StartEndPos
}

func (lit *NilLiteral) Walk(visitor Visitor) {
	visitor.Enter(lit)
	visitor.Exit(lit)
}

// Nil produced by an omitted expression, e.g., the value of "()" or the else
// branch of an if without else.  Each occurrence is a distinct node.
type ImplicitNil struct {
	parseutil.StartEndPos
}

func (lit *ImplicitNil) Walk(visitor Visitor) {
	visitor.Enter(lit)
	visitor.Exit(lit)
}

type TrueLiteral struct {
	parseutil.StartEndPos
}

func (lit *TrueLiteral) Walk(visitor Visitor) {
	visitor.Enter(lit)
	visitor.Exit(lit)
}

type FalseLiteral struct {
	parseutil.StartEndPos
}

func (lit *FalseLiteral) Walk(visitor Visitor) {
	visitor.Enter(lit)
	visitor.Exit(lit)
}

type Self struct {
	parseutil.StartEndPos
}

func (self *Self) Walk(visitor Visitor) {
	visitor.Enter(self)
	visitor.Exit(self)
}

// Array literal.  Also used as the positional argument list of calls.
type Array struct {
	parseutil.StartEndPos

	Elements []Node
}

func (array *Array) Walk(visitor Visitor) {
	visitor.Enter(array)
	walk(visitor, array.Elements...)
	visitor.Exit(array)
}

type Hash struct {
	parseutil.StartEndPos

	Pairs []*HashPair
}

func (hash *Hash) Walk(visitor Visitor) {
	visitor.Enter(hash)
	for _, pair := range hash.Pairs {
		pair.Walk(visitor)
	}
	visitor.Exit(hash)
}

type HashPair struct {
	parseutil.StartEndPos

	Key   Node
	Value Node
}

func (pair *HashPair) Walk(visitor Visitor) {
	visitor.Enter(pair)
	walk(visitor, pair.Key, pair.Value)
	visitor.Exit(pair)
}
