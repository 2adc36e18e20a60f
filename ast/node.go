package ast

import (
	"github.com/pattyshack/gt/parseutil"
)

type Node interface {
	parseutil.Locatable
	Walk(Visitor)
}

type Visitor interface {
	Enter(Node)
	Exit(Node)
}

type Validator interface {
	Validate(*parseutil.Emitter)
}

// Storage classifies where a variable lives.  Reads and writes of the same
// identifier always report the same storage.
type Storage string

const (
	LocalStorage    = Storage("local")
	InstanceStorage = Storage("instance")
	ClassStorage    = Storage("class")
	GlobalStorage   = Storage("global")
	ConstantStorage = Storage("constant")
)

// Variable is implemented by every variable read and every variable write.
type Variable interface {
	Node
	VariableName() string
	Storage() Storage
}

// Assignable is a write target whose value may be attached after the target
// is built (multiple assignment targets are built before the right hand side
// is parsed).
type Assignable interface {
	Node
	AssignedValue() Node
	SetAssignedValue(Node)
}

// Binding is a resolved local variable location: the number of scope frames
// to walk outward and the slot index within that frame.
type Binding struct {
	Depth int
	Slot  int
}

func walk(visitor Visitor, nodes ...Node) {
	for _, node := range nodes {
		if node != nil {
			node.Walk(visitor)
		}
	}
}

type Root struct {
	parseutil.StartEndPos

	Locals []string
	Body   *Block
}

var _ Node = &Root{}

func (root *Root) Walk(visitor Visitor) {
	visitor.Enter(root)
	walk(visitor, root.Body)
	visitor.Exit(root)
}

// Sequence of statements.
type Block struct {
	parseutil.StartEndPos

	Statements []Node
}

var _ Node = &Block{}

func (block *Block) Walk(visitor Visitor) {
	visitor.Enter(block)
	walk(visitor, block.Statements...)
	visitor.Exit(block)
}

// Last returns the final statement with its newline marker stripped, or nil.
func (block *Block) Last() Node {
	if len(block.Statements) == 0 {
		return nil
	}
	return Unwrap(block.Statements[len(block.Statements)-1])
}

// Newline marks a statement boundary.
type Newline struct {
	parseutil.StartEndPos

	Statement Node
}

var _ Node = &Newline{}

func (newline *Newline) Walk(visitor Visitor) {
	visitor.Enter(newline)
	walk(visitor, newline.Statement)
	visitor.Exit(newline)
}

// Unwrap strips newline markers.
func Unwrap(node Node) Node {
	for {
		newline, ok := node.(*Newline)
		if !ok {
			return node
		}
		node = newline.Statement
	}
}

type Begin struct {
	parseutil.StartEndPos

	Body Node
}

var _ Node = &Begin{}

func (begin *Begin) Walk(visitor Visitor) {
	visitor.Enter(begin)
	walk(visitor, begin.Body)
	visitor.Exit(begin)
}
