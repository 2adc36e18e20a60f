package ast

import (
	"github.com/pattyshack/gt/parseutil"
)

// receiver.name(args) { block }
type Call struct {
	parseutil.StartEndPos

	Receiver Node
	Name     string
	Args     Node // optional. *Array, *Splat, *ArgsCat, *ArgsPush or *BlockPass
	Block    Node // optional. *Iter
}

var _ Validator = &Call{}

func (call *Call) Walk(visitor Visitor) {
	visitor.Enter(call)
	walk(visitor, call.Receiver, call.Args, call.Block)
	visitor.Exit(call)
}

func (call *Call) Validate(emitter *parseutil.Emitter) {
	if call.Name == "" {
		emitter.Emit(call.Loc(), "empty method name")
	}
}

// name(args) { block }, receiver is implicitly self.
type FunctionCall struct {
	parseutil.StartEndPos

	Name  string
	Args  Node // optional
	Block Node // optional. *Iter
}

var _ Validator = &FunctionCall{}

func (call *FunctionCall) Walk(visitor Visitor) {
	visitor.Enter(call)
	walk(visitor, call.Args, call.Block)
	visitor.Exit(call)
}

func (call *FunctionCall) Validate(emitter *parseutil.Emitter) {
	if call.Name == "" {
		emitter.Emit(call.Loc(), "empty method name")
	}
}

// Bare identifier which is not a known local variable.
type VariableCall struct {
	parseutil.StartEndPos

	Name string
}

func (call *VariableCall) Walk(visitor Visitor) {
	visitor.Enter(call)
	visitor.Exit(call)
}

// receiver.name = value, or receiver[args] = value (Name is "[]=")
type AttributeAssignment struct {
	parseutil.StartEndPos

	Receiver Node
	Name     string
	Args     Node // optional
	Value    Node
}

var _ Assignable = &AttributeAssignment{}

func (asg *AttributeAssignment) AssignedValue() Node       { return asg.Value }
func (asg *AttributeAssignment) SetAssignedValue(val Node) { asg.Value = val }

func (asg *AttributeAssignment) Walk(visitor Visitor) {
	visitor.Enter(asg)
	walk(visitor, asg.Receiver, asg.Args, asg.Value)
	visitor.Exit(asg)
}

// *value
type Splat struct {
	parseutil.StartEndPos

	Value Node
}

func (splat *Splat) Walk(visitor Visitor) {
	visitor.Enter(splat)
	walk(visitor, splat.Value)
	visitor.Exit(splat)
}

// Argument list concatenation: head, *tail
type ArgsCat struct {
	parseutil.StartEndPos

	Head Node
	Tail Node
}

func (cat *ArgsCat) Walk(visitor Visitor) {
	visitor.Enter(cat)
	walk(visitor, cat.Head, cat.Tail)
	visitor.Exit(cat)
}

// Argument list push: head (which contains a splat), value
type ArgsPush struct {
	parseutil.StartEndPos

	Head  Node
	Value Node
}

func (push *ArgsPush) Walk(visitor Visitor) {
	visitor.Enter(push)
	walk(visitor, push.Head, push.Value)
	visitor.Exit(push)
}

// Positional arguments followed by &body.
type BlockPass struct {
	parseutil.StartEndPos

	Args Node // optional
	Body Node
}

func (pass *BlockPass) Walk(visitor Visitor) {
	visitor.Enter(pass)
	walk(visitor, pass.Args, pass.Body)
	visitor.Exit(pass)
}

// Literal block attached to a call.
type Iter struct {
	parseutil.StartEndPos

	Params *Parameters // optional
	Body   Node        // optional
	Locals []string
}

func (iter *Iter) Walk(visitor Visitor) {
	visitor.Enter(iter)
	if iter.Params != nil {
		iter.Params.Walk(visitor)
	}
	walk(visitor, iter.Body)
	visitor.Exit(iter)
}

type Parameters struct {
	parseutil.StartEndPos

	// *Argument, or (for dialects where block parameters are assignments)
	// any Assignable.
	Required []Node

	Rest  Node      // optional. *Argument or Assignable
	Block *Argument // optional
}

var _ Validator = &Parameters{}

func (params *Parameters) Walk(visitor Visitor) {
	visitor.Enter(params)
	walk(visitor, params.Required...)
	walk(visitor, params.Rest)
	if params.Block != nil {
		params.Block.Walk(visitor)
	}
	visitor.Exit(params)
}

func (params *Parameters) Validate(emitter *parseutil.Emitter) {
	names := map[string]struct{}{}
	check := func(node Node) {
		arg, ok := node.(*Argument)
		if !ok || arg.Name == "" {
			return
		}
		_, ok = names[arg.Name]
		if ok {
			emitter.Emit(arg.Loc(), "duplicated argument name (%s)", arg.Name)
		}
		names[arg.Name] = struct{}{}
	}

	for _, param := range params.Required {
		check(param)
	}
	check(params.Rest)
	if params.Block != nil {
		check(params.Block)
	}
}

// Formal parameter bound to a slot of the enclosing scope frame.  The name
// of an anonymous rest parameter is empty and its slot is -1.
type Argument struct {
	parseutil.StartEndPos

	Name string
	Slot int
}

func (arg *Argument) Walk(visitor Visitor) {
	visitor.Enter(arg)
	visitor.Exit(arg)
}
