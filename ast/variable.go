package ast

import (
	"github.com/pattyshack/gt/parseutil"
)

type LocalVariable struct {
	parseutil.StartEndPos

	Name string
	Binding
}

var _ Variable = &LocalVariable{}
var _ Validator = &LocalVariable{}

func (LocalVariable) Storage() Storage        { return LocalStorage }
func (v *LocalVariable) VariableName() string { return v.Name }
func (v *LocalVariable) Walk(visitor Visitor) {
	visitor.Enter(v)
	visitor.Exit(v)
}
func (v *LocalVariable) Validate(emitter *parseutil.Emitter) {
	validateBinding(emitter, v.Loc(), v.Name, v.Binding)
}

type LocalAssignment struct {
	parseutil.StartEndPos

	Name string
	Binding

	Value Node // nil while used as a multiple assignment target
}

var _ Variable = &LocalAssignment{}
var _ Assignable = &LocalAssignment{}
var _ Validator = &LocalAssignment{}

func (LocalAssignment) Storage() Storage             { return LocalStorage }
func (v *LocalAssignment) VariableName() string      { return v.Name }
func (v *LocalAssignment) AssignedValue() Node       { return v.Value }
func (v *LocalAssignment) SetAssignedValue(val Node) { v.Value = val }

func (v *LocalAssignment) Walk(visitor Visitor) {
	visitor.Enter(v)
	walk(visitor, v.Value)
	visitor.Exit(v)
}

func (v *LocalAssignment) Validate(emitter *parseutil.Emitter) {
	validateBinding(emitter, v.Loc(), v.Name, v.Binding)
}

func validateBinding(
	emitter *parseutil.Emitter,
	loc parseutil.Location,
	name string,
	binding Binding,
) {
	if name == "" {
		emitter.Emit(loc, "empty local variable name")
	}
	if binding.Depth < 0 || binding.Slot < 0 {
		emitter.Emit(
			loc,
			"invalid binding (depth=%d slot=%d) for local variable %s",
			binding.Depth,
			binding.Slot,
			name)
	}
}

type InstanceVariable struct {
	parseutil.StartEndPos

	Name string
}

func (InstanceVariable) Storage() Storage        { return InstanceStorage }
func (v *InstanceVariable) VariableName() string { return v.Name }
func (v *InstanceVariable) Walk(visitor Visitor) {
	visitor.Enter(v)
	visitor.Exit(v)
}

type InstanceAssignment struct {
	parseutil.StartEndPos

	Name  string
	Value Node
}

func (InstanceAssignment) Storage() Storage             { return InstanceStorage }
func (v *InstanceAssignment) VariableName() string      { return v.Name }
func (v *InstanceAssignment) AssignedValue() Node       { return v.Value }
func (v *InstanceAssignment) SetAssignedValue(val Node) { v.Value = val }

func (v *InstanceAssignment) Walk(visitor Visitor) {
	visitor.Enter(v)
	walk(visitor, v.Value)
	visitor.Exit(v)
}

type ClassVariable struct {
	parseutil.StartEndPos

	Name string
}

func (ClassVariable) Storage() Storage        { return ClassStorage }
func (v *ClassVariable) VariableName() string { return v.Name }
func (v *ClassVariable) Walk(visitor Visitor) {
	visitor.Enter(v)
	visitor.Exit(v)
}

// Class variable write from within a method body.
type ClassVariableAssignment struct {
	parseutil.StartEndPos

	Name  string
	Value Node
}

func (ClassVariableAssignment) Storage() Storage             { return ClassStorage }
func (v *ClassVariableAssignment) VariableName() string      { return v.Name }
func (v *ClassVariableAssignment) AssignedValue() Node       { return v.Value }
func (v *ClassVariableAssignment) SetAssignedValue(val Node) { v.Value = val }

func (v *ClassVariableAssignment) Walk(visitor Visitor) {
	visitor.Enter(v)
	walk(visitor, v.Value)
	visitor.Exit(v)
}

// Class variable write from a class body (or top level).
type ClassVariableDeclaration struct {
	parseutil.StartEndPos

	Name  string
	Value Node
}

func (ClassVariableDeclaration) Storage() Storage             { return ClassStorage }
func (v *ClassVariableDeclaration) VariableName() string      { return v.Name }
func (v *ClassVariableDeclaration) AssignedValue() Node       { return v.Value }
func (v *ClassVariableDeclaration) SetAssignedValue(val Node) { v.Value = val }

func (v *ClassVariableDeclaration) Walk(visitor Visitor) {
	visitor.Enter(v)
	walk(visitor, v.Value)
	visitor.Exit(v)
}

type GlobalVariable struct {
	parseutil.StartEndPos

	Name string
}

func (GlobalVariable) Storage() Storage        { return GlobalStorage }
func (v *GlobalVariable) VariableName() string { return v.Name }
func (v *GlobalVariable) Walk(visitor Visitor) {
	visitor.Enter(v)
	visitor.Exit(v)
}

type GlobalAssignment struct {
	parseutil.StartEndPos

	Name  string
	Value Node
}

func (GlobalAssignment) Storage() Storage             { return GlobalStorage }
func (v *GlobalAssignment) VariableName() string      { return v.Name }
func (v *GlobalAssignment) AssignedValue() Node       { return v.Value }
func (v *GlobalAssignment) SetAssignedValue(val Node) { v.Value = val }

func (v *GlobalAssignment) Walk(visitor Visitor) {
	visitor.Enter(v)
	walk(visitor, v.Value)
	visitor.Exit(v)
}

type Constant struct {
	parseutil.StartEndPos

	Name string
}

func (Constant) Storage() Storage        { return ConstantStorage }
func (v *Constant) VariableName() string { return v.Name }
func (v *Constant) Walk(visitor Visitor) {
	visitor.Enter(v)
	visitor.Exit(v)
}

type ConstantDeclaration struct {
	parseutil.StartEndPos

	Name  string
	Value Node
}

func (ConstantDeclaration) Storage() Storage             { return ConstantStorage }
func (v *ConstantDeclaration) VariableName() string      { return v.Name }
func (v *ConstantDeclaration) AssignedValue() Node       { return v.Value }
func (v *ConstantDeclaration) SetAssignedValue(val Node) { v.Value = val }

func (v *ConstantDeclaration) Walk(visitor Visitor) {
	visitor.Enter(v)
	walk(visitor, v.Value)
	visitor.Exit(v)
}

// a, (b, c), *d = value
type MultipleAssignment struct {
	parseutil.StartEndPos

	Targets []Node // Assignable or nested *MultipleAssignment
	Splat   Node   // optional. Assignable or *Star
	Value   Node   // nil while nested
}

var _ Assignable = &MultipleAssignment{}

func (asg *MultipleAssignment) AssignedValue() Node       { return asg.Value }
func (asg *MultipleAssignment) SetAssignedValue(val Node) { asg.Value = val }

func (asg *MultipleAssignment) Walk(visitor Visitor) {
	visitor.Enter(asg)
	walk(visitor, asg.Targets...)
	walk(visitor, asg.Splat, asg.Value)
	visitor.Exit(asg)
}

// Anonymous splat target, e.g., "a, * = list".
type Star struct {
	parseutil.StartEndPos
}

func (star *Star) Walk(visitor Visitor) {
	visitor.Enter(star)
	visitor.Exit(star)
}

// x ||= value
type OpAssignOr struct {
	parseutil.StartEndPos

	Read  Node
	Write Assignable
}

func (asg *OpAssignOr) Walk(visitor Visitor) {
	visitor.Enter(asg)
	walk(visitor, asg.Read, asg.Write)
	visitor.Exit(asg)
}

// x &&= value
type OpAssignAnd struct {
	parseutil.StartEndPos

	Read  Node
	Write Assignable
}

func (asg *OpAssignAnd) Walk(visitor Visitor) {
	visitor.Enter(asg)
	walk(visitor, asg.Read, asg.Write)
	visitor.Exit(asg)
}
