package ast

import (
	"github.com/pattyshack/gt/parseutil"
)

type ClassDefinition struct {
	parseutil.StartEndPos

	Name       string
	Superclass Node // optional
	Body       Node // optional
	Locals     []string
}

var _ Validator = &ClassDefinition{}

func (def *ClassDefinition) Walk(visitor Visitor) {
	visitor.Enter(def)
	walk(visitor, def.Superclass, def.Body)
	visitor.Exit(def)
}

func (def *ClassDefinition) Validate(emitter *parseutil.Emitter) {
	if def.Name == "" {
		emitter.Emit(def.Loc(), "empty class name")
	}
}

// class << receiver
type SingletonClassDefinition struct {
	parseutil.StartEndPos

	Receiver Node
	Body     Node // optional
	Locals   []string
}

func (def *SingletonClassDefinition) Walk(visitor Visitor) {
	visitor.Enter(def)
	walk(visitor, def.Receiver, def.Body)
	visitor.Exit(def)
}

type ModuleDefinition struct {
	parseutil.StartEndPos

	Name   string
	Body   Node // optional
	Locals []string
}

var _ Validator = &ModuleDefinition{}

func (def *ModuleDefinition) Walk(visitor Visitor) {
	visitor.Enter(def)
	walk(visitor, def.Body)
	visitor.Exit(def)
}

func (def *ModuleDefinition) Validate(emitter *parseutil.Emitter) {
	if def.Name == "" {
		emitter.Emit(def.Loc(), "empty module name")
	}
}

type MethodDefinition struct {
	parseutil.StartEndPos

	Name   string
	Params *Parameters
	Body   Node // optional
	Locals []string
}

var _ Validator = &MethodDefinition{}

func (def *MethodDefinition) Walk(visitor Visitor) {
	visitor.Enter(def)
	if def.Params != nil {
		def.Params.Walk(visitor)
	}
	walk(visitor, def.Body)
	visitor.Exit(def)
}

func (def *MethodDefinition) Validate(emitter *parseutil.Emitter) {
	if def.Name == "" {
		emitter.Emit(def.Loc(), "empty method name")
	}
	if def.Params == nil {
		emitter.Emit(def.Loc(), "method %s has no parameter list", def.Name)
	}
}

// def receiver.name
type SingletonMethodDefinition struct {
	parseutil.StartEndPos

	Receiver Node
	Name     string
	Params   *Parameters
	Body     Node // optional
	Locals   []string
}

var _ Validator = &SingletonMethodDefinition{}

func (def *SingletonMethodDefinition) Walk(visitor Visitor) {
	visitor.Enter(def)
	walk(visitor, def.Receiver)
	if def.Params != nil {
		def.Params.Walk(visitor)
	}
	walk(visitor, def.Body)
	visitor.Exit(def)
}

func (def *SingletonMethodDefinition) Validate(emitter *parseutil.Emitter) {
	if def.Name == "" {
		emitter.Emit(def.Loc(), "empty method name")
	}
	if def.Params == nil {
		emitter.Emit(def.Loc(), "method %s has no parameter list", def.Name)
	}
}
