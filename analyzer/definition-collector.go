package analyzer

import (
	"fmt"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/warning"
)

// DefinitionCollector indexes method definitions across roots by qualified
// name ("Outer::Inner#method" for instance methods, "Outer.method" for
// singleton methods).  Redefinitions are legal, but warned about.
type DefinitionCollector struct {
	warnings    warning.Sink
	definitions map[string]ast.Node

	bodyStack
}

func NewDefinitionCollector(warnings warning.Sink) *DefinitionCollector {
	if warnings == nil {
		warnings = warning.Discard{}
	}

	return &DefinitionCollector{
		warnings:    warnings,
		definitions: map[string]ast.Node{},
	}
}

func (collector *DefinitionCollector) Definitions() map[string]ast.Node {
	return collector.definitions
}

func (collector *DefinitionCollector) Process(roots []*ast.Root) {
	for _, root := range roots {
		collector.reset()
		root.Walk(collector)
	}
}

func (collector *DefinitionCollector) define(name string, def ast.Node) {
	prev, ok := collector.definitions[name]
	if ok {
		collector.warnings.Warning(
			warning.MethodRedefined,
			parseutil.NewStartEndPos(def.Loc(), def.End()),
			fmt.Sprintf(
				"method redefined; discarding old %s (previously defined at %s)",
				name,
				prev.Loc()))
	}

	collector.definitions[name] = def
}

func (collector *DefinitionCollector) Enter(n ast.Node) {
	switch node := n.(type) {
	case *ast.MethodDefinition:
		collector.define(collector.namespace()+"#"+node.Name, node)
	case *ast.SingletonMethodDefinition:
		collector.define(collector.namespace()+"."+node.Name, node)
	}

	collector.enter(n)
}

func (collector *DefinitionCollector) Exit(n ast.Node) {
	collector.exit(n)
}
