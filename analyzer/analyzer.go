package analyzer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/warning"
)

// Analyze runs the post-parse passes over the roots and returns the method
// definition index.  Each root is validated concurrently with its own
// emitter; the errors are then merged into emitter in root order.
func Analyze(
	roots []*ast.Root,
	emitter *parseutil.Emitter,
	warnings warning.Sink,
) map[string]ast.Node {
	rootEmitters := make([]*parseutil.Emitter, len(roots))

	processRoots(
		roots,
		func(idx int, root *ast.Root) {
			rootEmitter := &parseutil.Emitter{}
			rootEmitters[idx] = rootEmitter

			groups := [][]Pass{
				{
					ValidateAstSyntax(rootEmitter),
					ValidateJumps(rootEmitter),
				},
			}

			runPasses(root, groups, rootEmitter.HasErrors)
		})

	collector := NewDefinitionCollector(warnings)
	collector.Process(roots)

	for _, rootEmitter := range rootEmitters {
		emitter.EmitErrors(rootEmitter.Errors()...)
	}

	return collector.Definitions()
}
