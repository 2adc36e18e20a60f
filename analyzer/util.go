package analyzer

import (
	"strings"
	"sync"

	"github.com/pattyshack/garnet/ast"
)

const topLevelNamespace = "Object"

// Pass processes one parsed file.
type Pass interface {
	Process(*ast.Root)
}

// runPasses runs each group's passes concurrently on root, one group after
// another.  shouldStop (optional) is checked between groups.
func runPasses(
	root *ast.Root,
	groups [][]Pass,
	shouldStop func() bool,
) {
	for _, group := range groups {
		wg := sync.WaitGroup{}
		wg.Add(len(group))
		for _, pass := range group {
			go func(pass Pass) {
				pass.Process(root)
				wg.Done()
			}(pass)
		}

		wg.Wait()

		if shouldStop != nil && shouldStop() {
			return
		}
	}
}

// processRoots calls process on every root concurrently.
func processRoots(roots []*ast.Root, process func(int, *ast.Root)) {
	wg := sync.WaitGroup{}
	wg.Add(len(roots))
	for idx, root := range roots {
		go func(idx int, root *ast.Root) {
			process(idx, root)
			wg.Done()
		}(idx, root)
	}
	wg.Wait()
}

// bodyStack tracks the loops, blocks and definitions enclosing the node
// being visited.  Owners call enter / exit from their visitor callbacks.
type bodyStack struct {
	bodies []ast.Node
}

func isBody(node ast.Node) bool {
	switch node.(type) {
	case *ast.While,
		*ast.Until,
		*ast.Iter,
		*ast.MethodDefinition,
		*ast.SingletonMethodDefinition,
		*ast.ClassDefinition,
		*ast.SingletonClassDefinition,
		*ast.ModuleDefinition:

		return true
	}
	return false
}

func (stack *bodyStack) reset() {
	stack.bodies = stack.bodies[:0]
}

func (stack *bodyStack) enter(node ast.Node) {
	if isBody(node) {
		stack.bodies = append(stack.bodies, node)
	}
}

func (stack *bodyStack) exit(node ast.Node) {
	if isBody(node) {
		stack.bodies = stack.bodies[:len(stack.bodies)-1]
	}
}

// innermost returns the closest enclosing body, or nil at the top level.
func (stack *bodyStack) innermost() ast.Node {
	if len(stack.bodies) == 0 {
		return nil
	}
	return stack.bodies[len(stack.bodies)-1]
}

// namespace returns the "::" joined names of the enclosing class and module
// definitions.  Singleton class bodies contribute "<singleton>".
func (stack *bodyStack) namespace() string {
	names := []string{}
	for _, body := range stack.bodies {
		switch def := body.(type) {
		case *ast.ClassDefinition:
			names = append(names, def.Name)
		case *ast.ModuleDefinition:
			names = append(names, def.Name)
		case *ast.SingletonClassDefinition:
			names = append(names, "<singleton>")
		}
	}

	if len(names) == 0 {
		return topLevelNamespace
	}
	return strings.Join(names, "::")
}
