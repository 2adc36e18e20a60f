// Package scope resolves identifiers while the tree is built.  The Manager
// tracks the chain of lexical frames (method local and block) and the
// method / singleton body context used to reject constructs such as dynamic
// constant assignment.
package scope

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/warning"
)

type FrameKind int

const (
	// Method, class, module and top level bodies.  Resolution never walks
	// past a local frame.
	LocalFrame = FrameKind(iota)

	// Block bodies.  Reads see through to the enclosing frame.
	BlockFrame
)

const noFrame = -1

type frame struct {
	kind      FrameKind
	names     []string
	enclosing int
}

type bodyContext struct {
	inDef    bool
	inSingle int
}

// EvalScope is a top level frame carried from one parse to the next (REPL
// and eval re-entry).
type EvalScope struct {
	Names []string
}

type Manager struct {
	FileName string

	frames  []frame
	current int

	inDef    bool
	inSingle int
	bodies   []bodyContext

	warnings warning.Sink
	dialect  Dialect

	// Undo log.  Checkpoint returns its length; Restore unwinds to it.
	undo []func()
}

func NewManager(dialect Dialect, warnings warning.Sink) *Manager {
	if dialect == nil {
		dialect = Ruby18{}
	}
	if warnings == nil {
		warnings = warning.Discard{}
	}

	manager := &Manager{
		dialect:  dialect,
		warnings: warnings,
	}
	manager.Reset(nil)
	return manager
}

func (manager *Manager) Dialect() Dialect {
	return manager.dialect
}

func (manager *Manager) Warnings() warning.Sink {
	return manager.warnings
}

// Reset clears all state and opens the top level frame, seeded with the
// eval scope's names when one is given.
func (manager *Manager) Reset(eval *EvalScope) {
	manager.frames = manager.frames[:0]
	manager.current = noFrame
	manager.inDef = false
	manager.inSingle = 0
	manager.bodies = manager.bodies[:0]
	manager.undo = manager.undo[:0]

	manager.PushLocalScope()
	if eval != nil {
		manager.frames[0].names = append(manager.frames[0].names, eval.Names...)
	}

	// The top level frame is never unwound.
	manager.undo = manager.undo[:0]
}

// Export returns the top level frame for a subsequent Reset.
func (manager *Manager) Export() *EvalScope {
	return &EvalScope{Names: manager.TopLevelNames()}
}

func (manager *Manager) TopLevelNames() []string {
	return append([]string{}, manager.frames[0].names...)
}

func (manager *Manager) InDef() bool {
	return manager.inDef
}

func (manager *Manager) InSingle() int {
	return manager.inSingle
}

// Depth returns the number of open frames.
func (manager *Manager) Depth() int {
	depth := 0
	for idx := manager.current; idx != noFrame; idx = manager.frames[idx].enclosing {
		depth++
	}
	return depth
}

func (manager *Manager) CurrentKind() FrameKind {
	return manager.frames[manager.current].kind
}

func (manager *Manager) CurrentNames() []string {
	return append([]string{}, manager.frames[manager.current].names...)
}

func (manager *Manager) pushFrame(kind FrameKind) {
	prev := manager.current
	manager.frames = append(manager.frames, frame{
		kind:      kind,
		enclosing: prev,
	})
	manager.current = len(manager.frames) - 1

	manager.undo = append(manager.undo, func() {
		manager.frames = manager.frames[:len(manager.frames)-1]
		manager.current = prev
	})
}

func (manager *Manager) PushLocalScope() {
	manager.pushFrame(LocalFrame)
}

func (manager *Manager) PushBlockScope() {
	manager.pushFrame(BlockFrame)
}

// PopCurrentScope closes the current frame and returns its names.  The
// frame stays in the arena.
func (manager *Manager) PopCurrentScope() []string {
	popped := manager.current
	if popped == noFrame || manager.frames[popped].enclosing == noFrame {
		panic("cannot pop the top level scope")
	}

	manager.current = manager.frames[popped].enclosing
	manager.undo = append(manager.undo, func() {
		manager.current = popped
	})

	return append([]string{}, manager.frames[popped].names...)
}

// Declare adds name to the current frame if absent and returns its slot.
func (manager *Manager) Declare(name string) int {
	current := &manager.frames[manager.current]
	for slot, existing := range current.names {
		if existing == name {
			return slot
		}
	}

	frameIdx := manager.current
	current.names = append(current.names, name)
	manager.undo = append(manager.undo, func() {
		names := manager.frames[frameIdx].names
		manager.frames[frameIdx].names = names[:len(names)-1]
	})
	return len(current.names) - 1
}

func (manager *Manager) lookup(frameIdx int, name string) (int, bool) {
	for slot, existing := range manager.frames[frameIdx].names {
		if existing == name {
			return slot, true
		}
	}
	return 0, false
}

// Resolve walks outward from the current frame, stopping at the nearest
// local frame.
func (manager *Manager) Resolve(name string) (ast.Binding, bool) {
	depth := 0
	for idx := manager.current; idx != noFrame; idx = manager.frames[idx].enclosing {
		slot, ok := manager.lookup(idx, name)
		if ok {
			return ast.Binding{Depth: depth, Slot: slot}, true
		}

		if manager.frames[idx].kind == LocalFrame {
			break
		}
		depth++
	}
	return ast.Binding{}, false
}

func (manager *Manager) IsLocal(name string) bool {
	_, ok := manager.Resolve(name)
	return ok
}

func (manager *Manager) enterBody(inDef bool, inSingle int) {
	saved := bodyContext{inDef: manager.inDef, inSingle: manager.inSingle}
	manager.bodies = append(manager.bodies, saved)
	manager.inDef = inDef
	manager.inSingle = inSingle

	manager.undo = append(manager.undo, func() {
		manager.bodies = manager.bodies[:len(manager.bodies)-1]
		manager.inDef = saved.inDef
		manager.inSingle = saved.inSingle
	})

	manager.PushLocalScope()
}

func (manager *Manager) EnterMethodBody() {
	manager.enterBody(true, manager.inSingle)
}

func (manager *Manager) EnterSingletonMethodBody() {
	manager.enterBody(manager.inDef, manager.inSingle+1)
}

func (manager *Manager) EnterClassBody(pos parseutil.StartEndPos) error {
	if manager.inDef || manager.inSingle > 0 {
		return NewSemanticError(pos, "class definition in method body")
	}
	manager.enterBody(false, 0)
	return nil
}

func (manager *Manager) EnterModuleBody(pos parseutil.StartEndPos) error {
	if manager.inDef || manager.inSingle > 0 {
		return NewSemanticError(pos, "module definition in method body")
	}
	manager.enterBody(false, 0)
	return nil
}

func (manager *Manager) EnterSingletonClassBody() {
	manager.enterBody(false, 0)
}

// LeaveBody closes the body opened by the matching Enter call and returns
// the body frame's names.
func (manager *Manager) LeaveBody() []string {
	names := manager.PopCurrentScope()

	top := len(manager.bodies) - 1
	saved := manager.bodies[top]
	inDef, inSingle := manager.inDef, manager.inSingle

	manager.bodies = manager.bodies[:top]
	manager.inDef = saved.inDef
	manager.inSingle = saved.inSingle

	manager.undo = append(manager.undo, func() {
		manager.bodies = append(manager.bodies, saved)
		manager.inDef = inDef
		manager.inSingle = inSingle
	})

	return names
}

// Checkpoint marks the current state for a later Restore.
func (manager *Manager) Checkpoint() int {
	return len(manager.undo)
}

// Restore unwinds every mutation made since checkpoint.
func (manager *Manager) Restore(checkpoint int) {
	for len(manager.undo) > checkpoint {
		last := len(manager.undo) - 1
		manager.undo[last]()
		manager.undo = manager.undo[:last]
	}
}
