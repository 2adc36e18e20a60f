package lr

import (
	"fmt"
)

// Tables holds the packed LALR(1) automaton.  The layout follows the
// classic yacc encoding:
//
//   - Lhs[r] / Len[r]: left hand side nonterminal and right hand side length
//     of rule r.  Rule 0 is the augmented start rule and is never reduced.
//   - DefRed[s]: default reduction for state s, or 0 for none.
//   - SIndex[s] / RIndex[s]: base offsets of state s's shift / reduce rows.
//   - GIndex[n]: base offset of nonterminal n's goto row (indexed by state),
//     with DGoto[n] as the fallback target.
//   - Table / Check: packed row entries.  Table[base+i] is valid for row index
//     i only when Check[base+i] == i.  A base of 0 means the row is empty.
//
// Nonterminal 0 is the start symbol.  Tables are read-only and may be shared
// across concurrent parses.
type Tables struct {
	Lhs    []int
	Len    []int
	DefRed []int
	DGoto  []int
	SIndex []int
	RIndex []int
	GIndex []int
	Table  []int
	Check  []int

	// State entered once the start symbol has been reduced.
	Final int

	// Names[t] is token t's diagnostic name (empty for unused ids).
	Names []string

	// RuleNames[r] is the semantic action name bound to rule r.  Empty means
	// pass-through.
	RuleNames []string

	// Nonterminals[n] is nonterminal n's name.
	Nonterminals []string
}

type ActionType int

const (
	ErrorAction = ActionType(iota)
	ShiftAction
	ReduceAction
	DefaultReduceAction
)

func (t ActionType) String() string {
	switch t {
	case ErrorAction:
		return "error"
	case ShiftAction:
		return "shift"
	case ReduceAction:
		return "reduce"
	case DefaultReduceAction:
		return "default-reduce"
	}
	return fmt.Sprintf("ActionType(%d)", int(t))
}

type Action struct {
	Type ActionType

	// Next state for shifts, rule for reductions.
	Target int
}

func (tables *Tables) NumStates() int {
	return len(tables.DefRed)
}

func (tables *Tables) NumRules() int {
	return len(tables.Lhs)
}

func (tables *Tables) lookup(base int, index int) (int, bool) {
	if base == 0 {
		return 0, false
	}

	n := base + index
	if n < 0 || n >= len(tables.Check) || tables.Check[n] != index {
		return 0, false
	}
	return n, true
}

// Shift returns the state reached by shifting token from state.
func (tables *Tables) Shift(state int, token SymbolId) (int, bool) {
	n, ok := tables.lookup(tables.SIndex[state], int(token))
	if !ok {
		return 0, false
	}
	return tables.Table[n], true
}

// Reduce returns the rule reduced in state on lookahead token, ignoring the
// state's default reduction.
func (tables *Tables) Reduce(state int, token SymbolId) (int, bool) {
	n, ok := tables.lookup(tables.RIndex[state], int(token))
	if !ok {
		return 0, false
	}
	return tables.Table[n], true
}

// Action is the pure (state, lookahead) lookup used by the driver.  A state
// with a default reduction reduces regardless of the lookahead.
func (tables *Tables) Action(state int, token SymbolId) Action {
	rule := tables.DefRed[state]
	if rule != 0 {
		return Action{Type: DefaultReduceAction, Target: rule}
	}

	next, ok := tables.Shift(state, token)
	if ok {
		return Action{Type: ShiftAction, Target: next}
	}

	rule, ok = tables.Reduce(state, token)
	if ok {
		return Action{Type: ReduceAction, Target: rule}
	}

	return Action{Type: ErrorAction}
}

// Goto returns the state entered after reducing nonterminal lhs on top of
// state.
func (tables *Tables) Goto(state int, lhs int) int {
	n, ok := tables.lookup(tables.GIndex[lhs], state)
	if ok {
		return tables.Table[n]
	}
	return tables.DGoto[lhs]
}

// Expected lists the tokens (excluding the error pseudo-token) with an
// explicit shift or reduce entry in state.
func (tables *Tables) Expected(state int) []SymbolId {
	if state == tables.Final {
		return []SymbolId{EndOfInput}
	}

	result := []SymbolId{}
	for token := range tables.Names {
		id := SymbolId(token)
		if id == ErrorToken {
			continue
		}

		_, shift := tables.lookup(tables.SIndex[state], token)
		_, reduce := tables.lookup(tables.RIndex[state], token)
		if shift || reduce {
			result = append(result, id)
		}
	}
	return result
}

func (tables *Tables) TokenName(id SymbolId) string {
	if 0 <= int(id) && int(id) < len(tables.Names) && tables.Names[id] != "" {
		return tables.Names[id]
	}
	return id.String()
}

func (tables *Tables) RuleName(rule int) string {
	if 0 <= rule && rule < len(tables.RuleNames) && tables.RuleNames[rule] != "" {
		return tables.RuleNames[rule]
	}
	return fmt.Sprintf("rule%d", rule)
}

func (tables *Tables) NonterminalName(lhs int) string {
	if 0 <= lhs && lhs < len(tables.Nonterminals) {
		return tables.Nonterminals[lhs]
	}
	return fmt.Sprintf("nonterminal(%d)", lhs)
}
