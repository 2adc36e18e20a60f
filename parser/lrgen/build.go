package lrgen

import (
	"fmt"
	"io"
	"strings"

	"github.com/pattyshack/garnet/parser/lr"
)

type Result struct {
	Tables *lr.Tables

	// Unresolved conflicts, in state order.
	Conflicts []Conflict

	// Rules which can never be reduced (usually a conflict casualty).
	UnreducedRules []string

	auto    *automaton
	actions []stateActions
}

// Build compiles grammar into packed LALR(1) tables.  Conflicts are resolved
// using the precedence declarations when possible; the rest are reported in
// Result.Conflicts and resolved in favor of shifting / the earlier rule.
func Build(grammar *Grammar) (*Result, error) {
	symbols, err := newSymbolTable(grammar)
	if err != nil {
		return nil, err
	}

	auto := &automaton{symbolTable: symbols}
	auto.computeFirstSets()
	auto.buildStates()
	auto.propagateFollowSets()

	actions, conflicts := auto.computeActions()

	result := &Result{
		Conflicts: conflicts,
		auto:      auto,
		actions:   actions,
	}
	for _, ruleIdx := range auto.unreducedRules(actions) {
		result.UnreducedRules = append(
			result.UnreducedRules,
			auto.rules[ruleIdx].text)
	}

	result.Tables = auto.encode(actions)
	return result, nil
}

func (auto *automaton) finalState() int {
	for _, trans := range auto.states[0].transitions {
		if !trans.symbol.terminal && trans.symbol.index == 0 {
			return trans.target.id
		}
	}
	panic("should never happen")
}

func (auto *automaton) encode(actions []stateActions) *lr.Tables {
	numStates := len(auto.states)
	numNonterminals := len(auto.nonterminals)

	tables := &lr.Tables{
		Lhs:          make([]int, len(auto.rules)),
		Len:          make([]int, len(auto.rules)),
		DefRed:       make([]int, numStates),
		DGoto:        make([]int, numNonterminals),
		SIndex:       make([]int, numStates),
		RIndex:       make([]int, numStates),
		GIndex:       make([]int, numNonterminals),
		Final:        auto.finalState(),
		RuleNames:    make([]string, len(auto.rules)),
		Nonterminals: append([]string{}, auto.nonterminals...),
	}

	for idx, r := range auto.rules {
		tables.Lhs[idx] = r.lhs
		tables.Len[idx] = len(r.rhs)
		tables.RuleNames[idx] = r.action
	}

	maxId := lr.ErrorToken
	for _, term := range auto.terminals {
		if term.id > maxId {
			maxId = term.id
		}
	}
	tables.Names = make([]string, int(maxId)+1)
	for _, term := range auto.terminals {
		tables.Names[term.id] = term.name
	}

	rows := []*row{}
	newRow := func() *row {
		r := &row{id: len(rows)}
		rows = append(rows, r)
		return r
	}

	shiftRows := make([]*row, numStates)
	reduceRows := make([]*row, numStates)
	for idx, acts := range actions {
		tables.DefRed[idx] = acts.defRed

		shiftRows[idx] = newRow()
		reduceRows[idx] = newRow()
		for term, c := range acts.cells {
			id := int(auto.terminals[term].id)
			if c.shift >= 0 {
				shiftRows[idx].entries = append(
					shiftRows[idx].entries,
					entry{index: id, value: c.shift})
			}
			if c.reduce >= 0 && acts.defRed == 0 {
				reduceRows[idx].entries = append(
					reduceRows[idx].entries,
					entry{index: id, value: c.reduce})
			}
		}
	}

	gotoRows := make([]*row, numNonterminals)
	for nt := 0; nt < numNonterminals; nt++ {
		counts := map[int]int{}
		for _, acts := range actions {
			target, ok := acts.gotos[nt]
			if ok {
				counts[target]++
			}
		}

		defaultTarget := 0
		best := 0
		for target, count := range counts {
			if count > best || (count == best && target < defaultTarget) {
				defaultTarget = target
				best = count
			}
		}
		tables.DGoto[nt] = defaultTarget

		gotoRows[nt] = newRow()
		for stateIdx, acts := range actions {
			target, ok := acts.gotos[nt]
			if ok && target != defaultTarget {
				gotoRows[nt].entries = append(
					gotoRows[nt].entries,
					entry{index: stateIdx, value: target})
			}
		}
	}

	tables.Table, tables.Check = pack(rows)

	for idx := range auto.states {
		tables.SIndex[idx] = shiftRows[idx].base
		tables.RIndex[idx] = reduceRows[idx].base
	}
	for nt := range gotoRows {
		tables.GIndex[nt] = gotoRows[nt].base
	}

	return tables
}

func (auto *automaton) itemString(it item) string {
	r := auto.rules[it.rule]
	lhs := "$accept"
	if r.lhs >= 0 {
		lhs = auto.nonterminals[r.lhs]
	}

	parts := []string{lhs + ":"}
	for idx, sym := range r.rhs {
		if idx == it.dot {
			parts = append(parts, ".")
		}
		parts = append(parts, auto.symbolName(sym))
	}
	if it.dot == len(r.rhs) {
		parts = append(parts, ".")
	}
	return strings.Join(parts, " ")
}

func (auto *automaton) symbolName(sym symbol) string {
	if sym.terminal {
		return auto.terminals[sym.index].name
	}
	return auto.nonterminals[sym.index]
}

// WriteReport writes a yacc style (y.output) description of the automaton.
func (result *Result) WriteReport(out io.Writer) error {
	auto := result.auto

	for idx, r := range auto.rules {
		_, err := fmt.Fprintf(out, "rule %d: %s", idx, r.text)
		if err != nil {
			return err
		}
		if r.action != "" {
			fmt.Fprintf(out, "  {%s}", r.action)
		}
		fmt.Fprintln(out)
	}

	for _, st := range auto.states {
		fmt.Fprintf(out, "\nstate %d\n", st.id)
		for _, cfg := range st.basis {
			fmt.Fprintf(out, "    %s\n", auto.itemString(cfg.item))
		}
		fmt.Fprintln(out)

		acts := result.actions[st.id]
		for term, c := range acts.cells {
			name := auto.terminals[term].name
			switch {
			case c.shift >= 0:
				fmt.Fprintf(out, "    %-20s shift %d\n", name, c.shift)
			case c.reduce >= 0 && acts.defRed == 0:
				fmt.Fprintf(out, "    %-20s reduce %d\n", name, c.reduce)
			case c.explicitError:
				fmt.Fprintf(out, "    %-20s error (nonassociative)\n", name)
			}
		}
		if acts.defRed != 0 {
			fmt.Fprintf(out, "    %-20s reduce %d\n", "$default", acts.defRed)
		}

		for _, trans := range st.transitions {
			if !trans.symbol.terminal {
				fmt.Fprintf(
					out,
					"    %-20s goto %d\n",
					auto.nonterminals[trans.symbol.index],
					trans.target.id)
			}
		}
	}

	for _, conflict := range result.Conflicts {
		_, err := fmt.Fprintln(out, conflict)
		if err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(
		out,
		"\n%d terminals, %d nonterminals, %d rules, %d states\n",
		len(auto.terminals),
		len(auto.nonterminals),
		len(auto.rules),
		len(auto.states))
	return err
}
