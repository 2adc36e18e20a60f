// Package lrgen compiles a context free grammar with operator precedence
// declarations into packed LALR(1) tables (see lr.Tables).  The construction
// follows the classic lemon / yacc approach: LR(0) item sets, spontaneous
// lookaheads generated during closure, propagation links between configs and
// a follow set fixpoint.
package lrgen

import (
	"fmt"
	"strings"

	"github.com/pattyshack/garnet/parser/lr"
)

type Associativity int

const (
	NonAssoc = Associativity(iota)
	LeftAssoc
	RightAssoc
)

func (assoc Associativity) String() string {
	switch assoc {
	case NonAssoc:
		return "nonassoc"
	case LeftAssoc:
		return "left"
	case RightAssoc:
		return "right"
	}
	return fmt.Sprintf("Associativity(%d)", int(assoc))
}

// Precedence declares a group of terminals sharing one precedence level.
// Grammar.Precedence lists the groups from lowest to highest.
type Precedence struct {
	Associativity
	Terminals []string
}

type Terminal struct {
	Name string
	Id   lr.SymbolId
}

type Rule struct {
	Lhs string

	// Space separated symbol names.  Single character terminals are written
	// quoted ('+', '\n').  Empty for epsilon rules.
	Rhs string

	// Optional %prec override.
	Prec string

	// Semantic action name.  Empty means pass-through.
	Action string
}

type Grammar struct {
	// The start nonterminal.  It always becomes nonterminal 0.
	Start string

	// Named terminals.  Quoted single character terminals are implicitly
	// declared.  $end and error are always defined.
	Terminals []Terminal

	Precedence []Precedence

	Rules []Rule
}

type ConflictKind int

const (
	ShiftReduce = ConflictKind(iota)
	ReduceReduce
)

func (kind ConflictKind) String() string {
	if kind == ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Conflict records an ambiguity that precedence could not resolve.  Shift
// wins shift/reduce conflicts and the lower numbered rule wins reduce/reduce
// conflicts.
type Conflict struct {
	State int
	Token string
	Kind  ConflictKind

	// The competing rules (a single rule for shift/reduce).
	Rules []int
}

func (conflict Conflict) String() string {
	rules := []string{}
	for _, rule := range conflict.Rules {
		rules = append(rules, fmt.Sprintf("%d", rule))
	}
	return fmt.Sprintf(
		"state %d: %s conflict on %s (rules %s)",
		conflict.State,
		conflict.Kind,
		conflict.Token,
		strings.Join(rules, ", "))
}

const (
	endTerminal   = 0
	errorTerminal = 1
)

type symbol struct {
	terminal bool
	index    int
}

type rule struct {
	lhs    int
	rhs    []symbol
	prec   int // -1 for none
	action string
	text   string
}

type terminalInfo struct {
	name  string
	id    lr.SymbolId
	prec  int // -1 for none
	assoc Associativity
}

// resolved grammar with dense symbol indices.
type symbolTable struct {
	terminals    []terminalInfo
	terminalIdx  map[string]int
	nonterminals []string
	nonterminal  map[string]int
	rules        []rule
	rulesOf      [][]int
}

func charTerminalName(char rune) string {
	return lr.SymbolId(char).String()
}

// parseCharTerminal parses a quoted single character terminal ('x', '\n').
func parseCharTerminal(name string) (lr.SymbolId, bool) {
	if len(name) < 3 || name[0] != '\'' || name[len(name)-1] != '\'' {
		return 0, false
	}

	body := name[1 : len(name)-1]
	switch body {
	case "\\n":
		return '\n', true
	case "\\t":
		return '\t', true
	case "\\\\":
		return '\\', true
	case "\\'":
		return '\'', true
	}

	if len(body) != 1 || body[0] == 0 {
		return 0, false
	}
	return lr.SymbolId(body[0]), true
}

func newSymbolTable(grammar *Grammar) (*symbolTable, error) {
	table := &symbolTable{
		terminalIdx: map[string]int{},
		nonterminal: map[string]int{},
	}

	table.addTerminal("$end", lr.EndOfInput)
	table.addTerminal("error", lr.ErrorToken)

	for _, term := range grammar.Terminals {
		if term.Id < lr.FirstNamedToken {
			return nil, fmt.Errorf(
				"terminal %s: id %d is reserved",
				term.Name,
				term.Id)
		}
		_, ok := table.terminalIdx[term.Name]
		if ok {
			return nil, fmt.Errorf("terminal %s redeclared", term.Name)
		}
		table.addTerminal(term.Name, term.Id)
	}

	// Nonterminals are numbered in order of first definition, with the start
	// symbol first.
	if grammar.Start == "" {
		return nil, fmt.Errorf("start symbol not specified")
	}
	table.addNonterminal(grammar.Start)
	for _, r := range grammar.Rules {
		_, ok := table.terminalIdx[r.Lhs]
		if ok {
			return nil, fmt.Errorf("terminal %s used as rule lhs", r.Lhs)
		}
		table.addNonterminal(r.Lhs)
	}

	for level, prec := range grammar.Precedence {
		for _, name := range prec.Terminals {
			idx, err := table.lookupTerminal(name)
			if err != nil {
				return nil, fmt.Errorf("precedence declaration: %w", err)
			}
			table.terminals[idx].prec = level
			table.terminals[idx].assoc = prec.Associativity
		}
	}

	table.rulesOf = make([][]int, len(table.nonterminals))

	// Rule 0 is the augmented start rule.
	table.rules = append(table.rules, rule{
		lhs:  -1,
		rhs:  []symbol{{terminal: false, index: 0}},
		prec: -1,
		text: "$accept: " + grammar.Start,
	})

	for _, r := range grammar.Rules {
		parsed := rule{
			lhs:    table.nonterminal[r.Lhs],
			prec:   -1,
			action: r.Action,
			text:   r.Lhs + ":",
		}

		for _, name := range strings.Fields(r.Rhs) {
			parsed.text += " " + name

			idx, ok := table.nonterminal[name]
			if ok {
				parsed.rhs = append(parsed.rhs, symbol{index: idx})
				continue
			}

			idx, err := table.lookupTerminal(name)
			if err != nil {
				return nil, fmt.Errorf("rule %s: %w", parsed.text, err)
			}
			parsed.rhs = append(parsed.rhs, symbol{terminal: true, index: idx})
		}

		if r.Prec != "" {
			idx, err := table.lookupTerminal(r.Prec)
			if err != nil {
				return nil, fmt.Errorf("rule %s: %%prec %w", parsed.text, err)
			}
			parsed.prec = table.terminals[idx].prec
		} else {
			// The first terminal with a declared precedence.
			for _, sym := range parsed.rhs {
				if sym.terminal && table.terminals[sym.index].prec >= 0 {
					parsed.prec = table.terminals[sym.index].prec
					break
				}
			}
		}

		table.rulesOf[parsed.lhs] = append(
			table.rulesOf[parsed.lhs],
			len(table.rules))
		table.rules = append(table.rules, parsed)
	}

	for idx, rules := range table.rulesOf {
		if len(rules) == 0 {
			return nil, fmt.Errorf(
				"nonterminal %s has no rules",
				table.nonterminals[idx])
		}
	}

	return table, nil
}

func (table *symbolTable) addTerminal(name string, id lr.SymbolId) int {
	idx := len(table.terminals)
	table.terminals = append(table.terminals, terminalInfo{
		name: name,
		id:   id,
		prec: -1,
	})
	table.terminalIdx[name] = idx
	return idx
}

func (table *symbolTable) addNonterminal(name string) {
	_, ok := table.nonterminal[name]
	if ok {
		return
	}
	table.nonterminal[name] = len(table.nonterminals)
	table.nonterminals = append(table.nonterminals, name)
}

// lookupTerminal resolves name, implicitly declaring quoted character
// terminals.
func (table *symbolTable) lookupTerminal(name string) (int, error) {
	idx, ok := table.terminalIdx[name]
	if ok {
		return idx, nil
	}

	id, ok := parseCharTerminal(name)
	if !ok {
		return 0, fmt.Errorf("undefined symbol %s", name)
	}

	canonical := charTerminalName(rune(id))
	idx, ok = table.terminalIdx[canonical]
	if !ok {
		idx = table.addTerminal(canonical, id)
	}
	table.terminalIdx[name] = idx
	return idx, nil
}
