package lrgen

type cell struct {
	shift  int // target state, -1 for none
	reduce int // rule, -1 for none

	// Set when a nonassoc conflict removed both actions.
	explicitError bool
}

type stateActions struct {
	cells  []cell
	defRed int

	// nonterminal index -> target state
	gotos map[int]int
}

func (auto *automaton) rulePrec(ruleIdx int) int {
	return auto.rules[ruleIdx].prec
}

func (auto *automaton) computeActions() ([]stateActions, []Conflict) {
	conflicts := []Conflict{}
	result := make([]stateActions, len(auto.states))

	for _, st := range auto.states {
		acts := stateActions{
			cells: make([]cell, len(auto.terminals)),
			gotos: map[int]int{},
		}
		for idx := range acts.cells {
			acts.cells[idx] = cell{shift: -1, reduce: -1}
		}

		for _, trans := range st.transitions {
			if trans.symbol.terminal {
				acts.cells[trans.symbol.index].shift = trans.target.id
			} else {
				acts.gotos[trans.symbol.index] = trans.target.id
			}
		}

		for _, cfg := range st.configs {
			if cfg.rule == 0 || cfg.dot < len(auto.rules[cfg.rule].rhs) {
				continue
			}

			for _, term := range cfg.follow.members() {
				current := &acts.cells[term]
				if current.reduce < 0 {
					current.reduce = cfg.rule
					continue
				}

				if current.reduce == cfg.rule {
					continue
				}

				existing := auto.rulePrec(current.reduce)
				candidate := auto.rulePrec(cfg.rule)
				if existing >= 0 && candidate >= 0 && existing != candidate {
					if candidate > existing {
						current.reduce = cfg.rule
					}
					continue
				}

				low, high := current.reduce, cfg.rule
				if high < low {
					low, high = high, low
				}
				current.reduce = low
				conflicts = append(conflicts, Conflict{
					State: st.id,
					Token: auto.terminals[term].name,
					Kind:  ReduceReduce,
					Rules: []int{low, high},
				})
			}
		}

		for term := range acts.cells {
			current := &acts.cells[term]
			if current.shift < 0 || current.reduce < 0 {
				continue
			}

			tokenPrec := auto.terminals[term].prec
			rulePrec := auto.rulePrec(current.reduce)
			switch {
			case tokenPrec < 0 || rulePrec < 0:
				conflicts = append(conflicts, Conflict{
					State: st.id,
					Token: auto.terminals[term].name,
					Kind:  ShiftReduce,
					Rules: []int{current.reduce},
				})
				current.reduce = -1
			case tokenPrec > rulePrec:
				current.reduce = -1
			case tokenPrec < rulePrec:
				current.shift = -1
			default:
				switch auto.terminals[term].assoc {
				case RightAssoc:
					current.reduce = -1
				case LeftAssoc:
					current.shift = -1
				default:
					current.shift = -1
					current.reduce = -1
					current.explicitError = true
				}
			}
		}

		acts.defRed = auto.defaultReduction(acts.cells)
		result[st.id] = acts
	}

	return result, conflicts
}

// defaultReduction returns the state's unconditional reduction, or 0 when
// the state shifts anything, has an explicit error entry or reduces more than
// one rule.
func (auto *automaton) defaultReduction(cells []cell) int {
	found := 0
	for _, c := range cells {
		if c.shift >= 0 || c.explicitError {
			return 0
		}

		if c.reduce < 0 {
			continue
		}

		if found != 0 && found != c.reduce {
			return 0
		}
		found = c.reduce
	}
	return found
}

// unreducedRules lists the rules never reduced in any state.
func (auto *automaton) unreducedRules(actions []stateActions) []int {
	reduced := make([]bool, len(auto.rules))
	for _, acts := range actions {
		if acts.defRed != 0 {
			reduced[acts.defRed] = true
		}
		for _, c := range acts.cells {
			if c.reduce >= 0 {
				reduced[c.reduce] = true
			}
		}
	}

	result := []int{}
	for idx := 1; idx < len(reduced); idx++ {
		if !reduced[idx] {
			result = append(result, idx)
		}
	}
	return result
}
