package lrgen

import (
	"fmt"
	"sort"
	"strings"
)

type item struct {
	rule int
	dot  int
}

// config is an LR(0) item within a particular state, annotated with its
// LALR(1) follow set.
type config struct {
	item

	follow bitset

	// Configs which inherit this config's follow set.
	links []*config

	// Set once follow has been propagated through links.
	complete bool
}

type transition struct {
	symbol symbol
	target *state
}

type state struct {
	id int

	basis   []*config
	configs []*config // closure, basis first

	transitions []transition
}

type automaton struct {
	*symbolTable

	nullable []bool
	first    []bitset

	states []*state
	byKey  map[string]*state
}

func (auto *automaton) newSet() bitset {
	return newBitset(len(auto.terminals))
}

// computeFirstSets computes the nullable flags and first sets of every
// nonterminal.
func (auto *automaton) computeFirstSets() {
	auto.nullable = make([]bool, len(auto.nonterminals))
	for {
		progress := false
		for _, r := range auto.rules[1:] {
			if auto.nullable[r.lhs] {
				continue
			}

			allNullable := true
			for _, sym := range r.rhs {
				if sym.terminal || !auto.nullable[sym.index] {
					allNullable = false
					break
				}
			}

			if allNullable {
				auto.nullable[r.lhs] = true
				progress = true
			}
		}
		if !progress {
			break
		}
	}

	auto.first = make([]bitset, len(auto.nonterminals))
	for idx := range auto.first {
		auto.first[idx] = auto.newSet()
	}

	for {
		progress := false
		for _, r := range auto.rules[1:] {
			set := auto.first[r.lhs]
			for _, sym := range r.rhs {
				if sym.terminal {
					if set.add(sym.index) {
						progress = true
					}
					break
				}

				if set.union(auto.first[sym.index]) {
					progress = true
				}
				if !auto.nullable[sym.index] {
					break
				}
			}
		}
		if !progress {
			break
		}
	}
}

func itemsKey(items []item) string {
	builder := strings.Builder{}
	for _, it := range items {
		fmt.Fprintf(&builder, "%d.%d;", it.rule, it.dot)
	}
	return builder.String()
}

func (auto *automaton) nextSymbol(it item) (symbol, bool) {
	rhs := auto.rules[it.rule].rhs
	if it.dot < len(rhs) {
		return rhs[it.dot], true
	}
	return symbol{}, false
}

// getState returns the state with the given (sorted) basis, creating it if
// needed.  preds[i] is the predecessor config of items[i]; its follow set
// propagates into the state's basis config.
func (auto *automaton) getState(items []item, preds []*config) *state {
	key := itemsKey(items)
	st, ok := auto.byKey[key]
	if !ok {
		st = &state{id: len(auto.states)}
		for _, it := range items {
			cfg := &config{item: it, follow: auto.newSet()}
			st.basis = append(st.basis, cfg)
		}
		auto.closure(st)

		auto.states = append(auto.states, st)
		auto.byKey[key] = st
	}

	for idx, pred := range preds {
		pred.links = append(pred.links, st.basis[idx])
	}
	return st
}

// closure expands the state's basis.  Lookaheads derivable from within the
// state are added directly to the new configs' follow sets.  Configs whose
// remaining suffix is nullable are linked for propagation instead.
func (auto *automaton) closure(st *state) {
	byItem := map[item]*config{}
	st.configs = append(st.configs, st.basis...)
	for _, cfg := range st.basis {
		byItem[cfg.item] = cfg
	}

	for i := 0; i < len(st.configs); i++ {
		cfg := st.configs[i]
		sym, ok := auto.nextSymbol(cfg.item)
		if !ok || sym.terminal {
			continue
		}

		rhs := auto.rules[cfg.rule].rhs
		for _, ruleIdx := range auto.rulesOf[sym.index] {
			it := item{rule: ruleIdx, dot: 0}
			newCfg, ok := byItem[it]
			if !ok {
				newCfg = &config{item: it, follow: auto.newSet()}
				byItem[it] = newCfg
				st.configs = append(st.configs, newCfg)
			}

			suffixNullable := true
			for _, next := range rhs[cfg.dot+1:] {
				if next.terminal {
					newCfg.follow.add(next.index)
					suffixNullable = false
					break
				}

				newCfg.follow.union(auto.first[next.index])
				if !auto.nullable[next.index] {
					suffixNullable = false
					break
				}
			}

			if suffixNullable {
				cfg.links = append(cfg.links, newCfg)
			}
		}
	}
}

// buildTransitions computes st's successor states.  Successors are created
// in order of first appearance of the transition symbol in st's configs.
func (auto *automaton) buildTransitions(st *state) {
	order := []symbol{}
	groups := map[symbol][]*config{}
	for _, cfg := range st.configs {
		sym, ok := auto.nextSymbol(cfg.item)
		if !ok {
			continue
		}

		_, ok = groups[sym]
		if !ok {
			order = append(order, sym)
		}
		groups[sym] = append(groups[sym], cfg)
	}

	for _, sym := range order {
		preds := groups[sym]
		sort.Slice(preds, func(i int, j int) bool {
			if preds[i].rule != preds[j].rule {
				return preds[i].rule < preds[j].rule
			}
			return preds[i].dot < preds[j].dot
		})

		items := make([]item, 0, len(preds))
		for _, pred := range preds {
			items = append(items, item{rule: pred.rule, dot: pred.dot + 1})
		}

		target := auto.getState(items, preds)
		st.transitions = append(
			st.transitions,
			transition{symbol: sym, target: target})
	}
}

func (auto *automaton) buildStates() {
	auto.byKey = map[string]*state{}

	start := auto.getState([]item{{rule: 0, dot: 0}}, nil)
	start.basis[0].follow.add(endTerminal)

	for i := 0; i < len(auto.states); i++ {
		auto.buildTransitions(auto.states[i])
	}
}

// propagateFollowSets runs the lookahead propagation to a fixpoint.
func (auto *automaton) propagateFollowSets() {
	for {
		progress := false
		for _, st := range auto.states {
			for _, cfg := range st.configs {
				if cfg.complete {
					continue
				}
				cfg.complete = true

				for _, link := range cfg.links {
					if link.follow.union(cfg.follow) {
						link.complete = false
						progress = true
					}
				}
			}
		}
		if !progress {
			break
		}
	}
}
