package grammar

import (
	"fmt"

	"adder/internal/token"
)

// Arc is a labeled transition between automaton states.
type Arc struct {
	Label  Symbol
	Target uint8
}

// State is one automaton state. Accept states may also carry arcs; the
// parser prefers a matching arc and reduces only when nothing matches.
type State struct {
	Arcs   []Arc
	Accept bool
}

// DFA is the automaton of a single grammar rule.
type DFA struct {
	Symbol Symbol
	Name   string
	States []State
}

// KindSet is a membership set over token kinds.
type KindSet [token.KindCount]bool

// Has reports membership.
func (s *KindSet) Has(k token.Kind) bool {
	return k < token.KindCount && s[k]
}

func (s *KindSet) add(k token.Kind) {
	s[k] = true
}

// union merges other into s and reports whether s grew.
func (s *KindSet) union(other *KindSet) bool {
	grew := false
	for k := range other {
		if other[k] && !s[k] {
			s[k] = true
			grew = true
		}
	}
	return grew
}

// Grammar bundles the rule automata with their FIRST sets.
type Grammar struct {
	dfas  map[Symbol]*DFA
	first map[Symbol]*KindSet
}

// DFA returns the automaton for a nonterminal.
func (g *Grammar) DFA(sym Symbol) *DFA {
	return g.dfas[sym]
}

// First returns the FIRST set of a nonterminal.
func (g *Grammar) First(sym Symbol) *KindSet {
	return g.first[sym]
}

// StartsWith reports whether the lookahead kind can begin the symbol: a
// terminal symbol matches itself, a nonterminal consults its FIRST set.
func (g *Grammar) StartsWith(sym Symbol, k token.Kind) bool {
	if !sym.IsNonterminal() {
		return sym.Kind() == k
	}
	return g.first[sym].Has(k)
}

func newGrammar(dfas []*DFA) *Grammar {
	g := &Grammar{
		dfas:  make(map[Symbol]*DFA, len(dfas)),
		first: make(map[Symbol]*KindSet, len(dfas)),
	}
	for _, d := range dfas {
		g.dfas[d.Symbol] = d
		g.first[d.Symbol] = &KindSet{}
	}
	g.validate()
	g.computeFirst()
	return g
}

// validate panics on a malformed table. It runs once at package init, so a
// bad table is caught before any parse.
func (g *Grammar) validate() {
	for _, d := range g.dfas {
		if len(d.States) == 0 || len(d.States) > 256 {
			panic(fmt.Sprintf("grammar: rule %s has %d states", d.Name, len(d.States)))
		}
		for si, st := range d.States {
			for _, arc := range st.Arcs {
				if int(arc.Target) >= len(d.States) {
					panic(fmt.Sprintf("grammar: rule %s state %d arc to missing state %d", d.Name, si, arc.Target))
				}
				if arc.Label.IsNonterminal() {
					if _, ok := g.dfas[arc.Label]; !ok {
						panic(fmt.Sprintf("grammar: rule %s state %d references undefined rule %v", d.Name, si, arc.Label))
					}
				} else if arc.Label.Kind() == token.Invalid || arc.Label.Kind() >= token.KindCount {
					panic(fmt.Sprintf("grammar: rule %s state %d has invalid terminal arc", d.Name, si))
				}
			}
		}
	}
}

// computeFirst runs the usual fixpoint over state-0 arcs. No rule here
// derives the empty string, so state 0 arcs are all that matters.
func (g *Grammar) computeFirst() {
	for changed := true; changed; {
		changed = false
		for sym, d := range g.dfas {
			set := g.first[sym]
			for _, arc := range d.States[0].Arcs {
				if arc.Label.IsNonterminal() {
					if set.union(g.first[arc.Label]) {
						changed = true
					}
				} else if !set.Has(arc.Label.Kind()) {
					set.add(arc.Label.Kind())
					changed = true
				}
			}
		}
	}
}
