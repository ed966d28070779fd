package lr

import (
	"strings"

	"github.com/dekarrin/limecc/grammar"
)

// StateID indexes a State within a Table's States slice. Grounded on
// automaton.StateID's int-arena design (spec.md §9's explicit
// preference for an integer-indexed arena over a pointer graph),
// applied here to LR states instead of FA states.
type StateID int

// State is one node of the canonical LR(k) automaton: a kernel item
// set, its closure, the action table keyed by lookahead tuple, the
// goto table keyed by symbol, and a parent back-pointer for
// counterexample reconstruction (spec.md §4.5: "records its parent
// state index and the symbol consumed, for diagnostics").
type State struct {
	id      StateID
	kernel  []grammar.Item
	itemSet []grammar.Item

	actions map[string]Action
	gotos   map[grammar.Symbol]StateID

	hasParent    bool
	parent       StateID
	parentSymbol grammar.Symbol
}

func newState(id StateID, kernel, itemSet []grammar.Item) *State {
	return &State{
		id:      id,
		kernel:  kernel,
		itemSet: itemSet,
		gotos:   map[grammar.Symbol]StateID{},
	}
}

// ID returns the state's index within its Table.
func (s *State) ID() StateID { return s.id }

// Kernel returns the items that define this state's identity (before
// closure).
func (s *State) Kernel() []grammar.Item {
	return append([]grammar.Item{}, s.kernel...)
}

// Items returns the closure of the state's kernel: every item,
// original and closure-derived.
func (s *State) Items() []grammar.Item {
	return append([]grammar.Item{}, s.itemSet...)
}

// Action returns the action assigned to lookahead, if any.
func (s *State) Action(lookahead []grammar.Symbol) (Action, bool) {
	a, ok := s.actions[laKey(lookahead)]
	return a, ok
}

// Actions returns every (lookahead, action) pair assigned to this
// state, in no particular order.
func (s *State) Actions() map[string]Action {
	out := make(map[string]Action, len(s.actions))
	for k, v := range s.actions {
		out[k] = v
	}
	return out
}

// Goto returns the successor state reached by consuming sym from this
// state, if any.
func (s *State) Goto(sym grammar.Symbol) (StateID, bool) {
	id, ok := s.gotos[sym]
	return id, ok
}

// GotoSymbols returns every symbol this state has a goto edge for, in
// no particular order.
func (s *State) GotoSymbols() []grammar.Symbol {
	out := make([]grammar.Symbol, 0, len(s.gotos))
	for sym := range s.gotos {
		out = append(out, sym)
	}
	return out
}

// LookaheadSymbols returns every distinct symbol appearing in any
// lookahead tuple of any of this state's assigned actions, with no
// duplicates. Used by the context-lexer partitioning of spec.md §4.6
// to compute admissible(s): "terminals in lookahead keys of action(s)".
func (s *State) LookaheadSymbols() []grammar.Symbol {
	seen := map[grammar.Symbol]bool{}
	var out []grammar.Symbol
	for key := range s.actions {
		if key == "" {
			continue
		}
		for _, sym := range strings.Split(key, "\x1f") {
			if !seen[sym] {
				seen[sym] = true
				out = append(out, sym)
			}
		}
	}
	return out
}

// Parent returns the state this one was discovered from, the symbol
// that was consumed to reach it, and whether it has a parent at all
// (state 0 does not).
func (s *State) Parent() (StateID, grammar.Symbol, bool) {
	return s.parent, s.parentSymbol, s.hasParent
}
