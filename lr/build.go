// Package lr builds the canonical LR(k) parsing automaton of spec.md
// §4.5: item-set construction over FIRST_k lookahead closure,
// action/goto tables, and conflict detection with counterexample
// traces. Grounded on the teacher's parse/clr1.go (kernel
// canonicalization by string key, a GOTO function built alongside
// closure, an Action method implementing Algorithm 4.56's three
// rules), generalized from a single lookahead terminal and a fixed
// LALR(1)/CLR(1) choice to arbitrary lookahead tuples and a single
// parameterized canonical construction, per spec.md §4.5 (which
// describes only the canonical construction, not the teacher's LALR
// merging).
package lr

import "github.com/dekarrin/limecc/grammar"

// Table is a constructed canonical LR(k) parsing automaton over an
// augmented grammar.
type Table struct {
	G      *grammar.Grammar // augmented grammar the table was built over
	K      int
	States []*State

	first *grammar.FirstK
}

// Construct builds the canonical LR(k) automaton for g (the grammar
// as authored; it is augmented internally with a synthetic start rule
// per spec.md §4.5) at lookahead depth k. sentential, when true,
// allows shift actions on non-terminal dot positions too (spec.md
// §4.5's "optional flag enabling sentential-form parsing"); ordinary
// grammars pass false.
//
// Construct returns a *ConflictError (do not compare with
// errors.Is/As against a sentinel; use a type assertion, since each
// conflict carries state- and lookahead-specific data) the first time
// two distinct actions are assigned to the same (state, lookahead)
// cell.
func Construct(g *grammar.Grammar, k int, sentential bool) (*Table, error) {
	aug := g.Augmented()
	first := grammar.ComputeFirstK(aug, k)

	startRule := aug.Rule(0)
	startItem := grammar.Item{
		LR0Item: grammar.LR0Item{
			NonTerminal: startRule.Left,
			Right:       append([]grammar.Symbol{}, startRule.Right...),
		},
	}

	t := &Table{G: aug, K: k, first: first}

	kernelOf := map[string]StateID{}
	kernel0 := []grammar.Item{startItem}
	state0 := newState(0, kernel0, closure(aug, first, kernel0))
	t.States = append(t.States, state0)
	kernelOf[kernelKey(kernel0)] = 0

	queue := []StateID{0}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		s := t.States[id]

		for _, x := range nextSymbols(s.itemSet) {
			kernel := gotoKernel(s.itemSet, x)
			if len(kernel) == 0 {
				continue
			}
			key := kernelKey(kernel)
			next, ok := kernelOf[key]
			if !ok {
				next = StateID(len(t.States))
				ns := newState(next, kernel, closure(aug, first, kernel))
				ns.hasParent = true
				ns.parent = id
				ns.parentSymbol = x
				t.States = append(t.States, ns)
				kernelOf[key] = next
				queue = append(queue, next)
			}
			s.gotos[x] = next
		}
	}

	if err := fillActions(t, aug, sentential); err != nil {
		return nil, err
	}

	return t, nil
}

// fillActions populates every state's action table per spec.md §4.5
// step 2: reduce for final items of a real rule, accept for the final
// item of the augmented start rule, shift (keyed by the FIRST_k of the
// remaining input) for items with the dot before a shiftable symbol.
func fillActions(t *Table, aug *grammar.Grammar, sentential bool) error {
	startLeft := aug.Rule(0).Left

	for _, s := range t.States {
		s.actions = map[string]Action{}
		origin := map[string]grammar.Item{}

		assign := func(la []grammar.Symbol, act Action, it grammar.Item) error {
			key := laKey(la)
			if existing, ok := s.actions[key]; ok {
				if existing.Equal(act) {
					return nil
				}
				return &ConflictError{
					State:      s.id,
					Lookahead:  la,
					First:      existing,
					Second:     act,
					FirstItem:  origin[key],
					SecondItem: it,
					table:      t,
				}
			}
			s.actions[key] = act
			origin[key] = it
			return nil
		}

		for _, it := range s.itemSet {
			if it.Final() {
				var act Action
				if it.NonTerminal == startLeft {
					act = Action{Type: ActionAccept}
				} else {
					act = Action{Type: ActionReduce, Rule: it.Core().Rule()}
				}
				if err := assign(it.Lookahead, act, it); err != nil {
					return err
				}
				continue
			}

			sym, _ := it.NextSymbol()
			if !aug.IsTerminal(sym) && !sentential {
				continue
			}
			target, ok := s.gotos[sym]
			if !ok {
				continue
			}

			beta := it.Right[1:]
			word := make([]grammar.Symbol, 0, 1+len(beta)+len(it.Lookahead))
			word = append(word, sym)
			word = append(word, beta...)
			word = append(word, it.Lookahead...)

			for _, u := range t.first.First(word).Elements() {
				if err := assign(u, Action{Type: ActionShift, State: target}, it); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// Goto returns the state reached from state id by consuming sym, if
// any.
func (t *Table) Goto(id StateID, sym grammar.Symbol) (StateID, bool) {
	if int(id) < 0 || int(id) >= len(t.States) {
		return 0, false
	}
	return t.States[id].Goto(sym)
}

// AcceptingStates returns every state with an ActionAccept entry.
// spec.md §3 requires exactly one; Construct does not enforce this
// itself (a grammar where acceptance is unreachable is still a valid,
// if useless, table), so callers that need the invariant check it
// explicitly.
func (t *Table) AcceptingStates() []StateID {
	var out []StateID
	for _, s := range t.States {
		for _, act := range s.actions {
			if act.Type == ActionAccept {
				out = append(out, s.id)
				break
			}
		}
	}
	return out
}
