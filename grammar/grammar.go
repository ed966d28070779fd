package grammar

import (
	"fmt"

	"github.com/dekarrin/limecc/internal/util"
	"github.com/google/uuid"
)

// AugmentedStartPrefix names the synthetic rule Augmented() adds: the
// augmented start symbol is this prefix followed by the grammar's real
// root symbol, which keeps it both readable in trace output and distinct
// from any symbol a grammar author could type (LIME identifiers cannot
// contain '$').
const AugmentedStartPrefix = "$start-"

// Grammar is an ordered sequence of Rules, plus a root symbol (explicit
// or defaulted to the first rule's left-hand symbol) and the set of
// terminal symbols known to the grammar. Terminal-vs-non-terminal is
// derived, not stored per Symbol: IsTerminal reports false for exactly
// those symbols that appear as some Rule's Left.
//
// A Grammar is built by repeated AddRule/AddTerm calls and then frozen by
// use: every construction phase downstream (FIRST_k, LR(k) item-set
// construction) treats it as read-only.
type Grammar struct {
	rules      []Rule
	rulesByLHS map[Symbol][]int
	terminals  util.StringSet
	extras     util.StringSet
	root       Symbol
	hasRoot    bool
}

// AddRule appends a new production left -> right to g, preserving the
// order rules were added in (rule order is the order of Rules and of
// output; it does not resolve conflicts, since lr.Construct reports every
// reduce/reduce conflict as an error).
func (g *Grammar) AddRule(left Symbol, right []Symbol) {
	if g.rulesByLHS == nil {
		g.rulesByLHS = map[Symbol][]int{}
	}
	idx := len(g.rules)
	rightCopy := make([]Symbol, len(right))
	copy(rightCopy, right)
	g.rules = append(g.rules, Rule{Left: left, Right: rightCopy})
	g.rulesByLHS[left] = append(g.rulesByLHS[left], idx)
}

// AddRuleWithAction is AddRule plus an opaque action payload carried
// along for the (out-of-scope) code emitter.
func (g *Grammar) AddRuleWithAction(left Symbol, right []Symbol, action any) {
	g.AddRule(left, right)
	g.rules[len(g.rules)-1].Action = action
}

// AddTerm declares sym as a terminal symbol of g. Declaring a terminal
// that never appears in any rule's Right is legal (e.g. a %discard
// token); it is tracked as an "extra" symbol.
func (g *Grammar) AddTerm(sym Symbol) {
	if g.terminals == nil {
		g.terminals = util.NewStringSet()
	}
	g.terminals.Add(sym)
}

// SetRoot fixes the grammar's root (start) symbol. If never called, the
// root defaults to the left-hand symbol of the first added rule.
func (g *Grammar) SetRoot(sym Symbol) {
	g.root = sym
	g.hasRoot = true
}

// StartSymbol returns the grammar's root symbol, defaulting to the first
// rule's Left if SetRoot was never called. Returns "" if g has no rules
// and no explicit root.
func (g *Grammar) StartSymbol() Symbol {
	if g.hasRoot {
		return g.root
	}
	if len(g.rules) > 0 {
		return g.rules[0].Left
	}
	return ""
}

// Rule returns the rule at index i. Index order matches AddRule call
// order.
func (g *Grammar) Rule(i int) Rule {
	return g.rules[i]
}

// NumRules returns the number of rules in g.
func (g *Grammar) NumRules() int {
	return len(g.rules)
}

// Rules returns every rule of g, in the order added. The returned slice
// is a copy; mutating it does not affect g.
func (g *Grammar) Rules() []Rule {
	out := make([]Rule, len(g.rules))
	copy(out, g.rules)
	return out
}

// RulesFor returns every rule whose Left is nt, in the order added.
func (g *Grammar) RulesFor(nt Symbol) []Rule {
	idxs := g.rulesByLHS[nt]
	out := make([]Rule, len(idxs))
	for i, idx := range idxs {
		out[i] = g.rules[idx]
	}
	return out
}

// IsTerminal reports whether sym is a terminal of g: a symbol is
// non-terminal iff it is the Left of some rule, so this is simply the
// negation of that membership test.
func (g *Grammar) IsTerminal(sym Symbol) bool {
	_, isNonTerm := g.rulesByLHS[sym]
	return !isNonTerm
}

// IsNonTerminal is the complement of IsTerminal.
func (g *Grammar) IsNonTerminal(sym Symbol) bool {
	return !g.IsTerminal(sym)
}

// Terminals returns every terminal symbol known to g: every symbol
// declared via AddTerm, plus every symbol referenced in some rule's
// Right that is not itself a non-terminal. Order is not significant;
// callers that need determinism should sort the result.
func (g *Grammar) Terminals() []Symbol {
	set := util.NewStringSet()
	if g.terminals != nil {
		set.AddAll(g.terminals)
	}
	for _, r := range g.rules {
		for _, sym := range r.Right {
			if g.IsTerminal(sym) {
				set.Add(sym)
			}
		}
	}
	out := set.Elements()
	return out
}

// NonTerminals returns every non-terminal symbol known to g (every
// distinct Rule.Left), in first-declared order.
func (g *Grammar) NonTerminals() []Symbol {
	seen := util.NewStringSet()
	var out []Symbol
	for _, r := range g.rules {
		if !seen.Has(r.Left) {
			seen.Add(r.Left)
			out = append(out, r.Left)
		}
	}
	return out
}

// Validate checks the structural invariants of g: it must have at least
// one rule, at least one terminal (declared or inferred), an explicit
// root (if set) that is actually produced by some rule, and no rule may
// reference an undeclared, unproduced symbol.
func (g *Grammar) Validate() error {
	if len(g.rules) == 0 {
		return fmt.Errorf("grammar has no rules")
	}

	terms := g.Terminals()
	if len(terms) == 0 {
		return fmt.Errorf("grammar has no terminal symbols")
	}

	if g.hasRoot {
		if _, ok := g.rulesByLHS[g.root]; !ok {
			return fmt.Errorf("root symbol %q is not the left-hand side of any rule", g.root)
		}
	}

	for _, r := range g.rules {
		for _, sym := range r.Right {
			if g.IsNonTerminal(sym) {
				continue
			}
			if !g.terminals.Has(sym) {
				return fmt.Errorf("rule %q references unknown symbol %q", r.String(), sym)
			}
		}
	}

	return nil
}

// Augmented returns a copy of g with one rule prepended: a synthetic
// start symbol producing g's actual root. LR(k) construction always
// operates on the augmented grammar, so that the unique accepting state
// is reachable only by reducing the whole input to the real root
// followed by end-of-input, never by any other route to the root symbol.
func (g *Grammar) Augmented() *Grammar {
	aug := &Grammar{}
	newStart := g.GenerateUniqueSymbol(AugmentedStartPrefix + g.StartSymbol())
	aug.AddRule(newStart, []Symbol{g.StartSymbol()})
	for _, r := range g.rules {
		aug.AddRuleWithAction(r.Left, r.Right, r.Action)
	}
	if g.terminals != nil {
		for _, t := range g.terminals.Elements() {
			aug.AddTerm(t)
		}
	}
	aug.SetRoot(newStart)
	return aug
}

// GenerateUniqueSymbol returns a symbol derived from base that does not
// collide with any symbol already known to g. If base itself is free, it
// is returned unchanged (keeping generated grammars readable); otherwise
// a short uuid suffix is appended until the result is free. Grounded on
// the teacher's use of google/uuid to mint collision-free identifiers
// (there, session IDs; here, synthetic grammar symbols).
func (g *Grammar) GenerateUniqueSymbol(base Symbol) Symbol {
	if !g.knowsSymbol(base) {
		return base
	}
	for {
		candidate := fmt.Sprintf("%s-%s", base, uuid.NewString()[:8])
		if !g.knowsSymbol(candidate) {
			return candidate
		}
	}
}

// GenerateUniqueTerminal is GenerateUniqueSymbol specialized for minting
// anonymous token names for inline literal/regex tokens encountered by
// the LIME front end (e.g. the literal "+" in a rule body, which has no
// author-given name).
func (g *Grammar) GenerateUniqueTerminal(base Symbol) Symbol {
	return g.GenerateUniqueSymbol(base)
}

func (g *Grammar) knowsSymbol(sym Symbol) bool {
	if _, ok := g.rulesByLHS[sym]; ok {
		return true
	}
	if g.terminals != nil && g.terminals.Has(sym) {
		return true
	}
	for _, r := range g.rules {
		for _, s := range r.Right {
			if s == sym {
				return true
			}
		}
	}
	return false
}

// LR0Items enumerates every LR(0) item derivable from g's rules: for
// each rule, one item per dot position from 0 (nothing consumed) through
// len(Right) (fully consumed / reduce-ready).
func (g *Grammar) LR0Items() []LR0Item {
	var items []LR0Item
	for _, r := range g.rules {
		for dot := 0; dot <= len(r.Right); dot++ {
			items = append(items, LR0Item{
				NonTerminal: r.Left,
				Left:        append([]Symbol{}, r.Right[:dot]...),
				Right:       append([]Symbol{}, r.Right[dot:]...),
			})
		}
	}
	return items
}

// String renders every rule of g, one per line, in priority order.
func (g *Grammar) String() string {
	s := ""
	for i, r := range g.rules {
		if i > 0 {
			s += "\n"
		}
		s += r.String()
	}
	return s
}
