package lr

import (
	"sort"
	"strings"

	"github.com/dekarrin/limecc/grammar"
)

// laKey turns a lookahead tuple into a map key. Mirrors grammar's own
// internal laKey (same separator) but is kept as a private copy here:
// lr only needs it for its own action-table maps, not for anything
// grammar exports.
func laKey(la []grammar.Symbol) string {
	return strings.Join(la, "\x1f")
}

// kernelKey canonicalizes a set of items into a single string, the
// dedup key used to recognize a previously-seen state kernel (spec.md
// §4.5: "Kernels are canonicalized by content and memoized"). Grounded
// on the teacher's StringOrdered()-as-hash-key convention, generalized
// from symbol sets to item sets.
func kernelKey(items []grammar.Item) string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.String()
	}
	sort.Strings(keys)
	return strings.Join(keys, "\x1e")
}

// closure computes the closure of a kernel item set per spec.md §4.5:
// for each item `A -> α . B β, la` with B a non-terminal, for every
// rule `B -> γ`, for every `u` in FIRST_k(β · la), add `B -> . γ, u` if
// absent. Repeats to a fixed point via a worklist.
func closure(g *grammar.Grammar, first *grammar.FirstK, kernel []grammar.Item) []grammar.Item {
	seen := map[string]grammar.Item{}
	var worklist []grammar.Item

	add := func(it grammar.Item) {
		key := it.String()
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = it
		worklist = append(worklist, it)
	}

	for _, it := range kernel {
		add(it)
	}

	for len(worklist) > 0 {
		it := worklist[0]
		worklist = worklist[1:]

		sym, ok := it.NextSymbol()
		if !ok || g.IsTerminal(sym) {
			continue
		}

		beta := it.Right[1:]
		for _, rule := range g.RulesFor(sym) {
			word := append(append([]grammar.Symbol{}, beta...), it.Lookahead...)
			for _, la := range first.First(word).Elements() {
				add(grammar.Item{
					LR0Item: grammar.LR0Item{
						NonTerminal: rule.Left,
						Right:       append([]grammar.Symbol{}, rule.Right...),
					},
					Lookahead: la,
				})
			}
		}
	}

	out := make([]grammar.Item, 0, len(seen))
	for _, it := range seen {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// gotoKernel forms the successor kernel goto(S, X) per spec.md §4.5:
// every item whose dot sits just before X, advanced one symbol.
func gotoKernel(itemSet []grammar.Item, x grammar.Symbol) []grammar.Item {
	var kernel []grammar.Item
	seen := map[string]bool{}
	for _, it := range itemSet {
		sym, ok := it.NextSymbol()
		if !ok || sym != x {
			continue
		}
		advanced := it.Advance()
		key := advanced.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		kernel = append(kernel, advanced)
	}
	return kernel
}

// nextSymbols returns, in sorted order, every distinct symbol that
// appears immediately after some item's dot in itemSet. A goto entry
// is built for every one of these regardless of terminal/non-terminal
// status: non-terminal successors are needed for post-reduce gotos,
// terminal successors for shifts.
func nextSymbols(itemSet []grammar.Item) []grammar.Symbol {
	seenOrder := map[grammar.Symbol]bool{}
	var out []grammar.Symbol
	for _, it := range itemSet {
		sym, ok := it.NextSymbol()
		if !ok || seenOrder[sym] {
			continue
		}
		seenOrder[sym] = true
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}
