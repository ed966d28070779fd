package regex

import "github.com/dekarrin/limecc/automaton"

// Expand implements the McNaughton-Yamada-Thompson construction of
// spec.md §4.2: every node gets a sub-automaton with exactly one entry
// and one exit state, built directly into a (shared, so that multiple
// tokens' fragments can later be unioned cheaply) Automaton arena.
// Grounded on the teacher's `createSingleSymbolFA`/`createJuxtapositionFA`/
// `createKleeneStarFA`/`createAlternationFA` (lex/regex.go) — stubs built
// around its string-keyed NFA type — generalized here to CharLabel edges
// over automaton.Automaton's int-ID arena.
func Expand(a *automaton.Automaton, n Node) (entry, exit automaton.StateID) {
	switch v := n.(type) {
	case Lit:
		entry = a.AddState()
		exit = a.AddState()
		a.AddEdge(entry, v.Label, exit)
		return entry, exit

	case Cat:
		if len(v.Items) == 0 {
			entry = a.AddState()
			exit = a.AddState()
			a.AddEpsilon(entry, exit)
			return entry, exit
		}
		first := true
		var prevExit automaton.StateID
		for _, item := range v.Items {
			e, x := Expand(a, item)
			if first {
				entry = e
				first = false
			} else {
				a.AddEpsilon(prevExit, e)
			}
			prevExit = x
		}
		exit = prevExit
		return entry, exit

	case Alt:
		entry = a.AddState()
		exit = a.AddState()
		for _, item := range v.Items {
			e, x := Expand(a, item)
			a.AddEpsilon(entry, e)
			a.AddEpsilon(x, exit)
		}
		return entry, exit

	case Rep:
		mid := a.AddState()
		entry = a.AddState()
		exit = a.AddState()
		a.AddEpsilon(entry, mid)
		a.AddEpsilon(mid, exit)
		childEntry, childExit := Expand(a, v.Item)
		a.AddEpsilon(mid, childEntry)
		a.AddEpsilon(childExit, mid)
		return entry, exit

	default:
		panic("unreachable: unknown regex AST node type")
	}
}

// ExpandToken builds the per-token NFA fragment for a single token
// definition: the ε-NFA expansion of pattern, with the fragment's exit
// state carrying tag (spec.md §4.2: "a per-token NFA is the expansion of
// the token's regex ... whose exit state carries the token's
// AcceptTag"). The returned Automaton is self-contained, ready to be
// merged into a larger lexer automaton (see automaton.Union).
func ExpandToken(pattern Node, tag automaton.AcceptTag) *automaton.Automaton {
	a := automaton.New()
	entry, exit := Expand(a, pattern)
	a.SetInitial(entry)
	a.SetAccept(exit, tag)
	return a
}

// ExpandLiteral builds the trivial chain fragment for a literal token
// (spec.md §4.2's "or the trivial chain for literal tokens"): one state
// per rune of word, connected by single-rune CharLabel edges, with no
// regex parsing involved at all.
func ExpandLiteral(word string, tag automaton.AcceptTag) *automaton.Automaton {
	a := automaton.New()
	entry := a.AddState()
	a.SetInitial(entry)

	cur := entry
	for _, r := range word {
		next := a.AddState()
		a.AddEdge(cur, automaton.NewCharLabel(r), next)
		cur = next
	}
	a.SetAccept(cur, tag)
	return a
}
