package lex

import (
	"sort"

	"github.com/dekarrin/limecc/automaton"
	"github.com/dekarrin/limecc/regex"
)

// DFA pairs a minimized automaton with the token table needed to turn
// its accept tags back into grammar terminals at lex time.
type DFA struct {
	Automaton *automaton.Automaton
	Tokens    map[int]TokenDef
}

// tokenNFA expands one TokenDef into its per-token NFA fragment,
// tagged with its own AcceptTag (spec.md §4.2: "Regex front-end...
// expands it to an ε-NFA fragment"; §4.6 step 3 then unions these).
func tokenNFA(d TokenDef) *automaton.Automaton {
	tag := automaton.NewAcceptTag(d.ID, d.Priority(), d.Name)
	if d.Literal != "" {
		return regex.ExpandLiteral(d.Literal, tag)
	}
	return regex.ExpandToken(d.Pattern, tag)
}

// assembleDFA unions the NFAs of exactly the given token defs and
// minimizes the result, per spec.md §4.6 step 3. Order is irrelevant
// to the result but is sorted by ID for deterministic construction.
func assembleDFA(defs []TokenDef) (*DFA, error) {
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })

	machines := make([]*automaton.Automaton, len(defs))
	tokens := make(map[int]TokenDef, len(defs))
	for i, d := range defs {
		machines[i] = tokenNFA(d)
		tokens[d.ID] = d
	}

	nfa := automaton.Union(machines...)
	dfa, err := automaton.SubsetConstruct(nfa)
	if err != nil {
		return nil, err
	}
	min, err := automaton.Minimize(dfa)
	if err != nil {
		return nil, err
	}

	return &DFA{Automaton: min, Tokens: tokens}, nil
}

// Global builds the single stateless lexer DFA of spec.md §4.6's
// "when a context lexer is not requested" branch: every token
// (including discards) is unioned and minimized together, and every
// LR state is assigned lexer_id 0.
func Global(defs []TokenDef) (*DFA, error) {
	return assembleDFA(defs)
}
