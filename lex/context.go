package lex

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/limecc/grammar"
	"github.com/dekarrin/limecc/lr"
)

// Assignment is the result of lexer assembly: one DFA per distinct
// admissible-token equivalence class, plus the lexer_id each LR state
// was assigned (spec.md §3's State.lexer_id, §4.6 steps 1-3).
type Assignment struct {
	DFAs    []*DFA
	LexerID map[lr.StateID]int
}

// admissible computes admissible(s) = terminals in goto(s) ∪ terminals
// in lookahead keys of action(s) ∪ discard-token ids, per spec.md §4.6
// step 1. discardIDs is every TokenDef.ID with Discard set; a discard
// token must be admissible everywhere a context lexer is in effect,
// since panic-mode recovery and whitespace-skipping have to work in
// every state, not just the ones whose grammar rules mention them.
func admissible(s *lr.State, bySymbol map[grammar.Symbol]int, discardIDs []int) map[int]bool {
	out := map[int]bool{}
	for _, sym := range s.GotoSymbols() {
		if id, ok := bySymbol[sym]; ok {
			out[id] = true
		}
	}
	for _, sym := range s.LookaheadSymbols() {
		if id, ok := bySymbol[sym]; ok {
			out[id] = true
		}
	}
	for _, id := range discardIDs {
		out[id] = true
	}
	return out
}

func admissibleKey(set map[int]bool) string {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// Context builds one DFA per admissible-token equivalence class over
// table's states (spec.md §4.6's "%context_lexer" branch). defs must
// cover every terminal of the grammar table was built over.
func Context(table *lr.Table, defs []TokenDef) (*Assignment, error) {
	bySymbol := make(map[grammar.Symbol]int, len(defs))
	byID := make(map[int]TokenDef, len(defs))
	var discardIDs []int
	for _, d := range defs {
		bySymbol[d.Symbol] = d.ID
		byID[d.ID] = d
		if d.Discard {
			discardIDs = append(discardIDs, d.ID)
		}
	}

	classOf := map[string]int{}
	var classDefs [][]TokenDef
	lexerID := make(map[lr.StateID]int, len(table.States))

	for _, s := range table.States {
		adm := admissible(s, bySymbol, discardIDs)
		key := admissibleKey(adm)

		id, ok := classOf[key]
		if !ok {
			id = len(classDefs)
			classOf[key] = id

			ids := make([]int, 0, len(adm))
			for tid := range adm {
				ids = append(ids, tid)
			}
			sort.Ints(ids)
			var ds []TokenDef
			for _, tid := range ids {
				ds = append(ds, byID[tid])
			}
			classDefs = append(classDefs, ds)
		}
		lexerID[s.ID()] = id
	}

	dfas := make([]*DFA, len(classDefs))
	for i, ds := range classDefs {
		dfa, err := assembleDFA(ds)
		if err != nil {
			return nil, err
		}
		dfas[i] = dfa
	}

	return &Assignment{DFAs: dfas, LexerID: lexerID}, nil
}
