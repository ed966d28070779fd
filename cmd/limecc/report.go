package main

import (
	"fmt"
	"strings"

	"github.com/dekarrin/limecc"
	"github.com/dekarrin/rosed"
)

const reportWidth = 100

// printLimeGrammar implements --print-lime-grammar, grounded on
// grammar.Grammar.String() (already a full rule listing), printed as
// is with no heading or further formatting.
func printLimeGrammar(res *limecc.Result) {
	fmt.Println(res.Spec.Grammar.String())
}

// printStates implements --print-states: one table row per LR state,
// grounded on the teacher's rosed.Edit(...).InsertTableOpts rendering
// (internal/tunascript/grammar.go's LL1Table.String()).
func printStates(res *limecc.Result) {
	data := [][]string{{"state", "items", "actions", "goto"}}
	for _, s := range res.Table.States {
		var items []string
		for _, it := range s.Items() {
			items = append(items, it.String())
		}

		var actions []string
		for la, act := range s.Actions() {
			label := la
			if label == "" {
				label = "ε"
			}
			actions = append(actions, fmt.Sprintf("%s: %s", label, act))
		}

		var gotos []string
		for _, sym := range s.GotoSymbols() {
			to, _ := s.Goto(sym)
			gotos = append(gotos, fmt.Sprintf("%s -> %d", sym, to))
		}

		data = append(data, []string{
			fmt.Sprintf("%d", s.ID()),
			strings.Join(items, "\n"),
			strings.Join(actions, "\n"),
			strings.Join(gotos, "\n"),
		})
	}

	out := rosed.Edit("").
		InsertTableOpts(0, data, reportWidth, rosed.Options{TableHeaders: true, TableBorders: true}).
		String()
	fmt.Println(out)
}

// printDFAs implements --print-dfas: one automaton dump per assembled
// DFA, via automaton.Automaton's own String(). A stateless grammar has
// exactly one; a %context_lexer grammar has one per admissible-token
// equivalence class (spec.md §4.6).
func printDFAs(res *limecc.Result) {
	if res.ContextLexer {
		for i, dfa := range res.Assignment.DFAs {
			fmt.Printf("--- lexer_id %d ---\n", i)
			fmt.Println(dfa.Automaton.String())
		}
		return
	}
	fmt.Println(res.DFA.Automaton.String())
}
