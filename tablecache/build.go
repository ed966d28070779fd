package tablecache

import (
	"strings"

	"github.com/dekarrin/limecc/grammar"
	"github.com/dekarrin/limecc/lex"
	"github.com/dekarrin/limecc/lr"
)

// laKeySep must match lr's own internal lookahead-tuple join separator
// so StateSnapshot.Actions keys are exactly what lr.State.Actions()
// already hands back (lr keeps that separator unexported, so it's
// reproduced here rather than imported).
const laKeySep = "\x1f"

// Build converts a constructed grammar/table/token set into an Entry
// ready for Store, keyed by src's hash.
func Build(src string, g *grammar.Grammar, table *lr.Table, contextLexer bool, tokens []lex.TokenDef) Entry {
	return Entry{
		SourceHash: HashSource(src),
		Grammar:    snapshotGrammar(g),
		States:     snapshotStates(table),
		Lexer:      snapshotLexer(contextLexer, tokens),
	}
}

func snapshotGrammar(g *grammar.Grammar) GrammarSnapshot {
	rules := g.Rules()
	out := GrammarSnapshot{
		Root:  g.StartSymbol(),
		Rules: make([]RuleSnapshot, len(rules)),
	}
	for i, r := range rules {
		out.Rules[i] = RuleSnapshot{Left: r.Left, Right: append([]string{}, r.Right...)}
	}
	return out
}

func snapshotStates(table *lr.Table) []StateSnapshot {
	out := make([]StateSnapshot, len(table.States))
	for i, s := range table.States {
		gotos := map[string]int{}
		for _, sym := range s.GotoSymbols() {
			target, _ := s.Goto(sym)
			gotos[sym] = int(target)
		}

		actions := map[string]ActionSnapshot{}
		for key, act := range s.Actions() {
			snap := ActionSnapshot{}
			switch act.Type {
			case lr.ActionShift:
				snap.Kind = "shift"
				snap.ShiftTo = int(act.State)
			case lr.ActionReduce:
				snap.Kind = "reduce"
				snap.RuleLeft = act.Rule.Left
				snap.RuleRight = append([]string{}, act.Rule.Right...)
			case lr.ActionAccept:
				snap.Kind = "accept"
			default:
				snap.Kind = "error"
			}
			actions[key] = snap
		}

		out[i] = StateSnapshot{ID: int(s.ID()), Gotos: gotos, Actions: actions}
	}
	return out
}

func snapshotLexer(contextLexer bool, tokens []lex.TokenDef) LexerSnapshot {
	names := make([]string, len(tokens))
	for i, t := range tokens {
		names[i] = t.Name
	}
	return LexerSnapshot{ContextLexer: contextLexer, TokenNames: names}
}

// LookaheadKey joins a lookahead tuple the same way lr's internal
// laKey does, so a caller walking StateSnapshot.Actions can look up a
// cell by the symbols it's actually about to see.
func LookaheadKey(lookahead []grammar.Symbol) string {
	return strings.Join(lookahead, laKeySep)
}
