// Package limecc is the generator's facade: it chains the lime, lr,
// and lex phases behind a single Generate call, in the spirit of the
// teacher's ictiobus.go Frontend[E] (which chains lexical, syntactic,
// and semantic-analysis phases behind one Analyze call). Here the
// phases are a generator's, not a compiler's: parse the LIME source
// into a grammar and token set, construct its LR(k) automaton, and
// assemble its lexer DFA(s).
package limecc

import (
	"github.com/dekarrin/limecc/automaton"
	"github.com/dekarrin/limecc/icterrors"
	"github.com/dekarrin/limecc/lex"
	"github.com/dekarrin/limecc/lime"
	"github.com/dekarrin/limecc/lr"
	"github.com/dekarrin/limecc/tablecache"
)

// Options configures Generate.
type Options struct {
	// K is the LR lookahead depth, passed to lr.Construct as given:
	// zero builds an LR(0) table.
	K int
}

// Result is everything Generate builds from one LIME source: the
// grammar and token set the lime front end parsed out of it, the
// constructed LR(k) table, the assembled lexer (or per-state lexers,
// for %context_lexer), and a ready-to-store cache entry.
type Result struct {
	Source string
	Spec   *lime.ParsedGrammar
	Table  *lr.Table

	ContextLexer bool
	Lexer        *lex.Lexer
	DFA          *lex.DFA        // non-nil only when !ContextLexer
	Assignment   *lex.Assignment // non-nil only when ContextLexer

	Cache tablecache.Entry
}

// Generate runs the full pipeline over src: lex and parse its LIME
// text (package lime), construct its LR(k) automaton (package lr),
// and assemble its lexer DFA(s) (package lex). Every failure is
// returned as an *icterrors.Error classified per spec.md §7; no
// partial Result is ever returned alongside a non-nil error.
func Generate(src string, opts Options) (*Result, error) {
	k := opts.K

	spec, err := lime.Parse(src)
	if err != nil {
		if pe, ok := err.(*lime.ParseError); ok {
			return nil, icterrors.SpecParse(pe)
		}
		return nil, icterrors.InvalidGrammar(err)
	}

	table, err := lr.Construct(spec.Grammar, k, false)
	if err != nil {
		if ce, ok := err.(*lr.ConflictError); ok {
			return nil, icterrors.LRConflict(int(ce.State), ce.Lookahead, ce.First, ce.Second, ce)
		}
		return nil, icterrors.InvalidGrammar(err)
	}

	res := &Result{
		Source:       src,
		Spec:         spec,
		Table:        table,
		ContextLexer: spec.ContextLexer,
	}

	if spec.ContextLexer {
		assignment, err := lex.Context(table, spec.Tokens)
		if err != nil {
			return nil, wrapLexerErr(err)
		}
		res.Assignment = assignment
		res.Lexer = lex.NewContextLexer(assignment)
	} else {
		dfa, err := lex.Global(spec.Tokens)
		if err != nil {
			return nil, wrapLexerErr(err)
		}
		res.DFA = dfa
		res.Lexer = lex.NewLexer(dfa)
	}

	res.Cache = tablecache.Build(src, spec.Grammar, table, spec.ContextLexer, spec.Tokens)

	return res, nil
}

// wrapLexerErr classifies a lexer-assembly failure per spec.md §7:
// an *automaton.LexerConflictError becomes icterrors.ErrLexerConflict,
// anything else (an unparseable regex reaching this far would be a
// lime-front-end bug, not a grammar defect, but is still reported as
// an invalid-grammar failure rather than panicking) is invalid-grammar.
func wrapLexerErr(err error) error {
	if lc, ok := err.(*automaton.LexerConflictError); ok {
		return icterrors.LexerConflict(lc.OriginA, lc.OriginB, lc)
	}
	return icterrors.InvalidGrammar(err)
}
