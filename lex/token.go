// Package lex assembles the per-token NFA fragments produced by the
// regex front-end into the lexer DFA(s) of spec.md §4.6, and drives
// those DFAs over source text at runtime. Grounded on the teacher's
// lex package for the runtime shape (lazy.go's panic-mode recovery,
// line/position tracking, Peek-via-mark-restore) and on
// automaton/regex for the DFA construction itself, which the teacher
// never finished (lex/regex.go is a TODO stub delegating to
// regexp.Regexp instead).
package lex

import (
	"github.com/dekarrin/limecc/grammar"
	"github.com/dekarrin/limecc/regex"
)

// TokenDef is one token definition contributed by the LIME front-end:
// a grammar terminal paired with the regex (or literal) pattern that
// lexes it, spec.md §3's AcceptTag minus the origins bookkeeping
// (origins are derived from Name at assembly time).
type TokenDef struct {
	// ID is the dense integer identity spec.md §3's AcceptTag carries.
	// Assigned by the caller (the lime front-end), not by this
	// package, since it must agree with the grammar's own terminal
	// bookkeeping.
	ID int

	// Symbol is the grammar terminal this token produces.
	Symbol grammar.Symbol

	// Name is a human-readable origin label used in lexer-conflict
	// diagnostics (spec.md §4.6 "names both offending tokens").
	Name string

	// Pattern is the parsed regex AST to match, or nil if Literal is
	// set instead.
	Pattern regex.Node

	// Literal, when non-empty, is matched verbatim instead of via
	// Pattern. Literal and Pattern are mutually exclusive.
	Literal string

	// Discard marks a token the lexer silently skips (spec.md §6
	// "%discard"): it still participates in NFA union/admissibility,
	// but TokenStream.Next never returns it.
	Discard bool
}

// Priority returns the AcceptTag priority for d: literal tokens win
// ties over regex tokens (spec.md §3: "Literal tokens receive priority
// 1; regex tokens priority 0").
func (d TokenDef) Priority() int {
	if d.Literal != "" {
		return 1
	}
	return 0
}
