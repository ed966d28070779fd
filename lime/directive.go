package lime

import (
	"fmt"

	"github.com/dekarrin/limecc/grammar"
	"github.com/dekarrin/limecc/lex"
)

// ParseError is a specification-parsing error (spec.md §7's first error
// class): unexpected or malformed LIME tokens, carrying source position.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Col, e.Msg)
}

// RuleMeta carries the named-variable bookkeeping a rule_stmt attaches
// to its left-hand side and each of its right-hand items (the "(v)" /
// "(a)" capture names of spec.md §6's form table), parallel to
// ParsedGrammar.Grammar.Rules(). Target-language code generation is out
// of this package's scope, so nothing here interprets these names; they
// are carried through opaquely for whatever emits code from the result,
// the same role grammar.Rule.Action plays for action snippets.
type RuleMeta struct {
	LHSVar   string
	ItemVars []string
}

// Test is one %test directive (spec.md §6: "grammar-level acceptance
// test"): an expected derivation of Root from the given symbol
// sequence, used to self-check the assembled grammar and its tables
// before they're trusted.
type Test struct {
	Root     grammar.Symbol
	Sequence []grammar.Symbol
}

// ParsedGrammar is everything a LIME specification text yields: a
// grammar ready for lr.Construct, the token definitions that grammar's
// terminals lex as (ready for lex.Global or lex.Context, depending on
// ContextLexer), and the surrounding metadata spec.md §6's directive
// table describes.
type ParsedGrammar struct {
	Grammar *grammar.Grammar
	Tokens  []lex.TokenDef
	Meta    []RuleMeta // parallel to Grammar.Rules()

	ContextLexer bool
	TokenType    string
	Includes     []string
	Tests        []Test

	// Types maps a symbol to its associated target-language type
	// snippet (spec.md §6's "A :: {type}"). A symbol present in Void
	// instead has no value ("A :: void") and must not appear in Types.
	Types map[grammar.Symbol]string
	Void  map[grammar.Symbol]bool
}
