// Package icterrors collects the generator's error taxonomy (spec.md
// §7) behind one set of sentinel values and a typed wrapper, so a
// caller can classify a failure with errors.Is regardless of which
// package produced it. Grounded on the teacher's server/serr package:
// a handful of package-level sentinels plus an Error type that carries
// one or more causes and participates in errors.Is via Unwrap/Is.
package icterrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dekarrin/limecc/internal/util"
)

// Sentinels for spec.md §7's five error classes. A returned error
// always Is() exactly one of these, in addition to carrying whatever
// package-specific detail (conflicting items, token origins, source
// position) the failing component attached.
var (
	ErrSpecParse       = errors.New("specification parsing error")
	ErrInvalidGrammar  = errors.New("invalid grammar")
	ErrLRConflict      = errors.New("LR conflict")
	ErrLexerConflict   = errors.New("lexer conflict")
	ErrUnexpectedToken = errors.New("unexpected token")
)

// Error is a typed error carrying a message and one or more causes,
// the first of which is expected to be one of this package's
// sentinels so callers can classify it with errors.Is. Mirrors the
// teacher's serr.Error shape (msg + cause slice, Unwrap/Is over the
// whole cause list) but keeps the cause list ordered so the sentinel
// class is always cause[0] by convention rather than by searching.
type Error struct {
	msg   string
	cause []error
}

// New builds an Error with msg and the given causes; causes[0] should
// be one of this package's sentinel values.
func New(msg string, causes ...error) *Error {
	return &Error{msg: msg, cause: causes}
}

func (e *Error) Error() string {
	if e.msg == "" && len(e.cause) > 0 {
		return e.cause[0].Error()
	}
	if len(e.cause) > 0 {
		return e.msg + ": " + e.cause[0].Error()
	}
	return e.msg
}

func (e *Error) Unwrap() []error {
	if len(e.cause) == 0 {
		return nil
	}
	return e.cause
}

func (e *Error) Is(target error) bool {
	for _, c := range e.cause {
		if errors.Is(c, target) {
			return true
		}
	}
	return false
}

// SpecParse wraps a *lime.ParseError (or any malformed-directive
// error) as spec.md §7's "specification parsing errors" class.
func SpecParse(err error) *Error {
	return New("", ErrSpecParse, err)
}

// InvalidGrammar wraps a structural grammar defect (empty grammar,
// unknown root, contradictory type annotation, undefined symbol) as
// spec.md §7's "invalid grammar" class.
func InvalidGrammar(err error) *Error {
	return New("", ErrInvalidGrammar, err)
}

// LRConflict wraps an *lr.ConflictError, naming the state, the
// lookahead and the two conflicting actions, per spec.md §7.
func LRConflict(state int, lookahead []string, first, second fmt.Stringer, underlying error) *Error {
	la := "ε"
	if len(lookahead) > 0 {
		la = strings.Join(lookahead, " ")
	}
	msg := fmt.Sprintf("in state %d on lookahead %q, %s conflicts with %s", state, la, first, second)
	return New(msg, ErrLRConflict, underlying)
}

// LexerConflict wraps an *automaton.LexerConflictError, naming both
// offending token origins, per spec.md §7.
func LexerConflict(originA, originB string, underlying error) *Error {
	msg := fmt.Sprintf("tokens %q and %q accept the same string with equal priority", originA, originB)
	return New(msg, ErrLexerConflict, underlying)
}

// UnexpectedToken wraps a parse-time unexpected-token failure (either
// the LIME front end's own parse, or a generated parser's self-test),
// carrying the offending token's text and source position.
func UnexpectedToken(tokenText string, line, col int) *Error {
	msg := fmt.Sprintf("unexpected token %q at line %d, col %d", tokenText, line, col)
	return New(msg, ErrUnexpectedToken)
}

// JoinList formats a list of problems into one readable sentence,
// grounded on the teacher's internal/util.MakeTextList (the same
// Oxford-comma joiner used for player-facing text there, reused here
// for diagnostic text instead).
func JoinList(items []string) string {
	return util.MakeTextList(items)
}
