package limecc

import (
	"fmt"
	"io"

	"github.com/dekarrin/limecc/grammar"
	"github.com/dekarrin/limecc/icterrors"
	"github.com/dekarrin/limecc/lex"
	"github.com/dekarrin/limecc/lime"
	"github.com/dekarrin/limecc/lr"
)

// TestOutcome is the result of running one %test directive (spec.md
// §6's "grammar-level acceptance test") against a Result's
// constructed table.
type TestOutcome struct {
	Test     lime.Test
	Accepted bool
	Reduced  []grammar.Rule
	Err      error
}

// RunTests drives every %test directive's fixed symbol sequence
// through the constructed table and reports which passed. Grounded on
// lr/lr_test.go's driveTrace: a plain shift-reduce stack exercising
// Table.Action/Table.Goto. This and ParseInput below are the only
// places this generator ever runs a parser over anything but its own
// LIME input, and they stop at accept/reject plus a rule-reduction
// trace — never a parse tree — per the explicit non-goal of a general
// runtime parser.
func (r *Result) RunTests() []TestOutcome {
	outcomes := make([]TestOutcome, len(r.Spec.Tests))
	for i, tc := range r.Spec.Tests {
		reduced, ok := driveSymbols(r.Table, tc.Sequence)
		outcome := TestOutcome{Test: tc, Accepted: ok, Reduced: reduced}
		if !ok {
			outcome.Err = fmt.Errorf("%%test %s: sequence %v was rejected", tc.Root, tc.Sequence)
		} else if len(reduced) > 0 && reduced[len(reduced)-1].Left != tc.Root {
			outcome.Accepted = false
			outcome.Err = fmt.Errorf("%%test %s: accepted but reduced to %q, not the declared root", tc.Root, reduced[len(reduced)-1].Left)
		}
		outcomes[i] = outcome
	}
	return outcomes
}

// driveSymbols runs a fixed symbol sequence through table starting at
// state 0, exactly as lr/lr_test.go's driveTrace does, and returns the
// rules reduced in order plus whether an accept action was reached.
func driveSymbols(table *lr.Table, input []grammar.Symbol) ([]grammar.Rule, bool) {
	type frame struct {
		state lr.StateID
		sym   grammar.Symbol
	}
	stack := []frame{{state: 0}}
	var reduced []grammar.Rule
	pos := 0

	for {
		top := stack[len(stack)-1]
		var la []grammar.Symbol
		if pos < len(input) {
			la = []grammar.Symbol{input[pos]}
		}
		act, ok := table.States[top.state].Action(la)
		if !ok {
			return reduced, false
		}

		switch act.Type {
		case lr.ActionShift:
			stack = append(stack, frame{state: act.State, sym: input[pos]})
			pos++
		case lr.ActionReduce:
			reduced = append(reduced, act.Rule)
			n := len(act.Rule.Right)
			stack = stack[:len(stack)-n]
			from := stack[len(stack)-1].state
			next, ok := table.Goto(from, act.Rule.Left)
			if !ok {
				return reduced, false
			}
			stack = append(stack, frame{state: next, sym: act.Rule.Left})
		case lr.ActionAccept:
			return reduced, true
		default:
			return reduced, false
		}
	}
}

// ParseInput lexes r with the constructed lexer and drives the result
// through the LR table, one token at a time, reselecting the active
// DFA before each fetch when the grammar requested a context lexer
// (spec.md §4.6: "the LR driver knows its own current state's
// lexer_id"). Used by cmd/limecc's --parse flag. Like RunTests, this
// stops at an accept/reject verdict and a rule-reduction trace; it
// never builds a parse tree, since that belongs to the (out-of-scope)
// emitted parser, not the generator.
func (r *Result) ParseInput(input io.Reader) ([]grammar.Rule, bool, error) {
	stream, err := r.Lexer.Open(input)
	if err != nil {
		return nil, false, err
	}

	type frame struct {
		state lr.StateID
		sym   grammar.Symbol
	}
	stack := []frame{{state: 0}}
	var reduced []grammar.Rule

	var cur lex.Token
	var curValid bool

	fetch := func() error {
		if curValid {
			return nil
		}
		if r.ContextLexer {
			top := stack[len(stack)-1]
			stream.Select(r.Assignment.LexerID[top.state])
		}
		tok := stream.Next()
		if tok.Symbol == lex.ErrorSymbol {
			return icterrors.UnexpectedToken(tok.Lexeme, tok.Line, tok.LinePos)
		}
		cur = tok
		curValid = true
		return nil
	}

	for {
		if err := fetch(); err != nil {
			return reduced, false, err
		}

		top := stack[len(stack)-1]
		var la []grammar.Symbol
		if cur.Symbol != lex.EndOfText {
			la = []grammar.Symbol{cur.Symbol}
		}
		act, ok := r.Table.States[top.state].Action(la)
		if !ok {
			return reduced, false, icterrors.UnexpectedToken(cur.Lexeme, cur.Line, cur.LinePos)
		}

		switch act.Type {
		case lr.ActionShift:
			stack = append(stack, frame{state: act.State, sym: cur.Symbol})
			curValid = false
		case lr.ActionReduce:
			reduced = append(reduced, act.Rule)
			n := len(act.Rule.Right)
			stack = stack[:len(stack)-n]
			from := stack[len(stack)-1].state
			next, ok := r.Table.Goto(from, act.Rule.Left)
			if !ok {
				return reduced, false, nil
			}
			stack = append(stack, frame{state: next, sym: act.Rule.Left})
		case lr.ActionAccept:
			return reduced, true, nil
		default:
			return reduced, false, nil
		}
	}
}
