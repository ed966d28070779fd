// Package grammar holds the immutable value types that every other
// construction phase (regex/automaton, lr, lex) operates on: symbols,
// rules, the grammar itself, and the FIRST_k fixed point over it.
package grammar

import (
	"fmt"
	"strings"
)

// Symbol is an opaque, hashable grammar symbol. Whether a particular
// Symbol value is a terminal or non-terminal is never stored on the
// symbol itself; it is a property of the Grammar it appears in (Grammar.
// IsTerminal).
type Symbol = string

// Epsilon is the empty-string symbol. It is never a member of Rule.Right
// in a well-formed Rule (empty productions are represented by a Right of
// length zero, not by a Right containing Epsilon); it exists so that
// printed forms and the LIME front end have a name for "nothing" to show
// a grammar author.
const Epsilon = Symbol("")

// Rule is an immutable production `Left -> Right`, with an opaque Action
// payload carried along for the (out-of-scope) code emitter to consume
// later. Two rules are equal iff Left, Right, and Action compare equal.
type Rule struct {
	Left   Symbol
	Right  []Symbol
	Action any
}

// Copy returns a deep copy of r (Right is independently sliced; Action is
// not cloned, only re-referenced, since it is opaque to this package).
func (r Rule) Copy() Rule {
	cp := Rule{Left: r.Left, Action: r.Action}
	if r.Right != nil {
		cp.Right = make([]Symbol, len(r.Right))
		copy(cp.Right, r.Right)
	}
	return cp
}

// Equal compares Left, Right, and Action. Action is compared with ==,
// which panics if Action holds a non-comparable dynamic type; callers
// that attach slices/maps as Action should not rely on Rule equality.
func (r Rule) Equal(o any) bool {
	other, ok := o.(Rule)
	if !ok {
		otherPtr, ok := o.(*Rule)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if r.Left != other.Left {
		return false
	}
	if len(r.Right) != len(other.Right) {
		return false
	}
	for i := range r.Right {
		if r.Right[i] != other.Right[i] {
			return false
		}
	}
	return r.Action == other.Action
}

// String renders r as "LEFT -> S1 S2 S3" or "LEFT -> ε" for an empty
// production.
func (r Rule) String() string {
	if len(r.Right) == 0 {
		return fmt.Sprintf("%s -> %s", r.Left, "ε")
	}
	return fmt.Sprintf("%s -> %s", r.Left, strings.Join(r.Right, " "))
}

// mustParseRule parses a one-line "LEFT -> S1 S2 | S3" rule form into one
// Rule per alternative, splitting on the first "->" and then on "|". It
// is used by tests that want to write grammars as text rather than
// construct Rule literals by hand.
func mustParseRule(s string) []Rule {
	rules, err := parseRule(s)
	if err != nil {
		panic(err.Error())
	}
	return rules
}

func parseRule(s string) ([]Rule, error) {
	sides := strings.SplitN(s, "->", 2)
	if len(sides) != 2 {
		return nil, fmt.Errorf("not a rule of form 'LEFT -> RIGHT': %q", s)
	}
	left := strings.TrimSpace(sides[0])
	if left == "" {
		return nil, fmt.Errorf("empty left-hand symbol in rule: %q", s)
	}

	var rules []Rule
	for _, alt := range strings.Split(sides[1], "|") {
		var right []Symbol
		for _, sym := range strings.Fields(alt) {
			if sym == "ε" || sym == "epsilon" {
				continue
			}
			right = append(right, sym)
		}
		rules = append(rules, Rule{Left: left, Right: right})
	}
	return rules, nil
}

// ruleKey is the hash key used by util sets/maps keyed on rule identity.
func ruleKey(r Rule) string {
	return r.String()
}
