package lr

import (
	"fmt"

	"github.com/dekarrin/limecc/grammar"
)

// ActionType distinguishes the four things an LR table cell can mean,
// generalizing the teacher's LRActionType enum (LRShift/LRReduce/
// LRAccept/LRError) unchanged: spec.md §4.5's action table has exactly
// these same four outcomes, just keyed by a lookahead tuple instead of
// a single terminal.
type ActionType int

const (
	ActionError ActionType = iota
	ActionShift
	ActionReduce
	ActionAccept
)

// Action is one cell of an LR state's action table.
type Action struct {
	Type ActionType

	// State is the successor state to shift into. Only meaningful when
	// Type is ActionShift.
	State StateID

	// Rule is the production to reduce by. Only meaningful when Type is
	// ActionReduce.
	Rule grammar.Rule
}

// Equal reports whether a and o represent the same action. Two
// ActionReduce entries for the same rule, or two ActionShift entries
// into the same state, are equal even if discovered from different
// items; this is what lets fillActions silently merge an action two
// items agree on instead of reporting a conflict.
func (a Action) Equal(o Action) bool {
	if a.Type != o.Type {
		return false
	}
	switch a.Type {
	case ActionShift:
		return a.State == o.State
	case ActionReduce:
		return a.Rule.Equal(o.Rule)
	default:
		return true
	}
}

func (a Action) String() string {
	switch a.Type {
	case ActionShift:
		return fmt.Sprintf("shift %d", a.State)
	case ActionReduce:
		return fmt.Sprintf("reduce %s", a.Rule.String())
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}
