package grammar

import (
	"fmt"
	"strings"
)

// LR0Item is a dotted production with no lookahead: NonTerminal -> Left . Right.
// Left is everything already consumed (before the dot); Right is
// everything remaining (after the dot). An item is final (reduce-ready)
// when Right is empty.
type LR0Item struct {
	NonTerminal Symbol
	Left        []Symbol
	Right       []Symbol
}

// Rule reconstructs the production this item is dotting into.
func (lr0 LR0Item) Rule() Rule {
	right := make([]Symbol, 0, len(lr0.Left)+len(lr0.Right))
	right = append(right, lr0.Left...)
	right = append(right, lr0.Right...)
	return Rule{Left: lr0.NonTerminal, Right: right}
}

// Final reports whether the dot has reached the end of the production.
func (lr0 LR0Item) Final() bool {
	return len(lr0.Right) == 0
}

// NextSymbol returns the symbol immediately after the dot and true, or
// the zero Symbol and false if the item is Final.
func (lr0 LR0Item) NextSymbol() (Symbol, bool) {
	if lr0.Final() {
		return "", false
	}
	return lr0.Right[0], true
}

// Advance returns a copy of lr0 with the dot moved one symbol to the
// right. It panics if lr0 is already Final; callers must check that
// first (mirrors NextSymbol's ok-pattern).
func (lr0 LR0Item) Advance() LR0Item {
	next := LR0Item{
		NonTerminal: lr0.NonTerminal,
		Left:        make([]Symbol, len(lr0.Left)+1),
		Right:       make([]Symbol, len(lr0.Right)-1),
	}
	copy(next.Left, lr0.Left)
	next.Left[len(lr0.Left)] = lr0.Right[0]
	copy(next.Right, lr0.Right[1:])
	return next
}

func (lr0 LR0Item) Equal(o any) bool {
	other, ok := o.(LR0Item)
	if !ok {
		otherPtr, ok := o.(*LR0Item)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if lr0.NonTerminal != other.NonTerminal {
		return false
	}
	if len(lr0.Left) != len(other.Left) || len(lr0.Right) != len(other.Right) {
		return false
	}
	for i := range lr0.Left {
		if lr0.Left[i] != other.Left[i] {
			return false
		}
	}
	for i := range lr0.Right {
		if lr0.Right[i] != other.Right[i] {
			return false
		}
	}
	return true
}

func (lr0 LR0Item) String() string {
	nonTermPhrase := ""
	if lr0.NonTerminal != "" {
		nonTermPhrase = fmt.Sprintf("%s -> ", lr0.NonTerminal)
	}

	left := strings.Join(lr0.Left, " ")
	right := strings.Join(lr0.Right, " ")
	if len(left) > 0 {
		left += " "
	}
	if len(right) > 0 {
		right = " " + right
	}
	return fmt.Sprintf("%s%s.%s", nonTermPhrase, left, right)
}

// Item is an LR(k) item: an LR0Item (the core) plus a lookahead tuple of
// up to k terminal symbols. Generalizes the teacher's LR1Item (a single
// lookahead symbol) to arbitrary k, since spec.md's canonical
// construction is parameterized on k rather than fixed at 1.
type Item struct {
	LR0Item
	Lookahead []Symbol
}

// Core strips the lookahead, returning just the LR0Item. Two items with
// different lookaheads but the same core return equal LR0Items.
func (it Item) Core() LR0Item {
	return it.LR0Item
}

func (it Item) Equal(o any) bool {
	other, ok := o.(Item)
	if !ok {
		otherPtr, ok := o.(*Item)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if !it.LR0Item.Equal(other.LR0Item) {
		return false
	}
	if len(it.Lookahead) != len(other.Lookahead) {
		return false
	}
	for i := range it.Lookahead {
		if it.Lookahead[i] != other.Lookahead[i] {
			return false
		}
	}
	return true
}

// Copy returns a deep copy of it.
func (it Item) Copy() Item {
	cp := Item{LR0Item: LR0Item{NonTerminal: it.NonTerminal}}
	cp.Left = append([]Symbol{}, it.Left...)
	cp.Right = append([]Symbol{}, it.Right...)
	cp.Lookahead = append([]Symbol{}, it.Lookahead...)
	return cp
}

// Advance returns a copy of it with the dot moved one symbol right and
// the lookahead preserved unchanged.
func (it Item) Advance() Item {
	return Item{LR0Item: it.LR0Item.Advance(), Lookahead: append([]Symbol{}, it.Lookahead...)}
}

func (it Item) String() string {
	return fmt.Sprintf("%s, %s", it.LR0Item.String(), strings.Join(it.Lookahead, " "))
}

// laKey turns a lookahead tuple into a map/set key, since Go slices
// cannot be map keys directly. Used wherever lookahead tuples are
// deduplicated (FIRST_k sets, item-set closures).
func laKey(la []Symbol) string {
	return strings.Join(la, "\x1f")
}
