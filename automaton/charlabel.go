// Package automaton implements the character-labeled finite-automaton
// machinery shared by every DFA-construction phase: the CharLabel
// algebra, a small int-ID state arena, ε-NFA subset construction, and
// Hopcroft-style DFA minimization. None of it is specific to regular
// expressions; the regex package only supplies the Thompson expansion
// that builds an Automaton from a parsed pattern.
package automaton

import "sort"

// CharLabel is a set of runes represented as (explicit members,
// inverted), so that intersection/union/difference of two labels can be
// computed in closed form without ever enumerating the alphabet (spec
// requires this: the alphabet is Unicode, which is far too large to walk
// rune-by-rune). Grounded on the `Lit` class of the original Python
// implementation's regex parser (`explicit charset, inv flag`, and the
// four case __and__/__or__/__sub__ formulas below).
type CharLabel struct {
	Chars    map[rune]bool
	Inverted bool
}

// NewCharLabel builds a non-inverted label containing exactly the given
// runes.
func NewCharLabel(runes ...rune) CharLabel {
	m := make(map[rune]bool, len(runes))
	for _, r := range runes {
		m[r] = true
	}
	return CharLabel{Chars: m}
}

// NewCharLabelRange builds a non-inverted label of every rune in
// [lo, hi] inclusive.
func NewCharLabelRange(lo, hi rune) CharLabel {
	m := map[rune]bool{}
	for r := lo; r <= hi; r++ {
		m[r] = true
	}
	return CharLabel{Chars: m}
}

// Any is the label matching every rune whatsoever: the empty explicit
// set, inverted. This is what `.` compiles to (regex package), matching
// the original's `Lit(”, inv=True)` — note this deliberately does not
// exclude newline, since neither spec.md nor the original draws that
// exception.
func Any() CharLabel {
	return CharLabel{Chars: map[rune]bool{}, Inverted: true}
}

// Contains reports whether r is a member of the label.
func (l CharLabel) Contains(r rune) bool {
	return l.Inverted != l.Chars[r]
}

// Empty reports whether the label matches no rune at all. Only possible
// for a non-inverted label with no explicit members.
func (l CharLabel) Empty() bool {
	return !l.Inverted && len(l.Chars) == 0
}

// Intersect returns the label matching runes in both l and o. Mirrors
// the original's Lit.__and__: four cases on the two Inverted flags.
func (l CharLabel) Intersect(o CharLabel) CharLabel {
	switch {
	case !l.Inverted && !o.Inverted:
		return CharLabel{Chars: setAnd(l.Chars, o.Chars)}
	case l.Inverted && !o.Inverted:
		return CharLabel{Chars: setSub(o.Chars, l.Chars)}
	case !l.Inverted && o.Inverted:
		return CharLabel{Chars: setSub(l.Chars, o.Chars)}
	default: // both inverted
		return CharLabel{Chars: setOr(l.Chars, o.Chars), Inverted: true}
	}
}

// Union returns the label matching runes in either l or o. Mirrors the
// original's Lit.__or__.
func (l CharLabel) Union(o CharLabel) CharLabel {
	switch {
	case !l.Inverted && !o.Inverted:
		return CharLabel{Chars: setOr(l.Chars, o.Chars)}
	case l.Inverted && !o.Inverted:
		return CharLabel{Chars: setSub(l.Chars, o.Chars), Inverted: true}
	case !l.Inverted && o.Inverted:
		return CharLabel{Chars: setSub(o.Chars, l.Chars), Inverted: true}
	default:
		return CharLabel{Chars: setAnd(l.Chars, o.Chars), Inverted: true}
	}
}

// Difference returns the label matching runes in l but not in o.
// Mirrors the original's Lit.__sub__.
func (l CharLabel) Difference(o CharLabel) CharLabel {
	switch {
	case !l.Inverted && !o.Inverted:
		return CharLabel{Chars: setSub(l.Chars, o.Chars)}
	case l.Inverted && !o.Inverted:
		return CharLabel{Chars: setOr(l.Chars, o.Chars), Inverted: true}
	case !l.Inverted && o.Inverted:
		return CharLabel{Chars: setAnd(l.Chars, o.Chars)}
	default:
		return CharLabel{Chars: setSub(o.Chars, l.Chars)}
	}
}

func setAnd(a, b map[rune]bool) map[rune]bool {
	out := map[rune]bool{}
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	for r := range small {
		if big[r] {
			out[r] = true
		}
	}
	return out
}

func setOr(a, b map[rune]bool) map[rune]bool {
	out := make(map[rune]bool, len(a)+len(b))
	for r := range a {
		out[r] = true
	}
	for r := range b {
		out[r] = true
	}
	return out
}

func setSub(a, b map[rune]bool) map[rune]bool {
	out := map[rune]bool{}
	for r := range a {
		if !b[r] {
			out[r] = true
		}
	}
	return out
}

// key returns a canonical, order-independent string for l, used to
// dedupe identical labels during subset construction and minimization.
func (l CharLabel) key() string {
	runes := make([]rune, 0, len(l.Chars))
	for r := range l.Chars {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	sb := make([]byte, 0, len(runes)*4+1)
	if l.Inverted {
		sb = append(sb, '!')
	}
	for _, r := range runes {
		sb = append(sb, []byte(string(r))...)
		sb = append(sb, 0)
	}
	return string(sb)
}

func (l CharLabel) String() string {
	runes := make([]rune, 0, len(l.Chars))
	for r := range l.Chars {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	prefix := ""
	if l.Inverted {
		prefix = "^"
	}
	return "[" + prefix + string(runes) + "]"
}
