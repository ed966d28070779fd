// Package regex parses the regular-expression syntax of spec.md §4.2
// into a four-node AST (Lit/Cat/Alt/Rep) and expands that AST into an
// ε-NFA fragment via the McNaughton-Yamada-Thompson construction, over
// automaton.CharLabel-labeled edges instead of single runes.
package regex

import "github.com/dekarrin/limecc/automaton"

// Node is a regex AST node: one of Lit, Cat, Alt, Rep.
type Node interface {
	node()
}

// Lit matches a single rune drawn from Label.
type Lit struct {
	Label automaton.CharLabel
}

func (Lit) node() {}

// Cat matches its items in sequence.
type Cat struct {
	Items []Node
}

func (Cat) node() {}

// Alt matches any one of its items.
type Alt struct {
	Items []Node
}

func (Alt) node() {}

// Rep matches zero or more repetitions of Item (Kleene star). `+` and
// `?` are not separate AST nodes: the parser desugars `a+` to
// `Cat{a, Rep{a}}` and `a?` to `Alt{a, Cat{}}` (an empty Cat matches the
// empty string), keeping the AST to exactly the four kinds spec.md §4.2
// names.
type Rep struct {
	Item Node
}

func (Rep) node() {}
