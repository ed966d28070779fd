package util

import "sort"

// Container is the minimal capability shared by every collection type in
// this package: the ability to list its elements. ISet embeds it so that
// set implementations are usable anywhere a plain element lister is wanted.
type Container[E any] interface {
	// Elements returns the elements of the container. No particular order
	// is guaranteed unless the implementation says otherwise.
	Elements() []E
}

// OrderedKeys returns the keys of m sorted alphabetically, for callers
// that need a deterministic iteration order over a map. No package of
// this module calls it at present.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Stack is a simple LIFO stack. The zero value is an empty, usable stack.
type Stack[E any] struct {
	Of []E
}

// Push adds v to the top of the stack.
func (s *Stack[E]) Push(v E) {
	s.Of = append(s.Of, v)
}

// Pop removes and returns the top of the stack. Panics if the stack is
// empty; callers must check Len() first.
func (s *Stack[E]) Pop() E {
	n := len(s.Of)
	v := s.Of[n-1]
	s.Of = s.Of[:n-1]
	return v
}

// Peek returns the top of the stack without removing it. Panics if the
// stack is empty.
func (s *Stack[E]) Peek() E {
	return s.Of[len(s.Of)-1]
}

// Len returns the number of elements currently on the stack.
func (s *Stack[E]) Len() int {
	return len(s.Of)
}
