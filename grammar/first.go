package grammar

// TupleSet is a deduplicated set of terminal k-prefix tuples, the value
// type FIRST_k produces both per-nonterminal and for arbitrary words.
type TupleSet struct {
	byKey map[string][]Symbol
}

// NewTupleSet returns an empty TupleSet.
func NewTupleSet() *TupleSet {
	return &TupleSet{byKey: map[string][]Symbol{}}
}

// Add inserts tuple if not already present.
func (ts *TupleSet) Add(tuple []Symbol) {
	k := laKey(tuple)
	if _, ok := ts.byKey[k]; ok {
		return
	}
	cp := append([]Symbol{}, tuple...)
	ts.byKey[k] = cp
}

// Has reports whether tuple is a member.
func (ts *TupleSet) Has(tuple []Symbol) bool {
	_, ok := ts.byKey[laKey(tuple)]
	return ok
}

// Len returns the number of distinct tuples.
func (ts *TupleSet) Len() int {
	return len(ts.byKey)
}

// Elements returns every tuple in the set, in no particular order.
func (ts *TupleSet) Elements() [][]Symbol {
	out := make([][]Symbol, 0, len(ts.byKey))
	for _, t := range ts.byKey {
		out = append(out, t)
	}
	return out
}

// union adds every tuple of other into ts, reporting whether ts grew
// (used by the fixed-point loop to detect convergence).
func (ts *TupleSet) union(other *TupleSet) (grew bool) {
	for k, t := range other.byKey {
		if _, ok := ts.byKey[k]; !ok {
			ts.byKey[k] = t
			grew = true
		}
	}
	return grew
}

func prefixK(seq []Symbol, k int) []Symbol {
	if len(seq) <= k {
		return seq
	}
	return seq[:k]
}

// FirstK is the FIRST_k table of a grammar: for every non-terminal, the
// set of length-k (or shorter, at the true end of input) prefixes of
// terminal strings derivable from it.
type FirstK struct {
	k     int
	g     *Grammar
	table map[Symbol]*TupleSet
}

// ComputeFirstK builds the FIRST_k table for g via the Dragon-book fixed
// point (spec.md §4.1): start every non-terminal at the empty set, then
// repeatedly take the union of first(rhs) into FIRST_k(lhs) for every
// rule until a full pass leaves every set unchanged. Termination is
// guaranteed because the table is monotone non-decreasing in a finite
// lattice (there are only finitely many distinct k-prefixes over the
// grammar's finite terminal alphabet).
func ComputeFirstK(g *Grammar, k int) *FirstK {
	f := &FirstK{k: k, g: g, table: map[Symbol]*TupleSet{}}
	for _, nt := range g.NonTerminals() {
		f.table[nt] = NewTupleSet()
	}

	for {
		grew := false
		for _, r := range g.rules {
			rhsFirst := f.First(r.Right)
			if f.table[r.Left].union(rhsFirst) {
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	return f
}

// K returns the k this table was computed for.
func (f *FirstK) K() int {
	return f.k
}

// Of returns FIRST_k(sym): the table entry if sym is a non-terminal, or
// the singleton {(sym,)} if sym is terminal (first1, per spec.md §4.1).
func (f *FirstK) Of(sym Symbol) *TupleSet {
	if f.g.IsNonTerminal(sym) {
		if ts, ok := f.table[sym]; ok {
			return ts
		}
		return NewTupleSet()
	}
	ts := NewTupleSet()
	ts.Add([]Symbol{sym})
	return ts
}

// First computes first(word): a left fold starting from {()}, replacing
// the running set R with { prefixK(u·v) | u ∈ R, v ∈ first1(s) } for
// each symbol s in word, in order. Folding short-circuits once every
// element of R has already reached length k, since appending more
// symbols cannot change a k-length prefix.
func (f *FirstK) First(word []Symbol) *TupleSet {
	running := NewTupleSet()
	running.Add(nil)

	for _, s := range word {
		if f.allAtLengthK(running) {
			break
		}
		next := NewTupleSet()
		for _, u := range running.Elements() {
			for _, v := range f.Of(s).Elements() {
				combined := append(append([]Symbol{}, u...), v...)
				next.Add(prefixK(combined, f.k))
			}
		}
		running = next
	}

	return running
}

func (f *FirstK) allAtLengthK(ts *TupleSet) bool {
	if ts.Len() == 0 {
		return false
	}
	for _, t := range ts.Elements() {
		if len(t) < f.k {
			return false
		}
	}
	return true
}
