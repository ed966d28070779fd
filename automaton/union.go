package automaton

// Union merges any number of automata into one ε-NFA with a single fresh
// start state ε-connected to each input automaton's own start states,
// per spec.md §4.6 ("union the per-token NFAs ... then minimize") and
// §2's "automaton union" line item of the finite-automaton core.
// Grounded on the teacher's createAlternationFA (lex/regex.go, never
// finished there): a new start state with an ε-edge to each
// alternative's start, generalized from exactly two operands to any
// number, and from the teacher's NFA[string]/Join machinery (merging by
// state-name prefixing) to the int-ID arena, which merges by simply
// offsetting IDs as each machine's states are copied in.
//
// Each input Automaton is left untouched; Union only reads it. The
// returned automaton owns an entirely new set of states.
func Union(machines ...*Automaton) *Automaton {
	out := New()
	start := out.AddState()
	out.SetInitial(start)

	for _, m := range machines {
		offset := len(out.states)
		for range m.states {
			out.AddState()
		}

		for _, st := range m.states {
			id := StateID(int(st.id) + offset)
			if st.accept != nil {
				out.SetAccept(id, *st.accept)
			}
			for _, e := range st.edges {
				to := StateID(int(e.To) + offset)
				if e.Epsilon {
					out.AddEpsilon(id, to)
				} else {
					out.AddEdge(id, e.Label, to)
				}
			}
		}

		for _, i := range m.Initial() {
			out.AddEpsilon(start, StateID(int(i)+offset))
		}
	}

	return out
}
