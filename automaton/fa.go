package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/limecc/internal/util"
)

// StateID indexes into an Automaton's state arena. Spec.md §9 recommends
// an integer-ID arena over a pointer graph for FA states; the teacher's
// own NFA/DFA types key states by string instead (`map[string]NFAState`)
// — that scheme is kept one level up, as the canonical hash key used to
// dedupe states during construction (see subset.go, minimize.go), while
// the states themselves live in a flat slice addressed by StateID.
type StateID int

// edge is one outgoing transition. Epsilon edges (NFA only) carry a
// zero Label and Epsilon = true; labeled edges carry Epsilon = false
// and a non-empty Label.
type edge struct {
	Epsilon bool
	Label   CharLabel
	To      StateID
}

type faState struct {
	id     StateID
	edges  []edge
	accept *AcceptTag
}

// Automaton is a finite automaton (NFA or DFA, depending on how it was
// built and whether it still carries ε-edges) over CharLabel-labeled
// edges. Automata own their states structurally: once built, states are
// never shared between two Automaton values (spec.md §3's "shared
// ownership disallowed after minimization").
type Automaton struct {
	states  []faState
	initial []StateID
}

// New returns an empty Automaton with no states.
func New() *Automaton {
	return &Automaton{}
}

// AddState allocates a new state and returns its ID.
func (a *Automaton) AddState() StateID {
	id := StateID(len(a.states))
	a.states = append(a.states, faState{id: id})
	return id
}

// SetInitial marks id as an initial state.
func (a *Automaton) SetInitial(id StateID) {
	for _, i := range a.initial {
		if i == id {
			return
		}
	}
	a.initial = append(a.initial, id)
}

// Initial returns every initial state of a.
func (a *Automaton) Initial() []StateID {
	out := make([]StateID, len(a.initial))
	copy(out, a.initial)
	return out
}

// SetAccept marks id as accepting with the given tag.
func (a *Automaton) SetAccept(id StateID, tag AcceptTag) {
	t := tag
	a.states[id].accept = &t
}

// Accept returns the accept tag of id, and whether it is accepting.
func (a *Automaton) Accept(id StateID) (AcceptTag, bool) {
	st := a.states[id]
	if st.accept == nil {
		return AcceptTag{}, false
	}
	return *st.accept, true
}

// AddEpsilon adds an ε-edge from -> to. Valid on NFAs only; a DFA with
// an ε-edge violates its own invariant.
func (a *Automaton) AddEpsilon(from, to StateID) {
	a.states[from].edges = append(a.states[from].edges, edge{Epsilon: true, To: to})
}

// AddEdge adds a labeled edge from -> to.
func (a *Automaton) AddEdge(from StateID, label CharLabel, to StateID) {
	a.states[from].edges = append(a.states[from].edges, edge{Label: label, To: to})
}

// NumStates returns the number of states in the arena (including
// unreachable ones; see Reachable for the live subset).
func (a *Automaton) NumStates() int {
	return len(a.states)
}

// Edges returns the outgoing edges of id.
func (a *Automaton) Edges(id StateID) []edge {
	return a.states[id].edges
}

// LabeledEdges returns the non-ε outgoing edges of id.
func (a *Automaton) LabeledEdges(id StateID) []struct {
	Label CharLabel
	To    StateID
} {
	var out []struct {
		Label CharLabel
		To    StateID
	}
	for _, e := range a.states[id].edges {
		if e.Epsilon {
			continue
		}
		out = append(out, struct {
			Label CharLabel
			To    StateID
		}{e.Label, e.To})
	}
	return out
}

// EpsilonClosure returns every state reachable from start using zero or
// more ε-edges, start included. Grounded on the teacher's
// NFA.EpsilonClosure, which walks a util.Stack of frontier states rather
// than recursing, to avoid stack depth proportional to automaton size.
func (a *Automaton) EpsilonClosure(start StateID) util.KeySet[StateID] {
	closure := util.NewKeySet[StateID]()
	frontier := util.Stack[StateID]{}
	frontier.Push(start)

	for frontier.Len() > 0 {
		cur := frontier.Pop()
		if closure.Has(cur) {
			continue
		}
		closure.Add(cur)
		for _, e := range a.states[cur].edges {
			if e.Epsilon {
				frontier.Push(e.To)
			}
		}
	}

	return closure
}

// EpsilonClosureOfSet is EpsilonClosure unioned over every state in set.
func (a *Automaton) EpsilonClosureOfSet(set util.KeySet[StateID]) util.KeySet[StateID] {
	out := util.NewKeySet[StateID]()
	for _, s := range set.Elements() {
		out.AddAll(a.EpsilonClosure(s))
	}
	return out
}

// Reachable returns every state reachable from the initial states,
// following both ε- and labeled edges.
func (a *Automaton) Reachable() util.KeySet[StateID] {
	seen := util.NewKeySet[StateID]()
	frontier := util.Stack[StateID]{}
	for _, i := range a.initial {
		frontier.Push(i)
	}
	for frontier.Len() > 0 {
		cur := frontier.Pop()
		if seen.Has(cur) {
			continue
		}
		seen.Add(cur)
		for _, e := range a.states[cur].edges {
			frontier.Push(e.To)
		}
	}
	return seen
}

// stateSetKey gives a canonical hash key for a set of StateIDs, used to
// dedupe DFA states constructed from NFA subsets (subset.go) and blocks
// constructed during minimization (minimize.go). Mirrors the teacher's
// convention of keying states/kernels by a deterministic StringOrdered()
// rendering rather than by pointer identity.
func stateSetKey(set util.KeySet[StateID]) string {
	ids := set.Elements()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func (a *Automaton) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<INITIAL: %v, STATES:", a.initial)
	for _, st := range a.states {
		sb.WriteString("\n\t")
		fmt.Fprintf(&sb, "%d", st.id)
		if st.accept != nil {
			fmt.Fprintf(&sb, " [accept token=%d pri=%d]", st.accept.TokenID, st.accept.Priority)
		}
		for _, e := range st.edges {
			if e.Epsilon {
				fmt.Fprintf(&sb, " --ε--> %d", e.To)
			} else {
				fmt.Fprintf(&sb, " --%s--> %d", e.Label.String(), e.To)
			}
		}
	}
	sb.WriteString("\n>")
	return sb.String()
}
