package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// literalNFA builds an NFA fragment accepting exactly word, tagged tag.
func literalNFA(word string, tag AcceptTag) *Automaton {
	a := New()
	start := a.AddState()
	a.SetInitial(start)

	cur := start
	for _, r := range word {
		next := a.AddState()
		a.AddEdge(cur, NewCharLabel(r), next)
		cur = next
	}
	a.SetAccept(cur, tag)
	return a
}

// unionInto merges src's states into dst (fresh IDs, transitions
// rewritten) and adds an ε-edge from dst's existing initial state(s) to
// the copy of src's initial state, mirroring the per-token-NFA union
// step of spec.md §4.6 (lexer assembly unions every token's NFA
// fragment under one fresh root).
func unionInto(dst *Automaton, root StateID, src *Automaton) {
	remap := map[StateID]StateID{}
	for i := 0; i < src.NumStates(); i++ {
		remap[StateID(i)] = dst.AddState()
	}
	for i := 0; i < src.NumStates(); i++ {
		from := remap[StateID(i)]
		for _, e := range src.Edges(StateID(i)) {
			to := remap[e.To]
			if e.Epsilon {
				dst.AddEpsilon(from, to)
			} else {
				dst.AddEdge(from, e.Label, to)
			}
		}
		if tag, ok := src.Accept(StateID(i)); ok {
			dst.SetAccept(from, tag)
		}
	}
	for _, i := range src.Initial() {
		dst.AddEpsilon(root, remap[i])
	}
}

func Test_Minimize_NatureEndnature(t *testing.T) {
	assert := assert.New(t)

	root := New()
	rootStart := root.AddState()
	root.SetInitial(rootStart)

	unionInto(root, rootStart, literalNFA("nature", NewAcceptTag(1, 1, "NATURE")))
	unionInto(root, rootStart, literalNFA("endnature", NewAcceptTag(1, 1, "ENDNATURE")))

	dfa, err := SubsetConstruct(root)
	assert.NoError(err)

	min, err := Minimize(dfa)
	assert.NoError(err)

	assert.Equal(10, min.Reachable().Len())
}

func Test_DFA_Determinism(t *testing.T) {
	assert := assert.New(t)

	root := New()
	rootStart := root.AddState()
	root.SetInitial(rootStart)
	unionInto(root, rootStart, literalNFA("if", NewAcceptTag(1, 1, "IF")))
	unionInto(root, rootStart, literalNFA("in", NewAcceptTag(2, 1, "IN")))

	dfa, err := SubsetConstruct(root)
	assert.NoError(err)

	for s := 0; s < dfa.NumStates(); s++ {
		edges := dfa.LabeledEdges(StateID(s))
		for i := range edges {
			for j := i + 1; j < len(edges); j++ {
				inter := edges[i].Label.Intersect(edges[j].Label)
				assert.Truef(inter.Empty(), "state %d has overlapping outgoing labels", s)
			}
		}
	}
}

func Test_SubsetConstruct_AcceptsLiteral(t *testing.T) {
	assert := assert.New(t)

	nfa := literalNFA("ok", NewAcceptTag(1, 1, "OK"))
	dfa, err := SubsetConstruct(nfa)
	assert.NoError(err)

	cur := dfa.Initial()[0]
	for _, r := range "ok" {
		var next StateID
		found := false
		for _, le := range dfa.LabeledEdges(cur) {
			if le.Label.Contains(r) {
				next = le.To
				found = true
				break
			}
		}
		assert.True(found, "no transition for %q", r)
		cur = next
	}
	_, accepting := dfa.Accept(cur)
	assert.True(accepting)
}

func Test_CombineAcceptTags_LexerConflict(t *testing.T) {
	assert := assert.New(t)

	a := NewAcceptTag(1, 0, "IDENT")
	b := NewAcceptTag(2, 0, "KEYWORD_LIKE")

	_, err := CombineAcceptTags(a, b)
	assert.Error(err)

	var conflict *LexerConflictError
	assert.ErrorAs(err, &conflict)
}

func Test_CombineAcceptTags_SameToken(t *testing.T) {
	assert := assert.New(t)

	a := NewAcceptTag(1, 0, "A")
	b := NewAcceptTag(1, 1, "B")

	merged, err := CombineAcceptTags(a, b)
	assert.NoError(err)
	assert.Equal(1, merged.Priority)
	assert.True(merged.Origins.Has("A"))
	assert.True(merged.Origins.Has("B"))
}
