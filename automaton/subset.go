package automaton

import (
	"sort"

	"github.com/dekarrin/limecc/internal/util"
)

type labelGroup struct {
	Label   CharLabel
	Targets []StateID
}

// partitionByLabel implements the routine spec.md §4.3 step 2 and §4.4
// share: given, for each NFA target state, the intersection of every
// edge label reaching it from the set under consideration, split those
// labels into maximal groups of targets that agree on a common
// sub-label. Repeatedly: pick an unconsumed target as a seed; grow its
// group by absorbing every other unconsumed target whose label overlaps
// the (shrinking) running candidate; emit the group and its candidate
// label; subtract the candidate from every group member's remaining
// label, leaving any leftover for a later round.
func partitionByLabel(entries map[StateID]CharLabel) []labelGroup {
	remaining := make(map[StateID]CharLabel, len(entries))
	for k, v := range entries {
		remaining[k] = v
	}

	var groups []labelGroup
	for len(remaining) > 0 {
		var seed StateID
		first := true
		for t := range remaining {
			if first || t < seed {
				seed = t
				first = false
			}
		}

		candidate := remaining[seed]
		inGroup := map[StateID]bool{seed: true}

		for {
			changed := false
			for t, l := range remaining {
				if inGroup[t] {
					continue
				}
				inter := l.Intersect(candidate)
				if !inter.Empty() {
					inGroup[t] = true
					candidate = inter
					changed = true
				}
			}
			if !changed {
				break
			}
		}

		var group []StateID
		for t := range inGroup {
			group = append(group, t)
		}
		sort.Slice(group, func(i, j int) bool { return group[i] < group[j] })
		groups = append(groups, labelGroup{Label: candidate, Targets: group})

		for _, t := range group {
			left := remaining[t].Difference(candidate)
			if left.Empty() {
				delete(remaining, t)
			} else {
				remaining[t] = left
			}
		}
	}

	return groups
}

// SubsetConstruct converts an ε-NFA into an equivalent DFA (purple
// dragon book algorithm 3.20), generalized from single-symbol edges to
// CharLabel edges per spec.md §4.3: instead of "for each input symbol
// a", each DFA state's outgoing edges are computed by partitionByLabel
// over the per-NFA-target label intersections, which splits overlapping
// labels into maximal disjoint sub-labels without ever enumerating the
// alphabet.
func SubsetConstruct(nfa *Automaton) (*Automaton, error) {
	dfa := New()

	startSet := util.NewKeySet[StateID]()
	for _, i := range nfa.Initial() {
		startSet.AddAll(nfa.EpsilonClosure(i))
	}

	seen := map[string]StateID{}
	startID := dfa.AddState()
	dfa.SetInitial(startID)
	seen[stateSetKey(startSet)] = startID
	if err := mergeAcceptOf(dfa, startID, nfa, startSet); err != nil {
		return nil, err
	}

	type pending struct {
		nfaSet util.KeySet[StateID]
		dfaID  StateID
	}
	queue := []pending{{startSet, startID}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		entries := map[StateID]CharLabel{}
		for _, s := range cur.nfaSet.Elements() {
			for _, le := range nfa.LabeledEdges(s) {
				if existing, ok := entries[le.To]; ok {
					entries[le.To] = existing.Intersect(le.Label)
				} else {
					entries[le.To] = le.Label
				}
			}
		}

		for _, g := range partitionByLabel(entries) {
			targetSet := util.NewKeySet[StateID]()
			for _, t := range g.Targets {
				targetSet.Add(t)
			}
			closure := nfa.EpsilonClosureOfSet(targetSet)
			key := stateSetKey(closure)

			toID, ok := seen[key]
			if !ok {
				toID = dfa.AddState()
				seen[key] = toID
				if err := mergeAcceptOf(dfa, toID, nfa, closure); err != nil {
					return nil, err
				}
				queue = append(queue, pending{closure, toID})
			}

			dfa.AddEdge(cur.dfaID, g.Label, toID)
		}
	}

	return dfa, nil
}

// mergeAcceptOf combines the accept tags of every NFA state in nfaStates
// (via the AcceptTag combine rule, spec.md §3) and assigns the result,
// if any, to the DFA state id.
func mergeAcceptOf(dfa *Automaton, id StateID, nfa *Automaton, nfaStates util.KeySet[StateID]) error {
	elems := nfaStates.Elements()
	sort.Slice(elems, func(i, j int) bool { return elems[i] < elems[j] })

	var combined *AcceptTag
	for _, s := range elems {
		tag, ok := nfa.Accept(s)
		if !ok {
			continue
		}
		if combined == nil {
			t := tag
			combined = &t
			continue
		}
		merged, err := CombineAcceptTags(*combined, tag)
		if err != nil {
			return err
		}
		combined = &merged
	}
	if combined != nil {
		dfa.SetAccept(id, *combined)
	}
	return nil
}
