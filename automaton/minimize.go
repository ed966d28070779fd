package automaton

import (
	"fmt"
	"sort"
	"strings"
)

// refineLabels takes an arbitrary multiset of CharLabels and returns the
// maximal set of pairwise-disjoint "atoms" whose union covers every
// input label, such that each input label is exactly the union of the
// atoms it overlaps. This is the same maximal-common-sub-label routine
// spec.md §4.3/§4.4 call for, applied here across every outgoing edge of
// a minimization block rather than across per-target intersections,
// since within one DFA state edges are already pairwise disjoint (the
// CharLabel invariant, spec.md §3) and only cross-state overlap within a
// block remains to be resolved.
func refineLabels(labels []CharLabel) []CharLabel {
	var atoms []CharLabel
	for _, l := range labels {
		remaining := l
		var next []CharLabel
		for _, a := range atoms {
			inter := a.Intersect(remaining)
			aOnly := a.Difference(remaining)
			if !inter.Empty() {
				next = append(next, inter)
			}
			if !aOnly.Empty() {
				next = append(next, aOnly)
			}
			remaining = remaining.Difference(a)
		}
		if !remaining.Empty() {
			next = append(next, remaining)
		}
		atoms = next
	}
	return atoms
}

// Minimize implements Hopcroft-style partition refinement (spec.md
// §4.4). The initial partition groups states by distinct accept-tag
// identity (token ID + priority; full AcceptTag.Origins sets are merged
// within a block, not used to distinguish it) plus one block for
// non-accepting states. Refinement repeats: for every block, derive the
// maximal common sub-labels of its states' outgoing edges, then split
// any states that disagree on which successor block a sub-label leads
// into. Because states within one DFA state already carry pairwise
// disjoint labels (CharLabel's edge-disjointness invariant), a state has
// at most one outgoing edge whose label overlaps any given atom.
func Minimize(dfa *Automaton) (*Automaton, error) {
	reachable := dfa.Reachable()

	blockOf := map[StateID]int{}
	var blocks [][]StateID
	classOf := map[string]int{}

	for _, s := range reachable.Elements() {
		key := acceptClassKey(dfa, s)
		idx, ok := classOf[key]
		if !ok {
			idx = len(blocks)
			classOf[key] = idx
			blocks = append(blocks, nil)
		}
		blocks[idx] = append(blocks[idx], s)
	}
	for idx, b := range blocks {
		for _, s := range b {
			blockOf[s] = idx
		}
	}

	for {
		var nextBlocks [][]StateID
		changed := false

		for _, block := range blocks {
			split := splitBlock(dfa, blockOf, block)
			if len(split) > 1 {
				changed = true
			}
			nextBlocks = append(nextBlocks, split...)
		}

		blocks = nextBlocks
		blockOf = map[StateID]int{}
		for idx, b := range blocks {
			for _, s := range b {
				blockOf[s] = idx
			}
		}

		if !changed {
			break
		}
	}

	return buildQuotient(dfa, blocks, blockOf)
}

func acceptClassKey(dfa *Automaton, s StateID) string {
	tag, ok := dfa.Accept(s)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d/%d", tag.TokenID, tag.Priority)
}

func splitBlock(dfa *Automaton, blockOf map[StateID]int, block []StateID) [][]StateID {
	if len(block) <= 1 {
		return [][]StateID{block}
	}

	var labels []CharLabel
	for _, s := range block {
		for _, le := range dfa.LabeledEdges(s) {
			labels = append(labels, le.Label)
		}
	}
	atoms := refineLabels(labels)

	sigOf := map[StateID]string{}
	for _, s := range block {
		var sig strings.Builder
		for _, atom := range atoms {
			target := -1
			for _, le := range dfa.LabeledEdges(s) {
				if !le.Label.Intersect(atom).Empty() {
					target = blockOf[le.To]
					break
				}
			}
			fmt.Fprintf(&sig, "%d;", target)
		}
		sigOf[s] = sig.String()
	}

	groups := map[string][]StateID{}
	var order []string
	for _, s := range block {
		sig := sigOf[s]
		if _, ok := groups[sig]; !ok {
			order = append(order, sig)
		}
		groups[sig] = append(groups[sig], s)
	}
	sort.Strings(order)

	out := make([][]StateID, 0, len(order))
	for _, sig := range order {
		out = append(out, groups[sig])
	}
	return out
}

func buildQuotient(dfa *Automaton, blocks [][]StateID, blockOf map[StateID]int) (*Automaton, error) {
	quotient := New()
	blockState := make([]StateID, len(blocks))
	for i := range blocks {
		blockState[i] = quotient.AddState()
	}

	for i, block := range blocks {
		var combined *AcceptTag
		for _, s := range block {
			tag, ok := dfa.Accept(s)
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
				return nil, err
			}
			combined = &merged
		}
		if combined != nil {
			quotient.SetAccept(blockState[i], *combined)
		}
	}

	initialBlocks := map[int]bool{}
	for _, i := range dfa.Initial() {
		if b, ok := blockOf[i]; ok {
			initialBlocks[b] = true
		}
	}
	for b := range initialBlocks {
		quotient.SetInitial(blockState[b])
	}

	for i, block := range blocks {
		// merge labels targeting the same successor block across every
		// state in this block
		byTarget := map[int]CharLabel{}
		var targetOrder []int
		for _, s := range block {
			for _, le := range dfa.LabeledEdges(s) {
				tb, ok := blockOf[le.To]
				if !ok {
					continue
				}
				if existing, ok := byTarget[tb]; ok {
					byTarget[tb] = existing.Union(le.Label)
				} else {
					byTarget[tb] = le.Label
					targetOrder = append(targetOrder, tb)
				}
			}
		}
		sort.Ints(targetOrder)
		for _, tb := range targetOrder {
			quotient.AddEdge(blockState[i], byTarget[tb], blockState[tb])
		}
	}

	return quotient, nil
}
