package lr

import (
	"testing"

	"github.com/dekarrin/limecc/grammar"
	"github.com/stretchr/testify/assert"
)

// arithmeticGrammar mirrors the worked example of spec.md §8:
// expr -> expr + mul | mul; mul -> mul * atom | atom; atom -> n | ( expr ).
func arithmeticGrammar() *grammar.Grammar {
	g := &grammar.Grammar{}
	g.AddRule("expr", []grammar.Symbol{"expr", "+", "mul"})
	g.AddRule("expr", []grammar.Symbol{"mul"})
	g.AddRule("mul", []grammar.Symbol{"mul", "*", "atom"})
	g.AddRule("mul", []grammar.Symbol{"atom"})
	g.AddRule("atom", []grammar.Symbol{"n"})
	g.AddRule("atom", []grammar.Symbol{"(", "expr", ")"})
	g.AddTerm("+")
	g.AddTerm("*")
	g.AddTerm("(")
	g.AddTerm(")")
	g.AddTerm("n")
	return g
}

// driveTrace runs input through table starting at state 0, using a
// plain shift-reduce stack, and returns the sequence of rules reduced
// by in order. It exists only to exercise Table.Action/Table.Goto for
// testing; the generator itself never runs a parser over anything but
// its own inputs.
func driveTrace(t *Table, input []grammar.Symbol) ([]grammar.Rule, bool) {
	type frame struct {
		state StateID
		sym   grammar.Symbol
	}
	stack := []frame{{state: 0}}
	var reduced []grammar.Rule
	pos := 0

	for {
		top := stack[len(stack)-1]
		var la []grammar.Symbol
		if pos < len(input) {
			la = []grammar.Symbol{input[pos]}
		}
		act, ok := t.States[top.state].Action(la)
		if !ok {
			return reduced, false
		}

		switch act.Type {
		case ActionShift:
			stack = append(stack, frame{state: act.State, sym: input[pos]})
			pos++
		case ActionReduce:
			reduced = append(reduced, act.Rule)
			n := len(act.Rule.Right)
			stack = stack[:len(stack)-n]
			from := stack[len(stack)-1].state
			next, ok := t.Goto(from, act.Rule.Left)
			if !ok {
				return reduced, false
			}
			stack = append(stack, frame{state: next, sym: act.Rule.Left})
		case ActionAccept:
			return reduced, true
		default:
			return reduced, false
		}
	}
}

func Test_Construct_Arithmetic_ReduceOrder(t *testing.T) {
	assert := assert.New(t)

	g := arithmeticGrammar()
	table, err := Construct(g, 1, false)
	assert.NoError(err)

	accepting := table.AcceptingStates()
	assert.Len(accepting, 1, "exactly one accepting state")

	input := []grammar.Symbol{"n", "*", "(", "n", "+", "n", ")"}
	reduced, ok := driveTrace(table, input)
	assert.True(ok, "input should parse")

	var order []string
	for _, r := range reduced {
		order = append(order, r.Left)
	}
	assert.Equal(
		[]string{"atom", "mul", "atom", "atom", "mul", "expr", "expr", "mul", "atom", "expr"},
		order,
	)
}

func Test_Construct_NoConflicts_ActionDeterminism(t *testing.T) {
	assert := assert.New(t)

	g := arithmeticGrammar()
	table, err := Construct(g, 1, false)
	assert.NoError(err)

	// every state's action map has at most one entry per lookahead key
	// by construction (fillActions would have errored otherwise); this
	// just double-checks no duplicate keys crept in by other means.
	for _, s := range table.States {
		seen := map[string]bool{}
		for k := range s.actions {
			assert.False(seen[k], "duplicate lookahead key in state %d", s.id)
			seen[k] = true
		}
	}
}

// lr0FailureGrammar is spec.md §8's "LR(0) failure" scenario: root ->
// header list; list -> ε | item | list item (the three-alternative
// form of original_source/src/limecc/lrparser.py's own worked
// example, which spec.md's "list -> ε | list item" distills down to
// two alternatives). At k=0 the closure over "list" right after
// shifting "header" already contains both a final item (reduce
// list -> ε) and an item with the dot before the terminal "item"
// (shift), and k=0 lookahead carries no information to choose between
// them.
func lr0FailureGrammar() *grammar.Grammar {
	g := &grammar.Grammar{}
	g.AddRule("root", []grammar.Symbol{"header", "list"})
	g.AddRule("list", []grammar.Symbol{})
	g.AddRule("list", []grammar.Symbol{"item"})
	g.AddRule("list", []grammar.Symbol{"list", "item"})
	g.AddTerm("header")
	g.AddTerm("item")
	g.SetRoot("root")
	return g
}

func Test_Construct_LR0Failure_Counterexample(t *testing.T) {
	assert := assert.New(t)

	g := lr0FailureGrammar()
	_, err := Construct(g, 0, false)
	assert.Error(err)

	conflict, ok := err.(*ConflictError)
	if !assert.True(ok, "expected *ConflictError, got %T", err) {
		return
	}

	example := conflict.Counterexample()
	assert.Equal([]grammar.Symbol{"header", "item"}, example)
}

// Test_Counterexample_ValidGotoPath checks spec.md §8 property 6: the
// counterexample, minus its final triggering symbol, reaches the
// conflicted state via Table.Goto from state 0; the final symbol is
// exactly the terminal that one of the two conflicting items would
// shift on there.
func Test_Counterexample_ValidGotoPath(t *testing.T) {
	assert := assert.New(t)

	g := lr0FailureGrammar()
	_, err := Construct(g, 0, false)
	assert.Error(err)

	conflict := err.(*ConflictError)
	table := conflict.table

	example := conflict.Counterexample()
	assert.NotEmpty(example)

	path, last := example[:len(example)-1], example[len(example)-1]

	cur := StateID(0)
	for _, sym := range path {
		next, ok := table.Goto(cur, sym)
		assert.True(ok, "counterexample symbol %q has no goto from state %d", sym, cur)
		cur = next
	}
	assert.Equal(conflict.State, cur, "counterexample prefix should land exactly on the conflicted state")

	shiftSym, ok := conflict.FirstItem.NextSymbol()
	if !ok {
		shiftSym, ok = conflict.SecondItem.NextSymbol()
	}
	assert.True(ok, "one of the two conflicting items should be a shift")
	assert.Equal(shiftSym, last)
}
