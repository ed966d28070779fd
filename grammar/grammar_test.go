package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		terminals []string
		rules     [][2]any // {left, right}
		expectErr bool
	}{
		{
			name:      "empty grammar",
			expectErr: true,
		},
		{
			name:      "no rules in grammar",
			terminals: []string{"int"},
			expectErr: true,
		},
		{
			name: "no terms in grammar",
			rules: [][2]any{
				{"S", []string{"S"}},
			},
			expectErr: true,
		},
		{
			name: "single rule grammar",
			rules: [][2]any{
				{"S", []string{"int"}},
			},
			terminals: []string{"int"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := &Grammar{}
			for _, term := range tc.terminals {
				g.AddTerm(term)
			}
			for _, r := range tc.rules {
				g.AddRule(r[0].(string), r[1].([]string))
			}

			actual := g.Validate()
			if tc.expectErr {
				assert.Error(actual)
			} else {
				assert.NoError(actual)
			}
		})
	}
}

func Test_Grammar_IsTerminal(t *testing.T) {
	assert := assert.New(t)

	g := &Grammar{}
	g.AddTerm("+")
	g.AddTerm("n")
	g.AddRule("expr", []string{"expr", "+", "mul"})
	g.AddRule("expr", []string{"mul"})
	g.AddRule("mul", []string{"n"})

	assert.True(g.IsTerminal("+"))
	assert.True(g.IsTerminal("n"))
	assert.False(g.IsTerminal("expr"))
	assert.False(g.IsTerminal("mul"))
}

func Test_Grammar_Augmented(t *testing.T) {
	assert := assert.New(t)

	g := &Grammar{}
	g.AddTerm("n")
	g.AddRule("expr", []string{"n"})

	aug := g.Augmented()

	assert.Equal(2, aug.NumRules())
	assert.Equal(aug.StartSymbol(), aug.Rule(0).Left)
	assert.Equal([]string{"expr"}, aug.Rule(0).Right)
	// original rule is preserved unchanged, just shifted down by one
	assert.Equal(g.Rule(0), aug.Rule(1))
}

func Test_Grammar_LR0Items(t *testing.T) {
	assert := assert.New(t)

	g := &Grammar{}
	g.AddTerm("a")
	g.AddRule("S", []string{"a", "a"})

	items := g.LR0Items()

	assert.Len(items, 3) // dot can sit at positions 0, 1, 2
	assert.Equal("S -> . a a", items[0].String())
	assert.Equal("S -> a . a", items[1].String())
	assert.Equal("S -> a a .", items[2].String())
	assert.True(items[2].Final())
	assert.False(items[0].Final())
}

// arithmetic is the grammar used by spec.md's worked example:
// expr -> expr '+' mul | mul
// mul  -> mul '*' atom | atom
// atom -> 'n' | '(' expr ')'
func arithmeticGrammar() *Grammar {
	g := &Grammar{}
	for _, t := range []string{"+", "*", "n", "(", ")"} {
		g.AddTerm(t)
	}
	g.AddRule("expr", []string{"expr", "+", "mul"})
	g.AddRule("expr", []string{"mul"})
	g.AddRule("mul", []string{"mul", "*", "atom"})
	g.AddRule("mul", []string{"atom"})
	g.AddRule("atom", []string{"n"})
	g.AddRule("atom", []string{"(", "expr", ")"})
	return g
}

func Test_FirstK_MonotonicityAndClosure(t *testing.T) {
	assert := assert.New(t)

	g := arithmeticGrammar()
	f := ComputeFirstK(g, 1)

	// first(word) restricted to the empty word is {()}.
	empty := f.First(nil)
	assert.Equal(1, empty.Len())
	assert.True(empty.Has(nil))

	// for every rule A -> alpha, first(alpha) subseteq FIRST_k(A)
	for _, r := range g.Rules() {
		first := f.First(r.Right)
		ntFirst := f.Of(r.Left)
		for _, tuple := range first.Elements() {
			assert.Truef(ntFirst.Has(tuple), "FIRST_1(%s) missing %v from rule %s", r.Left, tuple, r)
		}
	}

	// FIRST_1(atom) = {(n,), ((,)}
	atomFirst := f.Of("atom")
	assert.Equal(2, atomFirst.Len())
	assert.True(atomFirst.Has([]string{"n"}))
	assert.True(atomFirst.Has([]string{"("}))

	// FIRST_1(expr) = FIRST_1(mul) = FIRST_1(atom), since expr and mul
	// both left-recurse down to atom before any other terminal appears.
	assert.ElementsMatch(atomFirst.Elements(), f.Of("mul").Elements())
	assert.ElementsMatch(atomFirst.Elements(), f.Of("expr").Elements())
}

func Test_FirstK_EpsilonProduction(t *testing.T) {
	assert := assert.New(t)

	// list -> ε | list item; root -> header list  (spec.md's LR(0)-failure grammar)
	g := &Grammar{}
	for _, t := range []string{"header", "item"} {
		g.AddTerm(t)
	}
	g.AddRule("list", nil)
	g.AddRule("list", []string{"list", "item"})
	g.AddRule("root", []string{"header", "list"})

	f := ComputeFirstK(g, 1)

	listFirst := f.Of("list")
	assert.True(listFirst.Has(nil))
	assert.True(listFirst.Has([]string{"item"}))

	rootFirst := f.Of("root")
	assert.True(rootFirst.Has([]string{"header"}))
}

func Test_FirstK_K2(t *testing.T) {
	assert := assert.New(t)

	g := arithmeticGrammar()
	f := ComputeFirstK(g, 2)

	// FIRST_2(atom) should include the 2-symbol prefix of "( expr )"'s
	// leftmost derivation, i.e. ((, n) and ((, (), since expr -> ... ->
	// atom -> n | ( expr ).
	atomFirst := f.Of("atom")
	assert.True(atomFirst.Has([]string{"(", "n"}))
	assert.True(atomFirst.Has([]string{"(", "("}))
	assert.True(atomFirst.Has([]string{"n"}))
}
