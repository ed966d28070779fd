package regex

import (
	"testing"

	"github.com/dekarrin/limecc/automaton"
	"github.com/stretchr/testify/assert"
)

// accepts runs the NFA fragment built by Expand(ast) over s via subset
// construction, returning whether it's accepted.
func accepts(t *testing.T, ast Node, s string) bool {
	t.Helper()
	a := automaton.New()
	entry, exit := Expand(a, ast)
	a.SetInitial(entry)
	a.SetAccept(exit, automaton.NewAcceptTag(1, 0, "T"))

	dfa, err := automaton.SubsetConstruct(a)
	assert.NoError(t, err)

	cur := dfa.Initial()[0]
	for _, r := range s {
		found := false
		for _, le := range dfa.LabeledEdges(cur) {
			if le.Label.Contains(r) {
				cur = le.To
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	_, ok := dfa.Accept(cur)
	return ok
}

func Test_Parse_KleenePlus(t *testing.T) {
	assert := assert.New(t)

	ast, err := Parse("a+")
	assert.NoError(err)

	assert.True(accepts(t, ast, "a"))
	assert.True(accepts(t, ast, "aa"))
	assert.True(accepts(t, ast, "aaaa"))
	assert.False(accepts(t, ast, ""))
}

func Test_Parse_KleeneStar(t *testing.T) {
	assert := assert.New(t)

	ast, err := Parse("a*")
	assert.NoError(err)

	assert.True(accepts(t, ast, ""))
	assert.True(accepts(t, ast, "a"))
	assert.True(accepts(t, ast, "aaa"))
}

func Test_Parse_Question(t *testing.T) {
	assert := assert.New(t)

	ast, err := Parse("ab?c")
	assert.NoError(err)

	assert.True(accepts(t, ast, "ac"))
	assert.True(accepts(t, ast, "abc"))
	assert.False(accepts(t, ast, "abbc"))
}

func Test_Parse_Alternation(t *testing.T) {
	assert := assert.New(t)

	ast, err := Parse("cat|dog")
	assert.NoError(err)

	assert.True(accepts(t, ast, "cat"))
	assert.True(accepts(t, ast, "dog"))
	assert.False(accepts(t, ast, "cow"))
}

func Test_Parse_CharClassAndRange(t *testing.T) {
	assert := assert.New(t)

	ast, err := Parse("[a-z]+")
	assert.NoError(err)

	assert.True(accepts(t, ast, "hello"))
	assert.False(accepts(t, ast, "Hello"))
}

func Test_Parse_NegatedClass(t *testing.T) {
	assert := assert.New(t)

	ast, err := Parse("[^a-z]")
	assert.NoError(err)

	assert.True(accepts(t, ast, "A"))
	assert.False(accepts(t, ast, "a"))
}

func Test_Parse_Wildcard(t *testing.T) {
	assert := assert.New(t)

	ast, err := Parse(".")
	assert.NoError(err)

	assert.True(accepts(t, ast, "x"))
	assert.True(accepts(t, ast, "\n"))
}

func Test_Parse_EscapeClasses(t *testing.T) {
	assert := assert.New(t)

	digits, err := Parse(`\d+`)
	assert.NoError(err)
	assert.True(accepts(t, digits, "123"))
	assert.False(accepts(t, digits, "12a"))

	word, err := Parse(`\w+`)
	assert.NoError(err)
	assert.True(accepts(t, word, "abc_123"))
}

func Test_Parse_Grouping(t *testing.T) {
	assert := assert.New(t)

	ast, err := Parse("(ab)+")
	assert.NoError(err)

	assert.True(accepts(t, ast, "ab"))
	assert.True(accepts(t, ast, "abab"))
	assert.False(accepts(t, ast, "aba"))
}

func Test_ExpandLiteral(t *testing.T) {
	assert := assert.New(t)

	lit := ExpandLiteral("if", automaton.NewAcceptTag(1, 1, "IF"))
	dfa, err := automaton.SubsetConstruct(lit)
	assert.NoError(err)

	cur := dfa.Initial()[0]
	for _, r := range "if" {
		var next automaton.StateID
		found := false
		for _, le := range dfa.LabeledEdges(cur) {
			if le.Label.Contains(r) {
				next = le.To
				found = true
				break
			}
		}
		assert.True(found)
		cur = next
	}
	tag, ok := dfa.Accept(cur)
	assert.True(ok)
	assert.Equal(1, tag.Priority)
}
