package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_CharLabel_InversionArithmetic(t *testing.T) {
	assert := assert.New(t)

	notLower := CharLabel{Chars: lowerAToZ(), Inverted: true} // [^a-z]
	assert.True(notLower.Contains('A'))
	assert.False(notLower.Contains('a'))

	abc := NewCharLabel('a', 'b', 'c')
	assert.True(notLower.Intersect(abc).Empty())

	upperAndLower := CharLabel{Chars: union(lowerAToZ(), upperAToZ())} // [A-Za-z]
	gotUpper := notLower.Intersect(upperAndLower)

	assert.False(gotUpper.Empty())
	assert.True(gotUpper.Contains('Z'))
	assert.False(gotUpper.Contains('z'))
	assert.False(gotUpper.Contains('a'))
	// [^a-z] & [A-Za-z] == [A-Z]
	for r := 'A'; r <= 'Z'; r++ {
		assert.Truef(gotUpper.Contains(r), "expected %q in result", r)
	}
}

func Test_CharLabel_Any(t *testing.T) {
	assert := assert.New(t)

	wildcard := Any()
	assert.True(wildcard.Contains('x'))
	assert.True(wildcard.Contains('\n'))
	assert.False(wildcard.Empty())
}

func Test_CharLabel_UnionAndDifference(t *testing.T) {
	assert := assert.New(t)

	a := NewCharLabel('a', 'b')
	b := NewCharLabel('b', 'c')

	union := a.Union(b)
	assert.True(union.Contains('a'))
	assert.True(union.Contains('b'))
	assert.True(union.Contains('c'))

	diff := a.Difference(b)
	assert.True(diff.Contains('a'))
	assert.False(diff.Contains('b'))
}

func lowerAToZ() map[rune]bool {
	m := map[rune]bool{}
	for r := 'a'; r <= 'z'; r++ {
		m[r] = true
	}
	return m
}

func upperAToZ() map[rune]bool {
	m := map[rune]bool{}
	for r := 'A'; r <= 'Z'; r++ {
		m[r] = true
	}
	return m
}

func union(a, b map[rune]bool) map[rune]bool {
	out := map[rune]bool{}
	for r := range a {
		out[r] = true
	}
	for r := range b {
		out[r] = true
	}
	return out
}
