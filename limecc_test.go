package limecc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// arithmeticSource is spec.md §8's worked arithmetic example, expressed
// as LIME source.
const arithmeticSource = `
	ws :: discard
	ws ~= {[ \t\n]+}

	num ~= {[0-9]+}

	expr ::= expr "+" mul.
	expr ::= mul.
	mul ::= mul "*" atom.
	mul ::= atom.
	atom ::= num.
	atom ::= "(" expr ")".

	%root expr.

	%test expr ::= num "*" "(" num "+" num ")".
`

func Test_Generate_ArithmeticBuildsAcceptingTable(t *testing.T) {
	assert := assert.New(t)

	res, err := Generate(arithmeticSource, Options{K: 1})
	assert.NoError(err)
	if err != nil {
		return
	}

	accepting := res.Table.AcceptingStates()
	assert.Len(accepting, 1, "exactly one accepting state, per spec.md §8")
	assert.False(res.ContextLexer)
	assert.NotEmpty(res.Cache.SourceHash)
}

func Test_Generate_RunTests_ArithmeticTestPasses(t *testing.T) {
	assert := assert.New(t)

	res, err := Generate(arithmeticSource, Options{K: 1})
	assert.NoError(err)
	if err != nil {
		return
	}

	outcomes := res.RunTests()
	assert.Len(outcomes, 1)
	assert.True(outcomes[0].Accepted)
	assert.NoError(outcomes[0].Err)
}

func Test_Generate_ParseInput_DrivesLexerAndTableTogether(t *testing.T) {
	assert := assert.New(t)

	res, err := Generate(arithmeticSource, Options{K: 1})
	assert.NoError(err)
	if err != nil {
		return
	}

	reduced, ok, err := res.ParseInput(strings.NewReader("1 * (2 + 3)"))
	assert.NoError(err)
	assert.True(ok)
	assert.NotEmpty(reduced)
}

func Test_Generate_ParseInput_RejectsUnrecognizedInput(t *testing.T) {
	assert := assert.New(t)

	res, err := Generate(arithmeticSource, Options{K: 1})
	assert.NoError(err)
	if err != nil {
		return
	}

	_, ok, err := res.ParseInput(strings.NewReader("1 * @"))
	assert.False(ok)
	assert.Error(err)
}

// Test_Generate_LR0ConflictIsClassified checks spec.md §8's LR(0)
// failure scenario: list -> ε | list item; root -> header list, at
// k=0, must raise an LR conflict classified via icterrors.
func Test_Generate_LR0ConflictIsClassified(t *testing.T) {
	assert := assert.New(t)

	src := `
		header ~= "header"
		item ~= "item"

		list ::= .
		list ::= list item.
		root ::= header list.

		%root root.
	`

	_, err := Generate(src, Options{K: 0})
	assert.Error(err)
	assert.Contains(err.Error(), "LR conflict")
}

func Test_Generate_ContextLexerAssignsPerStateDFAs(t *testing.T) {
	assert := assert.New(t)

	src := `
		%context_lexer
		%discard {[ \t\n]+}

		id ~= {[a-z]+}
		root ::= id.
	`

	res, err := Generate(src, Options{K: 1})
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.True(res.ContextLexer)
	assert.NotNil(res.Assignment)
	assert.NotEmpty(res.Assignment.DFAs)

	reduced, ok, err := res.ParseInput(strings.NewReader("hello"))
	assert.NoError(err)
	assert.True(ok)
	assert.NotEmpty(reduced)
}

func Test_Generate_UndefinedSymbolIsClassifiedAsInvalidGrammar(t *testing.T) {
	assert := assert.New(t)

	_, err := Generate("root ::= mystery.", Options{})
	assert.Error(err)
	assert.Contains(err.Error(), "invalid grammar")
}
