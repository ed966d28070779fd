package lex

import (
	"strings"
	"testing"

	"github.com/dekarrin/limecc/grammar"
	"github.com/dekarrin/limecc/lr"
	"github.com/dekarrin/limecc/regex"
	"github.com/stretchr/testify/assert"
)

func mustParse(t *testing.T, pattern string) regex.Node {
	t.Helper()
	n, err := regex.Parse(pattern)
	if err != nil {
		t.Fatalf("parsing %q: %v", pattern, err)
	}
	return n
}

// Test_LexerPriority_LiteralWinsOverRegex is spec.md §8's worked
// example: a regex token {[a-z]+} and a literal token "if" both match
// "if"; the literal must win (priority 1 over 0).
func Test_LexerPriority_LiteralWinsOverRegex(t *testing.T) {
	assert := assert.New(t)

	defs := []TokenDef{
		{ID: 0, Symbol: "id", Name: "id", Pattern: mustParse(t, "[a-z]+")},
		{ID: 1, Symbol: "if", Name: "if", Literal: "if"},
	}

	dfa, err := Global(defs)
	assert.NoError(err)

	lx := NewLexer(dfa)
	stream, err := lx.Open(strings.NewReader("if"))
	assert.NoError(err)

	tok := stream.Next()
	assert.Equal(grammar.Symbol("if"), tok.Symbol)
	assert.Equal("if", tok.Lexeme)
}

// Test_LexerPriority_DuplicateRegexConflict: adding the same-priority
// regex token a second time (distinct origin, identical priority and
// overlapping acceptance) raises a lexer conflict rather than silently
// picking one.
func Test_LexerPriority_DuplicateRegexConflict(t *testing.T) {
	assert := assert.New(t)

	defs := []TokenDef{
		{ID: 0, Symbol: "a", Name: "first", Pattern: mustParse(t, "[a-z]+")},
		{ID: 1, Symbol: "b", Name: "second", Pattern: mustParse(t, "[a-z]+")},
	}

	_, err := Global(defs)
	assert.Error(err)
	assert.Contains(err.Error(), "lexer conflict")
}

// contextLexerGrammar exercises spec.md §8's context-lexer-partitioning
// scenario with two branches under one root: sum -> NUM | sum PLUS NUM
// and name -> ID. The start state admits {NUM, ID}; the states after a
// NUM or a complete sum admit only PLUS; the state after PLUS admits
// only NUM; and the states after ID admit no token at all. The
// admissible sets therefore fall into more than one class.
func contextLexerGrammar() *grammar.Grammar {
	g := &grammar.Grammar{}
	g.AddRule("root", []grammar.Symbol{"sum"})
	g.AddRule("root", []grammar.Symbol{"name"})
	g.AddRule("sum", []grammar.Symbol{"NUM"})
	g.AddRule("sum", []grammar.Symbol{"sum", "PLUS", "NUM"})
	g.AddRule("name", []grammar.Symbol{"ID"})
	g.AddTerm("NUM")
	g.AddTerm("PLUS")
	g.AddTerm("ID")
	g.SetRoot("root")
	return g
}

func Test_ContextLexer_PartitionsIntoDistinctDFAs(t *testing.T) {
	assert := assert.New(t)

	g := contextLexerGrammar()
	table, err := lr.Construct(g, 1, false)
	assert.NoError(err)

	defs := []TokenDef{
		{ID: 0, Symbol: "NUM", Name: "NUM", Pattern: mustParse(t, "[0-9]+")},
		{ID: 1, Symbol: "PLUS", Name: "PLUS", Literal: "+"},
		{ID: 2, Symbol: "ID", Name: "ID", Pattern: mustParse(t, "[a-z]+")},
	}

	assign, err := Context(table, defs)
	assert.NoError(err)

	classes := map[int]bool{}
	for _, id := range assign.LexerID {
		classes[id] = true
	}
	assert.GreaterOrEqual(len(classes), 2, "expected at least two distinct admissible-token classes")
}

// Test_Stream_DiscardsWhitespaceAndPeekMatchesNext checks that a
// %discard-equivalent token never reaches the caller and that Peek
// never advances the stream (spec.md §6's %discard directive and the
// teacher's Peek-via-mark-restore contract).
func Test_Stream_DiscardsWhitespaceAndPeekMatchesNext(t *testing.T) {
	assert := assert.New(t)

	defs := []TokenDef{
		{ID: 0, Symbol: "ws", Name: "ws", Pattern: mustParse(t, "[ ]+"), Discard: true},
		{ID: 1, Symbol: "id", Name: "id", Pattern: mustParse(t, "[a-z]+")},
	}

	dfa, err := Global(defs)
	assert.NoError(err)

	lx := NewLexer(dfa)
	stream, err := lx.Open(strings.NewReader("ab cd"))
	assert.NoError(err)

	peeked := stream.Peek()
	assert.Equal(grammar.Symbol("id"), peeked.Symbol)
	assert.Equal("ab", peeked.Lexeme)

	got := stream.Next()
	assert.Equal(peeked, got, "Peek must not advance the stream past what Next then returns")

	second := stream.Next()
	assert.Equal("cd", second.Lexeme)

	assert.True(stream.HasNext())
	end := stream.Next()
	assert.Equal(EndOfText, end.Symbol)
	assert.False(stream.HasNext())
}

// Test_Stream_PanicModeRecoversAfterUnrecognizedInput checks that a
// run of unlexable input yields one ErrorSymbol token and then resumes
// normal lexing (spec.md §7's lexer-error recovery, grounded on the
// teacher's panicMode field in lazy.go).
func Test_Stream_PanicModeRecoversAfterUnrecognizedInput(t *testing.T) {
	assert := assert.New(t)

	defs := []TokenDef{
		{ID: 0, Symbol: "id", Name: "id", Pattern: mustParse(t, "[a-z]+")},
	}

	dfa, err := Global(defs)
	assert.NoError(err)

	lx := NewLexer(dfa)
	stream, err := lx.Open(strings.NewReader("#ab"))
	assert.NoError(err)

	bad := stream.Next()
	assert.Equal(ErrorSymbol, bad.Symbol)

	good := stream.Next()
	assert.Equal(grammar.Symbol("id"), good.Symbol)
	assert.Equal("ab", good.Lexeme)
}
