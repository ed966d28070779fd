package tablecache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/limecc/grammar"
	"github.com/dekarrin/limecc/lex"
	"github.com/dekarrin/limecc/lr"
	"github.com/stretchr/testify/assert"
)

func smallTable(t *testing.T) (*grammar.Grammar, *lr.Table) {
	t.Helper()
	g := &grammar.Grammar{}
	g.AddRule("sum", []grammar.Symbol{"NUM"})
	g.AddRule("sum", []grammar.Symbol{"sum", "PLUS", "NUM"})
	g.AddTerm("NUM")
	g.AddTerm("PLUS")
	g.SetRoot("sum")

	table, err := lr.Construct(g, 1, false)
	if err != nil {
		t.Fatalf("constructing table: %v", err)
	}
	return g, table
}

func Test_StoreAndLoad_RoundTripsEntry(t *testing.T) {
	assert := assert.New(t)

	g, table := smallTable(t)
	src := "sum ::= NUM.\nsum ::= sum PLUS NUM."

	tokens := []lex.TokenDef{
		{ID: 0, Symbol: "NUM", Name: "NUM"},
		{ID: 1, Symbol: "PLUS", Name: "PLUS"},
	}

	entry := Build(src, g, table, false, tokens)

	dir := t.TempDir()
	path := filepath.Join(dir, "cache.bin")

	assert.NoError(Store(path, entry))

	loaded, err := Load(path)
	assert.NoError(err)
	if loaded == nil {
		t.Fatal("expected a non-nil loaded entry")
	}

	assert.Equal(entry.SourceHash, loaded.SourceHash)
	assert.Equal(entry.Grammar.Root, loaded.Grammar.Root)
	assert.Len(loaded.States, len(table.States))
	assert.True(loaded.Fresh(src))
	assert.False(loaded.Fresh(src + "\nsum ::= NUM PLUS NUM."))
}

func Test_Load_MissingFileIsCacheMissNotError(t *testing.T) {
	assert := assert.New(t)

	loaded, err := Load(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	assert.NoError(err)
	assert.Nil(loaded)
}

func Test_HashSource_IgnoresWhitespaceNoise(t *testing.T) {
	assert := assert.New(t)

	a := HashSource("sum ::= NUM.")
	b := HashSource("sum ::=   NUM.\r\n")
	assert.Equal(a, b)

	c := HashSource("sum ::= NUM .")
	assert.NotEqual(a, c, "a genuinely different token sequence must not collide")
}

func Test_Store_OverwritesExistingFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "cache.bin")
	assert.NoError(os.WriteFile(path, []byte("stale"), 0o644))

	g, table := smallTable(t)
	entry := Build("sum ::= NUM.", g, table, true, nil)
	assert.NoError(Store(path, entry))

	loaded, err := Load(path)
	assert.NoError(err)
	assert.True(loaded.Lexer.ContextLexer)
}
