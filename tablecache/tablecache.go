// Package tablecache persists a snapshot of a constructed grammar, its
// LR automaton and its lexer token names to disk, keyed by a hash of the
// LIME source text it was built from (SPEC_FULL.md §4.8). Load and Fresh
// read an entry back and compare it with a source; nothing in this
// module uses a loaded entry in place of running the construction again.
// Grounded on
// server/dao/sqlite/sessions.go's use of rezi to serialize an opaque
// game-state blob; this package does the same for the generator's own
// tables, without the sqlite storage layer around it, since there is no
// multi-row relational data here, just one cache entry per spec file.
package tablecache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/dekarrin/rezi"
)

// Entry is exactly what's cached for one LIME source file: the source
// hash, the grammar's rules and root, every LR state's gotos and
// actions, and the lexer's token names. The generator's own in-memory types (grammar.Grammar, lr.Table,
// lex.DFA/Assignment) hold unexported internals the way spec.md's data
// model intends, so Entry carries a rezi-serializable snapshot built
// from their exported accessors rather than the live types themselves.
type Entry struct {
	SourceHash string
	Grammar    GrammarSnapshot
	States     []StateSnapshot
	Lexer      LexerSnapshot
}

// GrammarSnapshot is the rezi-serializable shape of a grammar.Grammar:
// every rule in the order it was added, plus the root symbol.
type GrammarSnapshot struct {
	Root  string
	Rules []RuleSnapshot
}

type RuleSnapshot struct {
	Left  string
	Right []string
}

// StateSnapshot is the rezi-serializable shape of one lr.State: its
// id, its goto edges, and its full action table, keyed by the
// lookahead tuple joined the same way lr's internal laKey does.
// Faithful enough that a driver can walk it without ever calling
// lr.Construct again.
type StateSnapshot struct {
	ID      int
	Gotos   map[string]int
	Actions map[string]ActionSnapshot
}

// ActionSnapshot is one lr.Action, flattened to rezi-friendly fields
// instead of lr.Action's Type+State+Rule union (rezi encodes concrete
// struct shapes, not a tagged union with an unexported grammar.Rule
// payload).
type ActionSnapshot struct {
	Kind      string // "shift", "reduce", "accept"
	ShiftTo   int
	RuleLeft  string
	RuleRight []string
}

// LexerSnapshot is the rezi-serializable shape of the assembled
// lexer(s): whether a context lexer was used, and the names of the
// tokens in declaration order. Neither the DFA transition tables nor the
// token patterns are stored, and Load does not rebuild any DFA.
type LexerSnapshot struct {
	ContextLexer bool
	TokenNames   []string
}

// HashSource returns the cache key for src: a normalized-whitespace
// sha256 digest, so a spec file re-saved with only trailing-whitespace
// or line-ending changes still hits the cache.
func HashSource(src string) string {
	norm := bytes.TrimSpace(normalize(src))
	sum := sha256.Sum256(norm)
	return hex.EncodeToString(sum[:])
}

func normalize(src string) []byte {
	out := make([]byte, 0, len(src))
	var lastWasSpace bool
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\r' {
			continue
		}
		isSpace := c == ' ' || c == '\t' || c == '\n'
		if isSpace && lastWasSpace {
			continue
		}
		out = append(out, c)
		lastWasSpace = isSpace
	}
	return out
}

// Load reads and decodes the cache entry stored at path. Returns
// (nil, nil) if path does not exist — a cache miss is not an error.
func Load(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cache file: %w", err)
	}

	var e Entry
	if _, err := rezi.DecBinary(data, &e); err != nil {
		return nil, fmt.Errorf("decoding cache file: %w", err)
	}
	return &e, nil
}

// Store encodes e and writes it to path, overwriting whatever cache
// entry (if any) was there before. There is no partial/incremental
// update: a cache entry is replaced wholesale or not at all, matching
// spec.md's non-goal of incremental table updates.
func Store(path string, e Entry) error {
	data := rezi.EncBinary(e)
	return os.WriteFile(path, data, 0o644)
}

// Fresh reports whether a loaded Entry still matches src: the cache is
// invalidated purely by source-hash mismatch, never by inspecting the
// tables themselves.
func (e *Entry) Fresh(src string) bool {
	return e != nil && e.SourceHash == HashSource(src)
}
