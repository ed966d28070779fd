package lex

import (
	"fmt"
	"io"

	"github.com/dekarrin/limecc/automaton"
	"github.com/dekarrin/limecc/grammar"
)

// Token is a lexeme read from source text, tagged with the grammar
// terminal it was lexed as and its source position, for error
// reporting (spec.md §7's diagnostics all carry line/position).
type Token struct {
	Symbol  grammar.Symbol
	Lexeme  string
	Line    int
	LinePos int
	// FullLine is the complete text of the source line the token
	// appears on, for diagnostic context.
	FullLine string
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q (line %d, pos %d)", t.Symbol, t.Lexeme, t.Line, t.LinePos)
}

// EndOfText is the synthetic terminal a TokenStream returns once
// input is exhausted (mirrors spec.md's implicit end marker, and the
// teacher's types.TokenEndOfText).
const EndOfText grammar.Symbol = "$"

// ErrorSymbol tags a Token produced when no DFA transition exists at
// all from the current position (the teacher's types.TokenError,
// restored here since the original lex package referenced it without
// ever defining it).
const ErrorSymbol grammar.Symbol = "$error"

// TokenStream yields Tokens one at a time, lazily, from a single
// backing DFA (or from the per-state DFA selected by Select, for a
// context lexer). Grounded on the teacher's lex.TokenStream interface
// shape (Next/Peek/HasNext) and lazyLex's Peek-via-mark-restore
// technique, generalized from a regexp-driven match to a DFA walk.
type TokenStream interface {
	Next() Token
	Peek() Token
	HasNext() bool
}

// Lexer drives one or more DFAs over source text. For a stateless
// lexer, a Lexer is built with a single DFA and Select is never
// called; for a context lexer, the caller tells the stream which
// DFA to use for the next token via Select (the LR driver knows its
// own current state's lexer_id, per spec.md §4.6).
type Lexer struct {
	dfas []*DFA
}

// NewLexer wraps a single global DFA (spec.md §4.6's non-context
// branch; lexer_id is always 0).
func NewLexer(dfa *DFA) *Lexer {
	return &Lexer{dfas: []*DFA{dfa}}
}

// NewContextLexer wraps every DFA of a context-lexer Assignment,
// indexed by lexer_id.
func NewContextLexer(a *Assignment) *Lexer {
	return &Lexer{dfas: a.DFAs}
}

// Open begins lexing input, starting with lexer_id 0 (the only valid
// id for a stateless lexer; a context-lexer caller must call Select
// before consuming a token whose admissible set differs from state
// 0's).
func (lx *Lexer) Open(input io.Reader) (*Stream, error) {
	runes, err := readAllRunes(input)
	if err != nil {
		return nil, err
	}
	return &Stream{
		lx:      lx,
		runes:   runes,
		dfaIdx:  0,
		curLine: 1,
		curPos:  0,
	}, nil
}

func readAllRunes(r io.Reader) ([]rune, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return []rune(string(b)), nil
}

// Stream is the concrete TokenStream a Lexer produces. Buffering the
// entire input as a rune slice up front (rather than the teacher's
// incrementally-filled regexReader) is sufficient here: the generator
// is explicitly single-threaded batch processing of whole files
// (spec.md §5), never a streaming service, so there is nothing to gain
// from incremental reads and a great deal of mark/restore complexity
// to lose.
type Stream struct {
	lx    *Lexer
	runes []rune
	pos   int

	dfaIdx int

	curLine int
	curPos  int

	done      bool
	panicMode bool

	peeked     *Token
	peekedFrom int // s.pos at the time Peek produced peeked
	peekedTo   mark
}

// Select switches the DFA used for the next token to the one with the
// given lexer_id. A context-lexer-driving parser calls this with its
// current LR state's lexer_id before each token fetch.
func (s *Stream) Select(lexerID int) {
	s.dfaIdx = lexerID
}

func (s *Stream) HasNext() bool {
	return !s.done
}

func (s *Stream) Peek() Token {
	if s.peeked != nil && s.peekedFrom == s.pos {
		return *s.peeked
	}
	before := s.snapshot()
	tok := s.next()
	after := s.snapshot()
	s.restore(before)
	s.peeked = &tok
	s.peekedFrom = before.pos
	s.peekedTo = after
	return tok
}

func (s *Stream) Next() Token {
	if s.peeked != nil && s.peekedFrom == s.pos {
		tok := *s.peeked
		s.peeked = nil
		s.restore(s.peekedTo)
		return tok
	}
	return s.next()
}

type mark struct {
	pos       int
	line      int
	linePos   int
	done      bool
	panicMode bool
}

func (s *Stream) snapshot() mark {
	return mark{pos: s.pos, line: s.curLine, linePos: s.curPos, done: s.done, panicMode: s.panicMode}
}

func (s *Stream) restore(m mark) {
	s.pos = m.pos
	s.curLine = m.line
	s.curPos = m.linePos
	s.done = m.done
	s.panicMode = m.panicMode
}

// next performs the actual DFA walk and advances every piece of
// stream state that tracks source position; unlike Peek, it commits
// its result. Grounded on the teacher's lazyLex.Next: panic-mode
// character discarding on no-match, longest-match selection via the
// accepting state reached furthest into the input, then repeat for
// ActionNone-equivalent discard tokens.
func (s *Stream) next() Token {
	for {
		if s.pos >= len(s.runes) {
			s.done = true
			return s.makeToken(EndOfText, "")
		}

		dfa := s.lx.dfas[s.dfaIdx].Automaton
		tokens := s.lx.dfas[s.dfaIdx].Tokens

		var tagID, length int
		var ok bool

		if s.panicMode {
			// discard runes one at a time, entirely within this one
			// call, until a match is found or input runs out; only
			// the call that first entered panic mode emits an error
			// token, matching the teacher's lazyLex.Next.
			for {
				s.skipOneRune()
				if s.pos >= len(s.runes) {
					s.done = true
					return s.makeToken(EndOfText, "")
				}
				tagID, length, ok = longestMatch(dfa, s.runes[s.pos:])
				if ok {
					s.panicMode = false
					break
				}
			}
		} else {
			tagID, length, ok = longestMatch(dfa, s.runes[s.pos:])
			if !ok {
				tok := s.makeToken(ErrorSymbol, "unrecognized input")
				s.panicMode = true
				return tok
			}
		}

		lexeme := string(s.runes[s.pos : s.pos+length])
		def := tokens[tagID]
		s.consume(length)

		if def.Discard {
			continue
		}

		return s.makeToken(def.Symbol, lexeme)
	}
}

func (s *Stream) consume(n int) {
	for i := 0; i < n; i++ {
		s.advanceOneRune()
	}
}

func (s *Stream) skipOneRune() {
	s.advanceOneRune()
}

func (s *Stream) advanceOneRune() {
	r := s.runes[s.pos]
	s.pos++
	if r == '\n' {
		s.curLine++
		s.curPos = 0
	} else {
		s.curPos++
	}
}

func (s *Stream) makeToken(sym grammar.Symbol, lexeme string) Token {
	return Token{
		Symbol:   sym,
		Lexeme:   lexeme,
		Line:     s.curLine,
		LinePos:  s.curPos,
		FullLine: s.lineText(s.curLine),
	}
}

func (s *Stream) lineText(line int) string {
	var cur, start int
	for i, r := range s.runes {
		if cur == line-1 {
			start = i
			break
		}
		if r == '\n' {
			cur++
		}
	}
	end := start
	for end < len(s.runes) && s.runes[end] != '\n' {
		end++
	}
	return string(s.runes[start:end])
}

// longestMatch walks dfa over runes from its initial state, returning
// the accept tag's token ID and match length of the furthest-reached
// accepting state, per the standard maximal-munge lexer rule. Returns
// ok=false if no prefix of runes (not even the empty string) is
// accepted.
func longestMatch(dfa *automaton.Automaton, runes []rune) (tagID int, length int, ok bool) {
	initials := dfa.Initial()
	if len(initials) == 0 {
		return 0, 0, false
	}
	cur := initials[0]

	bestLen := -1
	var bestTag automaton.AcceptTag
	if tag, accepting := dfa.Accept(cur); accepting {
		bestLen = 0
		bestTag = tag
	}

	for i, r := range runes {
		next, found := stepDFA(dfa, cur, r)
		if !found {
			break
		}
		cur = next
		if tag, accepting := dfa.Accept(cur); accepting {
			bestLen = i + 1
			bestTag = tag
		}
	}

	if bestLen < 0 {
		return 0, 0, false
	}
	return bestTag.TokenID, bestLen, true
}

func stepDFA(dfa *automaton.Automaton, from automaton.StateID, r rune) (automaton.StateID, bool) {
	for _, le := range dfa.LabeledEdges(from) {
		if le.Label.Contains(r) {
			return le.To, true
		}
	}
	return 0, false
}
