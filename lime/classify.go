// Package lime parses LIME specification text (spec.md §6's directive
// surface) into a grammar.Grammar plus the lex.TokenDef set the tokens
// it references imply. Hand-written, not self-hosted: the original
// implementation bootstrapped its own lexer/parser from the very
// generator this directory builds, but nothing under this repository's
// core (lr, lex, automaton) is self-hosted, and this front end is no
// exception. Grounded on original_source/src/limecc/lime_grammar.py's
// directive set and original_source/simple_lexer.py's classify-and-run
// tokenizing idiom.
package lime

// opChars are the characters lime_grammar.py's _LimeLexerClassify
// groups into a single "op" run before splitting it back into the
// individual operator tokens the grammar actually uses (::=, ~=, ::,
// and .).
const opChars = "~:=."

func isSpace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

func isIdentRune(ch rune) bool {
	return ch == '_' || ch == '-' || ch == '%' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

func containsRune(s string, ch rune) bool {
	for _, r := range s {
		if r == ch {
			return true
		}
	}
	return false
}
