package lime

import (
	"fmt"
	"strings"

	"github.com/dekarrin/limecc/grammar"
	"github.com/dekarrin/limecc/lex"
	"github.com/dekarrin/limecc/regex"
)

// anonKind distinguishes the two ways a pattern can collapse to the
// same anonymous token, per spec.md §6: "the same literal/regex text
// collapses to the same anonymous token id." A literal "+" and a regex
// {\+} are deliberately kept distinct even if they'd match the same
// text, since they carry different AcceptTag priorities.
type anonKind struct {
	literal bool
	text    string
}

type parser struct {
	toks []token
	pos  int

	g         *grammar.Grammar
	nonTerms  map[grammar.Symbol]bool
	tokenDefs map[grammar.Symbol]lex.TokenDef
	tokenSeq  []grammar.Symbol
	anon      map[anonKind]grammar.Symbol
	meta      []RuleMeta

	contextLexer bool
	tokenType    string
	includes     []string
	tests        []Test
	types        map[grammar.Symbol]string
	void         map[grammar.Symbol]bool
	discardAnn   map[grammar.Symbol]bool

	rootSymbol grammar.Symbol
	rootSet    bool

	nextID int
}

// Parse parses LIME specification text into a ParsedGrammar, per
// spec.md §6. Errors are *ParseError for malformed directive syntax, or
// a plain error for the post-parse grammar-validity checks of spec.md
// §7 ("invalid grammar": empty grammar, unknown root, contradictory
// type annotations, undefined symbols).
func Parse(src string) (*ParsedGrammar, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{
		toks:       toks,
		g:          &grammar.Grammar{},
		nonTerms:   map[grammar.Symbol]bool{},
		tokenDefs:  map[grammar.Symbol]lex.TokenDef{},
		anon:       map[anonKind]grammar.Symbol{},
		types:      map[grammar.Symbol]string{},
		void:       map[grammar.Symbol]bool{},
		discardAnn: map[grammar.Symbol]bool{},
	}

	for p.cur().kind != tEOF {
		if err := p.statement(); err != nil {
			return nil, err
		}
	}

	return p.finalize()
}

func (p *parser) cur() token { return p.toks[p.pos] }
func (p *parser) advance()   { p.pos++ }

func (p *parser) expect(k tokenKind, what string) (token, error) {
	t := p.cur()
	if t.kind != k {
		return token{}, &ParseError{Line: t.line, Col: t.col, Msg: fmt.Sprintf("expected %s", what)}
	}
	p.advance()
	return t, nil
}

func (p *parser) statement() error {
	t := p.cur()
	switch t.kind {
	case tKw:
		p.advance()
		return p.directive(t)
	case tID:
		p.advance()
		lhs := grammar.Symbol(t.text)
		switch p.cur().kind {
		case tColonColonEq, tLParen:
			return p.ruleStmt(lhs)
		case tColonColon:
			return p.typeStmt(lhs)
		case tTildeEq:
			return p.lexStmt(lhs)
		default:
			return &ParseError{Line: p.cur().line, Col: p.cur().col, Msg: "expected ::=, :: or ~= after identifier"}
		}
	default:
		return &ParseError{Line: t.line, Col: t.col, Msg: "expected a directive or a rule"}
	}
}

func (p *parser) directive(kw token) error {
	switch kw.text {
	case "token_type":
		snip, err := p.expect(tSnippet, "a {type} snippet after %token_type")
		if err != nil {
			return err
		}
		p.tokenType = snip.text
		_, err = p.expect(tDot, "'.' to end %token_type")
		return err

	case "include":
		snip, err := p.expect(tSnippet, "a {…} snippet after %include")
		if err != nil {
			return err
		}
		p.includes = append(p.includes, snip.text)
		_, err = p.expect(tDot, "'.' to end %include")
		return err

	case "context_lexer":
		p.contextLexer = true
		_, err := p.expect(tDot, "'.' to end %context_lexer")
		return err

	case "discard":
		if err := p.discardStmt(); err != nil {
			return err
		}
		_, err := p.expect(tDot, "'.' to end %discard")
		return err

	case "root":
		name, err := p.expect(tID, "a symbol name after %root")
		if err != nil {
			return err
		}
		p.rootSymbol = grammar.Symbol(name.text)
		p.rootSet = true
		if p.cur().kind == tDot {
			p.advance()
			return nil
		}
		return p.ruleStmt(p.rootSymbol)

	case "test":
		name, err := p.expect(tID, "a symbol name after %test")
		if err != nil {
			return err
		}
		if _, err := p.expect(tColonColonEq, "'::=' in %test"); err != nil {
			return err
		}
		items, _, err := p.rhsItems()
		if err != nil {
			return err
		}
		if _, err := p.expect(tDot, "'.' to end %test"); err != nil {
			return err
		}
		p.tests = append(p.tests, Test{Root: grammar.Symbol(name.text), Sequence: items})
		return nil

	default:
		return &ParseError{Line: kw.line, Col: kw.col, Msg: fmt.Sprintf("unknown directive %%%s", kw.text)}
	}
}

func (p *parser) discardStmt() error {
	t := p.cur()
	switch t.kind {
	case tQL:
		p.advance()
		return p.addDiscardToken(t.text, true)
	case tSnippet:
		p.advance()
		return p.addDiscardToken(t.text, false)
	default:
		return &ParseError{Line: t.line, Col: t.col, Msg: "expected a literal or {regex} after %discard"}
	}
}

func (p *parser) typeStmt(lhs grammar.Symbol) error {
	if _, err := p.expect(tColonColon, "'::'"); err != nil {
		return err
	}
	if _, already := p.types[lhs]; already {
		return fmt.Errorf("symbol %q already has a type annotation", lhs)
	}
	if p.void[lhs] || p.discardAnn[lhs] {
		return fmt.Errorf("symbol %q already has a type annotation", lhs)
	}

	t := p.cur()
	switch {
	case t.kind == tSnippet:
		p.advance()
		p.types[lhs] = t.text
	case t.kind == tID && t.text == "void":
		p.advance()
		p.void[lhs] = true
	case t.kind == tID && t.text == "discard":
		p.advance()
		p.discardAnn[lhs] = true
	default:
		return &ParseError{Line: t.line, Col: t.col, Msg: "expected a {type} snippet, 'void', or 'discard' after '::'"}
	}

	_, err := p.expect(tDot, "'.' to end type annotation")
	return err
}

func (p *parser) lexStmt(lhs grammar.Symbol) error {
	if _, err := p.expect(tTildeEq, "'~='"); err != nil {
		return err
	}
	t := p.cur()
	var err error
	switch t.kind {
	case tQL:
		p.advance()
		err = p.addNamedToken(lhs, t.text, true)
	case tSnippet:
		p.advance()
		err = p.addNamedToken(lhs, t.text, false)
	default:
		return &ParseError{Line: t.line, Col: t.col, Msg: "expected a literal or {regex} after '~='"}
	}
	if err != nil {
		return err
	}

	// optional trailing "(name)" capture var, carried for the
	// out-of-scope emitter the same way rule_stmt's item vars are.
	if p.cur().kind == tLParen {
		p.advance()
		if _, err := p.expect(tID, "a name inside '(...)'"); err != nil {
			return err
		}
		if _, err := p.expect(tRParen, "')'"); err != nil {
			return err
		}
	}

	_, err = p.expect(tDot, "'.' to end token declaration")
	return err
}

// ruleStmt parses the remainder of a rule_stmt after its left-hand
// symbol has already been read (lhs), including the optional "(v)"
// capture name, the "::=" right-hand side, the terminating '.', and an
// optional trailing action snippet. %root A(v) ::= ... uses this same
// path after setting the root symbol, since the combined form's grammar
// is identical to a plain rule statement's.
func (p *parser) ruleStmt(lhs grammar.Symbol) error {
	lhsVar := ""
	if p.cur().kind == tLParen {
		p.advance()
		name, err := p.expect(tID, "a name inside '(...)'")
		if err != nil {
			return err
		}
		lhsVar = name.text
		if _, err := p.expect(tRParen, "')'"); err != nil {
			return err
		}
	}

	if _, err := p.expect(tColonColonEq, "'::='"); err != nil {
		return err
	}

	right, vars, err := p.rhsItems()
	if err != nil {
		return err
	}

	if _, err := p.expect(tDot, "'.' to end a rule"); err != nil {
		return err
	}

	var action any
	if p.cur().kind == tSnippet {
		action = p.cur().text
		p.advance()
	}

	p.g.AddRuleWithAction(lhs, right, action)
	p.nonTerms[lhs] = true
	p.meta = append(p.meta, RuleMeta{LHSVar: lhsVar, ItemVars: vars})
	return nil
}

// rhsItems parses a run of named_items: an identifier reference, an
// inline quoted literal, or an inline {regex}, each with an optional
// "(name)" capture suffix. Stops at the first token that can't start a
// named_item (the '.' ending the rule, or an unexpected token).
func (p *parser) rhsItems() ([]grammar.Symbol, []string, error) {
	var syms []grammar.Symbol
	var vars []string

	for {
		t := p.cur()
		var sym grammar.Symbol

		switch t.kind {
		case tID:
			sym = grammar.Symbol(t.text)
			p.advance()
		case tQL:
			var err error
			sym, err = p.addAnonToken(t.text, true)
			if err != nil {
				return nil, nil, err
			}
			p.advance()
		case tSnippet:
			var err error
			sym, err = p.addAnonToken(t.text, false)
			if err != nil {
				return nil, nil, err
			}
			p.advance()
		default:
			return syms, vars, nil
		}

		v := ""
		if p.cur().kind == tLParen {
			p.advance()
			name, err := p.expect(tID, "a name inside '(...)'")
			if err != nil {
				return nil, nil, err
			}
			v = name.text
			if _, err := p.expect(tRParen, "')'"); err != nil {
				return nil, nil, err
			}
		}

		syms = append(syms, sym)
		vars = append(vars, v)
	}
}

func (p *parser) addNamedToken(name grammar.Symbol, text string, literal bool) error {
	if _, exists := p.tokenDefs[name]; exists {
		return fmt.Errorf("token %q already declared", name)
	}
	def, err := p.newTokenDef(name, string(name), text, literal, false)
	if err != nil {
		return err
	}
	p.tokenDefs[name] = def
	p.tokenSeq = append(p.tokenSeq, name)
	return nil
}

func (p *parser) addAnonToken(text string, literal bool) (grammar.Symbol, error) {
	key := anonKind{literal: literal, text: text}
	if sym, ok := p.anon[key]; ok {
		return sym, nil
	}

	base := "re"
	if literal {
		base = "lit"
	}
	sym := p.g.GenerateUniqueTerminal(grammar.Symbol(fmt.Sprintf("$%s-%s", base, sanitizeForName(text))))

	def, err := p.newTokenDef(sym, text, text, literal, false)
	if err != nil {
		return "", err
	}
	p.tokenDefs[sym] = def
	p.tokenSeq = append(p.tokenSeq, sym)
	p.anon[key] = sym
	return sym, nil
}

func (p *parser) addDiscardToken(text string, literal bool) error {
	base := "re"
	if literal {
		base = "lit"
	}
	sym := p.g.GenerateUniqueTerminal(grammar.Symbol(fmt.Sprintf("$discard-%s-%s", base, sanitizeForName(text))))
	def, err := p.newTokenDef(sym, text, text, literal, true)
	if err != nil {
		return err
	}
	p.tokenDefs[sym] = def
	p.tokenSeq = append(p.tokenSeq, sym)
	return nil
}

func (p *parser) newTokenDef(sym grammar.Symbol, name, text string, literal, discard bool) (lex.TokenDef, error) {
	def := lex.TokenDef{
		ID:      p.nextID,
		Symbol:  sym,
		Name:    name,
		Discard: discard,
	}
	if literal {
		def.Literal = text
	} else {
		node, err := regex.Parse(text)
		if err != nil {
			return lex.TokenDef{}, fmt.Errorf("token %q: %w", name, err)
		}
		def.Pattern = node
	}
	p.nextID++

	// Declare sym to the grammar immediately, not just at finalize:
	// GenerateUniqueTerminal's collision check (via g.knowsSymbol) only
	// sees symbols the grammar already knows about, so two distinct
	// anonymous tokens minted before finalize would otherwise collide
	// whenever their sanitized names matched.
	p.g.AddTerm(sym)

	return def, nil
}

func sanitizeForName(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	out := sb.String()
	if len(out) > 24 {
		out = out[:24]
	}
	return out
}

// finalize resolves every rule-body reference against the declared
// token set, applies the root symbol (if %root was ever seen), and
// runs spec.md §7's "invalid grammar" structural checks.
func (p *parser) finalize() (*ParsedGrammar, error) {
	if len(p.g.Rules()) == 0 {
		return nil, fmt.Errorf("grammar has no rules")
	}

	for _, r := range p.g.Rules() {
		for _, sym := range r.Right {
			if p.nonTerms[sym] {
				continue
			}
			if _, ok := p.tokenDefs[sym]; !ok {
				return nil, fmt.Errorf("undefined symbol %q referenced in rule for %q", sym, r.Left)
			}
		}
	}

	for sym := range p.discardAnn {
		def, ok := p.tokenDefs[sym]
		if !ok {
			return nil, fmt.Errorf("symbol %q annotated '::discard' has no token declaration", sym)
		}
		def.Discard = true
		p.tokenDefs[sym] = def
	}

	tokens := make([]lex.TokenDef, 0, len(p.tokenSeq))
	for _, sym := range p.tokenSeq {
		def := p.tokenDefs[sym]
		p.g.AddTerm(def.Symbol)
		tokens = append(tokens, def)
	}

	if p.rootSet {
		if !p.nonTerms[p.rootSymbol] {
			return nil, fmt.Errorf("root symbol %q is not the left-hand side of any rule", p.rootSymbol)
		}
		p.g.SetRoot(p.rootSymbol)
	}

	if err := p.g.Validate(); err != nil {
		return nil, err
	}

	return &ParsedGrammar{
		Grammar:      p.g,
		Tokens:       tokens,
		Meta:         p.meta,
		ContextLexer: p.contextLexer,
		TokenType:    p.tokenType,
		Includes:     p.includes,
		Tests:        p.tests,
		Types:        p.types,
		Void:         p.void,
	}, nil
}
