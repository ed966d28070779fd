package regex

import (
	"fmt"

	"github.com/dekarrin/limecc/automaton"
)

// escapeClasses maps the conventional backslash escapes to the
// character sets they expand to, per spec.md §4.2's supplement grounded
// on original_source/src/limecc/regex_parser.py's `_escape_map`: \d
// digits, \s whitespace, \w word characters, \n newline. Any other
// escaped character is itself a literal.
var escapeClasses = map[rune]func() automaton.CharLabel{
	'd': func() automaton.CharLabel { return automaton.NewCharLabelRange('0', '9') },
	's': func() automaton.CharLabel {
		return automaton.NewCharLabel(' ', '\t', '\n', '\r', '\v', '\f')
	},
	'w': func() automaton.CharLabel {
		l := automaton.NewCharLabelRange('a', 'z')
		l = l.Union(automaton.NewCharLabelRange('A', 'Z'))
		l = l.Union(automaton.NewCharLabelRange('0', '9'))
		l = l.Union(automaton.NewCharLabel('_'))
		return l
	},
	'n': func() automaton.CharLabel { return automaton.NewCharLabel('\n') },
}

// Parse parses pattern into a regex AST.
func Parse(pattern string) (Node, error) {
	p := &parser{runes: []rune(pattern)}
	node, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.runes) {
		return nil, fmt.Errorf("unexpected %q at position %d", p.runes[p.pos], p.pos)
	}
	return node, nil
}

type parser struct {
	runes []rune
	pos   int
}

func (p *parser) peek() (rune, bool) {
	if p.pos >= len(p.runes) {
		return 0, false
	}
	return p.runes[p.pos], true
}

func (p *parser) advance() rune {
	r := p.runes[p.pos]
	p.pos++
	return r
}

// parseAlt := cat ('|' cat)*
func (p *parser) parseAlt() (Node, error) {
	first, err := p.parseCat()
	if err != nil {
		return nil, err
	}
	items := []Node{first}

	for {
		r, ok := p.peek()
		if !ok || r != '|' {
			break
		}
		p.advance()
		next, err := p.parseCat()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}

	if len(items) == 1 {
		return items[0], nil
	}
	return Alt{Items: items}, nil
}

// parseCat := rep*, stopping at '|', ')', or end of input
func (p *parser) parseCat() (Node, error) {
	var items []Node
	for {
		r, ok := p.peek()
		if !ok || r == '|' || r == ')' {
			break
		}
		item, err := p.parseRep()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if len(items) == 1 {
		return items[0], nil
	}
	return Cat{Items: items}, nil
}

// parseRep := atom ('*' | '+' | '?')?
func (p *parser) parseRep() (Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	r, ok := p.peek()
	if !ok {
		return atom, nil
	}

	switch r {
	case '*':
		p.advance()
		return Rep{Item: atom}, nil
	case '+':
		p.advance()
		// a+ == a followed by zero-or-more more a's
		return Cat{Items: []Node{atom, Rep{Item: atom}}}, nil
	case '?':
		p.advance()
		// a? == a or nothing
		return Alt{Items: []Node{atom, Cat{}}}, nil
	default:
		return atom, nil
	}
}

// parseAtom := '(' alt ')' | '[' class ']' | '.' | '\' escape | literal
func (p *parser) parseAtom() (Node, error) {
	r, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("unexpected end of pattern")
	}

	switch r {
	case '(':
		p.advance()
		inner, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		closing, ok := p.peek()
		if !ok || closing != ')' {
			return nil, fmt.Errorf("unclosed group at position %d", p.pos)
		}
		p.advance()
		return inner, nil

	case '[':
		return p.parseClass()

	case '.':
		p.advance()
		return Lit{Label: automaton.Any()}, nil

	case '\\':
		p.advance()
		esc, ok := p.peek()
		if !ok {
			return nil, fmt.Errorf("dangling escape at end of pattern")
		}
		p.advance()
		if factory, ok := escapeClasses[esc]; ok {
			return Lit{Label: factory()}, nil
		}
		return Lit{Label: automaton.NewCharLabel(esc)}, nil

	default:
		p.advance()
		return Lit{Label: automaton.NewCharLabel(r)}, nil
	}
}

// parseClass parses a bracket expression: '[' '^'? (range | char)+ ']'.
func (p *parser) parseClass() (Node, error) {
	p.advance() // consume '['

	inverted := false
	if r, ok := p.peek(); ok && r == '^' {
		inverted = true
		p.advance()
	}

	chars := map[rune]bool{}
	first := true
	for {
		r, ok := p.peek()
		if !ok {
			return nil, fmt.Errorf("unclosed character class")
		}
		if r == ']' && !first {
			p.advance()
			break
		}
		first = false

		lo := p.advance()
		if lo == '\\' {
			esc, ok := p.peek()
			if !ok {
				return nil, fmt.Errorf("dangling escape in character class")
			}
			p.advance()
			if factory, ok := escapeClasses[esc]; ok {
				for c := range factory().Chars {
					chars[c] = true
				}
				continue
			}
			lo = esc
		}

		if nxt, ok := p.peek(); ok && nxt == '-' {
			// could be a range, unless '-' is immediately before ']'
			savedPos := p.pos
			p.advance() // consume '-'
			if hi, ok := p.peek(); ok && hi != ']' {
				p.advance()
				for c := lo; c <= hi; c++ {
					chars[c] = true
				}
				continue
			}
			p.pos = savedPos
		}

		chars[lo] = true
	}

	return Lit{Label: automaton.CharLabel{Chars: chars, Inverted: inverted}}, nil
}
