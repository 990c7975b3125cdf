// Package bnfread reads grouper's BNF-like meta-language and produces a
// validated, augmented grammar.Grammar. The reader is hand-written
// recursive descent over a byte slice, one byte of lookahead at a time;
// there is no separate lexer stage.
package bnfread

import (
	"fmt"

	"github.com/dekarrin/grouper/grammar"
	"github.com/dekarrin/grouper/groupererr"
)

// Result is the outcome of a successful Read: the augmented grammar plus
// any non-fatal warnings collected while reading (currently just attempts
// to redefine the reserved EPSILON name).
type Result struct {
	Grammar  *grammar.Grammar
	Warnings []string
}

// Read parses src as a complete BNF source file and returns the resulting
// augmented, validated Grammar. Read aborts at the first malformed
// declaration; it never returns a partial grammar.
func Read(src []byte) (*Result, error) {
	g := grammar.New()
	rd := &reader{data: src, line: 1}
	var warnings []string

	for {
		rd.skipInlineWS()
		b, ok := rd.peek()
		if !ok {
			break
		}
		if b == '\n' {
			rd.advance()
			continue
		}

		warn, err := parseDecl(g, rd)
		if err != nil {
			return nil, err
		}
		if warn != "" {
			warnings = append(warnings, warn)
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return &Result{Grammar: g.Augmented(), Warnings: warnings}, nil
}

// reader is the byte-level cursor the recursive-descent parser advances.
type reader struct {
	data []byte
	pos  int
	line int
}

func (r *reader) peek() (byte, bool) {
	if r.pos >= len(r.data) {
		return 0, false
	}
	return r.data[r.pos], true
}

func (r *reader) advance() (byte, bool) {
	b, ok := r.peek()
	if !ok {
		return 0, false
	}
	r.pos++
	if b == '\n' {
		r.line++
	}
	return b, true
}

func (r *reader) skipInlineWS() {
	for {
		b, ok := r.peek()
		if !ok || (b != ' ' && b != '\t' && b != '\r') {
			return
		}
		r.advance()
	}
}

// readLineRaw consumes bytes up to (and including) the next newline or
// EOF, and returns the consumed text with trailing whitespace trimmed.
func (r *reader) readLineRaw() string {
	start := r.pos
	for {
		b, ok := r.peek()
		if !ok || b == '\n' {
			break
		}
		r.advance()
	}
	raw := string(r.data[start:r.pos])
	if b, ok := r.peek(); ok && b == '\n' {
		r.advance()
	}
	return trimTrailingWS(raw)
}

func trimTrailingWS(s string) string {
	end := len(s)
	for end > 0 {
		c := s[end-1]
		if c != ' ' && c != '\t' && c != '\r' {
			break
		}
		end--
	}
	return s[:end]
}

func isNameStart(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isNameChar(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9') || b == '_'
}

// token is the result of reading one lexical unit of the meta-language:
// a non-terminal reference, a quote terminal, or a bare name (a regex
// terminal reference/definition, or one of the reserved words).
type token struct {
	isQuote       bool
	isNonTerminal bool
	name          string
}

func readToken(rd *reader) (token, error) {
	b, ok := rd.peek()
	if !ok {
		return token{}, groupererr.NewBnfSyntaxError(rd.line, "unexpected end of input")
	}

	switch {
	case b == '<':
		line := rd.line
		rd.advance()
		name, err := readName(rd)
		if err != nil {
			return token{}, err
		}
		if name == "" {
			return token{}, groupererr.NewBnfSyntaxError(line, "empty non-terminal name")
		}
		c, ok := rd.peek()
		if !ok || c != '>' {
			return token{}, groupererr.NewBnfSyntaxError(line, "unterminated non-terminal reference")
		}
		rd.advance()
		return token{isNonTerminal: true, name: name}, nil

	case b == '\'' || b == '"':
		q := b
		line := rd.line
		rd.advance()
		var content []byte
		for {
			c, ok := rd.peek()
			if !ok || c == '\n' {
				return token{}, groupererr.NewBnfSyntaxError(line, "unterminated quote")
			}
			if c == q {
				rd.advance()
				break
			}
			content = append(content, c)
			rd.advance()
		}
		return token{isQuote: true, name: string(content)}, nil

	case isNameStart(b):
		name, err := readName(rd)
		if err != nil {
			return token{}, err
		}
		return token{name: name}, nil

	default:
		return token{}, groupererr.NewBnfSyntaxError(rd.line, fmt.Sprintf("unexpected character %q", b))
	}
}

func readName(rd *reader) (string, error) {
	b, ok := rd.peek()
	if !ok || !isNameStart(b) {
		return "", groupererr.NewBnfSyntaxError(rd.line, "expected a name")
	}
	start := rd.pos
	for {
		c, ok := rd.peek()
		if !ok || !isNameChar(c) {
			break
		}
		rd.advance()
	}
	return string(rd.data[start:rd.pos]), nil
}

// parseDecl reads one LHS = RHS declaration, mutating g accordingly. It
// returns a non-empty warning string for the one recognised non-fatal
// condition (redefining EPSILON).
func parseDecl(g *grammar.Grammar, rd *reader) (string, error) {
	line := rd.line

	lhs, err := readToken(rd)
	if err != nil {
		return "", err
	}

	rd.skipInlineWS()
	eq, ok := rd.peek()
	if !ok || eq != '=' {
		return "", groupererr.NewBnfSyntaxError(line, "expected '=' after left-hand side")
	}
	rd.advance()
	rd.skipInlineWS()

	switch {
	case lhs.isQuote:
		return "", groupererr.NewBnfSyntaxError(line, "left-hand side cannot be a quoted literal")

	case lhs.isNonTerminal:
		nt := grammar.NewNonTerminal(lhs.name)
		return "", parseNonTerminalRHS(g, rd, nt, line)

	default:
		switch lhs.name {
		case "IGNORE":
			pattern := rd.readLineRaw()
			g.AddIgnorePattern(pattern)
			return "", nil

		case "EPSILON":
			rd.readLineRaw()
			return fmt.Sprintf("line %d: EPSILON is reserved and cannot be redefined; declaration discarded", line), nil

		default:
			pattern := rd.readLineRaw()
			if pattern == "" {
				return "", groupererr.NewBnfSyntaxError(line, fmt.Sprintf("regex terminal %q has no pattern", lhs.name))
			}
			g.AddTerminal(grammar.NewRegexTerminal(lhs.name, pattern))
			return "", nil
		}
	}
}

func parseNonTerminalRHS(g *grammar.Grammar, rd *reader, nt grammar.NonTerminal, line int) error {
	for {
		prod, err := parseProduction(g, rd, line)
		if err != nil {
			return err
		}
		g.AddRule(nt, prod)

		rd.skipInlineWS()
		b, ok := rd.peek()
		if !ok || b == '\n' {
			if ok {
				rd.advance()
			}
			return nil
		}
		if b == '|' {
			rd.advance()
			rd.skipInlineWS()
			continue
		}
		return groupererr.NewBnfSyntaxError(rd.line, fmt.Sprintf("unexpected character %q after production", b))
	}
}

func parseProduction(g *grammar.Grammar, rd *reader, line int) (grammar.Production, error) {
	var toks grammar.Production

	for {
		rd.skipInlineWS()
		b, ok := rd.peek()
		if !ok || b == '\n' || b == '|' {
			break
		}

		tok, err := readToken(rd)
		if err != nil {
			return nil, err
		}

		switch {
		case tok.isQuote:
			if tok.name == "$" {
				return nil, groupererr.NewBnfSyntaxError(line, `"$" is reserved for end-of-input and cannot appear in grammar text`)
			}
			t := grammar.NewQuoteTerminal(tok.name)
			g.AddTerminal(t)
			toks = append(toks, grammar.Term(t))

		case tok.isNonTerminal:
			toks = append(toks, grammar.NonTerm(grammar.NewNonTerminal(tok.name)))

		case tok.name == "EPSILON":
			toks = append(toks, grammar.Term(grammar.Epsilon))

		default:
			key := "R_" + tok.name
			t, found := g.Terminal(key)
			if !found {
				return nil, groupererr.NewBnfSyntaxError(line, fmt.Sprintf("undefined terminal %q", tok.name))
			}
			toks = append(toks, grammar.Term(t))
		}
	}

	if len(toks) == 0 {
		return nil, groupererr.NewBnfSyntaxError(line, "empty production")
	}

	hasEpsilon := false
	for _, t := range toks {
		if t.IsEpsilon() {
			hasEpsilon = true
			break
		}
	}
	if hasEpsilon && len(toks) > 1 {
		return nil, groupererr.NewBnfSyntaxError(line, "ε may only appear alone in a production")
	}

	return toks, nil
}
