// Package grammar defines the data model for context-free grammars used by
// grouper's LR(1) pipeline: Terminal, NonTerminal, Token, Rule, and Grammar
// itself.
package grammar

import "fmt"

// Terminal is a leaf symbol of the grammar. A quote terminal represents the
// literal text it names (Representation is empty); a regex terminal
// represents a named token class whose lexical pattern is Representation. A
// quote terminal and a regex terminal that share a Name are distinct
// terminals.
type Terminal struct {
	Name           string
	Representation string
}

// NewQuoteTerminal creates a terminal that represents the literal text name.
func NewQuoteTerminal(name string) Terminal {
	return Terminal{Name: name}
}

// NewRegexTerminal creates a terminal that represents the lexer pattern
// repr, referred to in the grammar by name.
func NewRegexTerminal(name, repr string) Terminal {
	return Terminal{Name: name, Representation: repr}
}

// IsQuote returns whether t is a quote terminal.
func (t Terminal) IsQuote() bool {
	return t.Representation == ""
}

// Epsilon is the sentinel terminal used to mark an empty production. It
// never appears in FOLLOW sets, never keys an ACTION cell, and never
// participates in GOTO.
var Epsilon = Terminal{}

// IsEpsilon returns whether t is the distinguished ε terminal.
func (t Terminal) IsEpsilon() bool {
	return t.Name == "" && t.Representation == ""
}

// EndOfInput is the reserved end-marker terminal, written "$" in the
// meta-language and in qualified-name rendering.
var EndOfInput = Terminal{Name: "$"}

// Equal reports whether t and o name the same terminal. The
// quote-vs-regex distinction is the primary discriminator: a quote and a
// regex terminal with equal names are never equal.
func (t Terminal) Equal(o Terminal) bool {
	return t.IsQuote() == o.IsQuote() && t.Name == o.Name
}

// Less orders t before o: quote terminals sort before regex terminals, then
// by name.
func (t Terminal) Less(o Terminal) bool {
	if t.IsQuote() != o.IsQuote() {
		return t.IsQuote()
	}
	return t.Name < o.Name
}

func (t Terminal) String() string {
	if t.IsEpsilon() {
		return "ε"
	}
	if t.IsQuote() {
		return fmt.Sprintf("%q", t.Name)
	}
	return t.Name
}

// QualifiedKey renders the stable ACTION-table key for t: "T_<name>" for a
// quote terminal, "R_<name>" for a regex terminal, "T_$" for the end marker.
func (t Terminal) QualifiedKey() string {
	if t.Name == "$" && t.IsQuote() {
		return "T_$"
	}
	if t.IsQuote() {
		return "T_" + t.Name
	}
	return "R_" + t.Name
}

// NonTerminal is identified by name alone.
type NonTerminal struct {
	Name string
}

// NewNonTerminal creates a NonTerminal named name.
func NewNonTerminal(name string) NonTerminal {
	return NonTerminal{Name: name}
}

func (n NonTerminal) Equal(o NonTerminal) bool {
	return n.Name == o.Name
}

func (n NonTerminal) Less(o NonTerminal) bool {
	return n.Name < o.Name
}

func (n NonTerminal) String() string {
	return n.Name
}

// QualifiedKey renders the stable GOTO-table key for n: "NT_<name>".
func (n NonTerminal) QualifiedKey() string {
	return "NT_" + n.Name
}

// TokenKind distinguishes the two Token variants.
type TokenKind int

const (
	TokenTerminal TokenKind = iota
	TokenNonTerminal
)

// Token is a tagged variant over Terminal and NonTerminal. The strict total
// order places every terminal before every non-terminal; within a flavour,
// the natural order of that flavour applies.
type Token struct {
	Kind        TokenKind
	Terminal    Terminal
	NonTerminal NonTerminal
}

// Term wraps a Terminal as a Token.
func Term(t Terminal) Token {
	return Token{Kind: TokenTerminal, Terminal: t}
}

// NonTerm wraps a NonTerminal as a Token.
func NonTerm(n NonTerminal) Token {
	return Token{Kind: TokenNonTerminal, NonTerminal: n}
}

// IsTerminal reports whether tok is a Terminal.
func (tok Token) IsTerminal() bool {
	return tok.Kind == TokenTerminal
}

// IsNonTerminal reports whether tok is a NonTerminal.
func (tok Token) IsNonTerminal() bool {
	return tok.Kind == TokenNonTerminal
}

// IsEpsilon reports whether tok is the ε terminal.
func (tok Token) IsEpsilon() bool {
	return tok.IsTerminal() && tok.Terminal.IsEpsilon()
}

// Name returns the underlying symbol's name regardless of flavour.
func (tok Token) Name() string {
	if tok.IsTerminal() {
		return tok.Terminal.Name
	}
	return tok.NonTerminal.Name
}

// Equal reports whether tok and o are the same token.
func (tok Token) Equal(o Token) bool {
	if tok.Kind != o.Kind {
		return false
	}
	if tok.IsTerminal() {
		return tok.Terminal.Equal(o.Terminal)
	}
	return tok.NonTerminal.Equal(o.NonTerminal)
}

// Less implements the strict total order from the spec: all terminals
// precede all non-terminals; within a flavour, that flavour's natural order
// applies.
func (tok Token) Less(o Token) bool {
	if tok.Kind != o.Kind {
		return tok.Kind == TokenTerminal
	}
	if tok.IsTerminal() {
		return tok.Terminal.Less(o.Terminal)
	}
	return tok.NonTerminal.Less(o.NonTerminal)
}

func (tok Token) String() string {
	if tok.IsTerminal() {
		return tok.Terminal.String()
	}
	return tok.NonTerminal.String()
}

// QualifiedKey renders the stable table key for tok.
func (tok Token) QualifiedKey() string {
	if tok.IsTerminal() {
		return tok.Terminal.QualifiedKey()
	}
	return tok.NonTerminal.QualifiedKey()
}
