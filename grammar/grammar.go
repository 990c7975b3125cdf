package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/grouper/groupererr"
)

// Production is an ordered sequence of Tokens that a Rule's non-terminal can
// expand to. A production is empty only if it consists of the lone ε
// terminal.
type Production []Token

// IsEmpty reports whether p is the distinguished empty production, i.e.
// consists of exactly the ε terminal.
func (p Production) IsEmpty() bool {
	return len(p) == 1 && p[0].IsEpsilon()
}

// Equal reports whether p and o are the same sequence of tokens.
func (p Production) Equal(o Production) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if !p[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

func (p Production) String() string {
	parts := make([]string, len(p))
	for i := range p {
		parts[i] = p[i].String()
	}
	return strings.Join(parts, " ")
}

// Rule is a single production alternative: a left-hand non-terminal and one
// of its right-hand productions. A Grammar with N alternatives for a
// non-terminal holds N separate Rules sharing that NonTerminal.
type Rule struct {
	NonTerminal NonTerminal
	Production  Production
}

func (r Rule) Equal(o Rule) bool {
	return r.NonTerminal.Equal(o.NonTerminal) && r.Production.Equal(o.Production)
}

func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.NonTerminal, r.Production)
}

// Grammar is the frozen, validated representation of a context-free
// grammar: an ordered list of rules (rule 0 is the S' -> S augmentation
// once Augmented has been called), the set of tokens appearing anywhere in
// it, and the ordered list of lexer ignore patterns collected from IGNORE
// declarations.
//
// A Grammar is built up with AddRule/AddTerminal/AddIgnorePattern by the BNF reader
// and is not safe to mutate once handed to the Analyzer, Automaton, or
// Table Builder.
type Grammar struct {
	rules          []Rule
	terminals      map[string]Terminal
	nonTerminals   map[string]NonTerminal
	ignorePatterns []string
	start          NonTerminal
	augmented      bool
}

// New returns an empty Grammar ready to be populated by a reader.
func New() *Grammar {
	return &Grammar{
		terminals:    map[string]Terminal{},
		nonTerminals: map[string]NonTerminal{},
	}
}

// AddTerminal registers t as appearing in the grammar. Re-adding a terminal
// that is already present (by qualified key) has no effect.
func (g *Grammar) AddTerminal(t Terminal) {
	g.terminals[t.QualifiedKey()] = t
}

// AddRule appends a new alternative for nt. The non-terminal is implicitly
// registered as appearing in the grammar. If start has not yet been set,
// the first non-terminal ever added to the grammar becomes the start
// symbol.
func (g *Grammar) AddRule(nt NonTerminal, prod Production) {
	if _, ok := g.nonTerminals[nt.Name]; !ok {
		g.nonTerminals[nt.Name] = nt
		if g.start.Name == "" {
			g.start = nt
		}
	}
	g.rules = append(g.rules, Rule{NonTerminal: nt, Production: prod})
}

// AddIgnorePattern appends pat to the ignore-pattern list, in declaration
// order, with no deduplication.
func (g *Grammar) AddIgnorePattern(pat string) {
	g.ignorePatterns = append(g.ignorePatterns, pat)
}

// SetStart overrides the grammar's start symbol. By default it is the
// non-terminal of the first rule added via AddRule.
func (g *Grammar) SetStart(nt NonTerminal) {
	g.start = nt
}

// StartSymbol returns the grammar's start non-terminal: the user's S for an
// un-augmented grammar, and S' for one produced by Augmented (use
// OriginalStart to recover S).
func (g *Grammar) StartSymbol() NonTerminal {
	return g.start
}

// Rules returns the grammar's rules in declaration order (rule 0 is the
// augmentation once Augmented has produced this grammar).
func (g *Grammar) Rules() []Rule {
	return g.rules
}

// Rule returns the rule at index i.
func (g *Grammar) Rule(i int) Rule {
	return g.rules[i]
}

// RuleCount returns the number of rules in the grammar.
func (g *Grammar) RuleCount() int {
	return len(g.rules)
}

// RulesFor returns, in declaration order, every rule whose left-hand side
// is nt.
func (g *Grammar) RulesFor(nt NonTerminal) []Rule {
	var matches []Rule
	for _, r := range g.rules {
		if r.NonTerminal.Equal(nt) {
			matches = append(matches, r)
		}
	}
	return matches
}

// HasNonTerminal reports whether nt has at least one defining rule.
func (g *Grammar) HasNonTerminal(nt NonTerminal) bool {
	_, ok := g.nonTerminals[nt.Name]
	return ok
}

// Terminal looks up a previously-registered terminal by its qualified key.
func (g *Grammar) Terminal(key string) (Terminal, bool) {
	t, ok := g.terminals[key]
	return t, ok
}

// Terminals returns every terminal appearing in the grammar (excluding ε),
// sorted by the Terminal order (quote terminals first, then by name).
func (g *Grammar) Terminals() []Terminal {
	out := make([]Terminal, 0, len(g.terminals))
	for _, t := range g.terminals {
		if t.IsEpsilon() {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// NonTerminals returns every non-terminal appearing in the grammar, sorted
// by name.
func (g *Grammar) NonTerminals() []NonTerminal {
	out := make([]NonTerminal, 0, len(g.nonTerminals))
	for _, n := range g.nonTerminals {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Tokens returns every token (terminal or non-terminal, excluding ε) that
// appears anywhere in the grammar, in the canonical Token order: all
// terminals first, then all non-terminals, each flavour internally sorted.
// This is the iteration order the automaton's canonical-collection
// construction uses to keep state numbering deterministic.
func (g *Grammar) Tokens() []Token {
	terms := g.Terminals()
	nts := g.NonTerminals()
	out := make([]Token, 0, len(terms)+len(nts))
	for _, t := range terms {
		out = append(out, Term(t))
	}
	for _, n := range nts {
		out = append(out, NonTerm(n))
	}
	return out
}

// IgnorePatterns returns the lexer ignore patterns collected from IGNORE
// declarations, in declaration order.
func (g *Grammar) IgnorePatterns() []string {
	return g.ignorePatterns
}

// Validate checks the structural invariants a Grammar must satisfy before
// it can be analyzed: it must have at least one rule, at least one
// terminal, and every non-terminal referenced in some production must have
// at least one defining rule.
func (g *Grammar) Validate() error {
	if len(g.rules) == 0 {
		return groupererr.NewBnfSyntaxError(0, "empty grammar")
	}
	if len(g.terminals) == 0 {
		return groupererr.NewBnfSyntaxError(0, "grammar defines no terminals")
	}

	for _, r := range g.rules {
		for _, tok := range r.Production {
			if tok.IsEpsilon() {
				continue
			}
			if tok.IsNonTerminal() && !g.HasNonTerminal(tok.NonTerminal) {
				return groupererr.NewBnfSyntaxError(0, fmt.Sprintf("non-terminal %q is used but never defined", tok.NonTerminal.Name))
			}
		}
	}

	return nil
}

// Augmented returns a new Grammar identical to g but with the augmentation
// rule S' -> S inserted at index 0, where S is g's start symbol. S' is
// added to the non-terminal set and $ is added to the terminal set. g
// itself is left unmodified. Calling Augmented on an already-augmented
// grammar returns it unchanged.
func (g *Grammar) Augmented() *Grammar {
	if g.augmented {
		return g
	}

	aug := New()
	aug.augmented = true
	for k, t := range g.terminals {
		aug.terminals[k] = t
	}
	for k, n := range g.nonTerminals {
		aug.nonTerminals[k] = n
	}
	aug.ignorePatterns = append([]string(nil), g.ignorePatterns...)

	startPrime := NonTerminal{Name: g.start.Name + "'"}
	aug.nonTerminals[startPrime.Name] = startPrime
	aug.terminals[EndOfInput.QualifiedKey()] = EndOfInput

	aug.rules = make([]Rule, 0, len(g.rules)+1)
	aug.rules = append(aug.rules, Rule{
		NonTerminal: startPrime,
		Production:  Production{NonTerm(g.start)},
	})
	aug.rules = append(aug.rules, g.rules...)
	aug.start = startPrime

	return aug
}

// OriginalStart returns the non-terminal that was the grammar's start
// symbol before augmentation; for an un-augmented grammar this is the same
// as StartSymbol.
func (g *Grammar) OriginalStart() NonTerminal {
	if !g.augmented {
		return g.start
	}
	// the augmentation rule is always rule 0: S' -> S
	return g.rules[0].Production[0].NonTerminal
}

// IsAugmented reports whether g is the result of a call to Augmented.
func (g *Grammar) IsAugmented() bool {
	return g.augmented
}

func (g *Grammar) String() string {
	var sb strings.Builder
	for i, r := range g.rules {
		sb.WriteString(r.String())
		if i+1 < len(g.rules) {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
