package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Terminal_Equal(t *testing.T) {
	quoteA := NewQuoteTerminal("a")
	regexA := NewRegexTerminal("a", "[a]")

	assert.True(t, quoteA.Equal(NewQuoteTerminal("a")))
	assert.False(t, quoteA.Equal(regexA), "a quote and a regex terminal sharing a name must be distinct")
	assert.False(t, quoteA.Equal(NewQuoteTerminal("b")))
}

func Test_Terminal_Less_quotesBeforeRegex(t *testing.T) {
	quoteZ := NewQuoteTerminal("z")
	regexA := NewRegexTerminal("a", "[a]")

	assert.True(t, quoteZ.Less(regexA), "quote terminals must sort before regex terminals regardless of name")
	assert.False(t, regexA.Less(quoteZ))
}

func Test_Token_Less_terminalsBeforeNonTerminals(t *testing.T) {
	term := Term(NewQuoteTerminal("z"))
	nonTerm := NonTerm(NewNonTerminal("A"))

	assert.True(t, term.Less(nonTerm))
	assert.False(t, nonTerm.Less(term))
}

func Test_Grammar_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		build     func(g *Grammar)
		expectErr bool
	}{
		{
			name:      "empty grammar",
			build:     func(g *Grammar) {},
			expectErr: true,
		},
		{
			name: "no terminals",
			build: func(g *Grammar) {
				g.AddRule(NewNonTerminal("S"), Production{NonTerm(NewNonTerminal("S"))})
			},
			expectErr: true,
		},
		{
			name: "undefined non-terminal reference",
			build: func(g *Grammar) {
				t := NewRegexTerminal("int", "[0-9]+")
				g.AddTerminal(t)
				g.AddRule(NewNonTerminal("S"), Production{NonTerm(NewNonTerminal("E")), Term(t)})
			},
			expectErr: true,
		},
		{
			name: "valid single rule grammar",
			build: func(g *Grammar) {
				t := NewRegexTerminal("int", "[0-9]+")
				g.AddTerminal(t)
				g.AddRule(NewNonTerminal("S"), Production{Term(t)})
			},
			expectErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			tc.build(g)

			err := g.Validate()
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_Grammar_Augmented(t *testing.T) {
	g := New()
	term := NewRegexTerminal("int", "[0-9]+")
	g.AddTerminal(term)
	g.AddRule(NewNonTerminal("S"), Production{Term(term)})

	aug := g.Augmented()

	assert.Equal(t, 2, aug.RuleCount())
	assert.Equal(t, "S'", aug.Rule(0).NonTerminal.Name)
	assert.Equal(t, Production{NonTerm(NewNonTerminal("S"))}, aug.Rule(0).Production)
	assert.True(t, aug.HasNonTerminal(NewNonTerminal("S'")))

	_, hasEnd := aug.Terminal(EndOfInput.QualifiedKey())
	assert.True(t, hasEnd, "augmentation must add the end-of-input terminal")

	assert.Same(t, aug, aug.Augmented(), "augmenting twice must be a no-op")
}

func Test_Grammar_Terminals_sortedQuotesFirst(t *testing.T) {
	g := New()
	g.AddTerminal(NewRegexTerminal("id", "[a-z]+"))
	g.AddTerminal(NewQuoteTerminal("+"))
	g.AddRule(NewNonTerminal("S"), Production{Term(NewQuoteTerminal("+"))})

	terms := g.Terminals()
	assert.Len(t, terms, 2)
	assert.True(t, terms[0].IsQuote(), "quote terminals must sort before regex terminals")
}
