package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/grouper/bnfread"
	"github.com/dekarrin/grouper/grammar"
)

func mustRead(t *testing.T, src string) *grammar.Grammar {
	t.Helper()
	result, err := bnfread.Read([]byte(src))
	assert.NoError(t, err)
	return result.Grammar
}

func Test_ComputeFirst_listGrammar(t *testing.T) {
	g := mustRead(t, `
int = [0-9]+
<S> = <T> <E>
<E> = '+' <T> <E> | EPSILON
<T> = int
`)

	first := ComputeFirst(g)

	intTerm := grammar.NewRegexTerminal("int", "[0-9]+")
	plusTerm := grammar.NewQuoteTerminal("+")

	firstS := first.Of(grammar.NonTerm(grammar.NewNonTerminal("S")))
	assert.True(t, firstS.Has(intTerm))
	assert.False(t, firstS.Has(grammar.Epsilon))

	firstT := first.Of(grammar.NonTerm(grammar.NewNonTerminal("T")))
	assert.True(t, firstT.Has(intTerm))
	assert.Equal(t, 1, firstT.Len())

	firstE := first.Of(grammar.NonTerm(grammar.NewNonTerminal("E")))
	assert.True(t, firstE.Has(plusTerm))
	assert.True(t, firstE.Has(grammar.Epsilon))
	assert.Equal(t, 2, firstE.Len())
}

func Test_ComputeFollow_listGrammar(t *testing.T) {
	g := mustRead(t, `
int = [0-9]+
<S> = <T> <E>
<E> = '+' <T> <E> | EPSILON
<T> = int
`)

	first := ComputeFirst(g)
	follow := ComputeFollow(g, first)

	plusTerm := grammar.NewQuoteTerminal("+")

	followS := follow.Of(g.OriginalStart())
	assert.True(t, followS.Has(grammar.EndOfInput))
	assert.Equal(t, 1, followS.Len())

	followE := follow.Of(grammar.NewNonTerminal("E"))
	assert.True(t, followE.Has(grammar.EndOfInput))
	assert.Equal(t, 1, followE.Len())

	followT := follow.Of(grammar.NewNonTerminal("T"))
	assert.True(t, followT.Has(plusTerm))
	assert.True(t, followT.Has(grammar.EndOfInput))
	assert.Equal(t, 2, followT.Len())

	for _, nt := range g.NonTerminals() {
		assert.False(t, follow.Of(nt).Has(grammar.Epsilon), "ε must never appear in a FOLLOW set")
	}
}

func Test_FirstSets_OfSequence_emptySequenceIsEpsilon(t *testing.T) {
	g := mustRead(t, `
a = [a]
<S> = a
`)
	first := ComputeFirst(g)

	seq := first.OfSequence(nil)
	assert.True(t, seq.Has(grammar.Epsilon))
	assert.Equal(t, 1, seq.Len())
}
