package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/grouper/analysis"
	"github.com/dekarrin/grouper/automaton"
	"github.com/dekarrin/grouper/bnfread"
	"github.com/dekarrin/grouper/lrtable"
)

func buildBundle(t *testing.T, src string) Bundle {
	t.Helper()
	result, err := bnfread.Read([]byte(src))
	assert.NoError(t, err)

	first := analysis.ComputeFirst(result.Grammar)
	follow := analysis.ComputeFollow(result.Grammar, first)

	coll, err := automaton.Build(result.Grammar, first)
	assert.NoError(t, err)

	table, err := lrtable.Build(result.Grammar, coll, follow)
	assert.NoError(t, err)

	return Build(result.Grammar, table, follow)
}

const listGrammarSrc = `
int = [0-9]+
<S> = <T> <E>
<E> = '+' <T> <E> | EPSILON
<T> = int
`

func Test_Build_isDeterministic(t *testing.T) {
	a := buildBundle(t, listGrammarSrc)
	b := buildBundle(t, listGrammarSrc)

	assert.Equal(t, a, b, "building the bundle twice over the same source must be byte-for-byte equal")
}

func Test_SnapshotGrammar_includesAugmentationRule(t *testing.T) {
	bundle := buildBundle(t, listGrammarSrc)

	assert.Equal(t, "S'", bundle.Grammar.Rules[0].NonTerminal)
	assert.NotEmpty(t, bundle.Grammar.Tokens)
}

func Test_SnapshotActionTable_rowsCoverEveryState(t *testing.T) {
	bundle := buildBundle(t, listGrammarSrc)

	assert.NotEmpty(t, bundle.Action)
	for i, row := range bundle.Action {
		assert.Equal(t, i, row.State)
	}
}

func Test_SnapshotFollow_sortedByNonTerminalName(t *testing.T) {
	bundle := buildBundle(t, listGrammarSrc)

	for i := 1; i < len(bundle.Follow); i++ {
		assert.LessOrEqual(t, bundle.Follow[i-1].NonTerminal, bundle.Follow[i].NonTerminal)
	}

	for _, entry := range bundle.Follow {
		for i := 1; i < len(entry.Terminals); i++ {
			assert.Less(t, entry.Terminals[i-1], entry.Terminals[i], "terminals within a FOLLOW entry must be sorted with no duplicates")
		}
	}
}
