package lrtable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/grouper/analysis"
	"github.com/dekarrin/grouper/automaton"
	"github.com/dekarrin/grouper/bnfread"
	"github.com/dekarrin/grouper/grammar"
	"github.com/dekarrin/grouper/groupererr"
)

func buildTable(t *testing.T, src string) (*Table, error) {
	t.Helper()
	result, err := bnfread.Read([]byte(src))
	assert.NoError(t, err)

	first := analysis.ComputeFirst(result.Grammar)
	follow := analysis.ComputeFollow(result.Grammar, first)

	coll, err := automaton.Build(result.Grammar, first)
	assert.NoError(t, err)

	return Build(result.Grammar, coll, follow)
}

func Test_Build_listGrammar_noConflicts(t *testing.T) {
	table, err := buildTable(t, `
int = [0-9]+
<S> = <T> <E>
<E> = '+' <T> <E> | EPSILON
<T> = int
`)
	assert.NoError(t, err)
	assert.NotNil(t, table)

	foundAccept := false
	for s := 0; s < table.Action.StateCount(); s++ {
		if table.Action.At(s, grammar.EndOfInput.QualifiedKey()).Kind == ActionAccept {
			foundAccept = true
			break
		}
	}
	assert.True(t, foundAccept, "some state must accept on end of input")
}

func Test_Build_classicalArithmetic_noConflicts(t *testing.T) {
	_, err := buildTable(t, `
id = [0-9]+
<S> = <E>
<E> = <E> '+' <T> | <T>
<T> = <T> '*' <F> | <F>
<F> = '(' <E> ')' | id
`)
	assert.NoError(t, err)
}

func Test_Build_ambiguousGrammar_reduceReduceConflict(t *testing.T) {
	_, err := buildTable(t, `
<S> = <A> | <B>
<A> = 'x'
<B> = 'x'
`)
	assert.Error(t, err)

	conflict, ok := err.(*groupererr.TableConflict)
	assert.True(t, ok, "expected a *groupererr.TableConflict, got %T", err)
	if ok {
		assert.Equal(t, groupererr.ReduceReduce, conflict.Kind)
	}
}

func Test_ActionTable_At_missingCellIsError(t *testing.T) {
	table, err := buildTable(t, `
int = [0-9]+
<S> = int
`)
	assert.NoError(t, err)

	act := table.Action.At(0, "T_nonexistent")
	assert.Equal(t, ActionError, act.Kind)
}

func Test_Action_Equal(t *testing.T) {
	a := Action{Kind: ActionShift, Value: 3}
	b := Action{Kind: ActionShift, Value: 3}
	c := Action{Kind: ActionShift, Value: 4}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
