package bnfread

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/grouper/groupererr"
)

func Test_Read_listGrammar(t *testing.T) {
	src := []byte(`
int = [0-9]+
<S> = <T> <E>
<E> = '+' <T> <E> | EPSILON
<T> = int
`)

	result, err := Read(src)
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 5, result.Grammar.RuleCount(), "4 user rules plus the augmentation rule")
	assert.Equal(t, "S'", result.Grammar.Rule(0).NonTerminal.Name)
}

func Test_Read_classicalArithmetic(t *testing.T) {
	src := []byte(`
id = [0-9]+
<S> = <E>
<E> = <E> '+' <T> | <T>
<T> = <T> '*' <F> | <F>
<F> = '(' <E> ')' | id
`)

	result, err := Read(src)
	assert.NoError(t, err)
	assert.Equal(t, 8, result.Grammar.RuleCount())
}

func Test_Read_emptyGrammar(t *testing.T) {
	_, err := Read([]byte(""))
	assert.Error(t, err)
	assert.IsType(t, &groupererr.BnfSyntaxError{}, err)
}

func Test_Read_forwardRegexTerminal(t *testing.T) {
	src := []byte(`
<S> = '(' <E> ')'
<E> = id
id = [0-9]+
`)

	_, err := Read(src)
	assert.Error(t, err)

	syntaxErr, ok := err.(*groupererr.BnfSyntaxError)
	assert.True(t, ok)
	assert.Equal(t, 3, syntaxErr.Line, "id is used on the line before it's defined")
}

func Test_Read_epsilonWithSiblings(t *testing.T) {
	src := []byte(`
<S> = <A> | EPSILON EPSILON | <B>
<A> = 'a'
<B> = 'b'
`)

	_, err := Read(src)
	assert.Error(t, err)
}

func Test_Read_undefinedNonTerminal(t *testing.T) {
	src := []byte(`
<S> = <A>
`)
	_, err := Read(src)
	assert.Error(t, err)
}

func Test_Read_ignoreDirective(t *testing.T) {
	src := []byte(`
IGNORE = [ \t]+
IGNORE = //[^\n]*
<S> = 'x'
`)

	result, err := Read(src)
	assert.NoError(t, err)
	assert.Equal(t, []string{`[ \t]+`, `//[^\n]*`}, result.Grammar.IgnorePatterns())
}

func Test_Read_quoteAndRegexRemainDistinct(t *testing.T) {
	src := []byte(`
a = [a]
<S> = a 'a'
`)

	result, err := Read(src)
	assert.NoError(t, err)

	// R_a, T_a, plus the end marker added by augmentation
	terms := result.Grammar.Terminals()
	assert.Len(t, terms, 3)
}
