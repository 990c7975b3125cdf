package automaton

import (
	"github.com/dekarrin/grouper/analysis"
	"github.com/dekarrin/grouper/grammar"
	"github.com/dekarrin/grouper/internal/collect"
)

// Closure computes the smallest superset of kernel such that, for every
// item [A -> α·Bβ, a] in it and every rule B -> γ, and every terminal
// b ∈ FIRST(βa), the item [B -> ·γ, b] is also present. Computed by
// fixed-point iteration over a worklist of items still needing expansion.
func Closure(kernel State, g *grammar.Grammar, first analysis.FirstSets) State {
	result := NewState()
	work := collect.NewStack[Item]()

	for _, it := range kernel.Items() {
		result.Add(it)
		work.Push(it)
	}

	for {
		it, ok := work.Pop()
		if !ok {
			break
		}

		next, hasNext := it.NextSymbol(g)
		if !hasNext || !next.IsNonTerminal() {
			continue
		}

		prod := g.Rule(it.RuleIndex).Production
		beta := prod[it.Dot+1:]
		seq := make([]grammar.Token, 0, len(beta)+1)
		seq = append(seq, beta...)
		seq = append(seq, grammar.Term(it.Lookahead))
		lookaheads := first.OfSequence(seq)

		for idx, r := range g.Rules() {
			if !r.NonTerminal.Equal(next.NonTerminal) {
				continue
			}
			for _, b := range lookaheads.Elements() {
				if b.IsEpsilon() {
					continue
				}
				newItem := Item{RuleIndex: idx, Dot: 0, Lookahead: b}
				if !result.Has(newItem) {
					result.Add(newItem)
					work.Push(newItem)
				}
			}
		}
	}

	return result
}

// Goto computes Closure({[A -> αX·β, a] : [A -> α·Xβ, a] ∈ I}). X must
// not be the ε terminal; ε never participates in GOTO even though it can
// appear in FIRST sets. An X that no item in I is waiting on yields an
// empty State (no transition).
func Goto(I State, X grammar.Token, g *grammar.Grammar, first analysis.FirstSets) State {
	if X.IsEpsilon() {
		return NewState()
	}

	kernel := NewState()
	for _, it := range I.Items() {
		sym, ok := it.NextSymbol(g)
		if !ok || sym.IsEpsilon() || !sym.Equal(X) {
			continue
		}
		kernel.Add(Item{RuleIndex: it.RuleIndex, Dot: it.Dot + 1, Lookahead: it.Lookahead})
	}

	if kernel.Len() == 0 {
		return kernel
	}
	return Closure(kernel, g, first)
}
