// Package analysis computes FIRST and FOLLOW sets over a validated,
// augmented grammar.Grammar by fixed-point iteration.
package analysis

import (
	"github.com/dekarrin/grouper/grammar"
	"github.com/dekarrin/grouper/internal/collect"
)

// TerminalSet is an unordered collection of terminals, used as the value
// type of both FIRST and FOLLOW.
type TerminalSet = collect.Set[grammar.Terminal]

// FirstSets maps every token's qualified key to its FIRST set.
type FirstSets struct {
	byKey map[string]TerminalSet
}

// Of returns the FIRST set of tok. An unknown token has an empty FIRST
// set.
func (f FirstSets) Of(tok grammar.Token) TerminalSet {
	return f.byKey[tok.QualifiedKey()]
}

// OfSequence computes FIRST(X1...Xm) for an arbitrary token sequence by
// the same rule used to build the fixed point: walk the sequence adding
// each symbol's non-ε members until one without ε is hit, adding ε only if
// every symbol in the sequence can derive it. The empty sequence yields
// {ε}.
func (f FirstSets) OfSequence(seq []grammar.Token) TerminalSet {
	result := collect.NewSet[grammar.Terminal]()
	if len(seq) == 0 {
		result.Add(grammar.Epsilon)
		return result
	}

	for i, tok := range seq {
		firstOfTok := f.Of(tok)
		allHadEpsilon := true
		for _, t := range firstOfTok.Elements() {
			if t.IsEpsilon() {
				continue
			}
			result.Add(t)
		}
		if !firstOfTok.Has(grammar.Epsilon) {
			allHadEpsilon = false
		}
		if !allHadEpsilon {
			break
		}
		if i == len(seq)-1 {
			result.Add(grammar.Epsilon)
		}
	}

	return result
}

// FollowSets maps every non-terminal's name to its FOLLOW set.
type FollowSets struct {
	byName map[string]TerminalSet
}

// Of returns the FOLLOW set of nt. An unknown non-terminal has an empty
// FOLLOW set.
func (f FollowSets) Of(nt grammar.NonTerminal) TerminalSet {
	return f.byName[nt.Name]
}

// ComputeFirst computes the FIRST fixed point for every terminal and
// non-terminal appearing in g, per the rule: FIRST(t) = {t} for terminals,
// FIRST(ε) = {ε}, and for every rule A -> X1...Xk, FIRST(A) accumulates
// FIRST(Xi)\{ε} walking left to right until some Xi cannot derive ε; if the
// whole production can derive ε, ε is added to FIRST(A) too.
func ComputeFirst(g *grammar.Grammar) FirstSets {
	sets := map[string]TerminalSet{}

	for _, t := range g.Terminals() {
		s := collect.NewSet[grammar.Terminal]()
		s.Add(t)
		sets[grammar.Term(t).QualifiedKey()] = s
	}
	for _, nt := range g.NonTerminals() {
		sets[grammar.NonTerm(nt).QualifiedKey()] = collect.NewSet[grammar.Terminal]()
	}

	lookup := func(tok grammar.Token) TerminalSet {
		if tok.IsEpsilon() {
			s := collect.NewSet[grammar.Terminal]()
			s.Add(grammar.Epsilon)
			return s
		}
		return sets[tok.QualifiedKey()]
	}

	changed := true
	for changed {
		changed = false
		for _, r := range g.Rules() {
			lhsKey := grammar.NonTerm(r.NonTerminal).QualifiedKey()
			lhsSet := sets[lhsKey]

			reachedEnd := true
			for _, tok := range r.Production {
				if tok.IsEpsilon() {
					// an explicit ε production derives ε directly
					if !lhsSet.Has(grammar.Epsilon) {
						lhsSet.Add(grammar.Epsilon)
						changed = true
					}
					reachedEnd = false
					break
				}

				firstOfTok := lookup(tok)
				for _, t := range firstOfTok.Elements() {
					if t.IsEpsilon() {
						continue
					}
					if !lhsSet.Has(t) {
						lhsSet.Add(t)
						changed = true
					}
				}
				if !firstOfTok.Has(grammar.Epsilon) {
					reachedEnd = false
					break
				}
			}
			if reachedEnd {
				if !lhsSet.Has(grammar.Epsilon) {
					lhsSet.Add(grammar.Epsilon)
					changed = true
				}
			}

			sets[lhsKey] = lhsSet
		}
	}

	return FirstSets{byKey: sets}
}

// ComputeFollow computes the FOLLOW fixed point given g and its FIRST
// sets: FOLLOW(S') = {$}; for every rule A -> α B β, FIRST(β)\{ε} is added
// to FOLLOW(B), and FOLLOW(A) is added to FOLLOW(B) whenever β is empty or
// nullable. ε is never added to a FOLLOW set.
func ComputeFollow(g *grammar.Grammar, first FirstSets) FollowSets {
	sets := map[string]TerminalSet{}
	for _, nt := range g.NonTerminals() {
		sets[nt.Name] = collect.NewSet[grammar.Terminal]()
	}

	start := g.StartSymbol()
	startSet := sets[start.Name]
	startSet.Add(grammar.EndOfInput)
	sets[start.Name] = startSet

	changed := true
	for changed {
		changed = false
		for _, r := range g.Rules() {
			prod := r.Production
			for i, tok := range prod {
				if !tok.IsNonTerminal() {
					continue
				}
				beta := prod[i+1:]
				betaFirst := first.OfSequence(beta)

				bSet := sets[tok.NonTerminal.Name]
				for _, t := range betaFirst.Elements() {
					if t.IsEpsilon() {
						continue
					}
					if !bSet.Has(t) {
						bSet.Add(t)
						changed = true
					}
				}
				if betaFirst.Has(grammar.Epsilon) {
					aSet := sets[r.NonTerminal.Name]
					for _, t := range aSet.Elements() {
						if !bSet.Has(t) {
							bSet.Add(t)
							changed = true
						}
					}
				}
				sets[tok.NonTerminal.Name] = bSet
			}
		}
	}

	return FollowSets{byName: sets}
}
