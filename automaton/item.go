// Package automaton builds the canonical collection of LR(1) item sets
// for a validated, augmented grammar.Grammar: Item, State, Closure, Goto,
// and the BFS that numbers the reachable states.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/grouper/grammar"
)

// Item is an LR(1) item: a rule index, a dot position within that rule's
// production, and a one-symbol lookahead. Items are plain value triples —
// they never embed a reference to the grammar or state that produced
// them; callers that need to interpret an Item's rule pass the grammar in
// as a side channel.
type Item struct {
	RuleIndex int
	Dot       int
	Lookahead grammar.Terminal
}

// Key returns a string uniquely identifying the item's (rule, dot,
// lookahead) triple, suitable for use as a map key.
func (it Item) Key() string {
	return fmt.Sprintf("%d.%d.%s", it.RuleIndex, it.Dot, it.Lookahead.QualifiedKey())
}

// Less orders items lexicographically on (RuleIndex, Dot, Lookahead), as
// required of the LR(1) item order.
func (it Item) Less(o Item) bool {
	if it.RuleIndex != o.RuleIndex {
		return it.RuleIndex < o.RuleIndex
	}
	if it.Dot != o.Dot {
		return it.Dot < o.Dot
	}
	return it.Lookahead.Less(o.Lookahead)
}

// NextSymbol returns the token immediately after the dot in g's rule for
// it, and whether one exists (false if the dot is at the end of the
// production).
func (it Item) NextSymbol(g *grammar.Grammar) (grammar.Token, bool) {
	prod := g.Rule(it.RuleIndex).Production
	if it.Dot >= len(prod) {
		return grammar.Token{}, false
	}
	return prod[it.Dot], true
}

// AtEnd reports whether the dot has reached the end of the production, or
// sits just before an explicit ε (which is semantically the same thing: a
// reduction, never a shift).
func (it Item) AtEnd(g *grammar.Grammar) bool {
	sym, ok := it.NextSymbol(g)
	return !ok || sym.IsEpsilon()
}

func (it Item) String(g *grammar.Grammar) string {
	r := g.Rule(it.RuleIndex)
	var parts []string
	for i, tok := range r.Production {
		if tok.IsEpsilon() {
			continue
		}
		if i == it.Dot {
			parts = append(parts, "·")
		}
		parts = append(parts, tok.String())
	}
	if it.Dot >= len(r.Production) {
		parts = append(parts, "·")
	}
	return fmt.Sprintf("[%s -> %s, %s]", r.NonTerminal, strings.Join(parts, " "), it.Lookahead)
}

// State is a canonical set of Items: the closure of some kernel. Two
// States with the same items (regardless of insertion order) compare
// equal via Key.
type State struct {
	items map[string]Item
}

// NewState returns an empty State.
func NewState() State {
	return State{items: map[string]Item{}}
}

// Add inserts it into the state. Adding an item already present has no
// effect.
func (s State) Add(it Item) {
	s.items[it.Key()] = it
}

// Has reports whether it is present in the state.
func (s State) Has(it Item) bool {
	_, ok := s.items[it.Key()]
	return ok
}

// Len returns the number of items in the state.
func (s State) Len() int {
	return len(s.items)
}

// Items returns the state's items sorted by the Item order, so that
// iteration and rendering are deterministic.
func (s State) Items() []Item {
	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Key returns a content digest of the state's items, stable regardless of
// insertion order. Two States with the same items produce the same Key.
func (s State) Key() string {
	items := s.Items()
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key()
	}
	return strings.Join(keys, ";")
}

func (s State) String(g *grammar.Grammar) string {
	items := s.Items()
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String(g)
	}
	return strings.Join(parts, "\n")
}
