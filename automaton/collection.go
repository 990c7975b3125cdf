package automaton

import (
	"github.com/dekarrin/grouper/analysis"
	"github.com/dekarrin/grouper/grammar"
	"github.com/dekarrin/grouper/groupererr"
)

// Collection is the canonical collection of LR(1) item sets reachable
// from the augmented grammar's start state: a bijection between
// contiguous state numbers [0, N) and States, plus the transition table
// between them. It is the DPDA state graph the Table Builder consumes.
type Collection struct {
	states      []State
	index       map[string]int
	transitions []map[string]int // transitions[state][token qualified key] = target state
}

// Build runs the BFS described in spec: starting from the closure of
// {[S' -> ·S, $]}, for every popped state and every token in the
// grammar's canonical order, compute Goto and assign a new state number
// the first time a distinct item set is reached. g must already be
// augmented (rule 0 is S' -> S).
func Build(g *grammar.Grammar, first analysis.FirstSets) (*Collection, error) {
	if g.RuleCount() == 0 {
		return nil, groupererr.NewInternalInvariantError("cannot build automaton over an empty grammar")
	}

	initial := Item{RuleIndex: 0, Dot: 0, Lookahead: grammar.EndOfInput}
	kernel := NewState()
	kernel.Add(initial)
	start := Closure(kernel, g, first)

	c := &Collection{
		index: map[string]int{},
	}
	c.states = append(c.states, start)
	c.transitions = append(c.transitions, map[string]int{})
	c.index[start.Key()] = 0

	queue := []int{0}
	tokens := g.Tokens()

	for len(queue) > 0 {
		sIdx := queue[0]
		queue = queue[1:]
		s := c.states[sIdx]

		for _, tok := range tokens {
			next := Goto(s, tok, g, first)
			if next.Len() == 0 {
				continue
			}

			key := next.Key()
			toIdx, seen := c.index[key]
			if !seen {
				toIdx = len(c.states)
				c.states = append(c.states, next)
				c.transitions = append(c.transitions, map[string]int{})
				c.index[key] = toIdx
				queue = append(queue, toIdx)
			}

			c.transitions[sIdx][tok.QualifiedKey()] = toIdx
		}
	}

	return c, nil
}

// Count returns the number of states in the collection.
func (c *Collection) Count() int {
	return len(c.states)
}

// State returns the state numbered i.
func (c *Collection) State(i int) State {
	return c.states[i]
}

// States returns every state, indexed by state number.
func (c *Collection) States() []State {
	return c.states
}

// Goto returns the state index reached from state i on tok, and whether
// that transition is defined.
func (c *Collection) Goto(i int, tok grammar.Token) (int, bool) {
	j, ok := c.transitions[i][tok.QualifiedKey()]
	return j, ok
}
