package lrtable

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/grouper/analysis"
	"github.com/dekarrin/grouper/automaton"
	"github.com/dekarrin/grouper/grammar"
	"github.com/dekarrin/grouper/groupererr"
)

// ActionTable is dense by state, sparse by qualified terminal key. A
// missing key in row s means ACTION[s, key] is ERROR.
type ActionTable struct {
	rows []map[string]Action
}

// At returns the action in state s keyed by the qualified terminal key
// key. A missing cell reports the zero Action (Kind ActionError).
func (t ActionTable) At(s int, key string) Action {
	if s < 0 || s >= len(t.rows) {
		return Action{}
	}
	return t.rows[s][key]
}

// Keys returns the sorted set of qualified terminal keys that appear
// anywhere in row s.
func (t ActionTable) Keys(s int) []string {
	if s < 0 || s >= len(t.rows) {
		return nil
	}
	keys := make([]string, 0, len(t.rows[s]))
	for k := range t.rows[s] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StateCount returns the number of rows (equivalently, the number of
// automaton states the table was built over).
func (t ActionTable) StateCount() int {
	return len(t.rows)
}

// GotoTable is sparse in both dimensions: state number -> non-terminal
// qualified key -> state number.
type GotoTable struct {
	rows []map[string]int
}

// StateCount returns the number of rows (equivalently, the number of
// automaton states the table was built over).
func (t GotoTable) StateCount() int {
	return len(t.rows)
}

// At returns the target state for state s on non-terminal key ntKey, and
// whether that transition is defined.
func (t GotoTable) At(s int, ntKey string) (int, bool) {
	if s < 0 || s >= len(t.rows) {
		return 0, false
	}
	j, ok := t.rows[s][ntKey]
	return j, ok
}

// Keys returns the sorted set of non-terminal qualified keys with a
// defined transition out of state s.
func (t GotoTable) Keys(s int) []string {
	if s < 0 || s >= len(t.rows) {
		return nil
	}
	keys := make([]string, 0, len(t.rows[s]))
	for k := range t.rows[s] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Table is the compiled ACTION/GOTO pair for a grammar, together with
// enough context (the grammar and the collection it was built over) to
// render itself.
type Table struct {
	Action ActionTable
	Goto   GotoTable

	g    *grammar.Grammar
	coll *automaton.Collection
}

// Build compiles the ACTION and GOTO tables for the augmented grammar g
// over its canonical collection coll. REDUCE cells are keyed by each item's
// own LR(1) lookahead; follow is not consulted and is not stored in the
// Table. g must be the same augmented grammar coll was built from. The first conflicting write aborts
// construction with a *groupererr.TableConflict; no partial table is
// returned.
func Build(g *grammar.Grammar, coll *automaton.Collection, follow analysis.FollowSets) (*Table, error) {
	t := &Table{
		g:    g,
		coll: coll,
		Action: ActionTable{
			rows: make([]map[string]Action, coll.Count()),
		},
		Goto: GotoTable{
			rows: make([]map[string]int, coll.Count()),
		},
	}
	for i := range t.Action.rows {
		t.Action.rows[i] = map[string]Action{}
	}
	for i := range t.Goto.rows {
		t.Goto.rows[i] = map[string]int{}
	}

	for s := 0; s < coll.Count(); s++ {
		state := coll.State(s)

		for _, it := range state.Items() {
			prod := g.Rule(it.RuleIndex).Production

			if it.Dot < len(prod) {
				sym := prod[it.Dot]
				switch {
				case sym.IsEpsilon():
					if err := t.setAction(s, it.Lookahead.QualifiedKey(), Action{Kind: ActionReduce, Value: it.RuleIndex}); err != nil {
						return nil, err
					}
				case sym.IsTerminal():
					j, ok := coll.Goto(s, sym)
					if ok {
						if err := t.setAction(s, sym.Terminal.QualifiedKey(), Action{Kind: ActionShift, Value: j}); err != nil {
							return nil, err
						}
					}
				}
				continue
			}

			if it.RuleIndex == 0 {
				if err := t.setAction(s, grammar.EndOfInput.QualifiedKey(), Action{Kind: ActionAccept}); err != nil {
					return nil, err
				}
			} else {
				if err := t.setAction(s, it.Lookahead.QualifiedKey(), Action{Kind: ActionReduce, Value: it.RuleIndex}); err != nil {
					return nil, err
				}
			}
		}

		for _, nt := range g.NonTerminals() {
			j, ok := coll.Goto(s, grammar.NonTerm(nt))
			if ok {
				t.Goto.rows[s][nt.QualifiedKey()] = j
			}
		}
	}

	return t, nil
}

func (t *Table) setAction(s int, key string, act Action) error {
	existing, ok := t.Action.rows[s][key]
	if ok && !existing.Equal(act) {
		return groupererr.NewTableConflict(classifyConflict(existing.Kind, act.Kind), s, key)
	}
	t.Action.rows[s][key] = act
	return nil
}

func classifyConflict(a, b ActionKind) groupererr.ConflictKind {
	if a == ActionShift && b == ActionShift {
		return groupererr.ShiftShift
	}
	if (a == ActionShift && b == ActionReduce) || (a == ActionReduce && b == ActionShift) {
		return groupererr.ShiftReduce
	}
	return groupererr.ReduceReduce
}

// String renders the ACTION/GOTO tables as an ASCII grid, state 0 first,
// one column per terminal/non-terminal.
func (t *Table) String() string {
	terms := t.g.Terminals()
	allKeys := make([]string, 0, len(terms)+1)
	for _, term := range terms {
		allKeys = append(allKeys, term.QualifiedKey())
	}
	if _, ok := t.g.Terminal(grammar.EndOfInput.QualifiedKey()); !ok {
		allKeys = append(allKeys, grammar.EndOfInput.QualifiedKey())
	}

	nts := t.g.NonTerminals()

	headers := []string{"S", "|"}
	for _, k := range allKeys {
		headers = append(headers, "A:"+k)
	}
	headers = append(headers, "|")
	for _, nt := range nts {
		headers = append(headers, "G:"+nt.Name)
	}

	data := [][]string{headers}

	for s := 0; s < t.coll.Count(); s++ {
		row := []string{strconv.Itoa(s), "|"}

		for _, k := range allKeys {
			act := t.Action.At(s, k)
			cell := ""
			switch act.Kind {
			case ActionAccept:
				cell = "acc"
			case ActionReduce:
				r := t.g.Rule(act.Value)
				cell = fmt.Sprintf("r%d:%s", act.Value, r.NonTerminal.Name)
			case ActionShift:
				cell = fmt.Sprintf("s%d", act.Value)
			}
			row = append(row, cell)
		}

		row = append(row, "|")

		for _, nt := range nts {
			cell := ""
			if j, ok := t.Goto.At(s, nt.QualifiedKey()); ok {
				cell = strconv.Itoa(j)
			}
			row = append(row, cell)
		}

		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
