// Package artifact exposes stable, deterministic snapshot views of a
// compiled grammar — Grammar, ActionTable, GotoTable, and FollowSets — for
// an external code-emitter collaborator to consume. Snapshots are plain
// data: sorted slices rather than maps, so that two runs over the same
// grammar source produce byte-identical JSON.
package artifact

import (
	"sort"

	"github.com/dekarrin/grouper/analysis"
	"github.com/dekarrin/grouper/grammar"
	"github.com/dekarrin/grouper/lrtable"
)

// Rule is the snapshot form of a grammar.Rule: qualified-key strings
// instead of Token values, so the view round-trips through JSON without
// depending on the grammar package's internal types.
type Rule struct {
	NonTerminal string   `json:"nonTerminal"`
	Production  []string `json:"production"`
}

// Grammar is the post-augmentation snapshot of a grammar.Grammar.
type Grammar struct {
	Rules   []Rule   `json:"rules"`
	Tokens  []string `json:"tokens"`
	Ignored []string `json:"ignored"`
}

// SnapshotGrammar renders g's rules (in rule-index order, rule 0 is the
// augmentation), the full canonical-order token set, and the ignore
// pattern list.
func SnapshotGrammar(g *grammar.Grammar) Grammar {
	rules := make([]Rule, 0, g.RuleCount())
	for _, r := range g.Rules() {
		prod := make([]string, len(r.Production))
		for i, tok := range r.Production {
			prod[i] = tok.QualifiedKey()
		}
		rules = append(rules, Rule{NonTerminal: r.NonTerminal.Name, Production: prod})
	}

	tokens := make([]string, 0, len(g.Tokens()))
	for _, tok := range g.Tokens() {
		tokens = append(tokens, tok.QualifiedKey())
	}

	return Grammar{
		Rules:   rules,
		Tokens:  tokens,
		Ignored: append([]string(nil), g.IgnorePatterns()...),
	}
}

// ActionEntry is one non-error ACTION cell.
type ActionEntry struct {
	Key   string `json:"key"`
	Kind  string `json:"kind"`
	Value int    `json:"value,omitempty"`
}

// ActionRow is every defined ACTION cell for one state, keys sorted
// lexicographically.
type ActionRow struct {
	State   int           `json:"state"`
	Entries []ActionEntry `json:"entries"`
}

// SnapshotActionTable renders t's ACTION table, indexed by state in
// increasing order.
func SnapshotActionTable(t *lrtable.Table) []ActionRow {
	rows := make([]ActionRow, 0, t.Action.StateCount())
	for s := 0; s < t.Action.StateCount(); s++ {
		keys := t.Action.Keys(s)
		entries := make([]ActionEntry, 0, len(keys))
		for _, k := range keys {
			act := t.Action.At(s, k)
			entries = append(entries, ActionEntry{Key: k, Kind: act.Kind.String(), Value: act.Value})
		}
		rows = append(rows, ActionRow{State: s, Entries: entries})
	}
	return rows
}

// GotoEntry is one defined GOTO cell.
type GotoEntry struct {
	NonTerminal string `json:"nonTerminal"`
	State       int    `json:"state"`
}

// GotoRow is every defined GOTO cell for one state, keys sorted
// lexicographically.
type GotoRow struct {
	State   int         `json:"state"`
	Entries []GotoEntry `json:"entries"`
}

// SnapshotGotoTable renders t's GOTO table, indexed by state in
// increasing order.
func SnapshotGotoTable(t *lrtable.Table) []GotoRow {
	rows := make([]GotoRow, 0, t.Goto.StateCount())
	count := t.Action.StateCount()
	for s := 0; s < count; s++ {
		keys := t.Goto.Keys(s)
		entries := make([]GotoEntry, 0, len(keys))
		for _, k := range keys {
			j, _ := t.Goto.At(s, k)
			entries = append(entries, GotoEntry{NonTerminal: k, State: j})
		}
		rows = append(rows, GotoRow{State: s, Entries: entries})
	}
	return rows
}

// FollowEntry is one non-terminal's FOLLOW set, as terminal qualified keys
// sorted lexicographically.
type FollowEntry struct {
	NonTerminal string   `json:"nonTerminal"`
	Terminals   []string `json:"terminals"`
}

// SnapshotFollow renders follow over every non-terminal of g, sorted by
// non-terminal name.
func SnapshotFollow(g *grammar.Grammar, follow analysis.FollowSets) []FollowEntry {
	nts := g.NonTerminals()
	out := make([]FollowEntry, 0, len(nts))
	for _, nt := range nts {
		terms := follow.Of(nt).Elements()
		keys := make([]string, 0, len(terms))
		for _, t := range terms {
			keys = append(keys, t.QualifiedKey())
		}
		sort.Strings(keys)
		out = append(out, FollowEntry{NonTerminal: nt.Name, Terminals: keys})
	}
	return out
}

// Bundle is the complete artifact surface handed to a downstream
// code-emitter: the augmented grammar, the compiled tables, and the
// FOLLOW sets a runtime needs for panic-mode recovery.
type Bundle struct {
	Grammar Grammar      `json:"grammar"`
	Action  []ActionRow  `json:"action"`
	Goto    []GotoRow    `json:"goto"`
	Follow  []FollowEntry `json:"follow"`
}

// Build assembles the full Bundle for a compiled grammar.
func Build(g *grammar.Grammar, t *lrtable.Table, follow analysis.FollowSets) Bundle {
	return Bundle{
		Grammar: SnapshotGrammar(g),
		Action:  SnapshotActionTable(t),
		Goto:    SnapshotGotoTable(t),
		Follow:  SnapshotFollow(g, follow),
	}
}
