// Package groupererr defines the error kinds produced by grouper's grammar
// analysis and LR(1) table construction pipeline. Every stage of the
// pipeline aborts at its originating error rather than returning a partial
// result; callers distinguish the four kinds with a type switch or errors.As.
package groupererr

import "fmt"

// BnfSyntaxError is returned by the BNF reader when the input byte stream
// does not conform to the meta-language grammar, references an undefined
// terminal, or otherwise fails validation.
type BnfSyntaxError struct {
	// Line is the 1-indexed line number the problem was detected on, or 0
	// for a problem found while validating the grammar as a whole.
	Line int

	// Msg describes the problem.
	Msg string

	wrapped error
}

// NewBnfSyntaxError creates a BnfSyntaxError at the given line.
func NewBnfSyntaxError(line int, msg string) *BnfSyntaxError {
	return &BnfSyntaxError{Line: line, Msg: msg}
}

// WrapBnfSyntaxError is like NewBnfSyntaxError but also wraps a prior error.
func WrapBnfSyntaxError(err error, line int, msg string) *BnfSyntaxError {
	return &BnfSyntaxError{Line: line, Msg: msg, wrapped: err}
}

func (e *BnfSyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *BnfSyntaxError) Unwrap() error {
	return e.wrapped
}

// AnalyzerError is reserved for invariant violations in FIRST/FOLLOW
// fixed-point computation. Per spec, FIRST/FOLLOW always converge over a
// validated Grammar, so a correct implementation never produces one; it
// exists as a hook for future invariant checks.
type AnalyzerError struct {
	Msg string
}

func NewAnalyzerError(msg string) *AnalyzerError {
	return &AnalyzerError{Msg: msg}
}

func (e *AnalyzerError) Error() string {
	return fmt.Sprintf("grammar analysis: %s", e.Msg)
}

// ConflictKind classifies a TableConflict by the pair of action kinds that
// collided while writing an ACTION table cell.
type ConflictKind int

const (
	ShiftShift ConflictKind = iota
	ShiftReduce
	ReduceReduce
)

func (k ConflictKind) String() string {
	switch k {
	case ShiftShift:
		return "shift/shift"
	case ShiftReduce:
		return "shift/reduce"
	case ReduceReduce:
		return "reduce/reduce"
	default:
		return "unknown"
	}
}

// TableConflict is returned by the table builder the moment an ACTION cell
// would be overwritten by a differing action, identifying the offending
// state and qualified terminal key so the grammar author can find it.
type TableConflict struct {
	Kind  ConflictKind
	State int
	Key   string
}

func NewTableConflict(kind ConflictKind, state int, key string) *TableConflict {
	return &TableConflict{Kind: kind, State: state, Key: key}
}

func (e *TableConflict) Error() string {
	return fmt.Sprintf("%s conflict in state %d on %q: grammar is not LR(1)", e.Kind, e.State, e.Key)
}

// InternalInvariantError is a defensive catch-all for a violated internal
// pre/post-condition. Surfacing one always indicates a bug in grouper
// itself, never a problem with the input grammar.
type InternalInvariantError struct {
	Msg string
}

func NewInternalInvariantError(format string, args ...interface{}) *InternalInvariantError {
	return &InternalInvariantError{Msg: fmt.Sprintf(format, args...)}
}

func (e *InternalInvariantError) Error() string {
	return fmt.Sprintf("internal invariant violated: %s", e.Msg)
}
