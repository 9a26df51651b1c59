package vm

import "fmt"

// ---------------------------------------------------------------------------
// Outcome: what one evaluation step produced
// ---------------------------------------------------------------------------

// OutcomeType identifies whether an Outcome carries an ordinary value,
// an early return, or a fault.
type OutcomeType int

const (
	// OutcomeValue is an ordinary value flowing out of an expression.
	OutcomeValue OutcomeType = iota
	// OutcomeReturn is a value produced by an explicit return. It
	// unwinds through enclosing blocks and loops until the top level
	// and must never be mistaken for an ordinary value.
	OutcomeReturn
	// OutcomeFault aborts the current execution; the message surfaces
	// verbatim in the report.
	OutcomeFault
)

// Outcome is the result of evaluating one node. Outcomes are plain
// values; they copy freely and carry no references into the engine.
type Outcome struct {
	typ OutcomeType
	val Value
	msg string
}

// Ok wraps an ordinary value.
func Ok(v Value) Outcome { return Outcome{typ: OutcomeValue, val: v} }

// EarlyReturn wraps a value produced by an explicit return.
func EarlyReturn(v Value) Outcome { return Outcome{typ: OutcomeReturn, val: v} }

// Fault builds a fault outcome with a fixed message.
func Fault(msg string) Outcome { return Outcome{typ: OutcomeFault, msg: msg} }

// Faultf builds a fault outcome with a formatted message.
func Faultf(format string, args ...any) Outcome {
	return Outcome{typ: OutcomeFault, msg: fmt.Sprintf(format, args...)}
}

// Type returns the outcome variant.
func (o Outcome) Type() OutcomeType { return o.typ }

// IsValue returns true for an ordinary value.
func (o Outcome) IsValue() bool { return o.typ == OutcomeValue }

// IsReturn returns true for an early return.
func (o Outcome) IsReturn() bool { return o.typ == OutcomeReturn }

// IsFault returns true for a fault.
func (o Outcome) IsFault() bool { return o.typ == OutcomeFault }

// Value returns the carried value. Meaningless for faults.
func (o Outcome) Value() Value { return o.val }

// Message returns the fault message. Empty for non-faults.
func (o Outcome) Message() string { return o.msg }
