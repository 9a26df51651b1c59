package vm

import (
	"sort"
	"strings"

	"github.com/knotenlang/knoten/pkg/ast"
)

// ---------------------------------------------------------------------------
// Engine: recursive tree-walking evaluator
// ---------------------------------------------------------------------------

// Fault messages for language-semantic errors. These surface verbatim
// in execution reports and are load-bearing for output compatibility.
const (
	msgUndefinedIdentifier = "Undefined identifier"
	msgMathTypeMismatch    = "Mathematical type mismatch"
	msgDivisionByZero      = "Division by zero"
	msgInvalidEq           = "Invalid Eq semantics"
	msgInvalidLt           = "Invalid Lt semantics"
	msgIfCondNotBoolean    = "If condition not a boolean"
	msgWhileCondNotBoolean = "While condition not a boolean"
	msgDepthExceeded       = "Recursion depth exceeded"
)

// DefaultMaxDepth is the evaluation depth cap applied when no explicit
// limit is configured.
const DefaultMaxDepth = 10000

// Dispatcher routes native calls from evaluated programs to host
// resources. It is the only path by which a program reaches the
// registry.
type Dispatcher interface {
	Call(module, function string, args []Value) Outcome
}

// Engine evaluates program trees against a mutable variable store.
// It is strictly single-threaded: one Execute runs at a time, with no
// suspension points and no cancellation.
type Engine struct {
	vars     map[string]Value
	natives  Dispatcher
	maxDepth int
	depth    int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithDispatcher wires a native dispatch boundary into the engine.
// Without one, every native call faults as unknown.
func WithDispatcher(d Dispatcher) EngineOption {
	return func(e *Engine) { e.natives = d }
}

// WithMaxDepth overrides the evaluation depth cap. Evaluation is
// host-stack recursion; the cap converts a would-be stack overflow on
// deeply nested programs into an ordinary fault.
func WithMaxDepth(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// NewEngine creates an engine with an empty variable store.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		vars:     make(map[string]Value),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute clears the variable store, evaluates root, and renders the
// execution report.
//
// On a fault the report is exactly `Fault: <message>`. On success it
// is `Return: <value>` followed, if any bindings are live, by
// `, Memory: ` and `name = value` pairs sorted lexicographically by
// name. The report shape never depends on assignment order.
func (e *Engine) Execute(root *ast.Node) string {
	e.vars = make(map[string]Value)
	e.depth = 0

	res := e.eval(root)
	if res.IsFault() {
		return "Fault: " + res.Message()
	}

	var sb strings.Builder
	sb.WriteString("Return: ")
	sb.WriteString(res.Value().String())

	if len(e.vars) > 0 {
		names := make([]string, 0, len(e.vars))
		for name := range e.vars {
			names = append(names, name)
		}
		sort.Strings(names)

		sb.WriteString(", Memory: ")
		for i, name := range names {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(name)
			sb.WriteString(" = ")
			sb.WriteString(e.vars[name].Plain())
		}
	}
	return sb.String()
}

// Lookup returns the current binding for name, if any. The store is
// only valid between Execute calls on the same goroutine.
func (e *Engine) Lookup(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// eval guards recursion depth and dispatches on node kind.
func (e *Engine) eval(n *ast.Node) Outcome {
	if e.depth >= e.maxDepth {
		return Fault(msgDepthExceeded)
	}
	e.depth++
	out := e.evalNode(n)
	e.depth--
	return out
}

func (e *Engine) evalNode(n *ast.Node) Outcome {
	switch n.Kind {
	// Literals
	case ast.IntLit:
		return Ok(IntValue(n.Int))
	case ast.FloatLit:
		return Ok(FloatValue(n.Float))
	case ast.BoolLit:
		return Ok(BoolValue(n.Bool))
	case ast.StrLit:
		return Ok(StrValue(n.Str))

	// Variable store
	case ast.Ident:
		if v, ok := e.vars[n.Name]; ok {
			return Ok(v)
		}
		return Fault(msgUndefinedIdentifier)
	case ast.Assign:
		res := e.eval(n.Value)
		switch res.Type() {
		case OutcomeValue, OutcomeReturn:
			// An early return on the right-hand side binds its value
			// and flows on as a plain value.
			e.vars[n.Name] = res.Value()
			return Ok(res.Value())
		default:
			return res
		}

	// Arithmetic
	case ast.Add, ast.Sub, ast.Mul, ast.Div:
		return e.evalMath(n)

	// Comparison
	case ast.Eq:
		lv := e.eval(n.Left)
		rv := e.eval(n.Right)
		if lv.IsFault() {
			return lv
		}
		if rv.IsFault() {
			return rv
		}
		if lv.IsValue() && rv.IsValue() {
			// Variant-sensitive: cross-variant operands compare unequal,
			// they do not fault.
			return Ok(BoolValue(lv.Value().Equals(rv.Value())))
		}
		return Fault(msgInvalidEq)
	case ast.Lt:
		lv := e.eval(n.Left)
		rv := e.eval(n.Right)
		if lv.IsFault() {
			return lv
		}
		if rv.IsFault() {
			return rv
		}
		if lv.IsValue() && rv.IsValue() {
			l, r := lv.Value(), rv.Value()
			if l.Kind() == KindInt && r.Kind() == KindInt {
				return Ok(BoolValue(l.Int() < r.Int()))
			}
			if l.Kind() == KindFloat && r.Kind() == KindFloat {
				return Ok(BoolValue(l.Float() < r.Float()))
			}
		}
		return Fault(msgInvalidLt)

	// Control flow
	case ast.If:
		cond := e.eval(n.Cond)
		if cond.IsFault() {
			return cond
		}
		if !cond.IsValue() || cond.Value().Kind() != KindBool {
			return Fault(msgIfCondNotBoolean)
		}
		if cond.Value().Bool() {
			return e.eval(n.Then)
		}
		if n.Else != nil {
			return e.eval(n.Else)
		}
		return Ok(VoidValue)
	case ast.While:
		for {
			cond := e.eval(n.Cond)
			if cond.IsFault() {
				return cond
			}
			if !cond.IsValue() || cond.Value().Kind() != KindBool {
				return Fault(msgWhileCondNotBoolean)
			}
			if !cond.Value().Bool() {
				break
			}
			body := e.eval(n.Body)
			if body.IsReturn() || body.IsFault() {
				// A return terminates the loop outright, not just the
				// current iteration; faults abort the whole loop.
				return body
			}
		}
		return Ok(VoidValue)
	case ast.Block:
		last := VoidValue
		for _, c := range n.Nodes {
			res := e.eval(c)
			if !res.IsValue() {
				return res
			}
			last = res.Value()
		}
		return Ok(last)
	case ast.Return:
		res := e.eval(n.Value)
		if res.IsValue() {
			return EarlyReturn(res.Value())
		}
		return res

	// Native boundary
	case ast.NativeCall:
		return e.evalCall(n)

	default:
		return Faultf("Unknown node kind: %s", n.Kind)
	}
}

// evalMath handles the four arithmetic kinds. Both operands must
// reduce to the same numeric variant; Int/Float mixes are a type
// mismatch, and division by zero faults for both variants rather than
// producing IEEE infinity or NaN.
func (e *Engine) evalMath(n *ast.Node) Outcome {
	lv := e.eval(n.Left)
	rv := e.eval(n.Right)
	if lv.IsFault() {
		return lv
	}
	if rv.IsFault() {
		return rv
	}
	if !lv.IsValue() || !rv.IsValue() {
		return Fault(msgMathTypeMismatch)
	}

	l, r := lv.Value(), rv.Value()
	switch {
	case l.Kind() == KindInt && r.Kind() == KindInt:
		li, ri := l.Int(), r.Int()
		switch n.Kind {
		case ast.Add:
			return Ok(IntValue(li + ri))
		case ast.Sub:
			return Ok(IntValue(li - ri))
		case ast.Mul:
			return Ok(IntValue(li * ri))
		default: // Div
			if ri == 0 {
				return Fault(msgDivisionByZero)
			}
			return Ok(IntValue(li / ri))
		}
	case l.Kind() == KindFloat && r.Kind() == KindFloat:
		lf, rf := l.Float(), r.Float()
		switch n.Kind {
		case ast.Add:
			return Ok(FloatValue(lf + rf))
		case ast.Sub:
			return Ok(FloatValue(lf - rf))
		case ast.Mul:
			return Ok(FloatValue(lf * rf))
		default: // Div
			if rf == 0.0 {
				return Fault(msgDivisionByZero)
			}
			return Ok(FloatValue(lf / rf))
		}
	}
	return Fault(msgMathTypeMismatch)
}

// evalCall reduces the arguments left to right and hands the call to
// the dispatch boundary. A faulting argument propagates before the
// native side is touched.
func (e *Engine) evalCall(n *ast.Node) Outcome {
	args := make([]Value, 0, len(n.Nodes))
	for _, a := range n.Nodes {
		res := e.eval(a)
		if !res.IsValue() {
			return res
		}
		args = append(args, res.Value())
	}
	if e.natives == nil {
		return Faultf("Unknown native function: %s.%s", n.Module, n.Function)
	}
	return e.natives.Call(n.Module, n.Function, args)
}
