// Package ast defines the node kinds of a compiled Knoten program.
//
// A program arrives as a pre-parsed tree; the runtime never sees source
// text. The node set is closed: the evaluator matches on Kind and
// rejects anything it does not know.
package ast

import "fmt"

// Kind identifies the variant of a Node.
type Kind uint8

const (
	Invalid Kind = iota
	IntLit
	FloatLit
	BoolLit
	StrLit
	Ident
	Assign
	Add
	Sub
	Mul
	Div
	Eq
	Lt
	If
	While
	Block
	Return
	NativeCall
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	BoolLit:    "BoolLit",
	StrLit:     "StrLit",
	Ident:      "Ident",
	Assign:     "Assign",
	Add:        "Add",
	Sub:        "Sub",
	Mul:        "Mul",
	Div:        "Div",
	Eq:         "Eq",
	Lt:         "Lt",
	If:         "If",
	While:      "While",
	Block:      "Block",
	Return:     "Return",
	NativeCall: "NativeCall",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsBinary returns true for the four arithmetic kinds plus Eq and Lt.
func (k Kind) IsBinary() bool {
	switch k {
	case Add, Sub, Mul, Div, Eq, Lt:
		return true
	}
	return false
}

// Node is one element of a program tree. Which fields are meaningful
// depends on Kind; unused fields stay at their zero value and are
// omitted on the wire.
type Node struct {
	Kind Kind `cbor:"k"`

	// Literal payloads
	Int   int64   `cbor:"i,omitempty"`
	Float float64 `cbor:"f,omitempty"`
	Bool  bool    `cbor:"b,omitempty"`
	Str   string  `cbor:"s,omitempty"`

	// Ident and Assign
	Name string `cbor:"n,omitempty"`

	// Binary operators
	Left  *Node `cbor:"l,omitempty"`
	Right *Node `cbor:"r,omitempty"`

	// If and While
	Cond *Node `cbor:"c,omitempty"`
	Then *Node `cbor:"t,omitempty"`
	Else *Node `cbor:"e,omitempty"`
	Body *Node `cbor:"y,omitempty"`

	// Assign right-hand side and Return operand
	Value *Node `cbor:"v,omitempty"`

	// Block children and NativeCall arguments
	Nodes []*Node `cbor:"ns,omitempty"`

	// NativeCall target
	Module   string `cbor:"m,omitempty"`
	Function string `cbor:"fn,omitempty"`
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewInt builds an integer literal node.
func NewInt(v int64) *Node { return &Node{Kind: IntLit, Int: v} }

// NewFloat builds a float literal node.
func NewFloat(v float64) *Node { return &Node{Kind: FloatLit, Float: v} }

// NewBool builds a boolean literal node.
func NewBool(v bool) *Node { return &Node{Kind: BoolLit, Bool: v} }

// NewStr builds a string literal node.
func NewStr(v string) *Node { return &Node{Kind: StrLit, Str: v} }

// NewIdent builds an identifier lookup node.
func NewIdent(name string) *Node { return &Node{Kind: Ident, Name: name} }

// NewAssign builds an assignment of value to name.
func NewAssign(name string, value *Node) *Node {
	return &Node{Kind: Assign, Name: name, Value: value}
}

// NewBinary builds a binary operator node. Panics if kind is not one
// of Add, Sub, Mul, Div, Eq, Lt.
func NewBinary(kind Kind, left, right *Node) *Node {
	if !kind.IsBinary() {
		panic("ast.NewBinary: " + kind.String() + " is not a binary kind")
	}
	return &Node{Kind: kind, Left: left, Right: right}
}

// NewIf builds a conditional. elseBranch may be nil.
func NewIf(cond, then, elseBranch *Node) *Node {
	return &Node{Kind: If, Cond: cond, Then: then, Else: elseBranch}
}

// NewWhile builds a loop.
func NewWhile(cond, body *Node) *Node {
	return &Node{Kind: While, Cond: cond, Body: body}
}

// NewBlock builds a sequence node. An empty block is valid and
// evaluates to void.
func NewBlock(children ...*Node) *Node {
	return &Node{Kind: Block, Nodes: children}
}

// NewReturn builds an early-return node.
func NewReturn(value *Node) *Node { return &Node{Kind: Return, Value: value} }

// NewCall builds a native call node.
func NewCall(module, function string, args ...*Node) *Node {
	return &Node{Kind: NativeCall, Module: module, Function: function, Nodes: args}
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// Validate checks that every node in the tree carries the fields its
// kind requires. The loader runs this after decoding so the evaluator
// never has to nil-check subtrees.
func Validate(n *Node) error {
	if n == nil {
		return fmt.Errorf("ast: nil node")
	}
	switch n.Kind {
	case IntLit, FloatLit, BoolLit, StrLit:
		return nil
	case Ident:
		if n.Name == "" {
			return fmt.Errorf("ast: Ident node without a name")
		}
		return nil
	case Assign:
		if n.Name == "" {
			return fmt.Errorf("ast: Assign node without a name")
		}
		if n.Value == nil {
			return fmt.Errorf("ast: Assign %q without a value", n.Name)
		}
		return Validate(n.Value)
	case Add, Sub, Mul, Div, Eq, Lt:
		if n.Left == nil || n.Right == nil {
			return fmt.Errorf("ast: %s node missing an operand", n.Kind)
		}
		if err := Validate(n.Left); err != nil {
			return err
		}
		return Validate(n.Right)
	case If:
		if n.Cond == nil || n.Then == nil {
			return fmt.Errorf("ast: If node missing condition or then-branch")
		}
		if err := Validate(n.Cond); err != nil {
			return err
		}
		if err := Validate(n.Then); err != nil {
			return err
		}
		if n.Else != nil {
			return Validate(n.Else)
		}
		return nil
	case While:
		if n.Cond == nil || n.Body == nil {
			return fmt.Errorf("ast: While node missing condition or body")
		}
		if err := Validate(n.Cond); err != nil {
			return err
		}
		return Validate(n.Body)
	case Block:
		for _, c := range n.Nodes {
			if err := Validate(c); err != nil {
				return err
			}
		}
		return nil
	case Return:
		if n.Value == nil {
			return fmt.Errorf("ast: Return node without a value")
		}
		return Validate(n.Value)
	case NativeCall:
		if n.Module == "" || n.Function == "" {
			return fmt.Errorf("ast: NativeCall node missing module or function")
		}
		for _, a := range n.Nodes {
			if err := Validate(a); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("ast: unknown node kind %s", n.Kind)
	}
}
