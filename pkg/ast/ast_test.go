package ast

import "testing"

func TestKindString(t *testing.T) {
	if got := Add.String(); got != "Add" {
		t.Errorf("Add.String() = %q, want %q", got, "Add")
	}
	if got := Kind(200).String(); got != "Kind(200)" {
		t.Errorf("Kind(200).String() = %q, want %q", got, "Kind(200)")
	}
}

func TestKindIsBinary(t *testing.T) {
	binary := []Kind{Add, Sub, Mul, Div, Eq, Lt}
	for _, k := range binary {
		if !k.IsBinary() {
			t.Errorf("%s.IsBinary() = false, want true", k)
		}
	}

	other := []Kind{Invalid, IntLit, Ident, Assign, If, While, Block, Return, NativeCall}
	for _, k := range other {
		if k.IsBinary() {
			t.Errorf("%s.IsBinary() = true, want false", k)
		}
	}
}

func TestNewBinaryPanicsOnNonBinaryKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewBinary(Block, ...) did not panic")
		}
	}()
	NewBinary(Block, NewInt(1), NewInt(2))
}

func TestValidateAccepts(t *testing.T) {
	tests := []struct {
		name string
		node *Node
	}{
		{"literal", NewInt(1)},
		{"empty block", NewBlock()},
		{"if without else", NewIf(NewBool(true), NewInt(1), nil)},
		{"call without args", NewCall("registry", "dump")},
		{
			"nested program",
			NewBlock(
				NewAssign("x", NewBinary(Add, NewInt(1), NewInt(2))),
				NewWhile(NewBinary(Lt, NewIdent("x"), NewInt(10)),
					NewAssign("x", NewBinary(Mul, NewIdent("x"), NewInt(2)))),
				NewReturn(NewIdent("x")),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.node); err != nil {
				t.Errorf("Validate() error: %v", err)
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		node *Node
	}{
		{"nil node", nil},
		{"invalid kind", &Node{Kind: Invalid}},
		{"unknown kind", &Node{Kind: Kind(99)}},
		{"ident without name", &Node{Kind: Ident}},
		{"assign without name", &Node{Kind: Assign, Value: NewInt(1)}},
		{"assign without value", &Node{Kind: Assign, Name: "x"}},
		{"binary missing operand", &Node{Kind: Add, Left: NewInt(1)}},
		{"if without condition", &Node{Kind: If, Then: NewInt(1)}},
		{"while without body", &Node{Kind: While, Cond: NewBool(true)}},
		{"return without value", &Node{Kind: Return}},
		{"call without function", &Node{Kind: NativeCall, Module: "registry"}},
		{"invalid child in block", NewBlock(NewInt(1), &Node{Kind: Ident})},
		{"invalid argument in call", NewCall("registry", "increment", &Node{Kind: Assign})},
		{"invalid nested operand", NewBinary(Add, NewInt(1), &Node{Kind: Return})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.node); err == nil {
				t.Error("Validate() accepted an invalid tree")
			}
		})
	}
}
