// Package loader reads and writes compiled Knoten programs.
//
// The on-disk format is canonical CBOR: one ast.Node tree per file.
// Encoding is deterministic so program files can be compared and
// cached by content.
package loader

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/knotenlang/knoten/pkg/ast"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("loader: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Encode serializes a program tree to CBOR bytes.
func Encode(n *ast.Node) ([]byte, error) {
	if err := ast.Validate(n); err != nil {
		return nil, fmt.Errorf("loader: encode: %w", err)
	}
	return cborEncMode.Marshal(n)
}

// Decode deserializes CBOR bytes into a validated program tree.
func Decode(data []byte) (*ast.Node, error) {
	var n ast.Node
	if err := cbor.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("loader: decode: %w", err)
	}
	if err := ast.Validate(&n); err != nil {
		return nil, fmt.Errorf("loader: decode: %w", err)
	}
	return &n, nil
}

// LoadFile reads and decodes a compiled program from disk.
func LoadFile(path string) (*ast.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: cannot read %s: %w", path, err)
	}
	return Decode(data)
}

// WriteFile encodes a program tree and writes it to disk.
func WriteFile(path string, n *ast.Node) error {
	data, err := Encode(n)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("loader: cannot write %s: %w", path, err)
	}
	return nil
}
