// Package vm implements the Knoten runtime.
//
// This package contains:
//   - The closed scalar value variant set and its rendering rules
//   - The recursive tree-walking evaluator and its execution report
//   - The native dispatch boundary for (module, function, args) calls
//   - The ref-counted native resource registry and its per-kind operations
//   - The immediate-mode UI surface behind the ui module
package vm
