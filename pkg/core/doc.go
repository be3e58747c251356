// Package core defines the shared language of the Concerto decorator tooling.
//
// This package contains:
//   - The metamodel AST (Models, Model, Declaration, Property, Decorator)
//   - Tagged kinds for declarations, properties, imports and decorator
//     arguments, with their canonical "$class" strings
//   - Deep cloning of AST values
//   - The Concerto metamodel JSON encoding of the AST
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
