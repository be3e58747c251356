// Package decorator applies and extracts decorator command sets.
//
// A command set is a named, versioned list of commands. Each command selects
// AST elements with a wildcard-capable target and attaches one decorator to
// them, either replacing same-name decorators (UPSERT) or appending (APPEND).
//
// The package offers two pipelines over an in-memory model AST:
//
//   - DecorateModels validates a command set against a type system and
//     applies it to a private copy of the models.
//   - ExtractDecorators collects the decorators of a model AST into an
//     ExtractionIndex, then compiles one command set and one vocabulary
//     document per namespace from it.
//
// Neither pipeline mutates its input. Both are synchronous and hold no
// state between calls.
package decorator
