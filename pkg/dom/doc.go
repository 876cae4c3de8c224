// Package dom defines the tree-construction surface that the reactive view
// layer writes to, and an in-memory implementation of it.
//
// The surface is deliberately narrow: create an element or text node, set
// or remove an attribute, set text, attach an event handler, and insert or
// remove children. Everything above it (tree descriptions, keyed lists,
// bindings) is expressed in terms of these calls only, so a Document can be
// a browser mirror, a recorder, or the MemoryDocument used in tests and
// benchmarks.
//
// # Identity
//
// Every Node has a document-unique numeric id. Ids are never reused within a
// document, which lets remote hosts address nodes across frames.
//
// # Moves
//
// InsertBefore on a node that is already attached moves it. Documents that
// count operations report such an insert as a move, not as a removal plus
// an insertion.
package dom
