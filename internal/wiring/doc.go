// Package wiring defines the typed dataflow graph model shared by every
// other component: port types, the sealed Value union, the coercion table,
// diagrams (nodes, edges, output), and the Wiring envelope with identity
// and provenance metadata.
//
// A wiring diagram computes one sigil from a cell's local neighborhood.
// Diagrams are immutable once constructed; the composition operators in
// package compose always build fresh diagrams with namespaced node ids
// rather than mutating their parents.
//
// CRITICAL PATTERNS:
//
// Sealed value union:
// Value is implemented only by the eleven types matching PortType. This
// keeps evaluation total - no reflection, no interface{} leaks, and a
// type switch over Value is exhaustive.
//
// Content-addressed identity:
// WiringID hashes the canonical JSON of a diagram (RFC 8785 key order,
// NFC strings, no HTML escaping) with a domain prefix. Two structurally
// identical diagrams always hash to the same id, which makes lineage
// records idempotent.
//
// Coercions are data:
// The coercion table is consulted only by the edge type checker in
// package category. Runtime values are never implicitly converted; the
// explicit Coerce function is a total function over the table.
package wiring
