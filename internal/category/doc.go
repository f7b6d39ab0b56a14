// Package category gives the primitive registry a formal reading:
// objects are the port types, morphisms are the primitives (dom = type
// of the first input, cod = type of the first output) plus one
// synthesized identity morphism per type, and composition is defined
// for pairs (f, g) with cod(g) = dom(f).
//
// The single-input/single-output morphism view is a deliberate
// simplification even for multi-port primitives; it trades precision
// for checkable laws. Law verification is exhaustive over the
// primitive set - O(n^2) pairs for identity, O(n^3) triples for
// associativity - so it runs as a batch validation pass invoked by
// tests and tooling, never as a runtime gate. Law violations are
// diagnostic output, never fatal to evaluation.
//
// ValidateDiagramTypes is the concrete half: it walks every wire edge
// of a diagram and checks the source output port type against the
// destination input port type under the coercion table, reporting
// every mismatch rather than stopping at the first.
package category
