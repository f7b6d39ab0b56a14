// Package compose implements the structural composition algebra over
// wirings: serial chaining, parallel selection with a gating or
// blending node, boost (post/pre/xor), and subgraph crossover.
//
// Every operator namespaces both parents' node ids with distinct
// prefixes before touching anything, so unioned node sets cannot
// collide, and every operator re-validates its result before returning
// it - well-formedness is checked, never assumed. Operators build new
// Wirings with fresh identity and provenance; parents are never
// mutated.
//
// Crossover infeasibility (no shared cut-point primitive) is an
// expected, frequent outcome for structurally dissimilar parents. It
// returns a nil child slice, not an error.
package compose
