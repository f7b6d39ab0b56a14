// Package engine evaluates wiring diagrams: one diagram, one per-cell
// context, one output sigil.
//
// ARCHITECTURE:
//
// Single-threaded synchronous evaluation:
// One Evaluate call schedules nodes in topological order (Kahn in-degree
// reduction over wire edges), assembles each node's inputs from its
// incoming edges, invokes the primitive, and records the outputs. There
// is no suspension and no implicit parallelism inside a call. The owning
// cellular-automaton driver invokes Evaluate once per cell per
// generation; those calls are embarrassingly parallel provided each gets
// its own Diagram and Context values - the evaluator holds no mutable
// state between calls.
//
// CRITICAL PATTERNS:
//
// Deterministic scheduling:
// Nodes seed the Kahn queue in declaration order and the queue is FIFO,
// so the evaluation order is a pure function of the diagram. If the
// reduction cannot order every node (a residual cycle - malformed, but
// not actively rejected), the evaluator appends the remainder in
// declaration order rather than failing, keeping malformed diagrams
// runnable for diagnostics.
//
// Total per-cell dynamics:
// A declared input with no contributing edge gets the documented
// per-type default (empty list for list ports, a neutral value for
// scalar ports). Runtime input gaps never raise.
package engine
