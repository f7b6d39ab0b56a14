// Package registry declares the primitive set: per identifier, a fixed
// list of named typed input ports, named typed output ports, and an
// executable implementation.
//
// The port signatures live in an embedded CUE document (registry.cue);
// the implementations live in the Go dispatch table (builtins.go). Load
// compiles the document with the CUE Go API and cross-checks it against
// the dispatch table - an identifier present in one but not the other,
// or with mismatched ports, is a construction error. The document is
// data, the implementation is code, and the two agree or the registry
// refuses to load.
//
// The registry is immutable after Load and may be shared across
// goroutines without synchronization. Primitives are pure functions of
// (inputs, params, context); anything needing cross-cell memory
// receives and returns an explicit State value.
package registry
