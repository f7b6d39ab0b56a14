// Package wiringgen builds wirings from discrete parameters: an
// elementary automaton rule number (0-255) or a hexagram selector
// (1-64). Generators map a parameter to a fixed diagram shape, so a
// generated wiring is indistinguishable from a hand-authored one and
// composes like any other.
//
// The hexagram mapping lives in an embedded YAML table loaded once at
// first use - immutable configuration data, not mutable global state.
// The rule generator is pure construction: one AND-of-literals minterm
// per set bit of the rule number, OR-chained into the output. Gates
// operate bitwise over whole sigils, so the elementary rule applies to
// each of the eight bitplanes independently.
//
// The package also owns the landmark reference set: the five canonical
// elementary rule diagrams the structural embedding projects against.
package wiringgen
