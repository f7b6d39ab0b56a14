// Package store provides durable lineage tracking for bred wirings.
//
// # ARCHITECTURE
//
// The store is a SQLite database with two tables: wirings, keyed by
// content id and holding the canonical definition, and breedings,
// recording each composition event (operator, parents, child) with a
// monotonic sequence number assigned at write time.
//
// The engine never reads from the store during evaluation. Lineage is
// write-mostly diagnostics: it answers "where did this wiring come
// from" after the fact.
//
// # CRITICAL PATTERNS
//
//   - Single writer. SQLite in WAL mode with a single connection;
//     concurrent readers see consistent snapshots.
//   - Idempotent writes. Every insert uses ON CONFLICT DO NOTHING so
//     recording the same breeding twice is a no-op.
//   - Deterministic reads. Lineage queries order by seq ASC with a
//     binary-collated id tiebreak, so replaying a lineage walk is
//     stable across runs.
package store
