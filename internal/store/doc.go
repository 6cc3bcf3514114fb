// Package store provides the SQLite-backed verdict journal.
//
// The journal is an append-only audit trail of gate decisions. It is not a
// record vault: it stores outcomes and proposal fingerprints, never the
// records themselves.
//
// # Invariants
//
//   - seq is the primary key. Writing the same seq twice is a no-op, so a
//     retried write cannot duplicate a decision.
//   - All reads are ORDER BY seq ASC. Wall time is stored for display only.
//   - eval_time is stored as RFC 3339 text in UTC, the same form the signing
//     payload uses.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - Single connection: SQLite has one writer
package store
