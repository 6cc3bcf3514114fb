// Package record defines the asset-saving position and the value types it
// is built from.
//
// This package contains value types only. Every internal package imports
// record; record imports nothing internal.
//
// Key design constraints:
//   - Records are immutable values. Successors are derived, never mutated.
//   - Amounts are int64 minor units, never floats
//   - Identities are Ed25519 public keys; names are display data
//   - The signed representation keeps the field order
//     bank, customer, start_date, accumulation, id
package record
