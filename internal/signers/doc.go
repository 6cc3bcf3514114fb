// Package signers derives and compares the identity sets that authorize a
// transaction.
//
// KeySet is immutable: every operation returns a new set, so a set handed
// to the validator cannot change under it. Participants gives the parties
// with standing over a record; the per-transition required set lives in
// package contract because it depends on the transition kind.
package signers
