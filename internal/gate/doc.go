// Package gate is the verification step a party runs on a proposal it has
// been asked to co-sign.
//
// A Gate wraps the pure contract.Verifier with the parts that are not pure:
// a logical clock that orders decisions, structured logging, and an optional
// verdict journal. It never assembles or alters proposals.
//
// Ordering:
// Every decision is stamped with a seq from the gate's Clock. CheckAll
// assigns seqs in input order before fanning out, so a batch journals in
// the same order however its goroutines interleave.
//
// Errors:
// A rejected proposal is a Verdict, not an error. The error return of
// Check and CheckAll is reserved for infrastructure failures (fingerprint
// encoding, journal writes, context cancellation).
package gate
