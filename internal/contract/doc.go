// Package contract implements the asset-saving transition rules.
//
// Verify is the correctness predicate every party runs on a proposed
// transaction before signing it. It is a pure function of its input:
//
//   - No I/O, no logging, no clocks. The evaluation time is part of the
//     Proposal.
//   - No state between calls. Safe for any number of concurrent callers.
//   - First failing predicate wins. Evaluation order only selects which
//     message is reported; it never changes accept versus reject.
//
// Rejection messages are part of the cross-party protocol. Peers match on
// them, so the texts in rules.go must not be edited casually.
//
// Dispatch is a type switch over the sealed Transition interface with one
// branch per kind, Accumulate included. A new kind that is not given a
// branch falls through to the single-command rejection rather than being
// accepted.
package contract
