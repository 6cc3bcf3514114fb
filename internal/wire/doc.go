// Package wire reads proposal documents.
//
// A proposal document is YAML (or JSON, which yaml.v3 also reads) naming
// the parties by alias, the consumed and produced records in terms of
// those aliases, the transition, the evaluation time, and either the
// signer keys or the signatures themselves:
//
//	transition: update
//	eval_time: 2026-10-16T09:00:00Z
//	parties:
//	  bank-a: {name: "O=BankA,L=London,C=GB", key: 5f0c...}
//	  alice:  {name: "alice", key: 9a71...}
//	consumed:
//	  - {bank: bank-a, customer: alice, start_date: 2026-11-15,
//	     accumulation: {currency: USD, quantity: 100},
//	     id: 3f5e0a3c-6a43-4f07-9a3e-0c3f6d2b1e11}
//	produced:
//	  - {bank: bank-a, customer: alice, start_date: 2026-11-15,
//	     accumulation: {currency: USD, quantity: 250},
//	     id: 3f5e0a3c-6a43-4f07-9a3e-0c3f6d2b1e11}
//	signers: [bank-a, alice]
//
// Decoding resolves every alias to a record.Party up front; the validator
// never sees an alias. Unknown fields are rejected.
package wire
