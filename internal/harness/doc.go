// Package harness runs asset-saving scenarios through the verification gate.
//
// A scenario names parties and records once, then lists proposal steps
// with the verdict each must produce. Every step goes through a real
// gate.Gate with its own in-memory journal; the trace is read back from
// that journal so golden files capture what was actually recorded.
//
// # Scenario Format
//
//	name: transfer_accepted
//	description: "Custody moves from A/B to C/D"
//	eval_time: 2026-10-16T09:00:00Z
//	parties:
//	  bank-a: {name: "O=BankA"}
//	  customer-b: {}
//	records:
//	  position:
//	    bank: bank-a
//	    customer: customer-b
//	    start_date: 2026-11-15
//	    accumulation: {currency: USD, quantity: 100}
//	steps:
//	  - transition: transfer
//	    consumed: [position]
//	    produced: [moved]
//	    signers: [bank-a, customer-b, bank-c, customer-d]
//	    expect: {accept: true}
//
// Party keys may be omitted; they are derived from the alias. Record ids
// may be omitted; they are assigned in record-name order (…0001, …0002).
//
// # Golden Files
//
// The canonical trace of a scenario is compared with
// testdata/golden/<name>.golden. Traces hold outcomes, rules and messages
// but no fingerprints or keys, so they survive key derivation changes.
package harness
