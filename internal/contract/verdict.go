package contract

import "time"

// Verdict is the recorded outcome of verifying one proposal.
//
// NOTE: Seq comes from the gate's logical clock, not from Verify; the
// validator itself has no notion of order.
type Verdict struct {
	Seq        int64     `json:"seq"`         // Logical clock
	ProposalID string    `json:"proposal_id"` // Content-addressed
	Transition string    `json:"transition"`
	Accepted   bool      `json:"accepted"`
	Unchecked  bool      `json:"unchecked,omitempty"` // Accepted without rules
	Code       Code      `json:"code,omitempty"`
	Rule       Rule      `json:"rule,omitempty"`
	Message    string    `json:"message,omitempty"`
	EvalTime   time.Time `json:"eval_time"`
}

// Outcome returns "accepted", "unchecked" or "rejected".
func (v Verdict) Outcome() string {
	switch {
	case v.Unchecked:
		return "unchecked"
	case v.Accepted:
		return "accepted"
	default:
		return "rejected"
	}
}
