package harness

import "github.com/roach88/assetsaving/internal/contract"

// TraceEvent is one journaled verdict as it appears in a trace.
type TraceEvent struct {
	Step       int    `json:"step"`
	Seq        int64  `json:"seq"`
	Transition string `json:"transition"`
	Outcome    string `json:"outcome"` // accepted, unchecked or rejected
	Code       string `json:"code,omitempty"`
	Rule       string `json:"rule,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every step produced its expected verdict.
	Pass bool `json:"pass"`

	// Trace holds one event per step, read back from the journal.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a mismatch and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddVerdict appends the trace event for a verdict.
func (r *Result) AddVerdict(step int, v contract.Verdict) {
	r.Trace = append(r.Trace, TraceEvent{
		Step:       step,
		Seq:        v.Seq,
		Transition: v.Transition,
		Outcome:    v.Outcome(),
		Code:       string(v.Code),
		Rule:       string(v.Rule),
		Message:    v.Message,
	})
}
