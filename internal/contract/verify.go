package contract

import (
	"strings"

	"github.com/roach88/assetsaving/internal/record"
	"github.com/roach88/assetsaving/internal/signers"
)

// AccumulatePolicy decides what Verify does with an Accumulate proposal.
type AccumulatePolicy int

const (
	// AccumulateUnchecked accepts every Accumulate proposal without checks.
	// This is the long-standing ledger behavior and the default.
	AccumulateUnchecked AccumulatePolicy = iota

	// AccumulateRejected refuses every Accumulate proposal.
	AccumulateRejected
)

// String returns the config spelling of the policy.
func (p AccumulatePolicy) String() string {
	if p == AccumulateRejected {
		return "reject"
	}
	return "unchecked"
}

// Verifier validates proposals. The zero value uses the default policy.
//
// Thread-safety: Verifier is immutable after New and safe for concurrent use.
type Verifier struct {
	accumulate AccumulatePolicy
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithAccumulatePolicy sets the Accumulate policy.
func WithAccumulatePolicy(p AccumulatePolicy) Option {
	return func(v *Verifier) {
		v.accumulate = p
	}
}

// New creates a Verifier.
func New(opts ...Option) *Verifier {
	v := &Verifier{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// AccumulatePolicy returns the configured policy.
func (v *Verifier) AccumulatePolicy() AccumulatePolicy {
	return v.accumulate
}

// Unchecked reports whether an accepted proposal of kind t was accepted
// without any rule being evaluated.
func (v *Verifier) Unchecked(t Transition) bool {
	_, ok := t.(Accumulate)
	return ok && v.accumulate == AccumulateUnchecked
}

// Verify returns nil if p satisfies the rules of its transition, or a
// *Rejection naming the first predicate that failed.
func (v *Verifier) Verify(p Proposal) error {
	switch t := p.Transition.(type) {
	case Issue:
		return verifyIssue(t, p)
	case Update:
		return verifyUpdate(t, p)
	case Transfer:
		return verifyTransfer(t, p)
	case Accumulate:
		if v.accumulate == AccumulateRejected {
			return reject(t, RuleAccumulateUnimplemented)
		}
		return nil
	case Cancel:
		return verifyCancel(t, p)
	default:
		return reject(p.Transition, RuleSingleCommand)
	}
}

// Verify validates p with the default policy.
func Verify(p Proposal) error {
	return New().Verify(p)
}

func verifyIssue(t Issue, p Proposal) error {
	if len(p.Consumed) != 0 {
		return reject(t, RuleIssueNoInputs)
	}
	if len(p.Produced) != 1 {
		return reject(t, RuleIssueOneOutput)
	}
	out := p.Produced[0]
	if out.Accumulation.Quantity <= 0 {
		return reject(t, RuleIssuePositiveAmount)
	}
	if !out.StartDate.After(p.EvalTime) {
		return reject(t, RuleIssueFutureStart)
	}
	return checkSigners(t, RuleIssueSigners, p.Signers, signers.Participants(out), 2)
}

func verifyUpdate(t Update, p Proposal) error {
	if len(p.Consumed) != 1 {
		return reject(t, RuleUpdateOneInput)
	}
	if len(p.Produced) != 1 {
		return reject(t, RuleUpdateOneOutput)
	}
	in, out := p.Consumed[0], p.Produced[0]
	if in.Accumulation.Quantity == out.Accumulation.Quantity {
		return reject(t, RuleUpdateAmountChanged)
	}
	if !sameExceptAccumulation(in, out) {
		return reject(t, RuleUpdateOthersUnchanged)
	}
	return checkSigners(t, RuleUpdateSigners, p.Signers, signers.Participants(in), 2)
}

func verifyTransfer(t Transfer, p Proposal) error {
	if len(p.Consumed) != 1 {
		return reject(t, RuleTransferOneInput)
	}
	if len(p.Produced) != 1 {
		return reject(t, RuleTransferOneOutput)
	}
	in, out := p.Consumed[0], p.Produced[0]
	if in.Bank.Same(out.Bank) {
		return reject(t, RuleTransferBankDiffers)
	}
	if in.Customer.Same(out.Customer) {
		return reject(t, RuleTransferCustomerDiffers)
	}
	if !out.StartDate.After(p.EvalTime) {
		return reject(t, RuleTransferFutureStart)
	}
	if in.ID != out.ID {
		return reject(t, RuleTransferIDUnchanged)
	}
	return checkSigners(t, RuleTransferSigners, p.Signers, signers.ParticipantsOf(in, out), 4)
}

func verifyCancel(t Cancel, p Proposal) error {
	if len(p.Consumed) != 1 {
		return reject(t, RuleCancelOneInput)
	}
	if len(p.Produced) != 0 {
		return reject(t, RuleCancelNoOutputs)
	}
	return checkSigners(t, RuleCancelSigners, p.Signers, signers.Participants(p.Consumed[0]), 2)
}

// sameExceptAccumulation compares parties by key, the start date as an
// instant and the id.
func sameExceptAccumulation(a, b record.AssetSaving) bool {
	return a.Bank.Same(b.Bank) &&
		a.Customer.Same(b.Customer) &&
		a.StartDate.Equal(b.StartDate) &&
		a.ID == b.ID
}

// checkSigners requires actual == required and |required| == size.
// A required set smaller than size means two roles share a key.
func checkSigners(t Transition, rule Rule, actual, required signers.KeySet, size int) error {
	if actual.Equal(required) && required.Len() == size {
		return nil
	}
	rej := reject(t, rule)
	rej.Details = map[string]string{
		"required": required.String(),
		"actual":   actual.String(),
	}
	if missing := required.Difference(actual); missing.Len() > 0 {
		rej.Details["missing"] = strings.Join(missing.Strings(), ",")
	}
	if extra := actual.Difference(required); extra.Len() > 0 {
		rej.Details["unexpected"] = strings.Join(extra.Strings(), ",")
	}
	return rej
}
