package contract

import (
	"errors"
	"fmt"
)

// ErrRejected is the sentinel every Rejection unwraps to.
var ErrRejected = errors.New("transaction rejected")

// Code categorizes rejections.
type Code string

const (
	// CodeStructural indicates wrong consumed/produced cardinality or a
	// missing transition.
	CodeStructural Code = "STRUCTURAL_VIOLATION"

	// CodeFieldInvariant indicates an illegal value or an illegal field
	// change.
	CodeFieldInvariant Code = "FIELD_INVARIANT_VIOLATION"

	// CodeAuthorization indicates the signer set is not the required set.
	CodeAuthorization Code = "AUTHORIZATION_VIOLATION"

	// CodeUnimplemented indicates a transition whose rules do not exist yet.
	CodeUnimplemented Code = "UNIMPLEMENTED_TRANSITION"
)

// Rejection is the outcome of a proposal that fails its rule set.
//
// Message is the protocol text peers match on. Details holds diagnostics
// (missing and unexpected signers) and is not part of the protocol.
type Rejection struct {
	// Transition is the wire name of the declared transition.
	Transition string

	// Rule identifies the failed predicate.
	Rule Rule

	// Code is the rejection category.
	Code Code

	// Message is the fixed protocol message for Rule.
	Message string

	// Details contains additional context.
	Details map[string]string
}

// Error implements the error interface.
func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s (transition=%s)", r.Code, r.Message, r.Transition)
}

// Unwrap makes errors.Is(err, ErrRejected) hold for every rejection.
func (r *Rejection) Unwrap() error {
	return ErrRejected
}

// LegacyMessage returns the message text of the legacy contract for
// peers that have not migrated to the current messages.
func (r *Rejection) LegacyMessage() string {
	return r.Rule.LegacyMessage()
}

// AsRejection extracts a Rejection from err.
// Uses errors.As to handle wrapped errors.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

// IsStructuralError returns true for cardinality rejections.
func IsStructuralError(err error) bool {
	return hasCode(err, CodeStructural)
}

// IsFieldInvariantError returns true for illegal value or change rejections.
func IsFieldInvariantError(err error) bool {
	return hasCode(err, CodeFieldInvariant)
}

// IsAuthorizationError returns true for signer-set rejections.
func IsAuthorizationError(err error) bool {
	return hasCode(err, CodeAuthorization)
}

// IsUnimplementedError returns true when the transition has no rules.
func IsUnimplementedError(err error) bool {
	return hasCode(err, CodeUnimplemented)
}

func hasCode(err error, code Code) bool {
	rej, ok := AsRejection(err)
	return ok && rej.Code == code
}

// reject builds the Rejection for a rule.
func reject(t Transition, rule Rule) *Rejection {
	spec := rules[rule]
	return &Rejection{
		Transition: TransitionName(t),
		Rule:       rule,
		Code:       spec.code,
		Message:    spec.message,
	}
}
