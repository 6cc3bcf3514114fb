package contract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejection_Error(t *testing.T) {
	rej := reject(Issue{}, RuleIssuePositiveAmount)
	assert.Equal(t, "FIELD_INVARIANT_VIOLATION: amount must be positive (transition=issue)", rej.Error())
}

func TestRejection_Wrapped(t *testing.T) {
	err := fmt.Errorf("verify proposal: %w", reject(Cancel{}, RuleCancelSigners))

	assert.True(t, errors.Is(err, ErrRejected))
	assert.True(t, IsAuthorizationError(err))
	assert.False(t, IsStructuralError(err))

	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, "cancel", rej.Transition)
}

func TestAsRejection_OtherErrors(t *testing.T) {
	_, ok := AsRejection(errors.New("disk full"))
	assert.False(t, ok)
	assert.False(t, IsFieldInvariantError(nil))
}

func TestLegacyMessages(t *testing.T) {
	rej := reject(Issue{}, RuleIssuePositiveAmount)
	assert.Equal(t, "The Amount of the accumulation should be larger than 0.", rej.LegacyMessage())

	assert.Equal(t, "The linearId must not be changed.", RuleTransferIDUnchanged.LegacyMessage())
}

func TestEveryRuleHasCodeAndMessages(t *testing.T) {
	for rule, spec := range rules {
		assert.NotEmpty(t, spec.code, "rule %s", rule)
		assert.NotEmpty(t, spec.message, "rule %s", rule)
		assert.NotEmpty(t, spec.legacy, "rule %s", rule)
		assert.Equal(t, spec.message, rule.Message())
		assert.Equal(t, spec.code, rule.Code())
	}
	assert.Len(t, rules, 22)
}

func TestVerdictOutcome(t *testing.T) {
	assert.Equal(t, "accepted", Verdict{Accepted: true}.Outcome())
	assert.Equal(t, "unchecked", Verdict{Accepted: true, Unchecked: true}.Outcome())
	assert.Equal(t, "rejected", Verdict{}.Outcome())
}
