package contract

// Rule identifies one predicate of a transition's rule set.
type Rule string

// Rules, grouped by transition in evaluation order.
const (
	RuleSingleCommand Rule = "command.single"

	RuleIssueNoInputs       Rule = "issue.no_inputs"
	RuleIssueOneOutput      Rule = "issue.one_output"
	RuleIssuePositiveAmount Rule = "issue.positive_amount"
	RuleIssueFutureStart    Rule = "issue.future_start"
	RuleIssueSigners        Rule = "issue.signers"

	RuleUpdateOneInput        Rule = "update.one_input"
	RuleUpdateOneOutput       Rule = "update.one_output"
	RuleUpdateAmountChanged   Rule = "update.amount_changed"
	RuleUpdateOthersUnchanged Rule = "update.others_unchanged"
	RuleUpdateSigners         Rule = "update.signers"

	RuleTransferOneInput        Rule = "transfer.one_input"
	RuleTransferOneOutput       Rule = "transfer.one_output"
	RuleTransferBankDiffers     Rule = "transfer.bank_differs"
	RuleTransferCustomerDiffers Rule = "transfer.customer_differs"
	RuleTransferFutureStart     Rule = "transfer.future_start"
	RuleTransferIDUnchanged     Rule = "transfer.id_unchanged"
	RuleTransferSigners         Rule = "transfer.signers"

	RuleAccumulateUnimplemented Rule = "accumulate.unimplemented"

	RuleCancelOneInput  Rule = "cancel.one_input"
	RuleCancelNoOutputs Rule = "cancel.no_outputs"
	RuleCancelSigners   Rule = "cancel.signers"
)

// Protocol messages. Shared between rules that report the same condition.
const (
	MsgSingleCommand      = "exactly one transition command required"
	MsgNoInputs           = "no inputs allowed"
	MsgOneInput           = "exactly one input required"
	MsgOneOutput          = "exactly one output required"
	MsgNoOutputs          = "no outputs allowed"
	MsgPositiveAmount     = "amount must be positive"
	MsgFutureStart        = "start date must be in the future"
	MsgAmountChanged      = "amount must change"
	MsgOthersUnchanged    = "other properties must not change"
	MsgBankDiffers        = "bank must differ"
	MsgCustomerDiffers    = "customer must differ"
	MsgIDUnchanged        = "id must not change"
	MsgParticipantsSign   = "both bank and customer must sign"
	MsgTransferSigners    = "old and new bank and customer must all sign"
	MsgAccumulateNotBuilt = "accumulate transition is not implemented"
)

type ruleSpec struct {
	code    Code
	message string
	legacy  string // message text of the legacy contract
}

var rules = map[Rule]ruleSpec{
	RuleSingleCommand: {CodeStructural, MsgSingleCommand,
		"Required com.assetsaving.contracts.AssetSavingContract.Commands command"},

	RuleIssueNoInputs: {CodeStructural, MsgNoInputs,
		"No inputs should be consumed when issuing an AssetSaving."},
	RuleIssueOneOutput: {CodeStructural, MsgOneOutput,
		"Only one output state should be created when issuing an AssetSaving."},
	RuleIssuePositiveAmount: {CodeFieldInvariant, MsgPositiveAmount,
		"The Amount of the accumulation should be larger than 0."},
	RuleIssueFutureStart: {CodeFieldInvariant, MsgFutureStart,
		"The start day should be later than today."},
	RuleIssueSigners: {CodeAuthorization, MsgParticipantsSign,
		"Both bank and customer together only may sign AssetSaving issue transaction."},

	RuleUpdateOneInput: {CodeStructural, MsgOneInput,
		"An AssetSaving update transaction should only consume one input state."},
	RuleUpdateOneOutput: {CodeStructural, MsgOneOutput,
		"An AssetSaving update transaction should only create one output state."},
	RuleUpdateAmountChanged: {CodeFieldInvariant, MsgAmountChanged,
		"The Amount of the accumulation should be changed."},
	RuleUpdateOthersUnchanged: {CodeFieldInvariant, MsgOthersUnchanged,
		"Other properties except accumulation must not be changed."},
	RuleUpdateSigners: {CodeAuthorization, MsgParticipantsSign,
		"Both bank and customer together only may sign AssetSaving update transaction."},

	RuleTransferOneInput: {CodeStructural, MsgOneInput,
		"An AssetSaving transfer transaction should only consume one input state."},
	RuleTransferOneOutput: {CodeStructural, MsgOneOutput,
		"An AssetSaving transfer transaction should only create one output state."},
	RuleTransferBankDiffers: {CodeFieldInvariant, MsgBankDiffers,
		"The bank of the input state should be different from the output state."},
	RuleTransferCustomerDiffers: {CodeFieldInvariant, MsgCustomerDiffers,
		"The customer of the input state should be different from the output state."},
	RuleTransferFutureStart: {CodeFieldInvariant, MsgFutureStart,
		"The start day should be later than today."},
	RuleTransferIDUnchanged: {CodeFieldInvariant, MsgIDUnchanged,
		"The linearId must not be changed."},
	RuleTransferSigners: {CodeAuthorization, MsgTransferSigners,
		"The old and new customer account and, old and new bank must sign an AssetSaving transfer transaction"},

	RuleAccumulateUnimplemented: {CodeUnimplemented, MsgAccumulateNotBuilt, MsgAccumulateNotBuilt},

	RuleCancelOneInput: {CodeStructural, MsgOneInput,
		"Only one input state should be consumed when cancel an AssetSaving."},
	RuleCancelNoOutputs: {CodeStructural, MsgNoOutputs,
		"No output state should be created when cancel an AssetSaving."},
	RuleCancelSigners: {CodeAuthorization, MsgParticipantsSign,
		"Both bank and customer together only may sign the AssetSaving cancel transaction."},
}

// Code returns the rejection category of the rule.
func (r Rule) Code() Code {
	return rules[r].code
}

// Message returns the protocol message of the rule.
func (r Rule) Message() string {
	return rules[r].message
}

// LegacyMessage returns the legacy contract's message for the rule.
func (r Rule) LegacyMessage() string {
	return rules[r].legacy
}
