package contract

import "github.com/roach88/assetsaving/internal/signers"

// RequiredSigners returns the exact key set that must sign p.
//
// ok is false when no set can be derived: for Accumulate, for a missing
// transition, or when the records the rule needs are absent.
func RequiredSigners(p Proposal) (signers.KeySet, bool) {
	switch p.Transition.(type) {
	case Issue:
		if len(p.Produced) != 1 {
			return signers.KeySet{}, false
		}
		return signers.Participants(p.Produced[0]), true
	case Update, Cancel:
		if len(p.Consumed) != 1 {
			return signers.KeySet{}, false
		}
		return signers.Participants(p.Consumed[0]), true
	case Transfer:
		if len(p.Consumed) != 1 || len(p.Produced) != 1 {
			return signers.KeySet{}, false
		}
		return signers.ParticipantsOf(p.Consumed[0], p.Produced[0]), true
	case Accumulate:
		return signers.KeySet{}, false
	default:
		return signers.KeySet{}, false
	}
}
