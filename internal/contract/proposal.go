package contract

import (
	"fmt"
	"time"

	"github.com/roach88/assetsaving/internal/record"
	"github.com/roach88/assetsaving/internal/signers"
)

// Proposal is a candidate ledger update: the records it consumes, the
// records it produces, the declared transition and the keys that signed.
//
// Consumed and Produced are expected to hold zero or one record; the
// validator reports any other cardinality rather than assuming it.
type Proposal struct {
	Consumed   []record.AssetSaving
	Produced   []record.AssetSaving
	Transition Transition
	Signers    signers.KeySet

	// EvalTime is the moment "future" is measured against.
	EvalTime time.Time
}

// SigningPayload returns the canonical bytes parties sign.
// Signers are excluded: the payload must exist before anyone signs it.
func (p Proposal) SigningPayload() ([]byte, error) {
	consumed, err := marshalRecords(p.Consumed)
	if err != nil {
		return nil, fmt.Errorf("consumed: %w", err)
	}
	produced, err := marshalRecords(p.Produced)
	if err != nil {
		return nil, fmt.Errorf("produced: %w", err)
	}

	return record.NewObject().
		String("version", record.SchemaVersion).
		String("transition", TransitionName(p.Transition)).
		String("eval_time", record.FormatTime(p.EvalTime)).
		Array("consumed", consumed).
		Array("produced", produced).
		Bytes()
}

// Fingerprint is the content-addressed proposal id.
func (p Proposal) Fingerprint() (string, error) {
	payload, err := p.SigningPayload()
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return record.HashWithDomain(record.DomainProposal, payload), nil
}

func marshalRecords(rs []record.AssetSaving) ([][]byte, error) {
	out := make([][]byte, 0, len(rs))
	for i, r := range rs {
		b, err := record.MarshalSigned(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}
