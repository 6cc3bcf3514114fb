package contract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/assetsaving/internal/record"
	"github.com/roach88/assetsaving/internal/signers"
)

func TestSigningPayload_Layout(t *testing.T) {
	p := issueProposal(100, keys(bankA, customerB))

	payload, err := p.SigningPayload()
	require.NoError(t, err)

	signed, err := record.MarshalSigned(p.Produced[0])
	require.NoError(t, err)

	want := fmt.Sprintf(`{"version":"1","transition":"issue","eval_time":"2026-10-16T09:00:00Z","consumed":[],"produced":[%s]}`, signed)
	assert.Equal(t, want, string(payload))
}

func TestSigningPayload_ExcludesSigners(t *testing.T) {
	a := issueProposal(100, keys(bankA, customerB))
	b := issueProposal(100, keys(outsiderE))

	pa, err := a.SigningPayload()
	require.NoError(t, err)
	pb, err := b.SigningPayload()
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}

func TestFingerprint(t *testing.T) {
	p := issueProposal(100, keys(bankA, customerB))

	id1, err := p.Fingerprint()
	require.NoError(t, err)
	id2, err := p.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
	assert.Len(t, id1, 64)

	payload, err := p.SigningPayload()
	require.NoError(t, err)
	assert.Equal(t, record.HashWithDomain(record.DomainProposal, payload), id1)

	changed := issueProposal(101, keys(bankA, customerB))
	id3, err := changed.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, id1, id3)

	retyped := p
	retyped.Transition = Update{}
	id4, err := retyped.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, id1, id4)
}

func TestSigningPayload_SignAndVerify(t *testing.T) {
	p := transferProposal(signers.KeySet{})
	payload, err := p.SigningPayload()
	require.NoError(t, err)

	var sigs []signers.Signature
	for _, alias := range []string{"bank-a", "customer-b", "bank-c", "customer-d"} {
		sigs = append(sigs, signers.Sign(signers.KeyFromSeed(alias), payload))
	}
	p.Signers, err = signers.Verify(payload, sigs)
	require.NoError(t, err)
	assert.NoError(t, Verify(p))
}

func TestRequiredSigners(t *testing.T) {
	in := issued(100)
	out := in.WithCustody(bankC, customerD, now.AddDate(0, 0, 60), 100)

	tests := []struct {
		name string
		p    Proposal
		want signers.KeySet
		ok   bool
	}{
		{"issue", Proposal{Transition: Issue{}, Produced: []record.AssetSaving{in}}, keys(bankA, customerB), true},
		{"update", Proposal{Transition: Update{}, Consumed: []record.AssetSaving{in}, Produced: []record.AssetSaving{in}}, keys(bankA, customerB), true},
		{"transfer", Proposal{Transition: Transfer{}, Consumed: []record.AssetSaving{in}, Produced: []record.AssetSaving{out}}, keys(bankA, customerB, bankC, customerD), true},
		{"cancel", Proposal{Transition: Cancel{}, Consumed: []record.AssetSaving{in}}, keys(bankA, customerB), true},
		{"accumulate", Proposal{Transition: Accumulate{}, Consumed: []record.AssetSaving{in}}, signers.KeySet{}, false},
		{"none", Proposal{Consumed: []record.AssetSaving{in}}, signers.KeySet{}, false},
		{"issue without output", Proposal{Transition: Issue{}}, signers.KeySet{}, false},
		{"transfer without input", Proposal{Transition: Transfer{}, Produced: []record.AssetSaving{out}}, signers.KeySet{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RequiredSigners(tt.p)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestParseTransition(t *testing.T) {
	for _, tr := range Transitions {
		got, err := ParseTransition(tr.Name())
		require.NoError(t, err)
		assert.Equal(t, tr, got)
	}

	_, err := ParseTransition("Issue")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown transition"))
}
