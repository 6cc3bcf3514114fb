package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/assetsaving/internal/contract"
)

var evalTime = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func acceptedVerdict(seq int64, proposalID string) contract.Verdict {
	return contract.Verdict{
		Seq:        seq,
		ProposalID: proposalID,
		Transition: "issue",
		Accepted:   true,
		EvalTime:   evalTime,
	}
}

func rejectedVerdict(seq int64, proposalID string) contract.Verdict {
	return contract.Verdict{
		Seq:        seq,
		ProposalID: proposalID,
		Transition: "transfer",
		Code:       contract.CodeAuthorization,
		Rule:       contract.RuleTransferSigners,
		Message:    contract.MsgTransferSigners,
		EvalTime:   evalTime,
	}
}

func TestWriteVerdict_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	want := []contract.Verdict{
		acceptedVerdict(1, "p1"),
		rejectedVerdict(2, "p2"),
		{Seq: 3, ProposalID: "p3", Transition: "accumulate", Accepted: true, Unchecked: true, EvalTime: evalTime},
	}
	for _, v := range want {
		require.NoError(t, s.WriteVerdict(ctx, v))
	}

	got, err := s.ReadVerdicts(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteVerdict_IdempotentOnSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteVerdict(ctx, acceptedVerdict(1, "first")))
	require.NoError(t, s.WriteVerdict(ctx, acceptedVerdict(1, "first")))

	got, err := s.ReadVerdicts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestWriteVerdict_SeqConflict(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteVerdict(ctx, acceptedVerdict(1, "first")))

	err := s.WriteVerdict(ctx, rejectedVerdict(1, "second"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSeqConflict))
	assert.Contains(t, err.Error(), "journaled proposal first")

	later := acceptedVerdict(1, "first")
	later.EvalTime = evalTime.Add(time.Hour)
	assert.True(t, errors.Is(s.WriteVerdict(ctx, later), ErrSeqConflict))

	got, err := s.ReadVerdicts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].ProposalID)
	assert.True(t, got[0].Accepted)
}

func TestReadVerdicts_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, seq := range []int64{5, 2, 9, 1} {
		require.NoError(t, s.WriteVerdict(ctx, acceptedVerdict(seq, "p")))
	}

	got, err := s.ReadVerdicts(ctx)
	require.NoError(t, err)
	seqs := make([]int64, len(got))
	for i, v := range got {
		seqs[i] = v.Seq
	}
	assert.Equal(t, []int64{1, 2, 5, 9}, seqs)
}

func TestReadVerdicts_EmptyIsNotNil(t *testing.T) {
	s := createTestStore(t)

	got, err := s.ReadVerdicts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReadVerdictsByProposal(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteVerdict(ctx, rejectedVerdict(1, "p1")))
	require.NoError(t, s.WriteVerdict(ctx, acceptedVerdict(2, "p2")))
	require.NoError(t, s.WriteVerdict(ctx, rejectedVerdict(3, "p1")))

	got, err := s.ReadVerdictsByProposal(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].Seq)
	assert.Equal(t, int64(3), got[1].Seq)

	none, err := s.ReadVerdictsByProposal(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReadVerdict(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteVerdict(ctx, rejectedVerdict(7, "p7")))

	v, err := s.ReadVerdict(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, contract.RuleTransferSigners, v.Rule)
	assert.Equal(t, contract.CodeAuthorization, v.Code)

	_, err = s.ReadVerdict(ctx, 8)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestLastSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq, err := s.LastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq)

	require.NoError(t, s.WriteVerdict(ctx, acceptedVerdict(4, "p")))
	require.NoError(t, s.WriteVerdict(ctx, acceptedVerdict(2, "p")))

	seq, err = s.LastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), seq)
}

func TestWriteVerdict_EvalTimeStoredInUTC(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	v := acceptedVerdict(1, "p")
	v.EvalTime = evalTime.In(time.FixedZone("CET", 3600))
	require.NoError(t, s.WriteVerdict(ctx, v))

	got, err := s.ReadVerdict(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, evalTime, got.EvalTime)
}
