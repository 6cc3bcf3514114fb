package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/assetsaving/internal/contract"
	"github.com/roach88/assetsaving/internal/record"
)

// ErrSeqConflict is returned when a seq is already journaled with a
// different verdict.
var ErrSeqConflict = errors.New("seq already journaled with a different verdict")

// WriteVerdict appends a verdict to the journal.
// Writing the same verdict twice is a no-op. Writing a different verdict
// under an existing seq fails with ErrSeqConflict and keeps the stored row.
func (s *Store) WriteVerdict(ctx context.Context, v contract.Verdict) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO verdicts
		(seq, proposal_id, transition, accepted, unchecked, code, rule, message, eval_time, contract_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(seq) DO NOTHING
	`,
		v.Seq,
		v.ProposalID,
		v.Transition,
		v.Accepted,
		v.Unchecked,
		string(v.Code),
		string(v.Rule),
		v.Message,
		record.FormatTime(v.EvalTime),
		record.ContractVersion,
	)
	if err != nil {
		return fmt.Errorf("write verdict %d: %w", v.Seq, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write verdict %d: %w", v.Seq, err)
	}
	if n > 0 {
		return nil
	}

	existing, err := s.ReadVerdict(ctx, v.Seq)
	if err != nil {
		return fmt.Errorf("write verdict %d: read existing: %w", v.Seq, err)
	}
	if !sameVerdict(existing, v) {
		return fmt.Errorf("write verdict %d: %w (journaled proposal %s)", v.Seq, ErrSeqConflict, existing.ProposalID)
	}
	return nil
}

func sameVerdict(a, b contract.Verdict) bool {
	return a.Seq == b.Seq &&
		a.ProposalID == b.ProposalID &&
		a.Transition == b.Transition &&
		a.Accepted == b.Accepted &&
		a.Unchecked == b.Unchecked &&
		a.Code == b.Code &&
		a.Rule == b.Rule &&
		a.Message == b.Message &&
		a.EvalTime.Equal(b.EvalTime)
}

// ReadVerdicts returns every journaled verdict ordered by seq ASC.
// Returns an empty slice (not nil) when the journal is empty.
func (s *Store) ReadVerdicts(ctx context.Context) ([]contract.Verdict, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, proposal_id, transition, accepted, unchecked, code, rule, message, eval_time
		FROM verdicts
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query verdicts: %w", err)
	}
	return scanVerdicts(rows)
}

// ReadVerdictsByProposal returns the verdicts for one proposal fingerprint
// ordered by seq ASC. A proposal checked twice has two rows.
func (s *Store) ReadVerdictsByProposal(ctx context.Context, proposalID string) ([]contract.Verdict, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, proposal_id, transition, accepted, unchecked, code, rule, message, eval_time
		FROM verdicts
		WHERE proposal_id = ?
		ORDER BY seq ASC
	`, proposalID)
	if err != nil {
		return nil, fmt.Errorf("query verdicts for %s: %w", proposalID, err)
	}
	return scanVerdicts(rows)
}

// ReadVerdict retrieves a single verdict by seq.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadVerdict(ctx context.Context, seq int64) (contract.Verdict, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT seq, proposal_id, transition, accepted, unchecked, code, rule, message, eval_time
		FROM verdicts
		WHERE seq = ?
	`, seq)
	return scanVerdict(row)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanVerdicts(rows *sql.Rows) ([]contract.Verdict, error) {
	defer rows.Close()

	verdicts := []contract.Verdict{}
	for rows.Next() {
		v, err := scanVerdict(rows)
		if err != nil {
			return nil, err
		}
		verdicts = append(verdicts, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verdicts: %w", err)
	}
	return verdicts, nil
}

func scanVerdict(row scanner) (contract.Verdict, error) {
	var (
		v        contract.Verdict
		code     string
		rule     string
		evalTime string
	)
	err := row.Scan(&v.Seq, &v.ProposalID, &v.Transition, &v.Accepted, &v.Unchecked,
		&code, &rule, &v.Message, &evalTime)
	if err != nil {
		return contract.Verdict{}, err
	}
	v.Code = contract.Code(code)
	v.Rule = contract.Rule(rule)
	v.EvalTime, err = time.Parse(time.RFC3339Nano, evalTime)
	if err != nil {
		return contract.Verdict{}, fmt.Errorf("verdict %d: parse eval_time: %w", v.Seq, err)
	}
	return v, nil
}
