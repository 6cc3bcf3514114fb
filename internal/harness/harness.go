package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/roach88/assetsaving/internal/contract"
	"github.com/roach88/assetsaving/internal/gate"
	"github.com/roach88/assetsaving/internal/record"
	"github.com/roach88/assetsaving/internal/signers"
	"github.com/roach88/assetsaving/internal/store"
	"github.com/roach88/assetsaving/internal/testutil"
	"github.com/roach88/assetsaving/internal/wire"
)

// Harness holds the per-run state of a scenario.
type Harness struct {
	store   *store.Store
	gate    *gate.Gate
	decoder *wire.Decoder
	dir     *wire.Directory
	records map[string]record.AssetSaving
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory journal. Record ids come
// from testutil.SequentialIDs and keys from alias derivation, so the same
// scenario always produces the same proposals.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory journal: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests

	policy := contract.AccumulateUnchecked
	if scenario.AccumulatePolicy == "reject" {
		policy = contract.AccumulateRejected
	}

	h := &Harness{
		store: st,
		gate: gate.New(
			gate.WithVerifier(contract.New(contract.WithAccumulatePolicy(policy))),
			gate.WithJournal(st),
			gate.WithLogger(logger),
			gate.WithLegacyMessages(scenario.LegacyMessages),
		),
		decoder: &wire.Decoder{
			IDs:        testutil.NewSequentialIDs(),
			DeriveKeys: true,
		},
		records: make(map[string]record.AssetSaving),
		logger:  logger,
	}

	if err := h.resolve(scenario); err != nil {
		return nil, err
	}

	ctx := context.Background()
	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, scenario, i, step, result); err != nil {
			return nil, err
		}
	}

	if err := h.readTrace(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// resolve builds the directory and records in name order.
func (h *Harness) resolve(s *Scenario) error {
	dir, err := h.decoder.Directory(s.Parties)
	if err != nil {
		return fmt.Errorf("failed to build party directory: %w", err)
	}
	h.dir = dir

	names := make([]string, 0, len(s.Records))
	for name := range s.Records {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r, err := h.decoder.Record(dir, s.Records[name])
		if err != nil {
			return fmt.Errorf("records.%s: %w", name, err)
		}
		h.records[name] = r
	}
	return nil
}

func (h *Harness) executeStep(ctx context.Context, s *Scenario, i int, step Step, result *Result) error {
	p, err := h.proposal(s, step)
	if err != nil {
		return fmt.Errorf("step %d: %w", i, err)
	}

	v, err := h.gate.Check(ctx, p)
	if err != nil {
		return fmt.Errorf("step %d: %w", i, err)
	}

	switch {
	case step.Expect.Accept && !v.Accepted:
		result.AddError(fmt.Sprintf("step %d (%s): expected accept, got rejected: %s", i, v.Transition, v.Message))
	case !step.Expect.Accept && v.Accepted:
		result.AddError(fmt.Sprintf("step %d (%s): expected reject, got %s", i, v.Transition, v.Outcome()))
	case !step.Expect.Accept && step.Expect.Message != "" && step.Expect.Message != v.Message:
		result.AddError(fmt.Sprintf("step %d (%s): expected message %q, got %q", i, v.Transition, step.Expect.Message, v.Message))
	}

	h.logger.Info("step completed",
		"step", i,
		"seq", v.Seq,
		"outcome", v.Outcome(),
	)
	return nil
}

func (h *Harness) proposal(s *Scenario, step Step) (contract.Proposal, error) {
	var p contract.Proposal
	if step.Transition != "" {
		t, err := contract.ParseTransition(step.Transition)
		if err != nil {
			return p, err
		}
		p.Transition = t
	}

	p.EvalTime = s.EvalTime.Time
	if !step.EvalTime.IsZero() {
		p.EvalTime = step.EvalTime.Time
	}

	for _, name := range step.Consumed {
		p.Consumed = append(p.Consumed, h.records[name])
	}
	for _, name := range step.Produced {
		p.Produced = append(p.Produced, h.records[name])
	}

	keys := make([]record.PublicKey, 0, len(step.Signers))
	for _, ref := range step.Signers {
		k, err := h.dir.Key(ref)
		if err != nil {
			return p, err
		}
		keys = append(keys, k)
	}
	p.Signers = signers.NewKeySet(keys...)
	if err := h.decoder.CheckIssuance(p); err != nil {
		return p, err
	}
	return p, nil
}

// readTrace rebuilds the trace from the journal, one event per step.
func (h *Harness) readTrace(ctx context.Context, result *Result) error {
	verdicts, err := h.store.ReadVerdicts(ctx)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	for i, v := range verdicts {
		result.AddVerdict(i, v)
	}
	return nil
}
