package gate

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/assetsaving/internal/contract"
)

// Journal records verdicts. Implemented by *store.Store.
type Journal interface {
	WriteVerdict(ctx context.Context, v contract.Verdict) error
}

// Gate verifies proposals and records the outcome.
//
// Thread-safety model:
//   - Check and CheckAll are safe from any goroutine
//   - Options must not be changed after New
type Gate struct {
	verifier *contract.Verifier
	clock    *Clock
	journal  Journal
	logger   *slog.Logger
	legacy   bool
}

// Option configures a Gate.
type Option func(*Gate)

// WithVerifier sets the verifier. Default: contract.New().
func WithVerifier(v *contract.Verifier) Option {
	return func(g *Gate) {
		g.verifier = v
	}
}

// WithClock sets the logical clock. Default: NewClock().
func WithClock(c *Clock) Option {
	return func(g *Gate) {
		g.clock = c
	}
}

// WithJournal appends every verdict to j.
func WithJournal(j Journal) Option {
	return func(g *Gate) {
		g.journal = j
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = l
	}
}

// WithLegacyMessages reports rejections with the legacy contract texts
// instead of the current protocol messages.
func WithLegacyMessages(on bool) Option {
	return func(g *Gate) {
		g.legacy = on
	}
}

// New creates a Gate.
func New(opts ...Option) *Gate {
	g := &Gate{}
	for _, opt := range opts {
		opt(g)
	}
	if g.verifier == nil {
		g.verifier = contract.New()
	}
	if g.clock == nil {
		g.clock = NewClock()
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Check verifies one proposal.
// A rejection is reported in the Verdict; err is non-nil only when the
// decision could not be made or recorded.
func (g *Gate) Check(ctx context.Context, p contract.Proposal) (contract.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return contract.Verdict{}, err
	}
	return g.check(ctx, g.clock.Next(), p)
}

// CheckAll verifies a batch concurrently. Verdicts are returned in input
// order with consecutive seqs. The first infrastructure error cancels the
// rest of the batch.
func (g *Gate) CheckAll(ctx context.Context, ps []contract.Proposal) ([]contract.Verdict, error) {
	if len(ps) == 0 {
		return []contract.Verdict{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	first := g.clock.Reserve(len(ps))
	verdicts := make([]contract.Verdict, len(ps))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := range ps {
		i := i
		seq := first + int64(i)
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := g.check(ctx, seq, ps[i])
			if err != nil {
				return err
			}
			verdicts[i] = v
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return verdicts, nil
}

func (g *Gate) check(ctx context.Context, seq int64, p contract.Proposal) (contract.Verdict, error) {
	id, err := p.Fingerprint()
	if err != nil {
		return contract.Verdict{}, fmt.Errorf("check seq %d: %w", seq, err)
	}

	v := contract.Verdict{
		Seq:        seq,
		ProposalID: id,
		Transition: contract.TransitionName(p.Transition),
		EvalTime:   p.EvalTime.UTC(),
	}

	verr := g.verifier.Verify(p)
	if verr == nil {
		v.Accepted = true
		v.Unchecked = g.verifier.Unchecked(p.Transition)
	} else {
		rej, ok := contract.AsRejection(verr)
		if !ok {
			return contract.Verdict{}, fmt.Errorf("check seq %d: %w", seq, verr)
		}
		v.Code = rej.Code
		v.Rule = rej.Rule
		v.Message = rej.Message
		if g.legacy {
			v.Message = rej.LegacyMessage()
		}
		g.logger.Debug("rejection details",
			"seq", seq,
			"proposal", id,
			"details", rej.Details,
		)
	}

	g.log(ctx, v)

	if g.journal != nil {
		if err := g.journal.WriteVerdict(ctx, v); err != nil {
			return contract.Verdict{}, fmt.Errorf("journal verdict %d: %w", seq, err)
		}
	}
	return v, nil
}

func (g *Gate) log(ctx context.Context, v contract.Verdict) {
	switch {
	case v.Unchecked:
		g.logger.WarnContext(ctx, "accumulate accepted without checks",
			"seq", v.Seq,
			"proposal", v.ProposalID,
			"policy", g.verifier.AccumulatePolicy().String(),
		)
	case v.Accepted:
		g.logger.InfoContext(ctx, "verdict accepted",
			"seq", v.Seq,
			"proposal", v.ProposalID,
			"transition", v.Transition,
		)
	default:
		g.logger.InfoContext(ctx, "verdict rejected",
			"seq", v.Seq,
			"proposal", v.ProposalID,
			"transition", v.Transition,
			"rule", string(v.Rule),
			"code", string(v.Code),
			"message", v.Message,
		)
	}
}
