package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/assetsaving/internal/config"
	"github.com/roach88/assetsaving/internal/contract"
	"github.com/roach88/assetsaving/internal/gate"
	"github.com/roach88/assetsaving/internal/store"
	"github.com/roach88/assetsaving/internal/wire"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Database   string // journal path, overrides config
	DeriveKeys bool   // alias-derived keys for parties without one
}

// FileVerdict is a verdict tagged with the proposal file it came from.
type FileVerdict struct {
	File string `json:"file"`
	contract.Verdict
	Outcome string `json:"outcome"`
}

// VerifyResult holds the outcome of a verify run.
type VerifyResult struct {
	Verdicts []FileVerdict `json:"verdicts"`
	Accepted int           `json:"accepted"`
	Rejected int           `json:"rejected"`
	Total    int           `json:"total"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify <proposal-file>...",
		Short: "Verify proposal documents",
		Long: `Verify one or more proposal documents against the contract rules.

Each file holds one proposal (YAML or JSON). Proposals are verified
concurrently and reported in argument order. With --db, or a journal
path in the config, every verdict is appended to the journal.

Exit codes:
  0 - All proposals accepted
  1 - One or more proposals rejected
  2 - Command error (unreadable document, bad config, journal failure)

Examples:
  assetsaving verify issue.yaml
  assetsaving verify --db ./verdicts.db update.yaml transfer.yaml
  assetsaving verify --derive-keys --format json demo.yaml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite verdict journal")
	cmd.Flags().BoolVar(&opts.DeriveKeys, "derive-keys", false, "derive keys from aliases for parties without one (test documents only)")

	return cmd
}

func runVerify(ctx context.Context, opts *VerifyOptions, files []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}
	out := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(cmd.ErrOrStderr(), cfg, opts.Verbose)

	decoder := &wire.Decoder{
		Currencies: cfg.Allowed(),
		DeriveKeys: opts.DeriveKeys,
	}

	proposals := make([]contract.Proposal, len(files))
	for i, file := range files {
		p, err := loadProposal(decoder, file)
		if err != nil {
			return err
		}
		out.VerboseLog("decoded %s: %s", file, contract.TransitionName(p.Transition))
		proposals[i] = p
	}

	gateOpts := []gate.Option{
		gate.WithVerifier(contract.New(contract.WithAccumulatePolicy(cfg.Policy()))),
		gate.WithLogger(logger),
		gate.WithLegacyMessages(cfg.LegacyMessages),
	}

	if path := journalPath(opts.Database, cfg); path != "" {
		st, err := store.Open(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing journal", "error", closeErr)
			}
		}()

		last, err := st.LastSeq(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read journal", err)
		}
		gateOpts = append(gateOpts, gate.WithJournal(st), gate.WithClock(gate.NewClockAt(last)))
	}

	verdicts, err := gate.New(gateOpts...).CheckAll(ctx, proposals)
	if err != nil {
		return WrapExitError(ExitCommandError, "verification failed", err)
	}

	result := VerifyResult{
		Verdicts: make([]FileVerdict, len(verdicts)),
		Total:    len(verdicts),
	}
	for i, v := range verdicts {
		result.Verdicts[i] = FileVerdict{File: files[i], Verdict: v, Outcome: v.Outcome()}
		if v.Accepted {
			result.Accepted++
		} else {
			result.Rejected++
		}
	}

	if opts.Format == "json" {
		return outputVerifyJSON(cmd.OutOrStdout(), result)
	}
	return outputVerifyText(cmd.OutOrStdout(), result)
}

// loadProposal reads and decodes one proposal document.
func loadProposal(decoder *wire.Decoder, file string) (contract.Proposal, error) {
	doc, err := wire.LoadFile(file)
	if err != nil {
		return contract.Proposal{}, WrapExitError(ExitCommandError, fmt.Sprintf("failed to load %s", file), err)
	}
	p, err := decoder.Proposal(doc)
	if err != nil {
		return contract.Proposal{}, WrapExitError(ExitCommandError, fmt.Sprintf("failed to decode %s", file), err)
	}
	return p, nil
}

// journalPath returns the --db flag if set, else the configured journal.
func journalPath(flag string, cfg config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Journal
}

func outputVerifyJSON(w io.Writer, result VerifyResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if result.Rejected > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_REJECTED",
			Message: fmt.Sprintf("%d proposal(s) rejected", result.Rejected),
		}
	}
	if err := writeJSON(w, response); err != nil {
		return err
	}
	if result.Rejected > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d proposal(s) rejected", result.Rejected))
	}
	return nil
}

func outputVerifyText(w io.Writer, result VerifyResult) error {
	for _, fv := range result.Verdicts {
		switch fv.Outcome {
		case "rejected":
			fmt.Fprintf(w, "✗ [%d] %s: %s rejected\n", fv.Seq, fv.File, fv.Transition)
			fmt.Fprintf(w, "  %s %s: %s\n", fv.Code, fv.Rule, fv.Message)
		case "unchecked":
			fmt.Fprintf(w, "! [%d] %s: %s accepted without checks\n", fv.Seq, fv.File, fv.Transition)
		default:
			fmt.Fprintf(w, "✓ [%d] %s: %s accepted\n", fv.Seq, fv.File, fv.Transition)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary: %d accepted, %d rejected, %d total\n", result.Accepted, result.Rejected, result.Total)

	if result.Rejected > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d proposal(s) rejected", result.Rejected))
	}
	return nil
}
