package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/assetsaving/internal/contract"
	"github.com/roach88/assetsaving/internal/record"
	"github.com/roach88/assetsaving/internal/store"
)

// JournalOptions holds flags for the journal command.
type JournalOptions struct {
	*RootOptions
	Database string
	Proposal string // optional - filter to one proposal fingerprint
	Seq      int64  // optional - show the single verdict with this seq
}

// JournalResult holds the listed verdicts.
type JournalResult struct {
	Verdicts []contract.Verdict `json:"verdicts"`
	Total    int                `json:"total"`
}

// NewJournalCommand creates the journal command.
func NewJournalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JournalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List journaled verdicts",
		Long: `List the verdicts recorded in a journal, oldest first.

Examples:
  assetsaving journal --db ./verdicts.db
  assetsaving journal --db ./verdicts.db --proposal 3b1f...
  assetsaving journal --db ./verdicts.db --seq 7
  assetsaving journal --db ./verdicts.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournal(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite verdict journal (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Proposal, "proposal", "", "filter to one proposal fingerprint")
	cmd.Flags().Int64Var(&opts.Seq, "seq", 0, "show the verdict with this seq")
	cmd.MarkFlagsMutuallyExclusive("proposal", "seq")

	return cmd
}

func runJournal(opts *JournalOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer st.Close()

	var verdicts []contract.Verdict
	switch {
	case cmd.Flags().Changed("seq"):
		var v contract.Verdict
		v, err = st.ReadVerdict(ctx, opts.Seq)
		if errors.Is(err, sql.ErrNoRows) {
			return NewExitError(ExitCommandError, fmt.Sprintf("no verdict with seq %d", opts.Seq))
		}
		verdicts = []contract.Verdict{v}
	case opts.Proposal != "":
		verdicts, err = st.ReadVerdictsByProposal(ctx, opts.Proposal)
	default:
		verdicts, err = st.ReadVerdicts(ctx)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	out := newFormatter(opts.RootOptions, cmd)
	if opts.Format == "json" {
		return out.Success(JournalResult{Verdicts: verdicts, Total: len(verdicts)})
	}
	if len(verdicts) == 0 {
		return out.Success("No verdicts found.")
	}

	w := cmd.OutOrStdout()
	for _, v := range verdicts {
		fmt.Fprintf(w, "[%d] %-10s %-9s %s %s\n",
			v.Seq, v.Transition, v.Outcome(), record.FormatTime(v.EvalTime), truncateID(v.ProposalID))
		if !v.Accepted {
			fmt.Fprintf(w, "     %s %s: %s\n", v.Code, v.Rule, v.Message)
		}
		if opts.Verbose {
			fmt.Fprintf(w, "     proposal: %s\n", v.ProposalID)
		}
	}
	fmt.Fprintf(w, "\nTotal: %d\n", len(verdicts))
	return nil
}

// truncateID truncates a long ID for display.
func truncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:8] + "..." + id[len(id)-8:]
}
