package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/assetsaving/internal/contract"
	"github.com/roach88/assetsaving/internal/record"
	"github.com/roach88/assetsaving/internal/signers"
	"github.com/roach88/assetsaving/internal/wire"
)

// SignersOptions holds flags for the signers command.
type SignersOptions struct {
	*RootOptions
	DeriveKeys bool
}

// SignerEntry is one key of a signer set with its document alias.
type SignerEntry struct {
	Alias string `json:"alias,omitempty"`
	Key   string `json:"key"`
}

// SignersResult describes the required signer set of a proposal.
type SignersResult struct {
	File       string        `json:"file"`
	Transition string        `json:"transition"`
	Required   []SignerEntry `json:"required"`
	Missing    []SignerEntry `json:"missing"`
	Unexpected []SignerEntry `json:"unexpected"`
	Satisfied  bool          `json:"satisfied"`
}

// NewSignersCommand creates the signers command.
func NewSignersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SignersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "signers <proposal-file>",
		Short: "Show the required signer set of a proposal",
		Long: `Show the exact set of keys that must sign a proposal, and how the
document's signers compare with it.

Accumulate proposals, and proposals missing the records their rule needs,
have no required set.

Exit codes:
  0 - Required set derived
  1 - No required set for this proposal
  2 - Command error

Examples:
  assetsaving signers transfer.yaml
  assetsaving signers --format json transfer.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSigners(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.DeriveKeys, "derive-keys", false, "derive keys from aliases for parties without one (test documents only)")

	return cmd
}

func runSigners(opts *SignersOptions, file string, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}
	out := newFormatter(opts.RootOptions, cmd)

	decoder := &wire.Decoder{
		Currencies: cfg.Allowed(),
		DeriveKeys: opts.DeriveKeys,
	}
	doc, err := wire.LoadFile(file)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load %s", file), err)
	}
	p, err := decoder.Proposal(doc)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to decode %s", file), err)
	}
	dir, err := decoder.Directory(doc.Parties)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to decode %s", file), err)
	}

	transition := contract.TransitionName(p.Transition)
	required, ok := contract.RequiredSigners(p)
	if !ok {
		msg := fmt.Sprintf("no required signer set for %s proposal", transition)
		if err := out.Error("E_NO_SIGNERS", msg, map[string]string{"file": file}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, msg)
	}

	result := SignersResult{
		File:       file,
		Transition: transition,
		Required:   signerEntries(dir, required),
		Missing:    signerEntries(dir, required.Difference(p.Signers)),
		Unexpected: signerEntries(dir, p.Signers.Difference(required)),
		Satisfied:  p.Signers.Equal(required),
	}

	if opts.Format == "json" {
		return out.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s requires %d signer(s):\n", transition, len(result.Required))
	printEntries(w, "  ", result.Required)
	if len(result.Missing) > 0 {
		fmt.Fprintln(w, "Missing:")
		printEntries(w, "  ", result.Missing)
	}
	if len(result.Unexpected) > 0 {
		fmt.Fprintln(w, "Unexpected:")
		printEntries(w, "  ", result.Unexpected)
	}
	if result.Satisfied {
		fmt.Fprintln(w, "✓ signers match")
	} else {
		fmt.Fprintln(w, "✗ signers do not match")
	}
	return nil
}

// signerEntries lists the keys of set in key order, labelled with aliases
// where the directory knows them.
func signerEntries(dir *wire.Directory, set signers.KeySet) []SignerEntry {
	entries := make([]SignerEntry, 0, set.Len())
	for _, k := range set.Sorted() {
		entries = append(entries, signerEntry(dir, k))
	}
	return entries
}

func signerEntry(dir *wire.Directory, k record.PublicKey) SignerEntry {
	alias, _ := dir.AliasOf(k)
	return SignerEntry{Alias: alias, Key: k.String()}
}

func printEntries(w io.Writer, indent string, entries []SignerEntry) {
	for _, e := range entries {
		if e.Alias == "" {
			fmt.Fprintf(w, "%s%s\n", indent, e.Key)
			continue
		}
		fmt.Fprintf(w, "%s%-12s %s\n", indent, e.Alias, e.Key)
	}
}
