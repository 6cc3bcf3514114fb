package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/assetsaving/internal/signers"
)

// KeyPair is a deterministic test key pair.
type KeyPair struct {
	Alias      string `json:"alias"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// NewKeygenCommand creates the keygen command.
func NewKeygenCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen <alias>",
		Short: "Print the deterministic test key pair of an alias",
		Long: `Print the Ed25519 key pair derived from an alias.

The same alias always yields the same pair, which is what --derive-keys
uses for parties without a key. These keys are for test documents only.

Examples:
  assetsaving keygen bank-a
  assetsaving keygen --format json customer-b`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeygen(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runKeygen(opts *RootOptions, alias string, cmd *cobra.Command) error {
	priv := signers.KeyFromSeed(alias)
	pub := signers.PublicKeyFromSeed(alias)
	pair := KeyPair{
		Alias:      alias,
		PublicKey:  pub.String(),
		PrivateKey: hex.EncodeToString(priv),
	}

	out := newFormatter(opts, cmd)
	if opts.Format == "json" {
		return out.Success(pair)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "alias:       %s\n", pair.Alias)
	fmt.Fprintf(w, "public key:  %s\n", pair.PublicKey)
	fmt.Fprintf(w, "private key: %s\n", pair.PrivateKey)
	out.VerboseLog("short key: %s", pub.Short())
	return nil
}
