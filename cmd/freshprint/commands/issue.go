package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// issue: mint a fingerprint for the stored key pair.
func issueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "issue",
		Short: "Print a fresh fingerprint for the local key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			fp, err := wire.Fingerprints.Issue(passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fp)
			return nil
		},
	}
}
