package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair and store it encrypted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			pub, err := wire.Fingerprints.CreateKeyPair(passphrase)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), pub)
			return nil
		},
	}
}

func pubkeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pubkey",
		Short: "Print the stored public key as PEM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := wire.Fingerprints.PublicKey()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), pub)
			return nil
		},
	}
}
