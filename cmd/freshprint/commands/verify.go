package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"freshprint/internal/domain"
	proto "freshprint/internal/protocol/fingerprint"
	fpsvc "freshprint/internal/services/fingerprint"
	"freshprint/internal/verifier"
)

// errInvalid makes the process exit non-zero after "invalid" was printed.
var errInvalid = errors.New("fingerprint invalid")

// verify <fingerprint>: check a fingerprint against --pubkey or the stored key,
// locally or through a remote verifier. The reason is only known locally.
func verifyCmd() *cobra.Command {
	var pubkeyPath, remote string
	cmd := &cobra.Command{
		Use:   "verify <fingerprint>",
		Short: "Verify a fingerprint against a PEM public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pub domain.PublicKeyPEM
			if pubkeyPath != "" {
				b, err := os.ReadFile(pubkeyPath)
				if err != nil {
					return err
				}
				pub = domain.PublicKeyPEM(b)
			} else {
				var err error
				if pub, err = wire.Fingerprints.PublicKey(); err != nil {
					return err
				}
			}

			fp := domain.Fingerprint(strings.TrimSpace(args[0]))
			if remote != "" {
				ok, err := verifier.NewClient(remote).Verify(cmd.Context(), pub, fp)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "invalid")
					return errInvalid
				}
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			}

			err := wire.Fingerprints.Check(pub, fp)
			switch {
			case err == nil:
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			case errors.Is(err, fpsvc.ErrInvalidPublicKey):
				return err
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "invalid: %s\n", proto.Reason(err))
				return errInvalid
			}
		},
	}
	cmd.Flags().StringVar(&pubkeyPath, "pubkey", "", "PEM public key file (default: stored key)")
	cmd.Flags().StringVar(&remote, "remote", "", "ask the verifier at this base URL instead of checking locally")
	return cmd
}
