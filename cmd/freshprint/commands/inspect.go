package commands

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"freshprint/internal/domain"
	proto "freshprint/internal/protocol/fingerprint"
)

// inspect <fingerprint>: print the decoded fields. Nothing is verified.
func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <fingerprint>",
		Short: "Decode a fingerprint without verifying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := proto.Decode(domain.Fingerprint(strings.TrimSpace(args[0])))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "hash method:  %s\n", parts.HashMethod)
			fmt.Fprintf(out, "hash:         %s\n", hex.EncodeToString(parts.Hash))
			if minted, err := proto.DecodeUint64(parts.Salt); err == nil {
				fmt.Fprintf(out, "minted:       %d (%s)\n", minted,
					time.Unix(int64(minted), 0).UTC().Format(time.RFC3339))
				fmt.Fprintf(out, "expires:      %d\n", minted+proto.MaxAge)
			} else {
				fmt.Fprintf(out, "salt:         %s (%d bytes, malformed)\n", hex.EncodeToString(parts.Salt), len(parts.Salt))
			}
			fmt.Fprintf(out, "sign method:  %s\n", parts.SignMethod)
			fmt.Fprintf(out, "signature:    %d bytes\n", len(parts.Signature))
			return nil
		},
	}
}
