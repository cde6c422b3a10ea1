package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"pubident/internal/domain"
	"pubident/internal/pubident"
)

func peekCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "peek [server|person|other] [blob-file]",
		Short:     "Print a blob's payload WITHOUT verifying it",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"server", "person", "other"},
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := readBlobFile(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}
			var payload any
			switch domain.BlobKind(args[0]) {
			case domain.BlobKindServer:
				u, err := pubident.PeekServerSelfIdent(blob)
				if err != nil {
					return err
				}
				payload = u.ForDisplay()
			case domain.BlobKindPerson:
				u, err := pubident.PeekPersonSelfIdent(blob)
				if err != nil {
					return err
				}
				payload = u.ForDisplay()
			case domain.BlobKindOtherPerson:
				u, err := pubident.PeekOtherPersonIdent(blob)
				if err != nil {
					return err
				}
				payload = u.ForDisplay()
			default:
				return fmt.Errorf("unknown kind %q", args[0])
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "WARNING: unverified; do not trust this output")
			return printJSON(cmd.OutOrStdout(), payload)
		},
	}
}
