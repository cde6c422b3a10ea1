package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pubident/internal/domain"
)

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify an identity blob",
	}

	server := &cobra.Command{
		Use:   "server [blob-file]",
		Short: "Verify a server self-ident",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := readBlobFile(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			ident, err := appCtx.Verify.VerifyServerSelfIdent(cmd.Context(), blob)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ident)
		},
	}

	var root string
	person := &cobra.Command{
		Use:   "person [blob-file]",
		Short: "Verify a person self-ident",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := readBlobFile(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			var expected *domain.SignPublicKey
			if root != "" {
				k, err := domain.ParseSignPublicKey(root)
				if err != nil {
					return fmt.Errorf("--root: %w", err)
				}
				expected = &k
			}
			ident, err := appCtx.Verify.VerifyPersonSelfIdent(cmd.Context(), blob, expected)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ident)
		},
	}
	person.Flags().StringVar(&root, "root", "", "expected root signing key (base58)")

	var asserter, asOf string
	other := &cobra.Command{
		Use:   "other [blob-file]",
		Short: "Verify an other-person ident against its asserter's self-ident",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := readBlobFile(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			asserterBlob, err := readBlobFile(asserter, cmd.InOrStdin())
			if err != nil {
				return err
			}
			at := time.Now()
			if asOf != "" {
				if at, err = time.Parse(time.RFC3339, asOf); err != nil {
					return fmt.Errorf("--as-of: %w", err)
				}
			}
			ident, err := appCtx.Verify.VerifyOtherPersonIdent(cmd.Context(), blob, asserterBlob, at)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "note: the embedded person self-ident was not verified")
			return printJSON(cmd.OutOrStdout(), ident)
		},
	}
	other.Flags().StringVar(&asserter, "asserter", "", "asserter's person self-ident blob file")
	other.Flags().StringVar(&asOf, "as-of", "", "check time, RFC 3339 (default now)")
	_ = other.MarkFlagRequired("asserter")

	cmd.AddCommand(server, person, other)
	return cmd
}
