package commands

import (
	"github.com/spf13/cobra"

	"pubident/internal/domain"
)

func serverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Transit server self-idents",
	}
	var (
		tag, url, displayName, out string
	)
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue a server self-ident signed by the root key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			blob, err := appCtx.IDs.IssueServerSelfIdent(cmd.Context(), passphrase, domain.ServerDetails{
				Tag:  tag,
				URL:  url,
				Meta: domain.ServerMeta{DisplayName: displayName},
			})
			if err != nil {
				return err
			}
			return writeBlob(out, blob, cmd.OutOrStdout())
		},
	}
	issue.Flags().StringVar(&tag, "tag", "", "server tag")
	issue.Flags().StringVar(&url, "url", "", "server URL")
	issue.Flags().StringVar(&displayName, "display-name", "", "human-readable server name")
	issue.Flags().StringVarP(&out, "out", "o", "", "write the blob here instead of stdout")
	_ = issue.MarkFlagRequired("tag")
	_ = issue.MarkFlagRequired("url")
	cmd.AddCommand(issue)
	return cmd
}

func personCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Person self-idents",
	}
	var (
		displayName, nickname, serverFile, out string
	)
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue a person self-ident signed by the longterm key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			server, err := readBlobFile(serverFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			poco := domain.Poco{"displayName": displayName}
			if nickname != "" {
				poco["nickname"] = nickname
			}
			blob, err := appCtx.IDs.IssuePersonSelfIdent(cmd.Context(), passphrase, poco, server)
			if err != nil {
				return err
			}
			return writeBlob(out, blob, cmd.OutOrStdout())
		},
	}
	issue.Flags().StringVar(&displayName, "display-name", "", "your display name")
	issue.Flags().StringVar(&nickname, "nickname", "", "your nickname")
	issue.Flags().StringVar(&serverFile, "server", "", "transit server self-ident blob file")
	issue.Flags().StringVarP(&out, "out", "o", "", "write the blob here instead of stdout")
	_ = issue.MarkFlagRequired("display-name")
	_ = issue.MarkFlagRequired("server")
	cmd.AddCommand(issue)
	return cmd
}

func vouchCmd() *cobra.Command {
	var nickname, out string
	cmd := &cobra.Command{
		Use:   "vouch [subject-blob-file]",
		Short: "Issue an other-person ident over someone's self-ident",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			subject, err := readBlobFile(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			var local domain.Poco
			if nickname != "" {
				local = domain.Poco{"nickname": nickname}
			}
			blob, err := appCtx.IDs.IssueOtherPersonIdent(cmd.Context(), passphrase, subject, local)
			if err != nil {
				return err
			}
			return writeBlob(out, blob, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&nickname, "nickname", "", "your local nickname for the person")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the blob here instead of stdout")
	return cmd
}
