package commands

import (
	"bufio"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func keygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create the local keyrings",
	}
	cmd.AddCommand(keygenRootCmd(), keygenLongtermCmd(), keygenMessagingCmd())
	return cmd
}

func keygenRootCmd() *cobra.Command {
	var restore bool
	cmd := &cobra.Command{
		Use:   "root",
		Short: "Create the root keyring and print its recovery phrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if restore {
				fmt.Fprintln(cmd.ErrOrStderr(), "Enter recovery phrase:")
				sc := bufio.NewScanner(cmd.InOrStdin())
				if !sc.Scan() {
					return fmt.Errorf("no recovery phrase on stdin")
				}
				fp, err := appCtx.IDs.RestoreRoot(passphrase, sc.Text())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Root keyring restored.\nFingerprint: %s\n", fp)
				return nil
			}
			mnemonic, fp, err := appCtx.IDs.GenerateRoot(passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Root keyring created.\nFingerprint: %s\n\nRecovery phrase (write it down, it is shown once):\n%s\n", fp, mnemonic)
			return nil
		},
	}
	cmd.Flags().BoolVar(&restore, "restore", false, "rebuild the root keyring from a recovery phrase read on stdin")
	return cmd
}

func keygenLongtermCmd() *cobra.Command {
	var validFor time.Duration
	cmd := &cobra.Command{
		Use:   "longterm",
		Short: "Create a longterm keyring authorized by the root key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if validFor == 0 {
				validFor = cfg.AuthorizationValidity
			}
			fp, err := appCtx.IDs.GenerateLongterm(passphrase, validFor)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Longterm keyring created.\nFingerprint: %s\nValid for: %s\n", fp, validFor)
			return nil
		},
	}
	cmd.Flags().DurationVar(&validFor, "valid-for", 0, "authorization lifetime (default from config)")
	return cmd
}

func keygenMessagingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "messaging",
		Short: "Create the messaging keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if err := appCtx.IDs.GenerateMessaging(passphrase); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Messaging keyring created.")
			return nil
		},
	}
}
