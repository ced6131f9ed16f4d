package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"quantumtie/internal/crypto"
	"quantumtie/internal/domain"
	accountsvc "quantumtie/internal/services/account"
	"quantumtie/internal/store"
)

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage stored runtime credentials",
	}
	cmd.AddCommand(accountSaveCmd(), accountShowCmd(), accountDeleteCmd())
	return cmd
}

func accountSaveCmd() *cobra.Command {
	var (
		name, channel, token, instance, url string
		makeDefault                         bool
	)
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Store an API token (sealed when --passphrase is set)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := accountsvc.ParseChannel(channel)
			if err != nil {
				return err
			}
			if ch.UsesIAM() && instance == "" {
				return fmt.Errorf("--instance (service CRN) required for %s", ch)
			}
			if token == "" {
				if token, err = wire.Prompt.AskSecret("API token: "); err != nil {
					return err
				}
			}
			if token == "" {
				return fmt.Errorf("token required")
			}
			if name == "" {
				name = store.DefaultAccountName(ch)
			}
			acc := domain.Account{Name: name, Channel: ch, Token: token, Instance: instance, URL: url}
			if err := wire.Credentials.SaveAccount(passphrase, acc, makeDefault); err != nil {
				return err
			}
			sealed := "plain"
			if passphrase != "" {
				sealed = "sealed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved account %s (%s, %s).\nToken fingerprint: %s\n",
				name, ch, sealed, crypto.Fingerprint(token))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "account name (default derived from the channel)")
	cmd.Flags().StringVar(&channel, "channel", string(domain.ChannelQuantumPlatform), "ibm_quantum_platform, ibm_cloud or ibm_quantum")
	cmd.Flags().StringVar(&token, "token", "", "API token (prompted for if empty)")
	cmd.Flags().StringVar(&instance, "instance", "", "service instance CRN")
	cmd.Flags().StringVar(&url, "url", "", "runtime API root for this account")
	cmd.Flags().BoolVar(&makeDefault, "default", false, "make this the default account")
	return cmd
}

func accountShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "List stored accounts, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			names, def, err := wire.Credentials.ListAccounts()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				names = []string{args[0]}
			}
			if len(names) == 0 {
				fmt.Fprintln(out, "No stored accounts. Run `quantumtie account save`.")
				return nil
			}
			for _, n := range names {
				mark := " "
				if n == def {
					mark = "*"
				}
				acc, ok, err := wire.Credentials.LoadAccount(passphrase, n)
				switch {
				case errors.Is(err, store.ErrPassphraseRequired), errors.Is(err, store.ErrWrongPassphrase):
					fmt.Fprintf(out, "%s %-28s sealed (pass -p to unlock)\n", mark, n)
					continue
				case err != nil:
					return err
				case !ok:
					return fmt.Errorf("%s: %w", n, store.ErrNotFound)
				}
				fmt.Fprintf(out, "%s %-28s %-22s %s  %s\n", mark, n, acc.Channel, crypto.Mask(acc.Token), crypto.Fingerprint(acc.Token))
				if acc.Instance != "" {
					fmt.Fprintf(out, "  %-28s instance %s\n", "", acc.Instance)
				}
			}
			return nil
		},
	}
}

func accountDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a stored account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Credentials.DeleteAccount(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
			return nil
		},
	}
}
