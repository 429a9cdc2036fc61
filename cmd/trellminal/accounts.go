// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trellminal/trellminal/lib/config"
	"github.com/trellminal/trellminal/lib/store"
)

func newAccountsCommand(options *rootOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   "accounts",
		Short: "List the saved accounts",
		Long: `List the accounts saved in the account store. The active account
is marked with an asterisk.`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			_, accounts, err := openStore(options)
			if err != nil {
				return err
			}
			return printAccounts(command.OutOrStdout(), accounts)
		},
	}
	command.AddCommand(newAccountsRemoveCommand(options))
	return command
}

func newAccountsRemoveCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove USERNAME",
		Short: "Forget a saved account",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			cfg, accounts, err := openStore(options)
			if err != nil {
				return err
			}
			account, ok := findAccount(accounts, args[0])
			if !ok {
				return fmt.Errorf("no saved account named %q", args[0])
			}
			if err := accounts.RemoveAccount(account.ID); err != nil {
				return err
			}
			if err := accounts.Save(); err != nil {
				return err
			}

			level, _ := cfg.Log.SlogLevel()
			logger := newCommandLogger(os.Stderr, max(level, slog.LevelInfo))
			logger.Info("account removed", "username", account.Username, "store", accounts.Path())
			return nil
		},
	}
}

func openStore(options *rootOptions) (*config.Config, *store.Store, error) {
	cfg, err := options.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	accounts, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, accounts, nil
}

// findAccount matches name against usernames first, then account IDs.
func findAccount(accounts *store.Store, name string) (store.Account, bool) {
	all := accounts.Accounts()
	for _, account := range all {
		if account.Username == name {
			return account, true
		}
	}
	for _, account := range all {
		if account.ID == name {
			return account, true
		}
	}
	return store.Account{}, false
}

func printAccounts(output io.Writer, accounts *store.Store) error {
	all := accounts.Accounts()
	if len(all) == 0 {
		_, err := fmt.Fprintln(output, "no saved accounts")
		return err
	}

	active, _ := accounts.ActiveAccount()
	writer := tabwriter.NewWriter(output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "\tUSERNAME\tID")
	for _, account := range all {
		marker := ""
		if account.ID == active.ID {
			marker = "*"
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\n", marker, account.Username, account.ID)
	}
	return writer.Flush()
}
