// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/trellminal/trellminal/lib/boardui"
	"github.com/trellminal/trellminal/lib/config"
	"github.com/trellminal/trellminal/lib/locale"
	"github.com/trellminal/trellminal/lib/pages"
	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/store"
	"github.com/trellminal/trellminal/lib/trello"
	"github.com/trellminal/trellminal/lib/tui"
	"github.com/trellminal/trellminal/lib/version"
)

// exitGrace bounds how long shutdown waits for navigations that were
// still running when the user quit.
const exitGrace = 2 * time.Second

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	storePath  string
	initial    string
	logOutput  string
}

func (options *rootOptions) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&options.configPath, "config", "", "YAML configuration file (default: $"+config.EnvironmentVariable+", then built-in defaults)")
	flags.StringVar(&options.storePath, "store", "", "account store file (overrides store.path)")
	flags.StringVar(&options.initial, "initial", "", "location to open at start (overrides ui.initial_location)")
	flags.StringVar(&options.logOutput, "log-output", "", "write JSON log records to this file (in addition to the status bar)")
}

// loadConfig reads the configuration file and applies flag overrides.
func (options *rootOptions) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if options.configPath != "" {
		cfg, err = config.LoadFile(options.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if options.storePath != "" {
		cfg.Store.Path = options.storePath
	}
	if options.initial != "" {
		cfg.UI.InitialLocation = options.initial
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	options := &rootOptions{}
	command := &cobra.Command{
		Use:   "trellminal",
		Short: "Browse Trello boards from the terminal",
		Long: `Trellminal is a terminal client for Trello.

Sign in through the browser or by pasting a token, then browse your
workspaces, boards, lists, and cards. Type :q to quit, :back to go
back, and :help (or ?) for the key bindings.`,
		Version:       version.Info(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, args []string) error {
			return runViewer(command.Context(), options)
		},
	}
	options.addFlags(command.PersistentFlags())
	command.AddCommand(newAccountsCommand(options), newVersionCommand())
	return command
}

// runViewer runs the TUI until the user quits, then waits briefly for
// in-flight navigations, unmounts the active page, and saves the
// account store.
func runViewer(ctx context.Context, options *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := options.loadConfig()
	if err != nil {
		return err
	}
	level, _ := cfg.Log.SlogLevel()

	accounts, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}

	catalog, err := locale.New(cfg.UI.Language)
	if err != nil {
		return err
	}

	// stderr belongs to the TUI while it runs: warnings go to the
	// status bar and everything else to the optional log file.
	sink := boardui.NewProgramSink()
	var handler slog.Handler = boardui.NewTUILogHandler(slog.LevelWarn, sink)
	if options.logOutput != "" {
		fileHandler, closeFile, err := openFileLogHandler(options.logOutput, level)
		if err != nil {
			return fmt.Errorf("cannot open log file %s: %w", options.logOutput, err)
		}
		defer closeFile()
		handler = fanoutHandler{handler, fileHandler}
	}
	logger := slog.New(handler)

	api, err := trello.NewClient(trello.Config{
		BaseURL: cfg.API.Endpoint,
		Key:     cfg.API.Key,
		Timeout: cfg.RequestTimeout(),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	table := pages.Register(router.NewTable(), pages.Deps{
		Theme:   tui.DefaultTheme,
		Keys:    tui.DefaultKeyMap,
		Catalog: catalog,
		Logger:  logger,
		Auth: pages.AuthConfig{
			AppName:         cfg.Auth.AppName,
			Expiration:      cfg.Auth.Expiration,
			Scope:           cfg.Auth.Scope,
			CallbackAddress: cfg.Auth.CallbackAddress,
			ReplyTimeout:    cfg.CallbackReplyTimeout(),
		},
		OpenBrowser: openBrowser,
	})

	appRouter, err := router.New(table, cfg.UI.InitialLocation, router.Resources{
		Store:  accounts,
		API:    api,
		Events: sink,
	}, router.Config{
		MaxRedirects: cfg.UI.MaxRedirects,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	runContext, cancel := context.WithCancel(ctx)
	defer cancel()

	model := boardui.NewModel(boardui.Config{
		Context:       runContext,
		Router:        appRouter,
		Store:         accounts,
		Theme:         tui.DefaultTheme,
		Keys:          tui.DefaultKeyMap,
		Catalog:       catalog,
		FrameInterval: cfg.FrameInterval(),
		Logger:        logger,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	sink.SetProgram(program)
	_, runErr := program.Run()
	sink.SetProgram(nil)

	model.Wait(exitGrace)
	cancel()
	appRouter.Shutdown(context.Background())

	if err := accounts.Save(); err != nil {
		if runErr != nil {
			return fmt.Errorf("%w (and saving accounts failed: %v)", runErr, err)
		}
		return err
	}
	return runErr
}
