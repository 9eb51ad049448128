package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"TitleSync/internal/app"
	"TitleSync/internal/config"
	"TitleSync/internal/domain"
	"TitleSync/internal/logging"
)

const configPathEnv = "TITLESYNC_CONFIG"

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "titlesync",
		Short:         "Extract film/series metadata from a page snapshot and reconcile it with the record store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFlag != "" {
				return os.Setenv(configPathEnv, configFlag)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newSyncCommand())
	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newDeleteCommand())

	return rootCmd
}

// loadApplication builds the wired application; callers must Close it.
func loadApplication() (*app.Application, error) {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	return app.New(cfg, logger)
}

// readSnapshot loads page markup from a file path ("-" reads stdin) and
// pairs it with the resolved page URL.
func readSnapshot(path, pageURL string) (domain.PageSnapshot, error) {
	var (
		markup []byte
		err    error
	)
	if path == "-" {
		markup, err = io.ReadAll(os.Stdin)
	} else {
		markup, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.PageSnapshot{}, fmt.Errorf("read page markup: %w", err)
	}

	return domain.PageSnapshot{URL: pageURL, HTML: string(markup)}, nil
}
