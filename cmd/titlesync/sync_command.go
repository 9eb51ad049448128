package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"TitleSync/internal/domain"
)

func newSyncCommand() *cobra.Command {
	var pageURL string

	cmd := &cobra.Command{
		Use:   "sync <page.html>",
		Short: "Run the full pipeline: extract, normalize, and write to the record store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication()
			if err != nil {
				return err
			}
			defer application.Close()

			snapshot, err := readSnapshot(args[0], pageURL)
			if err != nil {
				return err
			}

			result, err := application.Sync(cmd.Context(), snapshot)
			if err != nil {
				return describeFailure(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s record %s: %s\n",
				result.Outcome, result.Record.ID, result.Record.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&pageURL, "url", "", "Resolved URL of the page snapshot")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

// describeFailure tells the user whether to retry the extraction or the
// save; the two need different fixes.
func describeFailure(err error) error {
	switch {
	case errors.Is(err, domain.ErrNoExtractableData):
		return fmt.Errorf("nothing found on this page: %w", err)
	case errors.Is(err, domain.ErrStoreUnreachable):
		return fmt.Errorf("extracted data but could not reach the store, retry the save: %w", err)
	default:
		var storeErr *domain.StoreError
		if errors.As(err, &storeErr) {
			return fmt.Errorf("extracted data but the store refused it: %w", err)
		}
		return err
	}
}
