package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newExtractCommand() *cobra.Command {
	var pageURL string

	cmd := &cobra.Command{
		Use:   "extract <page.html>",
		Short: "Extract and normalize only; print the canonical record without writing",
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

			extracted, err := application.Extract(snapshot)
			if err != nil {
				return err
			}

			encoded, err := json.MarshalIndent(extracted, "", "  ")
			if err != nil {
				return fmt.Errorf("encode extracted title: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}

	cmd.Flags().StringVar(&pageURL, "url", "", "Resolved URL of the page snapshot")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}
