package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <record-id>",
		Short: "Delete a store record; deleting an already-deleted id succeeds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication()
			if err != nil {
				return err
			}
			defer application.Close()

			if err := application.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted record %s\n", args[0])
			return nil
		},
	}
}
