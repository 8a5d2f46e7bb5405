package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cardledger/internal/cli"
)

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all expenses and restore default categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			count := len(store.Expenses())

			if !force {
				reader := cli.NewReader(os.Stdin)
				question := fmt.Sprintf("Delete all %d expenses and reset categories? This cannot be undone.", count)
				confirmed, err := reader.Confirm(ctx, question, false)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			store.Clear(ctx)
			store.ResetCategories(ctx)

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %d expenses and restored default categories", count)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}
