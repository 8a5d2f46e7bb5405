package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cardledger/internal/cli"
)

func deleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a recorded purchase",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := resolveExpenseID(store, args[0])
			if err != nil {
				return err
			}

			expense, ok := store.Get(id)
			if !ok {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("No expense with id %q, nothing deleted", args[0])))
				return nil
			}

			if !force {
				reader := cli.NewReader(os.Stdin)
				question := fmt.Sprintf("Delete %s %s (%s)?",
					expense.Merchant, amountCell(expense.Amount), expense.Date)
				confirmed, err := reader.Confirm(ctx, question, false)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			store.Delete(ctx, id)

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %s: %s %s",
				shortID(expense.ID), expense.Merchant, amountCell(expense.Amount))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}
