package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cardledger/internal/cli"
	"cardledger/internal/rules"
	"cardledger/internal/storage"
)

func editCmd() *cobra.Command {
	var (
		merchant string
		amount   string
		category string
		memo     string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a recorded purchase",
		Long: `Edit a recorded purchase. Only the fields passed as flags change;
everything else keeps its current value. Setting --category marks the
expense as manually categorized so later keyword changes leave it alone;
changing --merchant without --category re-runs keyword matching.

The id may be the short prefix shown by 'cardledger list'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !cmd.Flags().Changed("merchant") && !cmd.Flags().Changed("amount") &&
				!cmd.Flags().Changed("category") && !cmd.Flags().Changed("memo") {
				return fmt.Errorf("nothing to change, pass at least one of --merchant, --amount, --category, --memo")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := resolveExpenseID(store, args[0])
			if err != nil {
				return err
			}
			if _, ok := store.Get(id); !ok {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("No expense with id %q, nothing changed", args[0])))
				return nil
			}

			var update storage.ExpenseUpdate

			if cmd.Flags().Changed("merchant") {
				m := strings.TrimSpace(merchant)
				if m == "" {
					return fmt.Errorf("merchant name cannot be empty")
				}
				update.Merchant = &m
			}

			if cmd.Flags().Changed("amount") {
				a, err := strconv.ParseInt(amount, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", amount, err)
				}
				if a <= 0 {
					return fmt.Errorf("amount must be positive, got %d", a)
				}
				update.Amount = &a
			}

			switch {
			case cmd.Flags().Changed("category"):
				if _, ok := rules.Find(store.Categories(), category); !ok {
					return fmt.Errorf("%w: %q", rules.ErrUnknownCategory, category)
				}
				manual := true
				update.Category = &category
				update.ManualCategory = &manual
			case update.Merchant != nil:
				// New merchant, no explicit category: match keywords again.
				matched := rules.Classify(*update.Merchant, store.Categories())
				manual := false
				update.Category = &matched
				update.ManualCategory = &manual
			}

			if cmd.Flags().Changed("memo") {
				update.Memo = &memo
			}

			store.Update(ctx, id, update)

			updated, _ := store.Get(id)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated %s: %s %s (%s)",
				shortID(updated.ID), updated.Merchant, amountCell(updated.Amount), updated.Category)))
			return nil
		},
	}

	cmd.Flags().StringVar(&merchant, "merchant", "", "new merchant name")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&category, "category", "", "new category key (marks the expense manual)")
	cmd.Flags().StringVar(&memo, "memo", "", "new memo (empty clears it)")

	return cmd
}
