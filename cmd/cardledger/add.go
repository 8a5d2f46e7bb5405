package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cardledger/internal/cli"
	"cardledger/internal/model"
	"cardledger/internal/rules"
)

func addCmd() *cobra.Command {
	var (
		date     string
		category string
		memo     string
	)

	cmd := &cobra.Command{
		Use:   "add <merchant> <amount>",
		Short: "Record a card purchase",
		Long: `Record a card purchase. The merchant name is matched against the
category keywords to pick a category automatically; pass --category to
override the automatic pick.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			merchant := strings.TrimSpace(args[0])
			if merchant == "" {
				return fmt.Errorf("merchant name cannot be empty")
			}

			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			if amount <= 0 {
				return fmt.Errorf("amount must be positive, got %d", amount)
			}

			if date == "" {
				date = model.Today()
			}
			if !model.ValidDate(date) {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories := store.Categories()

			expense := model.Expense{
				ID:       model.NewExpenseID(),
				Merchant: merchant,
				Amount:   amount,
				Date:     date,
				Memo:     memo,
			}

			if category != "" {
				if _, ok := rules.Find(categories, category); !ok {
					return fmt.Errorf("%w: %q", rules.ErrUnknownCategory, category)
				}
				expense.Category = category
				expense.ManualCategory = true
			} else {
				expense.Category = rules.Classify(merchant, categories)
			}

			store.Add(ctx, expense)

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s: %s (%s)",
				expense.Merchant, amountCell(expense.Amount), expense.Category)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "purchase date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&category, "category", "", "category key (skips keyword matching)")
	cmd.Flags().StringVar(&memo, "memo", "", "free-text memo")

	return cmd
}
