package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cardledger/internal/cli"
	"cardledger/internal/engine"
	"cardledger/internal/model"
)

func trendCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show spending totals for the last 6 months",
		Long: `Show monthly spending totals for the 6-month window ending at the
given month, oldest first. Months with no expenses show a zero total.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			month, err := resolveMonth(month)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			points, err := engine.TrendSeries(month, store.Expenses(), store.Categories())
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Spending trend through " + month))
			fmt.Println()

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "MONTH\tTOTAL\tTOP CATEGORY")

			for _, point := range points {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					point.Month, amountCell(point.Total), topCategory(point, store.Categories()))
			}

			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "last month of the window (YYYY-MM, default current)")

	return cmd
}

// topCategory picks the category with the biggest total for a month,
// breaking ties by registry order.
func topCategory(point engine.TrendPoint, categories []model.Category) string {
	var best string
	var bestAmount int64
	for _, cat := range categories {
		if amount := point.ByCategory[cat.Key]; amount > bestAmount {
			best, bestAmount = cat.Key, amount
		}
	}
	if best == "" {
		return "-"
	}
	return best
}
