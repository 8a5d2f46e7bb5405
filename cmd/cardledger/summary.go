package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cardledger/internal/cli"
	"cardledger/internal/engine"
)

func summaryCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show per-category totals for a month",
		Long: `Show per-category totals for a month. Every category in the
registry appears, including those with no spending, in registry order.`,
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

			categories := store.Categories()
			totals := engine.MonthlySummary(month, store.Expenses(), categories)

			fmt.Println(cli.FormatTitle("Summary for " + month))
			fmt.Println()

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tAMOUNT")

			var total int64
			for _, cat := range categories {
				amount := totals[cat.Key]
				total += amount
				fmt.Fprintf(w, "%s\t%s\n", cat.Key, amountCell(amount))
			}
			fmt.Fprintf(w, "\t\n")
			fmt.Fprintf(w, "total\t%s\n", amountCell(total))

			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to summarize (YYYY-MM, default current)")

	return cmd
}
