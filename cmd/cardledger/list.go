package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cardledger/internal/cli"
	"cardledger/internal/model"
)

func listCmd() *cobra.Command {
	var (
		month string
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded purchases",
		Long:  `List purchases for a month (default: the current month), newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var expenses []model.Expense
			if all {
				expenses = store.Expenses()
			} else {
				month, err = resolveMonth(month)
				if err != nil {
					return err
				}
				expenses = store.Query(month)
			}

			if len(expenses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No purchases recorded. Use 'cardledger add' to record one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Merchant"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Memo"))

			var total int64
			for _, e := range expenses {
				category := e.Category
				if e.ManualCategory {
					category += " *"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					shortID(e.ID), e.Date, e.Merchant, amountCell(e.Amount), category, e.Memo)
				total += e.Amount
			}

			fmt.Fprintf(w, "%s\t\t\t%s\t\t\n",
				cli.BoldStyle.Render("total"),
				cli.BoldStyle.Render(amountCell(total)))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to list (YYYY-MM, default current)")
	cmd.Flags().BoolVar(&all, "all", false, "list every recorded purchase")

	return cmd
}

// shortID trims a uuid for table display; commands accept the prefix
// back as long as it is unambiguous.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
