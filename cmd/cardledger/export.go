package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cardledger/internal/cli"
	"cardledger/internal/codec"
	"cardledger/internal/model"
	"cardledger/internal/storage"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export expenses to a file",
		Long: `Export expenses to a file. JSON writes the full backup envelope
including the category registry; CSV and XLSX write a flat table of
expenses, newest first. Pass --month to limit the rows to one month.`,
	}

	cmd.AddCommand(exportJSONCmd())
	cmd.AddCommand(exportCSVCmd())
	cmd.AddCommand(exportXLSXCmd())

	return cmd
}

func exportJSONCmd() *cobra.Command {
	var (
		month  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "json",
		Short: "Export a JSON backup (expenses + categories)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			expenses, err := exportRows(store, month)
			if err != nil {
				return err
			}

			data := codec.Serialize(expenses, store.Categories())
			raw, err := codec.Marshal(data)
			if err != nil {
				return err
			}

			path := defaultExportPath(output, "json")
			if err := os.WriteFile(path, raw, 0600); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d expenses to %s", len(expenses), path)))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "limit to one month (YYYY-MM)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default cardledger-<date>.json)")

	return cmd
}

func exportCSVCmd() *cobra.Command {
	var (
		month  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Export a CSV table of expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			expenses, err := exportRows(store, month)
			if err != nil {
				return err
			}

			path := defaultExportPath(output, "csv")
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			defer f.Close()

			if err := codec.WriteCSV(f, expenses); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d expenses to %s", len(expenses), path)))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "limit to one month (YYYY-MM)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default cardledger-<date>.csv)")

	return cmd
}

func exportXLSXCmd() *cobra.Command {
	var (
		month  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "xlsx",
		Short: "Export an Excel workbook of expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			expenses, err := exportRows(store, month)
			if err != nil {
				return err
			}

			workbook, err := codec.NewWorkbook(expenses)
			if err != nil {
				return err
			}

			path := defaultExportPath(output, "xlsx")
			if err := workbook.SaveAs(path); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d expenses to %s", len(expenses), path)))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "limit to one month (YYYY-MM)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default cardledger-<date>.xlsx)")

	return cmd
}

// exportRows collects the expenses to export, newest first.
func exportRows(store *storage.SQLiteStore, month string) ([]model.Expense, error) {
	var expenses []model.Expense
	if month == "" {
		expenses = store.Expenses()
	} else {
		if !model.ValidMonth(month) {
			return nil, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
		}
		expenses = store.Query(month)
	}
	sortByDateDesc(expenses)
	return expenses, nil
}

func defaultExportPath(output, ext string) string {
	if output != "" {
		return output
	}
	return fmt.Sprintf("cardledger-%s.%s", time.Now().Format(model.DateLayout), ext)
}
