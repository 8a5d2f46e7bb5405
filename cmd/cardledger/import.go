package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"cardledger/internal/cli"
	"cardledger/internal/codec"
	"cardledger/internal/model"
	"cardledger/internal/ofx"
	"cardledger/internal/rules"
)

// ofxNamespace derives stable expense ids from OFX transaction ids so
// re-importing the same statement never duplicates records.
var ofxNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("cardledger/ofx"))

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import expenses from a backup or bank statements",
	}

	cmd.AddCommand(importJSONCmd())
	cmd.AddCommand(importOFXCmd())

	return cmd
}

func importJSONCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "json <file>",
		Short: "Restore a JSON backup",
		Long: `Restore a JSON backup written by 'cardledger export json'. The
backup replaces the current expenses and categories wholesale; there is
no merge.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			data, err := codec.Deserialize(raw)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if !force && len(store.Expenses()) > 0 {
				reader := cli.NewReader(os.Stdin)
				question := fmt.Sprintf("Replace %d existing expenses with %d from the backup?",
					len(store.Expenses()), len(data.Expenses))
				confirmed, err := reader.Confirm(ctx, question, false)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			store.ReplaceAll(ctx, data.Expenses)
			if len(data.Categories) > 0 {
				store.SetCategories(ctx, data.Categories)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d expenses and %d categories from %s",
				len(data.Expenses), len(data.Categories), args[0])))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}

func importOFXCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "ofx <files...>",
		Short: "Import card debits from OFX/QFX statements",
		Long: `Import card debits from OFX/QFX statement files. Only debits become
expenses; each is auto-categorized from its merchant name. Transactions
carry their statement id, so importing the same file twice is safe.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories := store.Categories()

			seen := make(map[string]bool)
			for _, e := range store.Expenses() {
				seen[e.ID] = true
			}

			parser := ofx.NewParser()

			var (
				imported []model.Expense
				skipped  int
			)

			bar := progressbar.NewOptions(len(args),
				progressbar.OptionSetDescription("Parsing statements"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)

			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", path, err)
				}

				records, err := parser.ParseFile(ctx, f)
				_ = f.Close()
				if err != nil {
					return fmt.Errorf("failed to parse %s: %w", path, err)
				}

				for _, record := range records {
					id := uuid.NewSHA1(ofxNamespace, []byte(record.FiTID)).String()
					if seen[id] {
						skipped++
						continue
					}
					seen[id] = true

					imported = append(imported, model.Expense{
						ID:       id,
						Merchant: record.Merchant,
						Amount:   record.Amount,
						Date:     record.Date,
						Category: rules.Classify(record.Merchant, categories),
						Memo:     record.Memo,
					})
				}

				_ = bar.Add(1)
			}
			_ = bar.Finish()

			if len(imported) == 0 {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("Nothing to import (%d duplicates skipped)", skipped)))
				return nil
			}

			if dryRun {
				fmt.Println(cli.FormatTitle(fmt.Sprintf("Would import %d expenses (%d duplicates skipped)",
					len(imported), skipped)))
				fmt.Println()

				w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
				fmt.Fprintln(w, "DATE\tMERCHANT\tAMOUNT\tCATEGORY")
				for _, e := range imported {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Date, e.Merchant, amountCell(e.Amount), e.Category)
				}
				return w.Flush()
			}

			for _, e := range imported {
				store.Add(ctx, e)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d expenses (%d duplicates skipped)",
				len(imported), skipped)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be imported without saving")

	return cmd
}
