package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"cardledger/internal/cli"
	"cardledger/internal/rules"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Manage the category registry",
		Long: `Manage the category registry. Categories are ordered; keyword
matching walks them in this order and the first hit wins, so earlier
categories take precedence. The catch-all category has no keywords and
collects everything nothing else matched.`,
	}

	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddKeywordCmd())
	cmd.AddCommand(categoriesRemoveKeywordCmd())
	cmd.AddCommand(categoriesResetCmd())

	return cmd
}

func categoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all categories and their keywords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tKEYWORDS")

			for _, cat := range store.Categories() {
				label := lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render(cat.Key)
				keywords := strings.Join(cat.Keywords, ", ")
				if cat.IsCatchAll() {
					keywords = "(catch-all)"
				}
				fmt.Fprintf(w, "%s\t%s\n", label, keywords)
			}

			return w.Flush()
		},
	}
}

func categoriesAddKeywordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-keyword <category> <keyword>",
		Short: "Add a merchant keyword to a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			updated, err := rules.AddKeyword(store.Categories(), args[0], args[1])
			if err != nil {
				return err
			}
			store.SetCategories(ctx, updated)

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added keyword %q to %s", strings.TrimSpace(args[1]), args[0])))
			return nil
		},
	}
}

func categoriesRemoveKeywordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-keyword <category> <keyword>",
		Short: "Remove a merchant keyword from a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			updated, err := rules.RemoveKeyword(store.Categories(), args[0], args[1])
			if err != nil {
				return err
			}
			store.SetCategories(ctx, updated)

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed keyword %q from %s", strings.TrimSpace(args[1]), args[0])))
			return nil
		},
	}
}

func categoriesResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default category registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if !force {
				reader := cli.NewReader(os.Stdin)
				confirmed, err := reader.Confirm(ctx, "Replace all categories and keywords with the defaults?", false)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			store.ResetCategories(ctx)

			fmt.Println(cli.FormatSuccess("Category registry restored to defaults"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}
