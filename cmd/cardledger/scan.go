package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cardledger/internal/cli"
	"cardledger/internal/common"
	"cardledger/internal/config"
	"cardledger/internal/model"
	"cardledger/internal/rules"
	"cardledger/internal/vision"
)

func scanCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "scan <image>",
		Short: "Extract a purchase from a receipt photo",
		Long: `Extract a purchase from a receipt photo using the configured vision
provider. The extracted fields prefill an interactive review; nothing is
saved until you confirm. If the provider fails the review starts empty
so the purchase can still be entered by hand.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if date == "" {
				date = model.Today()
			}
			if !model.ValidDate(date) {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
			}

			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			mediaType, err := imageMediaType(args[0])
			if err != nil {
				return err
			}

			review := scanReceipt(ctx, image, mediaType, date)

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			reader := cli.NewReader(os.Stdin)

			merchant, err := promptField(ctx, reader, "Merchant", review.Merchant)
			if err != nil {
				return err
			}
			merchant = strings.TrimSpace(merchant)
			if merchant == "" {
				return fmt.Errorf("merchant name cannot be empty")
			}

			amountDefault := ""
			if review.Amount > 0 {
				amountDefault = strconv.FormatInt(review.Amount, 10)
			}
			amountText, err := promptField(ctx, reader, "Amount", amountDefault)
			if err != nil {
				return err
			}
			amount, err := strconv.ParseInt(strings.TrimSpace(amountText), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amountText, err)
			}
			if amount <= 0 {
				return fmt.Errorf("amount must be positive, got %d", amount)
			}

			expenseDate, err := promptField(ctx, reader, "Date", review.Date)
			if err != nil {
				return err
			}
			expenseDate = strings.TrimSpace(expenseDate)
			if !model.ValidDate(expenseDate) {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", expenseDate)
			}

			memo, err := promptField(ctx, reader, "Memo", review.Memo)
			if err != nil {
				return err
			}

			expense := model.Expense{
				ID:       model.NewExpenseID(),
				Merchant: merchant,
				Amount:   amount,
				Date:     expenseDate,
				Category: rules.Classify(merchant, store.Categories()),
				Memo:     strings.TrimSpace(memo),
			}

			store.Add(ctx, expense)

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s: %s (%s)",
				expense.Merchant, amountCell(expense.Amount), expense.Category)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "purchase date used when the receipt has none (YYYY-MM-DD, default today)")

	return cmd
}

// scanReceipt calls the vision provider with retries. Any failure falls
// back to an empty review so the purchase can be typed in manually.
func scanReceipt(ctx context.Context, image []byte, mediaType, targetDate string) vision.Review {
	client, err := vision.NewClient(config.Vision())
	if err != nil {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("Receipt analysis unavailable: %v", err)))
		return vision.Result{}.Normalize(targetDate)
	}

	var result vision.Result
	err = common.WithRetry(ctx, func() error {
		var callErr error
		result, callErr = client.AnalyzeReceipt(ctx, image, mediaType, targetDate)
		return callErr
	}, common.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2,
	})
	if err != nil {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("Receipt analysis failed: %v", err)))
		return vision.Result{}.Normalize(targetDate)
	}

	return result.Normalize(targetDate)
}

// promptField shows a field with its extracted value; entering nothing
// keeps the value.
func promptField(ctx context.Context, reader *cli.Reader, label, current string) (string, error) {
	if current != "" {
		fmt.Print(cli.FormatPrompt(fmt.Sprintf("%s [%s]", label, current)))
	} else {
		fmt.Print(cli.FormatPrompt(label))
	}

	line, err := reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if line == "" {
		return current, nil
	}
	return line, nil
}

func imageMediaType(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	case ".png":
		return "image/png", nil
	case ".gif":
		return "image/gif", nil
	case ".webp":
		return "image/webp", nil
	default:
		return "", fmt.Errorf("unsupported image type %q, use jpg, png, gif, or webp", filepath.Ext(path))
	}
}
