package codec

import (
	"encoding/csv"
	"fmt"
	"io"

	"cardledger/internal/model"
)

// utf8BOM lets spreadsheet apps detect the encoding of Korean merchant
// names.
const utf8BOM = "\xEF\xBB\xBF"

// WriteCSV renders expenses as CSV in the caller-provided order.
// Amounts are display-formatted; quoting of delimiter characters is
// handled by the writer.
func WriteCSV(w io.Writer, expenses []model.Expense) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, e := range expenses {
		row := []string{
			e.Date,
			e.Merchant,
			FormatAmount(e.Amount),
			e.Category,
			e.Memo,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
