package codec

import (
	"strconv"

	"cardledger/internal/model"
)

// Header is the fixed column order shared by every tabular export.
func Header() []string {
	return []string{"date", "merchant", "amount", "category", "memo"}
}

// Rows renders one row per expense with raw integer amounts, for
// machine-readable targets. The codec imposes no order; callers sort
// before exporting.
func Rows(expenses []model.Expense) [][]string {
	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{
			e.Date,
			e.Merchant,
			strconv.FormatInt(e.Amount, 10),
			e.Category,
			e.Memo,
		})
	}
	return rows
}

// FormatAmount renders an amount with thousands separators for display
// contexts.
func FormatAmount(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
