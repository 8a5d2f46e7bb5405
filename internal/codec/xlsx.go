package codec

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"cardledger/internal/model"
)

const sheetName = "Expenses"

var columnWidths = []float64{12, 20, 12, 12, 30}

// NewWorkbook builds an XLSX workbook with one row per expense in the
// caller-provided order. Amounts are written as raw numbers so the
// spreadsheet can aggregate them.
func NewWorkbook(expenses []model.Expense) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, width := range columnWidths {
		col := string(rune('A' + i))
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, header := range Header() {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
	}

	for i, e := range expenses {
		row := i + 2
		cells := []struct {
			value any
			col   byte
		}{
			{e.Date, 'A'},
			{e.Merchant, 'B'},
			{e.Amount, 'C'},
			{e.Category, 'D'},
			{e.Memo, 'E'},
		}
		for _, c := range cells {
			cell := fmt.Sprintf("%c%d", c.col, row)
			if err := f.SetCellValue(sheetName, cell, c.value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	return f, nil
}
