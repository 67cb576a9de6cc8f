package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"tripstack/internal/domain"
)

const expenseSheet = "Expenses"

// WriteExpensesXLSX renders expenses as an Excel workbook with a header
// row, one row per expense, and a total row per currency.
func WriteExpensesXLSX(w io.Writer, expenses []domain.Expense) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(expenseSheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	header := make([]any, len(expenseColumns))
	for i, c := range expenseColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(expenseSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(expenseColumns))
		_ = f.SetCellStyle(expenseSheet, "A1", lastCol+"1", headerStyle)
	}

	totals := make(map[string]decimal.Decimal)
	rowNum := 2
	for i := range expenses {
		e := &expenses[i]
		amount, _ := e.Amount.Float64()
		row := []any{
			formatDate(e.ExpenseDate),
			e.Merchant,
			e.Description,
			string(e.Category),
			amount,
			e.Currency,
			e.PaymentMethod,
			"",
		}
		if e.TripID != nil {
			row[7] = e.TripID.String()
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(expenseSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", rowNum, err)
		}
		totals[e.Currency] = totals[e.Currency].Add(e.Amount)
		rowNum++
	}

	// Blank separator then one total row per currency.
	rowNum++
	for currency, total := range totals {
		amount, _ := total.Float64()
		row := []any{"", "", "", "Total", amount, currency}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(expenseSheet, cell, &row); err != nil {
			return fmt.Errorf("writing total row: %w", err)
		}
		rowNum++
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
