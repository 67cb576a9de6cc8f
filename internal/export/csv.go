// Package export renders expense and trip data as CSV, XLSX, and PDF
// downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"tripstack/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// expenseColumns defines the expense CSV header row.
var expenseColumns = []string{
	"Date",
	"Merchant",
	"Description",
	"Category",
	"Amount",
	"Currency",
	"Payment Method",
	"Trip ID",
}

// CSVWriter wraps csv.Writer for exporting expenses as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the expense header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(expenseColumns)
}

// WriteExpenses converts a batch of expenses to CSV rows and writes them.
func (w *CSVWriter) WriteExpenses(expenses []domain.Expense) error {
	for i := range expenses {
		if err := w.csv.Write(expenseToRow(&expenses[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

func expenseToRow(e *domain.Expense) []string {
	row := make([]string, len(expenseColumns))
	row[0] = formatDate(e.ExpenseDate)
	row[1] = e.Merchant
	row[2] = e.Description
	row[3] = string(e.Category)
	row[4] = e.Amount.StringFixed(2)
	row[5] = e.Currency
	row[6] = e.PaymentMethod
	if e.TripID != nil {
		row[7] = e.TripID.String()
	}
	return row
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition. Replaces
// non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), time.Now().Format("2006-01-02"), ext)
}
