package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"tripstack/internal/domain"
)

// TripReport bundles everything rendered into a trip report PDF.
type TripReport struct {
	Trip      *domain.Trip
	Itinerary []domain.ItineraryItem
	Expenses  []domain.Expense
}

// WriteTripReportPDF renders a trip report: trip summary, itinerary table,
// and expense table with per-currency totals.
func WriteTripReportPDF(w io.Writer, report *TripReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, report.Trip.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 6, tripSubtitle(report.Trip), "", 1, "L", false, 0, "")
	if report.Trip.Purpose != "" {
		pdf.CellFormat(0, 6, "Purpose: "+report.Trip.Purpose, "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	if len(report.Itinerary) > 0 {
		writeItinerarySection(pdf, report.Itinerary)
	}
	if len(report.Expenses) > 0 {
		writeExpenseSection(pdf, report.Expenses)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format("2006-01-02"), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func tripSubtitle(t *domain.Trip) string {
	s := t.Destination
	if t.BeginningDate != nil && t.EndingDate != nil {
		s = fmt.Sprintf("%s, %s to %s", s,
			t.BeginningDate.Format("Jan 2, 2006"), t.EndingDate.Format("Jan 2, 2006"))
	}
	return s
}

func writeItinerarySection(pdf *fpdf.Fpdf, items []domain.ItineraryItem) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Itinerary", "", 1, "L", false, 0, "")

	widths := []float64{25, 60, 45, 60}
	headers := []string{"Type", "Title", "When", "Details"}
	writeTableHeader(pdf, headers, widths)

	pdf.SetFont("Helvetica", "", 9)
	for i := range items {
		it := &items[i]
		when := ""
		if it.StartTime != nil {
			when = it.StartTime.Format("Jan 2 15:04")
		}
		details := it.Location
		if it.Type == domain.ItineraryFlight && it.FlightNumber != "" {
			details = it.Airline + " " + it.FlightNumber
			if it.ConfirmationCode != "" {
				details += " (" + it.ConfirmationCode + ")"
			}
		}
		cells := []string{string(it.Type), it.Title, when, details}
		for j, c := range cells {
			pdf.CellFormat(widths[j], 6, c, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

func writeExpenseSection(pdf *fpdf.Fpdf, expenses []domain.Expense) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Expenses", "", 1, "L", false, 0, "")

	widths := []float64{25, 55, 35, 35, 40}
	headers := []string{"Date", "Merchant", "Category", "Amount", "Payment"}
	writeTableHeader(pdf, headers, widths)

	pdf.SetFont("Helvetica", "", 9)
	totals := make(map[string]decimal.Decimal)
	for i := range expenses {
		e := &expenses[i]
		cells := []string{
			formatDate(e.ExpenseDate),
			e.Merchant,
			string(e.Category),
			e.Amount.StringFixed(2) + " " + e.Currency,
			e.PaymentMethod,
		}
		for j, c := range cells {
			pdf.CellFormat(widths[j], 6, c, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		totals[e.Currency] = totals[e.Currency].Add(e.Amount)
	}

	pdf.SetFont("Helvetica", "B", 10)
	for currency, total := range totals {
		pdf.CellFormat(widths[0]+widths[1], 7, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, "Total", "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, total.StringFixed(2)+" "+currency, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func writeTableHeader(pdf *fpdf.Fpdf, headers []string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}
