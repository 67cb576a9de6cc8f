package export_test

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripstack/internal/domain"
	"tripstack/internal/export"
)

func sampleExpense(tripID *uuid.UUID) domain.Expense {
	date := time.Date(2026, 3, 2, 13, 30, 0, 0, time.UTC)
	return domain.Expense{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		TripID:        tripID,
		Merchant:      "Cafe Delta",
		Description:   "Team lunch",
		Amount:        decimal.NewFromFloat(42.5),
		Currency:      "EUR",
		Category:      domain.CategoryMeals,
		ExpenseDate:   &date,
		PaymentMethod: "visa ending 1234",
	}
}

func TestCSVWriter_WritesHeaderAndRows(t *testing.T) {
	tripID := uuid.New()
	exp := sampleExpense(&tripID)

	var buf bytes.Buffer
	w := export.NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteExpenses([]domain.Expense{exp}))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{
		"Date", "Merchant", "Description", "Category",
		"Amount", "Currency", "Payment Method", "Trip ID",
	}, records[0])
	assert.Equal(t, []string{
		"2026-03-02", "Cafe Delta", "Team lunch", "meals",
		"42.50", "EUR", "visa ending 1234", tripID.String(),
	}, records[1])
}

func TestCSVWriter_NilDateAndTripAreEmpty(t *testing.T) {
	exp := sampleExpense(nil)
	exp.ExpenseDate = nil

	var buf bytes.Buffer
	w := export.NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteExpenses([]domain.Expense{exp}))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "", records[1][0])
	assert.Equal(t, "", records[1][7])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Spring Offsite 2026", "Spring_Offsite_2026"},
		{"trip/to: Lisbon!", "trip_to_Lisbon"},
		{"__already__clean__", "already_clean"},
		{"normal-name_1", "normal-name_1"},
		{strings.Repeat("a", 150), strings.Repeat("a", 100)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, export.SanitizeFilename(tt.in), "input %q", tt.in)
	}
}

func TestBuildFilename(t *testing.T) {
	got := export.BuildFilename("Spring Offsite", "pdf")

	want := fmt.Sprintf("Spring_Offsite_%s.pdf", time.Now().Format("2006-01-02"))
	assert.Equal(t, want, got)
}
