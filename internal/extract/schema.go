package extract

import (
	"encoding/json"
	"fmt"

	"tripstack/internal/port"
)

// Kind selects which fixed field set an extraction targets.
type Kind string

const (
	KindTrip    Kind = "trip"
	KindExpense Kind = "expense"
)

// FieldType is the scalar type of an extraction field.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
)

// FieldSpec describes one field of the extraction schema.
type FieldSpec struct {
	Name        string
	Type        FieldType
	Description string
	Enum        []string
}

// tripFields is the fixed field set for trip extraction. Dates are ISO
// YYYY-MM-DD strings.
var tripFields = []FieldSpec{
	{Name: "trip_name", Type: FieldString, Description: "Short descriptive name for the trip"},
	{Name: "destination", Type: FieldString, Description: "Primary destination city or region"},
	{Name: "beginning_date", Type: FieldString, Description: "Trip start date (YYYY-MM-DD)"},
	{Name: "ending_date", Type: FieldString, Description: "Trip end date (YYYY-MM-DD)"},
	{Name: "purpose", Type: FieldString, Description: "Purpose of the trip, e.g. business or leisure"},
	{Name: "airline", Type: FieldString, Description: "Airline name for the main flight"},
	{Name: "flight_number", Type: FieldString, Description: "Flight number, e.g. UA123"},
	{Name: "confirmation_code", Type: FieldString, Description: "Booking confirmation or record locator"},
	{Name: "hotel_name", Type: FieldString, Description: "Hotel or lodging name"},
	{Name: "check_in_date", Type: FieldString, Description: "Lodging check-in date (YYYY-MM-DD)"},
	{Name: "check_out_date", Type: FieldString, Description: "Lodging check-out date (YYYY-MM-DD)"},
	{Name: "notes", Type: FieldString, Description: "Any other relevant trip details"},
}

// expenseFields is the fixed field set for expense extraction.
var expenseFields = []FieldSpec{
	{Name: "merchant", Type: FieldString, Description: "Merchant or vendor name"},
	{Name: "description", Type: FieldString, Description: "Short description of the purchase"},
	{Name: "amount", Type: FieldNumber, Description: "Total amount paid"},
	{Name: "currency", Type: FieldString, Description: "ISO 4217 currency code, e.g. USD"},
	{Name: "expense_date", Type: FieldString, Description: "Date of the expense (YYYY-MM-DD)"},
	{Name: "category", Type: FieldString, Description: "Expense category",
		Enum: []string{"airfare", "lodging", "meals", "transport", "entertainment", "supplies", "other"}},
	{Name: "payment_method", Type: FieldString, Description: "How the expense was paid, e.g. visa ending 1234"},
	{Name: "reimbursable", Type: FieldBoolean, Description: "Whether the expense is reimbursable"},
}

// FieldsFor returns the field specs for a kind.
func FieldsFor(kind Kind) ([]FieldSpec, error) {
	switch kind {
	case KindTrip:
		return tripFields, nil
	case KindExpense:
		return expenseFields, nil
	default:
		return nil, fmt.Errorf("unknown extraction kind: %s", kind)
	}
}

// ToolSchemaFor builds the JSON Schema for the single structured-output tool
// declared on every model call. All fields are optional: the model reports
// only what it found.
func ToolSchemaFor(kind Kind) (port.ToolSchema, error) {
	fields, err := FieldsFor(kind)
	if err != nil {
		return port.ToolSchema{}, err
	}

	props := make(map[string]any, len(fields))
	for _, f := range fields {
		p := map[string]any{
			"type":        string(f.Type),
			"description": f.Description,
		}
		if len(f.Enum) > 0 {
			p["enum"] = f.Enum
		}
		props[f.Name] = p
	}

	params, err := json.Marshal(map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	})
	if err != nil {
		return port.ToolSchema{}, fmt.Errorf("marshaling tool parameters: %w", err)
	}

	return port.ToolSchema{
		Name:        fmt.Sprintf("record_%s_fields", kind),
		Description: fmt.Sprintf("Record the %s fields found in the conversation and attachments.", kind),
		Parameters:  params,
	}, nil
}
