package domain

// ItineraryItemType classifies itinerary entries.
type ItineraryItemType string

const (
	ItineraryFlight    ItineraryItemType = "flight"
	ItineraryLodging   ItineraryItemType = "lodging"
	ItineraryTransport ItineraryItemType = "transport"
	ItineraryActivity  ItineraryItemType = "activity"
	ItineraryMeeting   ItineraryItemType = "meeting"
	ItineraryOther     ItineraryItemType = "other"
)

// ValidItineraryItemTypes lists the accepted itinerary item types.
var ValidItineraryItemTypes = map[ItineraryItemType]bool{
	ItineraryFlight:    true,
	ItineraryLodging:   true,
	ItineraryTransport: true,
	ItineraryActivity:  true,
	ItineraryMeeting:   true,
	ItineraryOther:     true,
}

// ExpenseCategory is the enumerated set of expense categories. The extraction
// schema advertises the same set, so model output maps directly onto it.
type ExpenseCategory string

const (
	CategoryAirfare       ExpenseCategory = "airfare"
	CategoryLodging       ExpenseCategory = "lodging"
	CategoryMeals         ExpenseCategory = "meals"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryEntertainment ExpenseCategory = "entertainment"
	CategorySupplies      ExpenseCategory = "supplies"
	CategoryOther         ExpenseCategory = "other"
)

// ValidExpenseCategories lists the accepted expense categories.
var ValidExpenseCategories = map[ExpenseCategory]bool{
	CategoryAirfare:       true,
	CategoryLodging:       true,
	CategoryMeals:         true,
	CategoryTransport:     true,
	CategoryEntertainment: true,
	CategorySupplies:      true,
	CategoryOther:         true,
}

// SubscriptionTier is the billing tier assigned to a profile.
type SubscriptionTier string

const (
	TierFree SubscriptionTier = "free"
	TierPro  SubscriptionTier = "pro"
	TierTeam SubscriptionTier = "team"
)

// ScanStatus tracks the lifecycle of a queued receipt scan.
type ScanStatus string

const (
	ScanStatusQueued     ScanStatus = "queued"
	ScanStatusProcessing ScanStatus = "processing"
	ScanStatusCompleted  ScanStatus = "completed"
	ScanStatusFailed     ScanStatus = "failed"
)

// ReceiptContentTypes maps the MIME types accepted for receipt uploads to
// their canonical extension.
var ReceiptContentTypes = map[string]string{
	"application/pdf": "pdf",
	"image/jpeg":      "jpg",
	"image/png":       "png",
}
