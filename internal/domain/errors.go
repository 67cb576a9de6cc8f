package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrTripNotFound        = errors.New("trip not found")
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrItineraryNotFound   = errors.New("itinerary item not found")
	ErrInvalidCategory     = errors.New("invalid expense category")
	ErrInvalidItemType     = errors.New("invalid itinerary item type")
	ErrReceiptNotFound     = errors.New("receipt file not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrCalendarNotLinked   = errors.New("google calendar is not linked")
	ErrTripDatesMissing    = errors.New("trip has no beginning or ending date")
	ErrNotSubscribed       = errors.New("active subscription required")
)
