// Package handler contains the gin HTTP handlers and the shared response
// envelope.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripstack/internal/domain"
	"tripstack/internal/extract"
	"tripstack/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain and extraction errors to HTTP status
// codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var validationErr *extract.ValidationError
	var upstreamErr *extract.UpstreamError
	var extractionErr *extract.ExtractionError
	var rateLimitErr *extract.RateLimitError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Error()
	case errors.As(err, &rateLimitErr):
		return http.StatusTooManyRequests, "RATE_LIMITED", "extraction providers are rate limited; retry later"
	case errors.As(err, &upstreamErr):
		if upstreamErr.Status >= 500 || upstreamErr.Status == 0 {
			return http.StatusBadGateway, "UPSTREAM_ERROR", "extraction provider is unavailable"
		}
		return http.StatusInternalServerError, "UPSTREAM_ERROR", "extraction provider rejected the request"
	case errors.As(err, &extractionErr):
		return http.StatusInternalServerError, "EXTRACTION_ERROR", "model did not return a structured result"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already registered"
	case errors.Is(err, domain.ErrTripNotFound):
		return http.StatusNotFound, "TRIP_NOT_FOUND", "trip not found"
	case errors.Is(err, domain.ErrExpenseNotFound):
		return http.StatusNotFound, "EXPENSE_NOT_FOUND", "expense not found"
	case errors.Is(err, domain.ErrItineraryNotFound):
		return http.StatusNotFound, "ITINERARY_NOT_FOUND", "itinerary item not found"
	case errors.Is(err, domain.ErrReceiptNotFound):
		return http.StatusNotFound, "RECEIPT_NOT_FOUND", "receipt file not found"
	case errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusBadRequest, "INVALID_CATEGORY", "invalid expense category"
	case errors.Is(err, domain.ErrInvalidItemType):
		return http.StatusBadRequest, "INVALID_ITEM_TYPE", "invalid itinerary item type"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrCalendarNotLinked):
		return http.StatusBadRequest, "CALENDAR_NOT_LINKED", "google calendar is not linked; reconnect your account"
	case errors.Is(err, domain.ErrTripDatesMissing):
		return http.StatusBadRequest, "TRIP_DATES_MISSING", "trip needs beginning and ending dates to sync"
	case errors.Is(err, domain.ErrNotSubscribed):
		return http.StatusForbidden, "NOT_SUBSCRIBED", "active subscription required"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps an error and sends the appropriate error response.
// Internal errors keep their detail out of the response body; the request
// logger records the status.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		_ = c.Error(err)
	}
	RespondError(c, status, code, msg)
}

// authUserID extracts the authenticated user ID, writing an error response
// when the context is missing.
func authUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a UUID path parameter, writing an error response when
// it is malformed.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
