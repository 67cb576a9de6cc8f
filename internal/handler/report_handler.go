package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripstack/internal/export"
	"tripstack/internal/service"
)

// ReportHandler handles report download and email endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// TripReportPDF handles GET /api/v1/trips/:id/report.pdf
func (h *ReportHandler) TripReportPDF(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	pdf, filename, err := h.reportService.TripReportPDF(c.Request.Context(), userID, tripID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// TripExpensesCSV handles GET /api/v1/trips/:id/expenses.csv
func (h *ReportHandler) TripExpensesCSV(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	h.expensesCSV(c, userID, &tripID)
}

// ExpensesCSV handles GET /api/v1/expenses/export.csv
func (h *ReportHandler) ExpensesCSV(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	h.expensesCSV(c, userID, nil)
}

func (h *ReportHandler) expensesCSV(c *gin.Context, userID uuid.UUID, tripID *uuid.UUID) {
	data, err := h.reportService.ExpensesCSV(c.Request.Context(), userID, tripID)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("expenses", "csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// TripExpensesXLSX handles GET /api/v1/trips/:id/expenses.xlsx
func (h *ReportHandler) TripExpensesXLSX(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	data, err := h.reportService.ExpensesXLSX(c.Request.Context(), userID, &tripID)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("expenses", "xlsx")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// EmailTripReport handles POST /api/v1/trips/:id/report/email
func (h *ReportHandler) EmailTripReport(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.reportService.EmailTripReport(c.Request.Context(), userID, tripID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"emailed": tripID})
}
