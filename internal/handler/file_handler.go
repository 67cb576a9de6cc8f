package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripstack/internal/service"
)

// FileHandler handles receipt file endpoints.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload handles POST /api/v1/receipts (multipart form, field "file").
// The receipt is stored and queued for scanning.
func (h *FileHandler) Upload(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "missing file field")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "could not read uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	receipt, err := h.fileService.Upload(c.Request.Context(), service.ReceiptUploadInput{
		UserID: userID,
		File:   file,
		Header: fileHeader,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, receipt)
}

// List handles GET /api/v1/receipts
func (h *FileHandler) List(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	offset, limit := paginationParams(c)
	receipts, total, err := h.fileService.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, receipts, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/receipts/:id. Returns receipt metadata including
// scan status and any suggested expense fields.
func (h *FileHandler) Get(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	fileID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	receipt, err := h.fileService.GetByID(c.Request.Context(), userID, fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, receipt)
}

// DownloadURL handles GET /api/v1/receipts/:id/download
func (h *FileHandler) DownloadURL(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	fileID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	url, err := h.fileService.GetDownloadURL(c.Request.Context(), userID, fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// Delete handles DELETE /api/v1/receipts/:id
func (h *FileHandler) Delete(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	fileID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), userID, fileID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": fileID})
}
