package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docext/internal/export"
	"docext/internal/service"
)

// ExtractionHandler handles document extraction endpoints.
type ExtractionHandler struct {
	extractionService service.ExtractionService
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extractionService service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{extractionService: extractionService}
}

// Upload handles POST /api/v1/extractions. The uploaded image is run
// through the full pipeline synchronously and the resulting record is
// returned.
func (h *ExtractionHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	rec, err := h.extractionService.ExtractFromUpload(c.Request.Context(), service.ExtractUploadInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, rec)
}

// Get handles GET /api/v1/extractions/:id
func (h *ExtractionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID")
		return
	}

	rec, err := h.extractionService.GetRecord(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rec)
}

// List handles GET /api/v1/extractions
func (h *ExtractionHandler) List(c *gin.Context) {
	limit, offset := paginationParams(c)

	recs, err := h.extractionService.ListRecords(c.Request.Context(), limit, offset)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, recs, PagMeta{Count: len(recs), Offset: offset, Limit: limit})
}

// Export handles GET /api/v1/extractions/export?format=csv|xlsx
func (h *ExtractionHandler) Export(c *gin.Context) {
	limit, offset := paginationParams(c)

	recs, err := h.extractionService.ListRecords(c.Request.Context(), limit, offset)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("extractions-%s", time.Now().UTC().Format("20060102-150405"))

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".csv"))
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		_, _ = c.Writer.Write(export.BOM)
		w := export.NewCSVWriter(c.Writer)
		if err := w.WriteHeader(); err != nil {
			return
		}
		if err := w.WriteRecords(recs); err != nil {
			return
		}
		w.Flush()
	case "xlsx":
		buf, err := export.WriteXLSX(recs)
		if err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".xlsx"))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
	}
}

func paginationParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
