package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edupoint/timetable-api/internal/service"
	appErrors "github.com/edupoint/timetable-api/pkg/errors"
	"github.com/edupoint/timetable-api/pkg/response"
)

// TimetableHandler wires timetable generation and reads to HTTP routes.
type TimetableHandler struct {
	timetable *service.TimetableService
	exports   *service.ExportService
}

// NewTimetableHandler constructs a new TimetableHandler. Exports may be
// nil when the export feature is disabled.
func NewTimetableHandler(timetable *service.TimetableService, exports *service.ExportService) *TimetableHandler {
	return &TimetableHandler{timetable: timetable, exports: exports}
}

// Generate godoc
// @Summary Generate the weekly timetable
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body service.GenerateTimetableRequest false "Generation scope"
// @Success 200 {object} response.Envelope
// @Router /timetable/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req service.GenerateTimetableRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
			return
		}
	}
	result, err := h.timetable.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// List godoc
// @Summary List the persisted timetable
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) List(c *gin.Context) {
	entries, err := h.timetable.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Export godoc
// @Summary Export the timetable as CSV or PDF
// @Tags Timetable
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Export format (csv or pdf)"
// @Success 200 {file} file
// @Router /timetable/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	format := service.ExportFormat(strings.ToLower(c.DefaultQuery("format", "csv")))
	payload, err := h.exports.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+payload.Filename+`"`)
	c.Data(http.StatusOK, payload.ContentType, payload.Data)
}
