package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edupoint/timetable-api/internal/models"
	"github.com/edupoint/timetable-api/internal/service"
	appErrors "github.com/edupoint/timetable-api/pkg/errors"
	"github.com/edupoint/timetable-api/pkg/response"
)

// TimeSlotHandler wires timeslot services to HTTP routes.
type TimeSlotHandler struct {
	slots *service.TimeSlotService
}

// NewTimeSlotHandler constructs a new TimeSlotHandler.
func NewTimeSlotHandler(slots *service.TimeSlotService) *TimeSlotHandler {
	return &TimeSlotHandler{slots: slots}
}

// List godoc
// @Summary List timeslots
// @Tags Timeslots
// @Produce json
// @Param day query string false "Filter by day"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /timeslots [get]
func (h *TimeSlotHandler) List(c *gin.Context) {
	filter := models.TimeSlotFilter{
		Day:       strings.TrimSpace(c.Query("day")),
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	slots, pagination, err := h.slots.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, pagination)
}

// Get godoc
// @Summary Get timeslot detail
// @Tags Timeslots
// @Produce json
// @Param id path string true "Timeslot ID"
// @Success 200 {object} response.Envelope
// @Router /timeslots/{id} [get]
func (h *TimeSlotHandler) Get(c *gin.Context) {
	slot, err := h.slots.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// Create godoc
// @Summary Create timeslot
// @Tags Timeslots
// @Accept json
// @Produce json
// @Param payload body service.CreateTimeSlotRequest true "Timeslot payload"
// @Success 201 {object} response.Envelope
// @Router /timeslots [post]
func (h *TimeSlotHandler) Create(c *gin.Context) {
	var req service.CreateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timeslot payload"))
		return
	}
	slot, err := h.slots.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// Update godoc
// @Summary Update timeslot
// @Tags Timeslots
// @Accept json
// @Produce json
// @Param id path string true "Timeslot ID"
// @Param payload body service.UpdateTimeSlotRequest true "Timeslot payload"
// @Success 200 {object} response.Envelope
// @Router /timeslots/{id} [put]
func (h *TimeSlotHandler) Update(c *gin.Context) {
	var req service.UpdateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timeslot payload"))
		return
	}
	slot, err := h.slots.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// Delete godoc
// @Summary Delete timeslot
// @Tags Timeslots
// @Param id path string true "Timeslot ID"
// @Success 204
// @Router /timeslots/{id} [delete]
func (h *TimeSlotHandler) Delete(c *gin.Context) {
	if err := h.slots.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
