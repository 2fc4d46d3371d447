package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edupoint/timetable-api/internal/middleware"
	"github.com/edupoint/timetable-api/internal/service"
	appErrors "github.com/edupoint/timetable-api/pkg/errors"
	"github.com/edupoint/timetable-api/pkg/response"
)

// AnalyticsHandler exposes timetable analytics endpoints.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	metrics   *service.MetricsService
}

// NewAnalyticsHandler constructs the analytics handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService, metrics *service.MetricsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, metrics: metrics}
}

// TeacherWorkload godoc
// @Summary Sessions assigned per teacher
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/teacher-workload [get]
func (h *AnalyticsHandler) TeacherWorkload(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	workloads, cacheHit, err := h.analytics.TeacherWorkload(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, workloads, nil, meta)
}

// RoomUtilization godoc
// @Summary Sessions assigned per room
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/room-utilization [get]
func (h *AnalyticsHandler) RoomUtilization(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	utilization, cacheHit, err := h.analytics.RoomUtilization(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, utilization, nil, meta)
}

// PeriodLoad godoc
// @Summary Sessions assigned per period start time
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/period-load [get]
func (h *AnalyticsHandler) PeriodLoad(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	loads, cacheHit, err := h.analytics.PeriodLoad(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, loads, nil, meta)
}

// Overview godoc
// @Summary Timetable coverage summary
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/overview [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	overview, err := h.analytics.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}

// SystemMetrics godoc
// @Summary Aggregated runtime metrics snapshot
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/system [get]
func (h *AnalyticsHandler) SystemMetrics(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	response.JSON(c, http.StatusOK, h.analytics.SystemMetrics(), nil)
}
