package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-ews-api/internal/middleware"
	"github.com/noah-isme/student-ews-api/internal/models"
	appErrors "github.com/noah-isme/student-ews-api/pkg/errors"
	"github.com/noah-isme/student-ews-api/pkg/response"
)

type monitoringService interface {
	Summary(ctx context.Context, studentID string) (*models.MonitoringSummary, bool, error)
}

// MonitoringHandler wires the monitoring service to HTTP endpoints.
type MonitoringHandler struct {
	service monitoringService
}

// NewMonitoringHandler constructs the handler.
func NewMonitoringHandler(service monitoringService) *MonitoringHandler {
	return &MonitoringHandler{service: service}
}

// Summary godoc
// @Summary Monitoring summary for one student
// @Tags Monitoring
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/monitoring [get]
func (h *MonitoringHandler) Summary(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	studentID := strings.TrimSpace(c.Param("id"))
	if studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student id is required"))
		return
	}

	start := time.Now()
	summary, cacheHit, err := h.service.Summary(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, summary, meta)
}
