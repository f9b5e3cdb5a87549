package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-ews-api/internal/dto"
	"github.com/noah-isme/student-ews-api/internal/middleware"
	"github.com/noah-isme/student-ews-api/internal/models"
	appErrors "github.com/noah-isme/student-ews-api/pkg/errors"
	"github.com/noah-isme/student-ews-api/pkg/response"
)

type riskService interface {
	Predict(ctx context.Context, studentID string) (*models.RiskAssessment, bool, error)
	Batch(ctx context.Context, studentIDs []string) []dto.BatchRiskItem
	BatchForCounselor(ctx context.Context, counselorID string) ([]dto.BatchRiskItem, error)
	ReloadModel(ctx context.Context, path string) (string, error)
}

type profileResolver interface {
	GetByUserID(ctx context.Context, userID string) (*models.StudentProfile, error)
}

// RiskHandler wires the prediction service to HTTP endpoints.
type RiskHandler struct {
	service  riskService
	profiles profileResolver
	maxBatch int
}

// NewRiskHandler constructs the handler.
func NewRiskHandler(service riskService, profiles profileResolver, maxBatch int) *RiskHandler {
	if maxBatch <= 0 {
		maxBatch = 100
	}
	return &RiskHandler{service: service, profiles: profiles, maxBatch: maxBatch}
}

// Get godoc
// @Summary Dropout risk for one student
// @Tags Risk
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/risk [get]
func (h *RiskHandler) Get(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	studentID := strings.TrimSpace(c.Param("id"))
	if studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student id is required"))
		return
	}

	// Students reach this route through self-access, where :id is their
	// own user id. Resolve it to the profile id the predictor works on.
	if claims := claimsFromContext(c); claims != nil && claims.Role == models.RoleStudent && h.profiles != nil {
		profile, err := h.profiles.GetByUserID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, err)
			return
		}
		studentID = profile.ID
	}

	start := time.Now()
	assessment, cacheHit, err := h.service.Predict(c.Request.Context(), studentID)
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
	response.JSON(c, http.StatusOK, assessment, meta)
}

// Batch godoc
// @Summary Dropout risk for a list of students
// @Tags Risk
// @Accept json
// @Produce json
// @Param request body dto.BatchRiskRequest true "Student ID list; empty for the caller's roster"
// @Success 200 {object} response.Envelope
// @Router /students/risk/batch [post]
func (h *RiskHandler) Batch(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req dto.BatchRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if len(req.StudentIDs) > h.maxBatch {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("batch size exceeds the limit of %d students", h.maxBatch)))
		return
	}

	if len(req.StudentIDs) == 0 {
		claims := claimsFromContext(c)
		if claims == nil || claims.Role != models.RoleCounselor {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student_ids is required"))
			return
		}
		items, err := h.service.BatchForCounselor(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, items)
		return
	}

	items := h.service.Batch(c.Request.Context(), req.StudentIDs)
	response.JSON(c, http.StatusOK, items)
}

// Reload godoc
// @Summary Reload the risk model artifact
// @Tags Risk
// @Accept json
// @Produce json
// @Param request body dto.ReloadModelRequest false "Optional artifact path override"
// @Success 200 {object} response.Envelope
// @Router /model/reload [post]
func (h *RiskHandler) Reload(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req dto.ReloadModelRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
			return
		}
	}

	version, err := h.service.ReloadModel(c.Request.Context(), req.Path)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ReloadModelResponse{Version: version})
}
