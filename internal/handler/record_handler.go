package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-ews-api/internal/dto"
	"github.com/noah-isme/student-ews-api/internal/models"
	appErrors "github.com/noah-isme/student-ews-api/pkg/errors"
	"github.com/noah-isme/student-ews-api/pkg/response"
)

type recordService interface {
	AddAcademic(ctx context.Context, studentID string, req dto.CreateAcademicRecordRequest) (*models.AcademicRecord, error)
	ListAcademics(ctx context.Context, studentID string) ([]models.AcademicRecord, error)
	AddAttendance(ctx context.Context, studentID string, req dto.CreateAttendanceRecordRequest) (*models.AttendanceRecord, error)
	ListAttendance(ctx context.Context, studentID string) ([]models.AttendanceRecord, error)
	SetFinancial(ctx context.Context, studentID string, req dto.SetFinancialRecordRequest) (*models.FinancialRecord, error)
	GetFinancial(ctx context.Context, studentID string) (*models.FinancialRecord, error)
	AddCurricular(ctx context.Context, studentID string, req dto.CreateCurricularUnitRequest) (*models.CurricularUnit, error)
	ListCurricular(ctx context.Context, studentID string) ([]models.CurricularUnit, error)
}

// RecordHandler wires the record ingestion service to HTTP endpoints.
type RecordHandler struct {
	service recordService
}

// NewRecordHandler constructs the handler.
func NewRecordHandler(service recordService) *RecordHandler {
	return &RecordHandler{service: service}
}

func studentIDParam(c *gin.Context) (string, bool) {
	studentID := strings.TrimSpace(c.Param("id"))
	if studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student id is required"))
		return "", false
	}
	return studentID, true
}

// CreateAcademic godoc
// @Summary Append a semester academic record
// @Tags Records
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body dto.CreateAcademicRecordRequest true "Academic record"
// @Success 201 {object} response.Envelope
// @Router /students/{id}/academics [post]
func (h *RecordHandler) CreateAcademic(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	var req dto.CreateAcademicRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	record, err := h.service.AddAcademic(c.Request.Context(), studentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// ListAcademics godoc
// @Summary Academic history for a student
// @Tags Records
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/academics [get]
func (h *RecordHandler) ListAcademics(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	records, err := h.service.ListAcademics(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// CreateAttendance godoc
// @Summary Append a semester attendance record
// @Tags Records
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body dto.CreateAttendanceRecordRequest true "Attendance record"
// @Success 201 {object} response.Envelope
// @Router /students/{id}/attendance [post]
func (h *RecordHandler) CreateAttendance(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	var req dto.CreateAttendanceRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	record, err := h.service.AddAttendance(c.Request.Context(), studentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// ListAttendance godoc
// @Summary Attendance history for a student
// @Tags Records
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/attendance [get]
func (h *RecordHandler) ListAttendance(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	records, err := h.service.ListAttendance(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// SetFinancial godoc
// @Summary Replace the student's financial standing
// @Tags Records
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body dto.SetFinancialRecordRequest true "Financial record"
// @Success 201 {object} response.Envelope
// @Router /students/{id}/financial [post]
func (h *RecordHandler) SetFinancial(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	var req dto.SetFinancialRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	record, err := h.service.SetFinancial(c.Request.Context(), studentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// GetFinancial godoc
// @Summary Current financial standing for a student
// @Tags Records
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/financial [get]
func (h *RecordHandler) GetFinancial(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	record, err := h.service.GetFinancial(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// CreateCurricular godoc
// @Summary Append a semester curricular snapshot
// @Tags Records
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body dto.CreateCurricularUnitRequest true "Curricular snapshot"
// @Success 201 {object} response.Envelope
// @Router /students/{id}/curricular [post]
func (h *RecordHandler) CreateCurricular(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	var req dto.CreateCurricularUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	unit, err := h.service.AddCurricular(c.Request.Context(), studentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, unit)
}

// ListCurricular godoc
// @Summary Curricular history for a student
// @Tags Records
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/curricular [get]
func (h *RecordHandler) ListCurricular(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	units, err := h.service.ListCurricular(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, units)
}
