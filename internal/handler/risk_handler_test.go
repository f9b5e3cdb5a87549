package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-ews-api/internal/dto"
	"github.com/noah-isme/student-ews-api/internal/middleware"
	"github.com/noah-isme/student-ews-api/internal/models"
	appErrors "github.com/noah-isme/student-ews-api/pkg/errors"
)

type fakeRiskService struct {
	assessment *models.RiskAssessment
	cacheHit   bool
	predictErr error
	items      []dto.BatchRiskItem
	rosterErr  error
	version    string
	reloadErr  error

	batchIDs    []string
	counselorID string
	predictedID string
}

func (f *fakeRiskService) Predict(_ context.Context, studentID string) (*models.RiskAssessment, bool, error) {
	f.predictedID = studentID
	if f.predictErr != nil {
		return nil, false, f.predictErr
	}
	assessment := *f.assessment
	assessment.StudentID = studentID
	return &assessment, f.cacheHit, nil
}

type fakeProfileResolver struct {
	byUser map[string]*models.StudentProfile
}

func (f *fakeProfileResolver) GetByUserID(_ context.Context, userID string) (*models.StudentProfile, error) {
	if profile, ok := f.byUser[userID]; ok {
		return profile, nil
	}
	return nil, appErrors.ErrStudentNotFound
}

func (f *fakeRiskService) Batch(_ context.Context, studentIDs []string) []dto.BatchRiskItem {
	f.batchIDs = studentIDs
	return f.items
}

func (f *fakeRiskService) BatchForCounselor(_ context.Context, counselorID string) ([]dto.BatchRiskItem, error) {
	if f.rosterErr != nil {
		return nil, f.rosterErr
	}
	f.counselorID = counselorID
	return f.items, nil
}

func (f *fakeRiskService) ReloadModel(_ context.Context, _ string) (string, error) {
	if f.reloadErr != nil {
		return "", f.reloadErr
	}
	return f.version, nil
}

func riskRouter(service riskService, claims *models.JWTClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if claims != nil {
		router.Use(func(c *gin.Context) {
			c.Set(middleware.ContextUserKey, claims)
			c.Next()
		})
	}
	h := NewRiskHandler(service, nil, 3)
	router.GET("/students/:id/risk", h.Get)
	router.POST("/students/risk/batch", h.Batch)
	router.POST("/model/reload", h.Reload)
	return router
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRiskHandlerGet(t *testing.T) {
	service := &fakeRiskService{assessment: &models.RiskAssessment{RiskLevel: models.RiskHigh, DropoutProbability: 0.8}}
	router := riskRouter(service, nil)

	req, _ := http.NewRequest(http.MethodGet, "/students/student-1/risk", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"risk_level":"high"`)
	assert.Contains(t, resp.Body.String(), `"processing_time_ms"`)
}

func selfRiskRouter(service riskService, profiles profileResolver, claims *models.JWTClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, claims)
		c.Next()
	})
	h := NewRiskHandler(service, profiles, 3)
	router.GET("/students/:id/risk",
		middleware.RBAC(string(models.RoleCounselor), string(models.RoleAdmin), middleware.Self),
		h.Get)
	return router
}

func TestRiskHandlerGetSelfAccessResolvesProfile(t *testing.T) {
	service := &fakeRiskService{assessment: &models.RiskAssessment{RiskLevel: models.RiskMedium}}
	profiles := &fakeProfileResolver{byUser: map[string]*models.StudentProfile{
		"user-1": {ID: "student-1", UserID: "user-1"},
	}}
	claims := &models.JWTClaims{UserID: "user-1", Role: models.RoleStudent}
	router := selfRiskRouter(service, profiles, claims)

	req, _ := http.NewRequest(http.MethodGet, "/students/user-1/risk", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "student-1", service.predictedID)
	assert.Contains(t, resp.Body.String(), `"student_id":"student-1"`)
}

func TestRiskHandlerGetSelfAccessRejectsOtherIDs(t *testing.T) {
	service := &fakeRiskService{assessment: &models.RiskAssessment{RiskLevel: models.RiskMedium}}
	profiles := &fakeProfileResolver{byUser: map[string]*models.StudentProfile{
		"user-1": {ID: "student-1", UserID: "user-1"},
	}}
	claims := &models.JWTClaims{UserID: "user-1", Role: models.RoleStudent}
	router := selfRiskRouter(service, profiles, claims)

	req, _ := http.NewRequest(http.MethodGet, "/students/student-1/risk", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusForbidden, resp.Code)
	assert.Empty(t, service.predictedID)
}

func TestRiskHandlerGetSelfAccessWithoutProfile(t *testing.T) {
	service := &fakeRiskService{assessment: &models.RiskAssessment{RiskLevel: models.RiskMedium}}
	claims := &models.JWTClaims{UserID: "user-1", Role: models.RoleStudent}
	router := selfRiskRouter(service, &fakeProfileResolver{}, claims)

	req, _ := http.NewRequest(http.MethodGet, "/students/user-1/risk", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Empty(t, service.predictedID)
}

func TestRiskHandlerGetNotFound(t *testing.T) {
	service := &fakeRiskService{predictErr: appErrors.ErrStudentNotFound}
	router := riskRouter(service, nil)

	req, _ := http.NewRequest(http.MethodGet, "/students/missing/risk", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), `"error"`)
}

func TestRiskHandlerBatch(t *testing.T) {
	service := &fakeRiskService{items: []dto.BatchRiskItem{
		{StudentID: "student-1", RiskAssessment: &models.RiskAssessment{StudentID: "student-1", RiskLevel: models.RiskLow}},
		{StudentID: "missing", Error: "student profile not found"},
	}}
	router := riskRouter(service, nil)

	body, _ := json.Marshal(dto.BatchRiskRequest{StudentIDs: []string{"student-1", "missing"}})
	req, _ := http.NewRequest(http.MethodPost, "/students/risk/batch", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{"student-1", "missing"}, service.batchIDs)
	assert.Contains(t, resp.Body.String(), `"student profile not found"`)
}

func TestRiskHandlerBatchTooLarge(t *testing.T) {
	router := riskRouter(&fakeRiskService{}, nil)

	body, _ := json.Marshal(dto.BatchRiskRequest{StudentIDs: []string{"a", "b", "c", "d"}})
	req, _ := http.NewRequest(http.MethodPost, "/students/risk/batch", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "batch size exceeds")
}

func TestRiskHandlerBatchEmptyUsesCounselorRoster(t *testing.T) {
	service := &fakeRiskService{items: []dto.BatchRiskItem{{StudentID: "student-1"}}}
	claims := &models.JWTClaims{UserID: "counselor-1", Role: models.RoleCounselor}
	router := riskRouter(service, claims)

	req, _ := http.NewRequest(http.MethodPost, "/students/risk/batch", bytes.NewBufferString(`{"student_ids":[]}`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "counselor-1", service.counselorID)
}

func TestRiskHandlerBatchEmptyRejectedForAdmin(t *testing.T) {
	claims := &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin}
	router := riskRouter(&fakeRiskService{}, claims)

	req, _ := http.NewRequest(http.MethodPost, "/students/risk/batch", bytes.NewBufferString(`{"student_ids":[]}`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "student_ids is required")
}

func TestRiskHandlerReload(t *testing.T) {
	service := &fakeRiskService{version: "2024-06-01"}
	router := riskRouter(service, nil)

	req, _ := http.NewRequest(http.MethodPost, "/model/reload", bytes.NewBufferString(`{"path":"/models/next.json"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"version":"2024-06-01"`)
}

func TestRiskHandlerReloadWithoutBody(t *testing.T) {
	service := &fakeRiskService{version: "2024-06-01"}
	router := riskRouter(service, nil)

	req, _ := http.NewRequest(http.MethodPost, "/model/reload", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)
}

func TestRiskHandlerReloadRejected(t *testing.T) {
	service := &fakeRiskService{reloadErr: appErrors.Clone(appErrors.ErrValidation, "model artifact rejected")}
	router := riskRouter(service, nil)

	req, _ := http.NewRequest(http.MethodPost, "/model/reload", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "model artifact rejected")
}
