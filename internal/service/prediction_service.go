package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/student-ews-api/internal/dto"
	"github.com/noah-isme/student-ews-api/internal/ml"
	"github.com/noah-isme/student-ews-api/internal/models"
	appErrors "github.com/noah-isme/student-ews-api/pkg/errors"
)

type featureAssembler interface {
	Assemble(ctx context.Context, studentID string) (map[string]float64, models.StudentMetrics, error)
}

type assessmentStore interface {
	Create(ctx context.Context, assessment *models.RiskAssessment) error
	Latest(ctx context.Context, studentID string, limit int) ([]models.RiskAssessment, error)
}

type artifactProvider interface {
	Artifact() *ml.Artifact
	Reload(path string) error
}

type rosterReader interface {
	ListByCounselor(ctx context.Context, counselorID string) ([]models.StudentProfile, error)
}

// PredictionService turns assembled features into persisted risk
// assessments using the frozen classifier artifact.
type PredictionService struct {
	features    featureAssembler
	assessments assessmentStore
	artifacts   artifactProvider
	roster      rosterReader
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
	now         func() time.Time
	cacheTTL    time.Duration
}

// PredictionServiceParams groups constructor dependencies.
type PredictionServiceParams struct {
	Features    featureAssembler
	Assessments assessmentStore
	Artifacts   artifactProvider
	Roster      rosterReader
	Cache       *CacheService
	Metrics     *MetricsService
	Logger      *zap.Logger
	CacheTTL    time.Duration
}

// NewPredictionService constructs a PredictionService.
func NewPredictionService(params PredictionServiceParams) *PredictionService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PredictionService{
		features:    params.Features,
		assessments: params.Assessments,
		artifacts:   params.Artifacts,
		roster:      params.Roster,
		cache:       params.Cache,
		metrics:     params.Metrics,
		logger:      logger,
		now:         time.Now,
		cacheTTL:    ttl,
	}
}

func predictionCacheKey(studentID string) string {
	return fmt.Sprintf("prediction:student:%s", studentID)
}

// Predict scores one student. The boolean reports whether the assessment
// came from cache.
func (s *PredictionService) Predict(ctx context.Context, studentID string) (*models.RiskAssessment, bool, error) {
	cacheKey := predictionCacheKey(studentID)
	if s.cache.Enabled() {
		var cached models.RiskAssessment
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	features, metrics, err := s.features.Assemble(ctx, studentID)
	if err != nil {
		return nil, false, err
	}

	artifact := s.artifacts.Artifact()
	if artifact == nil {
		s.logger.Warn("prediction degraded, no model artifact loaded",
			zap.String("student_id", studentID))
		return &models.RiskAssessment{
			StudentID:          studentID,
			RiskLevel:          models.RiskUnknown,
			DropoutProbability: 0.0,
			Confidence:         0.0,
			RiskFactors:        RiskFactors(metrics, 0.0),
			AssessedAt:         s.now().UTC(),
		}, false, nil
	}

	probability := artifact.Score(features)

	assessment := &models.RiskAssessment{
		StudentID:          studentID,
		RiskLevel:          CategorizeRisk(probability),
		DropoutProbability: probability,
		Confidence:         PredictionConfidence(probability),
		RiskFactors:        RiskFactors(metrics, probability),
		ModelVersion:       artifact.Version,
		AssessedAt:         s.now().UTC(),
	}

	queryStart := time.Now()
	previous, err := s.assessments.Latest(ctx, studentID, 1)
	s.metrics.ObserveDBQuery("assessment_latest", time.Since(queryStart))
	if err != nil {
		s.logger.Warn("previous assessment lookup failed",
			zap.String("student_id", studentID), zap.Error(err))
	} else if len(previous) > 0 {
		prior := previous[0].RiskLevel
		assessment.PreviousRiskLevel = &prior
	}

	queryStart = time.Now()
	if err := s.assessments.Create(ctx, assessment); err != nil {
		return nil, false, fmt.Errorf("persist risk assessment: %w", err)
	}
	s.metrics.ObserveDBQuery("assessment_create", time.Since(queryStart))

	s.metrics.RecordPrediction(assessment.RiskLevel)

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, cacheKey, assessment, s.cacheTTL)
	}

	return assessment, false, nil
}

// Batch scores a set of students, preserving request order. A failure on
// one student is reported on its item and never aborts the rest.
func (s *PredictionService) Batch(ctx context.Context, studentIDs []string) []dto.BatchRiskItem {
	items := make([]dto.BatchRiskItem, 0, len(studentIDs))
	for _, id := range studentIDs {
		assessment, _, err := s.Predict(ctx, id)
		if err != nil {
			items = append(items, dto.BatchRiskItem{
				StudentID: id,
				Error:     appErrors.FromError(err).Message,
			})
			continue
		}
		items = append(items, dto.BatchRiskItem{
			StudentID:      id,
			RiskAssessment: assessment,
		})
	}
	return items
}

// BatchForCounselor scores every student on the counselor's roster, for
// batch requests that name no explicit ids.
func (s *PredictionService) BatchForCounselor(ctx context.Context, counselorID string) ([]dto.BatchRiskItem, error) {
	if s.roster == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student_ids is required")
	}
	profiles, err := s.roster.ListByCounselor(ctx, counselorID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(profiles))
	for i, profile := range profiles {
		ids[i] = profile.ID
	}
	return s.Batch(ctx, ids), nil
}

// ReloadModel swaps in the artifact at path (the configured path when
// empty) and drops cached predictions made by the previous version.
func (s *PredictionService) ReloadModel(ctx context.Context, path string) (string, error) {
	if err := s.artifacts.Reload(path); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code,
			appErrors.ErrValidation.Status, "model artifact rejected")
	}

	if err := s.cache.Invalidate(ctx, "prediction:student:*"); err != nil {
		s.logger.Warn("prediction cache invalidation failed", zap.Error(err))
	}

	artifact := s.artifacts.Artifact()
	if artifact == nil {
		return "", appErrors.Clone(appErrors.ErrModelUnavailable, "")
	}
	return artifact.Version, nil
}

// CategorizeRisk discretizes a dropout probability.
func CategorizeRisk(probability float64) models.RiskLevel {
	switch {
	case probability < 0.34:
		return models.RiskLow
	case probability < 0.67:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// PredictionConfidence derives a confidence score from the probability's
// distance to the decision midpoint, capped at 0.95.
func PredictionConfidence(probability float64) float64 {
	confidence := 0.6 + math.Abs(probability-0.5)*2*0.35
	return math.Min(0.95, confidence)
}

// RiskFactors runs the rule-based explanation layer over the raw metrics
// snapshot, independently of the model's internal weights. Rules are
// evaluated in a fixed order, every matching rule contributes a factor,
// and rules whose inputs are missing are skipped.
func RiskFactors(metrics models.StudentMetrics, probability float64) []models.RiskFactor {
	factors := make([]models.RiskFactor, 0, 4)

	if pct := metrics.AttendancePercentage; pct != nil && *pct < 75 {
		impact := models.SeverityMedium
		if *pct < 60 {
			impact = models.SeverityHigh
		}
		factors = append(factors, models.RiskFactor{
			Factor:         "Low Attendance",
			Value:          fmt.Sprintf("%.1f%%", *pct),
			Impact:         impact,
			Recommendation: "Schedule a meeting with the academic advisor to address absenteeism",
		})
	}

	if gpa := metrics.CurrentGPA; gpa != nil && *gpa < 2.5 {
		impact := models.SeverityMedium
		if *gpa < 2.0 {
			impact = models.SeverityHigh
		}
		factors = append(factors, models.RiskFactor{
			Factor:         "Low GPA",
			Value:          fmt.Sprintf("%.2f", *gpa),
			Impact:         impact,
			Recommendation: "Enroll in tutoring support and review the study plan",
		})
	}

	if backlogs := metrics.Backlogs; backlogs != nil && *backlogs > 0 {
		impact := models.SeverityMedium
		if *backlogs > 2 {
			impact = models.SeverityHigh
		}
		factors = append(factors, models.RiskFactor{
			Factor:         "Failed Courses",
			Value:          fmt.Sprintf("%d backlogs", *backlogs),
			Impact:         impact,
			Recommendation: "Plan backlog clearance with the course coordinator",
		})
	}

	if status := metrics.TuitionStatus; status != nil && *status == models.TuitionDelayed {
		factors = append(factors, models.RiskFactor{
			Factor:         "Tuition Payment Delays",
			Value:          string(*status),
			Impact:         models.SeverityMedium,
			Recommendation: "Refer the student to financial aid services",
		})
	}

	if scholarship := metrics.Scholarship; scholarship != nil && !*scholarship && probability > 0.5 {
		factors = append(factors, models.RiskFactor{
			Factor:         "No Scholarship",
			Value:          "not a scholarship holder",
			Impact:         models.SeverityLow,
			Recommendation: "Share scholarship and financial support opportunities",
		})
	}

	return factors
}
