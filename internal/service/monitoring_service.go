package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/student-ews-api/internal/models"
)

type metricsCollector interface {
	Collect(ctx context.Context, studentID string) (models.StudentMetrics, error)
}

type assessmentReader interface {
	Latest(ctx context.Context, studentID string, limit int) ([]models.RiskAssessment, error)
}

type alertSink interface {
	InsertCandidates(ctx context.Context, studentID string, candidates []models.AlertCandidate) error
}

// MonitoringService runs the per-metric change detectors and composes the
// per-student monitoring summary.
type MonitoringService struct {
	collector   metricsCollector
	academics   academicReader
	attendance  attendanceReader
	financial   financialReader
	curricular  curricularReader
	assessments assessmentReader
	alerts      alertSink
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
	cacheTTL    time.Duration
	lookback    int
}

// MonitoringServiceParams groups constructor dependencies. Alerts may be
// nil, in which case candidates are returned but never persisted.
type MonitoringServiceParams struct {
	Collector   metricsCollector
	Academics   academicReader
	Attendance  attendanceReader
	Financial   financialReader
	Curricular  curricularReader
	Assessments assessmentReader
	Alerts      alertSink
	Cache       *CacheService
	Metrics     *MetricsService
	Logger      *zap.Logger
	CacheTTL    time.Duration
	Lookback    int
}

// NewMonitoringService constructs a MonitoringService.
func NewMonitoringService(params MonitoringServiceParams) *MonitoringService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	lookback := params.Lookback
	if lookback <= 0 {
		lookback = 5
	}
	return &MonitoringService{
		collector:   params.Collector,
		academics:   params.Academics,
		attendance:  params.Attendance,
		financial:   params.Financial,
		curricular:  params.Curricular,
		assessments: params.Assessments,
		alerts:      params.Alerts,
		cache:       params.Cache,
		metrics:     params.Metrics,
		logger:      logger,
		cacheTTL:    ttl,
		lookback:    lookback,
	}
}

func monitoringCacheKey(studentID string) string {
	return fmt.Sprintf("monitoring:student:%s", studentID)
}

// Summary composes metrics, alerts, trends and the overall status for one
// student. The boolean reports whether the summary came from cache.
func (s *MonitoringService) Summary(ctx context.Context, studentID string) (*models.MonitoringSummary, bool, error) {
	cacheKey := monitoringCacheKey(studentID)
	if s.cache.Enabled() {
		var cached models.MonitoringSummary
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	metrics, err := s.collector.Collect(ctx, studentID)
	if err != nil {
		return nil, false, err
	}

	alerts := s.DetectAll(ctx, studentID)
	trends := s.Trends(ctx, studentID)

	summary := &models.MonitoringSummary{
		StudentID:     studentID,
		Metrics:       metrics,
		Alerts:        alerts,
		Trends:        trends,
		OverallStatus: RollupStatus(alerts),
	}

	if s.alerts != nil && len(alerts) > 0 {
		if err := s.alerts.InsertCandidates(ctx, studentID, alerts); err != nil {
			s.logger.Warn("alert hand-off failed",
				zap.String("student_id", studentID), zap.Error(err))
		}
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, cacheKey, summary, s.cacheTTL)
	}

	return summary, false, nil
}

// DetectAll runs every detector against the student's latest snapshots and
// returns the union of raised candidates. Detectors never fail a sweep: a
// read error degrades to "no alert" for that metric.
func (s *MonitoringService) DetectAll(ctx context.Context, studentID string) []models.AlertCandidate {
	alerts := make([]models.AlertCandidate, 0, 4)

	detectors := []func(context.Context, string) *models.AlertCandidate{
		s.detectAttendance,
		s.detectGPA,
		s.detectFailedCourses,
		s.detectAssignments,
		s.detectFinancial,
		s.detectRiskTransition,
	}
	for _, detect := range detectors {
		if alert := detect(ctx, studentID); alert != nil {
			alerts = append(alerts, *alert)
			s.metrics.RecordAlert(alert.Type, alert.Severity)
		}
	}

	return alerts
}

func (s *MonitoringService) detectAttendance(ctx context.Context, studentID string) *models.AlertCandidate {
	records, err := s.attendance.Latest(ctx, studentID, 2)
	if err != nil {
		s.logger.Warn("attendance detector skipped",
			zap.String("student_id", studentID), zap.Error(err))
		return nil
	}
	if len(records) == 0 {
		return nil
	}

	current := records[0].Percentage
	var absolute *models.AlertCandidate
	switch {
	case current < 60:
		absolute = &models.AlertCandidate{
			Type:         models.AlertAttendanceDrop,
			Severity:     models.SeverityCritical,
			Message:      fmt.Sprintf("Critical: Attendance has dropped to %.1f%%", current),
			CurrentValue: f64(current),
			Threshold:    f64(60),
		}
	case current < 75:
		absolute = &models.AlertCandidate{
			Type:         models.AlertAttendanceDrop,
			Severity:     models.SeverityHigh,
			Message:      fmt.Sprintf("Warning: Attendance at %.1f%% is below the required minimum", current),
			CurrentValue: f64(current),
			Threshold:    f64(75),
		}
	}

	var drop *models.AlertCandidate
	if len(records) > 1 {
		previous := records[1].Percentage
		if delta := previous - current; delta >= 10 {
			severity := models.SeverityMedium
			if delta >= 15 {
				severity = models.SeverityHigh
			}
			drop = &models.AlertCandidate{
				Type:          models.AlertAttendanceDrop,
				Severity:      severity,
				Message:       fmt.Sprintf("Attendance dropped by %.1f%% since last semester", delta),
				CurrentValue:  f64(current),
				PreviousValue: f64(previous),
				Drop:          f64(delta),
				Threshold:     f64(10),
			}
		}
	}

	return resolveCandidate(absolute, drop)
}

func (s *MonitoringService) detectGPA(ctx context.Context, studentID string) *models.AlertCandidate {
	records, err := s.academics.Latest(ctx, studentID, 2)
	if err != nil {
		s.logger.Warn("gpa detector skipped",
			zap.String("student_id", studentID), zap.Error(err))
		return nil
	}
	if len(records) == 0 {
		return nil
	}

	current := records[0].GPA
	var absolute *models.AlertCandidate
	switch {
	case current < 2.0:
		absolute = &models.AlertCandidate{
			Type:         models.AlertGPADrop,
			Severity:     models.SeverityCritical,
			Message:      fmt.Sprintf("Critical: GPA has fallen to %.2f", current),
			CurrentValue: f64(current),
			Threshold:    f64(2.0),
		}
	case current < 2.5:
		absolute = &models.AlertCandidate{
			Type:         models.AlertGPADrop,
			Severity:     models.SeverityHigh,
			Message:      fmt.Sprintf("Warning: GPA at %.2f is below the academic standing threshold", current),
			CurrentValue: f64(current),
			Threshold:    f64(2.5),
		}
	}

	var drop *models.AlertCandidate
	if len(records) > 1 {
		previous := records[1].GPA
		if delta := previous - current; delta >= 0.5 {
			severity := models.SeverityMedium
			if delta >= 0.7 {
				severity = models.SeverityHigh
			}
			drop = &models.AlertCandidate{
				Type:          models.AlertGPADrop,
				Severity:      severity,
				Message:       fmt.Sprintf("GPA dropped by %.2f since last semester", delta),
				CurrentValue:  f64(current),
				PreviousValue: f64(previous),
				Drop:          f64(delta),
				Threshold:     f64(0.5),
			}
		}
	}

	return resolveCandidate(absolute, drop)
}

func (s *MonitoringService) detectFailedCourses(ctx context.Context, studentID string) *models.AlertCandidate {
	records, err := s.academics.Latest(ctx, studentID, 1)
	if err != nil {
		s.logger.Warn("failed-course detector skipped",
			zap.String("student_id", studentID), zap.Error(err))
		return nil
	}
	if len(records) == 0 {
		return nil
	}

	backlogs := records[0].Backlogs
	switch {
	case backlogs >= 3:
		return &models.AlertCandidate{
			Type:         models.AlertFailedCourse,
			Severity:     models.SeverityCritical,
			Message:      fmt.Sprintf("Critical: %d failed courses require immediate intervention", backlogs),
			CurrentValue: f64(float64(backlogs)),
			Threshold:    f64(3),
		}
	case backlogs >= 1:
		return &models.AlertCandidate{
			Type:         models.AlertFailedCourse,
			Severity:     models.SeverityHigh,
			Message:      fmt.Sprintf("%d failed course(s) on record this semester", backlogs),
			CurrentValue: f64(float64(backlogs)),
			Threshold:    f64(1),
		}
	}
	return nil
}

func (s *MonitoringService) detectAssignments(ctx context.Context, studentID string) *models.AlertCandidate {
	records, err := s.curricular.Latest(ctx, studentID, 1)
	if err != nil {
		s.logger.Warn("assignment detector skipped",
			zap.String("student_id", studentID), zap.Error(err))
		return nil
	}
	if len(records) == 0 || records[0].EnrolledUnits == 0 {
		return nil
	}

	rate := records[0].CompletionRate()
	switch {
	case rate < 50:
		return &models.AlertCandidate{
			Type:         models.AlertAssignmentMissing,
			Severity:     models.SeverityCritical,
			Message:      fmt.Sprintf("Critical: Only %.1f%% of enrolled units completed", rate),
			CurrentValue: f64(rate),
			Threshold:    f64(50),
		}
	case rate < 70:
		return &models.AlertCandidate{
			Type:         models.AlertAssignmentMissing,
			Severity:     models.SeverityMedium,
			Message:      fmt.Sprintf("Unit completion at %.1f%% is below expectations", rate),
			CurrentValue: f64(rate),
			Threshold:    f64(70),
		}
	}
	return nil
}

func (s *MonitoringService) detectFinancial(ctx context.Context, studentID string) *models.AlertCandidate {
	record, err := s.financial.Current(ctx, studentID)
	if err != nil {
		s.logger.Warn("financial detector skipped",
			zap.String("student_id", studentID), zap.Error(err))
		return nil
	}
	if record == nil || record.TuitionStatus != models.TuitionDelayed {
		return nil
	}

	return &models.AlertCandidate{
		Type:     models.AlertFinancialIssue,
		Severity: models.SeverityMedium,
		Message:  "Tuition payment is delayed, financial aid follow-up recommended",
	}
}

func (s *MonitoringService) detectRiskTransition(ctx context.Context, studentID string) *models.AlertCandidate {
	records, err := s.assessments.Latest(ctx, studentID, 2)
	if err != nil {
		s.logger.Warn("risk transition detector skipped",
			zap.String("student_id", studentID), zap.Error(err))
		return nil
	}
	if len(records) < 2 {
		return nil
	}

	current := records[0].RiskLevel
	previous := records[1].RiskLevel
	if current.Rank() == 0 || previous.Rank() == 0 {
		return nil
	}

	switch {
	case current.Rank() > previous.Rank():
		severity := models.SeverityMedium
		if current == models.RiskHigh {
			severity = models.SeverityHigh
		}
		return &models.AlertCandidate{
			Type:         models.AlertRiskLevelChange,
			Severity:     severity,
			Message:      fmt.Sprintf("Risk level increased from %s to %s", previous, current),
			CurrentRisk:  &current,
			PreviousRisk: &previous,
		}
	case current.Rank() < previous.Rank():
		return &models.AlertCandidate{
			Type:         models.AlertPositiveFeedback,
			Severity:     models.SeverityLow,
			Message:      fmt.Sprintf("Great progress! Risk level decreased from %s to %s", previous, current),
			CurrentRisk:  &current,
			PreviousRisk: &previous,
		}
	}
	return nil
}

// Trends labels the attendance, GPA and completion histories over the
// configured lookback window. Unreadable histories label as stable.
func (s *MonitoringService) Trends(ctx context.Context, studentID string) models.TrendSet {
	trends := models.TrendSet{
		Attendance: models.TrendStable,
		GPA:        models.TrendStable,
		Completion: models.TrendStable,
	}

	queryStart := time.Now()
	if records, err := s.attendance.Latest(ctx, studentID, s.lookback); err == nil {
		s.metrics.ObserveDBQuery("attendance_history", time.Since(queryStart))
		values := make([]float64, len(records))
		for i, rec := range records {
			values[i] = rec.Percentage
		}
		trends.Attendance = ClassifyTrend(values, TrendAttendance)
	} else {
		s.logger.Warn("attendance trend skipped", zap.String("student_id", studentID), zap.Error(err))
	}

	queryStart = time.Now()
	if records, err := s.academics.Latest(ctx, studentID, s.lookback); err == nil {
		s.metrics.ObserveDBQuery("gpa_history", time.Since(queryStart))
		values := make([]float64, len(records))
		for i, rec := range records {
			values[i] = rec.GPA
		}
		trends.GPA = ClassifyTrend(values, TrendGPA)
	} else {
		s.logger.Warn("gpa trend skipped", zap.String("student_id", studentID), zap.Error(err))
	}

	queryStart = time.Now()
	if records, err := s.curricular.Latest(ctx, studentID, s.lookback); err == nil {
		s.metrics.ObserveDBQuery("completion_history", time.Since(queryStart))
		values := make([]float64, len(records))
		for i, rec := range records {
			values[i] = rec.CompletionRate()
		}
		trends.Completion = ClassifyTrend(values, TrendCompletion)
	} else {
		s.logger.Warn("completion trend skipped", zap.String("student_id", studentID), zap.Error(err))
	}

	return trends
}

// RollupStatus folds an alert set into the coarse overall status.
func RollupStatus(alerts []models.AlertCandidate) models.OverallStatus {
	status := models.StatusGood
	for _, alert := range alerts {
		switch alert.Severity {
		case models.SeverityCritical:
			return models.StatusCritical
		case models.SeverityHigh:
			status = models.StatusWarning
		default:
			if status == models.StatusGood {
				status = models.StatusAttentionNeeded
			}
		}
	}
	return status
}

// resolveCandidate applies the precedence rule between an absolute
// threshold candidate and a drop-based candidate for the same metric. An
// absolute critical always wins; otherwise the more severe candidate, with
// the drop candidate preferred on ties because it carries the delta.
func resolveCandidate(absolute, drop *models.AlertCandidate) *models.AlertCandidate {
	if absolute == nil {
		return drop
	}
	if drop == nil {
		return absolute
	}
	if absolute.Severity == models.SeverityCritical {
		return absolute
	}
	if absolute.Severity.Rank() > drop.Severity.Rank() {
		return absolute
	}
	return drop
}

func f64(v float64) *float64 {
	return &v
}
