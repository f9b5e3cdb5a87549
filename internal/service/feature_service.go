package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/student-ews-api/internal/models"
	appErrors "github.com/noah-isme/student-ews-api/pkg/errors"
)

// Feature names shared with the training pipeline. The serving side only
// produces named values; the artifact decides column order.
const (
	FeatureAge              = "age_at_enrollment"
	FeatureGender           = "gender_encoded"
	FeatureMaritalStatus    = "marital_status"
	FeatureApplicationMode  = "application_mode"
	FeatureApplicationOrder = "application_order"
	FeatureCourse           = "course"
	FeatureDaySession       = "daytime_evening_attendance"
	FeaturePrevQual         = "previous_qualification"
	FeaturePrevQualGrade    = "previous_qualification_grade"
	FeatureAdmissionGrade   = "admission_grade"
	FeatureDisplaced        = "displaced"
	FeatureDebtor           = "debtor"
	FeatureTuitionUpToDate  = "tuition_fees_up_to_date"
	FeatureScholarship      = "scholarship_holder"
	FeatureSem1Enrolled     = "curricular_units_1st_sem_enrolled"
	FeatureSem1Approved     = "curricular_units_1st_sem_approved"
	FeatureSem1Grade        = "curricular_units_1st_sem_grade"
	FeatureSem2Enrolled     = "curricular_units_2nd_sem_enrolled"
	FeatureSem2Approved     = "curricular_units_2nd_sem_approved"
	FeatureSem2Grade        = "curricular_units_2nd_sem_grade"
	FeatureUnemployment     = "unemployment_rate"
	FeatureInflation        = "inflation_rate"
	FeatureGDP              = "gdp"
	FeatureAttendanceRate   = "attendance_rate"
	FeatureCurrentGPA       = "current_gpa"
)

type studentReader interface {
	GetByID(ctx context.Context, id string) (*models.StudentProfile, error)
}

type academicReader interface {
	Latest(ctx context.Context, studentID string, limit int) ([]models.AcademicRecord, error)
}

type attendanceReader interface {
	Latest(ctx context.Context, studentID string, limit int) ([]models.AttendanceRecord, error)
}

type financialReader interface {
	Current(ctx context.Context, studentID string) (*models.FinancialRecord, error)
}

type curricularReader interface {
	Latest(ctx context.Context, studentID string, limit int) ([]models.CurricularUnit, error)
}

// FeatureService gathers a student's raw records and turns them into the
// named feature values the frozen model consumes.
type FeatureService struct {
	students   studentReader
	academics  academicReader
	attendance attendanceReader
	financial  financialReader
	curricular curricularReader
	logger     *zap.Logger
	now        func() time.Time
}

// FeatureServiceParams groups constructor dependencies.
type FeatureServiceParams struct {
	Students   studentReader
	Academics  academicReader
	Attendance attendanceReader
	Financial  financialReader
	Curricular curricularReader
	Logger     *zap.Logger
}

// NewFeatureService constructs a FeatureService.
func NewFeatureService(params FeatureServiceParams) *FeatureService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeatureService{
		students:   params.Students,
		academics:  params.Academics,
		attendance: params.Attendance,
		financial:  params.Financial,
		curricular: params.Curricular,
		logger:     logger,
		now:        time.Now,
	}
}

// studentRecords bundles one fetch of everything the assembler reads.
type studentRecords struct {
	profile    *models.StudentProfile
	academic   *models.AcademicRecord
	attendance *models.AttendanceRecord
	financial  *models.FinancialRecord
	curricular []models.CurricularUnit
}

func (s *FeatureService) fetch(ctx context.Context, studentID string) (studentRecords, error) {
	var records studentRecords

	profile, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return records, err
	}
	records.profile = profile

	academics, err := s.academics.Latest(ctx, studentID, 1)
	if err != nil {
		return records, fmt.Errorf("fetch academic records: %w", err)
	}
	if len(academics) > 0 {
		records.academic = &academics[0]
	}

	attendance, err := s.attendance.Latest(ctx, studentID, 1)
	if err != nil {
		return records, fmt.Errorf("fetch attendance records: %w", err)
	}
	if len(attendance) > 0 {
		records.attendance = &attendance[0]
	}

	financial, err := s.financial.Current(ctx, studentID)
	if err != nil {
		return records, fmt.Errorf("fetch financial record: %w", err)
	}
	records.financial = financial

	curricular, err := s.curricular.Latest(ctx, studentID, 2)
	if err != nil {
		return records, fmt.Errorf("fetch curricular units: %w", err)
	}
	records.curricular = curricular

	return records, nil
}

// Collect gathers the human-readable metrics snapshot for a student.
func (s *FeatureService) Collect(ctx context.Context, studentID string) (models.StudentMetrics, error) {
	records, err := s.fetch(ctx, studentID)
	if err != nil {
		return models.StudentMetrics{}, err
	}
	return s.metricsFrom(records), nil
}

// Assemble gathers records and returns both the named feature values and
// the raw metrics snapshot the explanation rules run against.
func (s *FeatureService) Assemble(ctx context.Context, studentID string) (map[string]float64, models.StudentMetrics, error) {
	records, err := s.fetch(ctx, studentID)
	if err != nil {
		return nil, models.StudentMetrics{}, err
	}

	metrics := s.metricsFrom(records)
	features, err := featuresFrom(records)
	if err != nil {
		return nil, metrics, err
	}
	return features, metrics, nil
}

func (s *FeatureService) metricsFrom(records studentRecords) models.StudentMetrics {
	profile := records.profile
	metrics := models.StudentMetrics{
		StudentID:       profile.ID,
		UserID:          profile.UserID,
		Timestamp:       s.now().UTC(),
		AgeAtEnrollment: profile.AgeAtEnrollment,
		Gender:          profile.Gender,
		Course:          profile.Course,
		Year:            profile.Year,
		Semester:        profile.Semester,
		SessionType:     profile.SessionType,
		SpecialNeeds:    profile.SpecialNeeds,
		FirstGenStudent: profile.FirstGenStudent,
		Background:      profile.Background,
	}

	if rec := records.academic; rec != nil {
		metrics.CurrentGPA = &rec.GPA
		metrics.CurrentSemester = &rec.Semester
		metrics.Backlogs = &rec.Backlogs
	}
	if rec := records.attendance; rec != nil {
		metrics.AttendancePercentage = &rec.Percentage
		metrics.AbsentDays = &rec.AbsenteeDays
	}
	if rec := records.financial; rec != nil {
		metrics.TuitionStatus = &rec.TuitionStatus
		metrics.Scholarship = &rec.Scholarship
		metrics.LoanDependency = &rec.LoanDependency
	}
	if len(records.curricular) > 0 {
		latest := records.curricular[0]
		rate := latest.CompletionRate()
		metrics.EnrolledUnits = &latest.EnrolledUnits
		metrics.ApprovedUnits = &latest.ApprovedUnits
		metrics.AverageGrade = &latest.AverageGrade
		metrics.CompletionRate = &rate
	}

	return metrics
}

// featuresFrom maps raw records onto named feature values. Demographic
// columns the profile does not capture keep the dataset medians used at
// training time; curricular fields default to 0 so partially-onboarded
// students still get a best-effort score.
func featuresFrom(records studentRecords) (map[string]float64, error) {
	profile := records.profile

	gender, err := encodeGender(profile.Gender)
	if err != nil {
		return nil, err
	}

	age := float64(profile.AgeAtEnrollment)
	if age <= 0 {
		age = 18
	}

	features := map[string]float64{
		FeatureAge:              age,
		FeatureGender:           gender,
		FeatureMaritalStatus:    0,
		FeatureApplicationMode:  1,
		FeatureApplicationOrder: 1,
		FeatureCourse:           1,
		FeaturePrevQual:         1,
		FeaturePrevQualGrade:    100,
		FeatureAdmissionGrade:   100,
		FeatureDisplaced:        0,
		FeatureUnemployment:     10.0,
		FeatureInflation:        2.0,
		FeatureGDP:              1.0,
	}

	if profile.SessionType == models.SessionDay {
		features[FeatureDaySession] = 1
	} else {
		features[FeatureDaySession] = 0
	}

	if fin := records.financial; fin != nil {
		if fin.TuitionStatus == models.TuitionDelayed {
			features[FeatureDebtor] = 1
		}
		if fin.TuitionStatus == models.TuitionOnTime {
			features[FeatureTuitionUpToDate] = 1
		}
		if fin.Scholarship {
			features[FeatureScholarship] = 1
		}
	}

	// curricular[0] is the most recent semester; it fills the 2nd-sem
	// columns, the older record fills the 1st-sem columns.
	if len(records.curricular) > 0 {
		latest := records.curricular[0]
		features[FeatureSem2Enrolled] = float64(latest.EnrolledUnits)
		features[FeatureSem2Approved] = float64(latest.ApprovedUnits)
		features[FeatureSem2Grade] = latest.AverageGrade
	}
	if len(records.curricular) > 1 {
		previous := records.curricular[1]
		features[FeatureSem1Enrolled] = float64(previous.EnrolledUnits)
		features[FeatureSem1Approved] = float64(previous.ApprovedUnits)
		features[FeatureSem1Grade] = previous.AverageGrade
	}

	if rec := records.attendance; rec != nil {
		features[FeatureAttendanceRate] = rec.Percentage
	}
	if rec := records.academic; rec != nil {
		features[FeatureCurrentGPA] = rec.GPA
	}

	return features, nil
}

// encodeGender maps the profile gender onto the numeric encoding the model
// was trained with. Values outside the mapping are rejected rather than
// silently defaulted; a null here would poison the scaling step downstream.
func encodeGender(gender string) (float64, error) {
	switch gender {
	case models.GenderMale:
		return 1, nil
	case models.GenderFemale:
		return 0, nil
	default:
		return 0, appErrors.Clone(appErrors.ErrMalformedFeature,
			fmt.Sprintf("unrecognized gender value %q", gender))
	}
}
