package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/student-ews-api/internal/dto"
	"github.com/noah-isme/student-ews-api/internal/models"
	appErrors "github.com/noah-isme/student-ews-api/pkg/errors"
)

type academicStore interface {
	Create(ctx context.Context, record *models.AcademicRecord) error
	ListBySemester(ctx context.Context, studentID string) ([]models.AcademicRecord, error)
}

type attendanceStore interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	ListBySemester(ctx context.Context, studentID string) ([]models.AttendanceRecord, error)
}

type financialStore interface {
	Upsert(ctx context.Context, record *models.FinancialRecord) error
	Current(ctx context.Context, studentID string) (*models.FinancialRecord, error)
}

type curricularStore interface {
	Create(ctx context.Context, unit *models.CurricularUnit) error
	ListBySemester(ctx context.Context, studentID string) ([]models.CurricularUnit, error)
}

// RecordService ingests the raw student records the predictor and monitor
// read. Every write invalidates the student's cached derivations.
type RecordService struct {
	students   studentReader
	academics  academicStore
	attendance attendanceStore
	financial  financialStore
	curricular curricularStore
	cache      *CacheService
	validate   *validator.Validate
	logger     *zap.Logger
}

// RecordServiceParams groups constructor dependencies.
type RecordServiceParams struct {
	Students   studentReader
	Academics  academicStore
	Attendance attendanceStore
	Financial  financialStore
	Curricular curricularStore
	Cache      *CacheService
	Logger     *zap.Logger
}

// NewRecordService constructs a RecordService.
func NewRecordService(params RecordServiceParams) *RecordService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordService{
		students:   params.Students,
		academics:  params.Academics,
		attendance: params.Attendance,
		financial:  params.Financial,
		curricular: params.Curricular,
		cache:      params.Cache,
		validate:   validator.New(),
		logger:     logger,
	}
}

func (s *RecordService) ensureStudent(ctx context.Context, studentID string) error {
	_, err := s.students.GetByID(ctx, studentID)
	return err
}

// invalidateDerived drops cached predictions and summaries for a student
// after any record write.
func (s *RecordService) invalidateDerived(ctx context.Context, studentID string) {
	if err := s.cache.Invalidate(ctx, predictionCacheKey(studentID)); err != nil {
		s.logger.Warn("prediction cache invalidation failed",
			zap.String("student_id", studentID), zap.Error(err))
	}
	if err := s.cache.Invalidate(ctx, monitoringCacheKey(studentID)); err != nil {
		s.logger.Warn("monitoring cache invalidation failed",
			zap.String("student_id", studentID), zap.Error(err))
	}
}

// AddAcademic appends a semester academic record.
func (s *RecordService) AddAcademic(ctx context.Context, studentID string, req dto.CreateAcademicRecordRequest) (*models.AcademicRecord, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid academic record")
	}
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}

	record := &models.AcademicRecord{
		StudentID: studentID,
		Semester:  req.Semester,
		GPA:       req.GPA,
		Backlogs:  req.Backlogs,
	}
	if err := s.academics.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create academic record: %w", err)
	}

	s.invalidateDerived(ctx, studentID)
	return record, nil
}

// ListAcademics returns the student's academic history in semester order.
func (s *RecordService) ListAcademics(ctx context.Context, studentID string) ([]models.AcademicRecord, error) {
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}
	return s.academics.ListBySemester(ctx, studentID)
}

// AddAttendance appends a semester attendance record.
func (s *RecordService) AddAttendance(ctx context.Context, studentID string, req dto.CreateAttendanceRecordRequest) (*models.AttendanceRecord, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance record")
	}
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}

	record := &models.AttendanceRecord{
		StudentID:    studentID,
		Semester:     req.Semester,
		Percentage:   req.Percentage,
		AbsenteeDays: req.AbsenteeDays,
	}
	if err := s.attendance.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create attendance record: %w", err)
	}

	s.invalidateDerived(ctx, studentID)
	return record, nil
}

// ListAttendance returns the student's attendance history in semester order.
func (s *RecordService) ListAttendance(ctx context.Context, studentID string) ([]models.AttendanceRecord, error) {
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}
	return s.attendance.ListBySemester(ctx, studentID)
}

// SetFinancial replaces the student's current financial standing.
func (s *RecordService) SetFinancial(ctx context.Context, studentID string, req dto.SetFinancialRecordRequest) (*models.FinancialRecord, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid financial record")
	}
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}

	record := &models.FinancialRecord{
		StudentID:      studentID,
		TuitionStatus:  models.TuitionStatus(req.TuitionStatus),
		Scholarship:    req.Scholarship,
		LoanDependency: req.LoanDependency,
	}
	if err := s.financial.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("upsert financial record: %w", err)
	}

	s.invalidateDerived(ctx, studentID)
	return record, nil
}

// GetFinancial returns the student's current financial standing, or
// NotFound when none was ever recorded.
func (s *RecordService) GetFinancial(ctx context.Context, studentID string) (*models.FinancialRecord, error) {
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}
	record, err := s.financial.Current(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no financial record for student")
	}
	return record, nil
}

// AddCurricular appends a semester curricular snapshot.
func (s *RecordService) AddCurricular(ctx context.Context, studentID string, req dto.CreateCurricularUnitRequest) (*models.CurricularUnit, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid curricular record")
	}
	if req.ApprovedUnits > req.EnrolledUnits {
		return nil, appErrors.Clone(appErrors.ErrValidation, "approved units exceed enrolled units")
	}
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}

	unit := &models.CurricularUnit{
		StudentID:     studentID,
		Semester:      req.Semester,
		EnrolledUnits: req.EnrolledUnits,
		ApprovedUnits: req.ApprovedUnits,
		AverageGrade:  req.AverageGrade,
	}
	if err := s.curricular.Create(ctx, unit); err != nil {
		return nil, fmt.Errorf("create curricular record: %w", err)
	}

	s.invalidateDerived(ctx, studentID)
	return unit, nil
}

// ListCurricular returns the student's curricular history in semester order.
func (s *RecordService) ListCurricular(ctx context.Context, studentID string) ([]models.CurricularUnit, error) {
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}
	return s.curricular.ListBySemester(ctx, studentID)
}
