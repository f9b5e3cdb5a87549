package service

import (
	"context"

	"github.com/noah-isme/student-ews-api/internal/ml"
	"github.com/noah-isme/student-ews-api/internal/models"
	appErrors "github.com/noah-isme/student-ews-api/pkg/errors"
)

type fakeStudents struct {
	profiles map[string]*models.StudentProfile
	byUser   map[string]*models.StudentProfile
	err      error
}

func (f *fakeStudents) GetByID(_ context.Context, id string) (*models.StudentProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if profile, ok := f.profiles[id]; ok {
		return profile, nil
	}
	return nil, appErrors.ErrStudentNotFound
}

func (f *fakeStudents) GetByUserID(_ context.Context, userID string) (*models.StudentProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if profile, ok := f.byUser[userID]; ok {
		return profile, nil
	}
	return nil, appErrors.ErrStudentNotFound
}

func (f *fakeStudents) ListByCounselor(_ context.Context, counselorID string) ([]models.StudentProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.StudentProfile
	for _, profile := range f.profiles {
		if profile.CounselorID != nil && *profile.CounselorID == counselorID {
			out = append(out, *profile)
		}
	}
	return out, nil
}

type fakeAcademics struct {
	records []models.AcademicRecord
	err     error
}

func (f *fakeAcademics) Latest(_ context.Context, _ string, limit int) ([]models.AcademicRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.records) > limit {
		return f.records[:limit], nil
	}
	return f.records, nil
}

func (f *fakeAcademics) ListBySemester(_ context.Context, _ string) ([]models.AcademicRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.AcademicRecord, len(f.records))
	for i, rec := range f.records {
		out[len(f.records)-1-i] = rec
	}
	return out, nil
}

func (f *fakeAcademics) Create(_ context.Context, record *models.AcademicRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append([]models.AcademicRecord{*record}, f.records...)
	return nil
}

type fakeAttendance struct {
	records []models.AttendanceRecord
	err     error
}

func (f *fakeAttendance) Latest(_ context.Context, _ string, limit int) ([]models.AttendanceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.records) > limit {
		return f.records[:limit], nil
	}
	return f.records, nil
}

func (f *fakeAttendance) ListBySemester(_ context.Context, _ string) ([]models.AttendanceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.AttendanceRecord, len(f.records))
	for i, rec := range f.records {
		out[len(f.records)-1-i] = rec
	}
	return out, nil
}

func (f *fakeAttendance) Create(_ context.Context, record *models.AttendanceRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append([]models.AttendanceRecord{*record}, f.records...)
	return nil
}

type fakeFinancial struct {
	record *models.FinancialRecord
	err    error
}

func (f *fakeFinancial) Current(_ context.Context, _ string) (*models.FinancialRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func (f *fakeFinancial) Upsert(_ context.Context, record *models.FinancialRecord) error {
	if f.err != nil {
		return f.err
	}
	f.record = record
	return nil
}

type fakeCurricular struct {
	units []models.CurricularUnit
	err   error
}

func (f *fakeCurricular) Latest(_ context.Context, _ string, limit int) ([]models.CurricularUnit, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.units) > limit {
		return f.units[:limit], nil
	}
	return f.units, nil
}

func (f *fakeCurricular) ListBySemester(_ context.Context, _ string) ([]models.CurricularUnit, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.CurricularUnit, len(f.units))
	for i, unit := range f.units {
		out[len(f.units)-1-i] = unit
	}
	return out, nil
}

func (f *fakeCurricular) Create(_ context.Context, unit *models.CurricularUnit) error {
	if f.err != nil {
		return f.err
	}
	f.units = append([]models.CurricularUnit{*unit}, f.units...)
	return nil
}

type fakeAssessments struct {
	stored    []models.RiskAssessment
	createErr error
	latestErr error
}

func (f *fakeAssessments) Create(_ context.Context, assessment *models.RiskAssessment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.stored = append([]models.RiskAssessment{*assessment}, f.stored...)
	return nil
}

func (f *fakeAssessments) Latest(_ context.Context, _ string, limit int) ([]models.RiskAssessment, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	if len(f.stored) > limit {
		return f.stored[:limit], nil
	}
	return f.stored, nil
}

type fakeArtifacts struct {
	artifact  *ml.Artifact
	reloadErr error
	reloaded  int
}

func (f *fakeArtifacts) Artifact() *ml.Artifact {
	return f.artifact
}

func (f *fakeArtifacts) Reload(string) error {
	if f.reloadErr != nil {
		return f.reloadErr
	}
	f.reloaded++
	return nil
}

type fakeAlertSink struct {
	inserted [][]models.AlertCandidate
	err      error
}

func (f *fakeAlertSink) InsertCandidates(_ context.Context, _ string, candidates []models.AlertCandidate) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, candidates)
	return nil
}

// disabledCache returns a CacheService that short-circuits every operation.
func disabledCache() *CacheService {
	return NewCacheService(nil, nil, 0, nil, false)
}
