package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-ews-api/internal/dto"
	"github.com/noah-isme/student-ews-api/internal/models"
	appErrors "github.com/noah-isme/student-ews-api/pkg/errors"
)

type recordFixture struct {
	students   *fakeStudents
	academics  *fakeAcademics
	attendance *fakeAttendance
	financial  *fakeFinancial
	curricular *fakeCurricular
}

func newRecordFixture() *recordFixture {
	return &recordFixture{
		students:   &fakeStudents{profiles: map[string]*models.StudentProfile{"student-1": testProfile()}},
		academics:  &fakeAcademics{},
		attendance: &fakeAttendance{},
		financial:  &fakeFinancial{},
		curricular: &fakeCurricular{},
	}
}

func (f *recordFixture) service() *RecordService {
	return NewRecordService(RecordServiceParams{
		Students:   f.students,
		Academics:  f.academics,
		Attendance: f.attendance,
		Financial:  f.financial,
		Curricular: f.curricular,
		Cache:      disabledCache(),
	})
}

func TestAddAcademicRecord(t *testing.T) {
	f := newRecordFixture()
	record, err := f.service().AddAcademic(context.Background(), "student-1", dto.CreateAcademicRecordRequest{
		Semester: 2,
		GPA:      3.4,
		Backlogs: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "student-1", record.StudentID)
	assert.Equal(t, 3.4, record.GPA)
	require.Len(t, f.academics.records, 1)
}

func TestAddAcademicRejectsOutOfRangeGPA(t *testing.T) {
	f := newRecordFixture()
	_, err := f.service().AddAcademic(context.Background(), "student-1", dto.CreateAcademicRecordRequest{
		Semester: 2,
		GPA:      11.5,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, f.academics.records)
}

func TestAddAcademicUnknownStudent(t *testing.T) {
	f := newRecordFixture()
	_, err := f.service().AddAcademic(context.Background(), "missing", dto.CreateAcademicRecordRequest{
		Semester: 1,
		GPA:      3.0,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStudentNotFound.Code, appErrors.FromError(err).Code)
}

func TestAddAttendanceRejectsPercentageAboveHundred(t *testing.T) {
	f := newRecordFixture()
	_, err := f.service().AddAttendance(context.Background(), "student-1", dto.CreateAttendanceRecordRequest{
		Semester:   1,
		Percentage: 120,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAddAttendanceRecord(t *testing.T) {
	f := newRecordFixture()
	record, err := f.service().AddAttendance(context.Background(), "student-1", dto.CreateAttendanceRecordRequest{
		Semester:     1,
		Percentage:   87.5,
		AbsenteeDays: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 87.5, record.Percentage)
	require.Len(t, f.attendance.records, 1)
}

func TestSetFinancialRejectsUnknownStatus(t *testing.T) {
	f := newRecordFixture()
	_, err := f.service().SetFinancial(context.Background(), "student-1", dto.SetFinancialRecordRequest{
		TuitionStatus: "overdue",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSetAndGetFinancial(t *testing.T) {
	f := newRecordFixture()
	svc := f.service()

	record, err := svc.SetFinancial(context.Background(), "student-1", dto.SetFinancialRecordRequest{
		TuitionStatus: "delayed",
		Scholarship:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TuitionDelayed, record.TuitionStatus)

	current, err := svc.GetFinancial(context.Background(), "student-1")
	require.NoError(t, err)
	assert.True(t, current.Scholarship)
}

func TestGetFinancialWithoutRecord(t *testing.T) {
	f := newRecordFixture()
	_, err := f.service().GetFinancial(context.Background(), "student-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAddCurricularRejectsApprovedAboveEnrolled(t *testing.T) {
	f := newRecordFixture()
	_, err := f.service().AddCurricular(context.Background(), "student-1", dto.CreateCurricularUnitRequest{
		Semester:      1,
		EnrolledUnits: 5,
		ApprovedUnits: 6,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "approved units exceed enrolled units", appErr.Message)
}

func TestAddCurricularRecord(t *testing.T) {
	f := newRecordFixture()
	unit, err := f.service().AddCurricular(context.Background(), "student-1", dto.CreateCurricularUnitRequest{
		Semester:      1,
		EnrolledUnits: 6,
		ApprovedUnits: 5,
		AverageGrade:  13.0,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, unit.EnrolledUnits)
	require.Len(t, f.curricular.units, 1)
}

func TestListRecordsRequireKnownStudent(t *testing.T) {
	f := newRecordFixture()
	svc := f.service()

	_, err := svc.ListAcademics(context.Background(), "missing")
	require.Error(t, err)
	_, err = svc.ListAttendance(context.Background(), "missing")
	require.Error(t, err)
	_, err = svc.ListCurricular(context.Background(), "missing")
	require.Error(t, err)
}

func TestListAcademicsReturnsSemesterOrder(t *testing.T) {
	f := newRecordFixture()
	f.academics.records = []models.AcademicRecord{
		{StudentID: "student-1", Semester: 2, GPA: 3.0},
		{StudentID: "student-1", Semester: 1, GPA: 3.5},
	}

	records, err := f.service().ListAcademics(context.Background(), "student-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Semester)
	assert.Equal(t, 2, records[1].Semester)
}
