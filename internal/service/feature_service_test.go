package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-ews-api/internal/models"
	appErrors "github.com/noah-isme/student-ews-api/pkg/errors"
)

func testProfile() *models.StudentProfile {
	return &models.StudentProfile{
		ID:              "student-1",
		UserID:          "user-1",
		AgeAtEnrollment: 19,
		Gender:          models.GenderFemale,
		SessionType:     models.SessionDay,
		Course:          "Informatics",
		Year:            2,
		Semester:        3,
	}
}

func newFeatureService(students *fakeStudents, academics *fakeAcademics, attendance *fakeAttendance, financial *fakeFinancial, curricular *fakeCurricular) *FeatureService {
	return NewFeatureService(FeatureServiceParams{
		Students:   students,
		Academics:  academics,
		Attendance: attendance,
		Financial:  financial,
		Curricular: curricular,
	})
}

func TestAssembleFullRecords(t *testing.T) {
	students := &fakeStudents{profiles: map[string]*models.StudentProfile{"student-1": testProfile()}}
	academics := &fakeAcademics{records: []models.AcademicRecord{{StudentID: "student-1", Semester: 3, GPA: 2.1, Backlogs: 1}}}
	attendance := &fakeAttendance{records: []models.AttendanceRecord{{StudentID: "student-1", Semester: 3, Percentage: 82, AbsenteeDays: 4}}}
	financial := &fakeFinancial{record: &models.FinancialRecord{StudentID: "student-1", TuitionStatus: models.TuitionOnTime, Scholarship: true}}
	curricular := &fakeCurricular{units: []models.CurricularUnit{
		{StudentID: "student-1", Semester: 3, EnrolledUnits: 6, ApprovedUnits: 5, AverageGrade: 13.5},
		{StudentID: "student-1", Semester: 2, EnrolledUnits: 6, ApprovedUnits: 6, AverageGrade: 14.0},
	}}

	svc := newFeatureService(students, academics, attendance, financial, curricular)
	features, metrics, err := svc.Assemble(context.Background(), "student-1")
	require.NoError(t, err)

	assert.Equal(t, 0.0, features[FeatureGender])
	assert.Equal(t, 19.0, features[FeatureAge])
	assert.Equal(t, 1.0, features[FeatureDaySession])
	assert.Equal(t, 82.0, features[FeatureAttendanceRate])
	assert.Equal(t, 2.1, features[FeatureCurrentGPA])
	assert.Equal(t, 1.0, features[FeatureTuitionUpToDate])
	assert.Equal(t, 0.0, features[FeatureDebtor])
	assert.Equal(t, 1.0, features[FeatureScholarship])

	// latest curricular record fills the 2nd-sem slots
	assert.Equal(t, 6.0, features[FeatureSem2Enrolled])
	assert.Equal(t, 5.0, features[FeatureSem2Approved])
	assert.Equal(t, 13.5, features[FeatureSem2Grade])
	assert.Equal(t, 6.0, features[FeatureSem1Enrolled])
	assert.Equal(t, 14.0, features[FeatureSem1Grade])

	require.NotNil(t, metrics.CompletionRate)
	assert.InDelta(t, 83.33, *metrics.CompletionRate, 0.01)
}

func TestAssembleWithoutCurricularSucceeds(t *testing.T) {
	students := &fakeStudents{profiles: map[string]*models.StudentProfile{"student-1": testProfile()}}
	svc := newFeatureService(students, &fakeAcademics{}, &fakeAttendance{}, &fakeFinancial{}, &fakeCurricular{})

	features, metrics, err := svc.Assemble(context.Background(), "student-1")
	require.NoError(t, err)

	assert.Equal(t, 0.0, features[FeatureSem1Enrolled])
	assert.Equal(t, 0.0, features[FeatureSem2Enrolled])
	assert.Equal(t, 0.0, features[FeatureSem2Grade])
	assert.Nil(t, metrics.CompletionRate)
	assert.Nil(t, metrics.CurrentGPA)
}

func TestAssembleRejectsUnknownGender(t *testing.T) {
	profile := testProfile()
	profile.Gender = "Other"
	students := &fakeStudents{profiles: map[string]*models.StudentProfile{"student-1": profile}}
	svc := newFeatureService(students, &fakeAcademics{}, &fakeAttendance{}, &fakeFinancial{}, &fakeCurricular{})

	_, _, err := svc.Assemble(context.Background(), "student-1")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrMalformedFeature.Code, appErr.Code)
}

func TestAssembleUnknownStudent(t *testing.T) {
	students := &fakeStudents{profiles: map[string]*models.StudentProfile{}}
	svc := newFeatureService(students, &fakeAcademics{}, &fakeAttendance{}, &fakeFinancial{}, &fakeCurricular{})

	_, _, err := svc.Assemble(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrStudentNotFound) || appErrors.FromError(err).Code == appErrors.ErrStudentNotFound.Code)
}

func TestCollectExposesMissingRecordsAsNil(t *testing.T) {
	students := &fakeStudents{profiles: map[string]*models.StudentProfile{"student-1": testProfile()}}
	attendance := &fakeAttendance{records: []models.AttendanceRecord{{StudentID: "student-1", Semester: 3, Percentage: 68, AbsenteeDays: 9}}}
	svc := newFeatureService(students, &fakeAcademics{}, attendance, &fakeFinancial{}, &fakeCurricular{})

	metrics, err := svc.Collect(context.Background(), "student-1")
	require.NoError(t, err)

	require.NotNil(t, metrics.AttendancePercentage)
	assert.Equal(t, 68.0, *metrics.AttendancePercentage)
	assert.Nil(t, metrics.CurrentGPA)
	assert.Nil(t, metrics.TuitionStatus)
	assert.Equal(t, "student-1", metrics.StudentID)
}
