package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-ews-api/internal/models"
)

func TestAssessmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectExec("INSERT INTO risk_assessments").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assessment := &models.RiskAssessment{
		StudentID:          "student-1",
		RiskLevel:          models.RiskHigh,
		DropoutProbability: 0.81,
		Confidence:         0.82,
		RiskFactors: []models.RiskFactor{
			{Factor: "Low Attendance", Value: "58.0%", Impact: models.SeverityHigh},
		},
		ModelVersion: "v1",
	}
	err := repo.Create(context.Background(), assessment)
	require.NoError(t, err)
	assert.NotEmpty(t, assessment.ID)
	assert.False(t, assessment.AssessedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryLatestDecodesFactors(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	factors := `[{"factor":"Low GPA","value":"1.90","impact":"high","recommendation":"Enroll in tutoring"}]`
	rows := sqlmock.NewRows([]string{"id", "student_id", "risk_level", "previous_risk_level",
		"dropout_probability", "confidence", "risk_factors", "model_version", "assessed_at"}).
		AddRow("a-2", "student-1", "high", "medium", 0.81, 0.82, []byte(factors), "v1", time.Now()).
		AddRow("a-1", "student-1", "medium", nil, 0.5, 0.6, []byte("[]"), "v1", time.Now().Add(-time.Hour))
	mock.ExpectQuery(`FROM risk_assessments WHERE student_id = \$1 ORDER BY assessed_at DESC LIMIT \$2`).
		WithArgs("student-1", 2).
		WillReturnRows(rows)

	assessments, err := repo.Latest(context.Background(), "student-1", 2)
	require.NoError(t, err)
	require.Len(t, assessments, 2)

	assert.Equal(t, models.RiskHigh, assessments[0].RiskLevel)
	require.NotNil(t, assessments[0].PreviousRiskLevel)
	assert.Equal(t, models.RiskMedium, *assessments[0].PreviousRiskLevel)
	require.Len(t, assessments[0].RiskFactors, 1)
	assert.Equal(t, "Low GPA", assessments[0].RiskFactors[0].Factor)

	assert.Nil(t, assessments[1].PreviousRiskLevel)
	assert.Empty(t, assessments[1].RiskFactors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryLatestRejectsCorruptFactors(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "risk_level", "previous_risk_level",
		"dropout_probability", "confidence", "risk_factors", "model_version", "assessed_at"}).
		AddRow("a-1", "student-1", "low", nil, 0.1, 0.9, []byte("{broken"), "v1", time.Now())
	mock.ExpectQuery(`FROM risk_assessments WHERE student_id = \$1`).
		WithArgs("student-1", 1).
		WillReturnRows(rows)

	_, err := repo.Latest(context.Background(), "student-1", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode risk factors")
	assert.NoError(t, mock.ExpectationsWereMet())
}
