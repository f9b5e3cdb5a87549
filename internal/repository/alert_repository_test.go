package repository

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-ews-api/internal/models"
)

func TestAlertRepositoryInsertCandidates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAlertRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO alerts").
		WithArgs(sqlmock.AnyArg(), "student-1", "attendance_drop", "critical", sqlmock.AnyArg(), "unread", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO alerts").
		WithArgs(sqlmock.AnyArg(), "student-1", "gpa_drop", "high", sqlmock.AnyArg(), "unread", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	candidates := []models.AlertCandidate{
		{Type: models.AlertAttendanceDrop, Severity: models.SeverityCritical, Message: "Critical: Attendance has dropped to 55.0%"},
		{Type: models.AlertGPADrop, Severity: models.SeverityHigh, Message: "Warning: GPA at 2.30 is below the academic standing threshold"},
	}
	err := repo.InsertCandidates(context.Background(), "student-1", candidates)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepositoryInsertCandidatesRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAlertRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO alerts").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.InsertCandidates(context.Background(), "student-1", []models.AlertCandidate{
		{Type: models.AlertFinancialIssue, Severity: models.SeverityMedium, Message: "Tuition payment is delayed"},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepositoryInsertCandidatesEmptyIsNoop(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAlertRepository(db)

	err := repo.InsertCandidates(context.Background(), "student-1", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
