package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/student-ews-api/pkg/errors"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func studentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "counselor_id", "age_at_enrollment", "gender",
		"session_type", "special_needs", "first_gen_student", "background", "course", "year", "semester", "created_at"})
}

func TestStudentRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := studentRows().
		AddRow("student-1", "user-1", nil, 19, "Female", "day", false, false, "urban", "Informatics", 2, 3, time.Now())
	mock.ExpectQuery(`FROM students WHERE id = \$1`).
		WithArgs("student-1").
		WillReturnRows(rows)

	profile, err := repo.GetByID(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.UserID)
	assert.Equal(t, 19, profile.AgeAtEnrollment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(`FROM students WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(studentRows())

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStudentNotFound.Code, appErrors.FromError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryGetByUserID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := studentRows().
		AddRow("student-1", "user-1", nil, 20, "Male", "evening", false, true, "rural", "Nursing", 1, 1, time.Now())
	mock.ExpectQuery(`FROM students WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(rows)

	profile, err := repo.GetByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "student-1", profile.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListByCounselor(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	counselor := "counselor-1"
	rows := studentRows().
		AddRow("student-1", "user-1", counselor, 19, "Female", "day", false, false, "urban", "Informatics", 2, 3, time.Now()).
		AddRow("student-2", "user-2", counselor, 21, "Male", "day", false, false, "urban", "Informatics", 2, 3, time.Now())
	mock.ExpectQuery(`FROM students WHERE counselor_id = \$1 ORDER BY created_at`).
		WithArgs(counselor).
		WillReturnRows(rows)

	profiles, err := repo.ListByCounselor(context.Background(), counselor)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "student-1", profiles[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
