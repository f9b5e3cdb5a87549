package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/student-ews-api/internal/models"
	appErrors "github.com/noah-isme/student-ews-api/pkg/errors"
)

// StudentRepository manages persistence for student profiles.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, user_id, counselor_id, age_at_enrollment, gender, session_type,
        special_needs, first_gen_student, background, course, year, semester, created_at`

// GetByID fetches a student profile by its id.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.StudentProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = $1`, studentColumns)
	var profile models.StudentProfile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("get student %s: %w", id, err)
	}
	return &profile, nil
}

// GetByUserID fetches the profile owned by a platform user.
func (r *StudentRepository) GetByUserID(ctx context.Context, userID string) (*models.StudentProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE user_id = $1`, studentColumns)
	var profile models.StudentProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("get student by user %s: %w", userID, err)
	}
	return &profile, nil
}

// ListByCounselor returns the students assigned to a counselor, used by
// the batch sweep when no explicit id list is given.
func (r *StudentRepository) ListByCounselor(ctx context.Context, counselorID string) ([]models.StudentProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE counselor_id = $1 ORDER BY created_at`, studentColumns)
	var profiles []models.StudentProfile
	if err := r.db.SelectContext(ctx, &profiles, query, counselorID); err != nil {
		return nil, fmt.Errorf("list students for counselor %s: %w", counselorID, err)
	}
	return profiles, nil
}
