package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/student-ews-api/internal/models"
)

// CurricularRepository manages persistence for semester curricular
// snapshots.
type CurricularRepository struct {
	db *sqlx.DB
}

// NewCurricularRepository constructs a CurricularRepository.
func NewCurricularRepository(db *sqlx.DB) *CurricularRepository {
	return &CurricularRepository{db: db}
}

// Latest returns up to limit snapshots, most recent semester first.
func (r *CurricularRepository) Latest(ctx context.Context, studentID string, limit int) ([]models.CurricularUnit, error) {
	const query = `SELECT id, student_id, semester, enrolled_units, approved_units, average_grade, created_at
        FROM curricular_units WHERE student_id = $1 ORDER BY semester DESC LIMIT $2`
	var units []models.CurricularUnit
	if err := r.db.SelectContext(ctx, &units, query, studentID, limit); err != nil {
		return nil, fmt.Errorf("latest curricular units for %s: %w", studentID, err)
	}
	return units, nil
}

// ListBySemester returns the full history in chronological semester order.
func (r *CurricularRepository) ListBySemester(ctx context.Context, studentID string) ([]models.CurricularUnit, error) {
	const query = `SELECT id, student_id, semester, enrolled_units, approved_units, average_grade, created_at
        FROM curricular_units WHERE student_id = $1 ORDER BY semester ASC`
	var units []models.CurricularUnit
	if err := r.db.SelectContext(ctx, &units, query, studentID); err != nil {
		return nil, fmt.Errorf("list curricular units for %s: %w", studentID, err)
	}
	return units, nil
}

// Create inserts a new curricular snapshot.
func (r *CurricularRepository) Create(ctx context.Context, unit *models.CurricularUnit) error {
	if unit.ID == "" {
		unit.ID = uuid.NewString()
	}
	if unit.CreatedAt.IsZero() {
		unit.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO curricular_units (id, student_id, semester, enrolled_units, approved_units, average_grade, created_at)
        VALUES (:id, :student_id, :semester, :enrolled_units, :approved_units, :average_grade, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, unit); err != nil {
		return fmt.Errorf("create curricular unit: %w", err)
	}
	return nil
}
