package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/student-ews-api/internal/models"
)

// AcademicRepository manages persistence for semester academic records.
type AcademicRepository struct {
	db *sqlx.DB
}

// NewAcademicRepository constructs an AcademicRepository.
func NewAcademicRepository(db *sqlx.DB) *AcademicRepository {
	return &AcademicRepository{db: db}
}

// Latest returns up to limit records, most recent semester first.
func (r *AcademicRepository) Latest(ctx context.Context, studentID string, limit int) ([]models.AcademicRecord, error) {
	const query = `SELECT id, student_id, semester, gpa, backlogs, created_at
        FROM academic_records WHERE student_id = $1 ORDER BY semester DESC LIMIT $2`
	var records []models.AcademicRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID, limit); err != nil {
		return nil, fmt.Errorf("latest academic records for %s: %w", studentID, err)
	}
	return records, nil
}

// ListBySemester returns the full history in chronological semester order.
func (r *AcademicRepository) ListBySemester(ctx context.Context, studentID string) ([]models.AcademicRecord, error) {
	const query = `SELECT id, student_id, semester, gpa, backlogs, created_at
        FROM academic_records WHERE student_id = $1 ORDER BY semester ASC`
	var records []models.AcademicRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list academic records for %s: %w", studentID, err)
	}
	return records, nil
}

// Create inserts a new academic record.
func (r *AcademicRepository) Create(ctx context.Context, record *models.AcademicRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO academic_records (id, student_id, semester, gpa, backlogs, created_at)
        VALUES (:id, :student_id, :semester, :gpa, :backlogs, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create academic record: %w", err)
	}
	return nil
}
