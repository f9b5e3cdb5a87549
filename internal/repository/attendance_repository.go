package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/student-ews-api/internal/models"
)

// AttendanceRepository manages persistence for semester attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Latest returns up to limit records, most recent semester first.
func (r *AttendanceRepository) Latest(ctx context.Context, studentID string, limit int) ([]models.AttendanceRecord, error) {
	const query = `SELECT id, student_id, semester, percentage, absentee_days, created_at
        FROM attendance_records WHERE student_id = $1 ORDER BY semester DESC LIMIT $2`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID, limit); err != nil {
		return nil, fmt.Errorf("latest attendance records for %s: %w", studentID, err)
	}
	return records, nil
}

// ListBySemester returns the full history in chronological semester order.
func (r *AttendanceRepository) ListBySemester(ctx context.Context, studentID string) ([]models.AttendanceRecord, error) {
	const query = `SELECT id, student_id, semester, percentage, absentee_days, created_at
        FROM attendance_records WHERE student_id = $1 ORDER BY semester ASC`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list attendance records for %s: %w", studentID, err)
	}
	return records, nil
}

// Create inserts a new attendance record.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO attendance_records (id, student_id, semester, percentage, absentee_days, created_at)
        VALUES (:id, :student_id, :semester, :percentage, :absentee_days, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create attendance record: %w", err)
	}
	return nil
}
