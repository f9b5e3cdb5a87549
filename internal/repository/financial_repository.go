package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/student-ews-api/internal/models"
)

// FinancialRepository manages the single current financial record per
// student.
type FinancialRepository struct {
	db *sqlx.DB
}

// NewFinancialRepository constructs a FinancialRepository.
func NewFinancialRepository(db *sqlx.DB) *FinancialRepository {
	return &FinancialRepository{db: db}
}

// Current returns the student's financial record, or nil when none exists.
func (r *FinancialRepository) Current(ctx context.Context, studentID string) (*models.FinancialRecord, error) {
	const query = `SELECT id, student_id, tuition_status, scholarship, loan_dependency, updated_at
        FROM financial_records WHERE student_id = $1`
	var record models.FinancialRecord
	if err := r.db.GetContext(ctx, &record, query, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("current financial record for %s: %w", studentID, err)
	}
	return &record, nil
}

// Upsert writes the student's financial standing, replacing any previous
// state.
func (r *FinancialRepository) Upsert(ctx context.Context, record *models.FinancialRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO financial_records (id, student_id, tuition_status, scholarship, loan_dependency, updated_at)
        VALUES (:id, :student_id, :tuition_status, :scholarship, :loan_dependency, :updated_at)
        ON CONFLICT (student_id) DO UPDATE SET
        tuition_status = EXCLUDED.tuition_status,
        scholarship = EXCLUDED.scholarship,
        loan_dependency = EXCLUDED.loan_dependency,
        updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("upsert financial record: %w", err)
	}
	return nil
}
