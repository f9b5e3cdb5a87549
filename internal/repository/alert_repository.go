package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/student-ews-api/internal/models"
)

// AlertRepository hands alert candidates over to the alert store. The
// read/acknowledge/resolve lifecycle is owned by a separate system; this
// side only inserts unread rows.
type AlertRepository struct {
	db *sqlx.DB
}

// NewAlertRepository constructs an AlertRepository.
func NewAlertRepository(db *sqlx.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

type alertRow struct {
	ID        string           `db:"id"`
	StudentID string           `db:"student_id"`
	Type      models.AlertType `db:"type"`
	Severity  models.Severity  `db:"severity"`
	Message   string           `db:"message"`
	Status    string           `db:"status"`
	CreatedAt time.Time        `db:"created_at"`
}

// InsertCandidates writes a sweep's alert candidates in one transaction so
// a partial sweep never lands.
func (r *AlertRepository) InsertCandidates(ctx context.Context, studentID string, candidates []models.AlertCandidate) error {
	if len(candidates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin alert insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `INSERT INTO alerts (id, student_id, type, severity, message, status, created_at)
        VALUES (:id, :student_id, :type, :severity, :message, :status, :created_at)`
	now := time.Now().UTC()
	for _, candidate := range candidates {
		row := alertRow{
			ID:        uuid.NewString(),
			StudentID: studentID,
			Type:      candidate.Type,
			Severity:  candidate.Severity,
			Message:   candidate.Message,
			Status:    "unread",
			CreatedAt: now,
		}
		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			return fmt.Errorf("insert alert %s: %w", candidate.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit alert insert: %w", err)
	}
	return nil
}
