package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/student-ews-api/internal/models"
)

// AssessmentRepository persists risk assessment outcomes. Risk factors are
// stored as a JSON column since they are read back whole, never queried.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository constructs an AssessmentRepository.
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

type assessmentRow struct {
	ID                 string            `db:"id"`
	StudentID          string            `db:"student_id"`
	RiskLevel          models.RiskLevel  `db:"risk_level"`
	PreviousRiskLevel  *models.RiskLevel `db:"previous_risk_level"`
	DropoutProbability float64           `db:"dropout_probability"`
	Confidence         float64           `db:"confidence"`
	RiskFactors        []byte            `db:"risk_factors"`
	ModelVersion       string            `db:"model_version"`
	AssessedAt         time.Time         `db:"assessed_at"`
}

func (row assessmentRow) toModel() (models.RiskAssessment, error) {
	assessment := models.RiskAssessment{
		ID:                 row.ID,
		StudentID:          row.StudentID,
		RiskLevel:          row.RiskLevel,
		PreviousRiskLevel:  row.PreviousRiskLevel,
		DropoutProbability: row.DropoutProbability,
		Confidence:         row.Confidence,
		ModelVersion:       row.ModelVersion,
		AssessedAt:         row.AssessedAt,
	}
	if len(row.RiskFactors) > 0 {
		if err := json.Unmarshal(row.RiskFactors, &assessment.RiskFactors); err != nil {
			return assessment, fmt.Errorf("decode risk factors for assessment %s: %w", row.ID, err)
		}
	}
	return assessment, nil
}

// Create inserts a new assessment.
func (r *AssessmentRepository) Create(ctx context.Context, assessment *models.RiskAssessment) error {
	if assessment.ID == "" {
		assessment.ID = uuid.NewString()
	}
	if assessment.AssessedAt.IsZero() {
		assessment.AssessedAt = time.Now().UTC()
	}

	factors, err := json.Marshal(assessment.RiskFactors)
	if err != nil {
		return fmt.Errorf("encode risk factors: %w", err)
	}

	row := assessmentRow{
		ID:                 assessment.ID,
		StudentID:          assessment.StudentID,
		RiskLevel:          assessment.RiskLevel,
		PreviousRiskLevel:  assessment.PreviousRiskLevel,
		DropoutProbability: assessment.DropoutProbability,
		Confidence:         assessment.Confidence,
		RiskFactors:        factors,
		ModelVersion:       assessment.ModelVersion,
		AssessedAt:         assessment.AssessedAt,
	}
	const query = `INSERT INTO risk_assessments (id, student_id, risk_level, previous_risk_level,
        dropout_probability, confidence, risk_factors, model_version, assessed_at)
        VALUES (:id, :student_id, :risk_level, :previous_risk_level,
        :dropout_probability, :confidence, :risk_factors, :model_version, :assessed_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create risk assessment: %w", err)
	}
	return nil
}

// Latest returns up to limit assessments, most recent first.
func (r *AssessmentRepository) Latest(ctx context.Context, studentID string, limit int) ([]models.RiskAssessment, error) {
	const query = `SELECT id, student_id, risk_level, previous_risk_level, dropout_probability,
        confidence, risk_factors, model_version, assessed_at
        FROM risk_assessments WHERE student_id = $1 ORDER BY assessed_at DESC LIMIT $2`
	var rows []assessmentRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID, limit); err != nil {
		return nil, fmt.Errorf("latest assessments for %s: %w", studentID, err)
	}

	assessments := make([]models.RiskAssessment, 0, len(rows))
	for _, row := range rows {
		assessment, err := row.toModel()
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, assessment)
	}
	return assessments, nil
}
