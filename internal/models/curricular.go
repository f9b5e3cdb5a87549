package models

import "time"

// CurricularUnit captures per-semester curricular enrollment outcomes.
type CurricularUnit struct {
	ID            string    `db:"id" json:"id"`
	StudentID     string    `db:"student_id" json:"student_id"`
	Semester      int       `db:"semester" json:"semester"`
	EnrolledUnits int       `db:"enrolled_units" json:"enrolled_units"`
	ApprovedUnits int       `db:"approved_units" json:"approved_units"`
	AverageGrade  float64   `db:"average_grade" json:"average_grade"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// CompletionRate returns approved/enrolled as a percentage, 0 when no
// units are enrolled.
func (c CurricularUnit) CompletionRate() float64 {
	if c.EnrolledUnits <= 0 {
		return 0
	}
	return float64(c.ApprovedUnits) / float64(c.EnrolledUnits) * 100
}
