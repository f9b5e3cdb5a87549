package models

import "time"

// TuitionStatus enumerates tuition payment states.
type TuitionStatus string

const (
	TuitionOnTime  TuitionStatus = "on-time"
	TuitionDelayed TuitionStatus = "delayed"
)

// Valid returns true when the status is a supported value.
func (s TuitionStatus) Valid() bool {
	return s == TuitionOnTime || s == TuitionDelayed
}

// FinancialRecord holds the current financial standing for a student.
// Unlike the semester-keyed records there is at most one row per student;
// writes replace the previous state (last-write-wins).
type FinancialRecord struct {
	ID             string        `db:"id" json:"id"`
	StudentID      string        `db:"student_id" json:"student_id"`
	TuitionStatus  TuitionStatus `db:"tuition_status" json:"tuition_status"`
	Scholarship    bool          `db:"scholarship" json:"scholarship"`
	LoanDependency bool          `db:"loan_dependency" json:"loan_dependency"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
}
