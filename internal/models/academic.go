package models

import "time"

// AcademicRecord captures per-semester academic standing. Records are
// append-only; one row per (student, semester).
type AcademicRecord struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	Semester  int       `db:"semester" json:"semester"`
	GPA       float64   `db:"gpa" json:"gpa"`
	Backlogs  int       `db:"backlogs" json:"backlogs"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
