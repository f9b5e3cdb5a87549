package models

import "time"

// AttendanceRecord captures per-semester attendance. Same lifecycle as
// AcademicRecord: append-only, one row per (student, semester).
type AttendanceRecord struct {
	ID           string    `db:"id" json:"id"`
	StudentID    string    `db:"student_id" json:"student_id"`
	Semester     int       `db:"semester" json:"semester"`
	Percentage   float64   `db:"percentage" json:"percentage"`
	AbsenteeDays int       `db:"absentee_days" json:"absentee_days"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
