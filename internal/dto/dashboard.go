package dto

import "github.com/noah-isme/student-ews-api/internal/models"

// SemesterPerformance is one semester row on the student dashboard,
// joining the academic record with attendance when present.
type SemesterPerformance struct {
	Semester             int      `json:"semester"`
	GPA                  float64  `json:"gpa"`
	Backlogs             int      `json:"backlogs"`
	AttendancePercentage *float64 `json:"attendance_percentage,omitempty"`
	AbsentDays           *int     `json:"absent_days,omitempty"`
}

// StudentDashboardResponse is the self-service dashboard payload.
type StudentDashboardResponse struct {
	Profile    models.StudentProfile `json:"profile"`
	Semesters  []SemesterPerformance `json:"semesters"`
	RiskStatus string                `json:"risk_status"`
}
