package models

import "time"

// StudentMetrics is the human-readable snapshot of a student's current
// records. Pointer fields stay nil when the underlying record is absent so
// consumers can distinguish "missing" from zero.
type StudentMetrics struct {
	StudentID string    `json:"student_id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`

	CurrentGPA      *float64 `json:"current_gpa,omitempty"`
	CurrentSemester *int     `json:"current_semester,omitempty"`
	Backlogs        *int     `json:"backlogs,omitempty"`

	AttendancePercentage *float64 `json:"attendance_percentage,omitempty"`
	AbsentDays           *int     `json:"absent_days,omitempty"`

	TuitionStatus  *TuitionStatus `json:"tuition_status,omitempty"`
	Scholarship    *bool          `json:"scholarship,omitempty"`
	LoanDependency *bool          `json:"loan_dependency,omitempty"`

	EnrolledUnits  *int     `json:"enrolled_units,omitempty"`
	ApprovedUnits  *int     `json:"approved_units,omitempty"`
	AverageGrade   *float64 `json:"average_grade,omitempty"`
	CompletionRate *float64 `json:"completion_rate,omitempty"`

	AgeAtEnrollment int    `json:"age_at_enrollment"`
	Gender          string `json:"gender"`
	Course          string `json:"course"`
	Year            int    `json:"year"`
	Semester        int    `json:"semester"`
	SessionType     string `json:"session_type"`
	SpecialNeeds    bool   `json:"special_needs"`
	FirstGenStudent bool   `json:"first_gen_student"`
	Background      string `json:"background"`
}

// SystemMetrics is an aggregated instrumentation snapshot for API consumption.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"avg_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"avg_db_query_duration_ms"`
	PredictionsTotal         uint64    `json:"predictions_total"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
