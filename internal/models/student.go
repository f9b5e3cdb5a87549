package models

import "time"

// Gender values accepted by the feature encoder.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Session types for enrolled students.
const (
	SessionDay     = "day"
	SessionEvening = "evening"
)

// StudentProfile represents a learner tracked by the early-warning platform.
type StudentProfile struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	CounselorID     *string   `db:"counselor_id" json:"counselor_id,omitempty"`
	AgeAtEnrollment int       `db:"age_at_enrollment" json:"age_at_enrollment"`
	Gender          string    `db:"gender" json:"gender"`
	SessionType     string    `db:"session_type" json:"session_type"`
	SpecialNeeds    bool      `db:"special_needs" json:"special_needs"`
	FirstGenStudent bool      `db:"first_gen_student" json:"first_gen_student"`
	Background      string    `db:"background" json:"background"`
	Course          string    `db:"course" json:"course"`
	Year            int       `db:"year" json:"year"`
	Semester        int       `db:"semester" json:"semester"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
