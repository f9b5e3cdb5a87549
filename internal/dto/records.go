package dto

// CreateAcademicRecordRequest appends a semester academic record.
type CreateAcademicRecordRequest struct {
	Semester int     `json:"semester" validate:"required,min=1"`
	GPA      float64 `json:"gpa" validate:"min=0,max=10"`
	Backlogs int     `json:"backlogs" validate:"min=0"`
}

// CreateAttendanceRecordRequest appends a semester attendance record.
type CreateAttendanceRecordRequest struct {
	Semester     int     `json:"semester" validate:"required,min=1"`
	Percentage   float64 `json:"percentage" validate:"min=0,max=100"`
	AbsenteeDays int     `json:"absentee_days" validate:"min=0"`
}

// SetFinancialRecordRequest replaces the student's financial standing.
type SetFinancialRecordRequest struct {
	TuitionStatus  string `json:"tuition_status" validate:"required,oneof=on-time delayed"`
	Scholarship    bool   `json:"scholarship"`
	LoanDependency bool   `json:"loan_dependency"`
}

// CreateCurricularUnitRequest appends a semester curricular snapshot.
type CreateCurricularUnitRequest struct {
	Semester      int     `json:"semester" validate:"required,min=1"`
	EnrolledUnits int     `json:"enrolled_units" validate:"min=0"`
	ApprovedUnits int     `json:"approved_units" validate:"min=0"`
	AverageGrade  float64 `json:"average_grade" validate:"min=0,max=20"`
}
