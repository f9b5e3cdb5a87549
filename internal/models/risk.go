package models

import "time"

// RiskLevel is the discretized dropout probability.
type RiskLevel string

const (
	RiskUnknown RiskLevel = "unknown"
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
)

// Rank orders risk levels for transition comparison. Unknown ranks 0 so it
// never registers as an increase or decrease.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return 0
	}
}

// Severity grades alert candidates.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities from low to critical.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// AlertType enumerates alert candidate categories.
type AlertType string

const (
	AlertAttendanceDrop    AlertType = "attendance_drop"
	AlertGPADrop           AlertType = "gpa_drop"
	AlertFailedCourse      AlertType = "failed_course"
	AlertAssignmentMissing AlertType = "assignment_missing"
	AlertFinancialIssue    AlertType = "financial_issue"
	AlertRiskLevelChange   AlertType = "risk_level_change"
	AlertPositiveFeedback  AlertType = "positive_feedback"
)

// AlertCandidate is an alert proposal emitted by the monitoring engine.
// Lifecycle (read/acknowledge/resolve) belongs to the alert store, not here.
type AlertCandidate struct {
	Type          AlertType  `json:"type"`
	Severity      Severity   `json:"severity"`
	Message       string     `json:"message"`
	CurrentValue  *float64   `json:"current_value,omitempty"`
	PreviousValue *float64   `json:"previous_value,omitempty"`
	Drop          *float64   `json:"drop,omitempty"`
	Threshold     *float64   `json:"threshold,omitempty"`
	CurrentRisk   *RiskLevel `json:"current_risk,omitempty"`
	PreviousRisk  *RiskLevel `json:"previous_risk,omitempty"`
}

// RiskFactor explains one rule-based contributor to a prediction.
type RiskFactor struct {
	Factor         string   `json:"factor"`
	Value          string   `json:"value"`
	Impact         Severity `json:"impact"`
	Recommendation string   `json:"recommendation"`
}

// RiskAssessment is the outcome of one prediction for one student.
type RiskAssessment struct {
	ID                 string       `db:"id" json:"id,omitempty"`
	StudentID          string       `db:"student_id" json:"student_id"`
	RiskLevel          RiskLevel    `db:"risk_level" json:"risk_level"`
	PreviousRiskLevel  *RiskLevel   `db:"previous_risk_level" json:"previous_risk_level,omitempty"`
	DropoutProbability float64      `db:"dropout_probability" json:"dropout_probability"`
	Confidence         float64      `db:"confidence" json:"confidence"`
	RiskFactors        []RiskFactor `json:"risk_factors"`
	ModelVersion       string       `db:"model_version" json:"model_version,omitempty"`
	AssessedAt         time.Time    `db:"assessed_at" json:"prediction_date"`
}

// TrendLabel is the coarse direction of a metric over recent semesters.
type TrendLabel string

const (
	TrendDeclining TrendLabel = "declining"
	TrendStable    TrendLabel = "stable"
	TrendImproving TrendLabel = "improving"
)

// TrendSet groups per-metric trend labels.
type TrendSet struct {
	Attendance TrendLabel `json:"attendance_trend"`
	GPA        TrendLabel `json:"gpa_trend"`
	Completion TrendLabel `json:"completion_trend"`
}

// OverallStatus is the coarse rollup of a student's current alert set.
type OverallStatus string

const (
	StatusGood            OverallStatus = "good"
	StatusAttentionNeeded OverallStatus = "attention_needed"
	StatusWarning         OverallStatus = "warning"
	StatusCritical        OverallStatus = "critical"
)

// MonitoringSummary is the per-student composition of metrics, alerts and
// trends with an overall status rollup.
type MonitoringSummary struct {
	StudentID     string           `json:"student_id"`
	Metrics       StudentMetrics   `json:"metrics"`
	Alerts        []AlertCandidate `json:"alerts"`
	Trends        TrendSet         `json:"trends"`
	OverallStatus OverallStatus    `json:"overall_status"`
}
