package dto

import "github.com/noah-isme/student-ews-api/internal/models"

// BatchRiskRequest asks for predictions over a set of students. An empty
// list means the caller's full counselor roster.
type BatchRiskRequest struct {
	StudentIDs []string `json:"student_ids" validate:"dive,required"`
}

// BatchRiskItem is one per-student outcome in a batch response. Exactly one
// of Error or the embedded assessment is populated; items keep the request
// order.
type BatchRiskItem struct {
	StudentID string `json:"student_id"`
	Error     string `json:"error,omitempty"`
	*models.RiskAssessment
}

// ReloadModelRequest optionally points the reload at a new artifact path.
type ReloadModelRequest struct {
	Path string `json:"path"`
}

// ReloadModelResponse reports the artifact version now serving.
type ReloadModelResponse struct {
	Version string `json:"version"`
}
