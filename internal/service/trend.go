package service

import (
	"github.com/noah-isme/student-ews-api/internal/models"
)

// TrendMetric selects which improvement threshold applies when classifying
// a metric history.
type TrendMetric int

const (
	TrendAttendance TrendMetric = iota
	TrendGPA
	TrendCompletion
)

// threshold is the minimum average per-record change that counts as a real
// move rather than noise.
func (m TrendMetric) threshold() float64 {
	switch m {
	case TrendGPA:
		return 0.1
	case TrendCompletion:
		return 5
	default:
		return 2
	}
}

// ClassifyTrend labels a metric history as improving, declining or stable.
// Values arrive newest-first, the way repositories return them; the delta
// is computed over the chronological ordering.
func ClassifyTrend(newestFirst []float64, metric TrendMetric) models.TrendLabel {
	if len(newestFirst) < 2 {
		return models.TrendStable
	}

	oldest := newestFirst[len(newestFirst)-1]
	newest := newestFirst[0]
	delta := (newest - oldest) / float64(len(newestFirst))

	threshold := metric.threshold()
	switch {
	case delta > threshold:
		return models.TrendImproving
	case delta < -threshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}
