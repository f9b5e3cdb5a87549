// Package ml wraps the frozen dropout classifier artifact. The artifact is
// exported at training time as a JSON document carrying the feature order,
// the fitted standardization parameters and the logistic regression
// weights. The feature order inside the artifact is the versioned contract
// between training and serving; callers never hard-code column positions.
package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
)

// Scaler holds the per-feature standardization parameters frozen at
// training time.
type Scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Logistic holds the fitted classifier decision function.
type Logistic struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// Artifact is one immutable, fully-loaded model version. It is never
// mutated after load; reload swaps the whole value.
type Artifact struct {
	Version    string   `json:"version"`
	Features   []string `json:"features"`
	Scaler     Scaler   `json:"scaler"`
	Classifier Logistic `json:"classifier"`
}

// Load reads and validates an artifact file.
func Load(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact %s: %w", path, err)
	}

	var artifact Artifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}

	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("validate model artifact %s: %w", path, err)
	}

	return &artifact, nil
}

// Validate checks that scaler and classifier dimensions match the declared
// feature order.
func (a *Artifact) Validate() error {
	n := len(a.Features)
	if n == 0 {
		return fmt.Errorf("artifact declares no features")
	}
	if len(a.Scaler.Mean) != n || len(a.Scaler.Std) != n {
		return fmt.Errorf("scaler dimensions (%d/%d) do not match %d features",
			len(a.Scaler.Mean), len(a.Scaler.Std), n)
	}
	if len(a.Classifier.Coefficients) != n {
		return fmt.Errorf("classifier has %d coefficients for %d features",
			len(a.Classifier.Coefficients), n)
	}
	return nil
}

// Vector arranges named feature values into the artifact's column order.
// Names the artifact does not know are ignored; names absent from the map
// contribute 0.
func (a *Artifact) Vector(features map[string]float64) []float64 {
	vec := make([]float64, len(a.Features))
	for i, name := range a.Features {
		vec[i] = features[name]
	}
	return vec
}

// Scale applies the frozen standardization transform. A zero standard
// deviation maps the feature to 0 (constant column at training time).
func (a *Artifact) Scale(vec []float64) []float64 {
	scaled := make([]float64, len(vec))
	for i := range vec {
		if i >= len(a.Scaler.Mean) {
			break
		}
		if a.Scaler.Std[i] == 0 {
			scaled[i] = 0
			continue
		}
		scaled[i] = (vec[i] - a.Scaler.Mean[i]) / a.Scaler.Std[i]
	}
	return scaled
}

// PredictProbability evaluates the decision function on an already-scaled
// vector and returns the probability of the positive (dropout) class.
func (a *Artifact) PredictProbability(scaled []float64) float64 {
	z := a.Classifier.Intercept
	for i, w := range a.Classifier.Coefficients {
		if i >= len(scaled) {
			break
		}
		z += w * scaled[i]
	}
	return sigmoid(z)
}

// Score runs the full pipeline on named features: order, scale, predict.
func (a *Artifact) Score(features map[string]float64) float64 {
	return a.PredictProbability(a.Scale(a.Vector(features)))
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Store guards the process-wide artifact reference. Predictions read
// through an atomic pointer so an administrative reload never exposes a
// partially-loaded artifact to in-flight readers.
type Store struct {
	current atomic.Pointer[Artifact]
	path    string
	logger  *zap.Logger
}

// NewStore attempts the initial load. A missing or corrupt artifact is
// logged once here; the store stays empty and predictions degrade to the
// sentinel result instead of failing per request.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{path: path, logger: logger}

	artifact, err := Load(path)
	if err != nil {
		logger.Warn("model artifact unavailable, predictions will degrade",
			zap.String("path", path), zap.Error(err))
		return s
	}

	s.current.Store(artifact)
	logger.Info("model artifact loaded",
		zap.String("path", path),
		zap.String("version", artifact.Version),
		zap.Int("features", len(artifact.Features)))
	return s
}

// Artifact returns the active artifact, or nil when none is loaded.
func (s *Store) Artifact() *Artifact {
	if s == nil {
		return nil
	}
	return s.current.Load()
}

// Reload loads the artifact at path (the original path when empty) and
// swaps it in only after it validated completely.
func (s *Store) Reload(path string) error {
	if path == "" {
		path = s.path
	}

	artifact, err := Load(path)
	if err != nil {
		return err
	}

	s.path = path
	s.current.Store(artifact)
	s.logger.Info("model artifact reloaded",
		zap.String("path", path),
		zap.String("version", artifact.Version))
	return nil
}
