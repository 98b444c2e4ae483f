package benchmark

import (
	"fmt"
	"time"
)

// Kind tags one of the closed set of benchmark families.
type Kind string

const (
	KindPhysicalLimits Kind = "physical-limits"
	KindPracticality   Kind = "practicality"
	KindLiterature     Kind = "literature"
	KindConvergence    Kind = "convergence"
	KindExternalRubric Kind = "external-rubric"
)

// AllKinds returns every benchmark kind in canonical order. The order is the
// default enablement order and keeps recommendation output deterministic.
func AllKinds() []Kind {
	return []Kind{
		KindExternalRubric,
		KindPhysicalLimits,
		KindPracticality,
		KindLiterature,
		KindConvergence,
	}
}

// IsValid reports whether k belongs to the closed kind set.
func (k Kind) IsValid() bool {
	switch k {
	case KindPhysicalLimits, KindPracticality, KindLiterature, KindConvergence, KindExternalRubric:
		return true
	}
	return false
}

// MaxScore is the fixed scale every benchmark is normalized to.
const MaxScore = 10.0

// DefaultBaseWeights are the domain-calibrated relative importances per kind.
// They are relative weights, not probabilities; the sum is not meaningful.
func DefaultBaseWeights() map[Kind]float64 {
	return map[Kind]float64{
		KindExternalRubric: 0.30,
		KindPhysicalLimits: 0.25,
		KindPracticality:   0.20,
		KindLiterature:     0.15,
		KindConvergence:    0.10,
	}
}

// ItemResult is one sub-check inside a benchmark. Immutable once produced.
type ItemResult struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Score       float64  `json:"score"`
	MaxScore    float64  `json:"max_score"`
	Passed      bool     `json:"passed"`
	Reasoning   string   `json:"reasoning"`
	Evidence    []string `json:"evidence,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Metadata records how a benchmark evaluation ran.
type Metadata struct {
	Duration      time.Duration `json:"duration"`
	ChecksRun     int           `json:"checks_run"`
	ChecksSkipped int           `json:"checks_skipped"`
	Version       string        `json:"version"`
}

// Result is the normalized output of one benchmark. Score is always on the
// fixed 0–10 scale with MaxScore == 10 after normalization.
type Result struct {
	Kind       Kind         `json:"kind"`
	Score      float64      `json:"score"`
	MaxScore   float64      `json:"max_score"`
	Passed     bool         `json:"passed"`
	Weight     float64      `json:"weight"`
	Confidence float64      `json:"confidence"`
	Items      []ItemResult `json:"items"`
	Metadata   Metadata     `json:"metadata"`
}

// Normalized returns the score on the 0–1 scale.
func (r Result) Normalized() float64 {
	if r.MaxScore <= 0 {
		return 0
	}
	return r.Score / r.MaxScore
}

// Validate enforces the numeric invariants every well-formed result carries.
func (r Result) Validate() error {
	if !r.Kind.IsValid() {
		return fmt.Errorf("unknown benchmark kind: %s", r.Kind)
	}
	if r.MaxScore <= 0 {
		return fmt.Errorf("benchmark %s: max score must be positive, got %v", r.Kind, r.MaxScore)
	}
	if r.Score < 0 || r.Score > r.MaxScore {
		return fmt.Errorf("benchmark %s: score %v outside [0, %v]", r.Kind, r.Score, r.MaxScore)
	}
	if r.Weight < 0 || r.Weight > 1 {
		return fmt.Errorf("benchmark %s: weight %v outside [0, 1]", r.Kind, r.Weight)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("benchmark %s: confidence %v outside [0, 1]", r.Kind, r.Confidence)
	}
	return nil
}

// Rescale converts an item-sum score pair onto the fixed 0–10 output range.
func Rescale(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	scaled := score / maxScore * MaxScore
	if scaled < 0 {
		return 0
	}
	if scaled > MaxScore {
		return MaxScore
	}
	return scaled
}
