package models

import "math"

// MaturityLevel is the 1-5 discrete maturity classification. Zero means "not evaluated"
// (no answers available to classify).
type MaturityLevel int

// Maturity level values
const (
	MaturityNotEvaluated MaturityLevel = 0
	MaturityInitial      MaturityLevel = 1
	MaturityRepeatable   MaturityLevel = 2
	MaturityDefined      MaturityLevel = 3
	MaturityManaged      MaturityLevel = 4
	MaturityOptimized    MaturityLevel = 5
)

var maturityLabels = map[MaturityLevel]string{
	MaturityNotEvaluated: "Not Evaluated",
	MaturityInitial:      "Initial",
	MaturityRepeatable:   "Repeatable",
	MaturityDefined:      "Defined",
	MaturityManaged:      "Managed",
	MaturityOptimized:    "Optimized",
}

// Label returns the human-readable name of the maturity level
func (l MaturityLevel) Label() string {
	if label, ok := maturityLabels[l]; ok {
		return label
	}
	return maturityLabels[MaturityNotEvaluated]
}

// IsValid checks if the MaturityLevel is within the assessable 1-5 range
func (l MaturityLevel) IsValid() bool {
	return l >= MaturityInitial && l <= MaturityOptimized
}

// LevelForScore maps a normalized 0-5 score onto a discrete maturity level.
// Thresholds are half-open with round-half-up tie-breaking: <1.5 Initial,
// <2.5 Repeatable, <3.5 Defined, <4.5 Managed, >=4.5 Optimized. A score of
// exactly 0 means nothing was answered and yields MaturityNotEvaluated.
// #BUSINESS_RULE: Boundary values round to the higher label (1.50 -> Repeatable)
func LevelForScore(score float64) MaturityLevel {
	if score <= 0 {
		return MaturityNotEvaluated
	}

	level := MaturityLevel(math.Floor(score + 0.5))
	if level < MaturityInitial {
		return MaturityInitial
	}
	if level > MaturityOptimized {
		return MaturityOptimized
	}
	return level
}
