package scoring

import (
	"math"

	"github.com/secmat-tools/secmat_backend/internal/models"
)

// OverallScore is the composed assessment-wide score
type OverallScore struct {
	Score    float64
	Level    models.MaturityLevel
	Label    string
	Progress float64

	TotalQuestions    int
	AnsweredQuestions int
}

// ComposeOverall combines per-domain results into a single weighted overall score,
// maturity level and completion percentage.
//
// Only evaluated domains (at least one question and at least one answer) enter the
// weighted mean: empty or fully unanswered domains would otherwise depress the
// result as artificial zeros. The completion percentage counts every cataloged
// question, answered or not.
// #BUSINESS_RULE: Zero active questions system-wide yields a zero/"Not Evaluated"
// result, never a division by zero
func ComposeOverall(results []models.DomainResult) OverallScore {
	overall := OverallScore{
		Level: models.MaturityNotEvaluated,
		Label: models.MaturityNotEvaluated.Label(),
	}

	weightedSum := 0.0
	weightSum := 0
	for i := range results {
		r := &results[i]
		overall.TotalQuestions += r.TotalQuestions
		overall.AnsweredQuestions += r.AnsweredQuestions

		if !r.IsEvaluated() {
			continue
		}
		w := r.Weight
		if w <= 0 {
			w = 1
		}
		weightedSum += r.Score * float64(w)
		weightSum += w
	}

	if overall.TotalQuestions > 0 {
		pct := float64(overall.AnsweredQuestions) / float64(overall.TotalQuestions) * 100
		overall.Progress = math.Round(pct)
	}

	if weightSum == 0 {
		return overall
	}

	overall.Score = round2(weightedSum / float64(weightSum))
	overall.Level = models.LevelForScore(overall.Score)
	overall.Label = overall.Level.Label()
	return overall
}
