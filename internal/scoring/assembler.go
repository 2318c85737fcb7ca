package scoring

import (
	"github.com/secmat-tools/secmat_backend/internal/models"
)

// Assemble packages the aggregation and composition outputs together with the
// assessment and company metadata into the final EvaluationResult. Pure shape
// composition: every number is copied from upstream, never re-derived.
// #BUSINESS_RULE: Single source of truth - the assembler must not mutate scores
func Assemble(assessment *models.Assessment, company *models.Company, domainResults []models.DomainResult, overall OverallScore) models.EvaluationResult {
	if domainResults == nil {
		domainResults = []models.DomainResult{}
	}

	result := models.EvaluationResult{
		EvaluationID:         assessment.ID,
		EvaluationName:       assessment.Name,
		OverallScore:         overall.Score,
		OverallMaturityLevel: overall.Level,
		OverallMaturityLabel: overall.Label,
		Progress:             overall.Progress,
		DomainResults:        domainResults,
		CreatedAt:            assessment.CreatedAt,
		CompletedAt:          assessment.CompletedAt,
	}
	if company != nil {
		result.CompanyName = company.Name
	}
	return result
}
