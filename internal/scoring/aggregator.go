// Package scoring implements the maturity scoring and results-aggregation engine:
// per-domain aggregation, overall score composition, comparative analytics and
// result assembly. All computations are pure functions over locally fetched
// snapshots; nothing in this package touches storage or transport.
package scoring

import (
	"fmt"
	"math"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secmat-tools/secmat_backend/internal/models"
)

// IntegrityWarning flags a skipped record during aggregation. Bad rows never fail
// the whole computation; they are reported to the caller for logging.
// #BUSINESS_RULE: Partial-result tolerance - a single bad row must not break scoring
type IntegrityWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Warning codes
const (
	WarnOrphanQuestion  = "orphan_question"  // question references a missing/inactive domain
	WarnOrphanResponse  = "orphan_response"  // response references a question outside the catalog
	WarnInvalidResponse = "invalid_response" // response value outside the 1-5 scale
)

// ComputeDomainResults groups the active question catalog and one assessment's
// responses by domain and produces one DomainResult per active domain. Domains
// without questions or without answers yield a "Not Evaluated" row; the composer
// excludes those from the overall mean.
//
// The normalized domain score is the weighted mean of answered question values
// (raw score divided by the answered weight sum), so partial completion does not
// understate a domain's demonstrated maturity.
func ComputeDomainResults(domains []models.Domain, questions []models.Question, responses []models.Response) ([]models.DomainResult, []IntegrityWarning) {
	var warnings []IntegrityWarning

	domainByID := make(map[primitive.ObjectID]*models.Domain, len(domains))
	active := make([]models.Domain, 0, len(domains))
	for i := range domains {
		if !domains[i].IsActive {
			continue
		}
		active = append(active, domains[i])
		domainByID[domains[i].ID] = &domains[i]
	}

	// Partition active questions by domain, dropping orphans
	questionsByDomain := make(map[primitive.ObjectID][]models.Question)
	questionByID := make(map[primitive.ObjectID]*models.Question, len(questions))
	for i := range questions {
		q := &questions[i]
		if !q.IsActive {
			continue
		}
		if _, ok := domainByID[q.DomainID]; !ok {
			warnings = append(warnings, IntegrityWarning{
				Code:    WarnOrphanQuestion,
				Message: fmt.Sprintf("question %s references unknown or inactive domain %s", q.ID.Hex(), q.DomainID.Hex()),
			})
			continue
		}
		questionsByDomain[q.DomainID] = append(questionsByDomain[q.DomainID], *q)
		questionByID[q.ID] = q
	}

	// At most one response per question; later saves win
	responseByQuestion := make(map[primitive.ObjectID]models.Response, len(responses))
	for _, r := range responses {
		if _, ok := questionByID[r.QuestionID]; !ok {
			warnings = append(warnings, IntegrityWarning{
				Code:    WarnOrphanResponse,
				Message: fmt.Sprintf("response %s references question %s outside the active catalog", r.ID.Hex(), r.QuestionID.Hex()),
			})
			continue
		}
		if !models.IsValidValue(r.Value) {
			warnings = append(warnings, IntegrityWarning{
				Code:    WarnInvalidResponse,
				Message: fmt.Sprintf("response %s has value %d outside the 1-5 scale", r.ID.Hex(), r.Value),
			})
			continue
		}
		if existing, ok := responseByQuestion[r.QuestionID]; !ok || r.SavedAt.After(existing.SavedAt) {
			responseByQuestion[r.QuestionID] = r
		}
	}

	results := make([]models.DomainResult, 0, len(active))
	for _, d := range active {
		results = append(results, aggregateDomain(d, questionsByDomain[d.ID], responseByQuestion))
	}

	// Deterministic presentation order: catalog order index, then name
	sort.SliceStable(results, func(i, j int) bool {
		di, dj := domainByID[results[i].DomainID], domainByID[results[j].DomainID]
		if di.Order != dj.Order {
			return di.Order < dj.Order
		}
		return di.Name < dj.Name
	})

	return results, warnings
}

// aggregateDomain computes raw/normalized scores and counts for one domain
func aggregateDomain(domain models.Domain, questions []models.Question, responseByQuestion map[primitive.ObjectID]models.Response) models.DomainResult {
	result := models.DomainResult{
		DomainID:       domain.ID,
		DomainName:     domain.Name,
		Weight:         domain.EffectiveWeight(),
		TotalQuestions: len(questions),
		MaturityLevel:  models.MaturityNotEvaluated,
		MaturityLabel:  models.MaturityNotEvaluated.Label(),
	}

	if len(questions) == 0 {
		return result
	}

	rawScore := 0
	answeredWeight := 0
	for _, q := range questions {
		w := q.EffectiveWeight()
		result.MaxPossibleScore += w * models.ScaleMax

		resp, ok := responseByQuestion[q.ID]
		if !ok {
			continue
		}
		rawScore += resp.Value * w
		answeredWeight += w
		result.AnsweredQuestions++
	}

	result.RawScore = rawScore
	result.Progress = round2(float64(result.AnsweredQuestions) / float64(result.TotalQuestions) * 100)

	if answeredWeight == 0 {
		return result
	}

	result.Score = round2(float64(rawScore) / float64(answeredWeight))
	result.MaturityLevel = models.LevelForScore(result.Score)
	result.MaturityLabel = result.MaturityLevel.Label()
	return result
}

// round2 rounds to two decimal places, half away from zero
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
