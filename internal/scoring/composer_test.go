package scoring

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secmat-tools/secmat_backend/internal/models"
)

func TestComposeOverall_ExcludesUnevaluatedDomains(t *testing.T) {
	// Domain A (weight 1, answers 3 and 5) scores 4.00; Domain B (weight 2) has a
	// question but no answers and must be excluded from the mean, not counted as zero
	domainA := newDomain("Domain A", 1, 1)
	domainB := newDomain("Domain B", 2, 2)
	qa1 := newQuestion(domainA.ID, 1)
	qa2 := newQuestion(domainA.ID, 1)
	qb := newQuestion(domainB.ID, 1)

	results, _ := ComputeDomainResults(
		[]models.Domain{domainA, domainB},
		[]models.Question{qa1, qa2, qb},
		[]models.Response{newResponse(qa1.ID, 3), newResponse(qa2.ID, 5)},
	)

	overall := ComposeOverall(results)

	if overall.Score != 4.00 {
		t.Errorf("Score = %v, want 4.00", overall.Score)
	}
	if overall.Level != models.MaturityManaged {
		t.Errorf("Level = %v, want Managed", overall.Level)
	}
	if overall.Progress != 67 {
		t.Errorf("Progress = %v, want 67 (2 of 3 answered, rounded)", overall.Progress)
	}
}

func TestComposeOverall_ZeroResponses(t *testing.T) {
	domain := newDomain("Governance", 1, 1)
	q := newQuestion(domain.ID, 1)

	results, _ := ComputeDomainResults([]models.Domain{domain}, []models.Question{q}, nil)
	overall := ComposeOverall(results)

	if overall.Score != 0 {
		t.Errorf("Score = %v, want 0", overall.Score)
	}
	if overall.Level != models.MaturityNotEvaluated {
		t.Errorf("Level = %v, want Not Evaluated", overall.Level)
	}
	if overall.Progress != 0 {
		t.Errorf("Progress = %v, want 0", overall.Progress)
	}
}

func TestComposeOverall_EmptyCatalog(t *testing.T) {
	overall := ComposeOverall(nil)

	if overall.Score != 0 || overall.Progress != 0 {
		t.Errorf("Score/Progress = %v/%v, want 0/0", overall.Score, overall.Progress)
	}
	if overall.Label != "Not Evaluated" {
		t.Errorf("Label = %q, want %q", overall.Label, "Not Evaluated")
	}
}

func TestComposeOverall_UniformAnswersCancelWeights(t *testing.T) {
	// Every question answered with the same value v: domain and question weights
	// must cancel out and the overall score equal v exactly
	for _, v := range []int{1, 2, 3, 4, 5} {
		domainA := newDomain("A", 1, 3)
		domainB := newDomain("B", 2, 1)
		qa := newQuestion(domainA.ID, 2)
		qb1 := newQuestion(domainB.ID, 5)
		qb2 := newQuestion(domainB.ID, 1)

		results, _ := ComputeDomainResults(
			[]models.Domain{domainA, domainB},
			[]models.Question{qa, qb1, qb2},
			[]models.Response{newResponse(qa.ID, v), newResponse(qb1.ID, v), newResponse(qb2.ID, v)},
		)
		overall := ComposeOverall(results)

		if overall.Score != float64(v) {
			t.Errorf("uniform answers %d: Score = %v, want %d", v, overall.Score, v)
		}
		if overall.Progress != 100 {
			t.Errorf("uniform answers %d: Progress = %v, want 100", v, overall.Progress)
		}
	}
}

func TestComposeOverall_EmptyDomainExcludedFromMean(t *testing.T) {
	evaluated := newDomain("Evaluated", 1, 1)
	empty := newDomain("Empty", 2, 10)
	q := newQuestion(evaluated.ID, 1)

	results, _ := ComputeDomainResults(
		[]models.Domain{evaluated, empty},
		[]models.Question{q},
		[]models.Response{newResponse(q.ID, 4)},
	)
	overall := ComposeOverall(results)

	if overall.Score != 4.00 {
		t.Errorf("Score = %v, want 4.00 (empty domain must not dilute)", overall.Score)
	}
	if overall.Progress != 100 {
		t.Errorf("Progress = %v, want 100 (empty domain has no questions to count)", overall.Progress)
	}
}

func TestScoringPipeline_Idempotent(t *testing.T) {
	domain := newDomain("Risk Management", 1, 2)
	q1 := newQuestion(domain.ID, 1)
	q2 := newQuestion(domain.ID, 3)
	domains := []models.Domain{domain}
	questions := []models.Question{q1, q2}
	responses := []models.Response{newResponse(q1.ID, 2), newResponse(q2.ID, 4)}

	assessment := &models.Assessment{ID: primitive.NewObjectID(), Name: "Q3 review"}
	company := &models.Company{Name: "Acme"}

	compute := func() models.EvaluationResult {
		results, _ := ComputeDomainResults(domains, questions, responses)
		return Assemble(assessment, company, results, ComposeOverall(results))
	}

	first := compute()
	second := compute()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("recomputation without writes is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAssemble_CopiesMetadata(t *testing.T) {
	assessment := &models.Assessment{
		ID:   primitive.NewObjectID(),
		Name: "Annual assessment",
	}
	company := &models.Company{Name: "Acme Corp"}

	result := Assemble(assessment, company, nil, ComposeOverall(nil))

	if result.EvaluationID != assessment.ID {
		t.Errorf("EvaluationID = %v, want %v", result.EvaluationID, assessment.ID)
	}
	if result.EvaluationName != "Annual assessment" {
		t.Errorf("EvaluationName = %q", result.EvaluationName)
	}
	if result.CompanyName != "Acme Corp" {
		t.Errorf("CompanyName = %q", result.CompanyName)
	}
	if result.DomainResults == nil {
		t.Error("DomainResults must be an empty slice, not nil")
	}
	if result.OverallMaturityLabel != "Not Evaluated" {
		t.Errorf("OverallMaturityLabel = %q", result.OverallMaturityLabel)
	}
}
