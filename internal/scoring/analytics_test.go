package scoring

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secmat-tools/secmat_backend/internal/models"
)

func evalResult(score float64, completedAt *time.Time, domains ...models.DomainResult) models.EvaluationResult {
	return models.EvaluationResult{
		EvaluationID:  primitive.NewObjectID(),
		OverallScore:  score,
		DomainResults: domains,
		CreatedAt:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		CompletedAt:   completedAt,
	}
}

func evaluatedDomain(id primitive.ObjectID, name string, score float64) models.DomainResult {
	return models.DomainResult{
		DomainID:          id,
		DomainName:        name,
		Weight:            1,
		Score:             score,
		TotalQuestions:    2,
		AnsweredQuestions: 2,
	}
}

func TestComputeTrend_DeltaAgainstPreviousCompleted(t *testing.T) {
	domainID := primitive.NewObjectID()
	t1 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	previous := evalResult(2.0, &t1, evaluatedDomain(domainID, "Governance", 2.0))
	current := evalResult(3.0, &t2, evaluatedDomain(domainID, "Governance", 3.0))

	trend := ComputeTrend(&current, []models.EvaluationResult{previous, current})
	if trend == nil {
		t.Fatal("expected a trend summary, got nil")
	}
	if trend.PreviousEvaluationID != previous.EvaluationID {
		t.Errorf("PreviousEvaluationID = %v, want %v", trend.PreviousEvaluationID, previous.EvaluationID)
	}
	if trend.OverallDelta != 1.0 {
		t.Errorf("OverallDelta = %v, want +1.0", trend.OverallDelta)
	}
	if len(trend.DomainDeltas) != 1 || trend.DomainDeltas[0].Delta != 1.0 {
		t.Errorf("DomainDeltas = %+v, want one delta of +1.0", trend.DomainDeltas)
	}
}

func TestComputeTrend_NoPriorAssessment(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	first := evalResult(2.0, &t1)
	later := evalResult(3.0, &t2)

	if trend := ComputeTrend(&first, []models.EvaluationResult{first, later}); trend != nil {
		t.Errorf("expected nil trend for the earliest assessment, got %+v", trend)
	}
}

func TestComputeTrend_IgnoresDraftsInHistory(t *testing.T) {
	t2 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	draft := evalResult(4.5, nil) // created before t2 but never completed
	current := evalResult(3.0, &t2)

	if trend := ComputeTrend(&current, []models.EvaluationResult{draft, current}); trend != nil {
		t.Errorf("draft history entries must not act as the previous assessment, got %+v", trend)
	}
}

func TestComputeTrend_TieBreaksByLowestID(t *testing.T) {
	completed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	a := evalResult(2.0, &completed)
	b := evalResult(4.0, &completed)
	current := evalResult(3.0, &now)

	want := a.EvaluationID
	if b.EvaluationID.Hex() < a.EvaluationID.Hex() {
		want = b.EvaluationID
	}

	trend := ComputeTrend(&current, []models.EvaluationResult{a, b, current})
	if trend == nil {
		t.Fatal("expected a trend summary, got nil")
	}
	if trend.PreviousEvaluationID != want {
		t.Errorf("PreviousEvaluationID = %v, want lowest id %v", trend.PreviousEvaluationID, want)
	}
}

func TestComputeTrend_DraftCurrentUsesCreationTime(t *testing.T) {
	completed := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)

	previous := evalResult(2.5, &completed)
	current := evalResult(3.5, nil) // draft, created 2026-01-01

	trend := ComputeTrend(&current, []models.EvaluationResult{previous})
	if trend == nil {
		t.Fatal("expected a trend summary against the completed predecessor, got nil")
	}
	if trend.OverallDelta != 1.0 {
		t.Errorf("OverallDelta = %v, want +1.0", trend.OverallDelta)
	}
}

func TestCompareSector_EmptyPeerSetUnavailable(t *testing.T) {
	current := evalResult(3.0, nil)

	comparison := CompareSector(&current, models.SectorFinance, nil)
	if comparison == nil {
		t.Fatal("expected a comparison marker, got nil")
	}
	if comparison.Available {
		t.Error("Available = true, want false for empty peer set")
	}
	if comparison.PeerCount != 0 {
		t.Errorf("PeerCount = %d, want 0", comparison.PeerCount)
	}
	if len(comparison.DomainDeltas) != 0 {
		t.Errorf("DomainDeltas = %+v, want none", comparison.DomainDeltas)
	}
}

func TestCompareSector_SignedDifferenceAgainstPeerMean(t *testing.T) {
	domainID := primitive.NewObjectID()

	current := evalResult(4.0, nil, evaluatedDomain(domainID, "Data Protection", 4.0))
	peers := []models.EvaluationResult{
		evalResult(2.0, nil, evaluatedDomain(domainID, "Data Protection", 2.0)),
		evalResult(3.0, nil, evaluatedDomain(domainID, "Data Protection", 4.0)),
	}

	comparison := CompareSector(&current, models.SectorTechnology, peers)
	if !comparison.Available {
		t.Fatal("Available = false, want true")
	}
	if comparison.PeerCount != 2 {
		t.Errorf("PeerCount = %d, want 2", comparison.PeerCount)
	}
	if comparison.OverallDelta != 1.5 {
		t.Errorf("OverallDelta = %v, want +1.5 (4.0 - mean 2.5)", comparison.OverallDelta)
	}
	if len(comparison.DomainDeltas) != 1 || comparison.DomainDeltas[0].Delta != 1.0 {
		t.Errorf("DomainDeltas = %+v, want one delta of +1.0 (4.0 - mean 3.0)", comparison.DomainDeltas)
	}
}

func TestCompareSector_SkipsDomainsWithoutPeerData(t *testing.T) {
	shared := primitive.NewObjectID()
	onlyCurrent := primitive.NewObjectID()

	current := evalResult(4.0, nil,
		evaluatedDomain(shared, "Shared", 4.0),
		evaluatedDomain(onlyCurrent, "Ours Only", 5.0),
	)
	peers := []models.EvaluationResult{
		evalResult(3.0, nil, evaluatedDomain(shared, "Shared", 3.0)),
	}

	comparison := CompareSector(&current, models.SectorEnergy, peers)
	if len(comparison.DomainDeltas) != 1 {
		t.Fatalf("DomainDeltas = %+v, want only the shared domain", comparison.DomainDeltas)
	}
	if comparison.DomainDeltas[0].DomainID != shared {
		t.Errorf("unexpected domain in deltas: %v", comparison.DomainDeltas[0].DomainID)
	}
}
