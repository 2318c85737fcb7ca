package scoring

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secmat-tools/secmat_backend/internal/models"
)

// referenceTime orders evaluations chronologically: completion time when present,
// creation time for drafts.
func referenceTime(er *models.EvaluationResult) time.Time {
	if er.CompletedAt != nil {
		return *er.CompletedAt
	}
	return er.CreatedAt
}

// ComputeTrend compares the current evaluation against the immediately preceding
// completed assessment of the same company and returns the signed per-domain and
// overall deltas. Returns nil when no prior completed assessment exists.
//
// "Previous" is the history entry with the latest completion time strictly earlier
// than the current evaluation's reference time; identical timestamps break by
// lowest evaluation id for reproducibility.
func ComputeTrend(current *models.EvaluationResult, history []models.EvaluationResult) *models.TrendSummary {
	previous := selectPrevious(current, history)
	if previous == nil {
		return nil
	}

	trend := &models.TrendSummary{
		PreviousEvaluationID: previous.EvaluationID,
		PreviousCompletedAt:  previous.CompletedAt,
		OverallDelta:         round2(current.OverallScore - previous.OverallScore),
	}

	for i := range current.DomainResults {
		cur := &current.DomainResults[i]
		prev := previous.DomainResultByID(cur.DomainID)
		if prev == nil || !cur.IsEvaluated() || !prev.IsEvaluated() {
			continue
		}
		trend.DomainDeltas = append(trend.DomainDeltas, models.DomainDelta{
			DomainID:   cur.DomainID,
			DomainName: cur.DomainName,
			Delta:      round2(cur.Score - prev.Score),
		})
	}

	return trend
}

// selectPrevious picks the closest completed predecessor of current from history
func selectPrevious(current *models.EvaluationResult, history []models.EvaluationResult) *models.EvaluationResult {
	cutoff := referenceTime(current)

	var previous *models.EvaluationResult
	for i := range history {
		h := &history[i]
		if h.EvaluationID == current.EvaluationID || h.CompletedAt == nil {
			continue
		}
		if !h.CompletedAt.Before(cutoff) {
			continue
		}
		if previous == nil {
			previous = h
			continue
		}
		switch {
		case h.CompletedAt.After(*previous.CompletedAt):
			previous = h
		case h.CompletedAt.Equal(*previous.CompletedAt) && lowerID(h.EvaluationID, previous.EvaluationID):
			previous = h
		}
	}
	return previous
}

// lowerID reports whether a sorts before b, the deterministic tie-break
func lowerID(a, b primitive.ObjectID) bool {
	return a.Hex() < b.Hex()
}

// CompareSector benchmarks the current evaluation against peer evaluations from
// companies sharing the same sector. An empty peer set yields an explicit
// unavailable marker rather than misleading zero deltas.
func CompareSector(current *models.EvaluationResult, sector models.Sector, peers []models.EvaluationResult) *models.SectorComparison {
	comparison := &models.SectorComparison{
		Sector:    sector,
		PeerCount: len(peers),
	}
	if len(peers) == 0 {
		return comparison
	}
	comparison.Available = true

	overallSum := 0.0
	for i := range peers {
		overallSum += peers[i].OverallScore
	}
	comparison.OverallDelta = round2(current.OverallScore - overallSum/float64(len(peers)))

	for i := range current.DomainResults {
		cur := &current.DomainResults[i]
		if !cur.IsEvaluated() {
			continue
		}

		peerSum := 0.0
		peerCount := 0
		for j := range peers {
			pd := peers[j].DomainResultByID(cur.DomainID)
			if pd == nil || !pd.IsEvaluated() {
				continue
			}
			peerSum += pd.Score
			peerCount++
		}
		if peerCount == 0 {
			continue
		}
		comparison.DomainDeltas = append(comparison.DomainDeltas, models.DomainDelta{
			DomainID:   cur.DomainID,
			DomainName: cur.DomainName,
			Delta:      round2(cur.Score - peerSum/float64(peerCount)),
		})
	}

	return comparison
}
