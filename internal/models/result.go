package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Derived result structures. These are views recomputed on every request and are
// never persisted as a source of truth (the cached Assessment.OverallScore exists
// for listing only).

// DomainResult is the aggregation output for one domain within one assessment
type DomainResult struct {
	DomainID   primitive.ObjectID `json:"domain_id"`
	DomainName string             `json:"domain_name"`
	Weight     int                `json:"weight"`

	// Normalized weighted mean of answered values on the 1-5 scale, 2 decimals
	Score float64 `json:"score"`

	RawScore         int `json:"raw_score"`
	MaxPossibleScore int `json:"max_possible_score"`

	TotalQuestions    int `json:"total_questions"`
	AnsweredQuestions int `json:"answered_questions"`

	// Percentage of questions answered in this domain
	Progress float64 `json:"progress"`

	MaturityLevel MaturityLevel `json:"maturity_level"`
	MaturityLabel string        `json:"maturity_label"`
}

// IsEvaluated reports whether the domain contributed any answered questions
func (dr *DomainResult) IsEvaluated() bool {
	return dr.TotalQuestions > 0 && dr.AnsweredQuestions > 0
}

// EvaluationResult is the full computed output for one assessment
// #INTEGRATION_POINT: JSON field names are part of the contract with report/export consumers
type EvaluationResult struct {
	EvaluationID   primitive.ObjectID `json:"evaluation_id"`
	EvaluationName string             `json:"evaluation_name"`
	CompanyName    string             `json:"company_name"`

	OverallScore         float64       `json:"overall_score"`
	OverallMaturityLevel MaturityLevel `json:"overall_maturity_level"`
	OverallMaturityLabel string        `json:"overall_maturity_label"`

	// Percentage of all questions answered, rounded to the nearest integer
	Progress float64 `json:"progress"`

	DomainResults []DomainResult `json:"domain_results"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// DomainResultByID returns the domain result for the given domain, or nil
func (er *EvaluationResult) DomainResultByID(domainID primitive.ObjectID) *DomainResult {
	for i := range er.DomainResults {
		if er.DomainResults[i].DomainID == domainID {
			return &er.DomainResults[i]
		}
	}
	return nil
}

// DomainDelta is a signed per-domain score difference between two evaluations
type DomainDelta struct {
	DomainID   primitive.ObjectID `json:"domain_id"`
	DomainName string             `json:"domain_name"`
	Delta      float64            `json:"delta"`
}

// TrendSummary compares an evaluation against the company's immediately
// preceding completed assessment. A nil TrendSummary means no prior exists.
type TrendSummary struct {
	PreviousEvaluationID primitive.ObjectID `json:"previous_evaluation_id"`
	PreviousCompletedAt  *time.Time         `json:"previous_completed_at,omitempty"`

	OverallDelta float64       `json:"overall_delta"`
	DomainDeltas []DomainDelta `json:"domain_deltas"`
}

// SectorComparison benchmarks an evaluation against peer companies sharing the
// same sector classification. Available is false when the peer set is empty;
// in that state no deltas are populated.
type SectorComparison struct {
	Available bool   `json:"available"`
	Sector    Sector `json:"sector"`
	PeerCount int    `json:"peer_count"`

	// Signed difference: current score minus peer mean
	OverallDelta float64       `json:"overall_delta,omitempty"`
	DomainDeltas []DomainDelta `json:"domain_deltas,omitempty"`
}

// ComparativeAnalytics bundles trend and sector comparison for one assessment
type ComparativeAnalytics struct {
	Trend            *TrendSummary     `json:"trend"`
	SectorComparison *SectorComparison `json:"sector_comparison"`
}
