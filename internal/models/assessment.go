package models

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssessmentStatus represents the lifecycle state of an assessment
// #IMPLEMENTATION_DECISION: DRAFT -> COMPLETED lifecycle, no intermediate states
type AssessmentStatus string

const (
	AssessmentStatusDraft     AssessmentStatus = "DRAFT"
	AssessmentStatusCompleted AssessmentStatus = "COMPLETED"
)

// MarshalJSON converts AssessmentStatus to lowercase for JSON serialization
func (as AssessmentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(string(as)))
}

// UnmarshalJSON converts lowercase JSON to AssessmentStatus
func (as *AssessmentStatus) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*as = AssessmentStatus(strings.ToUpper(s))
	return nil
}

// IsValid checks if the AssessmentStatus is a valid value
func (as AssessmentStatus) IsValid() bool {
	switch as {
	case AssessmentStatusDraft, AssessmentStatusCompleted:
		return true
	}
	return false
}

// Assessment represents one instance of a company working through the questionnaire
// #DATA_ASSUMPTION: PlanLevel bounds which question maturity levels are included (1-5)
// #NORMALIZATION_DECISION: OverallScore denormalized for listing views only; results are
// always recomputed from responses, never read back from this cache
type Assessment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CompanyID primitive.ObjectID `bson:"company_id" json:"company_id"`
	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`

	Name      string           `bson:"name" json:"name"`
	PlanLevel MaturityLevel    `bson:"plan_level" json:"plan_level"`
	Status    AssessmentStatus `bson:"status" json:"status"`

	// Frozen at completion time
	OverallScore *float64 `bson:"overall_score,omitempty" json:"overall_score,omitempty"`

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// CollectionName returns the MongoDB collection name for assessments
func (Assessment) CollectionName() string {
	return "assessments"
}

// BeforeCreate sets default values before inserting a new assessment
func (a *Assessment) BeforeCreate() {
	now := time.Now().UTC()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	a.Status = AssessmentStatusDraft

	if a.PlanLevel == 0 {
		a.PlanLevel = MaturityOptimized
	}
}

// BeforeUpdate sets the UpdatedAt timestamp
func (a *Assessment) BeforeUpdate() {
	a.UpdatedAt = time.Now().UTC()
}

// Complete marks the assessment as completed and freezes the cached overall score
func (a *Assessment) Complete(overallScore float64) error {
	if a.Status != AssessmentStatusDraft {
		return ErrAssessmentAlreadyCompleted
	}
	now := time.Now().UTC()
	a.Status = AssessmentStatusCompleted
	a.OverallScore = &overallScore
	a.CompletedAt = &now
	a.UpdatedAt = now
	return nil
}

// IsCompleted returns true if the assessment has been completed
func (a *Assessment) IsCompleted() bool {
	return a.Status == AssessmentStatusCompleted
}

// CanBeEdited returns true if responses may still be written
func (a *Assessment) CanBeEdited() bool {
	return a.Status == AssessmentStatusDraft
}

// ReferenceTime returns the timestamp used for chronological ordering in trend
// analysis: the completion time when present, the creation time otherwise.
func (a *Assessment) ReferenceTime() time.Time {
	if a.CompletedAt != nil {
		return *a.CompletedAt
	}
	return a.CreatedAt
}

// IncludesLevel reports whether a question of the given maturity level is part
// of this assessment's plan
func (a *Assessment) IncludesLevel(level MaturityLevel) bool {
	return level <= a.PlanLevel
}
