package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Answer scale bounds for self-assessed maturity values
const (
	ScaleMin = 1
	ScaleMax = 5
)

// Question represents an assessable maturity statement belonging to exactly one domain
// and one maturity level
// #DATA_ASSUMPTION: Weight defaults to 1, allows emphasizing critical statements
// #DATA_ASSUMPTION: MaturityLevel bounds inclusion per assessment plan level
// #CARDINALITY_ASSUMPTION: Domain 1:N Questions - question belongs to exactly one domain
type Question struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID primitive.ObjectID `bson:"domain_id" json:"domain_id"`

	Text     string `bson:"text" json:"text"`
	HelpText string `bson:"help_text,omitempty" json:"help_text,omitempty"`

	MaturityLevel MaturityLevel `bson:"maturity_level" json:"maturity_level"`
	Order         int           `bson:"order" json:"order"`
	Weight        int           `bson:"weight" json:"weight"`
	IsActive      bool          `bson:"is_active" json:"is_active"`

	// Audit fields
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CollectionName returns the MongoDB collection name for questions
func (Question) CollectionName() string {
	return "questions"
}

// BeforeCreate sets default values before inserting a new question
func (q *Question) BeforeCreate() {
	now := time.Now().UTC()
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	q.CreatedAt = now
	q.UpdatedAt = now
	q.IsActive = true

	if q.Weight == 0 {
		q.Weight = 1
	}
	if q.MaturityLevel == 0 {
		q.MaturityLevel = MaturityLevel(ScaleMin)
	}
}

// BeforeUpdate sets the UpdatedAt timestamp
func (q *Question) BeforeUpdate() {
	q.UpdatedAt = time.Now().UTC()
}

// EffectiveWeight returns the question weight, treating unset as 1
func (q *Question) EffectiveWeight() int {
	if q.Weight <= 0 {
		return 1
	}
	return q.Weight
}

// MaxPossiblePoints returns the weighted maximum contribution of this question
func (q *Question) MaxPossiblePoints() int {
	return q.EffectiveWeight() * ScaleMax
}

// IsValidValue reports whether v is a legal answer value for the 1-5 scale
func IsValidValue(v int) bool {
	return v >= ScaleMin && v <= ScaleMax
}
