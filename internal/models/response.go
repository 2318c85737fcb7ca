package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Response represents a single answer to one question within one assessment
// #DATA_ASSUMPTION: At most one response per (assessment, question) - writes upsert,
// never append; enforced by a unique compound index
type Response struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssessmentID primitive.ObjectID `bson:"assessment_id" json:"assessment_id"`
	QuestionID   primitive.ObjectID `bson:"question_id" json:"question_id"`

	// Self-assessed maturity for the statement, on the 1-5 scale
	Value   int    `bson:"value" json:"value"`
	Comment string `bson:"comment,omitempty" json:"comment,omitempty"`

	SavedAt time.Time `bson:"saved_at" json:"saved_at"`
}

// CollectionName returns the MongoDB collection name for responses
func (Response) CollectionName() string {
	return "responses"
}

// BeforeSave stamps the response prior to an upsert
func (r *Response) BeforeSave() {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	r.SavedAt = time.Now().UTC()
}

// Validate checks the response value against the answer scale
func (r *Response) Validate() error {
	if !IsValidValue(r.Value) {
		return ErrInvalidResponseValue
	}
	return nil
}
