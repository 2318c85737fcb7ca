package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Domain represents a thematic grouping of assessment questions (e.g. "Incident Response")
// #DATA_ASSUMPTION: Weight defaults to 1, allows emphasizing critical domains in the overall score
// #CARDINALITY_ASSUMPTION: Domain 1:N Questions
type Domain struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	Order    int  `bson:"order" json:"order"`
	Weight   int  `bson:"weight" json:"weight"`
	IsActive bool `bson:"is_active" json:"is_active"`

	// Audit fields
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CollectionName returns the MongoDB collection name for domains
func (Domain) CollectionName() string {
	return "domains"
}

// BeforeCreate sets default values before inserting a new domain
func (d *Domain) BeforeCreate() {
	now := time.Now().UTC()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	d.CreatedAt = now
	d.UpdatedAt = now
	d.IsActive = true

	if d.Weight == 0 {
		d.Weight = 1
	}
}

// BeforeUpdate sets the UpdatedAt timestamp
func (d *Domain) BeforeUpdate() {
	d.UpdatedAt = time.Now().UTC()
}

// EffectiveWeight returns the domain weight, treating unset as 1
func (d *Domain) EffectiveWeight() int {
	if d.Weight <= 0 {
		return 1
	}
	return d.Weight
}
