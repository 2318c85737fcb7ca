// Package models defines all MongoDB document models for the SecMat maturity assessment backend
// #SCHEMA_IMPLEMENTATION: Using MongoDB with BSON ObjectID primary keys
package models

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sector classifies a company's industry for peer benchmarking
// #IMPLEMENTATION_DECISION: UPPERCASE in Go code, lowercase in JSON serialization
type Sector string

const (
	SectorFinance       Sector = "FINANCE"
	SectorHealthcare    Sector = "HEALTHCARE"
	SectorManufacturing Sector = "MANUFACTURING"
	SectorRetail        Sector = "RETAIL"
	SectorTechnology    Sector = "TECHNOLOGY"
	SectorEnergy        Sector = "ENERGY"
	SectorPublic        Sector = "PUBLIC"
	SectorOther         Sector = "OTHER"
)

// MarshalJSON converts Sector to lowercase for JSON serialization
func (s Sector) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(string(s)))
}

// UnmarshalJSON converts lowercase JSON to Sector
func (s *Sector) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = Sector(strings.ToUpper(str))
	return nil
}

// IsValid checks if the Sector is a valid value
func (s Sector) IsValid() bool {
	switch s {
	case SectorFinance, SectorHealthcare, SectorManufacturing, SectorRetail,
		SectorTechnology, SectorEnergy, SectorPublic, SectorOther:
		return true
	}
	return false
}

// Company represents an organization running maturity self-assessments
// #DATA_ASSUMPTION: Sector drives peer-group comparison; companies without a sector fall into OTHER
// #CARDINALITY_ASSUMPTION: Company 1:N Assessments
type Company struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Sector Sector             `bson:"sector" json:"sector"`

	ContactEmail string `bson:"contact_email" json:"contact_email"`

	// Audit fields with soft delete support
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}

// CollectionName returns the MongoDB collection name for companies
func (Company) CollectionName() string {
	return "companies"
}

// BeforeCreate sets default values before inserting a new company
func (c *Company) BeforeCreate() {
	now := time.Now().UTC()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	if c.Sector == "" {
		c.Sector = SectorOther
	}
}

// BeforeUpdate sets the UpdatedAt timestamp
func (c *Company) BeforeUpdate() {
	c.UpdatedAt = time.Now().UTC()
}

// IsDeleted returns true if the company has been soft deleted
func (c *Company) IsDeleted() bool {
	return c.DeletedAt != nil
}
