package models

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole represents the role of a user within a company
// #IMPLEMENTATION_DECISION: Two roles only - ADMIN maintains the catalog, MEMBER answers assessments
type UserRole string

const (
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleMember UserRole = "MEMBER"
)

// MarshalJSON converts UserRole to lowercase for JSON serialization
func (ur UserRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(string(ur)))
}

// UnmarshalJSON converts lowercase JSON to UserRole
func (ur *UserRole) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*ur = UserRole(strings.ToUpper(s))
	return nil
}

// IsValid checks if the UserRole is a valid value
func (ur UserRole) IsValid() bool {
	switch ur {
	case UserRoleAdmin, UserRoleMember:
		return true
	}
	return false
}

// User represents an account belonging to a company
// #DATA_ASSUMPTION: Identity/login flows live in an external identity service; this record
// only carries what JWT claims and audit trails reference
// #CARDINALITY_ASSUMPTION: Company 1:N Users
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CompanyID primitive.ObjectID `bson:"company_id" json:"company_id"`

	Email       string   `bson:"email" json:"email"`
	DisplayName string   `bson:"display_name,omitempty" json:"display_name,omitempty"`
	Role        UserRole `bson:"role" json:"role"`
	IsActive    bool     `bson:"is_active" json:"is_active"`

	// Audit fields with soft delete support
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}

// CollectionName returns the MongoDB collection name for users
func (User) CollectionName() string {
	return "users"
}

// BeforeCreate sets default values before inserting a new user
func (u *User) BeforeCreate() {
	now := time.Now().UTC()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	u.IsActive = true

	if u.Role == "" {
		u.Role = UserRoleMember
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

// BeforeUpdate sets the UpdatedAt timestamp
func (u *User) BeforeUpdate() {
	u.UpdatedAt = time.Now().UTC()
}

// IsDeleted returns true if the user has been soft deleted
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
