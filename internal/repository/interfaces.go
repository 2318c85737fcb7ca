// Package repository defines interfaces for data access and their MongoDB implementations
// #ORM_PATTERN: Repository pattern with interfaces for testability and abstraction
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secmat-tools/secmat_backend/internal/models"
)

// PaginationOptions contains pagination parameters
type PaginationOptions struct {
	Page    int
	Limit   int
	SortBy  string
	SortDir int // 1 for ascending, -1 for descending
}

// DefaultPaginationOptions returns default pagination settings
// #DATA_ASSUMPTION: Pagination defaults to 20 items per page
func DefaultPaginationOptions() PaginationOptions {
	return PaginationOptions{
		Page:    1,
		Limit:   20,
		SortBy:  "created_at",
		SortDir: -1,
	}
}

// PaginatedResult contains paginated query results
type PaginatedResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// CompanyRepository defines operations for companies
// #QUERY_INTERFACE: Company data access patterns
type CompanyRepository interface {
	// Create creates a new company
	Create(ctx context.Context, company *models.Company) error

	// GetByID finds a company by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Company, error)

	// Update updates a company
	Update(ctx context.Context, company *models.Company) error

	// SoftDelete soft deletes a company
	SoftDelete(ctx context.Context, id primitive.ObjectID) error

	// ListBySector lists active companies in a sector, excluding one company
	// (the peer group for sector comparison)
	ListBySector(ctx context.Context, sector models.Sector, excludeID primitive.ObjectID) ([]models.Company, error)
}

// UserRepository defines operations for users
// #QUERY_INTERFACE: User data access patterns
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// GetByID finds a user by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// GetByEmail finds a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update updates a user
	Update(ctx context.Context, user *models.User) error

	// ListByCompany lists users in a company
	ListByCompany(ctx context.Context, companyID primitive.ObjectID, opts PaginationOptions) (*PaginatedResult[models.User], error)
}

// DomainRepository defines operations for assessment domains
// #QUERY_INTERFACE: Domain catalog access patterns
type DomainRepository interface {
	// Create creates a new domain
	Create(ctx context.Context, domain *models.Domain) error

	// GetByID finds a domain by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Domain, error)

	// Update updates a domain
	Update(ctx context.Context, domain *models.Domain) error

	// Deactivate marks a domain as inactive (catalog entries are never hard-deleted)
	Deactivate(ctx context.Context, id primitive.ObjectID) error

	// ListActive lists active domains sorted by order index
	ListActive(ctx context.Context) ([]models.Domain, error)

	// ListAll lists every domain including inactive ones
	ListAll(ctx context.Context) ([]models.Domain, error)
}

// QuestionRepository defines operations for catalog questions
// #QUERY_INTERFACE: Question catalog access patterns
type QuestionRepository interface {
	// Create creates a new question
	Create(ctx context.Context, question *models.Question) error

	// GetByID finds a question by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error)

	// Update updates a question
	Update(ctx context.Context, question *models.Question) error

	// Deactivate marks a question as inactive
	Deactivate(ctx context.Context, id primitive.ObjectID) error

	// ListActive lists all active questions sorted by domain and order
	ListActive(ctx context.Context) ([]models.Question, error)

	// ListActiveByDomain lists active questions for one domain
	ListActiveByDomain(ctx context.Context, domainID primitive.ObjectID) ([]models.Question, error)

	// CountActiveByDomain counts active questions for a domain
	CountActiveByDomain(ctx context.Context, domainID primitive.ObjectID) (int64, error)
}

// AssessmentRepository defines operations for assessments
// #QUERY_INTERFACE: Assessment data access patterns
type AssessmentRepository interface {
	// Create creates a new assessment
	Create(ctx context.Context, assessment *models.Assessment) error

	// GetByID finds an assessment by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Assessment, error)

	// Update updates an assessment
	Update(ctx context.Context, assessment *models.Assessment) error

	// Delete deletes an assessment (draft only; callers enforce the status rule)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// ListByCompany lists assessments for a company with optional status filter
	ListByCompany(ctx context.Context, companyID primitive.ObjectID, status *models.AssessmentStatus, opts PaginationOptions) (*PaginatedResult[models.Assessment], error)

	// ListCompletedByCompany lists completed assessments for a company,
	// newest completion first (the trend history)
	ListCompletedByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.Assessment, error)

	// GetLatestCompletedByCompany returns a company's most recently completed
	// assessment, or models.ErrAssessmentNotFound
	GetLatestCompletedByCompany(ctx context.Context, companyID primitive.ObjectID) (*models.Assessment, error)
}

// ResponseRepository defines operations for assessment responses
// #QUERY_INTERFACE: Response data access patterns
type ResponseRepository interface {
	// Save upserts a response keyed by (assessment_id, question_id); later
	// writes overwrite, never append
	Save(ctx context.Context, response *models.Response) error

	// ListByAssessment lists all responses recorded for an assessment
	ListByAssessment(ctx context.Context, assessmentID primitive.ObjectID) ([]models.Response, error)

	// CountByAssessment counts responses recorded for an assessment
	CountByAssessment(ctx context.Context, assessmentID primitive.ObjectID) (int64, error)

	// DeleteByAssessment deletes all responses for an assessment
	DeleteByAssessment(ctx context.Context, assessmentID primitive.ObjectID) (int64, error)
}
