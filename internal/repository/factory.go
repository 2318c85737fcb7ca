// Package repository provides data access layer factories
// #IMPLEMENTATION_DECISION: Factory functions wrap raw MongoDB constructors for our database.Client
package repository

import (
	"github.com/secmat-tools/secmat_backend/internal/database"
)

// NewCompanyRepository creates a new company repository using our database client
func NewCompanyRepository(client *database.Client) CompanyRepository {
	return NewMongoCompanyRepository(client.Database())
}

// NewUserRepository creates a new user repository using our database client
func NewUserRepository(client *database.Client) UserRepository {
	return NewMongoUserRepository(client.Database())
}

// NewDomainRepository creates a new domain repository using our database client
func NewDomainRepository(client *database.Client) DomainRepository {
	return NewMongoDomainRepository(client.Database())
}

// NewQuestionRepository creates a new question repository using our database client
func NewQuestionRepository(client *database.Client) QuestionRepository {
	return NewMongoQuestionRepository(client.Database())
}

// NewAssessmentRepository creates a new assessment repository using our database client
func NewAssessmentRepository(client *database.Client) AssessmentRepository {
	return NewMongoAssessmentRepository(client.Database())
}

// NewResponseRepository creates a new response repository using our database client
func NewResponseRepository(client *database.Client) ResponseRepository {
	return NewMongoResponseRepository(client.Database())
}
