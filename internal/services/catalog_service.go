package services

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secmat-tools/secmat_backend/internal/models"
	"github.com/secmat-tools/secmat_backend/internal/repository"
)

// CatalogService handles admin management of the domain and question catalog
// #INTEGRATION_POINT: Used by catalog handler; the scoring engine only ever reads
// the active subset of what this service maintains
type CatalogService interface {
	// CreateDomain adds a new domain to the catalog
	CreateDomain(ctx context.Context, req CreateDomainRequest) (*models.Domain, error)

	// UpdateDomain updates domain metadata, weight or ordering
	UpdateDomain(ctx context.Context, id primitive.ObjectID, req UpdateDomainRequest) (*models.Domain, error)

	// DeactivateDomain removes a domain from scoring without deleting history
	DeactivateDomain(ctx context.Context, id primitive.ObjectID) error

	// ListDomains lists catalog domains
	ListDomains(ctx context.Context, includeInactive bool) ([]models.Domain, error)

	// CreateQuestion adds a new question to a domain
	CreateQuestion(ctx context.Context, req CreateQuestionRequest) (*models.Question, error)

	// UpdateQuestion updates question text, weight, level or ordering
	UpdateQuestion(ctx context.Context, id primitive.ObjectID, req UpdateQuestionRequest) (*models.Question, error)

	// DeactivateQuestion removes a question from scoring without deleting history
	DeactivateQuestion(ctx context.Context, id primitive.ObjectID) error

	// ListQuestions lists active questions, optionally for one domain
	ListQuestions(ctx context.Context, domainID *primitive.ObjectID) ([]models.Question, error)
}

// CreateDomainRequest represents the request to create a domain
type CreateDomainRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order,omitempty"`
	Weight      int    `json:"weight,omitempty"`
}

// UpdateDomainRequest represents the request to update a domain
type UpdateDomainRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Order       *int    `json:"order,omitempty"`
	Weight      *int    `json:"weight,omitempty"`
}

// CreateQuestionRequest represents the request to create a question
type CreateQuestionRequest struct {
	DomainID      string               `json:"domain_id" binding:"required"`
	Text          string               `json:"text" binding:"required"`
	HelpText      string               `json:"help_text,omitempty"`
	MaturityLevel models.MaturityLevel `json:"maturity_level,omitempty"`
	Order         int                  `json:"order,omitempty"`
	Weight        int                  `json:"weight,omitempty"`
}

// UpdateQuestionRequest represents the request to update a question
type UpdateQuestionRequest struct {
	Text          *string               `json:"text,omitempty"`
	HelpText      *string               `json:"help_text,omitempty"`
	MaturityLevel *models.MaturityLevel `json:"maturity_level,omitempty"`
	Order         *int                  `json:"order,omitempty"`
	Weight        *int                  `json:"weight,omitempty"`
}

// catalogService implements CatalogService
type catalogService struct {
	domainRepo   repository.DomainRepository
	questionRepo repository.QuestionRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(domainRepo repository.DomainRepository, questionRepo repository.QuestionRepository) CatalogService {
	return &catalogService{
		domainRepo:   domainRepo,
		questionRepo: questionRepo,
	}
}

// CreateDomain adds a new domain to the catalog
func (s *catalogService) CreateDomain(ctx context.Context, req CreateDomainRequest) (*models.Domain, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.ErrInvalidInput
	}
	if req.Weight < 0 {
		return nil, models.ErrInvalidInput
	}

	domain := &models.Domain{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Order:       req.Order,
		Weight:      req.Weight,
	}

	if err := s.domainRepo.Create(ctx, domain); err != nil {
		return nil, err
	}
	return domain, nil
}

// UpdateDomain updates domain metadata, weight or ordering
func (s *catalogService) UpdateDomain(ctx context.Context, id primitive.ObjectID, req UpdateDomainRequest) (*models.Domain, error) {
	domain, err := s.domainRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, models.ErrInvalidInput
		}
		domain.Name = name
	}
	if req.Description != nil {
		domain.Description = strings.TrimSpace(*req.Description)
	}
	if req.Order != nil {
		domain.Order = *req.Order
	}
	if req.Weight != nil {
		if *req.Weight < 0 {
			return nil, models.ErrInvalidInput
		}
		domain.Weight = *req.Weight
	}

	if err := s.domainRepo.Update(ctx, domain); err != nil {
		return nil, err
	}
	return domain, nil
}

// DeactivateDomain removes a domain from scoring without deleting history
// #BUSINESS_RULE: Catalog entries are deactivated, never hard-deleted
func (s *catalogService) DeactivateDomain(ctx context.Context, id primitive.ObjectID) error {
	return s.domainRepo.Deactivate(ctx, id)
}

// ListDomains lists catalog domains
func (s *catalogService) ListDomains(ctx context.Context, includeInactive bool) ([]models.Domain, error) {
	if includeInactive {
		return s.domainRepo.ListAll(ctx)
	}
	return s.domainRepo.ListActive(ctx)
}

// CreateQuestion adds a new question to a domain
func (s *catalogService) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (*models.Question, error) {
	domainID, err := primitive.ObjectIDFromHex(req.DomainID)
	if err != nil {
		return nil, models.ErrDomainNotFound
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, models.ErrInvalidInput
	}
	if req.MaturityLevel != 0 && !req.MaturityLevel.IsValid() {
		return nil, models.ErrInvalidMaturityLevel
	}
	if req.Weight < 0 {
		return nil, models.ErrInvalidInput
	}

	// Guard against questions pointing at dead or missing domains
	domain, err := s.domainRepo.GetByID(ctx, domainID)
	if err != nil {
		return nil, err
	}
	if !domain.IsActive {
		return nil, models.ErrDomainInactive
	}

	question := &models.Question{
		DomainID:      domain.ID,
		Text:          text,
		HelpText:      strings.TrimSpace(req.HelpText),
		MaturityLevel: req.MaturityLevel,
		Order:         req.Order,
		Weight:        req.Weight,
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// UpdateQuestion updates question text, weight, level or ordering
func (s *catalogService) UpdateQuestion(ctx context.Context, id primitive.ObjectID, req UpdateQuestionRequest) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		text := strings.TrimSpace(*req.Text)
		if text == "" {
			return nil, models.ErrInvalidInput
		}
		question.Text = text
	}
	if req.HelpText != nil {
		question.HelpText = strings.TrimSpace(*req.HelpText)
	}
	if req.MaturityLevel != nil {
		if !req.MaturityLevel.IsValid() {
			return nil, models.ErrInvalidMaturityLevel
		}
		question.MaturityLevel = *req.MaturityLevel
	}
	if req.Order != nil {
		question.Order = *req.Order
	}
	if req.Weight != nil {
		if *req.Weight < 0 {
			return nil, models.ErrInvalidInput
		}
		question.Weight = *req.Weight
	}

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeactivateQuestion removes a question from scoring without deleting history
func (s *catalogService) DeactivateQuestion(ctx context.Context, id primitive.ObjectID) error {
	return s.questionRepo.Deactivate(ctx, id)
}

// ListQuestions lists active questions, optionally for one domain
func (s *catalogService) ListQuestions(ctx context.Context, domainID *primitive.ObjectID) ([]models.Question, error) {
	if domainID != nil {
		return s.questionRepo.ListActiveByDomain(ctx, *domainID)
	}
	return s.questionRepo.ListActive(ctx)
}

// Ensure catalogService implements CatalogService
var _ CatalogService = (*catalogService)(nil)
