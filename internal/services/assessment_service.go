package services

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secmat-tools/secmat_backend/internal/models"
	"github.com/secmat-tools/secmat_backend/internal/repository"
)

// AssessmentService handles the assessment lifecycle and response capture
// #INTEGRATION_POINT: Used by assessment handler for CRUD and completion
type AssessmentService interface {
	// CreateAssessment creates a new draft assessment for a company
	CreateAssessment(ctx context.Context, companyID, userID primitive.ObjectID, req CreateAssessmentRequest) (*models.Assessment, error)

	// GetAssessment retrieves an assessment scoped to a company
	GetAssessment(ctx context.Context, id, companyID primitive.ObjectID) (*models.Assessment, error)

	// ListAssessments lists a company's assessments with optional status filter
	ListAssessments(ctx context.Context, companyID primitive.ObjectID, status *models.AssessmentStatus, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Assessment], error)

	// SaveResponse records or overwrites one answer on a draft assessment
	SaveResponse(ctx context.Context, assessmentID, companyID primitive.ObjectID, req SaveResponseRequest) (*models.Response, error)

	// SaveResponses records a batch of answers on a draft assessment
	SaveResponses(ctx context.Context, assessmentID, companyID primitive.ObjectID, reqs []SaveResponseRequest) ([]models.Response, error)

	// CompleteAssessment finalizes a draft, freezing its cached overall score
	CompleteAssessment(ctx context.Context, id, companyID primitive.ObjectID) (*models.Assessment, error)

	// DeleteDraft deletes a draft assessment and its responses
	DeleteDraft(ctx context.Context, id, companyID primitive.ObjectID) error
}

// CreateAssessmentRequest represents the request to create an assessment
type CreateAssessmentRequest struct {
	Name      string               `json:"name" binding:"required"`
	PlanLevel models.MaturityLevel `json:"plan_level,omitempty"`
}

// SaveResponseRequest represents one answer to a catalog question
type SaveResponseRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	Value      int    `json:"value" binding:"required"`
	Comment    string `json:"comment,omitempty"`
}

// assessmentService implements AssessmentService
type assessmentService struct {
	assessmentRepo repository.AssessmentRepository
	questionRepo   repository.QuestionRepository
	responseRepo   repository.ResponseRepository
	evaluationSvc  EvaluationService
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	assessmentRepo repository.AssessmentRepository,
	questionRepo repository.QuestionRepository,
	responseRepo repository.ResponseRepository,
	evaluationSvc EvaluationService,
) AssessmentService {
	return &assessmentService{
		assessmentRepo: assessmentRepo,
		questionRepo:   questionRepo,
		responseRepo:   responseRepo,
		evaluationSvc:  evaluationSvc,
	}
}

// CreateAssessment creates a new draft assessment for a company
func (s *assessmentService) CreateAssessment(ctx context.Context, companyID, userID primitive.ObjectID, req CreateAssessmentRequest) (*models.Assessment, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.ErrInvalidInput
	}
	if req.PlanLevel != 0 && !req.PlanLevel.IsValid() {
		return nil, models.ErrInvalidMaturityLevel
	}

	assessment := &models.Assessment{
		CompanyID: companyID,
		CreatedBy: userID,
		Name:      name,
		PlanLevel: req.PlanLevel,
	}

	if err := s.assessmentRepo.Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}
	return assessment, nil
}

// GetAssessment retrieves an assessment scoped to a company
// #SECURITY_ASSUMPTION: Cross-company access is reported as not-found, never as forbidden
func (s *assessmentService) GetAssessment(ctx context.Context, id, companyID primitive.ObjectID) (*models.Assessment, error) {
	assessment, err := s.assessmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assessment.CompanyID != companyID {
		return nil, models.ErrAssessmentNotFound
	}
	return assessment, nil
}

// ListAssessments lists a company's assessments with optional status filter
func (s *assessmentService) ListAssessments(ctx context.Context, companyID primitive.ObjectID, status *models.AssessmentStatus, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Assessment], error) {
	if status != nil && !status.IsValid() {
		return nil, models.ErrInvalidInput
	}
	return s.assessmentRepo.ListByCompany(ctx, companyID, status, opts)
}

// SaveResponse records or overwrites one answer on a draft assessment
func (s *assessmentService) SaveResponse(ctx context.Context, assessmentID, companyID primitive.ObjectID, req SaveResponseRequest) (*models.Response, error) {
	assessment, err := s.GetAssessment(ctx, assessmentID, companyID)
	if err != nil {
		return nil, err
	}

	return s.saveOne(ctx, assessment, req)
}

// SaveResponses records a batch of answers on a draft assessment
// #BUSINESS_RULE: Validation is all-or-nothing per batch - the first invalid entry
// aborts before any write
func (s *assessmentService) SaveResponses(ctx context.Context, assessmentID, companyID primitive.ObjectID, reqs []SaveResponseRequest) ([]models.Response, error) {
	assessment, err := s.GetAssessment(ctx, assessmentID, companyID)
	if err != nil {
		return nil, err
	}
	if !assessment.CanBeEdited() {
		return nil, models.ErrAssessmentNotDraft
	}

	validated := make([]*models.Response, 0, len(reqs))
	for _, req := range reqs {
		response, _, err := s.validate(ctx, assessment, req)
		if err != nil {
			return nil, err
		}
		validated = append(validated, response)
	}

	saved := make([]models.Response, 0, len(validated))
	for _, response := range validated {
		if err := s.responseRepo.Save(ctx, response); err != nil {
			return nil, fmt.Errorf("failed to save response: %w", err)
		}
		saved = append(saved, *response)
	}
	return saved, nil
}

// saveOne validates and upserts a single response
func (s *assessmentService) saveOne(ctx context.Context, assessment *models.Assessment, req SaveResponseRequest) (*models.Response, error) {
	if !assessment.CanBeEdited() {
		return nil, models.ErrAssessmentNotDraft
	}

	response, _, err := s.validate(ctx, assessment, req)
	if err != nil {
		return nil, err
	}

	if err := s.responseRepo.Save(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to save response: %w", err)
	}
	return response, nil
}

// validate checks a response request against the catalog and the assessment plan
func (s *assessmentService) validate(ctx context.Context, assessment *models.Assessment, req SaveResponseRequest) (*models.Response, *models.Question, error) {
	questionID, err := primitive.ObjectIDFromHex(req.QuestionID)
	if err != nil {
		return nil, nil, models.ErrQuestionNotFound
	}

	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, nil, err
	}
	if !question.IsActive {
		return nil, nil, models.ErrQuestionInactive
	}
	if !assessment.IncludesLevel(question.MaturityLevel) {
		return nil, nil, models.ErrQuestionOutsidePlan
	}

	response := &models.Response{
		AssessmentID: assessment.ID,
		QuestionID:   question.ID,
		Value:        req.Value,
		Comment:      strings.TrimSpace(req.Comment),
	}
	if err := response.Validate(); err != nil {
		return nil, nil, err
	}
	return response, question, nil
}

// CompleteAssessment finalizes a draft, freezing its cached overall score
// #NORMALIZATION_DECISION: The frozen score is a listing convenience; result reads
// always recompute from responses
func (s *assessmentService) CompleteAssessment(ctx context.Context, id, companyID primitive.ObjectID) (*models.Assessment, error) {
	assessment, err := s.GetAssessment(ctx, id, companyID)
	if err != nil {
		return nil, err
	}

	result, err := s.evaluationSvc.ComputeEvaluationResult(ctx, assessment.ID)
	if err != nil {
		return nil, err
	}

	if err := assessment.Complete(result.OverallScore); err != nil {
		return nil, err
	}

	if err := s.assessmentRepo.Update(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to persist completion: %w", err)
	}
	return assessment, nil
}

// DeleteDraft deletes a draft assessment and its responses
// #CASCADE_STRATEGY: CASCADE DELETE - responses go with their assessment
func (s *assessmentService) DeleteDraft(ctx context.Context, id, companyID primitive.ObjectID) error {
	assessment, err := s.GetAssessment(ctx, id, companyID)
	if err != nil {
		return err
	}
	if assessment.IsCompleted() {
		return models.ErrAssessmentNotDraft
	}

	if _, err := s.responseRepo.DeleteByAssessment(ctx, id); err != nil {
		return fmt.Errorf("failed to delete responses: %w", err)
	}
	return s.assessmentRepo.Delete(ctx, id)
}

// Ensure assessmentService implements AssessmentService
var _ AssessmentService = (*assessmentService)(nil)
