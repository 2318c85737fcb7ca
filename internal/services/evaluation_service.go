// Package services provides business logic implementations.
package services

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secmat-tools/secmat_backend/internal/models"
	"github.com/secmat-tools/secmat_backend/internal/repository"
	"github.com/secmat-tools/secmat_backend/internal/scoring"
)

// EvaluationService computes assessment results and comparative analytics
// #INTEGRATION_POINT: Used by evaluation handler and by assessment completion
// #BUSINESS_RULE: Results are recomputed from responses on every call; the cached
// Assessment.OverallScore is never read back as a source of truth
type EvaluationService interface {
	// ComputeEvaluationResult recomputes the full result for one assessment
	ComputeEvaluationResult(ctx context.Context, assessmentID primitive.ObjectID) (*models.EvaluationResult, error)

	// ComputeComparativeAnalytics computes trend and sector comparison for one assessment
	ComputeComparativeAnalytics(ctx context.Context, assessmentID primitive.ObjectID) (*models.ComparativeAnalytics, error)
}

// evaluationService implements EvaluationService
type evaluationService struct {
	assessmentRepo repository.AssessmentRepository
	companyRepo    repository.CompanyRepository
	domainRepo     repository.DomainRepository
	questionRepo   repository.QuestionRepository
	responseRepo   repository.ResponseRepository
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(
	assessmentRepo repository.AssessmentRepository,
	companyRepo repository.CompanyRepository,
	domainRepo repository.DomainRepository,
	questionRepo repository.QuestionRepository,
	responseRepo repository.ResponseRepository,
) EvaluationService {
	return &evaluationService{
		assessmentRepo: assessmentRepo,
		companyRepo:    companyRepo,
		domainRepo:     domainRepo,
		questionRepo:   questionRepo,
		responseRepo:   responseRepo,
	}
}

// ComputeEvaluationResult recomputes the full result for one assessment
func (s *evaluationService) ComputeEvaluationResult(ctx context.Context, assessmentID primitive.ObjectID) (*models.EvaluationResult, error) {
	assessment, err := s.assessmentRepo.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	return s.computeForAssessment(ctx, assessment)
}

// computeForAssessment runs the scoring pipeline for an already-loaded assessment
func (s *evaluationService) computeForAssessment(ctx context.Context, assessment *models.Assessment) (*models.EvaluationResult, error) {
	company, err := s.companyRepo.GetByID(ctx, assessment.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company for assessment %s: %w", assessment.ID.Hex(), err)
	}

	domains, err := s.domainRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load domain catalog: %w", err)
	}

	questions, err := s.questionRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load question catalog: %w", err)
	}
	questions = filterByPlanLevel(questions, assessment)

	responses, err := s.responseRepo.ListByAssessment(ctx, assessment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	domainResults, warnings := scoring.ComputeDomainResults(domains, questions, responses)
	for _, w := range warnings {
		log.Printf("evaluation %s: integrity warning [%s]: %s", assessment.ID.Hex(), w.Code, w.Message)
	}

	overall := scoring.ComposeOverall(domainResults)
	result := scoring.Assemble(assessment, company, domainResults, overall)
	return &result, nil
}

// filterByPlanLevel drops questions above the assessment's plan level
// #BUSINESS_RULE: An assessment only sees questions whose maturity level its plan includes
func filterByPlanLevel(questions []models.Question, assessment *models.Assessment) []models.Question {
	filtered := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if assessment.IncludesLevel(q.MaturityLevel) {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// ComputeComparativeAnalytics computes trend and sector comparison for one assessment
// #QUERY_PATTERN: Prior and peer results are recomputed through the same pipeline,
// keeping historical comparisons consistent with catalog corrections
func (s *evaluationService) ComputeComparativeAnalytics(ctx context.Context, assessmentID primitive.ObjectID) (*models.ComparativeAnalytics, error) {
	assessment, err := s.assessmentRepo.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	current, err := s.computeForAssessment(ctx, assessment)
	if err != nil {
		return nil, err
	}

	company, err := s.companyRepo.GetByID(ctx, assessment.CompanyID)
	if err != nil {
		return nil, err
	}

	history, err := s.computeHistory(ctx, assessment)
	if err != nil {
		return nil, err
	}

	peers, err := s.computePeerResults(ctx, company)
	if err != nil {
		return nil, err
	}

	return &models.ComparativeAnalytics{
		Trend:            scoring.ComputeTrend(current, history),
		SectorComparison: scoring.CompareSector(current, company.Sector, peers),
	}, nil
}

// computeHistory recomputes results for the company's other completed assessments
func (s *evaluationService) computeHistory(ctx context.Context, assessment *models.Assessment) ([]models.EvaluationResult, error) {
	completed, err := s.assessmentRepo.ListCompletedByCompany(ctx, assessment.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment history: %w", err)
	}

	history := make([]models.EvaluationResult, 0, len(completed))
	for i := range completed {
		if completed[i].ID == assessment.ID {
			continue
		}
		result, err := s.computeForAssessment(ctx, &completed[i])
		if err != nil {
			return nil, err
		}
		history = append(history, *result)
	}
	return history, nil
}

// computePeerResults computes the latest completed result for each sector peer
// #DATA_ASSUMPTION: One result per peer company - its most recent completed assessment
func (s *evaluationService) computePeerResults(ctx context.Context, company *models.Company) ([]models.EvaluationResult, error) {
	peerCompanies, err := s.companyRepo.ListBySector(ctx, company.Sector, company.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sector peers: %w", err)
	}

	peers := make([]models.EvaluationResult, 0, len(peerCompanies))
	for i := range peerCompanies {
		latest, err := s.assessmentRepo.GetLatestCompletedByCompany(ctx, peerCompanies[i].ID)
		if err != nil {
			// Peers without a completed assessment simply don't contribute
			if models.IsNotFoundError(err) {
				continue
			}
			return nil, err
		}

		result, err := s.computeForAssessment(ctx, latest)
		if err != nil {
			return nil, err
		}
		peers = append(peers, *result)
	}
	return peers, nil
}

// Ensure evaluationService implements EvaluationService
var _ EvaluationService = (*evaluationService)(nil)
