package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/secmat-tools/secmat_backend/internal/middleware"
	"github.com/secmat-tools/secmat_backend/internal/services"
)

// EvaluationHandler serves computed results and comparative analytics
// #BUSINESS_RULE: Results are computed on demand from stored responses; only the
// frozen overall score on completed assessments is persisted
type EvaluationHandler struct {
	assessmentService services.AssessmentService
	evaluationService services.EvaluationService
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(assessmentService services.AssessmentService, evaluationService services.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{
		assessmentService: assessmentService,
		evaluationService: evaluationService,
	}
}

// Result handles GET /api/v1/assessments/:id/result
// @Summary Get evaluation result
// @Description Computes per-domain and overall maturity scores for an assessment
// @Tags Evaluation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Success 200 {object} models.EvaluationResult
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{id}/result [get]
func (h *EvaluationHandler) Result(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	// Ownership check first so foreign assessments read as not found
	if _, err := h.assessmentService.GetAssessment(c.Request.Context(), id, companyID); err != nil {
		respondServiceError(c, err, "Failed to load assessment")
		return
	}

	result, err := h.evaluationService.ComputeEvaluationResult(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to compute evaluation result")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Analytics handles GET /api/v1/assessments/:id/analytics
// @Summary Get comparative analytics
// @Description Computes the historical trend and sector peer comparison for an assessment
// @Tags Evaluation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Success 200 {object} models.ComparativeAnalytics
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{id}/analytics [get]
func (h *EvaluationHandler) Analytics(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	if _, err := h.assessmentService.GetAssessment(c.Request.Context(), id, companyID); err != nil {
		respondServiceError(c, err, "Failed to load assessment")
		return
	}

	analytics, err := h.evaluationService.ComputeComparativeAnalytics(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to compute analytics")
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// RegisterRoutes registers evaluation routes alongside the assessment routes
func (h *EvaluationHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	assessments := rg.Group("/assessments")
	assessments.Use(authMiddleware)

	assessments.GET("/:id/result", h.Result)
	assessments.GET("/:id/analytics", h.Analytics)
}
