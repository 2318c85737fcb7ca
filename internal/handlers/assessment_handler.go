package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secmat-tools/secmat_backend/internal/middleware"
	"github.com/secmat-tools/secmat_backend/internal/models"
	"github.com/secmat-tools/secmat_backend/internal/repository"
	"github.com/secmat-tools/secmat_backend/internal/services"
)

// AssessmentHandler handles assessment lifecycle endpoints
// #INTEGRATION_POINT: Company portal drives the questionnaire through these endpoints
type AssessmentHandler struct {
	assessmentService services.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentService: assessmentService,
	}
}

// SaveResponsesRequest accepts either a single response or a batch
type SaveResponsesRequest struct {
	Responses []services.SaveResponseRequest `json:"responses" binding:"required,min=1,dive"`
}

// Create handles POST /api/v1/assessments
// @Summary Create an assessment
// @Description Creates a new draft assessment for the authenticated company
// @Tags Assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CreateAssessmentRequest true "Create request"
// @Success 201 {object} models.Assessment
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /assessments [post]
func (h *AssessmentHandler) Create(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req services.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Name is required",
		})
		return
	}

	assessment, err := h.assessmentService.CreateAssessment(c.Request.Context(), companyID, userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create assessment")
		return
	}

	c.JSON(http.StatusCreated, assessment)
}

// List handles GET /api/v1/assessments
// @Summary List assessments
// @Description Lists the company's assessments, optionally filtered by status
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (draft|completed)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} repository.PaginatedResult[models.Assessment]
// @Failure 401 {object} ErrorResponse
// @Router /assessments [get]
func (h *AssessmentHandler) List(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var status *models.AssessmentStatus
	if s := c.Query("status"); s != "" {
		st := models.AssessmentStatus(strings.ToUpper(s))
		status = &st
	}

	opts := repository.DefaultPaginationOptions()
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit <= 100 {
		opts.Limit = limit
	}

	result, err := h.assessmentService.ListAssessments(c.Request.Context(), companyID, status, opts)
	if err != nil {
		respondServiceError(c, err, "Failed to list assessments")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/v1/assessments/:id
// @Summary Get an assessment
// @Description Retrieves one assessment belonging to the authenticated company
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Success 200 {object} models.Assessment
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{id} [get]
func (h *AssessmentHandler) Get(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	assessment, err := h.assessmentService.GetAssessment(c.Request.Context(), id, companyID)
	if err != nil {
		respondServiceError(c, err, "Failed to load assessment")
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// SaveResponses handles PUT /api/v1/assessments/:id/responses
// @Summary Save responses
// @Description Records or overwrites answers on a draft assessment
// @Tags Assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Param request body SaveResponsesRequest true "Responses"
// @Success 200 {array} models.Response
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /assessments/{id}/responses [put]
func (h *AssessmentHandler) SaveResponses(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req SaveResponsesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "At least one response with question_id and value is required",
		})
		return
	}

	saved, err := h.assessmentService.SaveResponses(c.Request.Context(), id, companyID, req.Responses)
	if err != nil {
		respondServiceError(c, err, "Failed to save responses")
		return
	}

	c.JSON(http.StatusOK, saved)
}

// Complete handles POST /api/v1/assessments/:id/complete
// @Summary Complete an assessment
// @Description Finalizes a draft assessment and freezes its overall score
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Success 200 {object} models.Assessment
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /assessments/{id}/complete [post]
func (h *AssessmentHandler) Complete(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	assessment, err := h.assessmentService.CompleteAssessment(c.Request.Context(), id, companyID)
	if err != nil {
		respondServiceError(c, err, "Failed to complete assessment")
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// Delete handles DELETE /api/v1/assessments/:id
// @Summary Delete a draft assessment
// @Description Deletes a draft assessment and its responses
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /assessments/{id} [delete]
func (h *AssessmentHandler) Delete(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	if err := h.assessmentService.DeleteDraft(c.Request.Context(), id, companyID); err != nil {
		respondServiceError(c, err, "Failed to delete assessment")
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers assessment routes
func (h *AssessmentHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	assessments := rg.Group("/assessments")
	assessments.Use(authMiddleware)

	assessments.POST("", h.Create)
	assessments.GET("", h.List)
	assessments.GET("/:id", h.Get)
	assessments.DELETE("/:id", h.Delete)
	assessments.PUT("/:id/responses", h.SaveResponses)
	assessments.POST("/:id/complete", h.Complete)
}

// parseIDParam parses the :id path parameter, writing a 400 response on failure
func parseIDParam(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid resource ID",
		})
		return primitive.NilObjectID, err
	}
	return id, nil
}
