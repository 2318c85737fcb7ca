package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secmat-tools/secmat_backend/internal/middleware"
	"github.com/secmat-tools/secmat_backend/internal/services"
)

// CatalogHandler handles admin catalog management endpoints
// #SECURITY_ASSUMPTION: All routes behind RequireAdmin - role enforcement
// happens in middleware, not here
type CatalogHandler struct {
	catalogService services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ListDomains handles GET /api/v1/domains
// @Summary List domains
// @Description Lists catalog domains, active only unless include_inactive=true
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param include_inactive query bool false "Include deactivated domains"
// @Success 200 {array} models.Domain
// @Failure 401 {object} ErrorResponse
// @Router /domains [get]
func (h *CatalogHandler) ListDomains(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	domains, err := h.catalogService.ListDomains(c.Request.Context(), includeInactive)
	if err != nil {
		respondServiceError(c, err, "Failed to list domains")
		return
	}

	c.JSON(http.StatusOK, domains)
}

// CreateDomain handles POST /api/v1/domains
// @Summary Create a domain
// @Description Adds a new domain to the assessment catalog
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CreateDomainRequest true "Domain"
// @Success 201 {object} models.Domain
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /domains [post]
func (h *CatalogHandler) CreateDomain(c *gin.Context) {
	var req services.CreateDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Name is required",
		})
		return
	}

	domain, err := h.catalogService.CreateDomain(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create domain")
		return
	}

	c.JSON(http.StatusCreated, domain)
}

// UpdateDomain handles PUT /api/v1/domains/:id
// @Summary Update a domain
// @Description Updates domain metadata, weight or ordering
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Domain ID"
// @Param request body services.UpdateDomainRequest true "Changes"
// @Success 200 {object} models.Domain
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /domains/{id} [put]
func (h *CatalogHandler) UpdateDomain(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req services.UpdateDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return
	}

	domain, err := h.catalogService.UpdateDomain(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update domain")
		return
	}

	c.JSON(http.StatusOK, domain)
}

// DeactivateDomain handles DELETE /api/v1/domains/:id
// @Summary Deactivate a domain
// @Description Removes a domain from scoring without deleting historical data
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Domain ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /domains/{id} [delete]
func (h *CatalogHandler) DeactivateDomain(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	if err := h.catalogService.DeactivateDomain(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to deactivate domain")
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers catalog routes
// #BUSINESS_RULE: Reading the catalog is open to any authenticated user;
// changing it is admin-only
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	domains := rg.Group("/domains")
	domains.Use(authMiddleware)
	domains.GET("", h.ListDomains)
	domains.POST("", middleware.RequireAdmin(), h.CreateDomain)
	domains.PUT("/:id", middleware.RequireAdmin(), h.UpdateDomain)
	domains.DELETE("/:id", middleware.RequireAdmin(), h.DeactivateDomain)

	questions := rg.Group("/questions")
	questions.Use(authMiddleware)
	questions.GET("", h.ListQuestions)
	questions.POST("", middleware.RequireAdmin(), h.CreateQuestion)
	questions.PUT("/:id", middleware.RequireAdmin(), h.UpdateQuestion)
	questions.DELETE("/:id", middleware.RequireAdmin(), h.DeactivateQuestion)
}

// ListQuestions handles GET /api/v1/questions
// @Summary List questions
// @Description Lists active questions, optionally scoped to one domain
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param domain_id query string false "Filter by domain"
// @Success 200 {array} models.Question
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /questions [get]
func (h *CatalogHandler) ListQuestions(c *gin.Context) {
	var domainID *primitive.ObjectID
	if raw := c.Query("domain_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_id",
				Message: "Invalid domain ID",
			})
			return
		}
		domainID = &id
	}

	questions, err := h.catalogService.ListQuestions(c.Request.Context(), domainID)
	if err != nil {
		respondServiceError(c, err, "Failed to list questions")
		return
	}

	c.JSON(http.StatusOK, questions)
}

// CreateQuestion handles POST /api/v1/questions
// @Summary Create a question
// @Description Adds a new question to an active domain
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CreateQuestionRequest true "Question"
// @Success 201 {object} models.Question
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /questions [post]
func (h *CatalogHandler) CreateQuestion(c *gin.Context) {
	var req services.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "domain_id and text are required",
		})
		return
	}

	question, err := h.catalogService.CreateQuestion(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create question")
		return
	}

	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion handles PUT /api/v1/questions/:id
// @Summary Update a question
// @Description Updates question text, weight, level or ordering
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Param request body services.UpdateQuestionRequest true "Changes"
// @Success 200 {object} models.Question
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /questions/{id} [put]
func (h *CatalogHandler) UpdateQuestion(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req services.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return
	}

	question, err := h.catalogService.UpdateQuestion(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update question")
		return
	}

	c.JSON(http.StatusOK, question)
}

// DeactivateQuestion handles DELETE /api/v1/questions/:id
// @Summary Deactivate a question
// @Description Removes a question from scoring without deleting historical answers
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /questions/{id} [delete]
func (h *CatalogHandler) DeactivateQuestion(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	if err := h.catalogService.DeactivateQuestion(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to deactivate question")
		return
	}

	c.Status(http.StatusNoContent)
}
