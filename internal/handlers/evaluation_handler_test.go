package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secmat-tools/secmat_backend/internal/middleware"
	"github.com/secmat-tools/secmat_backend/internal/models"
	"github.com/secmat-tools/secmat_backend/internal/repository"
	"github.com/secmat-tools/secmat_backend/internal/services"
)

// stubAssessmentService implements services.AssessmentService with function fields
type stubAssessmentService struct {
	createFn    func(ctx context.Context, companyID, userID primitive.ObjectID, req services.CreateAssessmentRequest) (*models.Assessment, error)
	getFn       func(ctx context.Context, id, companyID primitive.ObjectID) (*models.Assessment, error)
	listFn      func(ctx context.Context, companyID primitive.ObjectID, status *models.AssessmentStatus, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Assessment], error)
	saveOneFn   func(ctx context.Context, assessmentID, companyID primitive.ObjectID, req services.SaveResponseRequest) (*models.Response, error)
	saveManyFn  func(ctx context.Context, assessmentID, companyID primitive.ObjectID, reqs []services.SaveResponseRequest) ([]models.Response, error)
	completeFn  func(ctx context.Context, id, companyID primitive.ObjectID) (*models.Assessment, error)
	deleteDraft func(ctx context.Context, id, companyID primitive.ObjectID) error
}

func (s *stubAssessmentService) CreateAssessment(ctx context.Context, companyID, userID primitive.ObjectID, req services.CreateAssessmentRequest) (*models.Assessment, error) {
	return s.createFn(ctx, companyID, userID, req)
}

func (s *stubAssessmentService) GetAssessment(ctx context.Context, id, companyID primitive.ObjectID) (*models.Assessment, error) {
	return s.getFn(ctx, id, companyID)
}

func (s *stubAssessmentService) ListAssessments(ctx context.Context, companyID primitive.ObjectID, status *models.AssessmentStatus, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Assessment], error) {
	return s.listFn(ctx, companyID, status, opts)
}

func (s *stubAssessmentService) SaveResponse(ctx context.Context, assessmentID, companyID primitive.ObjectID, req services.SaveResponseRequest) (*models.Response, error) {
	return s.saveOneFn(ctx, assessmentID, companyID, req)
}

func (s *stubAssessmentService) SaveResponses(ctx context.Context, assessmentID, companyID primitive.ObjectID, reqs []services.SaveResponseRequest) ([]models.Response, error) {
	return s.saveManyFn(ctx, assessmentID, companyID, reqs)
}

func (s *stubAssessmentService) CompleteAssessment(ctx context.Context, id, companyID primitive.ObjectID) (*models.Assessment, error) {
	return s.completeFn(ctx, id, companyID)
}

func (s *stubAssessmentService) DeleteDraft(ctx context.Context, id, companyID primitive.ObjectID) error {
	return s.deleteDraft(ctx, id, companyID)
}

// stubEvaluationService implements services.EvaluationService with function fields
type stubEvaluationService struct {
	resultFn    func(ctx context.Context, assessmentID primitive.ObjectID) (*models.EvaluationResult, error)
	analyticsFn func(ctx context.Context, assessmentID primitive.ObjectID) (*models.ComparativeAnalytics, error)
}

func (s *stubEvaluationService) ComputeEvaluationResult(ctx context.Context, assessmentID primitive.ObjectID) (*models.EvaluationResult, error) {
	return s.resultFn(ctx, assessmentID)
}

func (s *stubEvaluationService) ComputeComparativeAnalytics(ctx context.Context, assessmentID primitive.ObjectID) (*models.ComparativeAnalytics, error) {
	return s.analyticsFn(ctx, assessmentID)
}

var (
	_ services.AssessmentService = (*stubAssessmentService)(nil)
	_ services.EvaluationService = (*stubEvaluationService)(nil)
)

// injectIdentity simulates the auth middleware for a known company
func injectIdentity(companyID, userID primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID.Hex())
		c.Set(middleware.ContextKeyCompanyID, companyID.Hex())
		c.Set(middleware.ContextKeyRole, "ADMIN")
		c.Next()
	}
}

func TestEvaluationHandler_Result(t *testing.T) {
	companyID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	assessmentID := primitive.NewObjectID()

	assessmentSvc := &stubAssessmentService{
		getFn: func(_ context.Context, id, cID primitive.ObjectID) (*models.Assessment, error) {
			if id != assessmentID || cID != companyID {
				return nil, models.ErrAssessmentNotFound
			}
			return &models.Assessment{ID: id, CompanyID: cID}, nil
		},
	}
	evaluationSvc := &stubEvaluationService{
		resultFn: func(_ context.Context, id primitive.ObjectID) (*models.EvaluationResult, error) {
			return &models.EvaluationResult{
				EvaluationID:         id,
				EvaluationName:       "Q3 Review",
				OverallScore:         3.75,
				OverallMaturityLevel: models.MaturityDefined,
				OverallMaturityLabel: "Defined",
				Progress:             100,
			}, nil
		},
	}

	handler := NewEvaluationHandler(assessmentSvc, evaluationSvc)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"), injectIdentity(companyID, userID))

	req := httptest.NewRequest("GET", "/api/v1/assessments/"+assessmentID.Hex()+"/result", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var result models.EvaluationResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if result.OverallScore != 3.75 {
		t.Errorf("Expected overall score 3.75, got %v", result.OverallScore)
	}
	if result.OverallMaturityLabel != "Defined" {
		t.Errorf("Expected label 'Defined', got '%s'", result.OverallMaturityLabel)
	}
}

func TestEvaluationHandler_Result_ForeignAssessmentIsNotFound(t *testing.T) {
	companyID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	assessmentSvc := &stubAssessmentService{
		getFn: func(_ context.Context, _, _ primitive.ObjectID) (*models.Assessment, error) {
			return nil, models.ErrAssessmentNotFound
		},
	}
	evaluationSvc := &stubEvaluationService{
		resultFn: func(_ context.Context, _ primitive.ObjectID) (*models.EvaluationResult, error) {
			t.Fatal("evaluation must not run when the ownership check fails")
			return nil, nil
		},
	}

	handler := NewEvaluationHandler(assessmentSvc, evaluationSvc)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"), injectIdentity(companyID, userID))

	req := httptest.NewRequest("GET", "/api/v1/assessments/"+primitive.NewObjectID().Hex()+"/result", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Error != "not_found" {
		t.Errorf("Expected error 'not_found', got '%s'", resp.Error)
	}
}

func TestEvaluationHandler_Result_InvalidID(t *testing.T) {
	handler := NewEvaluationHandler(&stubAssessmentService{}, &stubEvaluationService{})
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"), injectIdentity(primitive.NewObjectID(), primitive.NewObjectID()))

	req := httptest.NewRequest("GET", "/api/v1/assessments/not-a-hex-id/result", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestEvaluationHandler_Analytics(t *testing.T) {
	companyID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	assessmentID := primitive.NewObjectID()
	previousID := primitive.NewObjectID()

	assessmentSvc := &stubAssessmentService{
		getFn: func(_ context.Context, id, cID primitive.ObjectID) (*models.Assessment, error) {
			return &models.Assessment{ID: id, CompanyID: cID}, nil
		},
	}
	evaluationSvc := &stubEvaluationService{
		analyticsFn: func(_ context.Context, _ primitive.ObjectID) (*models.ComparativeAnalytics, error) {
			return &models.ComparativeAnalytics{
				Trend: &models.TrendSummary{
					PreviousEvaluationID: previousID,
					OverallDelta:         0.5,
				},
				SectorComparison: &models.SectorComparison{
					Available: false,
					Sector:    models.SectorHealthcare,
				},
			}, nil
		},
	}

	handler := NewEvaluationHandler(assessmentSvc, evaluationSvc)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"), injectIdentity(companyID, userID))

	req := httptest.NewRequest("GET", "/api/v1/assessments/"+assessmentID.Hex()+"/analytics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var analytics models.ComparativeAnalytics
	if err := json.Unmarshal(w.Body.Bytes(), &analytics); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if analytics.Trend == nil {
		t.Fatal("Expected trend to be present")
	}
	if analytics.Trend.OverallDelta != 0.5 {
		t.Errorf("Expected overall delta 0.5, got %v", analytics.Trend.OverallDelta)
	}
	if analytics.SectorComparison == nil || analytics.SectorComparison.Available {
		t.Error("Expected sector comparison to be present but unavailable")
	}
}

func TestAssessmentHandler_Create(t *testing.T) {
	companyID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	assessmentSvc := &stubAssessmentService{
		createFn: func(_ context.Context, cID, uID primitive.ObjectID, req services.CreateAssessmentRequest) (*models.Assessment, error) {
			if cID != companyID || uID != userID {
				t.Errorf("Identity not propagated: company %s user %s", cID.Hex(), uID.Hex())
			}
			return &models.Assessment{
				ID:        primitive.NewObjectID(),
				CompanyID: cID,
				CreatedBy: uID,
				Name:      req.Name,
				Status:    models.AssessmentStatusDraft,
			}, nil
		},
	}

	handler := NewAssessmentHandler(assessmentSvc)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"), injectIdentity(companyID, userID))

	body := strings.NewReader(`{"name":"Annual Assessment","plan_level":3}`)
	req := httptest.NewRequest("POST", "/api/v1/assessments", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var created models.Assessment
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if created.Name != "Annual Assessment" {
		t.Errorf("Expected name 'Annual Assessment', got '%s'", created.Name)
	}
}

func TestAssessmentHandler_Create_MissingName(t *testing.T) {
	handler := NewAssessmentHandler(&stubAssessmentService{})
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"), injectIdentity(primitive.NewObjectID(), primitive.NewObjectID()))

	req := httptest.NewRequest("POST", "/api/v1/assessments", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestAssessmentHandler_SaveResponses(t *testing.T) {
	companyID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	assessmentID := primitive.NewObjectID()
	questionID := primitive.NewObjectID()

	assessmentSvc := &stubAssessmentService{
		saveManyFn: func(_ context.Context, aID, cID primitive.ObjectID, reqs []services.SaveResponseRequest) ([]models.Response, error) {
			if aID != assessmentID || cID != companyID {
				t.Errorf("Scope not propagated: assessment %s company %s", aID.Hex(), cID.Hex())
			}
			if len(reqs) != 2 {
				t.Fatalf("Expected 2 responses, got %d", len(reqs))
			}
			saved := make([]models.Response, len(reqs))
			for i, r := range reqs {
				qID, _ := primitive.ObjectIDFromHex(r.QuestionID)
				saved[i] = models.Response{AssessmentID: aID, QuestionID: qID, Value: r.Value}
			}
			return saved, nil
		},
	}

	handler := NewAssessmentHandler(assessmentSvc)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"), injectIdentity(companyID, userID))

	body := strings.NewReader(`{"responses":[` +
		`{"question_id":"` + questionID.Hex() + `","value":4},` +
		`{"question_id":"` + primitive.NewObjectID().Hex() + `","value":2,"comment":"partial rollout"}]}`)
	req := httptest.NewRequest("PUT", "/api/v1/assessments/"+assessmentID.Hex()+"/responses", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var saved []models.Response
	if err := json.Unmarshal(w.Body.Bytes(), &saved); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(saved) != 2 {
		t.Errorf("Expected 2 saved responses, got %d", len(saved))
	}
}

func TestAssessmentHandler_SaveResponses_CompletedConflict(t *testing.T) {
	assessmentSvc := &stubAssessmentService{
		saveManyFn: func(_ context.Context, _, _ primitive.ObjectID, _ []services.SaveResponseRequest) ([]models.Response, error) {
			return nil, models.ErrAssessmentNotDraft
		},
	}

	handler := NewAssessmentHandler(assessmentSvc)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"), injectIdentity(primitive.NewObjectID(), primitive.NewObjectID()))

	body := strings.NewReader(`{"responses":[{"question_id":"` + primitive.NewObjectID().Hex() + `","value":3}]}`)
	req := httptest.NewRequest("PUT", "/api/v1/assessments/"+primitive.NewObjectID().Hex()+"/responses", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestAssessmentHandler_Complete(t *testing.T) {
	companyID := primitive.NewObjectID()
	assessmentID := primitive.NewObjectID()

	assessmentSvc := &stubAssessmentService{
		completeFn: func(_ context.Context, id, _ primitive.ObjectID) (*models.Assessment, error) {
			score := 4.2
			return &models.Assessment{
				ID:           id,
				Status:       models.AssessmentStatusCompleted,
				OverallScore: &score,
			}, nil
		},
	}

	handler := NewAssessmentHandler(assessmentSvc)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"), injectIdentity(companyID, primitive.NewObjectID()))

	req := httptest.NewRequest("POST", "/api/v1/assessments/"+assessmentID.Hex()+"/complete", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var completed models.Assessment
	if err := json.Unmarshal(w.Body.Bytes(), &completed); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if completed.Status != models.AssessmentStatusCompleted {
		t.Errorf("Expected status COMPLETED, got %s", completed.Status)
	}
	if completed.OverallScore == nil || *completed.OverallScore != 4.2 {
		t.Errorf("Expected frozen score 4.2, got %v", completed.OverallScore)
	}
}

func TestAssessmentHandler_Delete(t *testing.T) {
	deleted := false
	assessmentSvc := &stubAssessmentService{
		deleteDraft: func(_ context.Context, _, _ primitive.ObjectID) error {
			deleted = true
			return nil
		},
	}

	handler := NewAssessmentHandler(assessmentSvc)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"), injectIdentity(primitive.NewObjectID(), primitive.NewObjectID()))

	req := httptest.NewRequest("DELETE", "/api/v1/assessments/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status %d, got %d", http.StatusNoContent, w.Code)
	}
	if !deleted {
		t.Error("Expected DeleteDraft to be called")
	}
}

func TestAssessmentHandler_List_StatusFilter(t *testing.T) {
	var gotStatus *models.AssessmentStatus
	assessmentSvc := &stubAssessmentService{
		listFn: func(_ context.Context, _ primitive.ObjectID, status *models.AssessmentStatus, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Assessment], error) {
			gotStatus = status
			if opts.Limit != 5 {
				t.Errorf("Expected limit 5, got %d", opts.Limit)
			}
			return &repository.PaginatedResult[models.Assessment]{
				Items: []models.Assessment{},
				Page:  opts.Page,
				Limit: opts.Limit,
			}, nil
		},
	}

	handler := NewAssessmentHandler(assessmentSvc)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"), injectIdentity(primitive.NewObjectID(), primitive.NewObjectID()))

	req := httptest.NewRequest("GET", "/api/v1/assessments?status=completed&limit=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if gotStatus == nil || *gotStatus != models.AssessmentStatusCompleted {
		t.Errorf("Expected status filter COMPLETED, got %v", gotStatus)
	}
}

func TestAssessmentHandler_MissingIdentity(t *testing.T) {
	handler := NewAssessmentHandler(&stubAssessmentService{})
	router := gin.New()
	// No identity middleware: simulates a broken auth chain
	handler.RegisterRoutes(router.Group("/api/v1"), func(c *gin.Context) { c.Next() })

	req := httptest.NewRequest("GET", "/api/v1/assessments", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}
