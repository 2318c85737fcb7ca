package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/secmat-tools/secmat_backend/internal/models"
)

// MongoAssessmentRepository implements AssessmentRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
type MongoAssessmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAssessmentRepository creates a new MongoDB assessment repository
func NewMongoAssessmentRepository(db *mongo.Database) *MongoAssessmentRepository {
	return &MongoAssessmentRepository{
		collection: db.Collection(models.Assessment{}.CollectionName()),
	}
}

// Create creates a new assessment
func (r *MongoAssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	assessment.BeforeCreate()
	_, err := r.collection.InsertOne(ctx, assessment)
	return err
}

// GetByID finds an assessment by ID
func (r *MongoAssessmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Assessment, error) {
	var assessment models.Assessment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assessment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

// Update updates an assessment
func (r *MongoAssessmentRepository) Update(ctx context.Context, assessment *models.Assessment) error {
	assessment.BeforeUpdate()
	filter := bson.M{"_id": assessment.ID}
	update := bson.M{"$set": assessment}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrAssessmentNotFound
	}
	return nil
}

// Delete deletes an assessment
func (r *MongoAssessmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrAssessmentNotFound
	}
	return nil
}

// ListByCompany lists assessments for a company with optional status filter
func (r *MongoAssessmentRepository) ListByCompany(ctx context.Context, companyID primitive.ObjectID, status *models.AssessmentStatus, opts PaginationOptions) (*PaginatedResult[models.Assessment], error) {
	filter := bson.M{"company_id": companyID}
	if status != nil {
		filter["status"] = *status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	skip := int64((opts.Page - 1) * opts.Limit)
	findOpts := options.Find().
		SetSkip(skip).
		SetLimit(int64(opts.Limit)).
		SetSort(bson.D{{Key: opts.SortBy, Value: opts.SortDir}})

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx) //nolint:errcheck // defer close

	var assessments []models.Assessment
	if err := cursor.All(ctx, &assessments); err != nil {
		return nil, err
	}

	totalPages := int(total) / opts.Limit
	if int(total)%opts.Limit > 0 {
		totalPages++
	}

	return &PaginatedResult[models.Assessment]{
		Items:      assessments,
		TotalCount: total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: totalPages,
	}, nil
}

// ListCompletedByCompany lists completed assessments for a company, newest first
// #QUERY_PATTERN: Trend history - ties on completed_at are broken by _id for
// deterministic ordering
func (r *MongoAssessmentRepository) ListCompletedByCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.Assessment, error) {
	filter := bson.M{
		"company_id": companyID,
		"status":     models.AssessmentStatusCompleted,
	}
	findOpts := options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx) //nolint:errcheck // defer close

	var assessments []models.Assessment
	if err := cursor.All(ctx, &assessments); err != nil {
		return nil, err
	}
	return assessments, nil
}

// GetLatestCompletedByCompany returns a company's most recently completed assessment
func (r *MongoAssessmentRepository) GetLatestCompletedByCompany(ctx context.Context, companyID primitive.ObjectID) (*models.Assessment, error) {
	filter := bson.M{
		"company_id": companyID,
		"status":     models.AssessmentStatusCompleted,
	}
	findOpts := options.FindOne().SetSort(bson.D{{Key: "completed_at", Value: -1}, {Key: "_id", Value: 1}})

	var assessment models.Assessment
	err := r.collection.FindOne(ctx, filter, findOpts).Decode(&assessment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

// Ensure MongoAssessmentRepository implements AssessmentRepository
var _ AssessmentRepository = (*MongoAssessmentRepository)(nil)
