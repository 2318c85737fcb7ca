package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/secmat-tools/secmat_backend/internal/models"
)

// MongoResponseRepository implements ResponseRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
type MongoResponseRepository struct {
	collection *mongo.Collection
}

// NewMongoResponseRepository creates a new MongoDB response repository
func NewMongoResponseRepository(db *mongo.Database) *MongoResponseRepository {
	return &MongoResponseRepository{
		collection: db.Collection(models.Response{}.CollectionName()),
	}
}

// Save upserts a response keyed by (assessment_id, question_id)
// #BUSINESS_RULE: At most one response per question per assessment; later writes
// overwrite the value and comment in place
func (r *MongoResponseRepository) Save(ctx context.Context, response *models.Response) error {
	response.BeforeSave()

	filter := bson.M{
		"assessment_id": response.AssessmentID,
		"question_id":   response.QuestionID,
	}
	update := bson.M{
		"$set": bson.M{
			"value":    response.Value,
			"comment":  response.Comment,
			"saved_at": response.SavedAt,
		},
		"$setOnInsert": bson.M{
			"_id":           response.ID,
			"assessment_id": response.AssessmentID,
			"question_id":   response.QuestionID,
		},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// ListByAssessment lists all responses recorded for an assessment
// #QUERY_PATTERN: The scoring engine fetches the full response snapshot at once
func (r *MongoResponseRepository) ListByAssessment(ctx context.Context, assessmentID primitive.ObjectID) ([]models.Response, error) {
	filter := bson.M{"assessment_id": assessmentID}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx) //nolint:errcheck // defer close

	var responses []models.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

// CountByAssessment counts responses recorded for an assessment
func (r *MongoResponseRepository) CountByAssessment(ctx context.Context, assessmentID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"assessment_id": assessmentID})
}

// DeleteByAssessment deletes all responses for an assessment
// #CASCADE_STRATEGY: CASCADE DELETE - responses deleted with their assessment
func (r *MongoResponseRepository) DeleteByAssessment(ctx context.Context, assessmentID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"assessment_id": assessmentID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// Ensure MongoResponseRepository implements ResponseRepository
var _ ResponseRepository = (*MongoResponseRepository)(nil)
