package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/secmat-tools/secmat_backend/internal/models"
)

// MongoQuestionRepository implements QuestionRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
type MongoQuestionRepository struct {
	collection *mongo.Collection
}

// NewMongoQuestionRepository creates a new MongoDB question repository
func NewMongoQuestionRepository(db *mongo.Database) *MongoQuestionRepository {
	return &MongoQuestionRepository{
		collection: db.Collection(models.Question{}.CollectionName()),
	}
}

// Create creates a new question
func (r *MongoQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	question.BeforeCreate()
	_, err := r.collection.InsertOne(ctx, question)
	return err
}

// GetByID finds a question by ID
func (r *MongoQuestionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	var question models.Question
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// Update updates a question
func (r *MongoQuestionRepository) Update(ctx context.Context, question *models.Question) error {
	question.BeforeUpdate()
	filter := bson.M{"_id": question.ID}
	update := bson.M{"$set": question}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrQuestionNotFound
	}
	return nil
}

// Deactivate marks a question as inactive
func (r *MongoQuestionRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrQuestionNotFound
	}
	return nil
}

// ListActive lists all active questions sorted by domain and order
// #QUERY_PATTERN: Fetch the whole active catalog at once; the aggregator partitions in memory
func (r *MongoQuestionRepository) ListActive(ctx context.Context) ([]models.Question, error) {
	return r.list(ctx, bson.M{"is_active": true})
}

// ListActiveByDomain lists active questions for one domain
func (r *MongoQuestionRepository) ListActiveByDomain(ctx context.Context, domainID primitive.ObjectID) ([]models.Question, error) {
	return r.list(ctx, bson.M{"is_active": true, "domain_id": domainID})
}

func (r *MongoQuestionRepository) list(ctx context.Context, filter bson.M) ([]models.Question, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "domain_id", Value: 1}, {Key: "order", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx) //nolint:errcheck // defer close

	var questions []models.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// CountActiveByDomain counts active questions for a domain
func (r *MongoQuestionRepository) CountActiveByDomain(ctx context.Context, domainID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"is_active": true, "domain_id": domainID})
}

// Ensure MongoQuestionRepository implements QuestionRepository
var _ QuestionRepository = (*MongoQuestionRepository)(nil)
